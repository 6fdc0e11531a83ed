package presentation

import (
	"embed"
	"html/template"
	"io"

	"github.com/jonathan/resume-roaster/internal/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// PageData drives the single HTML page. At most one of Error and Result is set.
type PageData struct {
	Error  string
	Result *Result
}

// Result is what the page shows after a successful roast.
type Result struct {
	Tiles       []Tile
	Card        Card
	TextPreview string
}

// NewResult derives the page result from metrics and the extracted text preview.
func NewResult(m *types.ResumeMetrics, preview string) *Result {
	return &Result{
		Tiles:       Dashboard(m),
		Card:        NewCard(m),
		TextPreview: preview,
	}
}

// RenderPage writes the upload page, with the roast or an error when present.
func RenderPage(w io.Writer, data PageData) error {
	return pageTemplate.ExecuteTemplate(w, "page.html", data)
}
