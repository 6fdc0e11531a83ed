package upload

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-roaster/internal/extraction"
	"github.com/jonathan/resume-roaster/internal/extraction/pdftest"
	"github.com/jonathan/resume-roaster/internal/roasting"
	"github.com/jonathan/resume-roaster/internal/types"
)

type stubAnalyzer struct {
	calls   int
	gotText string
	metrics *types.ResumeMetrics
	err     error
}

func (s *stubAnalyzer) Analyze(_ context.Context, text string) (*types.ResumeMetrics, error) {
	s.calls++
	s.gotText = text
	return s.metrics, s.err
}

func fixedExtractor(text string, err error) extraction.Extractor {
	return extraction.ExtractorFunc(func(context.Context, []byte) (string, error) {
		return text, err
	})
}

var pdfBytes = []byte("%PDF-1.4\n%fake body")

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		file File
		want bool
	}{
		{name: "declared type", file: File{Name: "cv", ContentType: "application/pdf", Data: pdfBytes}, want: true},
		{name: "extension only", file: File{Name: "CV.PDF", ContentType: "application/octet-stream", Data: pdfBytes}, want: true},
		{name: "type with params", file: File{Name: "cv", ContentType: "application/pdf; name=cv", Data: pdfBytes}, want: true},
		{name: "docx", file: File{Name: "cv.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Data: []byte("PK\x03\x04")}, want: false},
		{name: "renamed text file", file: File{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("hello")}, want: false},
		{name: "pdf bytes but undeclared", file: File{Name: "cv.txt", ContentType: "text/plain", Data: pdfBytes}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.file))
		})
	}
}

func TestRun_Unsupported(t *testing.T) {
	analyzer := &stubAnalyzer{}
	flow := NewFlow(fixedExtractor("text", nil), analyzer)

	_, err := flow.Run(context.Background(), File{Name: "cv.docx", ContentType: "application/msword", Data: []byte("PK")})

	var unsupported *UnsupportedFileError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "cv.docx", unsupported.Name)
	assert.Equal(t, 0, analyzer.calls)
}

func TestRun_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{name: "extractor error", err: errors.New("corrupt xref")},
		{name: "blank text", text: "  \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &stubAnalyzer{}
			flow := NewFlow(fixedExtractor(tt.text, tt.err), analyzer)

			_, err := flow.Run(context.Background(), File{Name: "cv.pdf", ContentType: "application/pdf", Data: pdfBytes})

			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.Equal(t, 0, analyzer.calls, "analyzer must not run without text")
		})
	}
}

func TestRun_ForwardsTextToAnalyzer(t *testing.T) {
	analyzer := &stubAnalyzer{metrics: &types.ResumeMetrics{RoastCharacter: "Deadline Dan", RoastScore: 55}}
	flow := NewFlow(extraction.NewPDFExtractor(), analyzer)

	result, err := flow.Run(context.Background(), File{
		Name:        "cv.pdf",
		ContentType: "application/pdf",
		Data:        pdftest.Build("Dan Smith", "Built dashboards"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.calls)
	assert.Contains(t, analyzer.gotText, "Dan")
	assert.Equal(t, analyzer.gotText, result.Text)
	assert.Equal(t, "Deadline Dan", result.Metrics.RoastCharacter)
}

func TestRun_AnalyzerErrorPassesThrough(t *testing.T) {
	wantErr := &roasting.APICallError{Service: "OpenAI Error", StatusCode: 429, Message: "slow down"}
	flow := NewFlow(fixedExtractor("Jane", nil), &stubAnalyzer{err: wantErr})

	result, err := flow.Run(context.Background(), File{Name: "cv.pdf", Data: pdfBytes})
	assert.Nil(t, result)

	var callErr *roasting.APICallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, 429, callErr.StatusCode)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "héllo…", Preview("héllo world", 5))
	long := strings.Repeat("a", PreviewLength+10)
	assert.Equal(t, PreviewLength+1, len([]rune(Preview(long, PreviewLength))))
}
