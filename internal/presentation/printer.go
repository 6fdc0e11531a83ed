package presentation

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-roaster/internal/types"
)

// boxWidth is the width of terminal output boxes
const boxWidth = 60

// Printer writes roast results as boxed terminal output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to the box's inner width, counting runes.
func pad(s string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintRoast outputs the dashboard and summary card for one résumé.
func (p *Printer) PrintRoast(source string, m *types.ResumeMetrics) {
	if m == nil {
		return
	}

	var sb strings.Builder
	for _, tile := range Dashboard(m) {
		fmt.Fprintf(&sb, "%-30s %s\n", tile.Label, tile.Value)
	}
	p.printBox("RESUME ANALYSIS DASHBOARD: "+source, strings.TrimSuffix(sb.String(), "\n"))

	card := NewCard(m)
	sb.Reset()
	fmt.Fprintf(&sb, "%s\n", card.Character)
	if card.Name != "" {
		fmt.Fprintf(&sb, "for %s\n", card.Name)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Cringe Score:  %s\n", card.ScoreText)
	fmt.Fprintf(&sb, "Top Buzzword:  %s\n", orDash(card.TopBuzzword))
	fmt.Fprintf(&sb, "Avatar:        %s", card.AvatarURL)
	p.printBox("ROAST CARD", sb.String())
}

// PrintError outputs a failed roast.
func (p *Printer) PrintError(source string, message string) {
	p.printBox("ROAST FAILED: "+source, message)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
