// Package upload runs an uploaded résumé through text extraction and analysis.
package upload

import (
	"context"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-roaster/internal/extraction"
	"github.com/jonathan/resume-roaster/internal/logging"
	"github.com/jonathan/resume-roaster/internal/roasting"
	"github.com/jonathan/resume-roaster/internal/types"
)

// PreviewLength is the number of characters of extracted text echoed back to callers.
const PreviewLength = 500

// File is an uploaded document.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result is the successful outcome of a Run.
type Result struct {
	Metrics *types.ResumeMetrics
	Text    string
}

// Flow validates the file type, extracts text and forwards it to the Analyzer.
// A Run ends in exactly one of: a Result, or an error.
type Flow struct {
	extractor extraction.Extractor
	analyzer  roasting.Analyzer
}

// NewFlow creates a Flow.
func NewFlow(extractor extraction.Extractor, analyzer roasting.Analyzer) *Flow {
	return &Flow{extractor: extractor, analyzer: analyzer}
}

// Run processes one upload. The Analyzer is only called once text was extracted.
func (f *Flow) Run(ctx context.Context, file File) (*Result, error) {
	logger := logging.FromContext(ctx).With(
		slog.String("component", "upload"),
		slog.String("file", file.Name),
	)

	if !IsPDF(file) {
		logger.Warn("rejected upload", slog.String("content_type", file.ContentType))
		return nil, &UnsupportedFileError{Name: file.Name, ContentType: file.ContentType}
	}

	start := time.Now()
	text, err := f.extractor.Extract(ctx, file.Data)
	if err == nil && strings.TrimSpace(text) == "" {
		err = extraction.ErrNoText
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Error("text extraction failed", slog.Any("error", err))
		return nil, &ExtractionError{Name: file.Name, Cause: err}
	}
	logger.Info("extracted text",
		slog.Int("bytes", len(file.Data)),
		slog.Int("text_chars", utf8.RuneCountInString(text)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	metrics, err := f.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	return &Result{Metrics: metrics, Text: text}, nil
}

// IsPDF accepts a file declared as PDF (by content type or extension) whose
// bytes also start with the PDF header.
func IsPDF(file File) bool {
	declared := strings.EqualFold(filepath.Ext(file.Name), ".pdf")
	if mediaType, _, err := mime.ParseMediaType(file.ContentType); err == nil && mediaType == "application/pdf" {
		declared = true
	}
	return declared && extraction.IsPDF(file.Data)
}

// Preview returns at most n characters of text, marking truncation with an ellipsis.
func Preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
