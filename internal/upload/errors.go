package upload

import "fmt"

const (
	// MsgUnsupportedFile is shown when the upload is not a PDF.
	MsgUnsupportedFile = "Please upload a PDF file."
	// MsgExtractionFailed is shown when no text could be read from the PDF.
	MsgExtractionFailed = "Failed to extract text from PDF. Please try again."
)

// UnsupportedFileError is returned for anything that is not a PDF.
type UnsupportedFileError struct {
	Name        string
	ContentType string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file %q (content type %q)", e.Name, e.ContentType)
}

// ExtractionError is returned when the PDF yields no text.
type ExtractionError struct {
	Name  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %q: %v", e.Name, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
