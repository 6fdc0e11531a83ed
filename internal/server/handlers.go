package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jonathan/resume-roaster/internal/logging"
	"github.com/jonathan/resume-roaster/internal/presentation"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
)

// uploadField is the multipart form field carrying the PDF.
const uploadField = "file"

// handleRoast analyzes resume text: POST /api/roast {"text": "..."}.
func (s *Server) handleRoast(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req types.RoastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, decodeError(err))
		return
	}

	metrics, err := s.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, types.RoastResponse{Metrics: metrics})
}

// handleUpload extracts text from an uploaded PDF and analyzes it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.flow.Run(r.Context(), file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, types.UploadResponse{
		Metrics:     result.Metrics,
		TextPreview: upload.Preview(result.Text, upload.PreviewLength),
	})
}

// handleIndex serves the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, presentation.PageData{})
}

// handlePageRoast runs the upload flow for the HTML form and renders either
// the dashboard and card, or the page with a single error message.
func (s *Server) handlePageRoast(w http.ResponseWriter, r *http.Request) {
	file, err := s.readUpload(w, r)
	if err == nil {
		var result *upload.Result
		result, err = s.flow.Run(r.Context(), file)
		if err == nil {
			preview := upload.Preview(result.Text, upload.PreviewLength)
			s.renderPage(w, r, http.StatusOK, presentation.PageData{
				Result: presentation.NewResult(result.Metrics, preview),
			})
			return
		}
	}

	status, message := HTTPStatus(err)
	s.logError(r, status, err)
	s.renderPage(w, r, status, presentation.PageData{Error: message})
}

// readUpload reads the PDF from the multipart form field "file". A request
// without that field is treated as an unsupported file.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return upload.File{}, decodeError(err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	f, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) {
		return upload.File{}, &upload.UnsupportedFileError{}
	}
	if err != nil {
		return upload.File{}, decodeError(err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return upload.File{}, decodeError(err)
	}

	return upload.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// renderPage buffers the template so a render failure never sends a half page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data presentation.PageData) {
	var buf bytes.Buffer
	if err := presentation.RenderPage(&buf, data); err != nil {
		logging.FromContext(r.Context()).Error("failed to render page", slog.Any("error", err))
		http.Error(w, MsgInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
