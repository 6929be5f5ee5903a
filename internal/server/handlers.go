package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/smart-resume/internal/pipeline"
	"github.com/jonathan/smart-resume/internal/rendering"
	"github.com/jonathan/smart-resume/internal/schemas"
	"github.com/jonathan/smart-resume/internal/storage"
	"github.com/jonathan/smart-resume/internal/types"
)

// maxRequestBytes bounds the size of a resume request body.
const maxRequestBytes = 1 << 20

// GenerateResponse represents the response for POST /resumes
type GenerateResponse struct {
	ID              string `json:"id"`
	Preview         string `json:"preview"`
	GenerationError string `json:"generation_error,omitempty"`
	RenderError     string `json:"render_error,omitempty"`
	DownloadURL     string `json:"download_url,omitempty"`
	FileName        string `json:"file_name,omitempty"`
	Size            int64  `json:"size,omitempty"`
}

func newGenerateResponse(result *pipeline.Result) GenerateResponse {
	resp := GenerateResponse{
		ID:      result.ID.String(),
		Preview: result.Preview(),
	}
	if result.GenerationErr != nil {
		resp.GenerationError = result.GenerationErr.Error()
	}
	if result.RenderErr != nil {
		resp.RenderError = result.RenderErr.Error()
	}
	if result.Downloadable() {
		resp.DownloadURL = fmt.Sprintf("/resumes/%s/download", result.ID)
		resp.FileName = result.Document.FileName
		resp.Size = result.Document.Size
	}
	return resp
}

// decodeResumeInput reads a request body, checks it against the resume input
// schema and decodes it.
func decodeResumeInput(w http.ResponseWriter, r *http.Request) (*types.ResumeInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if !json.Valid(body) {
		return nil, &ErrValidation{Field: "body", Message: "malformed JSON"}
	}
	if err := schemas.ValidateResumeInput(body); err != nil {
		return nil, err
	}

	var input types.ResumeInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return &input, nil
}

// handleCreateResume runs one generate action and reports the preview and
// download location.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	input, err := decodeResumeInput(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Invalid request body: "+err.Error())
		return
	}

	p := pipeline.New(s.generator, s.renderer)
	result, err := p.Run(r.Context(), input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.metrics.ObserveResult(result)

	s.jsonResponse(w, http.StatusOK, newGenerateResponse(result))
}

// handleCreateResumeStream runs one generate action, streaming progress
// events over SSE and finishing with a "complete" event.
func (s *Server) handleCreateResumeStream(w http.ResponseWriter, r *http.Request) {
	input, err := decodeResumeInput(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Invalid request body: "+err.Error())
		return
	}
	if err := input.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := pipeline.New(s.generator, s.renderer, pipeline.WithProgress(func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			log.Printf("[%s] Failed to write progress event: %v", event.RunID, err)
		}
	}))

	result, err := p.Run(r.Context(), input)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	s.metrics.ObserveResult(result)

	sse.WriteComplete(newGenerateResponse(result))
}

// handleDownload streams a stored resume document as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	rc, err := s.store.Open(r.Context(), rendering.DocumentKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume not found")
			return
		}
		log.Printf("Error opening resume %s: %v", id, err)
		s.errorResponse(w, HTTPStatus(err), "Failed to open resume")
		return
	}
	defer rc.Close() //nolint:errcheck

	w.Header().Set("Content-Type", rendering.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendering.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("Error streaming resume %s: %v", id, err)
	}
}
