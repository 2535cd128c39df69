package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/diff"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// UploadResponse represents the response for a stored document
type UploadResponse struct {
	ID           int                `json:"id"`
	FileName     string             `json:"fileName"`
	FileType     types.FileType     `json:"fileType"`
	DocumentType types.DocumentType `json:"documentType"`
}

// CreateFromTextRequest represents a pasted-text document submission
type CreateFromTextRequest struct {
	Content      string `json:"content"`
	FileName     string `json:"fileName"`
	DocumentType string `json:"documentType"`
}

// ProcessResponse represents the response for /process
type ProcessResponse struct {
	DocumentID   int          `json:"documentId"`
	JobID        int          `json:"jobId"`
	ProcessingID int          `json:"processingId"`
	Status       types.Status `json:"status"`
}

// StatusResponse represents the response for /status
type StatusResponse struct {
	DocumentID   int          `json:"documentId"`
	Status       types.Status `json:"status"`
	Progress     int          `json:"progress"`
	ErrorMessage *string      `json:"errorMessage"`
}

// DocumentResponse represents the response for GET /documents/{id}
type DocumentResponse struct {
	Document *types.Document `json:"document"`
	Job      *types.Job      `json:"job"`
}

// parseDocumentID extracts the {id} path value. Writes a 400 response and
// returns false when the value is not an integer.
func (s *Server) parseDocumentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document ID")
		return 0, false
	}
	return id, true
}

// handleUpload stores an uploaded document file
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	documentType := r.FormValue("documentType")
	if !types.ValidDocumentType(documentType) {
		s.errorResponse(w, http.StatusBadRequest, "documentType must be cv or cover")
		return
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !types.ValidFileType(fileType) {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported file type. Please upload DOCX, PDF, TXT, or Google Doc")
		return
	}

	// Store under a unique name; the original name lives on the document record.
	storedPath := filepath.Join(s.uploadsDir, uuid.New().String()+"."+fileType)
	dst, err := os.Create(storedPath)
	if err != nil {
		log.Printf("Upload error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Upload error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}

	doc, err := s.store.CreateDocument(r.Context(), storage.NewDocument{
		FileName:         header.Filename,
		FileType:         types.FileType(fileType),
		DocumentType:     types.DocumentType(documentType),
		OriginalFilePath: &storedPath,
	})
	if err != nil {
		log.Printf("Upload error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		ID:           doc.ID,
		FileName:     doc.FileName,
		FileType:     doc.FileType,
		DocumentType: doc.DocumentType,
	})
}

// handleCreateFromText creates a document directly from pasted content
func (s *Server) handleCreateFromText(w http.ResponseWriter, r *http.Request) {
	var req CreateFromTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		s.errorResponse(w, http.StatusBadRequest, "content is required")
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		s.errorResponse(w, http.StatusBadRequest, "fileName is required")
		return
	}
	if !types.ValidDocumentType(req.DocumentType) {
		s.errorResponse(w, http.StatusBadRequest, "documentType must be cv or cover")
		return
	}

	doc, err := s.store.CreateDocument(r.Context(), storage.NewDocument{
		FileName:        req.FileName,
		FileType:        types.FileTypeTxt,
		DocumentType:    types.DocumentType(req.DocumentType),
		OriginalContent: &req.Content,
	})
	if err != nil {
		log.Printf("Create document error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		ID:           doc.ID,
		FileName:     doc.FileName,
		FileType:     doc.FileType,
		DocumentType: doc.DocumentType,
	})
}

// handleProcess validates job details, creates the job and processing
// records, and launches the rewrite pipeline as a detached task. The response
// returns immediately; the run's outcome is observable only through the
// processing record.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	documentID, ok := s.parseDocumentID(w, r)
	if !ok {
		return
	}

	var req types.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid job details",
			"errors":  fieldErrors,
		})
		return
	}

	ctx := r.Context()
	if _, err := s.store.GetDocument(ctx, documentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Document not found")
			return
		}
		log.Printf("Processing error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to process document")
		return
	}

	job, err := s.store.CreateJob(ctx, storage.NewJob{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		DocumentID:  documentID,
	})
	if err != nil {
		log.Printf("Processing error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to process document")
		return
	}

	proc, err := s.store.CreateProcessing(ctx, documentID)
	if err != nil {
		log.Printf("Processing error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to process document")
		return
	}

	if _, err := s.store.UpdateDocument(ctx, documentID, types.DocumentUpdate{
		JobTitle:       &req.Title,
		Company:        &req.Company,
		JobDescription: &req.Description,
		Status:         types.StatusPtr(types.StatusProcessing),
	}); err != nil {
		log.Printf("Processing error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to process document")
		return
	}

	// Detached: the request context dies with this response, so the run gets
	// its own.
	go s.runner.Run(context.Background(), documentID, job.ID, proc.ID)

	s.jsonResponse(w, http.StatusOK, ProcessResponse{
		DocumentID:   documentID,
		JobID:        job.ID,
		ProcessingID: proc.ID,
		Status:       types.StatusProcessing,
	})
}

// handleStatus returns the current processing record for a document
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	documentID, ok := s.parseDocumentID(w, r)
	if !ok {
		return
	}

	proc, err := s.store.GetProcessingByDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Processing not found")
			return
		}
		log.Printf("Status error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get processing status")
		return
	}

	s.jsonResponse(w, http.StatusOK, StatusResponse{
		DocumentID:   documentID,
		Status:       proc.Status,
		Progress:     proc.Progress,
		ErrorMessage: proc.ErrorMessage,
	})
}

// handleGetDocument returns a document and its job details
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	documentID, ok := s.parseDocumentID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Document not found")
			return
		}
		log.Printf("Document retrieval error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	job, err := s.store.GetJobByDocument(ctx, documentID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("Document retrieval error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	s.jsonResponse(w, http.StatusOK, DocumentResponse{
		Document: doc,
		Job:      job,
	})
}

// handleDownload streams the tailored (fallback: original) content as an
// attachment
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	documentID, ok := s.parseDocumentID(w, r)
	if !ok {
		return
	}

	format := r.PathValue("format")
	if !types.ValidFileType(format) {
		err := &ErrUnsupportedFormat{Format: format}
		s.errorResponse(w, HTTPStatus(err), "Unsupported download format")
		return
	}

	doc, err := s.store.GetDocument(r.Context(), documentID)
	if err != nil {
		msg := "Document not found"
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Download error: %v", err)
			msg = "Failed to download document"
		}
		s.errorResponse(w, HTTPStatus(err), msg)
		return
	}

	content := doc.TailoredContent
	if content == nil {
		content = doc.OriginalContent
	}
	if content == nil {
		err := &ErrNoContent{DocumentID: documentID}
		s.errorResponse(w, HTTPStatus(err), "No content available for document")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if _, err := w.Write([]byte(*content)); err != nil {
		log.Printf("Download error: %v", err)
	}
}

// handleDiff returns the line classification between the original and
// tailored content of a completed document
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	documentID, ok := s.parseDocumentID(w, r)
	if !ok {
		return
	}

	doc, err := s.store.GetDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Document not found")
			return
		}
		log.Printf("Diff error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to compute diff")
		return
	}

	if doc.OriginalContent == nil || doc.TailoredContent == nil {
		s.errorResponse(w, http.StatusNotFound, "Tailored content not available")
		return
	}

	s.jsonResponse(w, http.StatusOK, diff.Highlight(*doc.OriginalContent, *doc.TailoredContent))
}
