package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// handleListTemplates returns templates, optionally filtered by documentType
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var filter *types.DocumentType
	if raw := r.URL.Query().Get("documentType"); raw != "" {
		if !types.ValidDocumentType(raw) {
			s.errorResponse(w, http.StatusBadRequest, "documentType must be cv or cover")
			return
		}
		dt := types.DocumentType(raw)
		filter = &dt
	}

	tpls, err := s.store.ListTemplates(r.Context(), filter)
	if err != nil {
		log.Printf("Template list error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch templates")
		return
	}

	s.jsonResponse(w, http.StatusOK, tpls)
}

// handleGetTemplate returns a single template
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	tpl, err := s.store.GetTemplate(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Template not found")
			return
		}
		log.Printf("Template retrieval error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch template")
		return
	}

	s.jsonResponse(w, http.StatusOK, tpl)
}

// handleCreateTemplate creates a new template
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid template",
			"errors":  fieldErrors,
		})
		return
	}

	tpl, err := s.store.CreateTemplate(r.Context(), storage.NewTemplate{
		Name:         req.Name,
		Description:  req.Description,
		DocumentType: types.DocumentType(req.DocumentType),
		Content:      req.Content,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		log.Printf("Template creation error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	s.jsonResponse(w, http.StatusCreated, tpl)
}

// handleUpdateTemplate replaces an existing template
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	var req types.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid template",
			"errors":  fieldErrors,
		})
		return
	}

	tpl, err := s.store.UpdateTemplate(r.Context(), id, storage.NewTemplate{
		Name:         req.Name,
		Description:  req.Description,
		DocumentType: types.DocumentType(req.DocumentType),
		Content:      req.Content,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Template not found")
			return
		}
		log.Printf("Template update error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	s.jsonResponse(w, http.StatusOK, tpl)
}

// handleDeleteTemplate removes a template
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	if err := s.store.DeleteTemplate(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Template not found")
			return
		}
		log.Printf("Template deletion error: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Template deleted"})
}
