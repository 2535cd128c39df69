// Package server provides the HTTP REST API for the resume tailor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/storage"
)

// ErrUnsupportedFormat indicates an unknown upload or download format
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Format)
}

// ErrNoContent indicates a document carries no downloadable content
type ErrNoContent struct {
	DocumentID int
}

func (e *ErrNoContent) Error() string {
	return fmt.Sprintf("no content available for document %d", e.DocumentID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var unsupported *ErrUnsupportedFormat
	var noContent *ErrNoContent
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &noContent):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
