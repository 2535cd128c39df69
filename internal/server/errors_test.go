package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/storage"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", storage.ErrNotFound), http.StatusNotFound},
		{"unsupported format", &ErrUnsupportedFormat{Format: "exe"}, http.StatusBadRequest},
		{"no content", &ErrNoContent{DocumentID: 3}, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "unsupported format: exe", (&ErrUnsupportedFormat{Format: "exe"}).Error())
	assert.Equal(t, "no content available for document 7", (&ErrNoContent{DocumentID: 7}).Error())
}
