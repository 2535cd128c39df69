package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// fakeRewriter returns a canned rewrite without calling any external service.
type fakeRewriter struct {
	result string
	err    error
}

func (f *fakeRewriter) Rewrite(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func (f *fakeRewriter) Close() error { return nil }

func newTestServer(t *testing.T) (*Server, storage.Storage) {
	t.Helper()
	store := storage.NewMemStorage()
	srv, err := New(Config{
		Port:       0,
		Store:      store,
		Rewriter:   &fakeRewriter{result: "Tailored content"},
		UploadsDir: t.TempDir(),
	})
	require.NoError(t, err)
	return srv, store
}

func doRequest(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}

func createTextDocument(t *testing.T, srv *Server, content string) int {
	t.Helper()
	rec := doRequest(srv, http.MethodPost, "/api/documents/create-from-text", map[string]string{
		"content":      content,
		"fileName":     "resume.txt",
		"documentType": "cv",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	decodeBody(t, rec, &resp)
	return resp.ID
}

func validJobDetails() map[string]string {
	return map[string]string{
		"title":       "Backend Engineer",
		"company":     "Acme Corp",
		"description": "Design and operate Go services at scale.",
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateFromText(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/documents/create-from-text", map[string]string{
		"content":      "My resume text",
		"fileName":     "resume.txt",
		"documentType": "cv",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "resume.txt", resp.FileName)
	assert.Equal(t, types.FileTypeTxt, resp.FileType)
	assert.Equal(t, types.DocumentTypeCV, resp.DocumentType)

	doc, err := store.GetDocument(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, doc.OriginalContent)
	assert.Equal(t, "My resume text", *doc.OriginalContent)
	assert.Equal(t, types.StatusPending, doc.Status)
}

func TestCreateFromText_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing content", map[string]string{"fileName": "a.txt", "documentType": "cv"}},
		{"blank content", map[string]string{"content": "   ", "fileName": "a.txt", "documentType": "cv"}},
		{"missing file name", map[string]string{"content": "text", "documentType": "cv"}},
		{"bad document type", map[string]string{"content": "text", "fileName": "a.txt", "documentType": "memo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(srv, http.MethodPost, "/api/documents/create-from-text", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpload(t *testing.T) {
	srv, store := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("uploaded resume body"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("documentType", "cv"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "resume.txt", resp.FileName)
	assert.Equal(t, types.FileTypeTxt, resp.FileType)

	doc, err := store.GetDocument(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, doc.OriginalFilePath)
	assert.NotEmpty(t, *doc.OriginalFilePath)
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("binary"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("documentType", "cv"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcess_ValidationErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createTextDocument(t, srv, "resume text")

	rec := doRequest(srv, http.MethodPost, fmt.Sprintf("/api/documents/%d/process", id), map[string]string{
		"title":       "",
		"company":     "Acme",
		"description": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string             `json:"message"`
		Errors  []types.FieldError `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Invalid job details", resp.Message)
	assert.NotEmpty(t, resp.Errors)
}

func TestProcess_DocumentNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/documents/999/process", validJobDetails())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Document not found", resp["message"])
}

func TestProcess_InvalidID(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/documents/abc/process", validJobDetails())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcess_RunsToCompletion(t *testing.T) {
	srv, store := newTestServer(t)
	id := createTextDocument(t, srv, "resume text to tailor")

	rec := doRequest(srv, http.MethodPost, fmt.Sprintf("/api/documents/%d/process", id), validJobDetails())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProcessResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, id, resp.DocumentID)
	assert.Equal(t, types.StatusProcessing, resp.Status)
	assert.NotZero(t, resp.JobID)
	assert.NotZero(t, resp.ProcessingID)

	// The pipeline runs detached; wait for the terminal state.
	require.Eventually(t, func() bool {
		proc, err := store.GetProcessing(context.Background(), resp.ProcessingID)
		return err == nil && proc.Status == types.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	doc, err := store.GetDocument(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, doc.TailoredContent)
	assert.Equal(t, "Tailored content", *doc.TailoredContent)
	require.NotNil(t, doc.JobTitle)
	assert.Equal(t, "Backend Engineer", *doc.JobTitle)
}

func TestStatus(t *testing.T) {
	srv, store := newTestServer(t)
	id := createTextDocument(t, srv, "resume text")

	_, err := store.CreateProcessing(context.Background(), id)
	require.NoError(t, err)

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/status", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, id, resp.DocumentID)
	assert.Equal(t, types.StatusPending, resp.Status)
	assert.Equal(t, 0, resp.Progress)
	assert.Nil(t, resp.ErrorMessage)
}

func TestStatus_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createTextDocument(t, srv, "resume text")

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/status", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDocument_WithoutJob(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createTextDocument(t, srv, "resume text")

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DocumentResponse
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.Document)
	assert.Equal(t, id, resp.Document.ID)
	assert.Nil(t, resp.Job)
}

func TestGetDocument_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/documents/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownload_FallsBackToOriginal(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createTextDocument(t, srv, "original body")

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/download/txt", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "original body", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestDownload_PrefersTailored(t *testing.T) {
	srv, store := newTestServer(t)
	id := createTextDocument(t, srv, "original body")

	tailored := "tailored body"
	_, err := store.UpdateDocument(context.Background(), id, types.DocumentUpdate{
		TailoredContent: &tailored,
	})
	require.NoError(t, err)

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/download/txt", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tailored body", rec.Body.String())
}

func TestDownload_UnsupportedFormat(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createTextDocument(t, srv, "original body")

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/download/exe", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownload_NoContent(t *testing.T) {
	srv, store := newTestServer(t)

	doc, err := store.CreateDocument(context.Background(), storage.NewDocument{
		FileName: "empty.txt", FileType: types.FileTypeTxt, DocumentType: types.DocumentTypeCV,
	})
	require.NoError(t, err)

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/download/txt", doc.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDiff(t *testing.T) {
	srv, store := newTestServer(t)
	id := createTextDocument(t, srv, "Alpha\nBeta")

	tailored := "Alpha\nGamma"
	_, err := store.UpdateDocument(context.Background(), id, types.DocumentUpdate{
		TailoredContent: &tailored,
	})
	require.NoError(t, err)

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/diff", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Added   []string `json:"added"`
		Removed []string `json:"removed"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"Gamma"}, resp.Added)
	assert.Equal(t, []string{"Beta"}, resp.Removed)
}

func TestDiff_NotTailoredYet(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createTextDocument(t, srv, "Alpha")

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/documents/%d/diff", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/templates", strings.NewReader(""))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
