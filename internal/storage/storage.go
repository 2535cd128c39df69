// Package storage provides persistence for documents, jobs, processing
// records, and templates. Two interchangeable implementations exist: an
// in-memory store for single-process deployments and a PostgreSQL store.
// The implementation is selected at process start and never mixed at runtime.
package storage

import (
	"context"
	"errors"

	"github.com/jonathan/resume-tailor/internal/types"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// NewDocument holds the fields required to create a document.
type NewDocument struct {
	FileName         string
	FileType         types.FileType
	DocumentType     types.DocumentType
	OriginalContent  *string
	OriginalFilePath *string
}

// NewJob holds the fields required to create a job.
type NewJob struct {
	Title       string
	Company     string
	Description string
	DocumentID  int
}

// NewTemplate holds the fields required to create a template.
type NewTemplate struct {
	Name         string
	Description  string
	DocumentType types.DocumentType
	Content      string
	IsDefault    bool
}

// Storage is the persistence capability used by the server and the pipeline.
type Storage interface {
	// Documents
	GetDocument(ctx context.Context, id int) (*types.Document, error)
	CreateDocument(ctx context.Context, doc NewDocument) (*types.Document, error)
	UpdateDocument(ctx context.Context, id int, updates types.DocumentUpdate) (*types.Document, error)

	// Jobs
	GetJob(ctx context.Context, id int) (*types.Job, error)
	GetJobByDocument(ctx context.Context, documentID int) (*types.Job, error)
	CreateJob(ctx context.Context, job NewJob) (*types.Job, error)

	// Processing records
	GetProcessing(ctx context.Context, id int) (*types.Processing, error)
	GetProcessingByDocument(ctx context.Context, documentID int) (*types.Processing, error)
	CreateProcessing(ctx context.Context, documentID int) (*types.Processing, error)
	UpdateProcessing(ctx context.Context, id int, updates types.ProcessingUpdate) (*types.Processing, error)

	// Templates
	ListTemplates(ctx context.Context, documentType *types.DocumentType) ([]types.Template, error)
	GetTemplate(ctx context.Context, id int) (*types.Template, error)
	CreateTemplate(ctx context.Context, tpl NewTemplate) (*types.Template, error)
	UpdateTemplate(ctx context.Context, id int, tpl NewTemplate) (*types.Template, error)
	DeleteTemplate(ctx context.Context, id int) error

	// Close releases any resources held by the store.
	Close()
}
