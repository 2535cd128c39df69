package storage

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

// MemStorage keeps all entities in process-wide maps with monotonically
// incrementing counters. Nothing survives a restart. All access is guarded by
// a single mutex so the store is safe to share between the HTTP handlers and
// detached pipeline runs.
type MemStorage struct {
	mu sync.Mutex

	documents  map[int]*types.Document
	jobs       map[int]*types.Job
	processing map[int]*types.Processing
	templates  map[int]*types.Template

	nextDocumentID   int
	nextJobID        int
	nextProcessingID int
	nextTemplateID   int
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		documents:        make(map[int]*types.Document),
		jobs:             make(map[int]*types.Job),
		processing:       make(map[int]*types.Processing),
		templates:        make(map[int]*types.Template),
		nextDocumentID:   1,
		nextJobID:        1,
		nextProcessingID: 1,
		nextTemplateID:   1,
	}
}

// Close is a no-op for the in-memory store.
func (s *MemStorage) Close() {}

// GetDocument retrieves a document by ID.
func (s *MemStorage) GetDocument(_ context.Context, id int) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// CreateDocument creates a document in pending state.
func (s *MemStorage) CreateDocument(_ context.Context, nd NewDocument) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &types.Document{
		ID:               s.nextDocumentID,
		FileName:         nd.FileName,
		FileType:         nd.FileType,
		DocumentType:     nd.DocumentType,
		OriginalContent:  nd.OriginalContent,
		OriginalFilePath: nd.OriginalFilePath,
		Status:           types.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	s.nextDocumentID++
	s.documents[doc.ID] = doc

	copied := *doc
	return &copied, nil
}

// UpdateDocument applies non-nil fields of updates to the document.
func (s *MemStorage) UpdateDocument(_ context.Context, id int, updates types.DocumentUpdate) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, ErrNotFound
	}

	if updates.OriginalContent != nil {
		doc.OriginalContent = updates.OriginalContent
	}
	if updates.TailoredContent != nil {
		doc.TailoredContent = updates.TailoredContent
	}
	if updates.TailoredFilePath != nil {
		doc.TailoredFilePath = updates.TailoredFilePath
	}
	if updates.JobTitle != nil {
		doc.JobTitle = updates.JobTitle
	}
	if updates.Company != nil {
		doc.Company = updates.Company
	}
	if updates.JobDescription != nil {
		doc.JobDescription = updates.JobDescription
	}
	if updates.Status != nil {
		doc.Status = *updates.Status
	}

	copied := *doc
	return &copied, nil
}

// GetJob retrieves a job by ID.
func (s *MemStorage) GetJob(_ context.Context, id int) (*types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *job
	return &copied, nil
}

// GetJobByDocument retrieves the most recent job created for a document.
func (s *MemStorage) GetJobByDocument(_ context.Context, documentID int) (*types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *types.Job
	for _, job := range s.jobs {
		if job.DocumentID == documentID && (latest == nil || job.ID > latest.ID) {
			latest = job
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

// CreateJob creates a job.
func (s *MemStorage) CreateJob(_ context.Context, nj NewJob) (*types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &types.Job{
		ID:          s.nextJobID,
		Title:       nj.Title,
		Company:     nj.Company,
		Description: nj.Description,
		DocumentID:  nj.DocumentID,
	}
	s.nextJobID++
	s.jobs[job.ID] = job

	copied := *job
	return &copied, nil
}

// GetProcessing retrieves a processing record by ID.
func (s *MemStorage) GetProcessing(_ context.Context, id int) (*types.Processing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proc, ok := s.processing[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *proc
	return &copied, nil
}

// GetProcessingByDocument retrieves the most recent processing record for a
// document. The latest record is the authoritative status source for the
// current rewrite attempt.
func (s *MemStorage) GetProcessingByDocument(_ context.Context, documentID int) (*types.Processing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *types.Processing
	for _, proc := range s.processing {
		if proc.DocumentID == documentID && (latest == nil || proc.ID > latest.ID) {
			latest = proc
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

// CreateProcessing creates a processing record in pending state with progress 0.
func (s *MemStorage) CreateProcessing(_ context.Context, documentID int) (*types.Processing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proc := &types.Processing{
		ID:         s.nextProcessingID,
		DocumentID: documentID,
		Progress:   0,
		Status:     types.StatusPending,
	}
	s.nextProcessingID++
	s.processing[proc.ID] = proc

	copied := *proc
	return &copied, nil
}

// UpdateProcessing applies non-nil fields of updates to the processing record.
func (s *MemStorage) UpdateProcessing(_ context.Context, id int, updates types.ProcessingUpdate) (*types.Processing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proc, ok := s.processing[id]
	if !ok {
		return nil, ErrNotFound
	}

	if updates.Progress != nil {
		proc.Progress = *updates.Progress
	}
	if updates.Status != nil {
		proc.Status = *updates.Status
	}
	if updates.ErrorMessage != nil {
		proc.ErrorMessage = updates.ErrorMessage
	}

	copied := *proc
	return &copied, nil
}

// ListTemplates lists templates, optionally filtered by document type.
func (s *MemStorage) ListTemplates(_ context.Context, documentType *types.DocumentType) ([]types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates := make([]types.Template, 0, len(s.templates))
	for id := 1; id < s.nextTemplateID; id++ {
		tpl, ok := s.templates[id]
		if !ok {
			continue
		}
		if documentType != nil && tpl.DocumentType != *documentType {
			continue
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}

// GetTemplate retrieves a template by ID.
func (s *MemStorage) GetTemplate(_ context.Context, id int) (*types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

// CreateTemplate creates a template.
func (s *MemStorage) CreateTemplate(_ context.Context, nt NewTemplate) (*types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl := &types.Template{
		ID:           s.nextTemplateID,
		Name:         nt.Name,
		Description:  nt.Description,
		DocumentType: nt.DocumentType,
		Content:      nt.Content,
		IsDefault:    nt.IsDefault,
	}
	s.nextTemplateID++
	s.templates[tpl.ID] = tpl

	copied := *tpl
	return &copied, nil
}

// UpdateTemplate replaces the mutable fields of a template.
func (s *MemStorage) UpdateTemplate(_ context.Context, id int, nt NewTemplate) (*types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}

	tpl.Name = nt.Name
	tpl.Description = nt.Description
	tpl.DocumentType = nt.DocumentType
	tpl.Content = nt.Content
	tpl.IsDefault = nt.IsDefault

	copied := *tpl
	return &copied, nil
}

// DeleteTemplate removes a template.
func (s *MemStorage) DeleteTemplate(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return ErrNotFound
	}
	delete(s.templates, id)
	return nil
}
