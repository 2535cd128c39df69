package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-tailor/internal/types"
)

// PostgresStorage wraps a PostgreSQL connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// schema creates the tables used by the store. Idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id                 SERIAL PRIMARY KEY,
	file_name          TEXT NOT NULL,
	file_type          TEXT NOT NULL,
	document_type      TEXT NOT NULL,
	original_content   TEXT,
	tailored_content   TEXT,
	original_file_path TEXT,
	tailored_file_path TEXT,
	job_title          TEXT,
	company            TEXT,
	job_description    TEXT,
	status             TEXT NOT NULL DEFAULT 'pending',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jobs (
	id          SERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	company     TEXT NOT NULL,
	description TEXT NOT NULL,
	document_id INTEGER NOT NULL REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS processing (
	id            SERIAL PRIMARY KEY,
	document_id   INTEGER NOT NULL REFERENCES documents(id),
	progress      INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	error_message TEXT
);

CREATE TABLE IF NOT EXISTS templates (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	document_type TEXT NOT NULL,
	content       TEXT NOT NULL,
	is_default    BOOLEAN NOT NULL DEFAULT FALSE
);
`

// Connect establishes a connection pool to the database and ensures the
// schema exists.
func Connect(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &PostgresStorage{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStorage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const documentColumns = `id, file_name, file_type, document_type, original_content, tailored_content,
	original_file_path, tailored_file_path, job_title, company, job_description, status, created_at`

func scanDocument(row pgx.Row) (*types.Document, error) {
	var doc types.Document
	err := row.Scan(&doc.ID, &doc.FileName, &doc.FileType, &doc.DocumentType,
		&doc.OriginalContent, &doc.TailoredContent, &doc.OriginalFilePath, &doc.TailoredFilePath,
		&doc.JobTitle, &doc.Company, &doc.JobDescription, &doc.Status, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return &doc, nil
}

// GetDocument retrieves a document by ID.
func (s *PostgresStorage) GetDocument(ctx context.Context, id int) (*types.Document, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

// CreateDocument creates a document in pending state.
func (s *PostgresStorage) CreateDocument(ctx context.Context, nd NewDocument) (*types.Document, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO documents (file_name, file_type, document_type, original_content, original_file_path)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+documentColumns,
		nd.FileName, nd.FileType, nd.DocumentType, nd.OriginalContent, nd.OriginalFilePath)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// UpdateDocument applies non-nil fields of updates to the document.
func (s *PostgresStorage) UpdateDocument(ctx context.Context, id int, updates types.DocumentUpdate) (*types.Document, error) {
	query := `UPDATE documents SET id = id`
	args := []any{}
	argNum := 1

	set := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argNum)
		args = append(args, value)
		argNum++
	}

	if updates.OriginalContent != nil {
		set("original_content", *updates.OriginalContent)
	}
	if updates.TailoredContent != nil {
		set("tailored_content", *updates.TailoredContent)
	}
	if updates.TailoredFilePath != nil {
		set("tailored_file_path", *updates.TailoredFilePath)
	}
	if updates.JobTitle != nil {
		set("job_title", *updates.JobTitle)
	}
	if updates.Company != nil {
		set("company", *updates.Company)
	}
	if updates.JobDescription != nil {
		set("job_description", *updates.JobDescription)
	}
	if updates.Status != nil {
		set("status", *updates.Status)
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argNum) + documentColumns
	args = append(args, id)

	return scanDocument(s.pool.QueryRow(ctx, query, args...))
}

// GetJob retrieves a job by ID.
func (s *PostgresStorage) GetJob(ctx context.Context, id int) (*types.Job, error) {
	var job types.Job
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, description, document_id FROM jobs WHERE id = $1`, id,
	).Scan(&job.ID, &job.Title, &job.Company, &job.Description, &job.DocumentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// GetJobByDocument retrieves the most recent job created for a document.
func (s *PostgresStorage) GetJobByDocument(ctx context.Context, documentID int) (*types.Job, error) {
	var job types.Job
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, description, document_id FROM jobs
		 WHERE document_id = $1 ORDER BY id DESC LIMIT 1`, documentID,
	).Scan(&job.ID, &job.Title, &job.Company, &job.Description, &job.DocumentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job by document: %w", err)
	}
	return &job, nil
}

// CreateJob creates a job.
func (s *PostgresStorage) CreateJob(ctx context.Context, nj NewJob) (*types.Job, error) {
	var job types.Job
	err := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, description, document_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, company, description, document_id`,
		nj.Title, nj.Company, nj.Description, nj.DocumentID,
	).Scan(&job.ID, &job.Title, &job.Company, &job.Description, &job.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetProcessing retrieves a processing record by ID.
func (s *PostgresStorage) GetProcessing(ctx context.Context, id int) (*types.Processing, error) {
	var proc types.Processing
	err := s.pool.QueryRow(ctx,
		`SELECT id, document_id, progress, status, error_message FROM processing WHERE id = $1`, id,
	).Scan(&proc.ID, &proc.DocumentID, &proc.Progress, &proc.Status, &proc.ErrorMessage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get processing: %w", err)
	}
	return &proc, nil
}

// GetProcessingByDocument retrieves the most recent processing record for a document.
func (s *PostgresStorage) GetProcessingByDocument(ctx context.Context, documentID int) (*types.Processing, error) {
	var proc types.Processing
	err := s.pool.QueryRow(ctx,
		`SELECT id, document_id, progress, status, error_message FROM processing
		 WHERE document_id = $1 ORDER BY id DESC LIMIT 1`, documentID,
	).Scan(&proc.ID, &proc.DocumentID, &proc.Progress, &proc.Status, &proc.ErrorMessage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get processing by document: %w", err)
	}
	return &proc, nil
}

// CreateProcessing creates a processing record in pending state with progress 0.
func (s *PostgresStorage) CreateProcessing(ctx context.Context, documentID int) (*types.Processing, error) {
	var proc types.Processing
	err := s.pool.QueryRow(ctx,
		`INSERT INTO processing (document_id) VALUES ($1)
		 RETURNING id, document_id, progress, status, error_message`,
		documentID,
	).Scan(&proc.ID, &proc.DocumentID, &proc.Progress, &proc.Status, &proc.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to create processing: %w", err)
	}
	return &proc, nil
}

// UpdateProcessing applies non-nil fields of updates to the processing record.
func (s *PostgresStorage) UpdateProcessing(ctx context.Context, id int, updates types.ProcessingUpdate) (*types.Processing, error) {
	query := `UPDATE processing SET id = id`
	args := []any{}
	argNum := 1

	set := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argNum)
		args = append(args, value)
		argNum++
	}

	if updates.Progress != nil {
		set("progress", *updates.Progress)
	}
	if updates.Status != nil {
		set("status", *updates.Status)
	}
	if updates.ErrorMessage != nil {
		set("error_message", *updates.ErrorMessage)
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING id, document_id, progress, status, error_message", argNum)
	args = append(args, id)

	var proc types.Processing
	err := s.pool.QueryRow(ctx, query, args...).
		Scan(&proc.ID, &proc.DocumentID, &proc.Progress, &proc.Status, &proc.ErrorMessage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update processing: %w", err)
	}
	return &proc, nil
}

// ListTemplates lists templates, optionally filtered by document type.
func (s *PostgresStorage) ListTemplates(ctx context.Context, documentType *types.DocumentType) ([]types.Template, error) {
	query := `SELECT id, name, description, document_type, content, is_default FROM templates`
	args := []any{}
	if documentType != nil {
		query += ` WHERE document_type = $1`
		args = append(args, *documentType)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]types.Template, 0)
	for rows.Next() {
		var tpl types.Template
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.DocumentType, &tpl.Content, &tpl.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// GetTemplate retrieves a template by ID.
func (s *PostgresStorage) GetTemplate(ctx context.Context, id int) (*types.Template, error) {
	var tpl types.Template
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, document_type, content, is_default FROM templates WHERE id = $1`, id,
	).Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.DocumentType, &tpl.Content, &tpl.IsDefault)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &tpl, nil
}

// CreateTemplate creates a template.
func (s *PostgresStorage) CreateTemplate(ctx context.Context, nt NewTemplate) (*types.Template, error) {
	var tpl types.Template
	err := s.pool.QueryRow(ctx,
		`INSERT INTO templates (name, description, document_type, content, is_default)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, description, document_type, content, is_default`,
		nt.Name, nt.Description, nt.DocumentType, nt.Content, nt.IsDefault,
	).Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.DocumentType, &tpl.Content, &tpl.IsDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return &tpl, nil
}

// UpdateTemplate replaces the mutable fields of a template.
func (s *PostgresStorage) UpdateTemplate(ctx context.Context, id int, nt NewTemplate) (*types.Template, error) {
	var tpl types.Template
	err := s.pool.QueryRow(ctx,
		`UPDATE templates SET name = $1, description = $2, document_type = $3, content = $4, is_default = $5
		 WHERE id = $6
		 RETURNING id, name, description, document_type, content, is_default`,
		nt.Name, nt.Description, nt.DocumentType, nt.Content, nt.IsDefault, id,
	).Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.DocumentType, &tpl.Content, &tpl.IsDefault)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return &tpl, nil
}

// DeleteTemplate removes a template.
func (s *PostgresStorage) DeleteTemplate(ctx context.Context, id int) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
