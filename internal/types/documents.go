// Package types provides type definitions for structured data used throughout the resume-tailor system.
package types

import "time"

// FileType identifies the format of an uploaded document.
type FileType string

// Supported file types
const (
	FileTypeDocx FileType = "docx"
	FileTypePDF  FileType = "pdf"
	FileTypeGdoc FileType = "gdoc"
	FileTypeTxt  FileType = "txt"
)

// DocumentType distinguishes resumes from cover letters.
type DocumentType string

// Supported document types
const (
	DocumentTypeCV    DocumentType = "cv"
	DocumentTypeCover DocumentType = "cover"
)

// Status tracks the lifecycle of a document or processing record.
type Status string

// Lifecycle states. Completed and Failed are terminal.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further status transitions occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ValidFileType reports whether t is a supported upload format.
func ValidFileType(t string) bool {
	switch FileType(t) {
	case FileTypeDocx, FileTypePDF, FileTypeGdoc, FileTypeTxt:
		return true
	}
	return false
}

// ValidDocumentType reports whether t is cv or cover.
func ValidDocumentType(t string) bool {
	switch DocumentType(t) {
	case DocumentTypeCV, DocumentTypeCover:
		return true
	}
	return false
}

// Document represents an uploaded or pasted source text plus metadata.
// It is the subject of rewriting.
type Document struct {
	ID               int          `json:"id"`
	FileName         string       `json:"fileName"`
	FileType         FileType     `json:"fileType"`
	DocumentType     DocumentType `json:"documentType"`
	OriginalContent  *string      `json:"originalContent"`
	TailoredContent  *string      `json:"tailoredContent"`
	OriginalFilePath *string      `json:"originalFilePath,omitempty"`
	TailoredFilePath *string      `json:"tailoredFilePath,omitempty"`
	JobTitle         *string      `json:"jobTitle"`
	Company          *string      `json:"company"`
	JobDescription   *string      `json:"jobDescription"`
	Status           Status       `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// Job represents the target-role details a document is tailored against.
// Immutable once created.
type Job struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	DocumentID  int    `json:"documentId"`
}

// Processing tracks one rewrite attempt for a document.
// It is created in pending state with progress 0 and is mutated only by the
// pipeline runner until it reaches a terminal status.
type Processing struct {
	ID           int     `json:"id"`
	DocumentID   int     `json:"documentId"`
	Progress     int     `json:"progress"`
	Status       Status  `json:"status"`
	ErrorMessage *string `json:"errorMessage"`
}

// Template is a reusable document layout with {{variable}} placeholders.
type Template struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	DocumentType DocumentType `json:"documentType"`
	Content      string       `json:"content"`
	IsDefault    bool         `json:"isDefault"`
}

// DocumentUpdate holds the mutable fields of a Document. Nil fields are left
// unchanged by Storage.UpdateDocument.
type DocumentUpdate struct {
	OriginalContent  *string
	TailoredContent  *string
	TailoredFilePath *string
	JobTitle         *string
	Company          *string
	JobDescription   *string
	Status           *Status
}

// ProcessingUpdate holds the mutable fields of a Processing record. Nil fields
// are left unchanged by Storage.UpdateProcessing.
type ProcessingUpdate struct {
	Progress     *int
	Status       *Status
	ErrorMessage *string
}

// StringPtr returns a pointer to s. Convenience for building updates.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// StatusPtr returns a pointer to s.
func StatusPtr(s Status) *Status { return &s }
