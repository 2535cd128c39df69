// Package pipeline provides the orchestration for one document rewrite
// attempt. A run advances a persisted processing record through
// pending -> processing -> completed|failed; completed and failed are
// terminal and nothing transitions out of them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Progress milestones for one run. Values are only ever written in increasing
// order so any poller observes a non-decreasing sequence.
const (
	progressStarted     = 10
	progressExtracted   = 30
	progressPromptBuilt = 50
	progressRewritten   = 75
	progressDone        = 100
)

// Error messages recorded on the processing record.
const (
	msgNotFound  = "Document or job not found"
	msgNoContent = "Could not extract content from document"
	msgUnknown   = "Unknown error"
)

// Runner executes rewrite runs against a storage backend and a rewriter.
type Runner struct {
	store      storage.Storage
	rewriter   llm.Rewriter
	extractor  *extraction.Extractor
	uploadsDir string
}

// NewRunner creates a Runner.
func NewRunner(store storage.Storage, rewriter llm.Rewriter, uploadsDir string) *Runner {
	return &Runner{
		store:      store,
		rewriter:   rewriter,
		extractor:  extraction.New(),
		uploadsDir: uploadsDir,
	}
}

// Run executes one rewrite attempt end-to-end. It is designed to be launched
// as a detached goroutine: it never returns an error, all outcomes are
// recorded on the processing record. At most one run may be in flight per
// processing ID; only the creating request launches it.
func (r *Runner) Run(ctx context.Context, documentID, jobID, processingID int) {
	defer func() {
		// A panic inside a detached run would otherwise kill the process.
		if rec := recover(); rec != nil {
			log.Printf("[pipeline] panic in run for processing %d: %v", processingID, rec)
			r.fail(ctx, documentID, processingID, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	doc, docErr := r.store.GetDocument(ctx, documentID)
	job, jobErr := r.store.GetJob(ctx, jobID)
	if errors.Is(docErr, storage.ErrNotFound) || errors.Is(jobErr, storage.ErrNotFound) {
		r.fail(ctx, documentID, processingID, msgNotFound)
		return
	}
	if docErr != nil {
		r.fail(ctx, documentID, processingID, docErr.Error())
		return
	}
	if jobErr != nil {
		r.fail(ctx, documentID, processingID, jobErr.Error())
		return
	}

	if !r.advance(ctx, documentID, processingID, progressStarted, types.StatusProcessing) {
		return
	}

	content, err := r.extractor.Resolve(doc)
	if err != nil {
		log.Printf("[pipeline] extraction failed for document %d: %v", documentID, err)
	}
	if strings.TrimSpace(content) == "" {
		r.fail(ctx, documentID, processingID, msgNoContent)
		return
	}

	if !r.advance(ctx, documentID, processingID, progressExtracted, "") {
		return
	}

	prompt, err := prompts.BuildTailorPrompt(doc.DocumentType, job, content)
	if err != nil {
		r.fail(ctx, documentID, processingID, err.Error())
		return
	}

	if !r.advance(ctx, documentID, processingID, progressPromptBuilt, "") {
		return
	}

	tailored, err := r.rewriter.Rewrite(ctx, prompt)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = msgUnknown
		}
		r.fail(ctx, documentID, processingID, msg)
		return
	}

	if !r.advance(ctx, documentID, processingID, progressRewritten, "") {
		return
	}

	update := types.DocumentUpdate{
		TailoredContent: &tailored,
		Status:          types.StatusPtr(types.StatusCompleted),
	}
	if path := r.writeTailoredFile(tailored); path != "" {
		update.TailoredFilePath = &path
	}

	if _, err := r.store.UpdateDocument(ctx, documentID, update); err != nil {
		r.fail(ctx, documentID, processingID, err.Error())
		return
	}

	if _, err := r.store.UpdateProcessing(ctx, processingID, types.ProcessingUpdate{
		Progress: types.IntPtr(progressDone),
		Status:   types.StatusPtr(types.StatusCompleted),
	}); err != nil {
		// The document already says completed; record the mismatch and stop.
		log.Printf("[pipeline] failed to complete processing %d: %v", processingID, err)
	}
}

// advance records a progress milestone. When status is non-empty the
// processing status is updated alongside. Returns false if the write failed,
// in which case the run has already been transitioned to failed.
func (r *Runner) advance(ctx context.Context, documentID, processingID, progress int, status types.Status) bool {
	update := types.ProcessingUpdate{Progress: types.IntPtr(progress)}
	if status != "" {
		update.Status = types.StatusPtr(status)
	}
	if _, err := r.store.UpdateProcessing(ctx, processingID, update); err != nil {
		r.fail(ctx, documentID, processingID, err.Error())
		return false
	}
	return true
}

// fail transitions the processing record and the document to failed. Failures
// while recording the failure itself are logged and swallowed; the run stops
// regardless, leaving the record in whatever state it last reached.
func (r *Runner) fail(ctx context.Context, documentID, processingID int, message string) {
	log.Printf("[pipeline] run failed for document %d: %s", documentID, message)

	if _, err := r.store.UpdateProcessing(ctx, processingID, types.ProcessingUpdate{
		Status:       types.StatusPtr(types.StatusFailed),
		ErrorMessage: &message,
	}); err != nil {
		log.Printf("[pipeline] failed to record error on processing %d: %v", processingID, err)
	}

	if _, err := r.store.UpdateDocument(ctx, documentID, types.DocumentUpdate{
		Status: types.StatusPtr(types.StatusFailed),
	}); err != nil {
		log.Printf("[pipeline] failed to mark document %d failed: %v", documentID, err)
	}
}

// writeTailoredFile persists the rewritten text next to the uploads and
// returns its path. A write failure is not fatal to the run; the content
// itself lives on the document record.
func (r *Runner) writeTailoredFile(content string) string {
	if r.uploadsDir == "" {
		return ""
	}
	path := filepath.Join(r.uploadsDir, uuid.New().String()+"-tailored.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Printf("[pipeline] failed to write tailored file: %v", err)
		return ""
	}
	return path
}
