package prompts

import (
	"github.com/jonathan/resume-tailor/internal/types"
)

// tailorFile is the embedded prompt file for document tailoring.
const tailorFile = "tailor.json"

// DocumentLabel returns the human-readable label used in the prompt for a
// document type.
func DocumentLabel(documentType types.DocumentType) string {
	if documentType == types.DocumentTypeCover {
		return "Cover Letter"
	}
	return "CV/Resume"
}

// BuildTailorPrompt renders the instruction string sent to the generative
// rewriter. Output is deterministic for a given document type, job, and
// content.
func BuildTailorPrompt(documentType types.DocumentType, job *types.Job, content string) (string, error) {
	template, err := Get(tailorFile, "tailor_document")
	if err != nil {
		return "", err
	}

	return Format(template, map[string]string{
		"DocumentLabel":  DocumentLabel(documentType),
		"JobTitle":       job.Title,
		"Company":        job.Company,
		"JobDescription": job.Description,
		"Content":        content,
	}), nil
}
