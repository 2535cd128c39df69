// Package extraction resolves the plain-text content of a stored document.
// Pasted text is used as-is; uploaded files are read by file type. Formats
// without inline text support yield a deterministic placeholder string rather
// than an error.
package extraction

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Extractor resolves document content for the pipeline.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Resolve returns the plain-text content for a document. Pasted content takes
// precedence over the stored file. An empty result with a nil error means no
// content could be resolved; the caller decides whether that is fatal.
func (e *Extractor) Resolve(doc *types.Document) (string, error) {
	if doc.OriginalContent != nil && strings.TrimSpace(*doc.OriginalContent) != "" {
		return *doc.OriginalContent, nil
	}

	if doc.OriginalFilePath == nil || *doc.OriginalFilePath == "" {
		return "", nil
	}

	switch doc.FileType {
	case types.FileTypeTxt:
		return extractText(*doc.OriginalFilePath)
	case types.FileTypeGdoc:
		return extractHTML(*doc.OriginalFilePath)
	case types.FileTypePDF:
		return pdfPlaceholder(doc.FileName, *doc.OriginalFilePath)
	case types.FileTypeDocx:
		return fmt.Sprintf("[DOCX document %q: inline text extraction is not supported. Paste the document text for best results.]", doc.FileName), nil
	default:
		return fmt.Sprintf("[Unsupported file type %q for document %q.]", doc.FileType, doc.FileName), nil
	}
}

// extractText reads a plain-text file.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(data), nil
}

// extractHTML flattens the text of an exported Google Doc (HTML) into
// newline-separated lines, one per block element.
func extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse document HTML: %w", err)
	}

	var lines []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		// No block structure; fall back to the whole body text.
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}

// pdfPlaceholder validates the PDF and returns a deterministic placeholder
// carrying the page count. Inline PDF text extraction is not supported.
func pdfPlaceholder(fileName, path string) (string, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	return fmt.Sprintf("[PDF document %q: %d page(s). Inline text extraction is not supported; paste the document text for best results.]", fileName, pageCount), nil
}
