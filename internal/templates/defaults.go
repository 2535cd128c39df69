package templates

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Defaults returns the built-in template set, seeded when a document type has
// no templates yet.
func Defaults() []storage.NewTemplate {
	return []storage.NewTemplate{
		{
			Name:         "Professional Resume",
			Description:  "A clean, professional resume layout suitable for most industries",
			DocumentType: types.DocumentTypeCV,
			IsDefault:    true,
			Content: `# PROFESSIONAL RESUME

CONTACT INFORMATION
------------------
{{name}}
{{email}} | {{phone}} | {{location}}

PROFESSIONAL SUMMARY
-------------------
{{summary}}

SKILLS
------
{{skills}}

EXPERIENCE
----------
{{experience}}

EDUCATION
---------
{{education}}

CERTIFICATIONS
-------------
{{certifications}}`,
		},
		{
			Name:         "Modern Resume",
			Description:  "A contemporary resume design with a creative touch",
			DocumentType: types.DocumentTypeCV,
			Content: `# {{name}}

**{{email}} • {{phone}} • {{location}}**

## PROFESSIONAL SUMMARY
{{summary}}

## TECHNICAL SKILLS
{{skills}}

## PROFESSIONAL EXPERIENCE
{{experience}}

## EDUCATION
{{education}}

## PROJECTS
{{projects}}`,
		},
		{
			Name:         "Minimalist Resume",
			Description:  "A clean and simple resume design that focuses on content",
			DocumentType: types.DocumentTypeCV,
			Content: `{{name}}
{{email}} | {{phone}}

OBJECTIVE
---------
{{summary}}

SKILLS
------
{{skills}}

EXPERIENCE
----------
{{experience}}

EDUCATION
---------
{{education}}`,
		},
		{
			Name:         "Traditional Cover Letter",
			Description:  "A formal cover letter format with proper business letter structure",
			DocumentType: types.DocumentTypeCover,
			IsDefault:    true,
			Content: `{{date}}

Dear {{recipientName}},

I am writing to express my interest in the {{position}} role at {{companyName}}.

{{paragraphAboutExperience}}

{{paragraphAboutSkills}}

{{paragraphAboutCompanyFit}}

Thank you for considering my application. I look forward to the opportunity to discuss how my background aligns with your needs.

Sincerely,
{{yourName}}`,
		},
		{
			Name:         "Modern Cover Letter",
			Description:  "A concise, direct cover letter for contemporary companies",
			DocumentType: types.DocumentTypeCover,
			Content: `Dear {{recipientName}},

I'm excited to apply for the {{position}} position at {{companyName}}.

{{paragraphAboutSkills}}

{{paragraphAboutCompanyFit}}

Best regards,
{{yourName}}`,
		},
	}
}

// Seed inserts the default templates for any document type that has none yet.
// Returns the number of templates created.
func Seed(ctx context.Context, store storage.Storage) (int, error) {
	seeded := make(map[types.DocumentType]bool)
	for _, docType := range []types.DocumentType{types.DocumentTypeCV, types.DocumentTypeCover} {
		existing, err := store.ListTemplates(ctx, &docType)
		if err != nil {
			return 0, fmt.Errorf("failed to list %s templates: %w", docType, err)
		}
		seeded[docType] = len(existing) > 0
	}

	created := 0
	for _, tpl := range Defaults() {
		if seeded[tpl.DocumentType] {
			continue
		}
		if _, err := store.CreateTemplate(ctx, tpl); err != nil {
			return created, fmt.Errorf("failed to seed template %q: %w", tpl.Name, err)
		}
		created++
	}
	return created, nil
}
