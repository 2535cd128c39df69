package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/types"
)

const sampleResume = `Jane Doe
jane@example.com

PROFESSIONAL SUMMARY:
Seasoned backend engineer with ten years of experience.

SKILLS:
Go, PostgreSQL, Kubernetes, Terraform

EXPERIENCE:
Initech, Senior Engineer, 2018-2024

EDUCATION:
BSc Computer Science, State University`

func TestApply_SubstitutesNameAndSections(t *testing.T) {
	template := "Name: {{name}}\nSummary: {{summary}}\nSkills: {{skills}}"

	result := Apply(template, sampleResume, types.DocumentTypeCV, nil)

	assert.Contains(t, result, "Name: Jane Doe")
	assert.Contains(t, result, "Seasoned backend engineer")
	assert.Contains(t, result, "Go, PostgreSQL, Kubernetes, Terraform")
	assert.NotContains(t, result, "{{")
}

func TestApply_NameFallback(t *testing.T) {
	result := Apply("{{name}}", "lowercase first line\nmore text", types.DocumentTypeCV, nil)
	assert.Equal(t, "Your Name", result)
}

func TestApply_OnlyFirstNonBlankLineScannedForName(t *testing.T) {
	content := "resume\nJohn Smith\nmore"
	result := Apply("{{name}}", content, types.DocumentTypeCV, nil)
	assert.Equal(t, "Your Name", result)
}

func TestApply_SectionFallbacks(t *testing.T) {
	result := Apply("{{summary}}|{{skills}}|{{certifications}}", "No sections here", types.DocumentTypeCV, nil)

	parts := strings.Split(result, "|")
	assert.Equal(t, "Experienced professional with a track record of success...", parts[0])
	assert.Equal(t, "Technical Skills, Communication, Leadership", parts[1])
	assert.Equal(t, "", parts[2])
}

func TestApply_JobVariables(t *testing.T) {
	job := &JobDetails{Title: "Staff Engineer", Company: "Globex", Description: "Build things."}

	result := Apply("{{position}} at {{companyName}}", sampleResume, types.DocumentTypeCV, job)
	assert.Equal(t, "Staff Engineer at Globex", result)
}

func TestApply_JobVariableFallbacks(t *testing.T) {
	job := &JobDetails{}

	result := Apply("{{position}} at {{companyName}}", sampleResume, types.DocumentTypeCV, job)
	assert.Equal(t, "Position at Company", result)
}

func TestApply_CoverLetterVariables(t *testing.T) {
	job := &JobDetails{Title: "Staff Engineer", Company: "Globex", Description: "Build things."}
	template := "Dear {{recipientName}},\n{{paragraphAboutExperience}}\n{{paragraphAboutSkills}}\n{{paragraphAboutCompanyFit}}\n{{yourName}}"

	result := Apply(template, sampleResume, types.DocumentTypeCover, job)

	assert.Contains(t, result, "Dear Hiring Manager,")
	assert.Contains(t, result, "Globex")
	assert.Contains(t, result, "Jane Doe")
	// The skills paragraph names at most three extracted skills.
	assert.Contains(t, result, "Go, PostgreSQL, Kubernetes,")
	assert.NotContains(t, result, "Terraform,")
	assert.NotContains(t, result, "{{")
}

func TestApply_CoverVariablesAbsentForCV(t *testing.T) {
	job := &JobDetails{Title: "Staff Engineer", Company: "Globex"}

	result := Apply("{{paragraphAboutCompanyFit}}", sampleResume, types.DocumentTypeCV, job)
	assert.Equal(t, "{{paragraphAboutCompanyFit}}", result)
}

func TestExtractSection(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    string
	}{
		{"summary", []string{"SUMMARY"}, "Seasoned backend engineer with ten years of experience."},
		{"skills", []string{"SKILLS"}, "Go, PostgreSQL, Kubernetes, Terraform"},
		{"no match", []string{"AWARDS"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSection(sampleResume, tt.headers))
		})
	}
}

func TestIsSectionHeader(t *testing.T) {
	assert.True(t, isSectionHeader("EDUCATION:"))
	assert.True(t, isSectionHeader("WORK HISTORY--"))
	assert.False(t, isSectionHeader("EDUCATION"))
	assert.False(t, isSectionHeader("Education:"))
	assert.False(t, isSectionHeader(""))
	assert.False(t, isSectionHeader("---------"))
}
