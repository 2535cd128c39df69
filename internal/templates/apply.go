// Package templates applies document templates by substituting {{variable}}
// placeholders with values extracted from the document content and the
// submitted job details.
package templates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

// JobDetails carries the job fields available for substitution.
type JobDetails struct {
	Title       string
	Company     string
	Description string
}

var nameRe = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)

// Apply renders templateContent by replacing its {{variable}} placeholders.
// Values are extracted from documentContent where possible; generic fallbacks
// fill the rest.
func Apply(templateContent, documentContent string, documentType types.DocumentType, job *JobDetails) string {
	name := "Your Name"
	for _, line := range strings.Split(documentContent, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := nameRe.FindString(line); m != "" {
			name = m
		}
		break
	}

	variables := map[string]string{
		"name":    name,
		"content": documentContent,
		// Generic fallbacks; extracted more intelligently where sections exist.
		"email":    "your.email@example.com",
		"phone":    "123-456-7890",
		"location": "City, State",
		"summary": sectionOr(documentContent, []string{"SUMMARY", "PROFILE", "OBJECTIVE", "ABOUT"},
			"Experienced professional with a track record of success..."),
		"skills": sectionOr(documentContent, []string{"SKILLS", "EXPERTISE", "COMPETENCIES"},
			"Technical Skills, Communication, Leadership"),
		"experience": sectionOr(documentContent, []string{"EXPERIENCE", "EMPLOYMENT", "WORK"},
			"Professional work history and accomplishments"),
		"education": sectionOr(documentContent, []string{"EDUCATION", "ACADEMIC"},
			"Degree, Institution, Year"),
		"certifications": sectionOr(documentContent, []string{"CERTIFICATIONS", "CERTIFICATES"}, ""),
		"projects":       sectionOr(documentContent, []string{"PROJECTS", "PORTFOLIO"}, ""),
	}

	if job != nil {
		variables["position"] = fallback(job.Title, "Position")
		variables["companyName"] = fallback(job.Company, "Company")
		variables["jobDescription"] = job.Description

		if documentType == types.DocumentTypeCover {
			variables["date"] = time.Now().Format("January 2, 2006")
			variables["recipientName"] = "Hiring Manager"
			variables["yourName"] = name
			variables["paragraphAboutExperience"] = experienceParagraph(job)
			variables["paragraphAboutSkills"] = skillsParagraph(documentContent)
			variables["paragraphAboutCompanyFit"] = companyFitParagraph(job)
		}
	}

	result := templateContent
	for key, value := range variables {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// ExtractSection returns the content under the first matching section header,
// up to the next header-looking line. Returns "" when no header matches.
func ExtractSection(content string, possibleHeaders []string) string {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		upper := strings.ToUpper(strings.TrimSpace(line))

		matched := false
		for _, header := range possibleHeaders {
			if strings.Contains(upper, header) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		var section []string
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if isSectionHeader(next) {
				break
			}
			if next != "" {
				section = append(section, next)
			}
		}
		return strings.Join(section, "\n")
	}

	return ""
}

// isSectionHeader reports whether a line looks like the start of another
// section: all-caps and terminated like a heading.
func isSectionHeader(line string) bool {
	if line == "" || strings.HasPrefix(line, "-") {
		return false
	}
	if strings.ToUpper(line) != line {
		return false
	}
	return strings.HasSuffix(line, ":") || strings.HasSuffix(line, "--")
}

func sectionOr(content string, headers []string, fallbackValue string) string {
	if section := ExtractSection(content, headers); section != "" {
		return section
	}
	return fallbackValue
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func experienceParagraph(job *JobDetails) string {
	title := fallback(job.Title, "this position")
	company := fallback(job.Company, "your company")
	return fmt.Sprintf("Throughout my career, I have developed a strong foundation in skills that would directly benefit %s. My experience has equipped me with the expertise needed for %s, and I am confident in my ability to make significant contributions to your team.", company, title)
}

func skillsParagraph(documentContent string) string {
	keySkills := "relevant skills"
	if section := ExtractSection(documentContent, []string{"SKILLS", "EXPERTISE", "COMPETENCIES"}); section != "" {
		parts := strings.Split(section, ",")
		if len(parts) > 3 {
			parts = parts[:3]
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		keySkills = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("I bring expertise in %s, which aligns perfectly with the requirements outlined in the job description. I am particularly adept at applying these skills to deliver measurable results and would welcome the opportunity to bring this expertise to your organization.", keySkills)
}

func companyFitParagraph(job *JobDetails) string {
	company := fallback(job.Company, "your company")
	return fmt.Sprintf("I am particularly drawn to %s because of its reputation for excellence and innovation in the industry. After researching your company values and recent achievements, I believe my professional approach and work ethic would integrate seamlessly with your team culture.", company)
}
