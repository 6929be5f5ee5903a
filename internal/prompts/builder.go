package prompts

import (
	"fmt"

	"github.com/jonathan/smart-resume/internal/types"
)

const (
	resumeFile        = "resume.json"
	generateResumeKey = "generate_resume"
)

// BuildResumePrompt renders the resume-generation prompt for input.
// Every field is embedded verbatim, empty ones included; nothing is escaped or trimmed.
func BuildResumePrompt(input *types.ResumeInput) string {
	template := MustGet(resumeFile, generateResumeKey)

	return Format(template, map[string]string{
		"Name":           input.Name,
		"Email":          input.Email,
		"Phone":          input.Phone,
		"LinkedIn":       input.LinkedInURL,
		"Summary":        input.Summary,
		"Experience":     FormatExperiences(input.Experiences),
		"Skills":         input.Skills,
		"Degree":         input.Degree,
		"University":     input.University,
		"GraduationYear": input.GraduationYear,
		"Certifications": input.Certifications,
		"Languages":      input.LanguagesSpoken,
		"Projects":       input.KeyProjects,
	})
}

// FormatExperiences is the raw textual rendering of the experience sequence
// embedded in the prompt.
func FormatExperiences(entries []types.ExperienceEntry) string {
	return fmt.Sprintf("%+v", entries)
}
