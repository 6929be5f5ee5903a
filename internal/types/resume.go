// Package types provides type definitions for structured data used throughout the smart-resume system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxExperiences is the largest number of experience entries a resume may carry.
const MaxExperiences = 10

// ResumeInput holds every field the user supplies for one resume.
// Optional fields are empty strings when not provided.
type ResumeInput struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	LinkedInURL string            `json:"linkedin_url"`
	Summary     string            `json:"summary"`
	Experiences []ExperienceEntry `json:"experiences" validate:"min=1,max=10,dive"`
	Skills      string            `json:"skills"` // comma-separated free text

	Degree         string `json:"degree"`
	University     string `json:"university"`
	GraduationYear string `json:"graduation_year"`

	Certifications  string `json:"certifications,omitempty"`
	LanguagesSpoken string `json:"languages_spoken,omitempty"`
	KeyProjects     string `json:"key_projects,omitempty"`
}

// ExperienceEntry is a single job held by the candidate.
type ExperienceEntry struct {
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Validate checks the experience count bound. Every text field, the name
// included, may be empty.
func (r *ResumeInput) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// GeneratedResume is the text returned by the completion service for one prompt.
type GeneratedResume struct {
	RawText string `json:"raw_text"`
}

// StoredDocument describes where the serialized document for one generate action was written.
type StoredDocument struct {
	ID       uuid.UUID `json:"id"`
	Key      string    `json:"key"`
	FileName string    `json:"file_name"`
	Size     int64     `json:"size"`
}
