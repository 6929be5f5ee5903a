// Package rendering builds resume documents and serializes them as DOCX files.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a document part template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure building or saving the resume document.
// Its message is the text shown to the user in place of a download.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Error saving resume: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("Error saving resume: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
