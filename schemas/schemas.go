// Package schemas holds the JSON Schema documents for the structured inputs
// accepted by the CLI and the HTTP API.
package schemas

import _ "embed"

// ResumeInput is the schema for a resume input document.
//
//go:embed resume_input.schema.json
var ResumeInput string
