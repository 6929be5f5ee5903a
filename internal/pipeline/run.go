// Package pipeline provides the high-level orchestration of one generate action:
// prompt assembly, model invocation, document rendering and storage.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/smart-resume/internal/generation"
	"github.com/jonathan/smart-resume/internal/prompts"
	"github.com/jonathan/smart-resume/internal/types"
)

// Step names reported through ProgressEvent.
const (
	StepPrompt   = "build_prompt"
	StepGenerate = "generate_resume"
	StepRender   = "render_document"
)

// Progress categories.
const (
	CategoryInfo    = "info"
	CategorySuccess = "success"
	CategoryFailure = "failure"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Generator produces resume text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (types.GeneratedResume, error)
}

// Renderer builds and stores the resume document for one run.
type Renderer interface {
	Render(ctx context.Context, id uuid.UUID, input *types.ResumeInput, generated string) (*types.StoredDocument, error)
}

// Result is the outcome of one run. Generation and rendering fail
// independently; a failed step leaves its error set and its value empty.
type Result struct {
	ID            uuid.UUID
	Prompt        string
	Resume        types.GeneratedResume
	GenerationErr error
	Document      *types.StoredDocument
	RenderErr     error
}

// Preview is the text shown to the user: the generated resume, or the
// generation failure message.
func (r *Result) Preview() string {
	return generation.DisplayText(r.Resume, r.GenerationErr)
}

// Downloadable reports whether a document was stored for this run.
func (r *Result) Downloadable() bool {
	return r.RenderErr == nil && r.Document != nil
}

// Pipeline runs generate actions. It is safe for concurrent use when its
// Generator and Renderer are.
type Pipeline struct {
	generator  Generator
	renderer   Renderer
	onProgress ProgressCallback
	newID      func() uuid.UUID
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress registers a callback for progress events.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) { p.onProgress = cb }
}

// WithIDSource overrides how run IDs are allocated.
func WithIDSource(newID func() uuid.UUID) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// New creates a Pipeline.
func New(generator Generator, renderer Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		generator: generator,
		renderer:  renderer,
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs one generate action for input. The returned error is non-nil
// only when input fails validation; generation and rendering failures are
// reported on the Result.
func (p *Pipeline) Run(ctx context.Context, input *types.ResumeInput) (*Result, error) {
	if input == nil {
		return nil, fmt.Errorf("invalid resume input: nil")
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume input: %w", err)
	}

	result := &Result{ID: p.newID()}
	runID := result.ID.String()

	log.Printf("[%s] Step 1/3: Building prompt...", runID)
	result.Prompt = prompts.BuildResumePrompt(input)
	p.emit(StepPrompt, CategorySuccess, runID, fmt.Sprintf("Built prompt with %d experience entries", len(input.Experiences)), nil)

	log.Printf("[%s] Step 2/3: Generating resume text...", runID)
	result.Resume, result.GenerationErr = p.generator.Generate(ctx, result.Prompt)
	if result.GenerationErr != nil {
		log.Printf("[%s] Resume generation failed: %v", runID, result.GenerationErr)
		p.emit(StepGenerate, CategoryFailure, runID, result.GenerationErr.Error(), nil)
	} else {
		p.emit(StepGenerate, CategorySuccess, runID, fmt.Sprintf("Generated %d characters", len(result.Resume.RawText)), nil)
	}

	log.Printf("[%s] Step 3/3: Rendering document...", runID)
	result.Document, result.RenderErr = p.renderer.Render(ctx, result.ID, input, result.Resume.RawText)
	if result.RenderErr != nil {
		result.Document = nil
		log.Printf("[%s] Document rendering failed: %v", runID, result.RenderErr)
		p.emit(StepRender, CategoryFailure, runID, result.RenderErr.Error(), nil)
	} else {
		p.emit(StepRender, CategorySuccess, runID, fmt.Sprintf("Saved %s (%d bytes)", result.Document.Key, result.Document.Size), result.Document)
	}

	return result, nil
}

// emit calls the progress callback if configured
func (p *Pipeline) emit(step, category, runID, message string, content any) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}
