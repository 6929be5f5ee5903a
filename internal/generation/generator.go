package generation

import (
	"context"
	"errors"

	"github.com/jonathan/smart-resume/internal/llm"
	"github.com/jonathan/smart-resume/internal/types"
)

// Generator produces resume text through a configured completion client.
// It holds no state beyond the client handle it was built with.
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGenerator returns a Generator that calls client on the standard tier.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client, tier: llm.TierStandard}
}

// Model reports the provider model name the generator will call.
func (g *Generator) Model() string {
	return g.client.GetModel(g.tier)
}

// Generate sends prompt to the completion service once.
// Content is returned verbatim. An empty answer yields ErrEmptyResponse; any
// other failure yields a *GenerationError. In both cases err.Error() is the
// text to show the user.
func (g *Generator) Generate(ctx context.Context, prompt string) (types.GeneratedResume, error) {
	text, err := g.client.GenerateContent(ctx, prompt, g.tier)
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			return types.GeneratedResume{}, ErrEmptyResponse
		}
		return types.GeneratedResume{}, &GenerationError{Cause: err}
	}
	if text == "" {
		return types.GeneratedResume{}, ErrEmptyResponse
	}

	return types.GeneratedResume{RawText: text}, nil
}

// DisplayText is the text a user sees for a generation outcome.
func DisplayText(resume types.GeneratedResume, err error) string {
	if err != nil {
		return err.Error()
	}
	return resume.RawText
}
