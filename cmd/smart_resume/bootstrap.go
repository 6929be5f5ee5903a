package main

import (
	"context"
	"fmt"

	"github.com/jonathan/smart-resume/internal/config"
	"github.com/jonathan/smart-resume/internal/generation"
	"github.com/jonathan/smart-resume/internal/llm"
	"github.com/jonathan/smart-resume/internal/rendering"
	"github.com/jonathan/smart-resume/internal/storage"
	"github.com/jonathan/smart-resume/internal/storage/local"
	"github.com/jonathan/smart-resume/internal/storage/s3"
)

// newLLMClient is replaced in tests.
var newLLMClient = llm.NewClient

// app holds the handles created once at startup and shared by a command.
type app struct {
	cfg       *config.Config
	client    llm.Client
	generator *generation.Generator
	store     storage.Store
	renderer  *rendering.Renderer
}

// newApp wires the generator and document store from cfg. The API key is
// checked before anything else so no client exists without one.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmConfig := llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Model)
	client, err := newLLMClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &app{
		cfg:       cfg,
		client:    client,
		generator: generation.NewGenerator(client),
		store:     store,
		renderer:  rendering.NewRenderer(store),
	}, nil
}

// Close releases the LLM client.
func (a *app) Close() error {
	return a.client.Close()
}

// newStore selects the document store for the configured backend.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageS3:
		store, err := s3.New(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 store: %w", err)
		}
		return store, nil
	case config.StorageLocal, "":
		return local.New(cfg.OutputDir), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// location describes where key lives in store, for printing.
func location(store storage.Store, key string) string {
	switch s := store.(type) {
	case *local.Store:
		if p, err := s.Path(key); err == nil {
			return p
		}
	case *s3.Store:
		return s.Location(key)
	}
	return key
}
