package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/smart-resume/internal/config"
	"github.com/jonathan/smart-resume/internal/observability"
	"github.com/jonathan/smart-resume/internal/pipeline"
	"github.com/jonathan/smart-resume/internal/rendering"
	"github.com/jonathan/smart-resume/internal/schemas"
	"github.com/jonathan/smart-resume/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resume from a JSON input file",
	Long:  "Builds a prompt from the resume input, generates resume text with Gemini, prints a preview and saves Generated_Resume.docx.",
	RunE:  runGenerate,
}

var (
	generateInputFile string
	generateOutDir    string
	generateModel     string
	generateVerbose   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInputFile, "input", "i", "", "Path to resume input JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutDir, "out-dir", "o", "", "Directory for generated documents (local storage)")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "Gemini model name")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print input summary and document outline")

	if err := generateCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, os.Getenv)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	if generateOutDir != "" {
		cfg.Storage = config.StorageLocal
		cfg.OutputDir = generateOutDir
	}
	if generateModel != "" {
		cfg.Model = generateModel
	}
	verbose := generateVerbose || cfg.Verbose

	input, err := loadResumeInput(generateInputFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	if verbose {
		printer.PrintResumeInput(input)
		fmt.Fprintf(out, "Model: %s\n", a.generator.Model())
	}

	result, err := pipeline.New(a.generator, a.renderer).Run(ctx, input)
	if err != nil {
		return err
	}

	printer.PrintPreview(result.Preview())

	if !result.Downloadable() {
		printer.PrintRenderFailure(result.RenderErr)
		return fmt.Errorf("no document was saved: %w", result.RenderErr)
	}

	if verbose {
		printer.PrintDocumentOutline(rendering.BuildDocument(input, result.Resume.RawText))
		printer.PrintStoredDocument(result.Document)
	}
	fmt.Fprintf(out, "Resume saved to %s\n", location(a.store, result.Document.Key))
	return nil
}

// loadResumeInput reads and schema-checks a resume input file.
func loadResumeInput(path string) (*types.ResumeInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	if err := schemas.ValidateResumeInput(data); err != nil {
		return nil, fmt.Errorf("input file %s: %w", path, err)
	}

	var input types.ResumeInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	return &input, nil
}
