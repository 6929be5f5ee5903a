package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/smart-resume/internal/rendering"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.docx>",
	Short: "Print the text of a generated resume document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	text, err := rendering.ExtractText(data)
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", args[0], err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
