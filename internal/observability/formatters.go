// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/smart-resume/internal/rendering"
	"github.com/jonathan/smart-resume/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = truncate(line, boxWidth-4)
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintResumeInput outputs a summary of the collected resume fields.
func (p *Printer) PrintResumeInput(input *types.ResumeInput) {
	if input == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", input.Name))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", input.Email))
	sb.WriteString(fmt.Sprintf("Phone:     %s\n", input.Phone))
	sb.WriteString(fmt.Sprintf("Education: %s, %s (%s)\n", input.Degree, input.University, input.GraduationYear))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(input.Experiences)))
	count := min(len(input.Experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", rendering.ExperienceHeading(input.Experiences[i])))
	}
	if len(input.Experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(input.Experiences)-maxItemsToShow))
	}

	var optional []string
	if input.Certifications != "" {
		optional = append(optional, rendering.HeadingCertifications)
	}
	if input.LanguagesSpoken != "" {
		optional = append(optional, rendering.HeadingLanguages)
	}
	if input.KeyProjects != "" {
		optional = append(optional, rendering.HeadingProjects)
	}
	if len(optional) > 0 {
		sb.WriteString(fmt.Sprintf("\nOptional: %s\n", strings.Join(optional, ", ")))
	}

	p.printBox("RESUME INPUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs the generated resume text, or the failure message
// shown in its place. Long lines are wrapped, not truncated.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPreview(text string) {
	var wrapped []string
	for _, line := range strings.Split(text, "\n") {
		wrapped = append(wrapped, wrap(line, boxWidth-4)...)
	}
	p.printBox("RESUME PREVIEW", strings.Join(wrapped, "\n"))
}

// wrap splits line into chunks of at most width runes, breaking on spaces
// where possible.
func wrap(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	var cur []rune
	for _, w := range words {
		wr := []rune(w)
		for len(wr) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, string(wr[:width]))
			wr = wr[width:]
		}
		switch {
		case len(cur) == 0:
			cur = wr
		case len(cur)+1+len(wr) <= width:
			cur = append(append(cur, ' '), wr...)
		default:
			out = append(out, string(cur))
			cur = wr
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// PrintDocumentOutline outputs the heading structure of a rendered document.
func (p *Printer) PrintDocumentOutline(doc *rendering.Document) {
	if doc == nil || len(doc.Blocks) == 0 {
		return
	}

	var sb strings.Builder
	for _, b := range doc.Blocks {
		if b.Kind != rendering.BlockHeading {
			continue
		}
		indent := strings.Repeat("  ", b.Level-1)
		sb.WriteString(fmt.Sprintf("%sH%d %s\n", indent, b.Level, b.Text))
	}

	p.printBox("DOCUMENT OUTLINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStoredDocument outputs where the document for a run was written.
func (p *Printer) PrintStoredDocument(doc *types.StoredDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:   %s\n", doc.ID))
	sb.WriteString(fmt.Sprintf("File: %s\n", doc.FileName))
	sb.WriteString(fmt.Sprintf("Key:  %s\n", doc.Key))
	sb.WriteString(fmt.Sprintf("Size: %d bytes", doc.Size))

	p.printBox("SAVED DOCUMENT", sb.String())
}

// PrintRenderFailure outputs a render error in place of the document summary.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRenderFailure(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "⚠ NO DOCUMENT AVAILABLE")
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintln(p.out, err.Error())
}
