package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/smart-resume/internal/types"
)

// Section headings, in document order.
const (
	HeadingSummary        = "Professional Summary"
	HeadingExperience     = "Work Experience"
	HeadingSkills         = "Skills"
	HeadingEducation      = "Education"
	HeadingCertifications = "Certifications"
	HeadingLanguages      = "Languages Spoken"
	HeadingProjects       = "Key Projects"
)

// contactSeparator joins the contact fields on the line under the name.
const contactSeparator = " | "

// BlockKind distinguishes headings from body paragraphs.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
)

// Block is one paragraph of a resume document.
type Block struct {
	Kind     BlockKind
	Level    int // heading level 1-3; zero for paragraphs
	Text     string
	Centered bool
}

// StyleID returns the WordprocessingML paragraph style for the block, or "".
func (b Block) StyleID() string {
	if b.Kind == BlockHeading {
		return fmt.Sprintf("Heading%d", b.Level)
	}
	return ""
}

// Lines returns the block text split at line breaks.
func (b Block) Lines() []string {
	return splitLines(b.Text)
}

// Document is an ordered sequence of headings and paragraphs.
type Document struct {
	Blocks []Block
}

// AddHeading appends a heading at level (1-3).
func (d *Document) AddHeading(text string, level int) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockHeading, Level: level, Text: text})
}

// AddParagraph appends a left-aligned body paragraph.
func (d *Document) AddParagraph(text string) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockParagraph, Text: text})
}

// AddCenteredParagraph appends a centered body paragraph.
func (d *Document) AddCenteredParagraph(text string) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockParagraph, Text: text, Centered: true})
}

// BuildDocument lays out the resume document from the structured input.
// The generated text is not quoted: every section is rebuilt from input,
// so the model's output only ever appears in the preview.
func BuildDocument(input *types.ResumeInput, _ string) *Document {
	doc := &Document{}

	doc.AddHeading(input.Name, 1)
	doc.AddCenteredParagraph(strings.Join([]string{input.Email, input.Phone, input.LinkedInURL}, contactSeparator))

	doc.AddHeading(HeadingSummary, 2)
	doc.AddParagraph(input.Summary)

	doc.AddHeading(HeadingExperience, 2)
	for _, exp := range input.Experiences {
		doc.AddHeading(ExperienceHeading(exp), 3)
		doc.AddParagraph(exp.Description)
	}

	doc.AddHeading(HeadingSkills, 2)
	doc.AddParagraph(input.Skills)

	doc.AddHeading(HeadingEducation, 2)
	doc.AddParagraph(fmt.Sprintf("%s, %s (%s)", input.Degree, input.University, input.GraduationYear))

	optional := []struct {
		heading string
		body    string
	}{
		{HeadingCertifications, input.Certifications},
		{HeadingLanguages, input.LanguagesSpoken},
		{HeadingProjects, input.KeyProjects},
	}
	for _, section := range optional {
		if section.body == "" {
			continue
		}
		doc.AddHeading(section.heading, 2)
		doc.AddParagraph(section.body)
	}

	return doc
}

// ExperienceHeading formats the sub-heading for one experience entry.
func ExperienceHeading(exp types.ExperienceEntry) string {
	return fmt.Sprintf("%s at %s (%s)", exp.JobTitle, exp.Company, exp.Duration)
}
