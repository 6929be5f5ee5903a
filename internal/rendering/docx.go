package rendering

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

// FileName is the name a generated resume is offered for download under.
const FileName = "Generated_Resume.docx"

// ContentType is the MIME type of a DOCX file.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

//go:embed templates/*
var templateFiles embed.FS

var documentTemplate = template.Must(
	template.New("document.xml.tmpl").
		Funcs(template.FuncMap{"xml": EscapeXML}).
		ParseFS(templateFiles, "templates/document.xml.tmpl"),
)

// staticParts are copied into every package unchanged, in this order.
var staticParts = []struct {
	name   string
	source string
}{
	{"[Content_Types].xml", "templates/content_types.xml"},
	{"_rels/.rels", "templates/package.rels"},
	{"word/_rels/document.xml.rels", "templates/document.xml.rels"},
	{"word/styles.xml", "templates/styles.xml"},
}

// DocumentXML renders the main document part.
func (d *Document) DocumentXML() ([]byte, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, d); err != nil {
		return nil, &TemplateError{
			Message: "failed to execute document template",
			Cause:   err,
		}
	}
	return buf.Bytes(), nil
}

// DOCX serializes the document as a WordprocessingML package.
// The output is byte-for-byte deterministic for a given document.
func (d *Document) DOCX() ([]byte, error) {
	body, err := d.DocumentXML()
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	for _, part := range staticParts {
		content, err := templateFiles.ReadFile(part.source)
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", part.source, err)
		}
		if err := writeZipFile(writer, part.name, content); err != nil {
			return nil, err
		}
	}
	if err := writeZipFile(writer, "word/document.xml", body); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close docx archive: %w", err)
	}
	return output.Bytes(), nil
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	w, err := writer.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write zip entry %s: %w", name, err)
	}
	return nil
}
