package rendering

import (
	"bytes"
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/jonathan/smart-resume/internal/storage"
	"github.com/jonathan/smart-resume/internal/types"
)

// Renderer builds resume documents and writes them to a store.
type Renderer struct {
	store storage.Store
}

// NewRenderer creates a Renderer that saves documents to store.
func NewRenderer(store storage.Store) *Renderer {
	return &Renderer{store: store}
}

// DocumentKey is the storage key for the document of generate action id.
// Every action gets its own key, so documents never overwrite each other.
func DocumentKey(id uuid.UUID) string {
	return path.Join(id.String(), FileName)
}

// Render builds the document for input, serializes it, and saves it under
// DocumentKey(id). Any failure is returned as a *RenderError and nothing is
// reported as stored.
func (r *Renderer) Render(ctx context.Context, id uuid.UUID, input *types.ResumeInput, generated string) (*types.StoredDocument, error) {
	doc := BuildDocument(input, generated)

	data, err := doc.DOCX()
	if err != nil {
		return nil, &RenderError{Message: "failed to build document", Cause: err}
	}

	key := DocumentKey(id)
	size, err := r.store.Save(ctx, key, ContentType, bytes.NewReader(data))
	if err != nil {
		return nil, &RenderError{Message: "failed to save document", Cause: err}
	}

	return &types.StoredDocument{
		ID:       id,
		Key:      key,
		FileName: FileName,
		Size:     size,
	}, nil
}
