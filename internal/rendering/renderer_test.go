package rendering

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/smart-resume/internal/storage/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Save(context.Context, string, string, io.Reader) (int64, error) {
	return 0, errors.New("disk full")
}

func (failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("disk full")
}

func TestRender_SavesUnderUniqueKey(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(local.New(dir))
	ctx := context.Background()

	first, err := renderer.Render(ctx, uuid.New(), janeDoe(), "text")
	require.NoError(t, err)
	second, err := renderer.Render(ctx, uuid.New(), janeDoe(), "text")
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.Equal(t, FileName, first.FileName)
	assert.Equal(t, first.ID.String()+"/"+FileName, first.Key)

	data, err := os.ReadFile(filepath.Join(dir, first.ID.String(), FileName))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), first.Size)

	paragraphs, err := ExtractParagraphs(data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", paragraphs[0])
}

func TestRender_StoreFailure(t *testing.T) {
	renderer := NewRenderer(failingStore{})

	stored, err := renderer.Render(context.Background(), uuid.New(), janeDoe(), "")
	assert.Nil(t, stored)
	require.Error(t, err)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, err.Error(), "Error saving resume")
	assert.Contains(t, err.Error(), "disk full")
}

func TestDocumentKey(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000/Generated_Resume.docx", DocumentKey(id))
}
