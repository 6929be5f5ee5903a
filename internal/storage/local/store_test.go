package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/smart-resume/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	n, err := store.Save(ctx, "abc/Generated_Resume.docx", "application/octet-stream", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	onDisk, err := os.ReadFile(filepath.Join(dir, "abc", "Generated_Resume.docx"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(onDisk))

	rc, err := store.Open(ctx, "abc/Generated_Resume.docx")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, "k", "", strings.NewReader("a much longer first body"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "k", "", strings.NewReader("short"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "short", string(data))
}

func TestStore_OpenMissing(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "missing/file.docx")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, "../outside", "", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = store.Open(ctx, "/etc/passwd")
	assert.Error(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "k", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
