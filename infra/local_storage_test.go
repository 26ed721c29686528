package infra

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir(), "http://testserver/media")
	require.NoError(t, err)
	return storage
}

func TestLocalStorageSaveAndGet(t *testing.T) {
	storage := newLocalStorage(t)
	ctx := context.Background()
	blob := []byte("image bytes")

	require.NoError(t, storage.Save(ctx, "pic.png", bytes.NewReader(blob), int64(len(blob)), "image/png"))

	reader, err := storage.Get(ctx, "pic.png")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestLocalStorageExistsAndDelete(t *testing.T) {
	storage := newLocalStorage(t)
	ctx := context.Background()

	exists, err := storage.Exists(ctx, "pic.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, storage.Save(ctx, "pic.png", bytes.NewReader([]byte("x")), 1, "image/png"))
	exists, err = storage.Exists(ctx, "pic.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, storage.Delete(ctx, "pic.png"))
	exists, err = storage.Exists(ctx, "pic.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting an absent blob is not an error
	require.NoError(t, storage.Delete(ctx, "pic.png"))
}

func TestLocalStorageIgnoresPathTraversal(t *testing.T) {
	storage := newLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "../../escape.png", bytes.NewReader([]byte("x")), 1, "image/png"))

	// the blob stays inside the media directory under its base name
	_, err := os.Stat(filepath.Join(storage.Root(), "escape.png"))
	assert.NoError(t, err)
}

func TestLocalStorageURL(t *testing.T) {
	storage := newLocalStorage(t)

	assert.Equal(t, "http://testserver/media/pic.png", storage.URL("pic.png"))
	assert.Equal(t, "http://testserver/media/pic.png", storage.URL("../pic.png"))
}
