package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/media/")

	ref, err := store.Save(context.Background(), "recipes/abc.png", []byte("png bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/media/recipes/abc.png", ref)

	written, err := os.ReadFile(filepath.Join(dir, "recipes", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), written)
}
