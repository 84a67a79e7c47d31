package storage_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/internal/storage"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func TestMediaStorage_SaveProductImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	media := storage.NewMediaStorage(fs)

	rel, err := media.SaveProductImage("photo.PNG", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, storage.ProductImageDir+"/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	stored, err := afero.ReadFile(fs, "/"+rel)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	// Two uploads of the same file get distinct names.
	other, err := media.SaveProductImage("photo.png", pngHeader)
	require.NoError(t, err)
	assert.NotEqual(t, rel, other)
}

func TestMediaStorage_RejectsNonImages(t *testing.T) {
	media := storage.NewMediaStorage(afero.NewMemMapFs())

	_, err := media.SaveProductImage("notes.txt", []byte("just some text"))
	assert.True(t, errors.Is(err, storage.ErrNotAnImage))

	_, err = media.SaveProductImage("empty.png", nil)
	assert.True(t, errors.Is(err, storage.ErrEmptyFile))
}

func TestMediaStorage_Remove(t *testing.T) {
	media := storage.NewMediaStorage(afero.NewMemMapFs())

	rel, err := media.SaveProductImage("a.png", pngHeader)
	require.NoError(t, err)

	require.NoError(t, media.Remove(rel))
	exists, err := media.Exists(rel)
	require.NoError(t, err)
	assert.False(t, exists)

	// Removing twice is fine.
	assert.NoError(t, media.Remove(rel))

	err = media.Remove("../../etc/passwd")
	assert.True(t, errors.Is(err, storage.ErrOutsideMedia))
}
