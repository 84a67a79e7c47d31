// Package storage keeps uploaded media files under a namespaced directory tree.
package storage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ProductImageDir is where product images live, relative to the media root.
const ProductImageDir = "shop/product_image/image"

var (
	// ErrEmptyFile is returned when an upload carries no bytes.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNotAnImage is returned when the content is not a recognised image type.
	ErrNotAnImage = errors.New("file is not an image")
	// ErrOutsideMedia is returned for paths that escape the product image directory.
	ErrOutsideMedia = errors.New("path is outside the media directory")
)

// MediaStorage stores files on an afero filesystem rooted at the media root.
type MediaStorage struct {
	fs afero.Fs
}

// NewMediaStorage wraps fs, which is treated as the media root.
func NewMediaStorage(fs afero.Fs) *MediaStorage {
	return &MediaStorage{fs: fs}
}

// NewOSMediaStorage creates root if needed and stores files beneath it.
func NewOSMediaStorage(root string) (*MediaStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", root, err)
	}
	return NewMediaStorage(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// SaveProductImage writes data under ProductImageDir with a random file name
// and returns the path relative to the media root. The extension follows the
// detected content type, falling back to the one in filename.
func (s *MediaStorage) SaveProductImage(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mtype.String())
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	rel := path.Join(ProductImageDir, uuid.New().String()+ext)

	if err := s.fs.MkdirAll(fsPath(ProductImageDir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", ProductImageDir, err)
	}
	if err := afero.WriteFile(s.fs, fsPath(rel), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return rel, nil
}

// Remove deletes a stored product image. Missing files are not an error.
func (s *MediaStorage) Remove(rel string) error {
	clean := path.Clean(rel)
	if !strings.HasPrefix(clean, ProductImageDir+"/") {
		return fmt.Errorf("%w: %s", ErrOutsideMedia, rel)
	}
	if err := s.fs.Remove(fsPath(clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", clean, err)
	}
	return nil
}

// Exists reports whether rel is present in storage.
func (s *MediaStorage) Exists(rel string) (bool, error) {
	return afero.Exists(s.fs, fsPath(rel))
}

// fsPath roots rel at "/", the form http.FileSystem lookups use.
func fsPath(rel string) string {
	return path.Clean("/" + rel)
}

// FileSystem exposes the media root for static serving.
func (s *MediaStorage) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs)
}
