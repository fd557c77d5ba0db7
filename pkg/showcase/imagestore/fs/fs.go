package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore"
)

// Backend is a filesystem image store: uploaded bytes land under a base
// directory named by their content hash, and the src is the URL the server
// serves the directory at. This is the storage engine behind the upload
// endpoint in the fs deployment.
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing image files
	URLPrefix string // URL prefix the files are served under (e.g. "/uploads")
}

// New creates a new filesystem image store, creating the base directory if
// it doesn't exist.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimRight(config.URLPrefix, "/"),
	}, nil
}

// Store writes the bytes under their hashed name. Re-uploading identical
// bytes overwrites the same file, so duplicates never accumulate on disk.
func (b *Backend) Store(ctx context.Context, req showcase.StoreImageRequest) (*showcase.StoredImage, error) {
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	name := imagestore.HashedName(imagestore.ContentHash(data), req.FileName)
	if err := os.WriteFile(filepath.Join(b.baseDir, name), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	return &showcase.StoredImage{
		ID:  name,
		Src: b.urlPrefix + "/" + name,
	}, nil
}

// Remove deletes the stored file. Removing a file that is already gone is
// not an error.
func (b *Backend) Remove(ctx context.Context, image showcase.StoredImage) error {
	name, err := CleanFileName(image.ID)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(b.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// BaseDir returns the directory uploads are stored in, for wiring a static
// file server in front of it.
func (b *Backend) BaseDir() string {
	return b.baseDir
}

// CleanFileName rejects names that would escape the base directory.
func CleanFileName(name string) (string, error) {
	cleaned := filepath.Base(filepath.Clean(name))
	if cleaned == "." || cleaned == ".." || cleaned == string(filepath.Separator) || cleaned != name {
		return "", fmt.Errorf("invalid image filename %q", name)
	}
	return cleaned, nil
}
