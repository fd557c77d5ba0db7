package inline

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore"
)

// Backend is the content-hash image strategy: no files are kept anywhere.
// The id is the MD5 of the uploaded bytes and the src a self-describing
// base64 data URI, so the image travels inside the collection blob itself.
// This is the right backend for the local-storage deployment mode.
type Backend struct{}

// New creates a new inline image store.
func New() *Backend {
	return &Backend{}
}

// Store hashes the bytes and encodes them as a data URI. CPU cost is
// proportional to the file size; no I/O happens beyond the single read.
func (b *Backend) Store(ctx context.Context, req showcase.StoreImageRequest) (*showcase.StoredImage, error) {
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	mimeType := imagestore.DetectMimeType(req.FileName, data)
	src := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	return &showcase.StoredImage{
		ID:  imagestore.ContentHash(data),
		Src: src,
	}, nil
}

// Remove is a no-op: the bytes live inside the collection and disappear with
// the owning image entry.
func (b *Backend) Remove(ctx context.Context, image showcase.StoredImage) error {
	return nil
}
