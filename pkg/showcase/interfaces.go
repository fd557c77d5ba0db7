package showcase

import (
	"context"
	"io"
)

// Store is the persistence backend behind the service. The whole collection
// is written back on every mutation; there is no partial write, batching or
// versioning, so the last writer wins.
type Store interface {
	// Load retrieves the persisted collection. It returns ErrDataNotFound
	// when the backend holds no collection yet.
	Load(ctx context.Context) (*ShowcaseData, error)

	// Save replaces the persisted collection wholesale.
	Save(ctx context.Context, data *ShowcaseData) error
}

// ImageStore stores uploaded image bytes and assigns their identity. The two
// identity strategies the service supports both fit behind this interface:
// content-addressed backends return the hash of the bytes as ID, remote
// backends return the filename the server assigned.
type ImageStore interface {
	// Store persists the image bytes and returns their identity and source
	// reference. It reads req.Reader exactly once.
	Store(ctx context.Context, req StoreImageRequest) (*StoredImage, error)

	// Remove deletes the stored bytes. Backends without per-image state
	// (data URIs) treat this as a no-op.
	Remove(ctx context.Context, image StoredImage) error
}

// StoreImageRequest carries one uploaded file into an ImageStore.
type StoreImageRequest struct {
	FileName string
	Reader   io.Reader
}

// StoredImage is the identity an ImageStore assigned to uploaded bytes.
type StoredImage struct {
	// ID is the stable identifier: a 128-bit content hash in hex, or the
	// filename assigned by a remote upload endpoint.
	ID string

	// Src is what a browser renders: a URL, or a base64 data URI when the
	// backend keeps no files at all.
	Src string
}
