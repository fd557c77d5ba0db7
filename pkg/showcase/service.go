package showcase

import (
	"context"
)

// Service is the process-wide view of one showcase collection. It is
// initialized from a Store, exposes CRUD over items, images and metadata, and
// persists the full state after every mutation.
type Service interface {
	// Lifecycle
	Load(ctx context.Context) error
	Data() *ShowcaseData

	// Item operations
	ListItems() []ShowcaseItem
	GetItem(id string) (*ShowcaseItem, error)
	GetItemBySlug(slug string) (*ShowcaseItem, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*ShowcaseItem, error)
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*ShowcaseItem, error)
	DeleteItem(ctx context.Context, id string) error

	// Collection metadata
	UpdateMetadata(ctx context.Context, req UpdateMetadataRequest) (*ShowcaseData, error)

	// Image operations
	AddImage(ctx context.Context, itemID string, req StoreImageRequest) (*ItemImage, error)
	AddImages(ctx context.Context, itemID string, reqs []StoreImageRequest) []UploadResult
	RemoveImage(ctx context.Context, itemID, imageID string) error
	ReorderItemImages(ctx context.Context, itemID string, fromIndex, toIndex int) ([]ItemImage, error)

	// Import/export
	Export() ([]byte, error)
	Import(ctx context.Context, raw []byte) (*ShowcaseData, error)
}
