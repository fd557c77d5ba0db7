package showcase

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrItemNotFound indicates no item matches the requested id or slug
	ErrItemNotFound = errors.New("item not found")

	// ErrImageNotFound indicates no image matches the requested id
	ErrImageNotFound = errors.New("image not found")

	// ErrDuplicateImage indicates the uploaded bytes already exist on the item
	ErrDuplicateImage = errors.New("image already exists")

	// ErrDataNotFound indicates the backend holds no persisted collection yet
	ErrDataNotFound = errors.New("showcase data not found")
)

// ItemError represents an error related to item operations
type ItemError struct {
	ItemID string
	Op     string
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item operation %s failed for item %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// ImageError represents an error related to image upload operations
type ImageError struct {
	ItemID   string
	FileName string
	Op       string
	Err      error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image operation %s failed for %q on item %s: %v", e.Op, e.FileName, e.ItemID, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// StoreError represents a persistence failure. The service's in-memory state
// is never mutated when Save fails, so a StoreError is always recoverable by
// re-invoking the operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
