package showcase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// service implements the Service interface
type service struct {
	mu     sync.RWMutex
	store  Store
	images ImageStore
	data   *ShowcaseData
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithStore sets the persistence backend for the service
func WithStore(store Store) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithImageStore sets the image storage backend for the service
func WithImageStore(images ImageStore) Option {
	return func(s *service) {
		s.images = images
	}
}

// New creates a new service instance with the given options. A Store is
// required; an ImageStore is only needed when image uploads are used.
func New(options ...Option) (Service, error) {
	s := &service{
		data: DefaultData(),
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("store is required")
	}

	return s, nil
}

// Load initializes the in-memory view from the persistence backend. When the
// backend holds nothing yet the default empty collection is used. On backend
// failure the last-known-good state is kept and the failure is returned.
func (s *service) Load(ctx context.Context) error {
	data, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, ErrDataNotFound) {
			s.data = DefaultData()
			return nil
		}
		return &StoreError{Op: "load", Err: err}
	}

	normalizeData(data)
	s.data = data
	return nil
}

// Data returns a snapshot of the current collection.
func (s *service) Data() *ShowcaseData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// mutate clones the current state, applies fn to the clone, persists it and
// only then commits it as the new in-memory state. A failed Save therefore
// never leaves a half-applied mutation behind.
func (s *service) mutate(ctx context.Context, op string, fn func(d *ShowcaseData) error) (*ShowcaseData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return nil, &StoreError{Op: op, Err: err}
	}

	s.data = next
	return next, nil
}

// Item operations

func (s *service) ListItems() []ShowcaseItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ShowcaseItem, len(s.data.Items))
	for i := range s.data.Items {
		items[i] = *s.data.Items[i].Clone()
	}
	return items
}

func (s *service) GetItem(id string) (*ShowcaseItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.data.FindItem(id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	return s.data.Items[idx].Clone(), nil
}

func (s *service) GetItemBySlug(slug string) (*ShowcaseItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.data.Items {
		if s.data.Items[i].Slug == slug {
			return s.data.Items[i].Clone(), nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*ShowcaseItem, error) {
	now := time.Now().UTC()
	item := ShowcaseItem{
		ID:          NewID(),
		Slug:        Slugify(req.Name),
		Name:        req.Name,
		Subtitle:    req.Subtitle,
		Brand:       req.Brand,
		Description: req.Description,
		Tags:        dedupeTags(req.Tags),
		Images:      req.Images,
		Details:     req.Details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	normalizeItem(&item)

	_, err := s.mutate(ctx, "create_item", func(d *ShowcaseData) error {
		d.Items = append(d.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item.Clone(), nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*ShowcaseItem, error) {
	var updated *ShowcaseItem

	_, err := s.mutate(ctx, "update_item", func(d *ShowcaseData) error {
		idx := d.FindItem(id)
		if idx < 0 {
			return &ItemError{ItemID: id, Op: "update", Err: ErrItemNotFound}
		}

		item := &d.Items[idx]
		if req.Name != nil {
			item.Name = *req.Name
			item.Slug = Slugify(*req.Name)
		}
		if req.Subtitle != nil {
			item.Subtitle = *req.Subtitle
		}
		if req.Brand != nil {
			item.Brand = *req.Brand
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.Tags != nil {
			item.Tags = dedupeTags(req.Tags)
		}
		if req.Images != nil {
			item.Images = req.Images
		}
		if req.Details != nil {
			item.Details = req.Details
		}
		item.UpdatedAt = time.Now().UTC()
		normalizeItem(item)

		updated = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteItem removes the item and, through exclusive ownership, every image
// and detail block it contains. Deleting an absent item is not an error.
func (s *service) DeleteItem(ctx context.Context, id string) error {
	s.mu.RLock()
	exists := s.data.FindItem(id) >= 0
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	_, err := s.mutate(ctx, "delete_item", func(d *ShowcaseData) error {
		idx := d.FindItem(id)
		if idx < 0 {
			return nil
		}
		d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
		return nil
	})
	return err
}

// Collection metadata

func (s *service) UpdateMetadata(ctx context.Context, req UpdateMetadataRequest) (*ShowcaseData, error) {
	next, err := s.mutate(ctx, "update_metadata", func(d *ShowcaseData) error {
		d.Title = req.Title
		d.Description = req.Description
		d.GeneratedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// Image operations

func (s *service) AddImage(ctx context.Context, itemID string, req StoreImageRequest) (*ItemImage, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image store is not configured")
	}

	stored, err := s.images.Store(ctx, req)
	if err != nil {
		return nil, &ImageError{ItemID: itemID, FileName: req.FileName, Op: "store", Err: err}
	}

	var added *ItemImage
	_, err = s.mutate(ctx, "add_image", func(d *ShowcaseData) error {
		idx := d.FindItem(itemID)
		if idx < 0 {
			return &ItemError{ItemID: itemID, Op: "add_image", Err: ErrItemNotFound}
		}

		item := &d.Items[idx]
		for i := range item.Images {
			if item.Images[i].ID == stored.ID || item.Images[i].Src == stored.Src {
				return &ImageError{ItemID: itemID, FileName: req.FileName, Op: "add", Err: ErrDuplicateImage}
			}
		}

		img := ItemImage{
			ID:       stored.ID,
			Src:      stored.Src,
			Alt:      altFromFileName(req.FileName),
			Position: item.MaxImagePosition() + 1,
		}
		item.Images = append(item.Images, img)
		item.UpdatedAt = time.Now().UTC()

		added = &img
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// AddImages uploads a batch sequentially. A failed file is reported in its
// UploadResult and does not abort the remaining uploads.
func (s *service) AddImages(ctx context.Context, itemID string, reqs []StoreImageRequest) []UploadResult {
	results := make([]UploadResult, 0, len(reqs))
	for _, req := range reqs {
		img, err := s.AddImage(ctx, itemID, req)
		results = append(results, UploadResult{
			FileName: req.FileName,
			Image:    img,
			Err:      err,
		})
	}
	return results
}

func (s *service) RemoveImage(ctx context.Context, itemID, imageID string) error {
	var removed StoredImage

	_, err := s.mutate(ctx, "remove_image", func(d *ShowcaseData) error {
		idx := d.FindItem(itemID)
		if idx < 0 {
			return &ItemError{ItemID: itemID, Op: "remove_image", Err: ErrItemNotFound}
		}

		item := &d.Items[idx]
		imgIdx := item.FindImage(imageID)
		if imgIdx < 0 {
			return &ImageError{ItemID: itemID, Op: "remove", Err: ErrImageNotFound}
		}

		removed = StoredImage{ID: item.Images[imgIdx].ID, Src: item.Images[imgIdx].Src}
		item.Images = append(item.Images[:imgIdx], item.Images[imgIdx+1:]...)
		for i := range item.Images {
			item.Images[i].Position = i + 1
		}
		item.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	if s.images != nil {
		if err := s.images.Remove(ctx, removed); err != nil {
			return &ImageError{ItemID: itemID, Op: "remove", Err: err}
		}
	}
	return nil
}

func (s *service) ReorderItemImages(ctx context.Context, itemID string, fromIndex, toIndex int) ([]ItemImage, error) {
	var reordered []ItemImage

	_, err := s.mutate(ctx, "reorder_images", func(d *ShowcaseData) error {
		idx := d.FindItem(itemID)
		if idx < 0 {
			return &ItemError{ItemID: itemID, Op: "reorder_images", Err: ErrItemNotFound}
		}

		item := &d.Items[idx]
		if len(item.Images) == 0 {
			reordered = []ItemImage{}
			return nil
		}

		sort.SliceStable(item.Images, func(i, j int) bool {
			return item.Images[i].Position < item.Images[j].Position
		})

		from := clampIndex(fromIndex, len(item.Images))
		to := clampIndex(toIndex, len(item.Images))
		item.Images = ReorderImages(item.Images, from, to)
		item.UpdatedAt = time.Now().UTC()

		reordered = append([]ItemImage(nil), item.Images...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reordered, nil
}

// Import/export

// Export serializes the full collection as indented UTF-8 JSON. Pure; the
// output round-trips through Import.
func (s *service) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.data, "", "  ")
}

// Import parses raw and replaces the collection wholesale. A parse failure
// leaves the current state untouched.
func (s *service) Import(ctx context.Context, raw []byte) (*ShowcaseData, error) {
	var data ShowcaseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse import data: %w", err)
	}

	next, err := s.mutate(ctx, "import", func(d *ShowcaseData) error {
		*d = data
		normalizeData(d)
		d.GeneratedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return next.Clone(), nil
}

// Helpers

// normalizeData backfills nil sequences and item defaults so persisted JSON
// always carries arrays, never null.
func normalizeData(d *ShowcaseData) {
	if d.Items == nil {
		d.Items = []ShowcaseItem{}
	}
	for i := range d.Items {
		normalizeItem(&d.Items[i])
	}
}

// normalizeItem assigns missing identifiers and positions on owned entities
// and keeps the sequences non-nil.
func normalizeItem(item *ShowcaseItem) {
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Images == nil {
		item.Images = []ItemImage{}
	}
	if item.Details == nil {
		item.Details = []DetailBlock{}
	}

	for i := range item.Images {
		if item.Images[i].ID == "" {
			item.Images[i].ID = NewID()
		}
		if item.Images[i].Position == 0 {
			item.Images[i].Position = i + 1
		}
	}

	for i := range item.Details {
		block := &item.Details[i]
		if block.ID == "" {
			block.ID = NewID()
		}
		for j := range block.Items {
			if block.Items[j].ID == "" {
				block.Items[j].ID = NewID()
			}
		}
	}
}

// altFromFileName derives the default alt text: the original filename with
// its extension stripped.
func altFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
