package showcase

import (
	"time"
)

// DefaultTitle is used when a collection is created without one.
const DefaultTitle = "My Collection"

// ShowcaseData is the root aggregate: exactly one instance per collection.
// The JSON shape is the import/export wire format and must round-trip.
type ShowcaseData struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Items       []ShowcaseItem `json:"items"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// ShowcaseItem is a single entry in the collection. Images, tags and detail
// blocks are owned exclusively by the item; deleting the item discards them.
type ShowcaseItem struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Subtitle    string         `json:"subtitle,omitempty"`
	Brand       string         `json:"brand,omitempty"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags"`
	Images      []ItemImage    `json:"images"`
	Details     []DetailBlock  `json:"details"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ItemImage is a displayable image belonging to one item. ID is either the
// content hash of the uploaded bytes or the backend-assigned filename; Src is
// a URL or a self-describing data URI. Position defines display order and is
// kept contiguous starting at 1.
type ItemImage struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
}

// DetailBlock is a titled group of label/value pairs describing item
// attributes (material, size, care instructions, ...).
type DetailBlock struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Items []DetailItem `json:"items"`
}

// DetailItem is a single label/value pair inside a detail block.
type DetailItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// DefaultData returns an empty collection used when no state has been
// persisted yet.
func DefaultData() *ShowcaseData {
	return &ShowcaseData{
		Title:       DefaultTitle,
		Items:       []ShowcaseItem{},
		GeneratedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy. Callers get snapshots, never the service's
// internal state.
func (d *ShowcaseData) Clone() *ShowcaseData {
	if d == nil {
		return nil
	}
	out := *d
	out.Items = make([]ShowcaseItem, len(d.Items))
	for i := range d.Items {
		out.Items[i] = *d.Items[i].Clone()
	}
	return &out
}

// FindItem returns the index of the item with the given id, or -1.
func (d *ShowcaseData) FindItem(id string) int {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the item.
func (it *ShowcaseItem) Clone() *ShowcaseItem {
	out := *it
	out.Tags = append([]string(nil), it.Tags...)
	out.Images = append([]ItemImage(nil), it.Images...)
	out.Details = make([]DetailBlock, len(it.Details))
	for i, b := range it.Details {
		out.Details[i] = b
		out.Details[i].Items = append([]DetailItem(nil), b.Items...)
	}
	return &out
}

// FindImage returns the index of the image with the given id, or -1.
func (it *ShowcaseItem) FindImage(imageID string) int {
	for i := range it.Images {
		if it.Images[i].ID == imageID {
			return i
		}
	}
	return -1
}

// MaxImagePosition returns the highest position among the item's images, or 0
// when the item has none. New uploads are appended at MaxImagePosition()+1.
func (it *ShowcaseItem) MaxImagePosition() int {
	max := 0
	for i := range it.Images {
		if it.Images[i].Position > max {
			max = it.Images[i].Position
		}
	}
	return max
}

// dedupeTags removes duplicate tag values (case-sensitive exact match) while
// preserving first-seen order.
func dedupeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
