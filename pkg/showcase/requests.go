package showcase

// Request/Response DTOs

// CreateItemRequest contains parameters for creating a new item. ID, slug and
// timestamps are synthesized by the service.
type CreateItemRequest struct {
	Name        string        `json:"name"`
	Subtitle    string        `json:"subtitle,omitempty"`
	Brand       string        `json:"brand,omitempty"`
	Description string        `json:"description,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Images      []ItemImage   `json:"images,omitempty"`
	Details     []DetailBlock `json:"details,omitempty"`
}

// UpdateItemRequest contains a partial update: nil fields are left as they
// are, set fields overwrite. When Name is set the slug is regenerated.
// A non-nil empty slice clears the corresponding sequence.
type UpdateItemRequest struct {
	Name        *string       `json:"name,omitempty"`
	Subtitle    *string       `json:"subtitle,omitempty"`
	Brand       *string       `json:"brand,omitempty"`
	Description *string       `json:"description,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Images      []ItemImage   `json:"images,omitempty"`
	Details     []DetailBlock `json:"details,omitempty"`
}

// UpdateMetadataRequest replaces the collection title and description.
type UpdateMetadataRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UploadResult reports the outcome of one file in a batch upload. Per-file
// failures do not abort the remaining uploads.
type UploadResult struct {
	FileName string     `json:"fileName"`
	Image    *ItemImage `json:"image,omitempty"`
	Err      error      `json:"-"`
}
