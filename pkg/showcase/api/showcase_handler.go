package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
)

// maxUploadMemory bounds how much of a multipart upload is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// ShowcaseHandler handles HTTP requests for the showcase and its items
type ShowcaseHandler struct {
	service showcase.Service
}

// NewShowcaseHandler creates a new showcase handler
func NewShowcaseHandler(service showcase.Service) *ShowcaseHandler {
	return &ShowcaseHandler{service: service}
}

// Routes returns the routes for the showcase document
func (h *ShowcaseHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetShowcase)
	r.Put("/metadata", h.UpdateMetadata)
	r.Post("/import", h.ImportShowcase)
	r.Get("/export", h.ExportShowcase)

	return r
}

// ItemRoutes returns the routes for items
func (h *ShowcaseHandler) ItemRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListItems)
	r.Post("/", h.CreateItem)
	r.Get("/{id}", h.GetItem)
	r.Put("/{id}", h.UpdateItem)
	r.Delete("/{id}", h.DeleteItem)
	r.Get("/slug/{slug}", h.GetItemBySlug)

	r.Post("/{id}/images", h.AddImages)
	r.Delete("/{id}/images/{imageId}", h.RemoveImage)
	r.Put("/{id}/images/reorder", h.ReorderImages)

	return r
}

// GetShowcase returns the full showcase document
func (h *ShowcaseHandler) GetShowcase(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Data())
}

// UpdateMetadata updates the showcase title and description
func (h *ShowcaseHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req showcase.UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.service.UpdateMetadata(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, data)
}

// ImportShowcase replaces the showcase document with the posted JSON
func (h *ShowcaseHandler) ImportShowcase(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.service.Import(r.Context(), payload)
	if err != nil {
		status := http.StatusInternalServerError
		var jsonErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &jsonErr) || errors.As(err, &typeErr) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	render.JSON(w, r, data)
}

// ExportShowcase returns the showcase document as a downloadable JSON file
func (h *ShowcaseHandler) ExportShowcase(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Export()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="showcase-data.json"`)
	w.Write(payload)
}

// ListItems lists all items
func (h *ShowcaseHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := h.service.ListItems()
	if items == nil {
		items = []showcase.ShowcaseItem{}
	}
	render.JSON(w, r, items)
}

// CreateItem creates a new item
func (h *ShowcaseHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req showcase.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Item name is required", http.StatusBadRequest)
		return
	}

	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

// GetItem retrieves an item by ID
func (h *ShowcaseHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	render.JSON(w, r, item)
}

// GetItemBySlug retrieves an item by its URL slug
func (h *ShowcaseHandler) GetItemBySlug(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItemBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	render.JSON(w, r, item)
}

// UpdateItem applies a partial update to an item
func (h *ShowcaseHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req showcase.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		http.Error(w, "Item name cannot be empty", http.StatusBadRequest)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	render.JSON(w, r, item)
}

// DeleteItem deletes an item by ID
func (h *ShowcaseHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadResultResponse is one entry in the response body for an image upload
type UploadResultResponse struct {
	FileName string              `json:"fileName"`
	Image    *showcase.ItemImage `json:"image,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// AddImages uploads one or more image files and attaches them to an item.
// Files are read from the multipart field "images".
func (h *ShowcaseHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return
	}

	itemID := chi.URLParam(r, "id")
	if _, err := h.service.GetItem(itemID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	reqs := make([]showcase.StoreImageRequest, 0, len(files))
	readers := make([]multipart.File, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		readers = append(readers, f)
		reqs = append(reqs, showcase.StoreImageRequest{FileName: fh.Filename, Reader: f})
	}
	defer func() {
		for _, f := range readers {
			f.Close()
		}
	}()

	results := h.service.AddImages(r.Context(), itemID, reqs)

	resp := make([]UploadResultResponse, 0, len(results))
	for _, res := range results {
		out := UploadResultResponse{FileName: res.FileName, Image: res.Image}
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
		resp = append(resp, out)
	}

	render.JSON(w, r, resp)
}

// RemoveImage detaches an image from an item and deletes the stored file
func (h *ShowcaseHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveImage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "imageId"))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderImagesRequest is the request body for moving an image within an item
type ReorderImagesRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

// ReorderImages moves an image within an item's gallery
func (h *ShowcaseHandler) ReorderImages(w http.ResponseWriter, r *http.Request) {
	var req ReorderImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	images, err := h.service.ReorderItemImages(r.Context(), chi.URLParam(r, "id"), req.FromIndex, req.ToIndex)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	render.JSON(w, r, images)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, showcase.ErrItemNotFound), errors.Is(err, showcase.ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, showcase.ErrDuplicateImage):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
