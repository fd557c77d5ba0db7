package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
)

// ImagesHandler exposes the raw image storage backend over HTTP. Uploaded
// files are content addressed, so posting the same bytes twice yields the
// same URL.
type ImagesHandler struct {
	images showcase.ImageStore
}

// NewImagesHandler creates a new images handler
func NewImagesHandler(images showcase.ImageStore) *ImagesHandler {
	return &ImagesHandler{images: images}
}

// Routes returns the routes for raw image storage
func (h *ImagesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", h.Upload)
	r.Delete("/{filename}", h.Delete)

	return r
}

// UploadResponse is the response body for an uploaded image
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"filename"`
}

// Upload stores a single file from the multipart field "image"
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	stored, err := h.images.Store(r.Context(), showcase.StoreImageRequest{
		FileName: header.Filename,
		Reader:   file,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{URL: stored.Src, FileName: stored.ID})
}

// Delete removes a stored image file by its stored name
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	err := h.images.Remove(r.Context(), showcase.StoredImage{ID: name})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
