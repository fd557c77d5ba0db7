package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/api"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore/inline"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*httptest.Server, showcase.Service) {
	t.Helper()

	svc, err := showcase.New(
		showcase.WithStore(memory.New()),
		showcase.WithImageStore(inline.New()),
	)
	require.NoError(t, err)
	require.NoError(t, svc.Load(context.Background()))

	handler := api.NewShowcaseHandler(svc)
	r := chi.NewRouter()
	r.Mount("/showcase", handler.Routes())
	r.Mount("/items", handler.ItemRoutes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, svc
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestGetShowcase(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Get(server.URL + "/showcase")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data showcase.ShowcaseData
	decode(t, resp, &data)
	assert.Equal(t, showcase.DefaultTitle, data.Title)
	assert.NotNil(t, data.Items)
}

func TestCreateItem(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/items", showcase.CreateItemRequest{Name: "Pikachu Premium"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var item showcase.ShowcaseItem
	decode(t, resp, &item)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "pikachu-premium", item.Slug)
}

func TestCreateItemRequiresName(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/items", showcase.CreateItemRequest{Name: "   "})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetItemAndSlugLookup(t *testing.T) {
	server, svc := setupServer(t)

	created, err := svc.CreateItem(context.Background(), showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/items/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var byID showcase.ShowcaseItem
	decode(t, resp, &byID)
	assert.Equal(t, created.ID, byID.ID)

	resp, err = http.Get(server.URL + "/items/slug/fox-suit")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var bySlug showcase.ShowcaseItem
	decode(t, resp, &bySlug)
	assert.Equal(t, created.ID, bySlug.ID)

	resp, err = http.Get(server.URL + "/items/no-such-id")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateItem(t *testing.T) {
	server, svc := setupServer(t)

	created, err := svc.CreateItem(context.Background(), showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)

	name := "Arctic Fox Suit"
	resp := doJSON(t, http.MethodPut, server.URL+"/items/"+created.ID, showcase.UpdateItemRequest{Name: &name})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated showcase.ShowcaseItem
	decode(t, resp, &updated)
	assert.Equal(t, "arctic-fox-suit", updated.Slug)

	// Unknown item
	resp = doJSON(t, http.MethodPut, server.URL+"/items/no-such-id", showcase.UpdateItemRequest{Name: &name})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Blank rename is rejected before it reaches the service
	blank := "  "
	resp = doJSON(t, http.MethodPut, server.URL+"/items/"+created.ID, showcase.UpdateItemRequest{Name: &blank})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteItem(t *testing.T) {
	server, svc := setupServer(t)

	created, err := svc.CreateItem(context.Background(), showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)

	resp := doJSON(t, http.MethodDelete, server.URL+"/items/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, svc.ListItems())

	// Idempotent
	resp = doJSON(t, http.MethodDelete, server.URL+"/items/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUpdateMetadata(t *testing.T) {
	server, _ := setupServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/showcase/metadata", showcase.UpdateMetadataRequest{
		Title: "Kigurumi Collection",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data showcase.ShowcaseData
	decode(t, resp, &data)
	assert.Equal(t, "Kigurumi Collection", data.Title)
}

func TestImportExport(t *testing.T) {
	server, svc := setupServer(t)

	_, err := svc.CreateItem(context.Background(), showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/showcase/export")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "showcase-data.json")
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	resp, err = http.Post(server.URL+"/showcase/import", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var data showcase.ShowcaseData
	decode(t, resp, &data)
	require.Len(t, data.Items, 1)

	// Malformed payloads are rejected without clearing state
	resp, err = http.Post(server.URL+"/showcase/import", "application/json", strings.NewReader("{broken"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, svc.ListItems(), 1)
}

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAddImages(t *testing.T) {
	server, svc := setupServer(t)

	created, err := svc.CreateItem(context.Background(), showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)

	body, contentType := multipartBody(t, "images", map[string]string{
		"front.png": "front-bytes",
		"back.png":  "back-bytes",
	})
	resp, err := http.Post(server.URL+"/items/"+created.ID+"/images", contentType, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var results []struct {
		FileName string              `json:"fileName"`
		Image    *showcase.ItemImage `json:"image"`
		Error    string              `json:"error"`
	}
	decode(t, resp, &results)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Empty(t, res.Error)
		require.NotNil(t, res.Image)
		assert.NotEmpty(t, res.Image.ID)
	}

	item, err := svc.GetItem(created.ID)
	require.NoError(t, err)
	assert.Len(t, item.Images, 2)
}

func TestAddImagesUnknownItem(t *testing.T) {
	server, _ := setupServer(t)

	body, contentType := multipartBody(t, "images", map[string]string{"front.png": "bytes"})
	resp, err := http.Post(server.URL+"/items/no-such-id/images", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveImage(t *testing.T) {
	server, svc := setupServer(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)
	img, err := svc.AddImage(ctx, created.ID, showcase.StoreImageRequest{
		FileName: "front.png",
		Reader:   strings.NewReader("bytes"),
	})
	require.NoError(t, err)

	resp := doJSON(t, http.MethodDelete, server.URL+"/items/"+created.ID+"/images/"+img.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/items/"+created.ID+"/images/"+img.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReorderImages(t *testing.T) {
	server, svc := setupServer(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, showcase.CreateItemRequest{Name: "Fox Suit"})
	require.NoError(t, err)

	var ids []string
	for _, payload := range []string{"one", "two", "three"} {
		img, err := svc.AddImage(ctx, created.ID, showcase.StoreImageRequest{
			FileName: payload + ".png",
			Reader:   strings.NewReader(payload),
		})
		require.NoError(t, err)
		ids = append(ids, img.ID)
	}

	resp := doJSON(t, http.MethodPut, server.URL+"/items/"+created.ID+"/images/reorder", map[string]int{
		"fromIndex": 0,
		"toIndex":   2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var images []showcase.ItemImage
	decode(t, resp, &images)
	require.Len(t, images, 3)
	assert.Equal(t, ids[0], images[2].ID)
	assert.Equal(t, 3, images[2].Position)
}
