package imagestore_test

import (
	"testing"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore"
	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	first := imagestore.ContentHash([]byte("same bytes"))
	second := imagestore.ContentHash([]byte("same bytes"))
	other := imagestore.ContentHash([]byte("different bytes"))

	assert.Len(t, first, 32)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestHashedName(t *testing.T) {
	tests := []struct {
		name         string
		hash         string
		originalName string
		want         string
	}{
		{
			name:         "keeps extension",
			hash:         "abc123",
			originalName: "photo.png",
			want:         "abc123.png",
		},
		{
			name:         "lowercases extension",
			hash:         "abc123",
			originalName: "PHOTO.JPG",
			want:         "abc123.jpg",
		},
		{
			name:         "no extension",
			hash:         "abc123",
			originalName: "photo",
			want:         "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imagestore.HashedName(tt.hash, tt.originalName))
		})
	}
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "image/png", imagestore.DetectMimeType("photo.png", nil))

	// Unknown extension falls back to sniffing the bytes
	pngMagic := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", imagestore.DetectMimeType("photo.unknown", pngMagic))
}
