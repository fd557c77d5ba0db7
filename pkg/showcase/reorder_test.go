package showcase_test

import (
	"testing"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gallery(ids ...string) []showcase.ItemImage {
	images := make([]showcase.ItemImage, len(ids))
	for i, id := range ids {
		images[i] = showcase.ItemImage{ID: id, Src: "/images/" + id, Position: i + 1}
	}
	return images
}

func TestReorderImages(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		fromIndex int
		toIndex   int
		wantIDs   []string
	}{
		{
			name:      "move first to last",
			ids:       []string{"a", "b", "c"},
			fromIndex: 0,
			toIndex:   2,
			wantIDs:   []string{"b", "c", "a"},
		},
		{
			name:      "move last to first",
			ids:       []string{"a", "b", "c"},
			fromIndex: 2,
			toIndex:   0,
			wantIDs:   []string{"c", "a", "b"},
		},
		{
			name:      "move middle forward",
			ids:       []string{"a", "b", "c", "d"},
			fromIndex: 1,
			toIndex:   2,
			wantIDs:   []string{"a", "c", "b", "d"},
		},
		{
			name:      "same index is a no-op",
			ids:       []string{"a", "b", "c"},
			fromIndex: 1,
			toIndex:   1,
			wantIDs:   []string{"a", "b", "c"},
		},
		{
			name:      "single image",
			ids:       []string{"a"},
			fromIndex: 0,
			toIndex:   0,
			wantIDs:   []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := showcase.ReorderImages(gallery(tt.ids...), tt.fromIndex, tt.toIndex)

			require.Len(t, got, len(tt.wantIDs))
			for i, id := range tt.wantIDs {
				assert.Equal(t, id, got[i].ID, "index %d", i)
				assert.Equal(t, i+1, got[i].Position, "index %d", i)
			}
		})
	}
}

func TestReorderImagesLeavesInputUntouched(t *testing.T) {
	input := gallery("a", "b", "c")

	_ = showcase.ReorderImages(input, 0, 2)

	for i, id := range []string{"a", "b", "c"} {
		assert.Equal(t, id, input[i].ID)
		assert.Equal(t, i+1, input[i].Position)
	}
}
