package showcase_test

import (
	"testing"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple name",
			input: "Pikachu Premium",
			want:  "pikachu-premium",
		},
		{
			name:  "diacritics are stripped",
			input: "Café à la crème",
			want:  "cafe-a-la-creme",
		},
		{
			name:  "symbol runs collapse to one hyphen",
			input: "Hello!!! World???",
			want:  "hello-world",
		},
		{
			name:  "no leading or trailing hyphen",
			input: "  --Fox Suit--  ",
			want:  "fox-suit",
		},
		{
			name:  "digits survive",
			input: "Mk2 Head v3",
			want:  "mk2-head-v3",
		},
		{
			name:  "already a slug",
			input: "plain-slug",
			want:  "plain-slug",
		},
		{
			name:  "empty name",
			input: "",
			want:  "",
		},
		{
			name:  "all symbols",
			input: "!!!***",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, showcase.Slugify(tt.input))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	first := showcase.Slugify("Pikachu Premium Edition")
	second := showcase.Slugify("Pikachu Premium Edition")
	assert.Equal(t, first, second)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := showcase.NewID()
		assert.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
