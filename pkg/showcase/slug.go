package showcase

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks and recomposes, so
// "Café" becomes "Cafe" before slugging.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a display name: diacritics stripped,
// lowercased, every run of characters outside [a-z0-9] collapsed to a single
// hyphen, no leading or trailing hyphen. Deterministic and pure; an empty or
// all-symbol name yields "" and the caller must treat that as invalid.
//
// Slug uniqueness across items is not enforced here.
func Slugify(name string) string {
	ascii, _, err := transform.String(stripMarks, name)
	if err != nil {
		ascii = name
	}

	var b strings.Builder
	b.Grow(len(ascii))
	pendingHyphen := false
	for _, r := range strings.ToLower(ascii) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// NewID returns a fresh unique identifier for items, images, detail blocks
// and detail items.
func NewID() string {
	return uuid.New().String()
}
