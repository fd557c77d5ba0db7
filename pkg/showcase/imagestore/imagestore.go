// Package imagestore holds the image storage backends and the identity
// helpers they share. Every backend implements showcase.ImageStore; the
// content-addressed ones (inline, fs, s3) derive the identifier from an MD5
// hash of the uploaded bytes so the same bytes always map to the same id.
package imagestore

import (
	"crypto/md5"
	"encoding/hex"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// ContentHash returns the 128-bit content digest of the bytes in hex. It is
// used purely for deduplication and stable naming, not integrity.
func ContentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// HashedName builds a storage filename from a content hash and the original
// filename's extension, e.g. "9e107d9d...e6fb0.jpg".
func HashedName(hash, originalName string) string {
	return hash + strings.ToLower(filepath.Ext(originalName))
}

// DetectMimeType resolves the MIME type from the filename extension, falling
// back to sniffing the bytes.
func DetectMimeType(fileName string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(fileName)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
