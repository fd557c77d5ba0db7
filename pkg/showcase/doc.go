// Package showcase implements the data and persistence layer for a personal
// collection showcase: a single ShowcaseData aggregate holding ordered items
// with images, tags and detail blocks.
//
// The package provides:
//   - the domain types (ShowcaseData, ShowcaseItem, ItemImage, DetailBlock)
//   - slug and identifier generation
//   - the image reordering primitive
//   - a Service that keeps the in-memory view of the collection and persists
//     the full state through a pluggable Store after every mutation
//
// Persistence backends live under store/ (memory, fs, postgres, api) and
// image storage backends under imagestore/ (inline, fs, s3, api). Pick both
// via pkg/showcase/config.
package showcase
