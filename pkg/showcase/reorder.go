package showcase

// ReorderImages moves the image at fromIndex to toIndex and rewrites every
// position to index+1 so positions stay a contiguous 1-based sequence. The
// input must already be sorted by position ascending; both indices must be
// valid (callers clamp). Pure: the input slice is left untouched, and the
// call is a no-op reposition when fromIndex == toIndex.
func ReorderImages(images []ItemImage, fromIndex, toIndex int) []ItemImage {
	result := make([]ItemImage, 0, len(images))
	result = append(result, images[:fromIndex]...)
	result = append(result, images[fromIndex+1:]...)

	moved := images[fromIndex]
	result = append(result, ItemImage{})
	copy(result[toIndex+1:], result[toIndex:])
	result[toIndex] = moved

	for i := range result {
		result[i].Position = i + 1
	}
	return result
}

// clampIndex bounds i to a valid index of a sequence of length n.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
