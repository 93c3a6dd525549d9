package mmr

// FindPeaks decomposes elementsCount left-to-right into mountains and
// returns the post-order root (peak) position of each, largest mountain
// first. If elementsCount is not a canonical mmr size, it returns nil.
//
// For a mountain of height h (size s = 2^h-1) starting at cumulative
// offset off, its peak sits at off+s; shift below tracks that running
// offset as each mountain is consumed.
func FindPeaks(elementsCount uint64) []uint64 {
	remaining := elementsCount
	var shift uint64
	var peaks []uint64

	var mountainElementsCount uint64
	if elementsCount != 0 {
		mountainElementsCount = (uint64(1) << BitLength64(elementsCount)) - 1
	}
	for mountainElementsCount > 0 {
		if mountainElementsCount <= remaining {
			shift += mountainElementsCount
			peaks = append(peaks, shift)
			remaining -= mountainElementsCount
		}
		mountainElementsCount >>= 1
	}

	if remaining > 0 {
		return nil
	}
	return peaks
}
