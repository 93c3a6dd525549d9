package mmr

// ElementsCountToLeafCount greedily decomposes elementsCount into mountain
// summands of size 2^h-1, largest first, accumulating 2^(h-1) leaves per
// summand. It fails with ErrInvalidMmrSize when elementsCount is not a
// canonical mmr size (the decomposition does not consume it exactly).
//
// MmrSizeToLeafCount names the same function from a tree-size point of view.
func ElementsCountToLeafCount(elementsCount uint64) (uint64, error) {
	var leafCount uint64
	remaining := elementsCount

	var mountainLeafCount uint64
	if elementsCount == 0 {
		mountainLeafCount = 1
	} else {
		mountainLeafCount = 1 << BitLength64(elementsCount)
	}

	for mountainLeafCount > 0 {
		mountainElementsCount := 2*mountainLeafCount - 1
		if mountainElementsCount <= remaining {
			leafCount += mountainLeafCount
			remaining -= mountainElementsCount
		}
		mountainLeafCount >>= 1
	}

	if remaining > 0 {
		return 0, ErrInvalidMmrSize
	}
	return leafCount, nil
}

// MmrSizeToLeafCount is an alias for ElementsCountToLeafCount: the two
// names refer to the same count, viewed either as a tree size or a leaf
// count.
func MmrSizeToLeafCount(elementsCount uint64) (uint64, error) {
	return ElementsCountToLeafCount(elementsCount)
}

// IsCanonicalSize reports whether elementsCount decomposes exactly into
// mountain summands, ie whether it is a size a real mmr can have.
func IsCanonicalSize(elementsCount uint64) bool {
	_, err := ElementsCountToLeafCount(elementsCount)
	return err == nil
}

// LeafCountToMmrSize returns 2*leafCount - popcount(leafCount): the total
// element count (leaves plus interior nodes) for an mmr with leafCount
// leaves.
func LeafCountToMmrSize(leafCount uint64) uint64 {
	return 2*leafCount - LeafCountToPeaksCount(leafCount)
}

// LeafCountToPeaksCount is popcount(leafCount): the number of mountains
// (and hence peaks) in an mmr with leafCount leaves.
func LeafCountToPeaksCount(leafCount uint64) uint64 {
	return PopCount64(leafCount)
}

// LeafCountToAppendNoMerges is trailing_ones(leafCount): the exact number
// of carry-merges a single further append triggers.
func LeafCountToAppendNoMerges(leafCount uint64) uint64 {
	return TrailingOnes64(leafCount)
}
