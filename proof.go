package mmr

import (
	"context"
	"fmt"
)

// GetProof builds an inclusion witness for elementIndex: the element's own
// hash, the sibling hashes along its path up to its mountain peak, and
// every peak hash at the proof's elementsCount (needed to re-bag the root
// once the path has been folded up to that one mountain's peak).
//
// By default the proof is generated against the mmr's current
// elementsCount; pass WithElementsCount to generate it against an earlier,
// still-canonical size instead.
func (m *Mmr) GetProof(ctx context.Context, elementIndex ElementIndex, opts ...ProofOption) (Proof, error) {
	o := resolveProofOptions(opts)

	elementsCount := o.elementsCount
	var ec uint64
	if elementsCount != nil {
		ec = *elementsCount
		if !IsCanonicalSize(ec) {
			return Proof{}, ErrInvalidMmrSize
		}
	} else {
		var err error
		ec, err = m.ElementsCount(ctx)
		if err != nil {
			return Proof{}, err
		}
	}

	if elementIndex == 0 || elementIndex > ec {
		return Proof{}, ErrInvalidElementIndex
	}

	siblingPositions, err := FindSiblings(elementIndex, ec)
	if err != nil {
		return Proof{}, err
	}
	peakPositions := FindPeaks(ec)
	if peakPositions == nil {
		return Proof{}, ErrInvalidMmrSize
	}

	positions := append([]uint64{elementIndex}, siblingPositions...)
	positions = append(positions, peakPositions...)
	hashes, err := m.getHashes(ctx, positions)
	if err != nil {
		return Proof{}, fmt.Errorf("mmr: get_proof: %w", err)
	}

	elementHash := hashes[0]
	siblingHashes := hashes[1 : 1+len(siblingPositions)]
	peakHashes := hashes[1+len(siblingPositions):]

	return Proof{
		ElementIndex:   elementIndex,
		ElementHash:    elementHash,
		SiblingsHashes: append([]Hash32(nil), siblingHashes...),
		PeaksHashes:    append([]Hash32(nil), peakHashes...),
		ElementsCount:  ec,
	}, nil
}
