package mmr

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Append adds a single leaf and is defined as BatchAppend of a one element
// slice: every write Append makes, including the SetMany commit, is
// produced by the exact same code path a batch of size 1 would take.
func (m *Mmr) Append(ctx context.Context, value Hash32) (AppendResult, error) {
	res, err := m.BatchAppend(ctx, []Hash32{value})
	if err != nil {
		return AppendResult{}, err
	}
	return AppendResult{
		ElementIndex:  res.FirstElementIndex,
		LeavesCount:   res.LeavesCount,
		ElementsCount: res.ElementsCount,
		RootHash:      res.RootHash,
	}, nil
}

// BatchAppend adds values as new leaves, in order, as a single atomic
// commit: either every node this produces (leaves, merge parents, updated
// counters) is written, or none is.
//
// Appending a leaf behaves like incrementing a binary counter whose bits
// mark which mountain heights are present: the new leaf starts a height-0
// mountain, and for every trailing 1 bit in the leaf count before the
// append, that mountain carries into a merge with the mountain immediately
// to its left, producing one mountain one height taller. The peaks still
// standing after the previous value in the batch are kept in memory across
// the whole call, so a batch never re-reads a peak it just computed.
func (m *Mmr) BatchAppend(ctx context.Context, values []Hash32) (BatchAppendResult, error) {
	if len(values) == 0 {
		return BatchAppendResult{}, ErrEmptyBatchAppend
	}

	leafCount, err := m.LeavesCount(ctx)
	if err != nil {
		return BatchAppendResult{}, err
	}
	elementsCount, err := m.ElementsCount(ctx)
	if err != nil {
		return BatchAppendResult{}, err
	}

	peaks, err := m.GetPeaks(ctx, elementsCount)
	if err != nil {
		return BatchAppendResult{}, err
	}

	var writes []KeyValue
	perLeaf := make([]ElementIndex, len(values))
	firstElementIndex := elementsCount + 1

	for i, value := range values {
		leafPos := elementsCount + 1
		perLeaf[i] = leafPos
		writes = append(writes, KeyValue{Key: nodeKey(m.id, leafPos), Value: hashValue(value)})

		pos := leafPos
		hash := value
		numMerges := LeafCountToAppendNoMerges(leafCount)

		if uint64(len(peaks)) < numMerges {
			return BatchAppendResult{}, fmt.Errorf("mmr: batch_append: only %d peaks standing, need %d to merge", len(peaks), numMerges)
		}
		for step := uint64(0); step < numMerges; step++ {
			left := peaks[len(peaks)-1]
			peaks = peaks[:len(peaks)-1]

			pos++
			hash, err = m.hasher.HashPair(left, hash)
			if err != nil {
				return BatchAppendResult{}, fmt.Errorf("mmr: batch_append: merging: %w", err)
			}
			writes = append(writes, KeyValue{Key: nodeKey(m.id, pos), Value: hashValue(hash)})
		}

		peaks = append(peaks, hash)
		leafCount++
		elementsCount = pos
	}

	bag, err := BagThePeaks(m.hasher, peaks)
	if err != nil {
		return BatchAppendResult{}, err
	}
	root, err := m.hasher.HashCountAndBag(elementsCount, bag)
	if err != nil {
		return BatchAppendResult{}, fmt.Errorf("mmr: batch_append: hashing root: %w", err)
	}

	writes = append(writes,
		KeyValue{Key: metaKey(m.id, KindLeavesCount), Value: counterValue(leafCount)},
		KeyValue{Key: metaKey(m.id, KindElementsCount), Value: counterValue(elementsCount)},
		KeyValue{Key: metaKey(m.id, KindRootHash), Value: hashValue(root)},
	)

	if err := m.store.SetMany(ctx, writes); err != nil {
		return BatchAppendResult{}, fmt.Errorf("mmr: batch_append: committing: %w", err)
	}

	m.logger.Debug("batch_append committed",
		zap.String("mmr_id", m.id.String()),
		zap.Int("leaves_added", len(values)),
		zap.Uint64("elements_count", elementsCount),
	)

	return BatchAppendResult{
		FirstElementIndex:   firstElementIndex,
		LastElementIndex:    elementsCount,
		LeavesCount:         leafCount,
		ElementsCount:       elementsCount,
		RootHash:            root,
		PerLeafElementIndex: perLeaf,
	}, nil
}
