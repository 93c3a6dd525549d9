package mmr

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mmr is a handle onto one accumulator namespace within a Store. It carries
// no mutable state of its own beyond the resolved options: leaves count,
// elements count and node hashes all live in the Store, so an Mmr value is
// cheap to create and safe to share across goroutines to the extent its
// Store and Hasher are.
type Mmr struct {
	id     MmrID
	store  Store
	hasher Hasher
	logger *zap.Logger
}

// New opens a handle onto an MMR namespace. A zero-value id (MmrID(uuid.Nil))
// is replaced with a freshly generated one; otherwise id is used as given. If
// the namespace has never been written to, it behaves as an empty MMR
// (LeavesCount and ElementsCount are both 0); no record is created until the
// first Append or BatchAppend.
func New(id MmrID, store Store, hasher Hasher, opts ...Option) *Mmr {
	o := resolveOptions(opts)
	if id == MmrID(uuid.Nil) {
		id = NewMmrID()
	}
	return &Mmr{id: id, store: store, hasher: hasher, logger: o.logger}
}

// CreateFromPeaks seeds a fresh namespace with a set of precomputed peak
// hashes, so that further appends continue as if leafCount leaves had
// already been accumulated without ever materializing them. It fails with
// ErrNonEmptyMMR if the namespace already has elements, and with
// ErrInvalidPeaksCountForElements if len(peaks) does not equal
// LeafCountToPeaksCount(leafCount).
func CreateFromPeaks(ctx context.Context, id MmrID, store Store, hasher Hasher, leafCount uint64, peaks []Hash32, opts ...Option) (*Mmr, error) {
	m := New(id, store, hasher, opts...)

	elementsCount, err := m.ElementsCount(ctx)
	if err != nil {
		return nil, err
	}
	if elementsCount != 0 {
		return nil, ErrNonEmptyMMR
	}

	expectedPeaksCount := LeafCountToPeaksCount(leafCount)
	if uint64(len(peaks)) != expectedPeaksCount {
		return nil, fmt.Errorf("%w: got %d peaks for leaf_count %d, want %d",
			ErrInvalidPeaksCountForElements, len(peaks), leafCount, expectedPeaksCount)
	}

	mmrSize := LeafCountToMmrSize(leafCount)
	peakPositions := FindPeaks(mmrSize)
	if len(peakPositions) != len(peaks) {
		return nil, fmt.Errorf("%w: find_peaks(%d) produced %d positions, want %d",
			ErrInvalidPeaksCountForElements, mmrSize, len(peakPositions), len(peaks))
	}

	entries := make([]KeyValue, 0, len(peaks)+2)
	for i, pos := range peakPositions {
		entries = append(entries, KeyValue{Key: nodeKey(m.id, pos), Value: hashValue(peaks[i])})
	}
	entries = append(entries,
		KeyValue{Key: metaKey(m.id, KindLeavesCount), Value: counterValue(leafCount)},
		KeyValue{Key: metaKey(m.id, KindElementsCount), Value: counterValue(mmrSize)},
	)

	if err := store.SetMany(ctx, entries); err != nil {
		return nil, fmt.Errorf("mmr: seeding peaks: %w", err)
	}
	return m, nil
}

// ID returns the namespace this handle operates on.
func (m *Mmr) ID() MmrID { return m.id }

// LeavesCount returns the number of leaves appended so far.
func (m *Mmr) LeavesCount(ctx context.Context) (uint64, error) {
	return m.readCounter(ctx, KindLeavesCount)
}

// ElementsCount returns the total number of elements (leaves plus interior
// nodes) in the accumulator, ie its canonical mmr size.
func (m *Mmr) ElementsCount(ctx context.Context) (uint64, error) {
	return m.readCounter(ctx, KindElementsCount)
}

func (m *Mmr) readCounter(ctx context.Context, kind KeyKind) (uint64, error) {
	v, found, err := m.store.Get(ctx, metaKey(m.id, kind))
	if err != nil {
		return 0, fmt.Errorf("mmr: reading counter: %w", err)
	}
	if !found {
		return 0, nil
	}
	return v.Counter, nil
}

// RootHash computes the current root: HashCountAndBag(elements_count,
// bag_the_peaks(peaks)). An empty MMR's root hashes ZeroHash bagged under
// count 0.
func (m *Mmr) RootHash(ctx context.Context) (Hash32, error) {
	elementsCount, err := m.ElementsCount(ctx)
	if err != nil {
		return Hash32{}, err
	}
	return m.CalculateRootHash(ctx, elementsCount)
}

// CalculateRootHash computes the root an mmr of the given historical
// elementsCount would have had, reading the peaks of that size from the
// store.
func (m *Mmr) CalculateRootHash(ctx context.Context, elementsCount uint64) (Hash32, error) {
	peaks, err := m.GetPeaks(ctx, elementsCount)
	if err != nil {
		return Hash32{}, err
	}
	bag, err := BagThePeaks(m.hasher, peaks)
	if err != nil {
		return Hash32{}, err
	}
	root, err := m.hasher.HashCountAndBag(elementsCount, bag)
	if err != nil {
		return Hash32{}, fmt.Errorf("mmr: hashing root: %w", err)
	}
	return root, nil
}

// GetPeaks fetches the hash of every peak of an mmr of the given
// elementsCount, in the same left-to-right order FindPeaks returns their
// positions.
func (m *Mmr) GetPeaks(ctx context.Context, elementsCount uint64) ([]Hash32, error) {
	if elementsCount == 0 {
		return nil, nil
	}
	positions := FindPeaks(elementsCount)
	if positions == nil {
		return nil, ErrInvalidMmrSize
	}
	return m.getHashes(ctx, positions)
}

func (m *Mmr) getHashes(ctx context.Context, positions []uint64) ([]Hash32, error) {
	keys := make([]StoreKey, len(positions))
	for i, pos := range positions {
		keys[i] = nodeKey(m.id, pos)
	}
	values, found, err := m.store.GetMany(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mmr: reading node hashes: %w", err)
	}
	hashes := make([]Hash32, len(positions))
	for i := range positions {
		if !found[i] {
			return nil, fmt.Errorf("%w: position %d", ErrHashMissing, positions[i])
		}
		hashes[i] = values[i].Hash
	}
	return hashes, nil
}
