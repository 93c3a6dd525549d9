package mmr

import (
	"context"

	"github.com/google/uuid"
)

// Hash32 is an opaque 32 byte digest produced by a Hasher. It is compared
// only for equality.
type Hash32 [32]byte

// ZeroHash is the distinguished all-zero digest returned by BagThePeaks
// when there are no peaks to bag.
var ZeroHash = Hash32{}

// ElementIndex is the 1-based position of a node in the post-order
// traversal of the MMR forest. Position 0 is reserved to mean "no element".
type ElementIndex = uint64

// LeafIndex is the 0-based ordinal of a leaf among leaves only.
type LeafIndex = uint64

// MmrID is an opaque namespace identifier used to segregate multiple MMRs
// sharing one Store.
type MmrID uuid.UUID

// NewMmrID generates a fresh, unique MmrID.
func NewMmrID() MmrID { return MmrID(uuid.New()) }

func (id MmrID) String() string { return uuid.UUID(id).String() }

// AppendResult reports the outcome of appending a single leaf.
type AppendResult struct {
	ElementIndex  ElementIndex
	LeavesCount   uint64
	ElementsCount uint64
	RootHash      Hash32
}

// BatchAppendResult reports the outcome of appending a sequence of leaves
// as a single atomic commit.
type BatchAppendResult struct {
	FirstElementIndex   ElementIndex
	LastElementIndex    ElementIndex
	LeavesCount         uint64
	ElementsCount       uint64
	RootHash            Hash32
	PerLeafElementIndex []ElementIndex
}

// Proof is a serializable inclusion witness for a single element.
//
// ElementHash is advisory metadata describing what the proof was generated
// for; it is never consulted by VerifyProof or VerifyProofStateless, which
// instead fold the elementValue the caller supplies independently. A proof
// whose ElementHash disagrees with the value actually being checked is not
// itself a verification failure — the fold against elementValue is.
type Proof struct {
	ElementIndex   ElementIndex `json:"element_index" cbor:"1,keyasint"`
	ElementHash    Hash32       `json:"element_hash" cbor:"2,keyasint"`
	SiblingsHashes []Hash32     `json:"siblings_hashes" cbor:"3,keyasint"`
	PeaksHashes    []Hash32     `json:"peaks_hashes" cbor:"4,keyasint"`
	ElementsCount  uint64       `json:"elements_count" cbor:"5,keyasint"`
}

// Hasher is the fixed-width hash capability the engine depends on. It is
// deterministic and carries no internal state between calls.
type Hasher interface {
	// HashPair returns H(left, right).
	HashPair(left, right Hash32) (Hash32, error)
	// HashCountAndBag returns H(ascii_decimal(elementsCount), bag).
	HashCountAndBag(elementsCount uint64, bag Hash32) (Hash32, error)
	// IsElementSizeValid reports whether b can be accepted as hasher input.
	IsElementSizeValid(b []byte) bool
}

// KeyKind discriminates the logical sub-tables within one MMR namespace.
type KeyKind uint8

const (
	KindLeavesCount KeyKind = iota
	KindElementsCount
	KindRootHash
	KindNodeHash
)

// StoreKey identifies one logical entry: (mmr_id, kind, subkey). For
// KindNodeHash, Index is the element index; for the Meta kinds it is unused.
type StoreKey struct {
	MmrID MmrID
	Kind  KeyKind
	Index uint64
}

func metaKey(id MmrID, kind KeyKind) StoreKey { return StoreKey{MmrID: id, Kind: kind} }
func nodeKey(id MmrID, index uint64) StoreKey {
	return StoreKey{MmrID: id, Kind: KindNodeHash, Index: index}
}

// StoreValue is the value persisted for a StoreKey: either a 32 byte hash
// or a counter.
type StoreValue struct {
	Hash    Hash32
	Counter uint64
	IsHash  bool
}

func hashValue(h Hash32) StoreValue  { return StoreValue{Hash: h, IsHash: true} }
func counterValue(c uint64) StoreValue { return StoreValue{Counter: c} }

// KeyValue pairs a StoreKey with the value to persist for it, used by
// SetMany.
type KeyValue struct {
	Key   StoreKey
	Value StoreValue
}

// Store is the persistent key-value capability the engine depends on. All
// namespaces for a deployment share one Store; mmr_id keeps them apart.
// SetMany must be atomic: either every entry persists, or none does.
type Store interface {
	Get(ctx context.Context, key StoreKey) (StoreValue, bool, error)
	GetMany(ctx context.Context, keys []StoreKey) ([]StoreValue, []bool, error)
	Set(ctx context.Context, key StoreKey, value StoreValue) error
	SetMany(ctx context.Context, entries []KeyValue) error
}
