package hash

import (
	stdhash "hash"
	"strconv"

	"golang.org/x/crypto/sha3"

	"github.com/bankaixyz/mmr"
)

// MaxElementSize bounds how much raw data KeccakHasher will fold into a
// single leaf or count digest. Keccak itself has no such limit; this is
// purely a sanity cap against accidentally hashing unbounded input.
const MaxElementSize = 1 << 20

// KeccakHasher implements mmr.Hasher over Keccak-256, the variant used by
// Ethereum and most MMR implementations descended from it (note: this is
// legacy Keccak, not the later NIST SHA3-256, which pads differently).
type KeccakHasher struct{}

// NewKeccakHasher returns a stateless, concurrency-safe KeccakHasher.
func NewKeccakHasher() KeccakHasher { return KeccakHasher{} }

func (KeccakHasher) HashPair(left, right mmr.Hash32) (mmr.Hash32, error) {
	h := sha3.NewLegacyKeccak256()
	h.Write(left[:])
	h.Write(right[:])
	return sum32(h), nil
}

func (KeccakHasher) HashCountAndBag(elementsCount uint64, bag mmr.Hash32) (mmr.Hash32, error) {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(strconv.FormatUint(elementsCount, 10)))
	h.Write(bag[:])
	return sum32(h), nil
}

func (KeccakHasher) IsElementSizeValid(b []byte) bool {
	return len(b) > 0 && len(b) <= MaxElementSize
}

func sum32(h stdhash.Hash) mmr.Hash32 {
	var out mmr.Hash32
	copy(out[:], h.Sum(nil))
	return out
}
