package hash

import (
	"strconv"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/bankaixyz/mmr"
)

// poseidonWidth is the sponge state size (2 rate elements + 1 capacity
// element), and poseidonFullRounds/poseidonPartialRounds are the round
// counts recommended for a width-3 Poseidon instance over a ~254 bit
// prime field (the parameters circomlib and most BN254 SNARK toolchains
// use for t=3).
const (
	poseidonWidth         = 3
	poseidonFullRounds    = 8
	poseidonPartialRounds = 57
)

var (
	poseidonRoundConstants [][poseidonWidth]fr.Element
	poseidonMDS            [poseidonWidth][poseidonWidth]fr.Element
	poseidonParamsOnce     sync.Once
)

// buildPoseidonParams derives the round constants and MDS matrix the
// permutation needs. Round constants are expanded from a fixed domain
// string through SHAKE256 with rejection sampling, the same technique the
// Grain LFSR construction in the original Poseidon paper serves: a
// reproducible stream of field elements nobody could have biased towards a
// weak instance. The MDS matrix is the standard Poseidon choice, a Cauchy
// matrix 1/(x_i - y_j) over two disjoint index sets, which is guaranteed
// maximum-distance-separable over any field.
func buildPoseidonParams() {
	totalRounds := poseidonFullRounds + poseidonPartialRounds
	poseidonRoundConstants = make([][poseidonWidth]fr.Element, totalRounds)

	shake := sha3.NewShake256()
	shake.Write([]byte("bankai-mmr/poseidon/bn254/t3/round-constants"))

	for r := 0; r < totalRounds; r++ {
		for c := 0; c < poseidonWidth; c++ {
			poseidonRoundConstants[r][c] = nextFieldElement(shake)
		}
	}

	var xs, ys [poseidonWidth]fr.Element
	for i := 0; i < poseidonWidth; i++ {
		xs[i].SetUint64(uint64(i))
		ys[i].SetUint64(uint64(poseidonWidth + i))
	}
	for i := 0; i < poseidonWidth; i++ {
		for j := 0; j < poseidonWidth; j++ {
			var diff fr.Element
			diff.Sub(&xs[i], &ys[j])
			poseidonMDS[i][j].Inverse(&diff)
		}
	}
}

// nextFieldElement draws canonical field elements from shake by rejection
// sampling: 32 bytes at a time, discarding draws that land at or above the
// field modulus so every element is uniform over Fr rather than biased by
// a naive reduction.
func nextFieldElement(shake stdShakeHash) fr.Element {
	var buf [32]byte
	for {
		if _, err := shake.Read(buf[:]); err != nil {
			panic(err)
		}
		var candidate fr.Element
		if err := candidate.SetBytesCanonical(buf[:]); err == nil {
			return candidate
		}
	}
}

// PoseidonHasher implements mmr.Hasher as a Poseidon sponge over the BN254
// scalar field, so that inclusion proofs it produces stay cheap to check
// inside a SNARK circuit built over the same curve.
type PoseidonHasher struct{}

// NewPoseidonHasher returns a stateless, concurrency-safe PoseidonHasher.
func NewPoseidonHasher() PoseidonHasher {
	poseidonParamsOnce.Do(buildPoseidonParams)
	return PoseidonHasher{}
}

func (PoseidonHasher) permute(state [poseidonWidth]fr.Element) [poseidonWidth]fr.Element {
	totalRounds := poseidonFullRounds + poseidonPartialRounds
	for r := 0; r < totalRounds; r++ {
		for c := 0; c < poseidonWidth; c++ {
			state[c].Add(&state[c], &poseidonRoundConstants[r][c])
		}

		if r < poseidonFullRounds/2 || r >= totalRounds-poseidonFullRounds/2 {
			for c := 0; c < poseidonWidth; c++ {
				state[c] = sBox(state[c])
			}
		} else {
			state[0] = sBox(state[0])
		}

		var next [poseidonWidth]fr.Element
		for i := 0; i < poseidonWidth; i++ {
			var acc fr.Element
			for j := 0; j < poseidonWidth; j++ {
				var term fr.Element
				term.Mul(&poseidonMDS[i][j], &state[j])
				acc.Add(&acc, &term)
			}
			next[i] = acc
		}
		state = next
	}
	return state
}

// sBox is the Poseidon nonlinear layer, x^5, chosen because BN254's scalar
// field has gcd(5, p-1) = 1 so x -> x^5 is a bijection.
func sBox(x fr.Element) fr.Element {
	var x2, x4, x5 fr.Element
	x2.Square(&x)
	x4.Square(&x2)
	x5.Mul(&x4, &x)
	return x5
}

func (h PoseidonHasher) hash2(a, b fr.Element) fr.Element {
	var state [poseidonWidth]fr.Element
	state[1] = a
	state[2] = b
	out := h.permute(state)
	return out[0]
}

func (h PoseidonHasher) HashPair(left, right mmr.Hash32) (mmr.Hash32, error) {
	var a, b fr.Element
	a.SetBytes(left[:])
	b.SetBytes(right[:])
	return elementToHash32(h.hash2(a, b)), nil
}

func (h PoseidonHasher) HashCountAndBag(elementsCount uint64, bag mmr.Hash32) (mmr.Hash32, error) {
	var a, b fr.Element
	a.SetBytes([]byte(strconv.FormatUint(elementsCount, 10)))
	b.SetBytes(bag[:])
	return elementToHash32(h.hash2(a, b)), nil
}

func (PoseidonHasher) IsElementSizeValid(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var x fr.Element
	if err := x.SetBytesCanonical(b); err != nil {
		return false
	}
	return true
}

func elementToHash32(e fr.Element) mmr.Hash32 {
	return mmr.Hash32(e.Bytes())
}

// stdShakeHash is the subset of sha3's SHAKE state this package draws
// randomness from.
type stdShakeHash interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}
