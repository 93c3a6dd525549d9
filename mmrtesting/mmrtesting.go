/*
Package mmrtesting provides the fixtures the mmr package's tests build
on: a deterministic leaf generator and a TestContext bundling a
fresh Store, Hasher and MmrID, so a test gets straight to exercising the
accumulator instead of repeating the same setup everywhere.
*/
package mmrtesting

import (
	"crypto/sha256"
	"fmt"

	"github.com/bankaixyz/mmr"
	"github.com/bankaixyz/mmr/hash"
	"github.com/bankaixyz/mmr/store"
)

// TestContext bundles a fresh in-memory Store, the default KeccakHasher,
// and a fresh MmrID, so a test can get straight to exercising mmr.New
// without repeating the same three lines of setup everywhere.
type TestContext struct {
	Store  *store.Memory
	Hasher hash.KeccakHasher
	MmrID  mmr.MmrID
}

// NewTestContext returns a TestContext over a brand new, empty Store.
func NewTestContext() *TestContext {
	return &TestContext{
		Store:  store.NewMemory(),
		Hasher: hash.NewKeccakHasher(),
		MmrID:  mmr.NewMmrID(),
	}
}

// New opens an Mmr handle over the TestContext's Store, Hasher and MmrID.
func (tc *TestContext) New(opts ...mmr.Option) *mmr.Mmr {
	return mmr.New(tc.MmrID, tc.Store, tc.Hasher, opts...)
}

// GenerateLeaf deterministically derives the i'th test leaf's hash as
// sha256("leaf-<i>"), giving callers a cheap, repeatable stand-in for
// whatever leaf-hashing policy an application would otherwise bring.
func GenerateLeaf(i int) mmr.Hash32 {
	return mmr.Hash32(sha256.Sum256([]byte(fmt.Sprintf("leaf-%d", i))))
}

// GenerateLeaves returns the first n leaves GenerateLeaf would produce.
func GenerateLeaves(n int) []mmr.Hash32 {
	leaves := make([]mmr.Hash32, n)
	for i := range leaves {
		leaves[i] = GenerateLeaf(i)
	}
	return leaves
}
