package store

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bankaixyz/mmr"
)

// BloomAccelerated wraps a Store with an in-memory bit filter over
// mmr.KindNodeHash keys, using LSB0 bit-packing and a double hash derived
// from a single sha256 digest, so that accelerating "is this node hash
// definitely absent" costs one filter probe instead of a round trip.
//
// It never answers a positive Get/GetMany itself: a filter hit still goes
// to the wrapped Store (it may be a false positive). A filter miss on a
// KindNodeHash key is answered as not found without consulting the wrapped
// Store. The filter learns a key only when it is written through this
// wrapper's Set/SetMany; NewBloomAccelerated does not learn keys that are
// already present in the wrapped Store, so such node hashes read as not
// found until they are written through the wrapper.
type BloomAccelerated struct {
	next mmr.Store

	mu   sync.RWMutex
	bits []byte
	k    uint8
}

// NewBloomAccelerated wraps next with a filter sized for approximately
// expectedEntries node hashes at around a 1% false positive rate.
func NewBloomAccelerated(next mmr.Store, expectedEntries uint64) *BloomAccelerated {
	if expectedEntries < 1024 {
		expectedEntries = 1024
	}
	bits, k := sizeFilter(expectedEntries)
	return &BloomAccelerated{
		next: next,
		bits: make([]byte, (bits+7)/8),
		k:    k,
	}
}

// sizeFilter picks a bit count and hash count for a target false positive
// rate of roughly 1%, using the standard m = -n*ln(p)/ln(2)^2 formula.
func sizeFilter(n uint64) (bits uint64, k uint8) {
	const lnP = -4.6 // ln(0.01)
	const ln2Sq = 0.4805
	bits = uint64(float64(n) * -lnP / ln2Sq)
	if bits < 64 {
		bits = 64
	}
	k = 7
	return bits, k
}

func (f *BloomAccelerated) positions(key mmr.StoreKey) []uint64 {
	h := sha256.Sum256(keyBytes(key))
	h1 := binary.BigEndian.Uint64(h[0:8])
	h2 := binary.BigEndian.Uint64(h[8:16])

	m := uint64(len(f.bits)) * 8
	positions := make([]uint64, f.k)
	for i := uint8(0); i < f.k; i++ {
		positions[i] = (h1 + uint64(i)*h2) % m
	}
	return positions
}

func keyBytes(key mmr.StoreKey) []byte {
	id := key.MmrID.String()
	buf := make([]byte, 16, 16+len(id))
	binary.BigEndian.PutUint64(buf[0:8], uint64(key.Kind))
	binary.BigEndian.PutUint64(buf[8:16], key.Index)
	return append(buf, id...)
}

// maybeContains reports false only when key is provably absent from the
// filter; true means "present, or a false positive".
func (f *BloomAccelerated) maybeContains(key mmr.StoreKey) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, pos := range f.positions(key) {
		byteIdx, bitIdx := pos/8, pos%8
		if f.bits[byteIdx]&(1<<bitIdx) == 0 {
			return false
		}
	}
	return true
}

func (f *BloomAccelerated) record(key mmr.StoreKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pos := range f.positions(key) {
		byteIdx, bitIdx := pos/8, pos%8
		f.bits[byteIdx] |= 1 << bitIdx
	}
}

func (f *BloomAccelerated) Get(ctx context.Context, key mmr.StoreKey) (mmr.StoreValue, bool, error) {
	if key.Kind == mmr.KindNodeHash && !f.maybeContains(key) {
		return mmr.StoreValue{}, false, nil
	}
	v, found, err := f.next.Get(ctx, key)
	if err != nil {
		return mmr.StoreValue{}, false, fmt.Errorf("store: bloom passthrough get: %w", err)
	}
	return v, found, nil
}

func (f *BloomAccelerated) GetMany(ctx context.Context, keys []mmr.StoreKey) ([]mmr.StoreValue, []bool, error) {
	var toFetch []mmr.StoreKey
	var toFetchIdx []int
	values := make([]mmr.StoreValue, len(keys))
	found := make([]bool, len(keys))

	for i, key := range keys {
		if key.Kind == mmr.KindNodeHash && !f.maybeContains(key) {
			continue
		}
		toFetch = append(toFetch, key)
		toFetchIdx = append(toFetchIdx, i)
	}

	if len(toFetch) == 0 {
		return values, found, nil
	}

	fetchedValues, fetchedFound, err := f.next.GetMany(ctx, toFetch)
	if err != nil {
		return nil, nil, fmt.Errorf("store: bloom passthrough get_many: %w", err)
	}
	for j, idx := range toFetchIdx {
		values[idx], found[idx] = fetchedValues[j], fetchedFound[j]
	}
	return values, found, nil
}

func (f *BloomAccelerated) Set(ctx context.Context, key mmr.StoreKey, value mmr.StoreValue) error {
	if err := f.next.Set(ctx, key, value); err != nil {
		return err
	}
	if key.Kind == mmr.KindNodeHash {
		f.record(key)
	}
	return nil
}

func (f *BloomAccelerated) SetMany(ctx context.Context, entries []mmr.KeyValue) error {
	if err := f.next.SetMany(ctx, entries); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Key.Kind == mmr.KindNodeHash {
			f.record(entry.Key)
		}
	}
	return nil
}
