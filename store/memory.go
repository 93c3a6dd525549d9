package store

import (
	"context"
	"sync"

	"github.com/bankaixyz/mmr"
)

// Memory is a Store backed by an in-process map. It is safe for concurrent
// use, and is the obvious choice for tests and for single-process
// accumulators that don't need to survive a restart.
type Memory struct {
	mu   sync.RWMutex
	data map[mmr.StoreKey]mmr.StoreValue
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[mmr.StoreKey]mmr.StoreValue)}
}

func (m *Memory) Get(_ context.Context, key mmr.StoreKey) (mmr.StoreValue, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) GetMany(_ context.Context, keys []mmr.StoreKey) ([]mmr.StoreValue, []bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]mmr.StoreValue, len(keys))
	found := make([]bool, len(keys))
	for i, key := range keys {
		v, ok := m.data[key]
		values[i] = v
		found[i] = ok
	}
	return values, found, nil
}

func (m *Memory) Set(_ context.Context, key mmr.StoreKey, value mmr.StoreValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) SetMany(_ context.Context, entries []mmr.KeyValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// A single critical section makes this atomic from the perspective of
	// any reader holding mu.RLock: no reader observes a partial write.
	for _, entry := range entries {
		m.data[entry.Key] = entry.Value
	}
	return nil
}
