package mmr

import "testing"

import "github.com/stretchr/testify/assert"

func TestBitLength64(t *testing.T) {
	assert.Equal(t, uint64(0), BitLength64(0))
	assert.Equal(t, uint64(1), BitLength64(1))
	assert.Equal(t, uint64(3), BitLength64(7))
	assert.Equal(t, uint64(4), BitLength64(8))
}

func TestPopCount64(t *testing.T) {
	assert.Equal(t, uint64(0), PopCount64(0))
	assert.Equal(t, uint64(3), PopCount64(7))
	assert.Equal(t, uint64(1), PopCount64(8))
}

func TestTrailingOnes64(t *testing.T) {
	assert.Equal(t, uint64(0), TrailingOnes64(0))
	assert.Equal(t, uint64(0), TrailingOnes64(4))
	assert.Equal(t, uint64(2), TrailingOnes64(3))
	assert.Equal(t, uint64(3), TrailingOnes64(7))
}
