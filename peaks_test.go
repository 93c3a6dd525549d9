package mmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPeaks(t *testing.T) {
	assert.Nil(t, FindPeaks(0))
	assert.Equal(t, []uint64{1}, FindPeaks(1))
	assert.Equal(t, []uint64{3, 4}, FindPeaks(4))
	assert.Equal(t, []uint64{7}, FindPeaks(7))
	assert.Equal(t, []uint64{7, 10, 11}, FindPeaks(11))
}

func TestFindPeaks_NonCanonical(t *testing.T) {
	assert.Nil(t, FindPeaks(2))
	assert.Nil(t, FindPeaks(9))
}

func TestGetPeakInfo(t *testing.T) {
	cases := []struct {
		elementsCount, elementIndex uint64
		peakOrdinal                 int
		height                      uint64
	}{
		{7, 1, 0, 2},
		{7, 7, 0, 2},
		{11, 8, 1, 1},
		{11, 10, 1, 1},
		{11, 11, 2, 0},
	}
	for _, c := range cases {
		ordinal, height := GetPeakInfo(c.elementsCount, c.elementIndex)
		assert.Equal(t, c.peakOrdinal, ordinal, "elements_count=%d element_index=%d", c.elementsCount, c.elementIndex)
		assert.Equal(t, c.height, height, "elements_count=%d element_index=%d", c.elementsCount, c.elementIndex)
	}
}
