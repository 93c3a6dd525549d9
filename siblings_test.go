package mmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSiblings(t *testing.T) {
	cases := []struct {
		elementIndex, elementsCount uint64
		siblings                    []uint64
	}{
		{1, 1, nil},
		{1, 7, []uint64{2, 6}},
		{8, 11, []uint64{9}},
		{11, 11, nil},
	}
	for _, c := range cases {
		got, err := FindSiblings(c.elementIndex, c.elementsCount)
		require.NoError(t, err)
		assert.Equal(t, c.siblings, got, "element_index=%d elements_count=%d", c.elementIndex, c.elementsCount)
	}
}

func TestFindSiblings_LengthMatchesPeakHeight(t *testing.T) {
	const elementsCount = 11
	const leavesCount = 7 // leaves in an 11-element mmr
	for leafIndex := uint64(0); leafIndex < leavesCount; leafIndex++ {
		elementIndex := MapLeafIndexToElementIndex(leafIndex)
		siblings, err := FindSiblings(elementIndex, elementsCount)
		require.NoError(t, err)
		_, height := GetPeakInfo(elementsCount, elementIndex)
		assert.Equal(t, int(height), len(siblings), "element_index=%d", elementIndex)
	}
}

func TestFindSiblings_InvalidElementIndex(t *testing.T) {
	_, err := FindSiblings(0, 7)
	assert.Error(t, err)
}
