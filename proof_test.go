package mmr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankaixyz/mmr"
	"github.com/bankaixyz/mmr/hash"
	"github.com/bankaixyz/mmr/mmrtesting"
)

func TestGetProof_VerifiesForEveryElement(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()

	leaves := mmrtesting.GenerateLeaves(11)
	_, err := acc.BatchAppend(ctx, leaves)
	require.NoError(t, err)

	for i, leaf := range leaves {
		elementIndex := mmr.MapLeafIndexToElementIndex(uint64(i))
		proof, err := acc.GetProof(ctx, elementIndex)
		require.NoError(t, err, "leaf %d", i)
		assert.Equal(t, leaf, proof.ElementHash)

		ok, err := acc.VerifyProof(ctx, proof, leaf)
		require.NoError(t, err)
		assert.True(t, ok, "leaf %d should verify against the store", i)

		ok, err = mmr.VerifyProofStateless(tc.Hasher, proof, leaf)
		require.NoError(t, err)
		assert.True(t, ok, "leaf %d should verify statelessly", i)
	}
}

func TestVerifyProof_RejectsWrongElementValue(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()
	leaves := mmrtesting.GenerateLeaves(11)
	_, err := acc.BatchAppend(ctx, leaves)
	require.NoError(t, err)

	proof, err := acc.GetProof(ctx, mmr.MapLeafIndexToElementIndex(0))
	require.NoError(t, err)

	wrongValue := leaves[1]
	ok, err := acc.VerifyProof(ctx, proof, wrongValue)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = mmr.VerifyProofStateless(tc.Hasher, proof, wrongValue)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyProof_IgnoresTamperedElementHash(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()
	leaves := mmrtesting.GenerateLeaves(11)
	_, err := acc.BatchAppend(ctx, leaves)
	require.NoError(t, err)

	elementValue := leaves[0]
	proof, err := acc.GetProof(ctx, mmr.MapLeafIndexToElementIndex(0))
	require.NoError(t, err)

	// ElementHash is advisory metadata; corrupting it must not affect a
	// verification that is driven by the independently supplied value.
	proof.ElementHash[0] ^= 0xff
	ok, err := acc.VerifyProof(ctx, proof, elementValue)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mmr.VerifyProofStateless(tc.Hasher, proof, elementValue)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyProof_RejectsTamperedSibling(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()
	leaves := mmrtesting.GenerateLeaves(11)
	_, err := acc.BatchAppend(ctx, leaves)
	require.NoError(t, err)

	proof, err := acc.GetProof(ctx, mmr.MapLeafIndexToElementIndex(4))
	require.NoError(t, err)
	require.NotEmpty(t, proof.SiblingsHashes)

	proof.SiblingsHashes[0][0] ^= 0xff
	ok, err := acc.VerifyProof(ctx, proof, leaves[4])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyProof_RejectsTamperedPeak(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()
	leaves := mmrtesting.GenerateLeaves(11)
	_, err := acc.BatchAppend(ctx, leaves)
	require.NoError(t, err)

	proof, err := acc.GetProof(ctx, mmr.MapLeafIndexToElementIndex(0))
	require.NoError(t, err)
	require.NotEmpty(t, proof.PeaksHashes)

	proof.PeaksHashes[0][0] ^= 0xff
	ok, err := mmr.VerifyProofStateless(tc.Hasher, proof, leaves[0])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetProof_InvalidElementIndex(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()
	_, err := acc.BatchAppend(ctx, mmrtesting.GenerateLeaves(3))
	require.NoError(t, err)

	_, err = acc.GetProof(ctx, 0)
	assert.ErrorIs(t, err, mmr.ErrInvalidElementIndex)

	_, err = acc.GetProof(ctx, 999)
	assert.ErrorIs(t, err, mmr.ErrInvalidElementIndex)
}

func TestGetProof_AgainstHistoricalSize(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()

	leaves := mmrtesting.GenerateLeaves(11)
	_, err := acc.BatchAppend(ctx, leaves[:4])
	require.NoError(t, err)
	historicalElementIndex := mmr.MapLeafIndexToElementIndex(0)

	_, err = acc.BatchAppend(ctx, leaves[4:])
	require.NoError(t, err)

	proof, err := acc.GetProof(ctx, historicalElementIndex, mmr.WithElementsCount(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), proof.ElementsCount)

	ok, err := mmr.VerifyProofStateless(hash.NewKeccakHasher(), proof, leaves[0])
	require.NoError(t, err)
	assert.True(t, ok)
}
