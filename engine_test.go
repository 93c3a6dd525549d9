package mmr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankaixyz/mmr"
	"github.com/bankaixyz/mmr/hash"
	"github.com/bankaixyz/mmr/mmrtesting"
	"github.com/bankaixyz/mmr/store"
)

func TestAppend_SingleLeaf(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()

	res, err := acc.Append(ctx, mmrtesting.GenerateLeaf(0))
	require.NoError(t, err)
	assert.Equal(t, mmr.ElementIndex(1), res.ElementIndex)
	assert.Equal(t, uint64(1), res.LeavesCount)
	assert.Equal(t, uint64(1), res.ElementsCount)

	root, err := acc.RootHash(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.RootHash, root)
}

func TestBatchAppend_EqualsSequentialAppend(t *testing.T) {
	ctx := context.Background()
	leaves := mmrtesting.GenerateLeaves(11)

	tcBatch := mmrtesting.NewTestContext()
	batchAcc := tcBatch.New()
	batchRes, err := batchAcc.BatchAppend(ctx, leaves)
	require.NoError(t, err)

	tcSeq := mmrtesting.NewTestContext()
	seqAcc := tcSeq.New()
	var lastRoot mmr.Hash32
	for _, leaf := range leaves {
		res, err := seqAcc.Append(ctx, leaf)
		require.NoError(t, err)
		lastRoot = res.RootHash
	}

	assert.Equal(t, batchRes.RootHash, lastRoot)
	assert.Equal(t, batchRes.ElementsCount, uint64(19))
	assert.Equal(t, batchRes.LeavesCount, uint64(len(leaves)))
}

func TestAppend_EmptyBatchRejected(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()

	_, err := acc.BatchAppend(ctx, nil)
	assert.ErrorIs(t, err, mmr.ErrEmptyBatchAppend)
}

func TestCreateFromPeaks_SeedsAndContinues(t *testing.T) {
	ctx := context.Background()
	leaves := mmrtesting.GenerateLeaves(7)

	tcDirect := mmrtesting.NewTestContext()
	directAcc := tcDirect.New()
	_, err := directAcc.BatchAppend(ctx, leaves)
	require.NoError(t, err)
	seedPeaks, err := directAcc.GetPeaks(ctx, 11)
	require.NoError(t, err)

	tcSeeded := mmrtesting.NewTestContext()
	seededAcc, err := mmr.CreateFromPeaks(ctx, tcSeeded.MmrID, tcSeeded.Store, tcSeeded.Hasher, 7, seedPeaks)
	require.NoError(t, err)

	moreLeaves := mmrtesting.GenerateLeaves(11)[7:]
	_, err = seededAcc.BatchAppend(ctx, moreLeaves)
	require.NoError(t, err)

	tcAllAtOnce := mmrtesting.NewTestContext()
	allAtOnceAcc := tcAllAtOnce.New()
	_, err = allAtOnceAcc.BatchAppend(ctx, mmrtesting.GenerateLeaves(11))
	require.NoError(t, err)

	seededRoot, err := seededAcc.RootHash(ctx)
	require.NoError(t, err)
	directRoot, err := allAtOnceAcc.RootHash(ctx)
	require.NoError(t, err)
	assert.Equal(t, directRoot, seededRoot)
}

func TestNew_ZeroIDGeneratesFreshID(t *testing.T) {
	acc := mmr.New(mmr.MmrID{}, store.NewMemory(), hash.NewKeccakHasher())
	assert.NotEqual(t, mmr.MmrID{}, acc.ID())
}

func TestNew_NonZeroIDPreserved(t *testing.T) {
	id := mmr.NewMmrID()
	acc := mmr.New(id, store.NewMemory(), hash.NewKeccakHasher())
	assert.Equal(t, id, acc.ID())
}

func TestCreateFromPeaks_RejectsNonEmpty(t *testing.T) {
	ctx := context.Background()
	tc := mmrtesting.NewTestContext()
	acc := tc.New()
	_, err := acc.Append(ctx, mmrtesting.GenerateLeaf(0))
	require.NoError(t, err)

	_, err = mmr.CreateFromPeaks(ctx, tc.MmrID, tc.Store, tc.Hasher, 1, []mmr.Hash32{mmrtesting.GenerateLeaf(0)})
	assert.ErrorIs(t, err, mmr.ErrNonEmptyMMR)
}
