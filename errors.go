package mmr

import "errors"

// Verification failures (wrong hash, mismatched lengths once preconditions
// hold) are reported as a false return, not an error; these vars are for
// the precondition failures that prevent verification from running at all.
var (
	ErrInvalidElementIndex         = errors.New("mmr: invalid element index")
	ErrInvalidMmrSize              = errors.New("mmr: elements count is not a canonical mmr size")
	ErrInvalidPeaksCount           = errors.New("mmr: proof peaks count does not match the accumulator")
	ErrInvalidPeaksCountForElements = errors.New("mmr: seed peaks count does not match find_peaks(elements_count)")
	ErrNonEmptyMMR                 = errors.New("mmr: create_from_peaks called on a non-empty mmr")
	ErrInvalidElementSize          = errors.New("mmr: hasher rejected an input element")
	ErrHashMissing                 = errors.New("mmr: store has no hash for an expected node")
	ErrEmptyBatchAppend            = errors.New("mmr: batch_append requires at least one value")
)
