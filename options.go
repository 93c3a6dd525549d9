package mmr

import "go.uber.org/zap"

type mmrOptions struct {
	logger *zap.Logger
}

// Option configures an Mmr at construction time by setting fields of the
// private options struct, matching the functional option pattern
// massifs/options.go uses for StorageOptions.
type Option func(*mmrOptions)

// WithLogger attaches a zap logger. BatchAppend (and so Append) logs each
// successful commit at Debug level with the mmr id, the number of leaves
// added and the new elements count; failures are returned as errors and
// are not logged. Hash material is never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(o *mmrOptions) { o.logger = logger }
}

func resolveOptions(opts []Option) mmrOptions {
	var o mmrOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

type proofOptions struct {
	elementsCount *uint64
}

// ProofOption configures GetProof calls that want to operate against a
// historical tree size rather than the mmr's current one. VerifyProof and
// VerifyProofStateless take no options: both verify against
// proof.ElementsCount.
type ProofOption func(*proofOptions)

// WithElementsCount pins the tree size a proof is generated against,
// instead of defaulting to the mmr's current elements_count.
func WithElementsCount(elementsCount uint64) ProofOption {
	return func(o *proofOptions) { o.elementsCount = &elementsCount }
}

func resolveProofOptions(opts []ProofOption) proofOptions {
	var o proofOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
