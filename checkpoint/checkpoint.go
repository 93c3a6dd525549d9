package checkpoint

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"

	"github.com/bankaixyz/mmr"
)

// Checkpoint is the payload an envelope from Sign commits to: a statement that
// an accumulator's root was exactly RootHash once it held ElementsCount
// elements, made at SignedAt (unix seconds, UTC).
type Checkpoint struct {
	MmrID         string     `cbor:"1,keyasint" json:"mmr_id"`
	ElementsCount uint64     `cbor:"2,keyasint" json:"elements_count"`
	RootHash      mmr.Hash32 `cbor:"3,keyasint" json:"root_hash"`
	SignedAt      int64      `cbor:"4,keyasint" json:"signed_at"`
}

// Now returns the current instant as the unix-seconds value SignedAt
// expects.
func Now() int64 { return time.Now().UTC().Unix() }

// Sign produces a COSE Sign1 envelope over cp, signed with key. The
// envelope's algorithm header is fixed to ES256, the same curve
// massifs/rootsigner.go signs with.
func Sign(key *ecdsa.PrivateKey, cp Checkpoint) ([]byte, error) {
	payload, err := cbor.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: encoding payload: %w", err)
	}

	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: building signer: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	msg.Payload = payload

	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("checkpoint: signing: %w", err)
	}

	data, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("checkpoint: encoding envelope: %w", err)
	}
	return data, nil
}

// Verify checks a COSE Sign1 envelope produced by Sign against pub, and
// returns the Checkpoint it commits to. A verification failure is returned
// as an error, not a boolean: unlike an inclusion proof, there is no
// meaningful "well-formed but false" state for a checkpoint signature.
func Verify(pub *ecdsa.PublicKey, envelope []byte) (Checkpoint, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(envelope); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: decoding envelope: %w", err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, pub)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: building verifier: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: signature invalid: %w", err)
	}

	var cp Checkpoint
	if err := cbor.Unmarshal(msg.Payload, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: decoding payload: %w", err)
	}
	return cp, nil
}

// For verifies that cp matches the live state of m at cp.ElementsCount,
// recomputing the root the accumulator actually holds at that size rather
// than trusting a caller-supplied root. It is a convenience over calling
// Mmr.CalculateRootHash and comparing by hand.
func For(ctx context.Context, m *mmr.Mmr, cp Checkpoint) (bool, error) {
	root, err := m.CalculateRootHash(ctx, cp.ElementsCount)
	if err != nil {
		return false, err
	}
	return root == cp.RootHash, nil
}
