/*
Package checkpoint implements signed root checkpoints: a small COSE Sign1
envelope over an accumulator's (mmr_id, elements_count, root_hash) at a
point in time, built with github.com/veraison/go-cose the same way the
teacher's massifs package seals a massif with rootsigner.go. A checkpoint
lets a verifier that was not present to watch every append still trust a
root it is handed, as long as it trusts the signer's public key.
*/
package checkpoint
