/*
Package hash implements mmr.Hasher: the pairwise and count-binding digest
functions the mmr package combines leaves and peaks with.

Two implementations are provided. KeccakHasher wraps golang.org/x/crypto/sha3
and is the default choice: cheap, well understood, and the obvious pick when
nothing downstream of the accumulator needs digests inside a zero-knowledge
circuit. PoseidonHasher operates over the BN254 scalar field using
github.com/consensys/gnark-crypto's field arithmetic and is meant for
accumulators whose membership proofs will themselves be checked inside a
SNARK, where an algebraic hash function keeps the circuit small.
*/
package hash
