/*
Package mmr implements a Merkle Mountain Range accumulator: an append-only
authenticated data structure whose leaves form a forest of perfect binary
trees ("mountains"). Mountain roots ("peaks") are combined into a single
root hash that commits to every leaf ever appended, and any leaf can be
shown to be included in that root with a witness path logarithmic in the
number of leaves.

# Approach

The structure and its arithmetic follow the same construction used by
mimblewimble's pmmr and by datatrails' go-datatrails-merklelog/mmr: the
post-order traversal of the forest (children before parents, left to
right) is identical to the order elements are appended in, so the entire
tree can be navigated with pure integer arithmetic on 1-based "element
index" positions without ever materializing a node that isn't being
read. The low level primitives in this package (FindPeaks, FindSiblings,
GetPeakInfo, MapLeafIndexToElementIndex) exploit that property; the
engine in Mmr composes them with a pluggable Hasher and Store to produce
and verify inclusion proofs.

A leaf enters the range already in hash domain: this package never
hashes raw application data, it only combines already-hashed Hash32
values.
*/
package mmr
