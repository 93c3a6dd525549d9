package mmr

import "math/bits"

// BitLength64 is the number of bits needed to represent num, ie
// floor(log2(num))+1 for num > 0, and 0 for num == 0. Mirrors
// datatrails' mmr.BitLength64, kept here because the algebra below leans
// on it throughout.
func BitLength64(num uint64) uint64 { return uint64(bits.Len64(num)) }

// PopCount64 is the number of set bits in num.
func PopCount64(num uint64) uint64 { return uint64(bits.OnesCount64(num)) }

// TrailingOnes64 is the number of consecutive set bits starting from bit 0.
// leaf_count_to_append_no_merges relies on this being exactly the number of
// carries a single append triggers.
func TrailingOnes64(num uint64) uint64 { return uint64(bits.TrailingZeros64(^num)) }
