package mmr

// BagThePeaks combines a left-to-right list of peak hashes into a single
// digest: the empty accumulator bags to ZeroHash, a single peak bags to
// itself, and two or more peaks fold right-to-left, pairing the last two
// first and then folding every preceding peak in front of that running
// hash: H(p0, H(p1, H(p2, ... H(p_n-2, p_n-1)))).
func BagThePeaks(hasher Hasher, peaks []Hash32) (Hash32, error) {
	switch len(peaks) {
	case 0:
		return ZeroHash, nil
	case 1:
		return peaks[0], nil
	}

	bag := peaks[len(peaks)-1]
	for i := len(peaks) - 2; i >= 0; i-- {
		next, err := hasher.HashPair(peaks[i], bag)
		if err != nil {
			return Hash32{}, err
		}
		bag = next
	}
	return bag, nil
}
