// alignfix: seed-anchored affine-gap alignment of short reads.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/alignfix/blob/master/LICENSE.txt>.

package align

// LocateSeed finds the seed reference[seedOffset:seedOffset+seedLength]
// in query. It scans query offsets in increasing order and returns the
// first exact occurrence as the half-open range [start, end). If the
// seed does not occur, or the range does not fit, it returns (-1, -1).
func LocateSeed(query, reference string, seedOffset, seedLength int) (start, end int) {
	if seedOffset < 0 || seedLength < 0 || seedOffset+seedLength > len(reference) {
		return -1, -1
	}
	seed := reference[seedOffset : seedOffset+seedLength]
	for k := 0; k+seedLength <= len(query); k++ {
		if query[k:k+seedLength] == seed {
			return k, k + seedLength
		}
	}
	return -1, -1
}
