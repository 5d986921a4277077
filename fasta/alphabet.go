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

package fasta

import "github.com/willf/bitset"

var (
	toUpperTable, toNTable, toUpperAndNTable [256]byte

	nucleotides *bitset.BitSet
)

func init() {
	for i := range toUpperTable {
		c := byte(i)
		toNTable[i] = c
		if c >= 'a' && c <= 'z' {
			toUpperTable[i] = c - 'a' + 'A'
		} else {
			toUpperTable[i] = c
		}
		toUpperAndNTable[i] = toUpperTable[i]
	}
	for _, c := range []byte("RYMKWSBDHVN") {
		lc := c - 'A' + 'a'
		toNTable[c] = 'N'
		toNTable[lc] = 'N'
		toUpperAndNTable[c] = 'N'
		toUpperAndNTable[lc] = 'N'
	}

	nucleotides = bitset.New(256)
	for _, c := range []byte("ACGTURYMKWSBDHVN") {
		nucleotides.Set(uint(c))
		nucleotides.Set(uint(c - 'A' + 'a'))
	}
}

// ToN can be used to normalize ambiguity codes in FASTA references.
func ToN(base byte) byte {
	return toNTable[base]
}

// ToUpperAndN can be used to normalize ambiguity codes in FASTA references,
// and convert all codes to upper case.
func ToUpperAndN(base byte) byte {
	return toUpperAndNTable[base]
}

// CheckAlphabet reports whether seq consists of IUPAC nucleotide codes
// only. If not, it also returns the index of the first offending byte.
func CheckAlphabet(seq []byte) (int, bool) {
	for i, c := range seq {
		if !nucleotides.Test(uint(c)) {
			return i, false
		}
	}
	return -1, true
}
