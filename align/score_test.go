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

import (
	"errors"
	"testing"
)

func TestRescore(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		s, t     string
		expected int
	}{
		{"", "", 0},
		{"ACGT", "ACGT", 8},
		{"ACGT", "AGGT", 3},
		{"AC-GT", "ACCGT", 3},
		{"A--C", "AGGC", -3},
		{"A---C", "AGGGC", -5},
		{"AC", "--", -7},
		{"A-C-", "AG-T", -13},
	}
	for i, test := range tests {
		score, err := Rescore(test.s, test.t, p)
		if err != nil {
			t.Errorf("Rescore %v failed: %v", i, err)
		} else if score != test.expected {
			t.Errorf("Rescore %v failed: got %v, expected %v", i, score, test.expected)
		}
	}
	if _, err := Rescore("ACG", "AC", p); !errors.Is(err, ErrAlignmentShape) {
		t.Error("Rescore length check failed")
	}
	if _, err := Rescore("A-", "A-", p); !errors.Is(err, ErrAlignmentShape) {
		t.Error("Rescore double gap check failed")
	}
}

func cigarsEqual(cigar1, cigar2 []CigarOperation) bool {
	if len(cigar1) != len(cigar2) {
		return false
	}
	for i, op := range cigar1 {
		if op != cigar2[i] {
			return false
		}
	}
	return true
}

func TestCigar(t *testing.T) {
	if Cigar("", "") != nil {
		t.Error("empty Cigar failed")
	}
	if CigarString(nil) != "*" {
		t.Error("empty CigarString failed")
	}
	cigar := Cigar("ACGTTACGT-ACGT", "ACGTTACGTTACGT")
	if !cigarsEqual(cigar, []CigarOperation{{9, 'M'}, {1, 'D'}, {4, 'M'}}) {
		t.Errorf("Cigar 1 failed: %v", cigar)
	}
	if s := CigarString(cigar); s != "9M1D4M" {
		t.Errorf("CigarString 1 failed: %v", s)
	}
	if ReadLengthFromCigar(cigar) != 13 || ReferenceLengthFromCigar(cigar) != 14 {
		t.Error("cigar lengths 1 failed")
	}
	cigar = Cigar("AACC", "A--C")
	if s := CigarString(cigar); s != "1M2I1M" {
		t.Errorf("Cigar 2 failed: %v", s)
	}
	if ReadLengthFromCigar(cigar) != 4 || ReferenceLengthFromCigar(cigar) != 2 {
		t.Error("cigar lengths 2 failed")
	}
}
