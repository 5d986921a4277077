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
	"fmt"
	"strconv"
)

// ErrAlignmentShape is returned for aligned string pairs that cannot
// come from an alignment.
var ErrAlignmentShape = errors.New("malformed alignment")

// Rescore recomputes the score of an aligned pair under the affine
// gap model of p: a run of k gap markers on the same side costs
// GapOpen+(k-1)*GapExtend, and a run on the other side starts anew.
// For valid parameters this is the score Extend reports for its own
// alignments.
func Rescore(s, t string, p Params) (int, error) {
	if len(s) != len(t) {
		return 0, fmt.Errorf("%w: aligned lengths %v and %v differ", ErrAlignmentShape, len(s), len(t))
	}
	score := 0
	state := stateMiddle
	for k := 0; k < len(s); k++ {
		a, b := s[k], t[k]
		switch {
		case a == GapChar && b == GapChar:
			return 0, fmt.Errorf("%w: two gaps in column %v", ErrAlignmentShape, k)
		case b == GapChar:
			if state == stateLower {
				score -= p.GapExtend
			} else {
				score -= p.GapOpen
				state = stateLower
			}
		case a == GapChar:
			if state == stateUpper {
				score -= p.GapExtend
			} else {
				score -= p.GapOpen
				state = stateUpper
			}
		default:
			state = stateMiddle
			if a == b {
				score += p.Match
			} else {
				score -= p.Mismatch
			}
		}
	}
	return score, nil
}

// CigarOperation is one run of a CIGAR string.
type CigarOperation struct {
	Length    int32
	Operation byte
}

// Cigar describes an aligned pair as merged M, I and D operations,
// relative to the reference. A gap in the query is a deletion, a gap
// in the reference an insertion.
func Cigar(queryAlignment, referenceAlignment string) []CigarOperation {
	var cigar []CigarOperation
	n := len(queryAlignment)
	if len(referenceAlignment) < n {
		n = len(referenceAlignment)
	}
	for k := 0; k < n; k++ {
		var op byte
		switch {
		case queryAlignment[k] == GapChar:
			op = 'D'
		case referenceAlignment[k] == GapChar:
			op = 'I'
		default:
			op = 'M'
		}
		if l := len(cigar) - 1; l >= 0 && cigar[l].Operation == op {
			cigar[l].Length++
		} else {
			cigar = append(cigar, CigarOperation{1, op})
		}
	}
	return cigar
}

// CigarString renders cigar in SAM notation, or "*" if it is empty.
func CigarString(cigar []CigarOperation) string {
	if len(cigar) == 0 {
		return "*"
	}
	var buf []byte
	for _, op := range cigar {
		buf = strconv.AppendInt(buf, int64(op.Length), 10)
		buf = append(buf, op.Operation)
	}
	return string(buf)
}

// ReadLengthFromCigar sums the lengths of the operations that consume query bases.
func ReadLengthFromCigar(cigar []CigarOperation) (length int32) {
	for _, op := range cigar {
		if op.Operation != 'D' {
			length += op.Length
		}
	}
	return
}

// ReferenceLengthFromCigar sums the lengths of the operations that consume
// reference bases.
func ReferenceLengthFromCigar(cigar []CigarOperation) (length int32) {
	for _, op := range cigar {
		if op.Operation != 'I' {
			length += op.Length
		}
	}
	return
}
