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

import "github.com/exascience/alignfix/internal"

type traceState byte

const (
	stateMiddle traceState = iota
	stateLower
	stateUpper
)

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// backtrack walks the filled matrices from (len(s), end) back to the
// origin and returns the aligned forms of s and t.
//
// A step in the lower layer consumes a base of s against a gap, and
// returns to middle if that cell was reached by opening the gap.
// Upper is the same for t. In the middle layer lower is preferred
// over upper over the diagonal on equal scores; switching layers does
// not move.
func (m *gotohMatrices) backtrack(s, t string, end, gapOpen int32) (string, string) {
	i := int32(len(s))
	j := end

	sBuf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(sBuf)
	tBuf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(tBuf)
	sAln, tAln := *sBuf, *tBuf

	state := stateMiddle
	for i > 0 || j > 0 {
		switch state {
		case stateLower:
			sAln = append(sAln, s[i-1])
			tAln = append(tAln, GapChar)
			if m.lower.at(i, j) == m.middle.at(i-1, j)-gapOpen {
				state = stateMiddle
			}
			i--
		case stateUpper:
			sAln = append(sAln, GapChar)
			tAln = append(tAln, t[j-1])
			if m.upper.at(i, j) == m.middle.at(i, j-1)-gapOpen {
				state = stateMiddle
			}
			j--
		default:
			switch m.middle.at(i, j) {
			case m.lower.at(i, j):
				state = stateLower
			case m.upper.at(i, j):
				state = stateUpper
			default:
				sAln = append(sAln, s[i-1])
				tAln = append(tAln, t[j-1])
				i--
				j--
			}
		}
	}

	reverseBytes(sAln)
	reverseBytes(tAln)
	*sBuf, *tBuf = sAln, tAln
	return string(sAln), string(tAln)
}
