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

func maxInt32(x, y int32) int32 {
	if x > y {
		return x
	}
	return y
}

// fill runs the three-layer affine-gap recurrence over s and t, and
// selects the endpoint of the fitting alignment that consumes all of
// s. The endpoint is the column of the best score in the last row of
// middle, where later columns win ties. If t is empty, the endpoint is
// column 0.
func (m *gotohMatrices) fill(s, t string, match, mismatch, gapOpen, gapExtend int32) (score, end int32) {
	sl := int32(len(s))
	tl := int32(len(t))

	nrow := sl + 1
	ncol := tl + 1
	m.ensureSize(nrow, ncol)

	for i := int32(1); i < nrow; i++ {
		gap := -(gapOpen + (i-1)*gapExtend)
		m.upper.setAt(i, 0, NegativeInfinity)
		m.middle.setAt(i, 0, gap)
		m.lower.setAt(i, 0, gap)
	}
	for j := int32(1); j < ncol; j++ {
		gap := -(gapOpen + (j-1)*gapExtend)
		m.upper.setAt(0, j, gap)
		m.middle.setAt(0, j, gap)
		m.lower.setAt(0, j, NegativeInfinity)
	}
	m.upper.setAt(0, 0, NegativeInfinity)
	m.lower.setAt(0, 0, NegativeInfinity)

	curMiddle := m.middle.rowView(0)
	curLower := m.lower.rowView(0)

	for i := int32(1); i < nrow; i++ {
		sBase := s[i-1]
		lastMiddle, lastLower := curMiddle, curLower
		curMiddle = m.middle.rowView(i)
		curLower = m.lower.rowView(i)
		curUpper := m.upper.rowView(i)

		for j := int32(1); j < ncol; j++ {
			stepDiag := lastMiddle[j-1]
			if sBase == t[j-1] {
				stepDiag += match
			} else {
				stepDiag -= mismatch
			}
			curLower[j] = maxInt32(lastLower[j]-gapExtend, lastMiddle[j]-gapOpen)
			curUpper[j] = maxInt32(curUpper[j-1]-gapExtend, curMiddle[j-1]-gapOpen)
			curMiddle[j] = maxInt32(maxInt32(curLower[j], curUpper[j]), stepDiag)
		}
	}

	if tl == 0 {
		return m.middle.at(sl, 0), 0
	}
	score = NegativeInfinity
	bottomRow := m.middle.rowView(sl)
	for j := int32(1); j < ncol; j++ {
		if bottomRow[j] >= score {
			score = bottomRow[j]
			end = j
		}
	}
	return score, end
}

// Extension is the alignment of one window next to a seed.
type Extension struct {
	Score int

	// S and T are the aligned forms of the two input strings. They
	// have equal length; GapChar in one pairs with a base in the other.
	S, T string

	// Anchor is the number of characters of t consumed by the alignment.
	Anchor int
}

// Extend computes the best fitting alignment of s against a prefix of
// t under affine gap costs: s is consumed completely, while the
// alignment may stop anywhere in t.
//
// Empty inputs are not an error. Two empty strings yield a zero score
// and empty alignments.
func Extend(s, t string, p Params) (Extension, error) {
	if err := p.Validate(); err != nil {
		return Extension{}, err
	}
	return extend(s, t, p)
}

func extend(s, t string, p Params) (Extension, error) {
	if err := p.checkSize(len(s), len(t)); err != nil {
		return Extension{}, err
	}

	m := getGotohMatrices()
	defer putGotohMatrices(m)

	gapOpen := int32(p.GapOpen)
	score, end := m.fill(s, t, int32(p.Match), int32(p.Mismatch), gapOpen, int32(p.GapExtend))
	sAln, tAln := m.backtrack(s, t, end, gapOpen)

	return Extension{
		Score:  int(score),
		S:      sAln,
		T:      tAln,
		Anchor: int(end),
	}, nil
}
