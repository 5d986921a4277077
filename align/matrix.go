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

import "sync"

type int32Matrix struct {
	cols  int32
	array []int32
}

func (m *int32Matrix) ensureSize(rows, cols int32) {
	m.cols = cols
	totalSize := rows * cols
	if totalSize <= int32(cap(m.array)) {
		m.array = m.array[:totalSize]
		for i := int32(0); i < totalSize; i++ {
			m.array[i] = 0
		}
	} else {
		m.array = make([]int32, totalSize)
	}
}

func (m *int32Matrix) at(row, col int32) int32 {
	return m.array[row*m.cols+col]
}

func (m *int32Matrix) setAt(row, col, value int32) {
	m.array[row*m.cols+col] = value
}

func (m *int32Matrix) rowView(row int32) []int32 {
	offset := row * m.cols
	return m.array[offset : offset+m.cols]
}

// gotohMatrices are the three layers of the affine-gap recurrence.
// lower holds scores ending in a gap against t, upper scores ending
// in a gap against s, and middle the best of all three.
type gotohMatrices struct {
	lower, middle, upper int32Matrix
}

var gotohMatricesPool = sync.Pool{New: func() interface{} { return &gotohMatrices{} }}

func getGotohMatrices() *gotohMatrices {
	return gotohMatricesPool.Get().(*gotohMatrices)
}

func putGotohMatrices(m *gotohMatrices) {
	gotohMatricesPool.Put(m)
}

func (m *gotohMatrices) ensureSize(rows, cols int32) {
	m.lower.ensureSize(rows, cols)
	m.middle.ensureSize(rows, cols)
	m.upper.ensureSize(rows, cols)
}
