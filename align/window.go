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

import "fmt"

// BoundaryChar occupies index 0 of every reference window built by
// Window.
const BoundaryChar = '_'

// Window cuts the reference window for a seed at seedPosition in a
// full contig. The window holds BoundaryChar followed by up to r bases
// before the seed, the seed itself, the base after the seed, and up to
// r further bases. It returns the window and the seed offset within it.
func Window(contig []byte, seedPosition, seedLength, r int) (window string, seedOffset int, err error) {
	switch {
	case seedPosition < 0 || seedLength <= 0 || seedPosition+seedLength > len(contig):
		return "", 0, fmt.Errorf("%w: seed [%v, %v) outside contig of length %v", ErrInvalidSeed, seedPosition, seedPosition+seedLength, len(contig))
	case r < 0:
		return "", 0, fmt.Errorf("%w: negative window length %v", ErrInvalidSeed, r)
	}
	start := seedPosition - r
	if start < 0 {
		start = 0
	}
	end := seedPosition + seedLength + 1 + r
	if end > len(contig) {
		end = len(contig)
	}
	buf := make([]byte, 0, end-start+1)
	buf = append(buf, BoundaryChar)
	buf = append(buf, contig[start:end]...)
	return string(buf), seedPosition - start + 1, nil
}

// NewRequest builds the request for a seed at seedPosition in contig,
// using a window of r bases on either side.
func NewRequest(contig []byte, query string, seedPosition, seedLength, r int) (Request, error) {
	window, seedOffset, err := Window(contig, seedPosition, seedLength, r)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Reference:  window,
		Query:      query,
		SeedOffset: seedOffset,
		SeedLength: seedLength,
		WindowR:    r,
	}, nil
}
