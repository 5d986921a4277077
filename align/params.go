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
	"math"
)

// NegativeInfinity marks matrix cells from which no alignment may
// originate. It lies far below any score that fits within the size
// bound enforced by the aligner.
const NegativeInfinity = math.MinInt32 / 2

// GapChar is the gap marker in aligned strings.
const GapChar = '-'

// Default scoring constants. Mismatch and gap costs are subtracted.
const (
	DefaultMatch     = 2
	DefaultMismatch  = 3
	DefaultGapOpen   = 5
	DefaultGapExtend = 2

	// DefaultMaxCells bounds the number of cells of one dynamic
	// programming matrix.
	DefaultMaxCells = 1 << 24
)

var (
	// ErrInvalidParams is returned for scoring parameters that cannot be used.
	ErrInvalidParams = errors.New("invalid alignment parameters")

	// ErrWindowTooLarge is returned when an extension window exceeds
	// the configured matrix size bound.
	ErrWindowTooLarge = errors.New("alignment window too large")
)

// Params holds the scoring constants and resource bounds of an alignment.
type Params struct {
	Match, Mismatch, GapOpen, GapExtend int

	// MaxCells bounds (len(s)+1)*(len(t)+1) for each extension.
	MaxCells int

	// ParallelExtensions runs the upstream and downstream extensions
	// concurrently. The result does not depend on this setting.
	ParallelExtensions bool
}

// DefaultParams returns match=2, mismatch=3, gap-open=5, gap-extend=2.
func DefaultParams() Params {
	return Params{
		Match:     DefaultMatch,
		Mismatch:  DefaultMismatch,
		GapOpen:   DefaultGapOpen,
		GapExtend: DefaultGapExtend,
		MaxCells:  DefaultMaxCells,
	}
}

// Validate checks that all costs are non-negative, that opening a gap
// costs at least as much as extending one, and that the matrix bound
// is positive and fits in an int32.
func (p Params) Validate() error {
	switch {
	case p.Match < 0:
		return fmt.Errorf("%w: negative match reward %v", ErrInvalidParams, p.Match)
	case p.Mismatch < 0:
		return fmt.Errorf("%w: negative mismatch penalty %v", ErrInvalidParams, p.Mismatch)
	case p.GapOpen < 0:
		return fmt.Errorf("%w: negative gap-open penalty %v", ErrInvalidParams, p.GapOpen)
	case p.GapExtend < 0:
		return fmt.Errorf("%w: negative gap-extend penalty %v", ErrInvalidParams, p.GapExtend)
	case p.GapOpen < p.GapExtend:
		return fmt.Errorf("%w: gap-open penalty %v below gap-extend penalty %v", ErrInvalidParams, p.GapOpen, p.GapExtend)
	case p.MaxCells <= 0 || p.MaxCells > math.MaxInt32:
		return fmt.Errorf("%w: matrix bound %v out of range", ErrInvalidParams, p.MaxCells)
	}
	return nil
}

func (p Params) maxCost() int64 {
	m := p.Match
	for _, c := range [...]int{p.Mismatch, p.GapOpen, p.GapExtend} {
		if c > m {
			m = c
		}
	}
	return int64(m)
}

// checkSize rejects windows whose matrices exceed MaxCells, or whose
// scores could come close to NegativeInfinity.
func (p Params) checkSize(sl, tl int) error {
	cells := int64(sl+1) * int64(tl+1)
	if cells > int64(p.MaxCells) {
		return fmt.Errorf("%w: %vx%v matrix exceeds %v cells", ErrWindowTooLarge, sl+1, tl+1, p.MaxCells)
	}
	if int64(sl+tl+1)*p.maxCost() >= -NegativeInfinity/2 {
		return fmt.Errorf("%w: scores for a %vx%v window would overflow", ErrWindowTooLarge, sl+1, tl+1)
	}
	return nil
}
