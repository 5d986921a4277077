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

	"github.com/exascience/pargo/parallel"
)

// ErrInvalidSeed is returned for seeds that do not fit in the reference.
var ErrInvalidSeed = errors.New("invalid seed")

// Request describes one seed extension.
type Request struct {
	// Reference is the pre-truncated reference window. Its first
	// character is a boundary character and never part of an
	// alignment.
	Reference string

	Query string

	// SeedOffset and SeedLength locate the seed in Reference.
	SeedOffset, SeedLength int

	// WindowR is the window length the caller used when truncating
	// Reference. Align only checks that it is not negative.
	WindowR int
}

// Validate checks that the seed lies within the reference.
func (req Request) Validate() error {
	switch {
	case req.SeedOffset < 0:
		return fmt.Errorf("%w: negative seed offset %v", ErrInvalidSeed, req.SeedOffset)
	case req.SeedLength <= 0:
		return fmt.Errorf("%w: non-positive seed length %v", ErrInvalidSeed, req.SeedLength)
	case req.SeedOffset+req.SeedLength > len(req.Reference):
		return fmt.Errorf("%w: seed [%v, %v) exceeds reference of length %v", ErrInvalidSeed, req.SeedOffset, req.SeedOffset+req.SeedLength, len(req.Reference))
	case req.WindowR < 0:
		return fmt.Errorf("%w: negative window length %v", ErrInvalidSeed, req.WindowR)
	}
	return nil
}

// Result is a stitched alignment.
type Result struct {
	// Score is the sum of the upstream and downstream extension
	// scores. The seed core does not contribute.
	Score int

	QueryAlignment, ReferenceAlignment string

	// StartOffset and EndOffset are the lengths of the upstream and
	// downstream parts of ReferenceAlignment. The seed core lies
	// between them.
	StartOffset, EndOffset int

	// QueryStart and QueryEnd delimit the seed in the query, or are
	// both -1 if it was not found.
	QueryStart, QueryEnd int
}

// SeedFound reports whether the seed occurred in the query.
func (result Result) SeedFound() bool {
	return result.QueryStart >= 0
}

// substring is s[from:to] with both bounds clipped to len(s).
func substring(s string, from, to int) string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	if to <= from {
		return ""
	}
	return s[from:to]
}

func reverseString(s string) string {
	b := []byte(s)
	reverseBytes(b)
	return string(b)
}

func dropFirst(s string) string {
	if s == "" {
		return s
	}
	return s[1:]
}

// upstream aligns the query before the seed against the reference
// between the boundary character and the seed, right to left.
// The first column of the result is dropped after reversing back.
func upstream(req Request, queryStart int, p Params) (Extension, error) {
	if queryStart < 0 {
		return Extension{}, nil
	}
	s := reverseString(req.Query[:queryStart])
	t := reverseString(substring(req.Reference, 1, req.SeedOffset))
	ext, err := extend(s, t, p)
	if err != nil {
		return Extension{}, err
	}
	ext.S = dropFirst(reverseString(ext.S))
	ext.T = dropFirst(reverseString(ext.T))
	return ext, nil
}

// downstream aligns the query after the seed against the reference
// after the seed, skipping the character right after the seed on both
// sides.
func downstream(req Request, queryEnd int, p Params) (Extension, error) {
	s := substring(req.Query, queryEnd+1, len(req.Query))
	t := substring(req.Reference, req.SeedOffset+req.SeedLength+1, len(req.Reference))
	return extend(s, t, p)
}

// Align extends the seed of req in both directions and stitches the
// two extensions around the seed core.
//
// A seed that does not occur in the query is not an error: the
// upstream extension is then empty, and the downstream extension
// covers the whole query. Seeds outside the reference are rejected
// with ErrInvalidSeed.
func Align(req Request, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	queryStart, queryEnd := LocateSeed(req.Query, req.Reference, req.SeedOffset, req.SeedLength)

	var (
		up, down       Extension
		upErr, downErr error
	)
	if p.ParallelExtensions {
		parallel.Do(
			func() { up, upErr = upstream(req, queryStart, p) },
			func() { down, downErr = downstream(req, queryEnd, p) },
		)
	} else {
		up, upErr = upstream(req, queryStart, p)
		down, downErr = downstream(req, queryEnd, p)
	}
	if upErr != nil {
		return Result{}, fmt.Errorf("upstream extension: %w", upErr)
	}
	if downErr != nil {
		return Result{}, fmt.Errorf("downstream extension: %w", downErr)
	}

	core := substring(req.Reference, req.SeedOffset, req.SeedOffset+req.SeedLength+1)

	return Result{
		Score:              up.Score + down.Score,
		QueryAlignment:     up.S + core + down.S,
		ReferenceAlignment: up.T + core + down.T,
		StartOffset:        len(up.T),
		EndOffset:          len(down.T),
		QueryStart:         queryStart,
		QueryEnd:           queryEnd,
	}, nil
}
