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

package cmd

import (
	"bytes"
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/alignfix/align"
	"github.com/exascience/alignfix/fasta"
)

func writeTestFile(t *testing.T, dir, name, contents string) string {
	filename := filepath.Join(dir, name)
	if err := ioutil.WriteFile(filename, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadRequest(t *testing.T) {
	dir := t.TempDir()
	opts := alignOptions{
		referenceFile: writeTestFile(t, dir, "ref.fasta", ">chrA\nTTTT\n>chrB\nGGGGGGACGTTAGCGGGG\n"),
		queryFile:     writeTestFile(t, dir, "query.fasta", ">read1\nacgttagc\n"),
		contig:        "chrB",
		seedPosition:  6,
		seedLength:    4,
		window:        0,
		params:        align.DefaultParams(),
	}
	name, req, err := loadRequest(&opts)
	if err != nil {
		t.Fatal(err)
	}
	if name != "read1" || req.Query != "ACGTTAGC" || req.Reference != "_ACGTT" || req.SeedOffset != 1 {
		t.Errorf("loadRequest failed: %v %+v", name, req)
	}

	opts.contig = "chrC"
	if _, _, err := loadRequest(&opts); !errors.Is(err, errContigNotFound) {
		t.Errorf("missing contig failed: %v", err)
	}

	opts.contig = ""
	opts.seedPosition = 1
	if _, _, err := loadRequest(&opts); !errors.Is(err, align.ErrInvalidSeed) {
		t.Errorf("seed outside first contig failed: %v", err)
	}
	if opts.contig != "chrA" {
		t.Errorf("default contig failed: %v", opts.contig)
	}
}

func TestLoadRequestElfasta(t *testing.T) {
	dir := t.TempDir()
	reference := filepath.Join(dir, "ref"+fasta.ElfastaExt)
	fasta.ToElfasta([]fasta.Record{{Name: "chrB", Seq: []byte("GGGGGGACGTTAGCGGGG")}}, reference)
	opts := alignOptions{
		referenceFile: reference,
		queryFile:     writeTestFile(t, dir, "query.fasta", ">read1\nACGTTAGC\n"),
		contig:        "chrB",
		seedPosition:  6,
		seedLength:    4,
		window:        2,
		params:        align.DefaultParams(),
	}
	_, req, err := loadRequest(&opts)
	if err != nil {
		t.Fatal(err)
	}
	if req.Reference != "_GGACGTTAG" || req.SeedOffset != 3 {
		t.Errorf("elfasta loadRequest failed: %+v", req)
	}
}

func TestLoadRequestInvalidQuery(t *testing.T) {
	dir := t.TempDir()
	opts := alignOptions{
		referenceFile: writeTestFile(t, dir, "ref.fasta", ">chrB\nGGGGGGACGTTAGCGGGG\n"),
		queryFile:     writeTestFile(t, dir, "query.fasta", ">read1\nACGT*AGC\n"),
		seedPosition:  6,
		seedLength:    4,
	}
	if _, _, err := loadRequest(&opts); err == nil || !strings.Contains(err.Error(), "invalid base") {
		t.Errorf("invalid query failed: %v", err)
	}
}

func TestWriteResult(t *testing.T) {
	opts := alignOptions{contig: "chrB", seedPosition: 6}
	result := align.Result{
		Score:              11,
		QueryAlignment:     "ACGTTACGT-ACGT",
		ReferenceAlignment: "ACGTTACGTTACGT",
		EndOffset:          9,
	}
	var buf bytes.Buffer
	if err := writeResult(&buf, "read1", &opts, result); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "#alignfix\t") || !strings.HasPrefix(lines[1], "#query\t") {
		t.Fatalf("writeResult header failed: %q", buf.String())
	}
	expected := "read1\tchrB\t6\t11\t0\t9\t0\t9M1D4M\tACGTTACGT-ACGT\tACGTTACGTTACGT"
	if lines[2] != expected {
		t.Errorf("writeResult record failed: got %q, expected %q", lines[2], expected)
	}
}
