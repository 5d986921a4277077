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

import (
	"bytes"
	"compress/gzip"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const testFasta = ">chr1 first contig\nACGTNacgt\nrykm\n\n>chr2\nGGGG\n>read1\nttagc\n"

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(testFasta), false, false)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Record{
		{"chr1", []byte("ACGTNacgtrykm")},
		{"chr2", []byte("GGGG")},
		{"read1", []byte("ttagc")},
	}
	if len(records) != len(expected) {
		t.Fatalf("ReadRecords failed: got %v records", len(records))
	}
	for i, record := range records {
		if record.Name != expected[i].Name || !bytes.Equal(record.Seq, expected[i].Seq) {
			t.Errorf("ReadRecords %v failed: got %v %s", i, record.Name, record.Seq)
		}
	}
}

func TestReadRecordsNormalization(t *testing.T) {
	tests := []struct {
		toUpper, toN bool
		expected     string
	}{
		{true, false, "ACGTNACGTRYKM"},
		{false, true, "ACGTNacgtNNNN"},
		{true, true, "ACGTNACGTNNNN"},
	}
	for i, test := range tests {
		records, err := ReadRecords(strings.NewReader(testFasta), test.toUpper, test.toN)
		if err != nil {
			t.Fatal(err)
		}
		if string(records[0].Seq) != test.expected {
			t.Errorf("normalization %v failed: got %s", i, records[0].Seq)
		}
	}
}

func TestReadRecordsGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(testFasta)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	records, err := ReadRecords(&buf, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || string(records[2].Seq) != "TTAGC" {
		t.Errorf("gzip ReadRecords failed: %v", records)
	}
}

func TestReadRecordsErrors(t *testing.T) {
	for i, input := range []string{"", "\n\n", "ACGT\n>chr1\nACGT\n"} {
		if _, err := ReadRecords(strings.NewReader(input), false, false); !errors.Is(err, ErrInvalidFasta) {
			t.Errorf("invalid fasta %v failed: %v", i, err)
		}
	}
}

func TestElfasta(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(testFasta), true, true)
	if err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "test"+ElfastaExt)
	ToElfasta(records, filename)
	mapped, err := OpenElfasta(filename)
	if err != nil {
		t.Fatal(err)
	}
	for _, record := range records {
		seq, ok := mapped.Seq(record.Name)
		if !ok || !bytes.Equal(seq, record.Seq) {
			t.Errorf("elfasta contig %v failed: got %s", record.Name, seq)
		}
	}
	if _, ok := mapped.Seq("chrX"); ok {
		t.Error("elfasta missing contig failed")
	}
	if err := mapped.Close(); err != nil {
		t.Error(err)
	}
}

func TestOpenElfastaInvalid(t *testing.T) {
	if _, err := parseElfastaHeader([]byte(">chr1\nACGT\n")); !errors.Is(err, ErrInvalidFasta) {
		t.Errorf("magic check failed: %v", err)
	}
	truncated := append(append([]byte{}, ElfastaMagic...), "chr1\t"...)
	if _, err := parseElfastaHeader(truncated); !errors.Is(err, ErrInvalidFasta) {
		t.Errorf("truncation check failed: %v", err)
	}
}

func TestCheckAlphabet(t *testing.T) {
	if i, ok := CheckAlphabet([]byte("ACGTNacgtnRYKMSWBDHVU")); !ok || i != -1 {
		t.Error("CheckAlphabet valid failed")
	}
	if i, ok := CheckAlphabet([]byte("ACGT_ACGT")); ok || i != 4 {
		t.Errorf("CheckAlphabet invalid failed: %v", i)
	}
	if _, ok := CheckAlphabet(nil); !ok {
		t.Error("CheckAlphabet empty failed")
	}
}

func TestToN(t *testing.T) {
	if ToN('a') != 'a' || ToN('r') != 'N' || ToN('N') != 'N' || ToN('-') != '-' {
		t.Error("ToN failed")
	}
	if ToUpperAndN('a') != 'A' || ToUpperAndN('y') != 'N' || ToUpperAndN('T') != 'T' {
		t.Error("ToUpperAndN failed")
	}
}
