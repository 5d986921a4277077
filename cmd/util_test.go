// alignfix: seed-anchored affine-gap alignment of short reads.
// Copyright (c) 2017-2021 imec vzw.

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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogFilename(t *testing.T) {
	start := time.Date(2021, time.March, 4, 15, 6, 7, 0, time.UTC)
	name := logFilename(start)
	expected := "alignfix-20210304-150607-" + RunID.String() + ".log"
	if name != expected {
		t.Errorf("logFilename failed: got %v, expected %v", name, expected)
	}
	if strings.ContainsRune(name, filepath.Separator) {
		t.Errorf("logFilename contains a path separator: %v", name)
	}
}

func TestCheckExist(t *testing.T) {
	dir := t.TempDir()
	existing := writeTestFile(t, dir, "ref.fasta", ">chrA\nACGT\n")
	tests := []struct {
		filename string
		expected bool
	}{
		{existing, true},
		{filepath.Join(dir, "missing.fasta"), false},
		{"", false},
		{"--contig", false},
	}
	for _, test := range tests {
		if ok := checkExist("", test.filename); ok != test.expected {
			t.Errorf("checkExist %q failed: got %v, expected %v", test.filename, ok, test.expected)
		}
	}
}

func TestCheckCreate(t *testing.T) {
	dir := t.TempDir()
	existing := writeTestFile(t, dir, "out.tsv", "previous run\n")
	if !checkCreate("--output", existing) {
		t.Errorf("checkCreate on existing file %v failed", existing)
	}
	nested := filepath.Join(dir, "results", "out.tsv")
	if !checkCreate("--output", nested) {
		t.Errorf("checkCreate on nested file %v failed", nested)
	}
	if _, err := os.Stat(nested); !os.IsNotExist(err) {
		t.Errorf("checkCreate left %v behind: %v", nested, err)
	}
	if _, err := os.Stat(filepath.Dir(nested)); err != nil {
		t.Errorf("checkCreate did not create %v: %v", filepath.Dir(nested), err)
	}
	if checkCreate("--output", "-o") {
		t.Error("checkCreate accepted a flag as filename")
	}
}
