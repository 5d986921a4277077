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

package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// FileOpen is os.Open with panics in place of errors
func FileOpen(name string) *os.File {
	f, err := os.Open(name)
	if err != nil {
		log.Panic(err)
	}
	return f
}

// FileCreate is os.Create with panics in place of errors
func FileCreate(name string) *os.File {
	f, err := os.Create(name)
	if err != nil {
		log.Panic(err)
	}
	return f
}

// Close is f.Close() with panics in place of errors
func Close(f io.Closer) {
	if err := f.Close(); err != nil {
		log.Panic(err)
	}
}

// MkdirAll is os.MkdirAll with panics in place of errors
func MkdirAll(path string, perm os.FileMode) {
	if err := os.MkdirAll(path, perm); err != nil {
		log.Panic(err)
	}
}

// Write is w.Write with panics in place of errors
func Write(w io.Writer, p []byte) int {
	n, err := w.Write(p)
	if err != nil {
		log.Panic(err)
	}
	return n
}

// WriteString is io.WriteString with panics in place of errors
func WriteString(w io.Writer, s string) int {
	n, err := io.WriteString(w, s)
	if err != nil {
		log.Panic(err)
	}
	return n
}

// FullPathname returns filename as an absolute path.
func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	wd, err := os.Getwd()
	return filepath.Join(wd, filename), err
}
