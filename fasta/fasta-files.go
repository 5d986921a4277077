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
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/exascience/alignfix/internal"

	"golang.org/x/sys/unix"
)

// Record is one named sequence of a FASTA file.
type Record struct {
	Name string
	Seq  []byte
}

func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	j := i + 1
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	if i >= len(b) {
		return ""
	}
	return string(b[i:j])
}

// isGzip checks only the initial byte of the input.
func isGzip(buf *bufio.Reader) (bool, error) {
	b, err := buf.ReadByte()
	if err != nil {
		return false, err
	}
	if err := buf.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

func handleGzip(buf *bufio.Reader) (io.Reader, error) {
	if ok, err := isGzip(buf); err != nil {
		if err == io.EOF {
			return buf, nil
		}
		return nil, err
	} else if ok {
		return gzip.NewReader(buf)
	}
	return buf, nil
}

// ErrInvalidFasta is returned for malformed FASTA input.
var ErrInvalidFasta = errors.New("invalid fasta")

// ReadRecords parses FASTA records from r in file order. Plain and
// gzip-compressed input are both accepted.
//
// If toUpper is true, the contents are converted to upper case.
// If toN is true, ambiguity codes are normalized.
func ReadRecords(r io.Reader, toUpper, toN bool) (records []Record, err error) {
	input, err := handleGzip(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)

	var current *Record
	for scanner.Scan() {
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		if b[0] == '>' {
			records = append(records, Record{Name: contigFromHeader(b)})
			current = &records[len(records)-1]
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("%w: missing first header", ErrInvalidFasta)
		}
		for _, c := range b {
			switch {
			case toUpper && toN:
				c = ToUpperAndN(c)
			case toUpper:
				c = toUpperTable[c]
			case toN:
				c = ToN(c)
			}
			current.Seq = append(current.Seq, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidFasta)
	}
	return records, nil
}

// ParseFastaRecords sequentially parses a FASTA file, keeping the
// records in file order.
func ParseFastaRecords(filename string, toUpper, toN bool) []Record {
	f := internal.FileOpen(filename)
	defer internal.Close(f)
	records, err := ReadRecords(f, toUpper, toN)
	if err != nil {
		log.Panicf("%v in fasta file %v", err, filename)
	}
	return records
}

// ElfastaMagic is the magic byte sequence that every .elfasta file starts with.
var ElfastaMagic = []byte{0x31, 0xFA, 0x57, 0xA1} // 31FA57A1 => ELFASTA1

// ElfastaExt is the file extension of mmappable reference files.
const ElfastaExt = ".elfasta"

type offsetTableEntry struct {
	contig string
	offset int
}

// ToElfasta stores the given records into an mmappable .elfasta file:
// the magic bytes, a header of contig names each followed by a tab and
// two fixed-size varints for offset and length, a newline, and then
// the raw sequences.
func ToElfasta(records []Record, filename string) {
	file := internal.FileCreate(filename)
	defer internal.Close(file)
	offset := internal.Write(file, ElfastaMagic)
	offsetTable := make([]offsetTableEntry, 0, len(records))
	for _, record := range records {
		offset += internal.WriteString(file, record.Name)
		offset += internal.WriteString(file, "\t")
		offsetTable = append(offsetTable, offsetTableEntry{contig: record.Name, offset: offset})
		offset += 2 * binary.MaxVarintLen64
		if _, err := file.Seek(int64(offset), io.SeekStart); err != nil {
			log.Panic(err)
		}
	}
	offset += internal.WriteString(file, "\n")
	seqOffsets := make([]int, len(records))
	for i, record := range records {
		seqOffsets[i] = offset
		offset += internal.Write(file, record.Seq)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, offset, unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		log.Panic(err)
	}
	defer func() {
		if err := unix.Munmap(data); err != nil {
			log.Panic(err)
		}
	}()
	for i, entry := range offsetTable {
		binary.PutVarint(data[entry.offset:entry.offset+binary.MaxVarintLen64], int64(seqOffsets[i]))
		binary.PutVarint(data[entry.offset+binary.MaxVarintLen64:entry.offset+2*binary.MaxVarintLen64], int64(len(records[i].Seq)))
	}
}

// MappedFasta represents the contents of an .elfasta file.
type MappedFasta struct {
	fasta map[string][]byte
	data  []byte
	file  *os.File
}

func parseElfastaHeader(data []byte) (map[string][]byte, error) {
	if len(data) < len(ElfastaMagic) {
		return nil, fmt.Errorf("%w: file too short", ErrInvalidFasta)
	}
	for i, b := range ElfastaMagic {
		if data[i] != b {
			return nil, fmt.Errorf("%w: invalid magic byte sequence", ErrInvalidFasta)
		}
	}
	fasta := make(map[string][]byte)
	index := len(ElfastaMagic)
	for index < len(data) && data[index] != '\n' {
		start := index
		for ; index < len(data) && data[index] != '\t'; index++ {
		}
		if index+1+2*binary.MaxVarintLen64 > len(data) {
			return nil, fmt.Errorf("%w: truncated header", ErrInvalidFasta)
		}
		contig := string(data[start:index])
		index++
		offset, n := binary.Varint(data[index : index+binary.MaxVarintLen64])
		if n <= 0 {
			return nil, fmt.Errorf("%w: bad offset for contig %v", ErrInvalidFasta, contig)
		}
		size, n := binary.Varint(data[index+binary.MaxVarintLen64 : index+2*binary.MaxVarintLen64])
		if n <= 0 {
			return nil, fmt.Errorf("%w: bad size for contig %v", ErrInvalidFasta, contig)
		}
		if offset < 0 || size < 0 || offset+size > int64(len(data)) {
			return nil, fmt.Errorf("%w: contig %v out of range", ErrInvalidFasta, contig)
		}
		fasta[contig] = data[int(offset):int(offset+size)]
		index += 2 * binary.MaxVarintLen64
	}
	return fasta, nil
}

// OpenElfasta maps an .elfasta file into memory.
func OpenElfasta(filename string) (*MappedFasta, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	fasta, err := parseElfastaHeader(data)
	if err != nil {
		_ = unix.Munmap(data)
		_ = file.Close()
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return &MappedFasta{fasta: fasta, data: data, file: file}, nil
}

// Close unmaps and closes the .elfasta file. Sequences returned by
// Seq must not be used afterwards.
func (fasta *MappedFasta) Close() error {
	err := unix.Munmap(fasta.data)
	fasta.data = nil
	if nerr := fasta.file.Close(); err == nil {
		err = nerr
	}
	fasta.file = nil
	fasta.fasta = nil
	return err
}

// Seq fetches a sequence for the given contig
// from the .elfasta file.
func (fasta *MappedFasta) Seq(contig string) ([]byte, bool) {
	seq, ok := fasta.fasta[contig]
	return seq, ok
}
