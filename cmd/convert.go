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
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/exascience/alignfix/fasta"
	"github.com/exascience/alignfix/internal"
)

// FastaToElfastaHelp is the help string for this command.
const FastaToElfastaHelp = "fasta-to-elfasta parameters:\n" +
	"alignfix fasta-to-elfasta fasta-file elfasta-file\n" +
	"[--log-path path]\n"

// FastaToElfasta implements the alignfix fasta-to-elfasta command.
func FastaToElfasta() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 4, FastaToElfastaHelp)

	input := getFilename(os.Args[2], FastaToElfastaHelp)
	output := getFilename(os.Args[3], FastaToElfastaHelp)

	setLogOutput(logPath)

	if !checkExist("", input) || !checkCreate("", output) {
		fmt.Fprint(os.Stderr, FastaToElfastaHelp)
		os.Exit(1)
	}

	fullInput, err := internal.FullPathname(input)
	if err != nil {
		return err
	}
	fullOutput, err := internal.FullPathname(output)
	if err != nil {
		return err
	}

	log.Println("Executing command:\n", os.Args[0], "fasta-to-elfasta", fullInput, fullOutput)

	records := fasta.ParseFastaRecords(fullInput, true, true)
	log.Printf("Read %v contigs from %v.\n", len(records), fullInput)
	fasta.ToElfasta(records, fullOutput)
	return nil
}
