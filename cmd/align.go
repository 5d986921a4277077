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
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/exascience/alignfix/align"
	"github.com/exascience/alignfix/fasta"
	"github.com/exascience/alignfix/internal"
	"github.com/exascience/alignfix/utils"
)

// AlignHelp is the help string for this command.
const AlignHelp = "align parameters:\n" +
	"alignfix align reference-file query-file\n" +
	"--seed-position nr\n" +
	"--seed-length nr\n" +
	"[--contig name]\n" +
	"[--window nr]\n" +
	"[--match nr]\n" +
	"[--mismatch nr]\n" +
	"[--gap-open nr]\n" +
	"[--gap-extend nr]\n" +
	"[--max-cells nr]\n" +
	"[--parallel-extensions]\n" +
	"[--output file]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// DefaultWindow is the default number of reference bases kept on
// either side of the seed.
const DefaultWindow = 150

var errContigNotFound = errors.New("contig not found")

type alignOptions struct {
	referenceFile, queryFile, contig, output string
	seedPosition, seedLength, window         int
	params                                   align.Params
}

// loadRequest reads the query and cuts the reference window around the
// seed. The window is copied, so mapped references can be closed
// before aligning.
func loadRequest(opts *alignOptions) (queryName string, req align.Request, err error) {
	queries := fasta.ParseFastaRecords(opts.queryFile, true, false)
	if len(queries) > 1 {
		log.Printf("Warning: Query file %v contains %v records; only %v is aligned.\n", opts.queryFile, len(queries), queries[0].Name)
	}
	query := queries[0]
	if i, ok := fasta.CheckAlphabet(query.Seq); !ok {
		return "", req, fmt.Errorf("query %v has an invalid base %q at position %v", query.Name, query.Seq[i], i)
	}

	var contig []byte
	if filepath.Ext(opts.referenceFile) == fasta.ElfastaExt {
		var mapped *fasta.MappedFasta
		mapped, err = fasta.OpenElfasta(opts.referenceFile)
		if err != nil {
			return "", req, err
		}
		defer func() {
			if nerr := mapped.Close(); err == nil {
				err = nerr
			}
		}()
		seq, ok := mapped.Seq(opts.contig)
		if !ok {
			return "", req, fmt.Errorf("%w: %v in %v", errContigNotFound, opts.contig, opts.referenceFile)
		}
		contig = seq
	} else {
		records := fasta.ParseFastaRecords(opts.referenceFile, true, true)
		if opts.contig == "" {
			opts.contig = records[0].Name
		}
		for _, record := range records {
			if record.Name == opts.contig {
				contig = record.Seq
				break
			}
		}
		if contig == nil {
			return "", req, fmt.Errorf("%w: %v in %v", errContigNotFound, opts.contig, opts.referenceFile)
		}
	}

	req, err = align.NewRequest(contig, string(query.Seq), opts.seedPosition, opts.seedLength, opts.window)
	return query.Name, req, err
}

// writeResult writes a two-line header and one tab-separated record.
func writeResult(w io.Writer, queryName string, opts *alignOptions, result align.Result) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "#%v\t%v\t%v\n", utils.ProgramName, utils.ProgramVersion, RunID)
	fmt.Fprintln(out, "#query\tcontig\tseed-position\tscore\tstart-offset\tend-offset\tquery-start\tcigar\tquery-alignment\treference-alignment")
	cigar := align.Cigar(result.QueryAlignment, result.ReferenceAlignment)
	fmt.Fprintf(out, "%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\n",
		queryName, opts.contig, opts.seedPosition,
		result.Score, result.StartOffset, result.EndOffset, result.QueryStart,
		align.CigarString(cigar), result.QueryAlignment, result.ReferenceAlignment)
	return out.Flush()
}

// Align implements the alignfix align command.
func Align() error {
	var (
		opts                   alignOptions
		profile, logPath       string
		nrOfThreads            int
		timed, parallelExtends bool
	)
	opts.params = align.DefaultParams()

	var flags flag.FlagSet

	flags.StringVar(&opts.contig, "contig", "", "reference contig that holds the seed (default: first contig)")
	flags.IntVar(&opts.seedPosition, "seed-position", -1, "0-based seed position in the contig")
	flags.IntVar(&opts.seedLength, "seed-length", 0, "seed length")
	flags.IntVar(&opts.window, "window", DefaultWindow, "reference bases kept on either side of the seed")
	flags.IntVar(&opts.params.Match, "match", align.DefaultMatch, "match reward")
	flags.IntVar(&opts.params.Mismatch, "mismatch", align.DefaultMismatch, "mismatch penalty")
	flags.IntVar(&opts.params.GapOpen, "gap-open", align.DefaultGapOpen, "gap-opening penalty")
	flags.IntVar(&opts.params.GapExtend, "gap-extend", align.DefaultGapExtend, "gap-extension penalty")
	flags.IntVar(&opts.params.MaxCells, "max-cells", align.DefaultMaxCells, "maximum cells of one alignment matrix")
	flags.BoolVar(&parallelExtends, "parallel-extensions", false, "align upstream and downstream windows concurrently")
	flags.StringVar(&opts.output, "output", "", "output file (default: stdout)")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, AlignHelp)

	opts.referenceFile = getFilename(os.Args[2], AlignHelp)
	opts.queryFile = getFilename(os.Args[3], AlignHelp)
	opts.params.ParallelExtensions = parallelExtends

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", opts.referenceFile) || !checkExist("", opts.queryFile) {
		sanityChecksFailed = true
	}
	if opts.output != "" && !checkCreate("--output", opts.output) {
		sanityChecksFailed = true
	}
	if filepath.Ext(opts.referenceFile) == fasta.ElfastaExt && opts.contig == "" {
		sanityChecksFailed = true
		log.Println("Error: The --contig option is required for .elfasta references.")
	}
	if opts.seedPosition < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid or missing seed-position: ", opts.seedPosition)
	}
	if opts.seedLength <= 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid or missing seed-length: ", opts.seedLength)
	}
	if opts.window < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid window: ", opts.window)
	}
	if err := opts.params.Validate(); err != nil {
		sanityChecksFailed = true
		log.Println("Error:", err)
	}
	if nrOfThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, AlignHelp)
		os.Exit(1)
	}

	fullReference, err := internal.FullPathname(opts.referenceFile)
	if err != nil {
		return err
	}
	fullQuery, err := internal.FullPathname(opts.queryFile)
	if err != nil {
		return err
	}
	opts.referenceFile, opts.queryFile = fullReference, fullQuery

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " align ", opts.referenceFile, " ", opts.queryFile)
	if opts.contig != "" {
		fmt.Fprint(&command, " --contig ", opts.contig)
	}
	fmt.Fprint(&command, " --seed-position ", opts.seedPosition)
	fmt.Fprint(&command, " --seed-length ", opts.seedLength)
	fmt.Fprint(&command, " --window ", opts.window)
	fmt.Fprint(&command, " --match ", opts.params.Match)
	fmt.Fprint(&command, " --mismatch ", opts.params.Mismatch)
	fmt.Fprint(&command, " --gap-open ", opts.params.GapOpen)
	fmt.Fprint(&command, " --gap-extend ", opts.params.GapExtend)
	fmt.Fprint(&command, " --max-cells ", opts.params.MaxCells)
	if parallelExtends {
		fmt.Fprint(&command, " --parallel-extensions")
	}
	if opts.output != "" {
		fmt.Fprint(&command, " --output ", opts.output)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	var (
		queryName string
		req       align.Request
		result    align.Result
	)

	phase := int64(1)
	err = timedRun(timed, profile, "Loading reference window and query.", phase, func() (err error) {
		queryName, req, err = loadRequest(&opts)
		return err
	})
	if err != nil {
		return err
	}

	phase++
	err = timedRun(timed, profile, "Extending seed.", phase, func() (err error) {
		result, err = align.Align(req, opts.params)
		return err
	})
	if err != nil {
		return err
	}
	if !result.SeedFound() {
		log.Printf("Warning: Seed not found in query %v, upstream extension skipped.\n", queryName)
	}

	phase++
	return timedRun(timed, profile, "Write to file.", phase, func() (err error) {
		if opts.output == "" {
			return writeResult(os.Stdout, queryName, &opts, result)
		}
		output := internal.FileCreate(opts.output)
		defer func() {
			if nerr := output.Close(); err == nil {
				err = nerr
			}
		}()
		return writeResult(output, queryName, &opts, result)
	})
}
