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
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/exascience/alignfix/internal"
	"github.com/exascience/alignfix/utils"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// ProgramMessage is the first line printed when the alignfix binary is
// called.
var ProgramMessage string

// RunID identifies this invocation in log files and output headers.
var RunID = uuid.New()

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

func getFilename(s, help string) string {
	switch s {
	case "-h", "--h", "-help", "--help":
		fmt.Fprint(os.Stderr, help)
		os.Exit(0)
	default:
		if strings.HasPrefix(s, "-") {
			log.Println("Filename(s) in command line missing.")
			fmt.Fprint(os.Stderr, help)
			os.Exit(1)
		}
	}
	return s
}

func parseFlags(flags flag.FlagSet, requiredArgs int, help string) {
	if len(os.Args) < requiredArgs {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	flags.SetOutput(ioutil.Discard)
	if err := flags.Parse(os.Args[requiredArgs:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
	if flags.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Cannot parse remaining parameters:", flags.Args())
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}

func logCheckFile(parameter, format string, v ...interface{}) {
	if parameter != "" {
		log.Printf(format+" for command line parameter %v.\n", append(v, parameter)...)
	} else {
		log.Printf(format+".\n", v...)
	}
}

// checkFilename rejects empty names and names that are really flags.
func checkFilename(parameter, filename string) bool {
	switch {
	case filename == "":
		logCheckFile(parameter, "Error: Missing filename")
		return false
	case filename[0] == '-':
		logCheckFile(parameter, "Error: Missing filename before %v", filename)
		return false
	}
	return true
}

// checkExist reports whether an input file can be read.
func checkExist(parameter, filename string) bool {
	if !checkFilename(parameter, filename) {
		return false
	}
	_, err := os.Stat(filename)
	switch {
	case err == nil:
		return true
	case os.IsNotExist(err):
		logCheckFile(parameter, "Error: File %v does not exist", filename)
	case os.IsPermission(err):
		logCheckFile(parameter, "Error: No permission to read file %v", filename)
	default:
		logCheckFile(parameter, "Error %v when trying to access file %v", err, filename)
	}
	return false
}

// checkCreate reports whether an output file can be written. Missing
// directories are created; an existing file is overwritten later.
func checkCreate(parameter, filename string) bool {
	if !checkFilename(parameter, filename) {
		return false
	}
	if _, err := os.Stat(filename); err == nil {
		return true
	}
	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err == nil {
		err = ioutil.WriteFile(filename, nil, 0666)
	}
	if err != nil {
		if os.IsPermission(err) {
			logCheckFile(parameter, "Error: No permission to create file %v", filename)
		} else {
			logCheckFile(parameter, "Error %v when trying to create file %v", err, filename)
		}
		return false
	}
	_ = os.Remove(filename)
	return true
}

// logFilename names the log file of this run after its start time and
// run ID.
func logFilename(start time.Time) string {
	return fmt.Sprintf("%v-%v-%v.log", utils.ProgramName, start.Format("20060102-150405"), RunID)
}

// setLogOutput logs the run ID, and duplicates stderr into a log
// file under path when path is not empty.
func setLogOutput(path string) {
	if path != "" {
		fullPath := filepath.Join(path, utils.ProgramName, logFilename(time.Now()))
		internal.MkdirAll(filepath.Dir(fullPath), 0700)
		f := internal.FileCreate(fullPath)
		fmt.Fprintln(f, ProgramMessage)

		orgStderr, err := unix.Dup(2)
		if err != nil {
			log.Panic(err)
		}
		ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
		if err := unix.Dup2(int(f.Fd()), 2); err != nil {
			log.Panic(err)
		}

		log.SetOutput(io.MultiWriter(f, ferr))
		log.Println("Created log file at", fullPath)
		log.Println("Command line:", os.Args)
	}
	log.Println("Run ID:", RunID)
}

func timedRun(timed bool, profile, msg string, phase int64, f func() error) error {
	if profile != "" {
		filename := profile + strconv.FormatInt(phase, 10) + ".prof"
		file := internal.FileCreate(filename)
		defer internal.Close(file)
		if err := pprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	if timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			end := time.Now()
			log.Println("Elapsed time: ", end.Sub(start))
		}()
	}
	return f()
}
