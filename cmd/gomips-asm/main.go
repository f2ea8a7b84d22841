// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/lassandro/gomips/pkg/assembler"
)

const sourceExt = ".asm"

var outvar string
var binaryvar bool
var listingvar bool
var jobsvar int
var failfastvar bool
var verbosevar bool

var colorize bool

var rootCmd = &cobra.Command{
	Use:   "gomips-asm [flags] [file" + sourceExt + "]",
	Short: "Assembles MIPS instructions into little-endian machine words",
	Long: `gomips-asm translates one MIPS instruction per line into a 32-bit machine
word, printed as four 8-bit groups with the least significant byte first.

Text from '#' to the end of a line is a comment. Branch and jump targets and
memory offsets must be written as resolved integers; labels are not
supported.

Every line is assembled even when earlier lines fail. Each failure is
reported with its line number and the command exits with status 1. When
writing to a file (-o), nothing is written if any line failed.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		status = gomips_asm(cmd, args)
		return nil
	},
}

var status int

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	colorize = term.IsTerminal(int(os.Stderr.Fd()))
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(
		&outvar, "out", "o", "",
		"Writes the assembled words to a file instead of standard output",
	)
	flags.BoolVar(
		&binaryvar, "binary", false,
		"Writes raw little-endian bytes instead of bit groups (requires -o)",
	)
	flags.BoolVar(
		&listingvar, "listing", false,
		"Prints a table of line numbers, source text and bit groups",
	)
	flags.IntVarP(
		&jobsvar, "jobs", "j", 1,
		"Number of lines assembled concurrently",
	)
	flags.BoolVar(
		&failfastvar, "fail-fast", false,
		"Stops at the first line that fails to assemble",
	)
	flags.BoolVarP(
		&verbosevar, "verbose", "v", false,
		"Traces every assembled line on standard error",
	)
}

func bold(s string) string {
	if !colorize {
		return s
	}

	return "\033[1m" + s + "\033[0m"
}

func red(s string) string {
	if !colorize {
		return s
	}

	return "\033[31m" + s + "\033[0m"
}

func openInput(args []string) (io.Reader, string, error) {
	if len(args) == 0 {
		if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			return os.Stdin, "<stdin>", nil
		}

		return nil, "", fmt.Errorf("missing input file")
	}

	filename := filepath.Base(args[0])

	if filepath.Ext(filename) != sourceExt {
		return nil, "", fmt.Errorf(
			"%s is not a valid %s assembly file", filename, sourceExt,
		)
	}

	file, err := os.Open(args[0])

	if err != nil {
		return nil, "", err
	}

	atexit.Register(func() { file.Close() })

	if stat, err := file.Stat(); err != nil {
		return nil, "", err
	} else if stat.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", filename)
	}

	return file, filename, nil
}

func report(result assembler.LineResult) {
	var inconsistency *assembler.InternalInconsistencyError

	if tokenErr, ok := result.Err.(assembler.TokenError); ok {
		cursor := tokenErr.GetPosition()

		underline := fmt.Sprintf(
			"%*s%s",
			max(cursor.Column, 1),
			"^",
			strings.Repeat("~", max(cursor.Size-1, 0)),
		)

		log.Printf("%s\n%s\n%s", result.Err, result.Source, red(underline))
	} else if errors.As(result.Err, &inconsistency) {
		log.Printf("internal error at line %d: %s", result.Line, result.Err)
	} else {
		log.Printf("%s at line %d", result.Err, result.Line)
	}
}

func gomips_asm(cmd *cobra.Command, args []string) int {
	if verbosevar {
		slog.SetDefault(slog.New(slog.NewTextHandler(
			os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug},
		)))
	}

	if binaryvar && outvar == "" {
		log.Println("--binary requires an output file (-o)")
		return 1
	}

	if listingvar && outvar != "" {
		log.Println("--listing cannot be combined with -o")
		return 1
	}

	input, filename, err := openInput(args)

	if err != nil {
		log.Println(err)
		log.Println(cmd.UseLine())
		return 1
	}

	log.SetPrefix(bold(filename+":") + " ")

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	var sink outputSink

	switch {
	case listingvar:
		sink = newListingSink(stdout)
	case outvar != "":
		sink = &fileSink{}
	default:
		sink = &textSink{out: stdout}
	}

	opts := assembler.Options{Jobs: jobsvar, FailFast: failfastvar}

	if err := assembler.AssembleConcurrent(
		context.Background(), input, opts, sink,
	); err != nil {
		log.Println(err)
		return 1
	}

	if err := sink.Close(); err != nil {
		log.Println(err)
		return 1
	}

	if sink.Failures() > 0 {
		log.Printf("%d line(s) failed to assemble", sink.Failures())
		return 1
	}

	if fs, ok := sink.(*fileSink); ok {
		if err := fs.WriteFile(outvar, binaryvar); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		atexit.Exit(1)
	}

	atexit.Exit(status)
}
