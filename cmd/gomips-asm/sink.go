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
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lassandro/gomips/pkg/assembler"
)

type outputSink interface {
	assembler.Sink
	Close() error
	Failures() int
}

type failureCounter struct {
	failures int
}

func (fc *failureCounter) Failures() int {
	return fc.failures
}

// Reports a failed line, returning false if the line assembled
func (fc *failureCounter) check(result assembler.LineResult) bool {
	if result.Err == nil {
		return false
	}

	fc.failures++
	report(result)

	return true
}

func formatGroups(result assembler.Result) string {
	return strings.Join(result.Bytes[:], " ")
}

// Prints each word as it arrives
type textSink struct {
	failureCounter
	out *bufio.Writer
}

func (ts *textSink) Emit(result assembler.LineResult) error {
	if result.Err != nil {
		// Keep stdout and stderr interleaved in line order
		if err := ts.out.Flush(); err != nil {
			return err
		}

		ts.check(result)
		return nil
	}

	_, err := fmt.Fprintln(ts.out, formatGroups(result.Result))
	return err
}

func (ts *textSink) Close() error {
	return ts.out.Flush()
}

type listingSink struct {
	failureCounter
	out    *bufio.Writer
	writer table.Writer
}

func newListingSink(out *bufio.Writer) *listingSink {
	writer := table.NewWriter()
	writer.AppendHeader(table.Row{"Line", "Source", "Word", "Bytes"})

	return &listingSink{out: out, writer: writer}
}

func (ls *listingSink) Emit(result assembler.LineResult) error {
	source := strings.TrimSpace(assembler.StripComment(result.Source))

	if ls.check(result) {
		ls.writer.AppendRow(table.Row{result.Line, source, "", "error"})
		return nil
	}

	ls.writer.AppendRow(table.Row{
		result.Line,
		source,
		fmt.Sprintf("0x%08x", result.Result.Word),
		formatGroups(result.Result),
	})

	return nil
}

func (ls *listingSink) Close() error {
	if _, err := fmt.Fprintln(ls.out, ls.writer.Render()); err != nil {
		return err
	}

	return ls.out.Flush()
}

// Collects words for a single write once the whole input is known to be
// valid
type fileSink struct {
	failureCounter
	results []assembler.Result
}

func (fs *fileSink) Emit(result assembler.LineResult) error {
	if !fs.check(result) {
		fs.results = append(fs.results, result.Result)
	}

	return nil
}

func (fs *fileSink) Close() error {
	return nil
}

func (fs *fileSink) WriteFile(filename string, raw bool) error {
	buffer := new(bytes.Buffer)

	for _, result := range fs.results {
		if raw {
			if err := binary.Write(
				buffer, binary.LittleEndian, result.Word,
			); err != nil {
				return err
			}
		} else {
			buffer.WriteString(formatGroups(result) + "\n")
		}
	}

	return os.WriteFile(filename, buffer.Bytes(), 0666)
}
