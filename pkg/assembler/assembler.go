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

package assembler

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

const commentDelimiter = "#"

type Options struct {
	// Number of lines encoded at once by AssembleConcurrent
	Jobs int

	// Stop at the first failing line instead of processing the whole input
	FailFast bool
}

// Receives line results in source order
type Sink interface {
	Emit(result LineResult) error
}

type sourceLine struct {
	Number int
	Text   string
}

func StripComment(line string) string {
	if i := strings.Index(line, commentDelimiter); i >= 0 {
		return line[:i]
	}

	return line
}

// Lexes, validates and encodes a single comment-free line
func AssembleLine(line string, lineNo int) (Result, error) {
	tokens, err := Lex(line, lineNo)

	if err != nil {
		return Result{}, err
	}

	inst, err := Validate(tokens)

	if err != nil {
		return Result{}, err
	}

	return Encode(inst)
}

func assembleSourceLine(line sourceLine) LineResult {
	result, err := AssembleLine(StripComment(line.Text), line.Number)

	if err == nil {
		slog.Debug("Assembled",
			"line", line.Number,
			"source", strings.TrimSpace(StripComment(line.Text)),
			"word", result.Word,
			"bytes", result.Bytes,
		)
	}

	return LineResult{
		Line:   line.Number,
		Source: line.Text,
		Result: result,
		Err:    err,
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(StripComment(line)) == ""
}

// Reads every non-blank line. Line numbers count physical lines from 1.
func readSource(input io.Reader) ([]sourceLine, error) {
	var lines []sourceLine
	var scanner = bufio.NewScanner(input)

	for number := 1; scanner.Scan(); number++ {
		if text := scanner.Text(); !isBlank(text) {
			lines = append(lines, sourceLine{number, text})
		}
	}

	return lines, scanner.Err()
}

// Assembles every line of input in order. Each non-blank line yields one
// LineResult; failing lines are also collected in errs and never stop the
// lines after them unless opts.FailFast is set.
func Assemble(input io.Reader, opts Options) (results []LineResult, errs []error) {
	var scanner = bufio.NewScanner(input)

	results = make([]LineResult, 0)
	errs = make([]error, 0)

	for number := 1; scanner.Scan(); number++ {
		text := scanner.Text()

		if isBlank(text) {
			continue
		}

		result := assembleSourceLine(sourceLine{number, text})
		results = append(results, result)

		if result.Err != nil {
			errs = append(errs, result.Err)

			if opts.FailFast {
				return
			}
		}
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return
}

// Assembles input with up to opts.Jobs lines in flight and hands every
// result to sink in source order. Line failures are delivered to the sink
// as data; the returned error is reserved for read, sink and context
// failures.
func AssembleConcurrent(
	ctx context.Context, input io.Reader, opts Options, sink Sink,
) error {
	lines, err := readSource(input)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]LineResult, len(lines))
	done := make([]chan struct{}, len(lines))

	for i := range done {
		done[i] = make(chan struct{})
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(opts.Jobs, 1))

	produced := make(chan struct{})

	go func() {
		defer close(produced)

		for i := range lines {
			if groupCtx.Err() != nil {
				return
			}

			i := i
			group.Go(func() error {
				defer close(done[i])

				if err := groupCtx.Err(); err != nil {
					return err
				}

				results[i] = assembleSourceLine(lines[i])
				return nil
			})
		}
	}()

	var emitErr error

emit:
	for i := range lines {
		select {
		case <-done[i]:
		case <-ctx.Done():
			emitErr = ctx.Err()
			break emit
		}

		// A worker may have bailed out on cancellation
		if err := ctx.Err(); err != nil {
			emitErr = err
			break
		}

		if err := sink.Emit(results[i]); err != nil {
			emitErr = err
			break
		}

		if opts.FailFast && results[i].Err != nil {
			break
		}
	}

	cancel()
	<-produced
	group.Wait()

	return emitErr
}
