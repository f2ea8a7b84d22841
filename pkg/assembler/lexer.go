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
	"strings"
	"unicode"

	"github.com/lassandro/gomips/pkg/encoding"
)

// Parses a memory operand of the form offset(base), e.g. -24($t5) or 0(10)
func ParseMemoryOperand(value string) (offset int64, base uint32, ok bool) {
	open := strings.IndexByte(value, '(')

	if open <= 0 || !strings.HasSuffix(value, ")") {
		return 0, 0, false
	}

	offset, err := encoding.DecodeInt(value[:open], MEMORY_DIGITS)

	if err != nil {
		return 0, 0, false
	}

	base, ok = LookupRegister(value[open+1 : len(value)-1])

	if !ok {
		return 0, 0, false
	}

	return offset, base, true
}

func isOperand(value string) bool {
	if IsRegisterName(value) {
		return true
	}

	_, err := encoding.DecodeInt(value, OPERAND_DIGITS)

	return err == nil
}

// Classifies one whitespace-delimited word
func Classify(word string, position Cursor) (Token, error) {
	if IsMnemonic(word) {
		return Token{TOKEN_MNEMONIC, position, word}, nil
	}

	if value := strings.TrimSuffix(word, ","); isOperand(value) {
		return Token{TOKEN_OPERAND, position, value}, nil
	}

	if _, _, ok := ParseMemoryOperand(word); ok {
		return Token{TOKEN_MEMORY, position, word}, nil
	}

	return Token{}, &UnexpectedTokenError{position, word}
}

// Splits a comment-free line into words and classifies each of them,
// stopping at the first word that has no valid shape
func Lex(line string, lineNo int) ([]Token, error) {
	var tokens = make([]Token, 0, 4)
	var start = -1

	flush := func(end int) error {
		word := line[start:end]

		token, err := Classify(word, Cursor{
			Line:   lineNo,
			Column: start + 1,
			Size:   len(word),
		})

		if err != nil {
			return err
		}

		tokens = append(tokens, token)
		start = -1

		return nil
	}

	for column, char := range line {
		if unicode.IsSpace(char) {
			if start >= 0 {
				if err := flush(column); err != nil {
					return nil, err
				}
			}

			continue
		}

		if start < 0 {
			start = column
		}
	}

	if start >= 0 {
		if err := flush(len(line)); err != nil {
			return nil, err
		}
	}

	return tokens, nil
}
