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

package encoding

import (
	"errors"
	"math/bits"
	"strconv"
	"strings"
)

var (
	ErrEmptyInt    = errors.New("Empty integer string")
	ErrInvalidInt  = errors.New("Invalid integer string")
	ErrOversizeInt = errors.New("Integer string exceeds digit limit")
)

// Decodes a base-10 string in the formats: 123, -123. At most maxDigits
// digits are accepted, not counting the sign.
func DecodeInt(s string, maxDigits int) (int64, error) {
	negative := false

	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	if len(s) == 0 {
		return 0, ErrEmptyInt
	}

	if len(s) > maxDigits {
		return 0, ErrOversizeInt
	}

	var result int64

	for i := 0; i < len(s); i++ {
		c := s[i]

		if c < '0' || c > '9' {
			return 0, ErrInvalidInt
		}

		result = result*10 + int64(c-'0')
	}

	if negative {
		result = -result
	}

	return result, nil
}

// Truncates value to a bitcount-wide two's-complement field
func TwosComplement(value int64, bitcount uint) uint32 {
	return uint32(value) & (uint32(1)<<bitcount - 1)
}

// Interprets the low bitcount bits of value as a two's-complement integer
func SignExtend(value uint32, bitcount uint) int64 {
	value &= uint32(1)<<bitcount - 1

	if (value>>(bitcount-1))&0x1 == 1 {
		return int64(value) - int64(1)<<bitcount
	}

	return int64(value)
}

// Formats the low width bits of value, most significant bit first
func BitString(value uint32, width int) string {
	s := strconv.FormatUint(uint64(value)&(uint64(1)<<width-1), 2)

	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}

	return s
}

func SwapEndian(value uint32) uint32 {
	return bits.ReverseBytes32(value)
}

// Splits a word into four 8-bit groups in construction order (most
// significant byte first)
func ByteGroups(word uint32) [4]string {
	s := BitString(word, 32)

	return [4]string{s[0:8], s[8:16], s[16:24], s[24:32]}
}

// Splits a word into four 8-bit groups, least significant byte first
func LittleEndianGroups(word uint32) [4]string {
	return ByteGroups(SwapEndian(word))
}
