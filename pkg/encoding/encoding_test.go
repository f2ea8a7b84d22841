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

package encoding_test

import (
	"testing"

	"github.com/lassandro/gomips/pkg/encoding"
)

func TestDecodeInt(t *testing.T) {
	for _, test := range []struct {
		Input  string
		Digits int
		Output int64
	}{
		{"0", 10, 0},
		{"-0", 10, 0},
		{"42", 10, 42},
		{"-32768", 10, -32768},
		{"9999999999", 10, 9999999999},
		{"-99999", 5, -99999},
		{"007", 5, 7},
	} {
		have, err := encoding.DecodeInt(test.Input, test.Digits)

		if err != nil {
			t.Fatalf("%s: %s", test.Input, err)
		}

		if have != test.Output {
			t.Fatalf("Decode mismatch\nwant:%d\nhave:%d", test.Output, have)
		}
	}

	for _, test := range []struct {
		Input  string
		Digits int
		Error  error
	}{
		{"", 10, encoding.ErrEmptyInt},
		{"-", 10, encoding.ErrEmptyInt},
		{"12345678901", 10, encoding.ErrOversizeInt},
		{"123456", 5, encoding.ErrOversizeInt},
		{"+1", 10, encoding.ErrInvalidInt},
		{"1-", 10, encoding.ErrInvalidInt},
		{"0x10", 10, encoding.ErrInvalidInt},
		{"--1", 10, encoding.ErrInvalidInt},
	} {
		if _, err := encoding.DecodeInt(test.Input, test.Digits); err != test.Error {
			t.Fatalf("%q\nwant:%v\nhave:%v", test.Input, test.Error, err)
		}
	}
}

func TestTwosComplement(t *testing.T) {
	if have := encoding.TwosComplement(-1, 16); have != 0xFFFF {
		t.Fatalf("want:0xffff\nhave:%#x", have)
	}

	if have := encoding.TwosComplement(-32768, 16); have != 0x8000 {
		t.Fatalf("want:0x8000\nhave:%#x", have)
	}

	if have := encoding.TwosComplement(31, 5); have != 0x1F {
		t.Fatalf("want:0x1f\nhave:%#x", have)
	}

	for value := int64(-32768); value < 32768; value++ {
		field := encoding.TwosComplement(value, 16)

		if field != uint32(65536+value)&0xFFFF {
			t.Fatalf("%d encoded as %#x", value, field)
		}

		if have := encoding.SignExtend(field, 16); have != value {
			t.Fatalf("Round trip mismatch\nwant:%d\nhave:%d", value, have)
		}
	}
}

func TestBitString(t *testing.T) {
	if have := encoding.BitString(5, 8); have != "00000101" {
		t.Fatalf("want:00000101\nhave:%s", have)
	}

	if have := encoding.BitString(0x1FF, 8); have != "11111111" {
		t.Fatalf("want:11111111\nhave:%s", have)
	}
}

func TestGroups(t *testing.T) {
	const word = 0b00000001_00101010_01000000_00100000

	want := [4]string{"00000001", "00101010", "01000000", "00100000"}

	if have := encoding.ByteGroups(word); have != want {
		t.Fatalf("want:%v\nhave:%v", want, have)
	}

	want = [4]string{"00100000", "01000000", "00101010", "00000001"}

	if have := encoding.LittleEndianGroups(word); have != want {
		t.Fatalf("want:%v\nhave:%v", want, have)
	}
}
