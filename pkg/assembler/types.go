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
	"fmt"
)

type TokenType uint
type SlotType uint
type FormatType uint

type Cursor struct {
	Line   int
	Column int
	Size   int
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

type Instruction struct {
	Definition Definition
	Position   Cursor
	Operands   []Token
}

// Result of encoding one instruction. Bytes holds the word's four 8-bit
// groups, least significant byte first.
type Result struct {
	Word  uint32
	Bytes [4]string
}

type LineResult struct {
	Line   int
	Source string
	Result Result
	Err    error
}

type TokenError interface {
	GetPosition() Cursor
}

type UnexpectedTokenError struct {
	Position Cursor
	Received string
}

func (err *UnexpectedTokenError) GetPosition() Cursor {
	return err.Position
}

func (err *UnexpectedTokenError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unexpected token while parsing: \"%s\"",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnrecognizedInstructionError struct {
	Position Cursor
	Received string
}

func (err *UnrecognizedInstructionError) GetPosition() Cursor {
	return err.Position
}

func (err *UnrecognizedInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: \"%s\" is not a recognizable instruction",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type NotARegisterError struct {
	Position Cursor
	Received string
}

func (err *NotARegisterError) GetPosition() Cursor {
	return err.Position
}

func (err *NotARegisterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: \"%s\" is not a register number or id",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type BadShamtError struct {
	Position Cursor
	Received string
}

func (err *BadShamtError) GetPosition() Cursor {
	return err.Position
}

func (err *BadShamtError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: \"%s\" is not a shamt value or does not fit in 5 bits",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type BadImmediateError struct {
	Position Cursor
	Received string
	Signed   bool
}

func (err *BadImmediateError) GetPosition() Cursor {
	return err.Position
}

func (err *BadImmediateError) Error() string {
	signedness := "unsigned"

	if err.Signed {
		signedness = "signed"
	}

	return fmt.Sprintf(
		"%02d:%02d: \"%s\" is not an immediate value or does not fit in 16 bits (%s)",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		signedness,
	)
}

type NotAMemoryAddressError struct {
	Position Cursor
	Received string
}

func (err *NotAMemoryAddressError) GetPosition() Cursor {
	return err.Position
}

func (err *NotAMemoryAddressError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: \"%s\" is not a memory address",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type BadOffsetError struct {
	Position Cursor
	Received string
}

func (err *BadOffsetError) GetPosition() Cursor {
	return err.Position
}

func (err *BadOffsetError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: \"%s\" is not an offset value or does not fit in 26 bits",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type TooFewArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *TooFewArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *TooFewArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Too few arguments\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type TooManyArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *TooManyArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *TooManyArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Too many arguments\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

// Raised by the encoder for a validated instruction whose format has no
// field layout. This is a defect in the instruction tables, never a user
// error.
type InternalInconsistencyError struct {
	Mnemonic string
	Format   FormatType
}

func (err *InternalInconsistencyError) Error() string {
	return fmt.Sprintf(
		"Internal inconsistency: no field layout for '%s' (format %d)",
		err.Mnemonic,
		err.Format,
	)
}
