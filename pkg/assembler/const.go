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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_MNEMONIC
	TOKEN_OPERAND
	TOKEN_MEMORY
)

const (
	// Operand slots
	SLOT_REGISTER SlotType = iota
	SLOT_SHAMT
	SLOT_SIGNED16
	SLOT_UNSIGNED16
	SLOT_MEMORY
	SLOT_JUMP26
)

const (
	FORMAT_INVALID FormatType = iota

	// Register format
	FORMAT_R3
	FORMAT_R2
	FORMAT_R1
	FORMAT_MOVEFROM
	FORMAT_SHIFT
	FORMAT_NOARGS

	// Immediate format
	FORMAT_IMMEDIATE
	FORMAT_BRANCH
	FORMAT_MEMORY
	FORMAT_LOADUPPER

	// Jump format
	FORMAT_JUMP
)

const (
	FIELD_OPCODE    = 6
	FIELD_REGISTER  = 5
	FIELD_SHAMT     = 5
	FIELD_FUNCT     = 6
	FIELD_IMMEDIATE = 16
	FIELD_ADDRESS   = 26
)

const (
	// Lexical digit limits
	OPERAND_DIGITS = 10
	MEMORY_DIGITS  = 5
	REGISTER_COUNT = 32
)
