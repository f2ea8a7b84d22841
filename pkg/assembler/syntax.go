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
	"github.com/lassandro/gomips/pkg/encoding"
)

type bounds struct {
	Min int64
	Max int64 // exclusive
}

var slotBounds = map[SlotType]bounds{
	SLOT_SHAMT:      {0, 1 << FIELD_SHAMT},
	SLOT_SIGNED16:   {-(1 << (FIELD_IMMEDIATE - 1)), 1 << (FIELD_IMMEDIATE - 1)},
	SLOT_UNSIGNED16: {0, 1 << FIELD_IMMEDIATE},
	SLOT_JUMP26:     {0, 1 << FIELD_ADDRESS},
}

func operandValue(token *Token) (int64, bool) {
	if token.Type != TOKEN_OPERAND {
		return 0, false
	}

	value, err := encoding.DecodeInt(token.Value, OPERAND_DIGITS)

	return value, err == nil
}

func checkSlot(slot SlotType, token *Token) error {
	switch slot {
	case SLOT_REGISTER:
		if token.Type == TOKEN_OPERAND {
			if _, ok := LookupRegister(token.Value); ok {
				return nil
			}
		}

		return &NotARegisterError{token.Position, token.Value}

	case SLOT_MEMORY:
		if token.Type != TOKEN_MEMORY {
			return &NotAMemoryAddressError{token.Position, token.Value}
		}

		// Five digits can still overflow the signed 16-bit offset field
		offset, _, _ := ParseMemoryOperand(token.Value)
		limit := slotBounds[SLOT_SIGNED16]

		if offset < limit.Min || offset >= limit.Max {
			return &BadImmediateError{token.Position, token.Value, true}
		}

		return nil
	}

	limit := slotBounds[slot]

	if value, ok := operandValue(token); ok {
		if value >= limit.Min && value < limit.Max {
			return nil
		}
	}

	switch slot {
	case SLOT_SHAMT:
		return &BadShamtError{token.Position, token.Value}
	case SLOT_SIGNED16:
		return &BadImmediateError{token.Position, token.Value, true}
	case SLOT_UNSIGNED16:
		return &BadImmediateError{token.Position, token.Value, false}
	case SLOT_JUMP26:
		return &BadOffsetError{token.Position, token.Value}
	}

	return nil
}

// Checks a lexed line against the operand rules of its mnemonic's format.
// Arity is checked first, then each operand in written order.
func Validate(tokens []Token) (Instruction, error) {
	if len(tokens) == 0 {
		return Instruction{}, &UnrecognizedInstructionError{}
	}

	keyword := &tokens[0]

	if keyword.Type != TOKEN_MNEMONIC {
		return Instruction{}, &UnrecognizedInstructionError{
			keyword.Position, keyword.Value,
		}
	}

	def, ok := LookupInstruction(keyword.Value)

	if !ok {
		return Instruction{}, &UnrecognizedInstructionError{
			keyword.Position, keyword.Value,
		}
	}

	slots, ok := FormatSlots(def.Format)

	if !ok {
		return Instruction{}, &InternalInconsistencyError{def.Mnemonic, def.Format}
	}

	operands := tokens[1:]

	if count := len(operands); count < len(slots) {
		return Instruction{}, &TooFewArgumentsError{
			keyword.Position, len(slots), count,
		}
	} else if count > len(slots) {
		return Instruction{}, &TooManyArgumentsError{
			keyword.Position, len(slots), count,
		}
	}

	for i, slot := range slots {
		if err := checkSlot(slot, &operands[i]); err != nil {
			return Instruction{}, err
		}
	}

	return Instruction{def, keyword.Position, operands}, nil
}
