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

const (
	opcodeMask    = 1<<FIELD_OPCODE - 1
	registerMask  = 1<<FIELD_REGISTER - 1
	shamtMask     = 1<<FIELD_SHAMT - 1
	functMask     = 1<<FIELD_FUNCT - 1
	immediateMask = 1<<FIELD_IMMEDIATE - 1
	addressMask   = 1<<FIELD_ADDRESS - 1
)

// R    |opcode |rs   |rt   |rd   |shamt|funct |
// ---- [ 6     | 5   | 5   | 5   | 5   | 6    ]
func formR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return (opcode&opcodeMask)<<26 |
		(rs&registerMask)<<21 |
		(rt&registerMask)<<16 |
		(rd&registerMask)<<11 |
		(shamt&shamtMask)<<6 |
		(funct & functMask)
}

// I    |opcode |rs   |rt   |immediate        |
// ---- [ 6     | 5   | 5   | 16              ]
func formI(opcode, rs, rt, imm uint32) uint32 {
	return (opcode&opcodeMask)<<26 |
		(rs&registerMask)<<21 |
		(rt&registerMask)<<16 |
		(imm & immediateMask)
}

// J    |opcode |address                    |
// ---- [ 6     | 26                        ]
func formJ(opcode, addr uint32) uint32 {
	return (opcode&opcodeMask)<<26 | (addr & addressMask)
}

type operandReader struct {
	inst *Instruction
	ok   bool
}

func (r *operandReader) token(i int) *Token {
	if i >= len(r.inst.Operands) {
		r.ok = false
		return nil
	}

	return &r.inst.Operands[i]
}

func (r *operandReader) register(i int) uint32 {
	token := r.token(i)

	if token == nil {
		return 0
	}

	reg, ok := LookupRegister(token.Value)

	if !ok {
		r.ok = false
	}

	return reg
}

func (r *operandReader) literal(i int) int64 {
	token := r.token(i)

	if token == nil {
		return 0
	}

	value, ok := operandValue(token)

	if !ok {
		r.ok = false
	}

	return value
}

func (r *operandReader) memory(i int) (int64, uint32) {
	token := r.token(i)

	if token == nil {
		return 0, 0
	}

	offset, base, ok := ParseMemoryOperand(token.Value)

	if !ok {
		r.ok = false
	}

	return offset, base
}

// Encodes a validated instruction. Operands are read in written order
// (e.g. add rd, rs, rt) and placed into their format's fields.
func Encode(inst Instruction) (Result, error) {
	var word uint32

	def := inst.Definition
	r := operandReader{&inst, true}

	switch def.Format {
	case FORMAT_R3:
		word = formR(def.Opcode, r.register(1), r.register(2), r.register(0), 0, def.Funct)

	case FORMAT_R2:
		word = formR(0, r.register(0), r.register(1), 0, 0, def.Funct)

	case FORMAT_R1:
		word = formR(0, r.register(0), 0, 0, 0, def.Funct)

	case FORMAT_MOVEFROM:
		word = formR(0, 0, 0, r.register(0), 0, def.Funct)

	case FORMAT_SHIFT:
		shamt := uint32(r.literal(2))
		word = formR(0, 0, r.register(1), r.register(0), shamt, def.Funct)

	case FORMAT_NOARGS:
		word = formR(0, 0, 0, 0, 0, def.Funct)

	case FORMAT_IMMEDIATE:
		imm := encoding.TwosComplement(r.literal(2), FIELD_IMMEDIATE)
		word = formI(def.Opcode, r.register(1), r.register(0), imm)

	case FORMAT_BRANCH:
		offset := encoding.TwosComplement(r.literal(2), FIELD_IMMEDIATE)
		word = formI(def.Opcode, r.register(0), r.register(1), offset)

	case FORMAT_MEMORY:
		offset, base := r.memory(1)
		imm := encoding.TwosComplement(offset, FIELD_IMMEDIATE)
		word = formI(def.Opcode, base, r.register(0), imm)

	case FORMAT_LOADUPPER:
		imm := uint32(r.literal(1))
		word = formI(def.Opcode, 0, r.register(0), imm)

	case FORMAT_JUMP:
		addr := uint32(r.literal(0))
		word = formJ(def.Opcode, addr)

	default:
		return Result{}, &InternalInconsistencyError{def.Mnemonic, def.Format}
	}

	if !r.ok {
		return Result{}, &InternalInconsistencyError{def.Mnemonic, def.Format}
	}

	return Result{word, encoding.LittleEndianGroups(word)}, nil
}
