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
	"sort"
)

type Definition struct {
	Mnemonic string
	Format   FormatType
	Opcode   uint32
	Funct    uint32
}

type instructionSet struct {
	definitions map[string]Definition
	registers   map[string]uint32
	slots       map[FormatType][]SlotType
}

var registerNames = [REGISTER_COUNT]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// Built once, never mutated afterwards.
var isa = newInstructionSet()

func newInstructionSet() *instructionSet {
	set := &instructionSet{
		definitions: make(map[string]Definition),
		registers:   make(map[string]uint32, REGISTER_COUNT),
		slots: map[FormatType][]SlotType{
			FORMAT_R3:        {SLOT_REGISTER, SLOT_REGISTER, SLOT_REGISTER},
			FORMAT_R2:        {SLOT_REGISTER, SLOT_REGISTER},
			FORMAT_R1:        {SLOT_REGISTER},
			FORMAT_MOVEFROM:  {SLOT_REGISTER},
			FORMAT_SHIFT:     {SLOT_REGISTER, SLOT_REGISTER, SLOT_SHAMT},
			FORMAT_NOARGS:    {},
			FORMAT_IMMEDIATE: {SLOT_REGISTER, SLOT_REGISTER, SLOT_SIGNED16},
			FORMAT_BRANCH:    {SLOT_REGISTER, SLOT_REGISTER, SLOT_SIGNED16},
			FORMAT_MEMORY:    {SLOT_REGISTER, SLOT_MEMORY},
			FORMAT_LOADUPPER: {SLOT_REGISTER, SLOT_UNSIGNED16},
			FORMAT_JUMP:      {SLOT_JUMP26},
		},
	}

	for i, name := range registerNames {
		set.registers[name] = uint32(i)
	}

	for _, def := range []Definition{
		// Register format, opcode 000000
		{"add", FORMAT_R3, 0b000000, 0b100000},
		{"and", FORMAT_R3, 0b000000, 0b100100},
		{"sub", FORMAT_R3, 0b000000, 0b100010},
		{"sllv", FORMAT_R3, 0b000000, 0b000100},
		{"slt", FORMAT_R3, 0b000000, 0b101010},
		{"srav", FORMAT_R3, 0b000000, 0b000111},
		{"div", FORMAT_R2, 0b000000, 0b011010},
		{"mult", FORMAT_R2, 0b000000, 0b011000},
		{"xchg", FORMAT_R2, 0b000000, 0b000101},
		{"jr", FORMAT_R1, 0b000000, 0b001000},
		{"mfhi", FORMAT_MOVEFROM, 0b000000, 0b010000},
		{"mflo", FORMAT_MOVEFROM, 0b000000, 0b010010},
		{"sll", FORMAT_SHIFT, 0b000000, 0b000000},
		{"sra", FORMAT_SHIFT, 0b000000, 0b000011},
		{"srl", FORMAT_SHIFT, 0b000000, 0b000010},
		{"break", FORMAT_NOARGS, 0b000000, 0b001101},
		{"rte", FORMAT_NOARGS, 0b000000, 0b010011},

		// Immediate format
		{"addi", FORMAT_IMMEDIATE, 0b001000, 0},
		{"addiu", FORMAT_IMMEDIATE, 0b001001, 0},
		{"slti", FORMAT_IMMEDIATE, 0b001010, 0},
		{"beq", FORMAT_BRANCH, 0b000100, 0},
		{"bne", FORMAT_BRANCH, 0b000101, 0},
		{"ble", FORMAT_BRANCH, 0b000110, 0},
		{"bgt", FORMAT_BRANCH, 0b000111, 0},
		{"sram", FORMAT_MEMORY, 0b000001, 0},
		{"lb", FORMAT_MEMORY, 0b100000, 0},
		{"lh", FORMAT_MEMORY, 0b100001, 0},
		{"lw", FORMAT_MEMORY, 0b100011, 0},
		{"sb", FORMAT_MEMORY, 0b101000, 0},
		{"sh", FORMAT_MEMORY, 0b101001, 0},
		{"sw", FORMAT_MEMORY, 0b101011, 0},
		{"lui", FORMAT_LOADUPPER, 0b001111, 0},

		// Jump format
		{"j", FORMAT_JUMP, 0b000010, 0},
		{"jal", FORMAT_JUMP, 0b000011, 0},
	} {
		set.definitions[def.Mnemonic] = def
	}

	return set
}

func LookupInstruction(mnemonic string) (Definition, bool) {
	def, ok := isa.definitions[mnemonic]
	return def, ok
}

// Returns the operand slots an instruction of the given format takes, in
// written order. The returned slice must not be modified.
func FormatSlots(format FormatType) ([]SlotType, bool) {
	slots, ok := isa.slots[format]
	return slots, ok
}

// Resolves a register reference written either as a decimal numeral (0-31)
// or as one of the canonical symbolic names
func LookupRegister(ref string) (uint32, bool) {
	if n := len(ref); n == 1 || n == 2 {
		var value uint32

		for i := 0; i < n; i++ {
			if ref[i] < '0' || ref[i] > '9' {
				return 0, false
			}

			value = value*10 + uint32(ref[i]-'0')
		}

		if value >= REGISTER_COUNT {
			return 0, false
		}

		return value, true
	}

	value, ok := isa.registers[ref]
	return value, ok
}

func RegisterName(id uint32) string {
	if id >= REGISTER_COUNT {
		return ""
	}

	return registerNames[id]
}

func IsRegisterName(ref string) bool {
	_, ok := isa.registers[ref]
	return ok
}

func IsMnemonic(word string) bool {
	_, ok := isa.definitions[word]
	return ok
}

// Sorted list of every recognized mnemonic
func Mnemonics() []string {
	result := make([]string, 0, len(isa.definitions))

	for mnemonic := range isa.definitions {
		result = append(result, mnemonic)
	}

	sort.Strings(result)

	return result
}
