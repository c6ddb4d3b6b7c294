package encoder

import (
	"fmt"
)

// Format is the structural class of an instruction's bit layout.
type Format uint8

const (
	FormatInvalid Format = 0
	FormatR       Format = 'R' // register-register
	FormatI       Format = 'I' // immediate arithmetic and loads
	FormatS       Format = 'S' // stores
	FormatSB      Format = 'B' // conditional branches
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatSB:
		return "SB"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Field is a contiguous run of bits in an encoded instruction word.
type Field struct {
	Name  string
	Width int
}

// layouts gives the fields of each format in the order they appear in the
// encoded word, most significant first. The widths of each layout always
// sum to 32.
//
// S and SB formats scatter their immediate around the register fields so
// that rs1, rs2 and rd stay at the same bit positions in every format.
var layouts = map[Format][]Field{
	FormatR: {
		{"funct7", 7},
		{"rs2", 5},
		{"rs1", 5},
		{"funct3", 3},
		{"rd", 5},
		{"opcode", 7},
	},
	FormatI: {
		{"imm[11:0]", 12},
		{"rs1", 5},
		{"funct3", 3},
		{"rd", 5},
		{"opcode", 7},
	},
	FormatS: {
		{"imm[11:5]", 7},
		{"rs2", 5},
		{"rs1", 5},
		{"funct3", 3},
		{"imm[4:0]", 5},
		{"opcode", 7},
	},
	FormatSB: {
		{"imm[12]", 1},
		{"imm[10:5]", 6},
		{"rs2", 5},
		{"rs1", 5},
		{"funct3", 3},
		{"imm[4:1]", 4},
		{"imm[11]", 1},
		{"opcode", 7},
	},
}

// immWidth is the number of immediate bits each format can carry. For SB
// this includes the always-zero low bit that isn't actually encoded.
var immWidth = map[Format]int{
	FormatI:  12,
	FormatS:  12,
	FormatSB: 13,
}

// Layout returns the fields of the given format, most significant first,
// or nil if the format is not valid. The result is a copy and may be
// modified freely.
func Layout(f Format) []Field {
	layout, ok := layouts[f]
	if !ok {
		return nil
	}
	ret := make([]Field, len(layout))
	copy(ret, layout)
	return ret
}
