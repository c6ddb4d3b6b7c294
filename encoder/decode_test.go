package encoder

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The decoder in this file is a reference implementation of the inverse
// of EncodeInstruction, built from the same operation table, so that we
// can check that encoding puts every field where the decoder expects it.
//
// Immediates are gathered by a sequence of mask-then-shift steps whose
// results are ORed together, since a consecutive run of bits in the
// encoded word can end up non-consecutive in the decoded value.

type decodeStep struct {
	Mask       uint32
	RightShift int
}

func (s decodeStep) apply(inst uint32) uint32 {
	switch {
	case s.RightShift < 0:
		return (inst & s.Mask) << uint(-s.RightShift)
	default:
		return (inst & s.Mask) >> uint(s.RightShift)
	}
}

func rangeMask(top, bottom uint) uint32 {
	return uint32((1 << (top + 1)) - (1 << bottom))
}

var immDecoding = map[Format][]decodeStep{
	FormatI: {
		{Mask: rangeMask(31, 20), RightShift: 20},
	},
	FormatS: {
		{Mask: rangeMask(31, 25), RightShift: 20},
		{Mask: rangeMask(11, 7), RightShift: 7},
	},
	FormatSB: {
		{Mask: rangeMask(31, 31), RightShift: 19},
		{Mask: rangeMask(7, 7), RightShift: -4},
		{Mask: rangeMask(30, 25), RightShift: 20},
		{Mask: rangeMask(11, 8), RightShift: 7},
	},
}

func signExtend(raw uint32, width int) int64 {
	v := int64(raw)
	if raw&(1<<uint(width-1)) != 0 {
		v -= int64(1) << uint(width)
	}
	return v
}

func decodeBits(bits string) (*Instruction, error) {
	if len(bits) != 32 {
		return nil, fmt.Errorf("instruction has %d bits", len(bits))
	}
	raw, err := strconv.ParseUint(bits, 2, 32)
	if err != nil {
		return nil, err
	}
	word := uint32(raw)

	opcode := uint8(word & rangeMask(6, 0))
	funct3 := uint8((word & rangeMask(14, 12)) >> 12)
	funct7 := uint8((word & rangeMask(31, 25)) >> 25)
	rd := uint8((word & rangeMask(11, 7)) >> 7)
	rs1 := uint8((word & rangeMask(19, 15)) >> 15)
	rs2 := uint8((word & rangeMask(24, 20)) >> 20)

	for _, op := range Operations() {
		if op.Opcode != opcode || op.Funct3 != funct3 {
			continue
		}
		if op.Format == FormatR && op.Funct7 != funct7 {
			continue
		}

		inst := &Instruction{Op: op}
		var immRaw uint32
		for _, step := range immDecoding[op.Format] {
			immRaw |= step.apply(word)
		}
		switch op.Format {
		case FormatR:
			inst.Rd, inst.Rs1, inst.Rs2 = rd, rs1, rs2
		case FormatI:
			inst.Rd, inst.Rs1 = rd, rs1
			inst.Imm = signExtend(immRaw, 12)
		case FormatS:
			inst.Rs1, inst.Rs2 = rs1, rs2
			inst.Imm = signExtend(immRaw, 12)
		case FormatSB:
			inst.Rs1, inst.Rs2 = rs1, rs2
			inst.Imm = signExtend(immRaw, 13)
		}
		return inst, nil
	}
	return nil, fmt.Errorf("no operation matches %s", bits)
}

// sampleLine returns a line using the given operation with operands that
// exercise the extremes of each field.
func sampleLine(op Operation) string {
	switch {
	case op.Format == FormatR:
		return fmt.Sprintf("%s t0, a1, s11", op.Name)
	case op.Format == FormatI && op.Opcode == opcodeOpImm:
		return fmt.Sprintf("%s a0, sp, -2048", op.Name)
	case op.Format == FormatI:
		return fmt.Sprintf("%s ra, 2047(s0)", op.Name)
	case op.Format == FormatS:
		return fmt.Sprintf("%s t6, -1(fp)", op.Name)
	case op.Format == FormatSB:
		return fmt.Sprintf("%s a7, zero, -4096", op.Name)
	default:
		panic(fmt.Sprintf("no sample for %s", op.Name))
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var lines []string
	for _, op := range Operations() {
		lines = append(lines, sampleLine(op))
	}
	lines = append(lines,
		"addi x31, x31, 2047",
		"lh x0, -1(x31)",
		"sw x1, 2047(x2)",
		"sh x1, -2048(x2)",
		"beq x1, x2, 4094",
		"bne x3, x4, -2",
		"blt x5, x6, 2048",
		"bltu x7, x8, 30",
	)

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			want, err := Parse(line)
			require.NoError(t, err)
			bits := want.Bits()
			got, err := decodeBits(bits)
			require.NoError(t, err, "decoding %s", bits)
			assert.Equal(t, want, got, "decoding %s", bits)
		})
	}
}

func TestDecodeFixedFields(t *testing.T) {
	// Decoding only the opcode, funct3 and funct7 fields must always lead
	// back to the mnemonic we started with.
	for _, op := range Operations() {
		bits, err := EncodeInstruction(sampleLine(op))
		require.NoError(t, err, op.Name)
		got, err := decodeBits(bits)
		require.NoError(t, err, "decoding %s", bits)
		assert.Equal(t, op.Name, got.Op.Name, "%s encoded as %s", op.Name, bits)
	}
}

func TestDecodeBranchDropsLowBit(t *testing.T) {
	inst, err := Parse("beq x1, x2, 7")
	require.NoError(t, err)
	got, err := decodeBits(inst.Bits())
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Imm)
}
