// Package encoder translates single lines of RV32I assembly into the
// binary text form of their 32-bit machine code.
//
// Each line is handled on its own: there is no symbol table, so branch
// targets must already be given as byte offsets.
package encoder

import (
	"fmt"
	"strings"
)

// Instruction is a parsed source line, with every register resolved to its
// number and the immediate (if any) parsed to an integer.
type Instruction struct {
	Op  Operation
	Rd  uint8
	Rs1 uint8
	Rs2 uint8
	Imm int64
}

// EncodeInstruction encodes a single source line as a string of exactly
// 32 '0' and '1' characters, most significant bit first.
//
// A line with no instruction in it, because it is blank or contains only
// a comment, produces an empty string and no error. Any other problem is
// reported as an *EncodeError.
func EncodeInstruction(line string) (string, error) {
	inst, err := Parse(line)
	if err != nil {
		return "", err
	}
	if inst == nil {
		return "", nil
	}
	return inst.Bits(), nil
}

// Parse decodes the mnemonic and operands of a single source line.
//
// Returns nil with no error if the line has no instruction in it.
func Parse(line string) (*Instruction, error) {
	mnemonic, operands := Normalize(line)
	if mnemonic == "" {
		return nil, nil
	}

	op, ok := LookupOperation(mnemonic)
	if !ok {
		return nil, &EncodeError{Kind: UnknownMnemonic, Line: line, Token: mnemonic}
	}

	p := &parser{line: line, op: op, operands: operands}
	inst := &Instruction{Op: op}
	switch op.Format {
	case FormatR:
		p.wantOperands(3)
		inst.Rd = p.register(0)
		inst.Rs1 = p.register(1)
		inst.Rs2 = p.register(2)
	case FormatI:
		// The second operand decides which form we have: loads (and jalr)
		// use a memory reference, the others a plain register followed
		// by the immediate.
		if len(operands) > 1 && isMemRef(operands[1]) {
			p.wantOperands(2)
			inst.Rd = p.register(0)
			inst.Imm, inst.Rs1 = p.memRef(1)
		} else {
			p.wantOperands(3)
			inst.Rd = p.register(0)
			inst.Rs1 = p.register(1)
			inst.Imm = p.immediate(2)
		}
	case FormatS:
		p.wantOperands(2)
		inst.Rs2 = p.register(0)
		inst.Imm, inst.Rs1 = p.memRef(1)
	case FormatSB:
		p.wantOperands(3)
		inst.Rs1 = p.register(0)
		inst.Rs2 = p.register(1)
		inst.Imm = p.immediate(2)
	default:
		// Should never happen, because every operation in the table has
		// one of the formats above.
		panic(fmt.Sprintf("operation %q has invalid format %s", op.Name, op.Format))
	}
	if p.err != nil {
		return nil, p.err
	}
	return inst, nil
}

// Fields returns the value of each field of the instruction's layout, in
// the same order as Layout returns for its format.
func (inst *Instruction) Fields() []uint64 {
	op := inst.Op
	switch op.Format {
	case FormatR:
		return []uint64{
			uint64(op.Funct7),
			uint64(inst.Rs2),
			uint64(inst.Rs1),
			uint64(op.Funct3),
			uint64(inst.Rd),
			uint64(op.Opcode),
		}
	case FormatI:
		return []uint64{
			bitRange(inst.Imm, 11, 0),
			uint64(inst.Rs1),
			uint64(op.Funct3),
			uint64(inst.Rd),
			uint64(op.Opcode),
		}
	case FormatS:
		return []uint64{
			bitRange(inst.Imm, 11, 5),
			uint64(inst.Rs2),
			uint64(inst.Rs1),
			uint64(op.Funct3),
			bitRange(inst.Imm, 4, 0),
			uint64(op.Opcode),
		}
	case FormatSB:
		// Bit zero of a branch offset is always zero and so isn't
		// encoded at all; an odd offset just loses its low bit.
		return []uint64{
			bitRange(inst.Imm, 12, 12),
			bitRange(inst.Imm, 10, 5),
			uint64(inst.Rs2),
			uint64(inst.Rs1),
			uint64(op.Funct3),
			bitRange(inst.Imm, 4, 1),
			bitRange(inst.Imm, 11, 11),
			uint64(op.Opcode),
		}
	default:
		return nil
	}
}

// Bits renders the instruction as 32 binary digits, most significant
// first.
func (inst *Instruction) Bits() string {
	layout := layouts[inst.Op.Format]
	fields := inst.Fields()
	var b strings.Builder
	b.Grow(32)
	for i, field := range layout {
		b.WriteString(FormatBinary(int64(fields[i]), field.Width))
	}
	return b.String()
}

// String returns the instruction in canonical assembly syntax, using ABI
// register names.
func (inst *Instruction) String() string {
	op := inst.Op
	switch op.Format {
	case FormatR:
		return fmt.Sprintf("%s %s, %s, %s", op.Name, RegisterName(inst.Rd), RegisterName(inst.Rs1), RegisterName(inst.Rs2))
	case FormatI:
		if op.Opcode == opcodeOpImm {
			return fmt.Sprintf("%s %s, %s, %d", op.Name, RegisterName(inst.Rd), RegisterName(inst.Rs1), inst.Imm)
		}
		return fmt.Sprintf("%s %s, %d(%s)", op.Name, RegisterName(inst.Rd), inst.Imm, RegisterName(inst.Rs1))
	case FormatS:
		return fmt.Sprintf("%s %s, %d(%s)", op.Name, RegisterName(inst.Rs2), inst.Imm, RegisterName(inst.Rs1))
	case FormatSB:
		return fmt.Sprintf("%s %s, %s, %d", op.Name, RegisterName(inst.Rs1), RegisterName(inst.Rs2), inst.Imm)
	default:
		return op.Name
	}
}

// parser collects operands for one line, remembering only the first
// error it encounters so that the format-specific code in Parse can be
// written without checking after every operand.
type parser struct {
	line     string
	op       Operation
	operands []string
	err      error
}

func (p *parser) fail(kind ErrorKind, tok, reason string) {
	if p.err != nil {
		return
	}
	p.err = &EncodeError{Kind: kind, Line: p.line, Token: tok, Reason: reason}
}

func (p *parser) wantOperands(n int) {
	if len(p.operands) != n {
		p.fail(MalformedOperand, "", fmt.Sprintf("%s takes %d operands, but got %d", p.op.Name, n, len(p.operands)))
	}
}

func (p *parser) operand(i int) (string, bool) {
	if p.err != nil || i >= len(p.operands) {
		return "", false
	}
	return p.operands[i], true
}

func (p *parser) register(i int) uint8 {
	tok, ok := p.operand(i)
	if !ok {
		return 0
	}
	return p.registerName(tok)
}

func (p *parser) registerName(tok string) uint8 {
	idx, ok := RegisterIndex(tok)
	if !ok {
		p.fail(UnknownRegister, tok, "")
		return 0
	}
	return idx
}

func (p *parser) immediate(i int) int64 {
	tok, ok := p.operand(i)
	if !ok {
		return 0
	}
	v, ok := parseImmediate(tok)
	if !ok {
		p.fail(MalformedOperand, tok, "immediate must be a decimal integer")
		return 0
	}
	p.checkRange(tok, v)
	return v
}

func (p *parser) memRef(i int) (offset int64, base uint8) {
	tok, ok := p.operand(i)
	if !ok {
		return 0, 0
	}
	offset, baseName, ok := parseMemRef(tok)
	if !ok {
		p.fail(MalformedOperand, tok, "expected offset(base)")
		return 0, 0
	}
	base = p.registerName(baseName)
	p.checkRange(tok, offset)
	return offset, base
}

func (p *parser) checkRange(tok string, v int64) {
	width := immWidth[p.op.Format]
	if !fitsSigned(v, width) {
		lo, hi := signedRange(width)
		p.fail(MalformedOperand, tok, fmt.Sprintf("immediate %d out of range [%d, %d]", v, lo, hi))
	}
}
