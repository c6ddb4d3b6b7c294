package encoder

import (
	"sort"
)

// Major opcodes for the base integer instructions we support.
const (
	opcodeLoad   uint8 = 0b0000011
	opcodeOpImm  uint8 = 0b0010011
	opcodeStore  uint8 = 0b0100011
	opcodeOp     uint8 = 0b0110011
	opcodeBranch uint8 = 0b1100011
	opcodeJalr   uint8 = 0b1100111
)

// Operation describes the fixed fields of one mnemonic.
type Operation struct {
	Name   string
	Format Format
	Opcode uint8
	Funct3 uint8

	// Funct7 is meaningful only for FormatR operations.
	Funct7 uint8
}

var operations = map[string]Operation{
	// Loads
	"lb":  {Name: "lb", Format: FormatI, Opcode: opcodeLoad, Funct3: 0b000},
	"lh":  {Name: "lh", Format: FormatI, Opcode: opcodeLoad, Funct3: 0b001},
	"lw":  {Name: "lw", Format: FormatI, Opcode: opcodeLoad, Funct3: 0b010},
	"lbu": {Name: "lbu", Format: FormatI, Opcode: opcodeLoad, Funct3: 0b100},
	"lhu": {Name: "lhu", Format: FormatI, Opcode: opcodeLoad, Funct3: 0b101},

	// Immediate arithmetic
	"addi":  {Name: "addi", Format: FormatI, Opcode: opcodeOpImm, Funct3: 0b000},
	"slti":  {Name: "slti", Format: FormatI, Opcode: opcodeOpImm, Funct3: 0b010},
	"sltiu": {Name: "sltiu", Format: FormatI, Opcode: opcodeOpImm, Funct3: 0b011},
	"xori":  {Name: "xori", Format: FormatI, Opcode: opcodeOpImm, Funct3: 0b100},
	"ori":   {Name: "ori", Format: FormatI, Opcode: opcodeOpImm, Funct3: 0b110},
	"andi":  {Name: "andi", Format: FormatI, Opcode: opcodeOpImm, Funct3: 0b111},

	"jalr": {Name: "jalr", Format: FormatI, Opcode: opcodeJalr, Funct3: 0b000},

	// Stores
	"sb": {Name: "sb", Format: FormatS, Opcode: opcodeStore, Funct3: 0b000},
	"sh": {Name: "sh", Format: FormatS, Opcode: opcodeStore, Funct3: 0b001},
	"sw": {Name: "sw", Format: FormatS, Opcode: opcodeStore, Funct3: 0b010},

	// Register-register
	"add":  {Name: "add", Format: FormatR, Opcode: opcodeOp, Funct3: 0b000, Funct7: 0b0000000},
	"sub":  {Name: "sub", Format: FormatR, Opcode: opcodeOp, Funct3: 0b000, Funct7: 0b0100000},
	"sll":  {Name: "sll", Format: FormatR, Opcode: opcodeOp, Funct3: 0b001, Funct7: 0b0000000},
	"slt":  {Name: "slt", Format: FormatR, Opcode: opcodeOp, Funct3: 0b010, Funct7: 0b0000000},
	"sltu": {Name: "sltu", Format: FormatR, Opcode: opcodeOp, Funct3: 0b011, Funct7: 0b0000000},
	"xor":  {Name: "xor", Format: FormatR, Opcode: opcodeOp, Funct3: 0b100, Funct7: 0b0000000},
	"srl":  {Name: "srl", Format: FormatR, Opcode: opcodeOp, Funct3: 0b101, Funct7: 0b0000000},
	"sra":  {Name: "sra", Format: FormatR, Opcode: opcodeOp, Funct3: 0b101, Funct7: 0b0100000},
	"or":   {Name: "or", Format: FormatR, Opcode: opcodeOp, Funct3: 0b110, Funct7: 0b0000000},
	"and":  {Name: "and", Format: FormatR, Opcode: opcodeOp, Funct3: 0b111, Funct7: 0b0000000},

	// Conditional branches
	"beq":  {Name: "beq", Format: FormatSB, Opcode: opcodeBranch, Funct3: 0b000},
	"bne":  {Name: "bne", Format: FormatSB, Opcode: opcodeBranch, Funct3: 0b001},
	"blt":  {Name: "blt", Format: FormatSB, Opcode: opcodeBranch, Funct3: 0b100},
	"bge":  {Name: "bge", Format: FormatSB, Opcode: opcodeBranch, Funct3: 0b101},
	"bltu": {Name: "bltu", Format: FormatSB, Opcode: opcodeBranch, Funct3: 0b110},
	"bgeu": {Name: "bgeu", Format: FormatSB, Opcode: opcodeBranch, Funct3: 0b111},
}

// LookupOperation returns the fixed fields for the given mnemonic.
func LookupOperation(mnemonic string) (Operation, bool) {
	op, ok := operations[mnemonic]
	return op, ok
}

// Classify returns the format class of the given mnemonic, or
// FormatInvalid if it is not a mnemonic we know.
func Classify(mnemonic string) Format {
	op, ok := operations[mnemonic]
	if !ok {
		return FormatInvalid
	}
	return op.Format
}

// Operations returns all of the supported operations, sorted by name.
func Operations() []Operation {
	ret := make([]Operation, 0, len(operations))
	for _, op := range operations {
		ret = append(ret, op)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Name < ret[j].Name
	})
	return ret
}
