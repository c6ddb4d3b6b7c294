package encoder

import (
	"fmt"
)

// abiNames are the calling-convention names of the integer registers,
// indexed by register number. s0 is also known as fp.
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

var registers = make(map[string]uint8, 65)

func init() {
	for i, name := range abiNames {
		registers[name] = uint8(i)
		registers[fmt.Sprintf("x%d", i)] = uint8(i)
	}
	registers["fp"] = 8
}

// RegisterIndex returns the register number for the given numeric
// ("x5") or ABI ("t0") register name.
func RegisterIndex(name string) (uint8, bool) {
	idx, ok := registers[name]
	return idx, ok
}

// RegisterName returns the ABI name of the given register number.
func RegisterName(idx uint8) string {
	if int(idx) >= len(abiNames) {
		return fmt.Sprintf("x%d", idx)
	}
	return abiNames[idx]
}
