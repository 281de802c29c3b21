package cpu

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/tern/trit"
)

// Registers is the register file: the program counter, and up to 27
// general purpose registers selected by a 3 trit index.
//
// Register r0 is hardwired to zero. Writes to it are accepted and dropped.
type Registers struct {
	pc  trit.Word
	gpr map[trit.RegIndex]trit.Word
}

// ReadPc returns the program counter.
func (regs *Registers) ReadPc() trit.Word {
	return regs.pc
}

// WritePc replaces the program counter.
func (regs *Registers) WritePc(value trit.Word) {
	regs.pc = value
}

// Read returns a register. Unwritten registers, and r0, read as zero.
func (regs *Registers) Read(index trit.RegIndex) (value trit.Word) {
	if index.IsZero() {
		return
	}
	return regs.gpr[index]
}

// Write replaces a register. Writes to r0 have no effect.
func (regs *Registers) Write(index trit.RegIndex, value trit.Word) {
	if index.IsZero() {
		return
	}
	if regs.gpr == nil {
		regs.gpr = make(map[trit.RegIndex]trit.Word, 26)
	}
	regs.gpr[index] = value
}

// Reset zeros the program counter and all registers.
func (regs *Registers) Reset() {
	regs.pc = trit.Word{}
	clear(regs.gpr)
}

// All iterates over written registers in register number order.
func (regs *Registers) All() iter.Seq2[trit.RegIndex, trit.Word] {
	return func(yield func(trit.RegIndex, trit.Word) bool) {
		keys := slices.SortedFunc(maps.Keys(regs.gpr), func(a, b trit.RegIndex) int {
			return cmp.Compare(a.Int64(), b.Int64())
		})
		for _, key := range keys {
			if !yield(key, regs.gpr[key]) {
				return
			}
		}
	}
}
