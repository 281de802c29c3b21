package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tern/trit"
)

var _cpu_defines = map[string]string{
	"WORD_MAX": fmt.Sprintf("%d", trit.WORD_MAX),
	"WORD_MIN": fmt.Sprintf("%d", trit.WORD_MIN),
	"IMM_MAX":  fmt.Sprintf("%d", IMM_MAX),
	"IMM_MIN":  fmt.Sprintf("%d", IMM_MIN),
	"REG_MAX":  fmt.Sprintf("%d", trit.REG_MAX),
	"REG_MIN":  fmt.Sprintf("%d", trit.REG_MIN),
}

// Cpu is the simulation context for the single cycle ternary processor.
// The Cpu owns its register file, address space and arithmetic unit.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers    // Register file and program counter.
	Memory    AddressSpace // Memory mapped address space.
	Alu       Alu          // Arithmetic unit.

	Instruction Instruction    // Instruction decoded by the last cycle.
	Signals     ControlSignals // Control signals of the last cycle.
	Immediate   int64          // Immediate of the last cycle.

	Ticks int // Cycles since reset.
}

// NewCpu creates a new CPU with empty registers and memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Instruction: Nop{},
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, program counter and address space.
// - Clears the arithmetic unit and last decoded instruction.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Memory.Reset()
	cpu.Alu.Reset()
	cpu.Instruction = Nop{}
	cpu.Signals = ControlSignals{}
	cpu.Immediate = 0
	cpu.Ticks = 0
}

// Pc returns the program counter value.
func (cpu *Cpu) Pc() int64 {
	return cpu.Registers.ReadPc().Int64()
}

// SetPc sets the program counter, wrapping to the word width.
func (cpu *Cpu) SetPc(pc int64) {
	cpu.Registers.WritePc(trit.WordFromInt64(pc))
}

// Fetch returns the word at the program counter.
func (cpu *Cpu) Fetch() trit.Word {
	return cpu.Memory.Read(cpu.Registers.ReadPc())
}

// decode latches the instruction, control signals and immediate.
func (cpu *Cpu) decode(word trit.Word) {
	cpu.Instruction = DecodeWord(word)
	cpu.Signals, cpu.Immediate = Decode(cpu.Instruction)
}

// Cycle performs one complete fetch, decode and execute step.
func (cpu *Cpu) Cycle() {
	word := cpu.Fetch()
	cpu.decode(word)

	if cpu.Verbose {
		log.Printf("%d: %v", cpu.Pc(), cpu.Instruction)
	}

	cpu.execute()
	cpu.Ticks++
}

// execute runs the latched instruction, then moves the program counter.
//
// Arithmetic on the program counter and immediates is done in int64 and
// reduced back to a word, so it wraps exactly like field construction.
func (cpu *Cpu) execute() {
	signals := cpu.Signals
	rd, rs1, rs2 := Operands(cpu.Instruction)

	a := cpu.Registers.Read(rs1)
	b := cpu.Registers.Read(rs2)

	// Mux: second operand is Rs2 or the immediate.
	input := b
	if signals.AluSrc {
		input = trit.WordFromInt64(cpu.Immediate)
	}

	cpu.Alu.Reset()
	cpu.Alu.Set(a, input, signals.AluOp)
	cpu.Alu.Execute()
	result := cpu.Alu.Result

	loaded := result
	if signals.MemWrite {
		cpu.Memory.Write(result, b)
	}
	if signals.MemRead {
		loaded = cpu.Memory.Read(result)
	}

	pc := cpu.Pc()

	if signals.RegWrite {
		value := result
		switch {
		case signals.MemToReg:
			value = loaded
		case signals.Jump:
			value = trit.WordFromInt64(pc + 1)
		}
		cpu.Registers.Write(rd, value)
	}

	next := pc + 1
	switch {
	case signals.Jump:
		next = pc + cpu.Immediate
	case signals.Branch && cpu.Alu.Zero == trit.Positive:
		next = pc + cpu.Immediate
	}
	cpu.SetPc(next)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	pc := cpu.Registers.ReadPc()
	text += fmt.Sprintf("% 5s: %v %d\n", "pc", pc, pc.Int64())
	text += fmt.Sprintf("% 5s: %v\n", "zero", cpu.Alu.Zero)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)
	for reg, val := range cpu.Registers.All() {
		text += fmt.Sprintf("% 5s: %v %d\n", regName(reg), val, val.Int64())
	}

	return
}
