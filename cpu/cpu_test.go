package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tern/trit"
)

// load writes instructions to consecutive addresses from 0.
func load(cpu *Cpu, program ...Instruction) {
	for n, ins := range program {
		cpu.Memory.Write(tw(int64(n)), Encode(ins))
	}
}

func TestCpuArithmetic(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu,
		Addi{Rd: Reg(1), Rs1: Reg(0), Imm: 5},
		Addi{Rd: Reg(2), Rs1: Reg(0), Imm: 10},
		Add{Rd: Reg(3), Rs1: Reg(1), Rs2: Reg(2)},
	)

	cpu.Cycle()
	cpu.Cycle()
	cpu.Cycle()

	assert.Equal(int64(15), cpu.Registers.Read(Reg(3)).Int64())
	assert.Equal(int64(3), cpu.Pc())
	assert.Equal(3, cpu.Ticks)
}

func TestCpuStoreLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu,
		Addi{Rd: Reg(1), Rs1: Reg(0), Imm: 42},
		Sw{Rs1: Reg(0), Rs2: Reg(1), Imm: 100},
		Lw{Rd: Reg(2), Rs1: Reg(0), Imm: 100},
	)

	cpu.Cycle()
	cpu.Cycle()
	assert.Equal(int64(42), cpu.Memory.Read(tw(100)).Int64())
	assert.True(cpu.Registers.Read(Reg(2)).IsZero())

	cpu.Cycle()
	assert.Equal(int64(42), cpu.Registers.Read(Reg(2)).Int64())
	assert.Equal(int64(3), cpu.Pc())
}

func TestCpuStoreOffset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Write(Reg(4), tw(1000))
	cpu.Registers.Write(Reg(5), tw(-9))
	load(cpu,
		Sw{Rs1: Reg(4), Rs2: Reg(5), Imm: -1},
		Lw{Rd: Reg(6), Rs1: Reg(4), Imm: -1},
	)

	cpu.Cycle()
	assert.Equal(int64(-9), cpu.Memory.Read(tw(999)).Int64())
	// Stores write no register.
	assert.True(cpu.Registers.Read(Reg(0)).IsZero())

	cpu.Cycle()
	assert.Equal(int64(-9), cpu.Registers.Read(Reg(6)).Int64())
}

func TestCpuSub(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu,
		Addi{Rd: Reg(1), Imm: 5},
		Addi{Rd: Reg(2), Imm: 10},
		Sub{Rd: Reg(-3), Rs1: Reg(1), Rs2: Reg(2)},
	)

	for range 3 {
		cpu.Cycle()
	}

	assert.Equal(int64(-5), cpu.Registers.Read(Reg(-3)).Int64())
}

func TestCpuBranchTaken(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu,
		Addi{Rd: Reg(1), Imm: 7},
		Addi{Rd: Reg(2), Imm: 7},
		Beq{Rs1: Reg(1), Rs2: Reg(2), Imm: 5},
	)

	for range 3 {
		cpu.Cycle()
	}

	assert.Equal(trit.Positive, cpu.Alu.Zero)
	assert.Equal(int64(7), cpu.Pc())
}

func TestCpuBranchNotTaken(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu,
		Addi{Rd: Reg(1), Imm: 7},
		Addi{Rd: Reg(2), Imm: 8},
		Beq{Rs1: Reg(1), Rs2: Reg(2), Imm: 5},
	)

	for range 3 {
		cpu.Cycle()
	}

	assert.Equal(trit.Zero, cpu.Alu.Zero)
	assert.Equal(int64(3), cpu.Pc())
}

func TestCpuBranchBackward(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetPc(20)
	cpu.Memory.Write(tw(20), Encode(Beq{Imm: -20}))

	cpu.Cycle()
	assert.Equal(int64(0), cpu.Pc())
}

func TestCpuJumpLink(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetPc(4)
	cpu.Memory.Write(tw(4), Encode(Jal{Rd: Reg(5), Imm: 10}))

	cpu.Cycle()
	assert.Equal(int64(5), cpu.Registers.Read(Reg(5)).Int64())
	assert.Equal(int64(14), cpu.Pc())
}

func TestCpuJumpZeroRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu, Jal{Rd: Reg(0), Imm: 0})

	cpu.Cycle()
	cpu.Cycle()
	assert.Equal(int64(0), cpu.Pc())
	assert.True(cpu.Registers.Read(Reg(0)).IsZero())
}

func TestCpuLui(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Write(Reg(1), tw(55))
	load(cpu, Lui{Rd: Reg(4), Imm: -1234})

	cpu.Cycle()
	assert.Equal(int64(-1234), cpu.Registers.Read(Reg(4)).Int64())
	assert.Equal(int64(1), cpu.Pc())
}

func TestCpuZeroRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu,
		Addi{Rd: Reg(0), Rs1: Reg(0), Imm: 5},
		Add{Rd: Reg(1), Rs1: Reg(0), Rs2: Reg(0)},
	)

	cpu.Cycle()
	cpu.Cycle()
	assert.True(cpu.Registers.Read(Reg(0)).IsZero())
	assert.True(cpu.Registers.Read(Reg(1)).IsZero())
}

func TestCpuUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory.Write(tw(0), pack(Opcode(42), 1, 2, 3, 4))

	cpu.Cycle()
	assert.Equal(Nop{}, cpu.Instruction)
	assert.Equal(ControlSignals{}, cpu.Signals)
	assert.Equal(int64(1), cpu.Pc())
	assert.True(cpu.Registers.Read(Reg(1)).IsZero())
	assert.Equal(1, cpu.Memory.Len())
}

func TestCpuPcWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetPc(trit.WORD_MAX)
	cpu.Memory.Write(tw(trit.WORD_MAX), Encode(Jal{Rd: Reg(1), Imm: 2}))

	cpu.Cycle()
	assert.Equal(trit.WORD_MIN, cpu.Registers.Read(Reg(1)).Int64())
	assert.Equal(trit.WORD_MIN+1, cpu.Pc())
}

func TestCpuDeterminism(t *testing.T) {
	assert := assert.New(t)

	build := func() *Cpu {
		cpu := NewCpu()
		cpu.Registers.Write(Reg(1), tw(-40))
		cpu.Registers.Write(Reg(2), tw(17))
		load(cpu,
			Add{Rd: Reg(3), Rs1: Reg(1), Rs2: Reg(2)},
			Sw{Rs1: Reg(3), Rs2: Reg(2), Imm: 50},
			Lw{Rd: Reg(4), Rs1: Reg(3), Imm: 50},
			Beq{Rs1: Reg(4), Rs2: Reg(2), Imm: 2},
			Nop{},
			Jal{Rd: Reg(5), Imm: -5},
		)
		return cpu
	}

	a := build()
	b := build()
	for range 12 {
		a.Cycle()
		b.Cycle()
		assert.Equal(a.Registers, b.Registers)
		assert.Equal(a.Memory, b.Memory)
		assert.Equal(a.String(), b.String())
	}
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu, Addi{Rd: Reg(1), Imm: 3})
	cpu.Cycle()

	cpu.Reset()
	assert.Equal(int64(0), cpu.Pc())
	assert.Equal(0, cpu.Ticks)
	assert.Equal(0, cpu.Memory.Len())
	assert.True(cpu.Registers.Read(Reg(1)).IsZero())
	assert.Equal(Nop{}, cpu.Instruction)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	load(cpu, Addi{Rd: Reg(2), Imm: 6})
	cpu.Cycle()

	text := cpu.String()
	assert.Contains(text, "   pc: ")
	assert.Contains(text, "   r2: ")
	assert.Contains(text, "ticks: 1")
}

func TestCpuDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range NewCpu().Defines() {
		defines[key] = value
	}
	assert.Equal("797161", defines["IMM_MAX"])
	assert.Equal("-13", defines["REG_MIN"])
	assert.Equal("3812798742493", defines["WORD_MAX"])
}
