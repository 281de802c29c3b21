package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_Pc(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	assert.True(regs.ReadPc().IsZero())

	regs.WritePc(tw(123))
	assert.Equal(tw(123), regs.ReadPc())
}

func TestRegisters_ZeroImmutable(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	for _, value := range []int64{1, -1, 99, 797161, -3812798742493} {
		regs.Write(Reg(0), tw(value))
		assert.True(regs.Read(Reg(0)).IsZero(), "r0 after writing %d", value)
	}

	count := 0
	for range regs.All() {
		count++
	}
	assert.Equal(0, count)
}

func TestRegisters_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	regs.Write(Reg(1), tw(42))
	regs.Write(Reg(2), tw(-5))
	regs.Write(Reg(-13), tw(7))

	assert.Equal(tw(42), regs.Read(Reg(1)))
	assert.Equal(tw(-5), regs.Read(Reg(2)))
	assert.Equal(tw(7), regs.Read(Reg(-13)))
	assert.True(regs.Read(Reg(10)).IsZero())

	var order []int64
	for reg := range regs.All() {
		order = append(order, reg.Int64())
	}
	assert.Equal([]int64{-13, 1, 2}, order)

	regs.WritePc(tw(9))
	regs.Reset()
	assert.True(regs.Read(Reg(1)).IsZero())
	assert.True(regs.ReadPc().IsZero())
}
