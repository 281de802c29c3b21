package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tern/trit"
)

func tw(value int64) trit.Word {
	return trit.WordFromInt64(value)
}

// pack encodes fields by positional arithmetic, as an external loader would.
func pack(op Opcode, rd, rs1, rs2, imm int64) trit.Word {
	return tw(int64(op) + rd*243 + rs1*6561 + rs2*177147 + imm*4782969)
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		ins  Instruction
		word trit.Word
	}{
		{Add{Rd: Reg(3), Rs1: Reg(1), Rs2: Reg(2)}, pack(OP_ADD, 3, 1, 2, 0)},
		{Sub{Rd: Reg(-4), Rs1: Reg(13), Rs2: Reg(-13)}, pack(OP_SUB, -4, 13, -13, 0)},
		{Addi{Rd: Reg(1), Rs1: Reg(0), Imm: 5}, pack(OP_ADDI, 1, 0, 0, 5)},
		{Lw{Rd: Reg(2), Rs1: Reg(0), Imm: 100}, pack(OP_LW, 2, 0, 0, 100)},
		{Sw{Rs1: Reg(0), Rs2: Reg(1), Imm: 100}, pack(OP_SW, 0, 0, 1, 100)},
		{Beq{Rs1: Reg(1), Rs2: Reg(2), Imm: -7}, pack(OP_BEQ, 0, 1, 2, -7)},
		{Jal{Rd: Reg(5), Imm: IMM_MAX}, pack(OP_JAL, 5, 0, 0, IMM_MAX)},
		{Lui{Rd: Reg(6), Imm: IMM_MIN}, pack(OP_LUI, 6, 0, 0, IMM_MIN)},
		{Nop{}, trit.Word{}},
	}

	for _, entry := range table {
		word := Encode(entry.ins)
		assert.Equal(entry.word, word, entry.ins.String())
		assert.Equal(entry.ins, DecodeWord(word), entry.ins.String())
	}

	assert.Equal(trit.Word{}, Encode(nil))
}

func TestEncode_Wrap(t *testing.T) {
	assert := assert.New(t)

	// Immediates wrap within their own field, not into the opcode.
	word := Encode(Addi{Rd: Reg(1), Imm: IMM_MAX + 1})
	ins := DecodeWord(word)
	assert.Equal(Addi{Rd: Reg(1), Imm: IMM_MIN}, ins)
}

func TestDecodeWord_Unknown(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []int64{0, 9, 10, 121, -1, -8, -121} {
		word := pack(OP_NOP, 1, 2, 3, 4)
		word.Place(FIELD_OP_LO, trit.FieldFromInt64(op, FIELD_OP_HI-FIELD_OP_LO))
		assert.Equal(Nop{}, DecodeWord(word), "opcode %d", op)
	}
}

func TestDecodeWord_StoreIgnoresRd(t *testing.T) {
	assert := assert.New(t)

	ins := DecodeWord(pack(OP_SW, 7, 1, 2, 3))
	assert.Equal(Sw{Rs1: Reg(1), Rs2: Reg(2), Imm: 3}, ins)

	rd, rs1, rs2 := Operands(ins)
	assert.True(rd.IsZero())
	assert.Equal(Reg(1), rs1)
	assert.Equal(Reg(2), rs2)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		ins     Instruction
		signals ControlSignals
		imm     int64
	}{
		{Add{}, ControlSignals{AluOp: ALU_OP_ADD, RegWrite: true}, 0},
		{Sub{}, ControlSignals{AluOp: ALU_OP_SUB, RegWrite: true}, 0},
		{Addi{Imm: 9}, ControlSignals{AluOp: ALU_OP_ADD, AluSrc: true, RegWrite: true}, 9},
		{Lw{Imm: -2}, ControlSignals{AluOp: ALU_OP_ADD, AluSrc: true, RegWrite: true, MemRead: true, MemToReg: true}, -2},
		{Sw{Imm: 4}, ControlSignals{AluOp: ALU_OP_ADD, AluSrc: true, MemWrite: true}, 4},
		{Beq{Imm: 6}, ControlSignals{AluOp: ALU_OP_SUB, Branch: true}, 6},
		{Jal{Imm: 8}, ControlSignals{Jump: true, RegWrite: true}, 8},
		{Lui{Imm: 10}, ControlSignals{AluOp: ALU_OP_PASS_B, AluSrc: true, RegWrite: true}, 10},
		{Nop{}, ControlSignals{}, 0},
	}

	for _, entry := range table {
		signals, imm := Decode(entry.ins)
		assert.Equal(entry.signals, signals, entry.ins.String())
		assert.Equal(entry.imm, imm, entry.ins.String())
		assert.Equal(entry.imm, Immediate(entry.ins))
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add r3 r1 r2", Add{Rd: Reg(3), Rs1: Reg(1), Rs2: Reg(2)}.String())
	assert.Equal("sub r-1 r0 r13", Sub{Rd: Reg(-1), Rs2: Reg(13)}.String())
	assert.Equal("addi r1 r0 5", Addi{Rd: Reg(1), Imm: 5}.String())
	assert.Equal("lw r2 r0 100", Lw{Rd: Reg(2), Imm: 100}.String())
	assert.Equal("sw r0 r1 100", Sw{Rs2: Reg(1), Imm: 100}.String())
	assert.Equal("beq r1 r2 -3", Beq{Rs1: Reg(1), Rs2: Reg(2), Imm: -3}.String())
	assert.Equal("jal r1 4", Jal{Rd: Reg(1), Imm: 4}.String())
	assert.Equal("lui r1 7", Lui{Rd: Reg(1), Imm: 7}.String())
	assert.Equal("nop", Nop{}.String())

	assert.Equal("beq", OP_BEQ.String())
	assert.Equal("Opcode(42)", Opcode(42).String())
	assert.Equal("Opcode(-1)", Opcode(-1).String())
	assert.Equal("passb", ALU_OP_PASS_B.String())
	assert.Equal("none", ALU_OP_NONE.String())
	assert.Equal("AluOp(9)", AluOp(9).String())
}
