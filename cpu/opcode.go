package cpu

import (
	"fmt"

	"github.com/ezrec/tern/trit"
)

// Opcode is the 5 trit operation code of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP  = Opcode(0) // nop
	OP_ADD  = Opcode(1) // add
	OP_SUB  = Opcode(2) // sub
	OP_ADDI = Opcode(3) // addi
	OP_LW   = Opcode(4) // lw
	OP_SW   = Opcode(5) // sw
	OP_BEQ  = Opcode(6) // beq
	OP_JAL  = Opcode(7) // jal
	OP_LUI  = Opcode(8) // lui
)

// Instruction word layout, as half-open trit position ranges.
const (
	FIELD_OP_LO  = 0
	FIELD_OP_HI  = 5
	FIELD_RD_LO  = 5
	FIELD_RD_HI  = 8
	FIELD_RS1_LO = 8
	FIELD_RS1_HI = 11
	FIELD_RS2_LO = 11
	FIELD_RS2_HI = 14
	FIELD_IMM_LO = 14
	FIELD_IMM_HI = 27

	IMM_WIDTH = FIELD_IMM_HI - FIELD_IMM_LO
	IMM_MAX   = int64(797161) // (3^13-1)/2
	IMM_MIN   = -IMM_MAX
)

// Instruction is one decoded machine instruction. The set of variants is
// closed: Add, Sub, Addi, Lw, Sw, Beq, Jal, Lui and Nop.
type Instruction interface {
	// Opcode returns the operation code of the variant.
	Opcode() Opcode
	// String returns the assembly language form.
	String() string

	instruction()
}

// Add sets Rd to Rs1 + Rs2.
type Add struct{ Rd, Rs1, Rs2 trit.RegIndex }

// Sub sets Rd to Rs1 - Rs2.
type Sub struct{ Rd, Rs1, Rs2 trit.RegIndex }

// Addi sets Rd to Rs1 + Imm.
type Addi struct {
	Rd, Rs1 trit.RegIndex
	Imm     int64
}

// Lw loads Rd from the address Rs1 + Imm.
type Lw struct {
	Rd, Rs1 trit.RegIndex
	Imm     int64
}

// Sw stores Rs2 to the address Rs1 + Imm.
type Sw struct {
	Rs1, Rs2 trit.RegIndex
	Imm      int64
}

// Beq adds Imm to the program counter if Rs1 equals Rs2.
type Beq struct {
	Rs1, Rs2 trit.RegIndex
	Imm      int64
}

// Jal links the return address into Rd, and adds Imm to the program counter.
type Jal struct {
	Rd  trit.RegIndex
	Imm int64
}

// Lui sets Rd to Imm.
type Lui struct {
	Rd  trit.RegIndex
	Imm int64
}

// Nop does nothing but advance the program counter.
type Nop struct{}

func (Add) Opcode() Opcode  { return OP_ADD }
func (Sub) Opcode() Opcode  { return OP_SUB }
func (Addi) Opcode() Opcode { return OP_ADDI }
func (Lw) Opcode() Opcode   { return OP_LW }
func (Sw) Opcode() Opcode   { return OP_SW }
func (Beq) Opcode() Opcode  { return OP_BEQ }
func (Jal) Opcode() Opcode  { return OP_JAL }
func (Lui) Opcode() Opcode  { return OP_LUI }
func (Nop) Opcode() Opcode  { return OP_NOP }

func (Add) instruction()  {}
func (Sub) instruction()  {}
func (Addi) instruction() {}
func (Lw) instruction()   {}
func (Sw) instruction()   {}
func (Beq) instruction()  {}
func (Jal) instruction()  {}
func (Lui) instruction()  {}
func (Nop) instruction()  {}

// Reg returns the register index for a register number.
func Reg(n int64) trit.RegIndex {
	return trit.RegIndexFromInt64(n)
}

func regName(reg trit.RegIndex) string {
	return fmt.Sprintf("r%d", reg.Int64())
}

func (ins Add) String() string {
	return fmt.Sprintf("add %v %v %v", regName(ins.Rd), regName(ins.Rs1), regName(ins.Rs2))
}

func (ins Sub) String() string {
	return fmt.Sprintf("sub %v %v %v", regName(ins.Rd), regName(ins.Rs1), regName(ins.Rs2))
}

func (ins Addi) String() string {
	return fmt.Sprintf("addi %v %v %d", regName(ins.Rd), regName(ins.Rs1), ins.Imm)
}

func (ins Lw) String() string {
	return fmt.Sprintf("lw %v %v %d", regName(ins.Rd), regName(ins.Rs1), ins.Imm)
}

func (ins Sw) String() string {
	return fmt.Sprintf("sw %v %v %d", regName(ins.Rs1), regName(ins.Rs2), ins.Imm)
}

func (ins Beq) String() string {
	return fmt.Sprintf("beq %v %v %d", regName(ins.Rs1), regName(ins.Rs2), ins.Imm)
}

func (ins Jal) String() string {
	return fmt.Sprintf("jal %v %d", regName(ins.Rd), ins.Imm)
}

func (ins Lui) String() string {
	return fmt.Sprintf("lui %v %d", regName(ins.Rd), ins.Imm)
}

func (Nop) String() string {
	return "nop"
}

// Operands returns the register fields of an instruction. Fields the
// variant does not carry are the zero register.
func Operands(ins Instruction) (rd, rs1, rs2 trit.RegIndex) {
	switch ins := ins.(type) {
	case Add:
		return ins.Rd, ins.Rs1, ins.Rs2
	case Sub:
		return ins.Rd, ins.Rs1, ins.Rs2
	case Addi:
		return ins.Rd, ins.Rs1, rs2
	case Lw:
		return ins.Rd, ins.Rs1, rs2
	case Sw:
		return rd, ins.Rs1, ins.Rs2
	case Beq:
		return rd, ins.Rs1, ins.Rs2
	case Jal:
		rd = ins.Rd
	case Lui:
		rd = ins.Rd
	}
	return
}

// Immediate returns the immediate field of an instruction, or zero.
func Immediate(ins Instruction) int64 {
	switch ins := ins.(type) {
	case Addi:
		return ins.Imm
	case Lw:
		return ins.Imm
	case Sw:
		return ins.Imm
	case Beq:
		return ins.Imm
	case Jal:
		return ins.Imm
	case Lui:
		return ins.Imm
	}
	return 0
}

// Encode packs an instruction into a machine word.
// Out of range register numbers and immediates wrap within their fields.
func Encode(ins Instruction) (word trit.Word) {
	if ins == nil {
		return
	}

	rd, rs1, rs2 := Operands(ins)

	word.Place(FIELD_OP_LO, trit.FieldFromInt64(int64(ins.Opcode()), FIELD_OP_HI-FIELD_OP_LO))
	word.Place(FIELD_RD_LO, rd.Field())
	word.Place(FIELD_RS1_LO, rs1.Field())
	word.Place(FIELD_RS2_LO, rs2.Field())
	word.Place(FIELD_IMM_LO, trit.FieldFromInt64(Immediate(ins), IMM_WIDTH))

	return
}

// DecodeWord unpacks a machine word into an instruction.
// Unknown opcodes decode as Nop.
func DecodeWord(word trit.Word) Instruction {
	op := Opcode(word.Slice(FIELD_OP_LO, FIELD_OP_HI).Int64())
	rd := trit.RegIndexFromField(word.Slice(FIELD_RD_LO, FIELD_RD_HI))
	rs1 := trit.RegIndexFromField(word.Slice(FIELD_RS1_LO, FIELD_RS1_HI))
	rs2 := trit.RegIndexFromField(word.Slice(FIELD_RS2_LO, FIELD_RS2_HI))
	imm := word.Slice(FIELD_IMM_LO, FIELD_IMM_HI).Int64()

	switch op {
	case OP_ADD:
		return Add{Rd: rd, Rs1: rs1, Rs2: rs2}
	case OP_SUB:
		return Sub{Rd: rd, Rs1: rs1, Rs2: rs2}
	case OP_ADDI:
		return Addi{Rd: rd, Rs1: rs1, Imm: imm}
	case OP_LW:
		return Lw{Rd: rd, Rs1: rs1, Imm: imm}
	case OP_SW:
		return Sw{Rs1: rs1, Rs2: rs2, Imm: imm}
	case OP_BEQ:
		return Beq{Rs1: rs1, Rs2: rs2, Imm: imm}
	case OP_JAL:
		return Jal{Rd: rd, Imm: imm}
	case OP_LUI:
		return Lui{Rd: rd, Imm: imm}
	}

	return Nop{}
}

// ControlSignals drive the execute phase of a single cycle.
type ControlSignals struct {
	AluOp    AluOp // Arithmetic unit operation.
	AluSrc   bool  // Second operand is the immediate, not Rs2.
	RegWrite bool  // Write back to Rd.
	MemRead  bool  // Load from the computed address.
	MemWrite bool  // Store Rs2 to the computed address.
	MemToReg bool  // Write back the loaded value instead of the result.
	Branch   bool  // Branch if the zero flag is set.
	Jump     bool  // Unconditional PC relative jump, linking PC+1.
}

// Decode derives the control signals and immediate for an instruction.
func Decode(ins Instruction) (signals ControlSignals, imm int64) {
	switch ins := ins.(type) {
	case Add:
		signals.AluOp = ALU_OP_ADD
		signals.RegWrite = true
	case Sub:
		signals.AluOp = ALU_OP_SUB
		signals.RegWrite = true
	case Addi:
		signals.AluOp = ALU_OP_ADD
		signals.AluSrc = true
		signals.RegWrite = true
		imm = ins.Imm
	case Lw:
		// address = Rs1 + Imm
		signals.AluOp = ALU_OP_ADD
		signals.AluSrc = true
		signals.RegWrite = true
		signals.MemRead = true
		signals.MemToReg = true
		imm = ins.Imm
	case Sw:
		// address = Rs1 + Imm
		signals.AluOp = ALU_OP_ADD
		signals.AluSrc = true
		signals.MemWrite = true
		imm = ins.Imm
	case Beq:
		signals.AluOp = ALU_OP_SUB
		signals.Branch = true
		imm = ins.Imm
	case Jal:
		signals.Jump = true
		signals.RegWrite = true
		imm = ins.Imm
	case Lui:
		signals.AluOp = ALU_OP_PASS_B
		signals.AluSrc = true
		signals.RegWrite = true
		imm = ins.Imm
	}

	return
}
