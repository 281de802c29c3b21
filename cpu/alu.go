package cpu

import (
	"github.com/ezrec/tern/circuit"
	"github.com/ezrec/tern/trit"
)

// AluOp is an arithmetic unit operation selector.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_NONE   = AluOp(0) // none
	ALU_OP_ADD    = AluOp(1) // add
	ALU_OP_SUB    = AluOp(2) // sub
	ALU_OP_PASS_B = AluOp(3) // passb
)

// Alu is the word wide arithmetic unit.
//
// Inputs and the operation are latched by Set, and Execute computes Result
// and Zero from them. Both stay valid until the next Reset, Set or Execute.
type Alu struct {
	Result trit.Word // Result of the last Execute.
	Zero   trit.Trit // Positive if every trit of Result is Zero.

	a  trit.Word
	b  trit.Word
	op AluOp
}

// Set latches the operands and operation.
func (alu *Alu) Set(a, b trit.Word, op AluOp) {
	alu.a = a
	alu.b = b
	alu.op = op
}

// Reset clears inputs, outputs and the operation.
func (alu *Alu) Reset() {
	*alu = Alu{}
}

// Execute runs the latched operation.
// ALU_OP_NONE leaves Result and Zero untouched, and ALU_OP_PASS_B
// leaves Zero untouched.
func (alu *Alu) Execute() {
	switch alu.op {
	case ALU_OP_ADD:
		alu.ripple(alu.b)
	case ALU_OP_SUB:
		// No borrow chain: a - b is a + (-b), negating trit by trit.
		var negated trit.Word
		for n, t := range alu.b {
			negated[n] = circuit.Negate(t)
		}
		alu.ripple(negated)
	case ALU_OP_PASS_B:
		alu.Result = alu.b
	case ALU_OP_NONE:
	}
}

// ripple adds b to the a input, least significant trit first.
// The final carry out is dropped, so results wrap like any word.
func (alu *Alu) ripple(b trit.Word) {
	carry := trit.Zero
	for n := range alu.a {
		alu.Result[n], carry = circuit.FullAdder(alu.a[n], b[n], carry)
	}
	alu.setZero()
}

func (alu *Alu) setZero() {
	alu.Zero = trit.Zero
	if alu.Result.IsZero() {
		alu.Zero = trit.Positive
	}
}
