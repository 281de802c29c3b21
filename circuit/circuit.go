// Package circuit provides the stateless ternary gates that the
// arithmetic unit is built from.
package circuit

import (
	"fmt"

	"github.com/ezrec/tern/trit"
)

// FullAdder adds two trits and a carry, returning the sum digit and the
// carry out.
//
//	raw  sum carry
//	 3    0   +
//	 2    -   +
//	 1    +   0
//	 0    0   0
//	-1    -   0
//	-2    +   -
//	-3    0   -
func FullAdder(a, b, carry trit.Trit) (sum, carryOut trit.Trit) {
	raw := a.Int() + b.Int() + carry.Int()

	switch raw {
	case 3:
		return trit.Zero, trit.Positive
	case 2:
		return trit.Negative, trit.Positive
	case 1:
		return trit.Positive, trit.Zero
	case 0:
		return trit.Zero, trit.Zero
	case -1:
		return trit.Negative, trit.Zero
	case -2:
		return trit.Positive, trit.Negative
	case -3:
		return trit.Zero, trit.Negative
	}

	panic(fmt.Sprintf("circuit: full adder raw sum %d", raw))
}

// Minimum is the Kleene conjunction: the lesser of the two trits.
func Minimum(a, b trit.Trit) trit.Trit {
	if a < b {
		return a
	}
	return b
}

// Negate inverts a trit.
func Negate(a trit.Trit) trit.Trit {
	return a.Neg()
}
