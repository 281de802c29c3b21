// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package trit implements balanced ternary digits, and the fixed width
// digit fields built from them.
//
// A trit holds one of -1, 0 or +1. A field is an ordered sequence of
// trits, position 0 least significant, read as a signed base-3 number.
// The machine word is a 27 trit field, and register indices are 3 trit
// fields.
package trit

import (
	"fmt"
)

// Trit is a single balanced ternary digit.
type Trit int8

const (
	Negative = Trit(-1) // -
	Zero     = Trit(0)  // 0
	Positive = Trit(1)  // +
)

// Int returns the integer value of the trit.
func (t Trit) Int() int {
	return int(t)
}

// Neg returns the inverted trit. Zero is unchanged.
func (t Trit) Neg() Trit {
	return -t
}

// Rune returns the text digit for the trit.
func (t Trit) Rune() rune {
	switch t {
	case Negative:
		return '-'
	case Positive:
		return '+'
	}
	return '0'
}

func (t Trit) String() string {
	return string(t.Rune())
}

// ParseTrit parses a single text digit.
func ParseTrit(r rune) (t Trit, ok bool) {
	switch r {
	case '-':
		return Negative, true
	case '0':
		return Zero, true
	case '+':
		return Positive, true
	}
	return
}

// digit checks the output of a single reduction step.
// Anything outside of the balanced range is a reduction bug, not bad input.
func digit(value int64) Trit {
	switch value {
	case -1:
		return Negative
	case 0:
		return Zero
	case 1:
		return Positive
	}
	panic(fmt.Sprintf("trit: reduction produced digit %d", value))
}
