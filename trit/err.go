package trit

import (
	"github.com/ezrec/tern/translate"
)

var f = translate.From

// ErrParseTrit reports text that is not a run of '-', '0' and '+' digits.
type ErrParseTrit string

func (err ErrParseTrit) Error() string {
	return f("'%v' is not a balanced ternary value", string(err))
}

// ErrParseWidth reports a parsed value with the wrong number of digits.
type ErrParseWidth struct {
	Text  string
	Width int
}

func (err ErrParseWidth) Error() string {
	return f("'%v' is not %d trits wide", err.Text, err.Width)
}
