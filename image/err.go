package image

import (
	"errors"

	"github.com/ezrec/tern/translate"
)

var f = translate.From

var (
	ErrEntrySyntax  = errors.New(f("entry syntax: expected ADDRESS WORD"))
	ErrAddressRange = errors.New(f("address out of range"))
	ErrWordRange    = errors.New(f("word out of range"))
)

// ErrImage locates an error in an image source.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImage) Error() string {
	return f("line %d: %v\n%v", err.LineNo, err.Err, err.Line)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
