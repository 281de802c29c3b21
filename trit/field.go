package trit

import (
	"math/big"
	"strings"
)

// MAX_INT64_WIDTH is the widest field that always fits an int64.
const MAX_INT64_WIDTH = 40

// Field is a fixed width sequence of trits. Position 0 is least significant.
// The width is set at construction and never changes.
type Field struct {
	trits []Trit
}

// NewField creates a zero valued field of the given width.
func NewField(width int) (fd Field) {
	if width < 0 {
		panic("trit: negative field width")
	}
	fd.trits = make([]Trit, width)
	return
}

// Width returns the number of trits in the field.
func (fd Field) Width() int {
	return len(fd.trits)
}

// Trit returns the trit at position n.
func (fd Field) Trit(n int) Trit {
	return fd.trits[n]
}

// SetTrit replaces the trit at position n.
func (fd Field) SetTrit(n int, t Trit) {
	fd.trits[n] = t
}

// Slice returns a copy of the half-open position range [lo, hi).
func (fd Field) Slice(lo, hi int) Field {
	out := NewField(hi - lo)
	copy(out.trits, fd.trits[lo:hi])
	return out
}

// Big returns the signed value of the field.
func (fd Field) Big() *big.Int {
	value := new(big.Int)
	three := big.NewInt(3)
	for n := len(fd.trits) - 1; n >= 0; n-- {
		value.Mul(value, three)
		value.Add(value, big.NewInt(int64(fd.trits[n])))
	}
	return value
}

// Int64 returns the signed value of the field.
// Fields wider than MAX_INT64_WIDTH trits must use Big.
func (fd Field) Int64() int64 {
	if len(fd.trits) > MAX_INT64_WIDTH {
		panic("trit: field too wide for int64")
	}
	return valueOf(fd.trits)
}

// FieldFromBig builds a field from an arbitrary precision value.
//
// Values beyond ±(3^width-1)/2 wrap: the value is reduced modulo 3^width
// with digits rebalanced into {-1, 0, 1}, exactly as if only the low
// width digits of the full balanced ternary expansion were kept.
func FieldFromBig(value *big.Int, width int) (fd Field) {
	fd = NewField(width)

	n := new(big.Int).Set(value)
	rem := new(big.Int)
	one := big.NewInt(1)
	three := big.NewInt(3)

	for i := 0; i < width && n.Sign() != 0; i++ {
		n.QuoRem(n, three, rem)
		r := rem.Int64()
		switch {
		case r > 1:
			r -= 3
			n.Add(n, one)
		case r < -1:
			r += 3
			n.Sub(n, one)
		}
		fd.trits[i] = digit(r)
	}

	return
}

// FieldFromInt64 builds a field from an int64, wrapping like FieldFromBig.
func FieldFromInt64(value int64, width int) (fd Field) {
	fd = NewField(width)
	reduce(value, fd.trits)
	return
}

// reduce fills dst with the balanced ternary digits of value,
// dropping anything that does not fit.
func reduce(value int64, dst []Trit) {
	clear(dst)

	n := value
	for i := range dst {
		if n == 0 {
			break
		}
		r := n % 3
		n /= 3
		switch {
		case r > 1:
			r -= 3
			n++
		case r < -1:
			r += 3
			n--
		}
		dst[i] = digit(r)
	}
}

// valueOf sums the digits of src.
func valueOf(src []Trit) (value int64) {
	for n := len(src) - 1; n >= 0; n-- {
		value = value*3 + int64(src[n])
	}
	return
}

// String returns the digits, most significant first.
func (fd Field) String() string {
	return format(fd.trits)
}

func format(src []Trit) string {
	var sb strings.Builder
	sb.Grow(len(src))
	for n := len(src) - 1; n >= 0; n-- {
		sb.WriteRune(src[n].Rune())
	}
	return sb.String()
}

// ParseField parses a most-significant-first string of '-', '0' and '+'.
// The field width is the number of digits. Underscores are ignored.
func ParseField(text string) (fd Field, err error) {
	digits := []rune(strings.ReplaceAll(text, "_", ""))
	fd = NewField(len(digits))
	for n, r := range digits {
		t, ok := ParseTrit(r)
		if !ok {
			err = ErrParseTrit(text)
			return
		}
		fd.trits[len(fd.trits)-1-n] = t
	}
	return
}
