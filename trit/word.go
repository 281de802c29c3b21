package trit

const (
	WORD_WIDTH = 27 // Trits in a machine word.
	REG_WIDTH  = 3  // Trits in a register index.

	WORD_MAX = int64(3812798742493) // (3^27-1)/2
	WORD_MIN = -WORD_MAX
	REG_MAX  = int64(13) // (3^3-1)/2
	REG_MIN  = -REG_MAX
)

// Word is the 27 trit machine word. Words are comparable, and so can be
// used directly as map keys.
type Word [WORD_WIDTH]Trit

// Address is a word used to index the address space.
type Address = Word

// RegIndex is the 3 trit register selector.
type RegIndex [REG_WIDTH]Trit

// WordFromInt64 converts a value to a word, wrapping values beyond WORD_MAX.
func WordFromInt64(value int64) (word Word) {
	reduce(value, word[:])
	return
}

// Int64 returns the signed value of the word.
func (word Word) Int64() int64 {
	return valueOf(word[:])
}

// Field returns the word as an independent field.
func (word Word) Field() Field {
	fd := NewField(WORD_WIDTH)
	copy(fd.trits, word[:])
	return fd
}

// Slice returns the half-open position range [lo, hi) as a field.
func (word Word) Slice(lo, hi int) Field {
	fd := NewField(hi - lo)
	copy(fd.trits, word[lo:hi])
	return fd
}

// Place writes the field into the word starting at position lo.
func (word *Word) Place(lo int, fd Field) {
	copy(word[lo:lo+len(fd.trits)], fd.trits)
}

// IsZero returns true if every trit of the word is Zero.
func (word Word) IsZero() bool {
	return word == Word{}
}

// String returns the word digits, most significant first.
func (word Word) String() string {
	return format(word[:])
}

// ParseWord parses exactly 27 digits of '-', '0' and '+'.
func ParseWord(text string) (word Word, err error) {
	fd, err := ParseField(text)
	if err != nil {
		return
	}
	if fd.Width() != WORD_WIDTH {
		err = ErrParseWidth{Text: text, Width: WORD_WIDTH}
		return
	}
	copy(word[:], fd.trits)
	return
}

// RegIndexFromInt64 converts a value to a register index, wrapping
// values beyond ±13.
func RegIndexFromInt64(value int64) (reg RegIndex) {
	reduce(value, reg[:])
	return
}

// RegIndexFromField copies the low 3 trits of a field.
func RegIndexFromField(fd Field) (reg RegIndex) {
	copy(reg[:], fd.trits)
	return
}

// Int64 returns the signed value of the register index.
func (reg RegIndex) Int64() int64 {
	return valueOf(reg[:])
}

// Field returns the register index as an independent field.
func (reg RegIndex) Field() Field {
	fd := NewField(REG_WIDTH)
	copy(fd.trits, reg[:])
	return fd
}

// IsZero returns true for the hardwired zero register.
func (reg RegIndex) IsZero() bool {
	return reg == RegIndex{}
}

func (reg RegIndex) String() string {
	return format(reg[:])
}
