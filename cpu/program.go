package cpu

import (
	"iter"

	"github.com/ezrec/tern/trit"
)

// Statement is a line of assembled code with its source location and
// generated words.
type Statement struct {
	LineNo    int         // Source line number.
	Address   int64       // Address of the first generated word.
	Words     []string    // Source words, after expansion.
	Codes     []trit.Word // Generated words.
	LinkLabel string      // Branch or jump label, resolved at link time.
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

// Debug locates the statement that generated the word at an address.
type Debug struct {
	*Statement
	Index int
}

// Debug returns the statement covering an address. The embedded
// Statement is nil if no statement covers it.
func (prog *Program) Debug(addr int64) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Address && addr < st.Address+int64(len(st.Codes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(addr - st.Address),
			}
			break
		}
	}

	return
}

// Codes iterates over every generated word and its address.
func (prog *Program) Codes() iter.Seq2[trit.Address, trit.Word] {
	return func(yield func(addr trit.Address, word trit.Word) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(trit.WordFromInt64(st.Address+int64(n)), code) {
					return
				}
			}
		}
	}
}

// Load writes the program into an address space.
func (prog *Program) Load(as *AddressSpace) {
	for addr, code := range prog.Codes() {
		as.Write(addr, code)
	}
}
