package cpu

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/tern/trit"
)

// AddressSpace is the flat, sparse, memory mapped store.
// There are no bounds, alignment or protection checks.
type AddressSpace struct {
	cells map[trit.Address]trit.Word
}

// Read returns the word at an address. Unmapped addresses read as zero.
func (as *AddressSpace) Read(addr trit.Address) trit.Word {
	return as.cells[addr]
}

// Write replaces the whole word at an address.
func (as *AddressSpace) Write(addr trit.Address, value trit.Word) {
	if value.IsZero() {
		// Zero is the unmapped value; keep the map sparse.
		delete(as.cells, addr)
		return
	}
	if as.cells == nil {
		as.cells = make(map[trit.Address]trit.Word)
	}
	as.cells[addr] = value
}

// Reset unmaps every address.
func (as *AddressSpace) Reset() {
	clear(as.cells)
}

// Len returns the number of addresses holding a non-zero word.
func (as *AddressSpace) Len() int {
	return len(as.cells)
}

// All iterates over non-zero words in address order.
func (as *AddressSpace) All() iter.Seq2[trit.Address, trit.Word] {
	return func(yield func(trit.Address, trit.Word) bool) {
		keys := slices.SortedFunc(maps.Keys(as.cells), func(a, b trit.Address) int {
			return cmp.Compare(a.Int64(), b.Int64())
		})
		for _, key := range keys {
			if !yield(key, as.cells[key]) {
				return
			}
		}
	}
}
