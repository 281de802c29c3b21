// Package image reads and writes memory images.
//
// An image is a text file with one entry per line:
//
//	ADDRESS WORD
//
// ADDRESS is a signed decimal. WORD is either 27 balanced ternary digits
// (`-`, `0`, `+`, most significant first, `_` separators allowed) or a
// signed decimal prefixed with `#`. Text after `;` is a comment.
package image

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/tern/cpu"
	"github.com/ezrec/tern/trit"
)

// Entry is a single addressed word.
type Entry struct {
	Address trit.Address
	Word    trit.Word
}

// Image is an ordered list of entries. Later entries overwrite earlier
// ones at the same address when loaded.
type Image struct {
	Entries []Entry
}

// Set appends an entry.
func (img *Image) Set(addr int64, value int64) {
	img.Entries = append(img.Entries, Entry{
		Address: trit.WordFromInt64(addr),
		Word:    trit.WordFromInt64(value),
	})
}

// All iterates over every entry in order.
func (img *Image) All() iter.Seq2[trit.Address, trit.Word] {
	return func(yield func(addr trit.Address, word trit.Word) bool) {
		for _, entry := range img.Entries {
			if !yield(entry.Address, entry.Word) {
				return
			}
		}
	}
}

// LoadInto writes every entry into an address space.
func (img *Image) LoadInto(as *cpu.AddressSpace) {
	for addr, word := range img.All() {
		as.Write(addr, word)
	}
}

// FromAddressSpace captures the non-zero cells of an address space,
// in address order.
func FromAddressSpace(as *cpu.AddressSpace) (img *Image) {
	img = &Image{}
	for addr, word := range as.All() {
		img.Entries = append(img.Entries, Entry{Address: addr, Word: word})
	}
	return
}

// FromProgram captures the words of an assembled program.
func FromProgram(prog *cpu.Program) (img *Image) {
	img = &Image{}
	for addr, word := range prog.Codes() {
		img.Entries = append(img.Entries, Entry{Address: addr, Word: word})
	}
	return
}

// WriteTo writes the image in text form.
func (img *Image) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	for _, entry := range img.Entries {
		var count int
		count, err = fmt.Fprintf(bw, "%d %v\n", entry.Address.Int64(), entry.Word)
		n += int64(count)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

func parseValue(word string, rangeErr error) (value trit.Word, err error) {
	num, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return
	}
	if num < trit.WORD_MIN || num > trit.WORD_MAX {
		err = rangeErr
		return
	}

	value = trit.WordFromInt64(num)
	return
}

func parseEntry(words []string) (entry Entry, err error) {
	if len(words) != 2 {
		err = ErrEntrySyntax
		return
	}

	entry.Address, err = parseValue(words[0], ErrAddressRange)
	if err != nil {
		return
	}

	if num, ok := strings.CutPrefix(words[1], "#"); ok {
		entry.Word, err = parseValue(num, ErrWordRange)
	} else {
		entry.Word, err = trit.ParseWord(words[1])
	}

	return
}

// Read parses an image from its text form.
func Read(input io.Reader) (img *Image, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrImage{LineNo: lineno, Line: line, Err: err}
		}
	}()

	img = &Image{}
	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		text, _, _ := strings.Cut(line, ";")
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}

		var entry Entry
		entry, err = parseEntry(words)
		if err != nil {
			return
		}
		img.Entries = append(img.Entries, entry)
	}

	err = scanner.Err()
	return
}
