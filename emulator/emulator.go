// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tern/cpu"
	"github.com/ezrec/tern/image"
	"github.com/ezrec/tern/internal"
	"github.com/ezrec/tern/trit"
)

const (
	DEFAULT_MAX_TICKS = 1_000_000 // Default cycle limit for Run.
)

var _emulator_defines = map[string]string{
	"MAX_TICKS": fmt.Sprintf("%v", DEFAULT_MAX_TICKS),
}

// Emulator state. CPU plus the program and images loaded at reset.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing, may be nil.

	Entry    int64 // Program counter after reset.
	MaxTicks int   // Cycle limit for Run. Zero or less is unlimited.

	// Register values applied after reset.
	Presets map[trit.RegIndex]trit.Word

	images []*image.Image
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:      cpu.NewCpu(),
		Program:  &cpu.Program{},
		MaxTicks: DEFAULT_MAX_TICKS,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load adds a memory image, applied at every reset after the program.
func (emu *Emulator) Load(img *image.Image) {
	emu.images = append(emu.images, img)
}

// Reset the machine state.
// - Clears the CPU, then loads the program and images.
// - Applies register presets.
// - Sets the program counter to the entry address.
func (emu *Emulator) Reset() (err error) {
	if emu.Entry < trit.WORD_MIN || emu.Entry > trit.WORD_MAX {
		err = ErrEntryRange
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	if emu.Program != nil {
		emu.Program.Load(&emu.Cpu.Memory)
	}
	for _, img := range emu.images {
		img.LoadInto(&emu.Cpu.Memory)
	}

	for reg, value := range emu.Presets {
		emu.Cpu.Registers.Write(reg, value)
	}

	emu.Cpu.SetPc(emu.Entry)

	if emu.Verbose {
		log.Printf("emulator: reset, %d words, entry %d", emu.Cpu.Memory.Len(), emu.Entry)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the word at the program counter.
func (emu *Emulator) Code() trit.Word {
	return emu.Cpu.Fetch()
}

// LineNo returns the current line number for the executing word.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc())
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single cycle of the emulator.
// The machine is done when a cycle leaves the program counter unchanged.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		err = ErrCycleLimit
		return
	}

	pc := emu.Cpu.Registers.ReadPc()
	emu.Cpu.Cycle()
	done = emu.Cpu.Registers.ReadPc() == pc

	return
}

// Run ticks until the machine is done or the cycle limit is reached.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: done after %d ticks at %d", emu.Ticks(), emu.Cpu.Pc())
	}

	return
}
