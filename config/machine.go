// Package config loads machine configuration from CUE files.
package config

import (
	_ "embed"
	"errors"

	"github.com/ezrec/tern/emulator"
	"github.com/ezrec/tern/image"
	"github.com/ezrec/tern/trit"
)

//go:embed schema.cue
var Schema string

// Register is a register value applied at reset.
type Register struct {
	Index int64 `json:"index"`
	Value int64 `json:"value"`
}

// Cell is a memory value applied at reset.
type Cell struct {
	Address int64 `json:"address"`
	Value   int64 `json:"value"`
}

// Machine is the configuration of a machine run.
type Machine struct {
	Entry    int64  `json:"entry"`     // Program counter after reset.
	MaxTicks int    `json:"max_ticks"` // Cycle limit, zero keeps the default.
	Verbose  bool   `json:"verbose"`   // Trace every cycle.
	Program  string `json:"program"`   // Assembly source path.
	Image    string `json:"image"`     // Memory image path.
	Trace    string `json:"trace"`     // JSON trace log path.

	Registers []Register `json:"registers"`
	Memory    []Cell     `json:"memory"`
}

// Load reads a machine configuration from CUE files. For each key the
// first file defining it wins.
func Load(filePaths ...string) (machine Machine, err error) {
	loader := NewLoader(filePaths, Schema)
	if err = loader.Err(); err != nil {
		return
	}

	// The schema fixes the scalar types, so decoding them cannot fail.
	machine.Entry = First[int64](loader, "entry")
	machine.MaxTicks = First[int](loader, "max_ticks")
	machine.Verbose = First[bool](loader, "verbose")
	machine.Program = First[string](loader, "program")
	machine.Image = First[string](loader, "image")
	machine.Trace = First[string](loader, "trace")

	lists := []struct {
		path   string
		target any
	}{
		{"registers", &machine.Registers},
		{"memory", &machine.Memory},
	}

	for _, item := range lists {
		err = loader.AssignFirst(item.path, item.target)
		if errors.Is(err, ErrValueNotFound) {
			err = nil
		}
		if err != nil {
			return
		}
	}

	return
}

// Apply configures an emulator: entry, cycle limit, verbosity, register
// presets and a memory image built from the memory cells.
func (machine *Machine) Apply(emu *emulator.Emulator) {
	emu.Entry = machine.Entry
	if machine.MaxTicks > 0 {
		emu.MaxTicks = machine.MaxTicks
	}
	emu.Verbose = emu.Verbose || machine.Verbose

	if len(machine.Registers) != 0 {
		if emu.Presets == nil {
			emu.Presets = make(map[trit.RegIndex]trit.Word)
		}
		for _, reg := range machine.Registers {
			emu.Presets[trit.RegIndexFromInt64(reg.Index)] = trit.WordFromInt64(reg.Value)
		}
	}

	if len(machine.Memory) != 0 {
		img := &image.Image{}
		for _, cell := range machine.Memory {
			img.Set(cell.Address, cell.Value)
		}
		emu.Load(img)
	}
}
