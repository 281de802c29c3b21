// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ezrec/tern/config"
	"github.com/ezrec/tern/cpu"
	"github.com/ezrec/tern/emulator"
	"github.com/ezrec/tern/image"
	"github.com/ezrec/tern/logs"
)

func main() {
	var compile string
	var input string
	var configPath string
	var entry int64
	var maxTicks int
	var dump string
	var output string
	var save bool
	var trace string
	var journal bool
	var verbose bool
	var logLevel string

	flag.StringVar(&compile, "c", "", ".ts file to assemble")
	flag.StringVar(&input, "i", "", "Memory image to load")
	flag.StringVar(&configPath, "config", "", ".cue machine configuration")
	flag.Int64Var(&entry, "e", 0, "Entry address")
	flag.IntVar(&maxTicks, "n", 0, "Cycle limit (0 for the default)")
	flag.StringVar(&dump, "dump", "", "Write final memory image")
	flag.StringVar(&output, "o", "-", "Assembled image output")
	flag.BoolVar(&save, "s", false, "Save assembled image, do not execute")
	flag.StringVar(&trace, "trace", "", "JSON trace log")
	flag.BoolVar(&journal, "journal", false, "Log to the systemd journal")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&logLevel, "log-level", "info", "Log level")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	machine := config.Machine{}
	if len(configPath) != 0 {
		var err error
		machine, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("%v: %v", configPath, err)
		}
	}

	// Flags override the configuration.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "c":
			machine.Program = compile
		case "i":
			machine.Image = input
		case "e":
			machine.Entry = entry
		case "n":
			machine.MaxTicks = maxTicks
		case "trace":
			machine.Trace = trace
		case "v":
			machine.Verbose = verbose
		}
	})

	level := new(slog.LevelVar)
	lvl, err := logs.ParseLevel(logLevel)
	if err != nil {
		log.Fatalf("-log-level: %v", err)
	}
	level.Set(lvl)

	opts := logs.Options{Journal: journal, Level: level}
	if len(machine.Trace) != 0 {
		ouf, err := os.Create(machine.Trace)
		if err != nil {
			log.Fatalf("%v: %v", machine.Trace, err)
		}
		defer ouf.Close()
		opts.Trace = ouf
	}
	slog.SetDefault(logs.New(opts))

	emu := emulator.NewEmulator()
	machine.Apply(emu)

	// Assemble a new program.
	if len(machine.Program) != 0 {
		inf, err := os.Open(machine.Program)
		if err != nil {
			log.Fatalf("%v: %v", machine.Program, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{}
		for equ, value := range emu.Defines() {
			asm.Predefine(equ, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", machine.Program, err)
		}
	}

	if save {
		err = writeImage(output, image.FromProgram(emu.Program))
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	if len(machine.Image) != 0 {
		inf, err := os.Open(machine.Image)
		if err != nil {
			log.Fatalf("%v: %v", machine.Image, err)
		}
		img, err := image.Read(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", machine.Image, err)
		}
		emu.Load(img)
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		slog.Error("run", "error", err, "ticks", emu.Ticks(), "pc", emu.Cpu.Pc())
	}

	fmt.Print(emu.Cpu.String())

	if len(dump) != 0 {
		if werr := writeImage(dump, image.FromAddressSpace(&emu.Cpu.Memory)); werr != nil {
			log.Fatalf("%v: %v", dump, werr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// writeImage writes an image to a file, or stdout for "-".
func writeImage(path string, img *image.Image) (err error) {
	if path == "-" {
		_, err = img.WriteTo(os.Stdout)
		return
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	_, err = img.WriteTo(ouf)
	return
}
