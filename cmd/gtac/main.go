// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/ezrec/gtac/compiler"
	"github.com/ezrec/gtac/emulator"
	"github.com/ezrec/gtac/translate"
)

// loadConfig reads the configuration file, if any, then applies overrides.
func loadConfig(path string, depth int, stack int) (cfg compiler.Config, err error) {
	cfg = compiler.DefaultConfig()

	if len(path) != 0 {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			err = errors.Wrap(err, "config")
			return
		}
		defer inf.Close()

		cfg, err = compiler.LoadConfig(inf)
		if err != nil {
			err = errors.Wrap(err, path)
			return
		}
	}

	if depth > 0 {
		cfg.BitDepth = depth
	}
	if stack > 0 {
		cfg.StackSize = stack
	}

	err = cfg.Validate()

	return
}

func main() {
	var compile string
	var config string
	var depth int
	var stack int
	var listing bool
	var run bool
	var scratch bool
	var limit int
	var verbose bool

	asm := &compiler.Assembler{}

	flag.StringVar(&compile, "c", "", ".gtac file to compile")
	flag.StringVar(&config, "config", "", "YAML configuration file")
	flag.IntVar(&depth, "depth", 0, "Register bit depth (overrides config)")
	flag.IntVar(&stack, "stack", 0, "Call stack size (overrides config)")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.BoolVar(&run, "r", false, "Run the program and dump its registers")
	flag.BoolVar(&scratch, "s", false, "Include scratch registers in the dump")
	flag.IntVar(&limit, "t", 10_000_000, "Tick limit when running (0 for none)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine NAME=VALUE equate", func(define string) error {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return errors.Errorf("%v: expected NAME=VALUE", define)
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		flag.Usage()
		atexit.Exit(2)
	}

	cfg, err := loadConfig(config, depth, stack)
	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}

	inf, err := os.Open(compile)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}
	atexit.Register(func() { inf.Close() })

	asm.Verbose = verbose
	asm.Config = cfg
	prog, err := asm.Parse(inf)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	for _, warning := range prog.Warnings {
		log.Printf("%v: %v", compile, translate.From("warning: %v", warning))
	}

	if listing {
		fmt.Println(prog.Listing())
	}

	if run {
		emu := emulator.NewEmulator(prog)
		emu.Verbose = verbose

		err = emu.Run(limit)
		fmt.Println(emu.Dump(scratch))
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		translate.Fprintf(os.Stdout, "%d ticks\n", emu.Ticks())
	}

	atexit.Exit(0)
}
