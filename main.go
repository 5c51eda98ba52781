// Package main implements a CHIP-8 virtual machine with an SDL2 frontend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/c8vm/c8vm/chip8"
	"github.com/c8vm/c8vm/platform"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	ips uint

	shift     string
	jump      string
	loadStore string

	debug bool
	quiet bool
}

func main() {
	options, programFile := readArguments()
	logger := newLogger(options)

	if !options.quiet {
		printBanner()
	}

	if err := run(logger, options, programFile); err != nil {
		logger.Fatal("emulation failed", log.Err(err))
	}
}

func readArguments() (optionFlags, string) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.UintVar(&options.ips, "ips", chip8.DefaultIPS, "instructions to execute per second")
	flags.StringVar(&options.shift, "shift", "modern", "8xy6/8xyE variant: legacy shifts Vy into Vx, modern shifts Vx in place")
	flags.StringVar(&options.jump, "jump", "legacy", "Bnnn variant: legacy offsets by V0, modern by Vx")
	flags.StringVar(&options.loadStore, "loadstore", "modern", "Fx55/Fx65 variant: legacy advances I, modern leaves it untouched")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: c8vm [options] <program file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	return options, args[0]
}

func newLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner() {
	fmt.Println("[--------------------------------]")
	fmt.Println("[ c8vm - CHIP-8 virtual machine  ]")
	fmt.Printf("[--------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func quirksFromOptions(options optionFlags) (chip8.Quirks, error) {
	var quirks chip8.Quirks
	var err error

	if quirks.Shift, err = chip8.ParseVariant(options.shift); err != nil {
		return quirks, fmt.Errorf("shift: %w", err)
	}
	if quirks.Jump, err = chip8.ParseVariant(options.jump); err != nil {
		return quirks, fmt.Errorf("jump: %w", err)
	}
	if quirks.LoadStore, err = chip8.ParseVariant(options.loadStore); err != nil {
		return quirks, fmt.Errorf("loadstore: %w", err)
	}
	return quirks, nil
}

func run(logger *log.Logger, options optionFlags, programFile string) error {
	ctx := app.Context()

	program, err := os.ReadFile(programFile)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	quirks, err := quirksFromOptions(options)
	if err != nil {
		return err
	}

	plat, err := platform.New()
	if err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer plat.Destroy()

	beeper, err := platform.NewBeeper()
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	defer beeper.Close()

	cfg := chip8.DefaultConfig()
	if options.ips > 0 {
		cfg.IPS = options.ips
	}
	cfg.Quirks = quirks

	vm, err := chip8.New(program, plat, beeper, cfg)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	logger.Info("running",
		log.String("program", programFile),
		log.Int("bytes", len(program)),
		log.Int("ips", int(cfg.IPS)),
		log.Stringer("shift", quirks.Shift),
		log.Stringer("jump", quirks.Jump),
		log.Stringer("loadstore", quirks.LoadStore))

	return loop(ctx, logger, vm, plat, cfg.IPS)
}

// loop paces the machine at the configured instruction rate: refresh the
// keypad snapshot, run one tick, sleep. The machine never paces itself.
func loop(ctx context.Context, logger *log.Logger, vm *chip8.Machine, plat *platform.Platform, ips uint) error {
	tick := time.NewTicker(time.Second / time.Duration(ips))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				logger.Info("interrupted")
				return nil
			}
			return ctx.Err()
		case <-tick.C:
		}

		if plat.ProcessInput() {
			logger.Debug("quit requested")
			return nil
		}
		vm.SetKeys(plat.Keys())

		if err := vm.Tick(); err != nil {
			return fmt.Errorf("executing program: %w", err)
		}
	}
}
