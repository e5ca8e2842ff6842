// Command gbemu runs a Game Boy ROM, either in a terminal window or, with
// --headless, for a fixed number of frames with no display at all (useful
// for running test ROMs in CI).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/sdslabs/gbemu-sub000/gameboy"
	"github.com/sdslabs/gbemu-sub000/gameboy/input"
	"github.com/sdslabs/gbemu-sub000/gameboy/render"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app := cli.NewApp()
	app.Name = "gbemu"
	app.Usage = "run a Game Boy ROM"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "path to the cartridge ROM image"},
		cli.StringFlag{Name: "boot-rom", Usage: "path to an optional boot ROM image"},
		cli.BoolFlag{Name: "headless", Usage: "run without a terminal display"},
		cli.IntFlag{Name: "frames", Usage: "stop after this many frames (0 = unbounded in the terminal, 60 when headless)"},
	}
	app.Action = func(ctx *cli.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("gbemu: fatal: %v", r)
			}
		}()
		return run(ctx, logger)
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("gbemu exited with an error", "err", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context, logger *slog.Logger) error {
	romPath := ctx.String("rom")
	if romPath == "" {
		return fmt.Errorf("gbemu: --rom is required")
	}

	romData, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("gbemu: reading ROM: %w", err)
	}

	var bootROM []byte
	if bootPath := ctx.String("boot-rom"); bootPath != "" {
		bootROM, err = os.ReadFile(bootPath)
		if err != nil {
			return fmt.Errorf("gbemu: reading boot ROM: %w", err)
		}
	}

	emu, err := gameboy.New(romData, bootROM, logger)
	if err != nil {
		return fmt.Errorf("gbemu: %w", err)
	}

	emu.SetSerialSink(func(b uint8) {
		logger.Debug("serial byte shifted out", "byte", fmt.Sprintf("%#02x", b))
	})

	frames := ctx.Int("frames")

	if ctx.Bool("headless") {
		return runHeadless(emu, frames)
	}
	return runTerminal(emu, frames)
}

func runHeadless(emu *gameboy.Emulator, frames int) error {
	if frames <= 0 {
		frames = 60
	}
	for i := 0; i < frames; i++ {
		emu.RunFrame()
	}
	return nil
}

func runTerminal(emu *gameboy.Emulator, frames int) error {
	manager := input.NewManager()
	emu.SetInputSnapshot(manager.Snapshot)

	term, err := render.NewTerminal(emu, manager)
	if err != nil {
		return fmt.Errorf("gbemu: %w", err)
	}
	defer term.Close()

	term.Run(frames)
	return nil
}
