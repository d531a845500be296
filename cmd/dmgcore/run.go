package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixelwell/dmgcore/pkg/config"
	"github.com/pixelwell/dmgcore/pkg/cpu"
	"github.com/pixelwell/dmgcore/pkg/logx"
	"github.com/pixelwell/dmgcore/pkg/mem"
	"github.com/pixelwell/dmgcore/pkg/ppu"
)

func newRunCmd() *cobra.Command {
	var maxSteps int
	var noStackGuard bool

	cmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Run a ROM image to completion or maxSteps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			p := ppu.New()
			busOpts := []mem.Option{mem.WithStackGuard(!noStackGuard)}
			bus := mem.New(p, busOpts...)
			image, err := loadROMFile(bus, args[0])
			if err != nil {
				return err
			}

			c := cpu.New(bus)
			c.SetROMSize(len(image))

			if cfg.DebugEnabled {
				logger, err := logx.Open(cfg.LogPath)
				if err != nil {
					return err
				}
				defer logger.Close()
				c.Trace = logger.Line
			}

			steps := 0
			for !c.Halted {
				if maxSteps > 0 && steps >= maxSteps {
					break
				}
				if err := c.Step(); err != nil {
					return err
				}
				steps++
			}

			fmt.Printf("ran %d steps, PC=0x%04X, halted=%v\n", steps, c.PC, c.Halted)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Stop after this many instructions (0 = unbounded)")
	cmd.Flags().BoolVar(&noStackGuard, "no-stack-guard", false, "Disable the POP-when-empty stack guard")
	return cmd
}
