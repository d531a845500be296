package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelwell/dmgcore/pkg/config"
	"github.com/pixelwell/dmgcore/pkg/cpu"
	"github.com/pixelwell/dmgcore/pkg/mem"
	"github.com/pixelwell/dmgcore/pkg/ppu"
	"github.com/pixelwell/dmgcore/pkg/present"
)

func newTilesCmd() *cobra.Command {
	var maxSteps int
	var output string
	var ansi bool

	cmd := &cobra.Command{
		Use:   "tiles [rom]",
		Short: "Run a ROM and dump its decoded tile cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			p := ppu.New()
			bus := mem.New(p)
			image, err := loadROMFile(bus, args[0])
			if err != nil {
				return err
			}

			c := cpu.New(bus)
			c.SetROMSize(len(image))
			for steps := 0; !c.Halted && (maxSteps == 0 || steps < maxSteps); steps++ {
				if err := c.Step(); err != nil {
					return err
				}
			}

			if ansi {
				fmt.Print(present.RenderANSI(p))
				return nil
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			return present.RenderPNG(p, f, cfg.TileMagnifier)
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 100000, "Stop after this many instructions")
	cmd.Flags().StringVar(&output, "output", "tiles.png", "PNG output path")
	cmd.Flags().BoolVar(&ansi, "ansi", false, "Print the composed screen as ANSI blocks instead of a PNG")
	return cmd
}
