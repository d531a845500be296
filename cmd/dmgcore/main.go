// Command dmgcore is the reference driver around pkg/cpu, pkg/mem,
// pkg/ppu and pkg/rom, following cmd/z80opt/main.go's single-rootCmd,
// one-subcommand-per-concern layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "dmgcore",
		Short: "Game Boy (DMG) CPU/PPU/ROM-header core driver",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (optional)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newHeaderCmd())
	rootCmd.AddCommand(newTilesCmd())
	rootCmd.AddCommand(newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
