package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelwell/dmgcore/pkg/rom"
)

func newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header [rom]",
		Short: "Parse and print a cartridge header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("dmgcore: reading ROM: %w", err)
			}

			h, err := rom.Parse(image)
			if err != nil {
				return err
			}

			fmt.Printf("Title:    %s\n", h.Title)
			fmt.Printf("Size:     %d KiB\n", h.SizeKiB)
			fmt.Printf("Region:   %s\n", h.Region)
			fmt.Printf("Type:     0x%02X (%s)\n", h.CartridgeType, h.CartridgeTypeName)
			fmt.Printf("Version:  %d\n", h.Version)
			fmt.Printf("Checksum: 0x%02X (stored 0x%02X, valid=%v)\n", h.HeaderChecksum, h.StoredChecksum, h.ChecksumValid())
			fmt.Printf("Logo OK:  %v\n", h.ValidateLogo())
			return nil
		},
	}
}
