package main

import (
	"fmt"
	"os"

	"github.com/pixelwell/dmgcore/pkg/host"
)

// loadROMFile reads path and hands it to l, typed as host.Loader so this
// helper works against any Loader-shaped target, not just *mem.Bus.
func loadROMFile(l host.Loader, path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dmgcore: reading ROM: %w", err)
	}
	if err := l.LoadROM(image); err != nil {
		return nil, err
	}
	return image, nil
}
