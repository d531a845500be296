// Package config loads the out-of-band settings spec.md §6 leaves
// unspecified ("configured out-of-band"): the debug log path, whether
// tracing is enabled, the tile-cache magnifier, and the default tile
// addressing mode. Grounded on RetroCodeRamen-Nitro-Core-DX's dependency
// on github.com/BurntSushi/toml for the file format.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the emulator's out-of-band settings. No CLI flag in
// cmd/dmgcore sets any of these fields; they come only from Default() and
// a loaded file.
type Config struct {
	LogPath       string `toml:"log_path"`
	DebugEnabled  bool   `toml:"debug_enabled"`
	TileMagnifier int    `toml:"tile_magnifier"`
	// AddressingMode names a BG tile lookup mode: "8000" or "8800"
	// (spec.md §4.6). It is loaded and saved only; no command reads it.
	AddressingMode string `toml:"addressing_mode"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		LogPath:        "dmgcore.log",
		DebugEnabled:   false,
		TileMagnifier:  1,
		AddressingMode: "8000",
	}
}

// Load reads a TOML file at path and merges it over Default(), so a file
// that sets only one field leaves the rest at their defaults. A missing
// file is not an error: it returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, every field included. It is used by the
// tests; no dmgcore command calls it.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
