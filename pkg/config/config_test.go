package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// spec.md §8 "Round-trips": a config saved to TOML and reloaded yields the
// same settings.
func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dmgcore.toml")
	want := Config{
		LogPath:        "trace.log",
		DebugEnabled:   true,
		TileMagnifier:  4,
		AddressingMode: "8800",
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), got)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), got)
}

func TestLoadSavedZeroValuesOverrideDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, Save(path, Config{TileMagnifier: 8}))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, got.TileMagnifier)
	// Save writes every field, zero values included, so the file is not
	// partial: its log_path = "" key overrides Default()'s value. Load keeps
	// a default only for a key the file does not contain at all.
	require.Equal(t, "", got.LogPath)
}
