// Package host defines the minimal seams between the emulator core and its
// external collaborators (spec.md §4.8): a ROM loader and a tile-cache
// reader. The core depends only on these interfaces, never on pkg/mem or
// pkg/ppu's concrete types, so a presenter or loader can be swapped without
// touching cpu/mem/ppu.
package host

import "github.com/pixelwell/dmgcore/pkg/ppu"

// Loader copies a ROM image into bus-backed memory at offset 0.
type Loader interface {
	LoadROM(image []byte) error
}

// TileSource is read by a presenter to obtain the current decoded tile
// cache. Implementations must tolerate being read from a different
// goroutine than the one mutating VRAM (spec.md §5): PPU.Tiles returns a
// snapshot copy, not a live view.
type TileSource interface {
	Tiles() [ppu.TileCount]ppu.Tile
	Tile(index uint8, mode ppu.AddressingMode) ppu.Tile
}
