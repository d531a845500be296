package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// spec.md §8 scenario 2: writing 0x55 then 0xAA to the first tile row
// produces alternating DarkGray/LightGray pixels under the manual's
// convention.
func TestWriteByteDecodesRow(t *testing.T) {
	p := New()
	p.WriteByte(0, 0x55)
	p.WriteByte(1, 0xAA)

	tile := p.Tiles()[0]
	want := [8]Shade{DarkGray, LightGray, DarkGray, LightGray, DarkGray, LightGray, DarkGray, LightGray}
	require.Equal(t, want, tile[0])
}

func TestWriteByteMapRegionDoesNotDecode(t *testing.T) {
	p := New()
	before := p.Tiles()
	p.WriteByte(TileDataEnd, 0xFF)
	require.Equal(t, before, p.Tiles())
	require.EqualValues(t, 0xFF, p.TileMapByte(TileDataEnd))
}

func TestTileCacheCoherenceAgainstDecodeAll(t *testing.T) {
	p := New()
	pattern := []byte{0x3C, 0x7E, 0x42, 0x42, 0x42, 0x42, 0x7E, 0x00}
	for i, b := range pattern {
		p.WriteByte(uint16(i), b)
	}
	require.Equal(t, p.DecodeAll(), p.Tiles())
}

func TestTileAddressingModes(t *testing.T) {
	p := New()
	// Tile slot 200 in 0x8000 mode is the same storage slot as signed
	// index -56 in 0x8800 mode (256 + (-56) == 200).
	p.WriteByte(200*16, 0x3C)
	p.WriteByte(200*16+1, 0x42)

	a := p.Tile(200, Mode8000)
	b := p.Tile(uint8(int8(-56)), Mode8800)
	require.Equal(t, a, b)
}
