package mem

import (
	"testing"

	"github.com/pixelwell/dmgcore/pkg/ppu"
	"github.com/stretchr/testify/require"
)

func TestReadWriteDelegatesVRAM(t *testing.T) {
	p := ppu.New()
	b := New(p)
	b.Write(0x8000, 0x55)
	require.EqualValues(t, 0x55, b.Read(0x8000))
	require.EqualValues(t, 0x55, p.ReadByte(0))
}

func TestReadWriteFlatOutsideVRAM(t *testing.T) {
	b := New(ppu.New())
	b.Write(0xC000, 0x42)
	require.EqualValues(t, 0x42, b.Read(0xC000))
}

// spec.md §8 scenario 3: PUSH BC; POP DE round-trips through the stack.
func TestPushPopRoundTrip(t *testing.T) {
	b := New(ppu.New())
	sp := uint16(0xFFFE)
	b.Push(&sp, 0x1234)
	require.EqualValues(t, 0xFFFC, sp)
	got := b.Pop(&sp)
	require.EqualValues(t, 0x1234, got)
	require.EqualValues(t, 0xFFFE, sp)
}

func TestPopGuardReturnsZeroWhenEmpty(t *testing.T) {
	b := New(ppu.New())
	sp := uint16(0xFFFE)
	require.EqualValues(t, 0, b.Pop(&sp))
	require.EqualValues(t, 0xFFFE, sp)
}

func TestPopGuardDisabledWraps(t *testing.T) {
	b := New(ppu.New(), WithStackGuard(false))
	sp := uint16(0xFFFE)
	got := b.Pop(&sp)
	require.EqualValues(t, uint16(b.Read(0xFFFE))|uint16(b.Read(0xFFFF))<<8, got)
	require.EqualValues(t, 0x0000, sp)
}

func TestLoadROMCopiesFromOffsetZero(t *testing.T) {
	b := New(ppu.New())
	image := []byte{0xAA, 0xBB, 0xCC}
	require.NoError(t, b.LoadROM(image))
	require.EqualValues(t, 0xAA, b.Read(0))
	require.EqualValues(t, 0xCC, b.Read(2))
}
