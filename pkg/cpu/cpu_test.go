package cpu

import (
	"testing"

	"github.com/pixelwell/dmgcore/pkg/inst"
	"github.com/pixelwell/dmgcore/pkg/mem"
	"github.com/pixelwell/dmgcore/pkg/ppu"
	"github.com/stretchr/testify/require"
)

func newTestCPU() *CPU {
	b := mem.New(ppu.New())
	c := New(b)
	c.PC = 0x0150
	return c
}

func load(c *CPU, at uint16, bytes ...byte) {
	for i, b := range bytes {
		c.Mem.Write(at+uint16(i), b)
	}
}

func step(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, c.Step())
	}
}

// spec.md §8 scenario 1.
func TestScenarioAddCarryHalfCarry(t *testing.T) {
	c := newTestCPU()
	load(c, c.PC,
		0x3E, 0x3C, // LD A, 0x3C
		0x06, 0xC4, // LD B, 0xC4
		0x80, // ADD A, B
	)
	step(t, c, 3)
	require.EqualValues(t, 0x00, c.Regs.A)
	f := c.Regs.Flags()
	require.True(t, f.Z)
	require.False(t, f.N)
	require.True(t, f.H)
	require.True(t, f.C)
}

// spec.md §8 scenario 2.
func TestScenarioVRAMWriteDecodesTile(t *testing.T) {
	p := ppu.New()
	c := New(mem.New(p))
	c.PC = 0x0150
	load(c, c.PC,
		0x21, 0x00, 0x80, // LD HL, 0x8000
		0x3E, 0x55, // LD A, 0x55
		0x22,       // LD (HL+), A
		0x3E, 0xAA, // LD A, 0xAA
		0x77, // LD (HL), A
	)
	step(t, c, 5)
	require.EqualValues(t, 0x8001, c.Regs.HL())
	require.EqualValues(t, 0x55, c.Mem.Read(0x8000))
	require.EqualValues(t, 0xAA, c.Mem.Read(0x8001))
	want := [8]ppu.Shade{ppu.DarkGray, ppu.LightGray, ppu.DarkGray, ppu.LightGray, ppu.DarkGray, ppu.LightGray, ppu.DarkGray, ppu.LightGray}
	require.Equal(t, want, p.Tiles()[0][0])
}

// spec.md §8 scenario 3.
func TestScenarioPushPop(t *testing.T) {
	c := newTestCPU()
	load(c, c.PC,
		0x31, 0xFE, 0xFF, // LD SP, 0xFFFE
		0x01, 0x34, 0x12, // LD BC, 0x1234
		0xC5, // PUSH BC
		0xD1, // POP DE
	)
	step(t, c, 4)
	require.EqualValues(t, 0x1234, c.Regs.Get16(inst.PairDE))
	require.EqualValues(t, 0xFFFE, c.Regs.SP)
}

// spec.md §8 scenario 4.
func TestScenarioCompare(t *testing.T) {
	c := newTestCPU()
	load(c, c.PC,
		0x3E, 0x01, // LD A, 0x01
		0xFE, 0x02, // CP 0x02
	)
	step(t, c, 2)
	require.EqualValues(t, 0x01, c.Regs.A)
	f := c.Regs.Flags()
	require.False(t, f.Z)
	require.True(t, f.N)
	require.True(t, f.H)
	require.True(t, f.C)
}

// spec.md §8 scenario 6.
func TestScenarioJRLoop(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x0150
	load(c, 0x0150, 0x20, 0xFE) // JR NZ, -2
	c.Regs.SetFlags(Flags{Z: false})
	require.NoError(t, c.Step())
	require.EqualValues(t, 0x0150, c.PC)

	c.Regs.SetFlags(Flags{Z: true})
	require.NoError(t, c.Step())
	require.EqualValues(t, 0x0152, c.PC)
}

func TestHaltStopsAdvancing(t *testing.T) {
	c := newTestCPU()
	load(c, c.PC, 0x76) // HALT
	require.NoError(t, c.Step())
	require.True(t, c.Halted)
	pcAfter := c.PC
	require.NoError(t, c.Step())
	require.Equal(t, pcAfter, c.PC)
}

func TestDecodeFailureIsFatal(t *testing.T) {
	c := newTestCPU()
	load(c, c.PC, 0xD3) // documented gap
	require.Error(t, c.Step())
}

func TestTerminalConditionHalts(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x00FE
	c.SetROMSize(0x0100)
	load(c, c.PC, 0x00, 0x00) // two NOPs
	require.NoError(t, c.Step())
	require.False(t, c.Halted)
	require.NoError(t, c.Step())
	require.True(t, c.Halted)
}
