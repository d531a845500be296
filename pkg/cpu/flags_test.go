package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The 0x3C/0xC4 ADD scenario from spec.md §8: LD A,0x3C; LD B,0xC4; ADD A,B
// must yield A=0, Z=1, N=0, H=1, C=1.
func TestAdd8TestableProperty(t *testing.T) {
	r := NewRegisters()
	result := Add8(r, 0x3C, 0xC4)
	require.EqualValues(t, 0x00, result)
	f := r.Flags()
	require.True(t, f.Z)
	require.False(t, f.N)
	require.True(t, f.H)
	require.True(t, f.C)
}

func TestAdc8FoldsBothCarries(t *testing.T) {
	r := NewRegisters()
	r.SetFlags(Flags{C: true})
	// 0xFF + 0x00 + carry-in(1) must carry out, not silently drop it.
	result := Adc8(r, 0xFF, 0x00)
	require.EqualValues(t, 0x00, result)
	require.True(t, r.Flags().C)
	require.True(t, r.Flags().Z)
}

func TestSbc8BorrowsThroughCarry(t *testing.T) {
	r := NewRegisters()
	r.SetFlags(Flags{C: true})
	result := Sbc8(r, 0x00, 0x00)
	require.EqualValues(t, 0xFF, result)
	require.True(t, r.Flags().C)
	require.True(t, r.Flags().H)
}

func TestIncDecPreserveCarry(t *testing.T) {
	r := NewRegisters()
	r.SetFlags(Flags{C: true})
	Inc8(r, 0x0F)
	require.True(t, r.Flags().C)
	require.True(t, r.Flags().H)

	Dec8(r, 0x10)
	require.True(t, r.Flags().C)
	require.True(t, r.Flags().H)
}

func TestTestBitPreservesCarry(t *testing.T) {
	r := NewRegisters()
	r.SetFlags(Flags{C: true})
	TestBit(r, 0x80, 7)
	require.False(t, r.Flags().Z)
	require.True(t, r.Flags().H)
	require.True(t, r.Flags().C)

	TestBit(r, 0x00, 7)
	require.True(t, r.Flags().Z)
}

func TestRotatesCarryOut(t *testing.T) {
	result, carry := rotateLeftCarry(0x80)
	require.EqualValues(t, 0x01, result)
	require.True(t, carry)

	result, carry = shiftRightArithmetic(0x81)
	require.EqualValues(t, 0xC0, result)
	require.True(t, carry)

	require.EqualValues(t, 0xAB, swapNibbles(0xBA))
}
