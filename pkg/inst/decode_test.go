package inst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// documentedGaps lists the base-table opcodes with no DMG meaning: the
// 0xCB prefix escape itself, and the Z80 IN/OUT/EX/IX-IY opcodes the DMG
// never implements. See spec.md §8 ("except documented gaps").
var documentedGaps = map[byte]bool{
	0xCB: true,
	0xD3: true, 0xDB: true, 0xDD: true,
	0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
	0xF4: true, 0xFC: true, 0xFD: true,
}

func TestDecodeTotality(t *testing.T) {
	for op := 0; op < 256; op++ {
		opcode := byte(op)
		_, ok := Decode(opcode, false)
		if documentedGaps[opcode] {
			require.Falsef(t, ok, "opcode 0x%02X should be a documented gap", opcode)
		} else {
			require.Truef(t, ok, "opcode 0x%02X should decode", opcode)
		}

		_, ok = Decode(opcode, true)
		require.Truef(t, ok, "CB-prefixed opcode 0x%02X should decode", opcode)
	}
}

func TestHalt0x76IsNotLDHLHL(t *testing.T) {
	in, ok := Decode(0x76, false)
	require.True(t, ok)
	require.Equal(t, OpHALT, in.Op)
}

func TestCBTableGrouping(t *testing.T) {
	// 0x00-0x07 is RLC over B,C,D,E,H,L,(HL),A
	in, ok := Decode(0x00, true)
	require.True(t, ok)
	require.Equal(t, OpRLC, in.Op)
	require.Equal(t, RegB, in.Dst.Reg)

	in, ok = Decode(0x07, true)
	require.True(t, ok)
	require.Equal(t, OpRLC, in.Op)
	require.Equal(t, RegA, in.Dst.Reg)

	// BIT 7,A is 0x7F
	in, ok = Decode(0x7F, true)
	require.True(t, ok)
	require.Equal(t, OpBIT, in.Op)
	require.EqualValues(t, 7, in.Bit)
	require.Equal(t, RegA, in.Dst.Reg)

	// SET 0,(HL) operates on memory, never the HL pair itself (REDESIGN FLAG).
	in, ok = Decode(0xC6, true)
	require.True(t, ok)
	require.Equal(t, OpSET, in.Op)
	require.Equal(t, OperandIndirectHL, in.Dst.Kind)
}

func TestBaseTableSamples(t *testing.T) {
	in, ok := Decode(0x00, false)
	require.True(t, ok)
	require.Equal(t, OpNOP, in.Op)

	in, ok = Decode(0x21, false)
	require.True(t, ok)
	require.Equal(t, OpLD, in.Op)
	require.Equal(t, PairHL, in.Pair)
	require.Equal(t, OperandImm16, in.Src.Kind)

	// 0x55 is LD D, L (not a B/HL mixup, see spec.md §9)
	in, ok = Decode(0x55, false)
	require.True(t, ok)
	require.Equal(t, OpLD, in.Op)
	require.Equal(t, RegD, in.Dst.Reg)
	require.Equal(t, RegL, in.Src.Reg)

	in, ok = Decode(0xC3, false)
	require.True(t, ok)
	require.Equal(t, OpJP, in.Op)
	require.Equal(t, CondAlways, in.Cond)
}
