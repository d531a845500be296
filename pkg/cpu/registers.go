// Package cpu implements the Sharp LR35902 register file, flag-arithmetic
// kernel, and fetch/decode/execute interpreter loop.
//
// The register file is grounded on the teacher z80-optimizer's flat scalar
// State struct (pkg/cpu/state.go there) for the Go shape, and on
// original_source/src/registers.rs for the exact get/set semantics: pair
// reads/writes are big-endian composites over the scalar fields, never a
// separately stored 16-bit value.
package cpu

import "github.com/pixelwell/dmgcore/pkg/inst"

// Flag bit positions within F (spec.md §3).
const (
	FlagZ uint8 = 1 << 7
	FlagN uint8 = 1 << 6
	FlagH uint8 = 1 << 5
	FlagC uint8 = 1 << 4
)

// Flags is the per-flag struct view of F. Registers centralizes conversion
// between this view and the packed byte view the AF pair reads/writes
// (spec.md §9 "Flag register storage" design note).
type Flags struct {
	Z, N, H, C bool
}

// FlagsToByte packs Flags into F's layout: Z/N/H/C at bits 7/6/5/4, low
// nibble always zero.
func FlagsToByte(f Flags) uint8 {
	var b uint8
	if f.Z {
		b |= FlagZ
	}
	if f.N {
		b |= FlagN
	}
	if f.H {
		b |= FlagH
	}
	if f.C {
		b |= FlagC
	}
	return b
}

// ByteToFlags unpacks F's layout into Flags. The low nibble is ignored
// (never meaningfully set on real F values, but tolerated on read so a
// POP'd AF with garbage low bits doesn't panic).
func ByteToFlags(b uint8) Flags {
	return Flags{
		Z: b&FlagZ != 0,
		N: b&FlagN != 0,
		H: b&FlagH != 0,
		C: b&FlagC != 0,
	}
}

// Registers is the DMG register file: eight 8-bit scalars plus the 16-bit
// stack pointer. AF/BC/DE/HL are virtual big-endian pairings over the
// scalars (spec.md §3), not separately stored state.
type Registers struct {
	A, B, C, D, E, H, L, F uint8
	SP                     uint16
}

// NewRegisters returns a zeroed register file. The CPU sets PC to its DMG
// post-boot-ROM value itself (spec.md §2: PC=0x0100); SP
// defaults to 0 here and is expected to be set explicitly, since this core
// does not execute the boot ROM that would normally initialize it.
func NewRegisters() *Registers {
	return &Registers{}
}

// Flags returns the struct view of F.
func (r *Registers) Flags() Flags { return ByteToFlags(r.F) }

// SetFlags writes Flags back into F, masking the low nibble to zero.
func (r *Registers) SetFlags(f Flags) { r.F = FlagsToByte(f) }

// Get8 reads an 8-bit scalar register. reg is statically limited to
// A,B,C,D,E,H,L by its type (inst.Reg never names a 16-bit pair or an
// immediate tag), so the spec.md §4.1 "error on 16-bit or immediate tags"
// case is enforced at compile time rather than at runtime.
func (r *Registers) Get8(reg inst.Reg) uint8 {
	switch reg {
	case inst.RegA:
		return r.A
	case inst.RegB:
		return r.B
	case inst.RegC:
		return r.C
	case inst.RegD:
		return r.D
	case inst.RegE:
		return r.E
	case inst.RegH:
		return r.H
	case inst.RegL:
		return r.L
	default:
		panic("cpu: invalid 8-bit register")
	}
}

// Set8 writes an 8-bit scalar register. F itself has no Reg constant (it's
// never a direct instruction operand); use SetFlags/Flags for it.
func (r *Registers) Set8(reg inst.Reg, v uint8) {
	switch reg {
	case inst.RegA:
		r.A = v
	case inst.RegB:
		r.B = v
	case inst.RegC:
		r.C = v
	case inst.RegD:
		r.D = v
	case inst.RegE:
		r.E = v
	case inst.RegH:
		r.H = v
	case inst.RegL:
		r.L = v
	default:
		panic("cpu: invalid 8-bit register")
	}
}

// Get16 reads a virtual 16-bit pair. Reading a pair then writing it back is
// an identity operation except for AF, whose low byte is the flags byte
// (low nibble always zero).
func (r *Registers) Get16(p inst.Pair) uint16 {
	switch p {
	case inst.PairAF:
		return uint16(r.A)<<8 | uint16(r.F)
	case inst.PairBC:
		return uint16(r.B)<<8 | uint16(r.C)
	case inst.PairDE:
		return uint16(r.D)<<8 | uint16(r.E)
	case inst.PairHL:
		return uint16(r.H)<<8 | uint16(r.L)
	case inst.PairSP:
		return r.SP
	default:
		panic("cpu: invalid register pair")
	}
}

// Set16 writes both halves of a virtual 16-bit pair atomically. For AF, the
// low byte is reinterpreted through ByteToFlags/FlagsToByte so the low
// nibble is always masked to zero.
func (r *Registers) Set16(p inst.Pair, v uint16) {
	hi, lo := uint8(v>>8), uint8(v)
	switch p {
	case inst.PairAF:
		r.A = hi
		r.F = lo & 0xF0
	case inst.PairBC:
		r.B, r.C = hi, lo
	case inst.PairDE:
		r.D, r.E = hi, lo
	case inst.PairHL:
		r.H, r.L = hi, lo
	case inst.PairSP:
		r.SP = v
	default:
		panic("cpu: invalid register pair")
	}
}

// HL is a convenience accessor used throughout the interpreter and memory
// addressing paths.
func (r *Registers) HL() uint16 { return r.Get16(inst.PairHL) }

// SetHL is the convenience counterpart to HL.
func (r *Registers) SetHL(v uint16) { r.Set16(inst.PairHL, v) }
