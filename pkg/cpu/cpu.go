package cpu

import (
	"fmt"

	"github.com/pixelwell/dmgcore/pkg/inst"
)

// Memory is the subset of mem.Bus the interpreter depends on: addressed
// byte access plus the two stack primitives from spec.md §4.4 (PUSH/POP).
// Defined locally so pkg/cpu never imports pkg/mem; *mem.Bus satisfies this
// interface structurally, the same seam style as pkg/host's Loader and
// TileSource.
type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
	Push(sp *uint16, v uint16)
	Pop(sp *uint16) uint16
}

// CPU is the fetch/decode/execute interpreter (spec.md §4.4), grounded on
// original_source/src/cpu.rs's step/execute split.
type CPU struct {
	Regs    *Registers
	PC      uint16
	Mem     Memory
	Halted  bool
	romSize int

	// Trace, if non-nil, receives two lines per executed Step call: first
	// the "[PC] Instruction:opcode" line, then a register
	// snapshot line (spec.md §6). pkg/logx supplies this as a closure over
	// its file writer; cpu never imports logx directly.
	Trace func(line string)
}

// New returns a CPU with PC set to the DMG's post-boot-ROM entry point
// (0x0100). SP is left at zero; callers that care set it explicitly, since
// this core never executes the boot ROM that would normally initialize it.
func New(mem Memory) *CPU {
	return &CPU{Regs: NewRegisters(), Mem: mem, PC: 0x0100}
}

// SetROMSize records the loaded ROM's byte count for the terminal
// condition (spec.md §4.4 "Terminal condition").
func (c *CPU) SetROMSize(n int) { c.romSize = n }

// Resume clears Halted. The core never calls this itself (spec.md §9
// "Halt wake-up" is an acknowledged gap); it exists as the hook a future
// interrupt-controller collaborator would call on an unmasked interrupt.
func (c *CPU) Resume() { c.Halted = false }

// Step advances the machine by one instruction. It is a no-op once Halted
// is set; the interrupt wake-up path that would clear it is an
// acknowledged gap (spec.md §9 "Halt wake-up").
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}

	pc := c.PC
	first := c.Mem.Read(pc)
	prefixed := first == 0xCB
	opcodeByte := first
	if prefixed {
		opcodeByte = c.Mem.Read(pc + 1)
	}

	in, ok := inst.Decode(opcodeByte, prefixed)
	if !ok {
		return fmt.Errorf("cpu: decode failure at 0x%04X: opcode 0x%02X (prefixed=%v)", pc, opcodeByte, prefixed)
	}

	immBase := pc + 1
	if prefixed {
		immBase = pc + 2
	}
	immLen := in.ByteLen() - 1
	if prefixed {
		immLen = 0
	}

	var imm8 uint8
	var imm16 uint16
	switch immLen {
	case 1:
		imm8 = c.Mem.Read(immBase)
	case 2:
		lo := c.Mem.Read(immBase)
		hi := c.Mem.Read(immBase + 1)
		imm8 = lo
		imm16 = uint16(hi)<<8 | uint16(lo)
	}

	if c.Trace != nil {
		c.emitTrace(pc, prefixed, opcodeByte, imm8, imm16)
	}

	defaultAdvance := immBase + uint16(immLen)
	next, err := c.dispatch(in, pc, defaultAdvance, imm8, imm16)
	if err != nil {
		return err
	}
	c.PC = next

	if c.romSize > 0 && int(c.PC) >= c.romSize {
		c.Halted = true
	}
	return nil
}

func (c *CPU) emitTrace(pc uint16, prefixed bool, opcodeByte byte, imm8 uint8, imm16 uint16) {
	prefixTag := ""
	if prefixed {
		prefixTag = "(0xCB) "
	}
	_ = imm8
	_ = imm16
	c.Trace(fmt.Sprintf("[0x%04X] %sInstruction:0x%02X", pc, prefixTag, opcodeByte))
	c.Trace(fmt.Sprintf(
		"A:%08b F:%08b B:%08b C:%08b D:%08b E:%08b H:%08b L:%08b SP:%016b BC:%016b DE:%016b HL:%016b AF:%016b",
		c.Regs.A, c.Regs.F, c.Regs.B, c.Regs.C, c.Regs.D, c.Regs.E, c.Regs.H, c.Regs.L,
		c.Regs.SP, c.Regs.Get16(inst.PairBC), c.Regs.Get16(inst.PairDE), c.Regs.HL(), c.Regs.Get16(inst.PairAF),
	))
}

func (c *CPU) condTrue(cond inst.Cond) bool {
	f := c.Regs.Flags()
	switch cond {
	case inst.CondAlways:
		return true
	case inst.CondZ:
		return f.Z
	case inst.CondNZ:
		return !f.Z
	case inst.CondC:
		return f.C
	case inst.CondNC:
		return !f.C
	default:
		return false
	}
}

// readOperand8 resolves an 8-bit value per spec.md §3's operand matrix.
// HLI/HLD addressing performs the memory access first, then mutates HL, as
// required by spec.md §4.4's LD d,s contract.
func (c *CPU) readOperand8(o inst.Operand, imm8 uint8, imm16 uint16) uint8 {
	switch o.Kind {
	case inst.OperandReg:
		return c.Regs.Get8(o.Reg)
	case inst.OperandImm8, inst.OperandImm8Signed, inst.OperandIndirectA8:
		if o.Kind == inst.OperandIndirectA8 {
			return c.Mem.Read(0xFF00 + uint16(imm8))
		}
		return imm8
	case inst.OperandIndirectHL:
		return c.Mem.Read(c.Regs.HL())
	case inst.OperandIndirectHLI:
		addr := c.Regs.HL()
		v := c.Mem.Read(addr)
		c.Regs.SetHL(addr + 1)
		return v
	case inst.OperandIndirectHLD:
		addr := c.Regs.HL()
		v := c.Mem.Read(addr)
		c.Regs.SetHL(addr - 1)
		return v
	case inst.OperandIndirectBC:
		return c.Mem.Read(c.Regs.Get16(inst.PairBC))
	case inst.OperandIndirectDE:
		return c.Mem.Read(c.Regs.Get16(inst.PairDE))
	case inst.OperandIndirectC:
		return c.Mem.Read(0xFF00 + uint16(c.Regs.C))
	case inst.OperandIndirectA16:
		return c.Mem.Read(imm16)
	default:
		panic("cpu: invalid 8-bit operand kind")
	}
}

// writeOperand8 is the write-side counterpart to readOperand8.
func (c *CPU) writeOperand8(o inst.Operand, v uint8, imm8 uint8, imm16 uint16) {
	switch o.Kind {
	case inst.OperandReg:
		c.Regs.Set8(o.Reg, v)
	case inst.OperandIndirectHL:
		c.Mem.Write(c.Regs.HL(), v)
	case inst.OperandIndirectHLI:
		addr := c.Regs.HL()
		c.Mem.Write(addr, v)
		c.Regs.SetHL(addr + 1)
	case inst.OperandIndirectHLD:
		addr := c.Regs.HL()
		c.Mem.Write(addr, v)
		c.Regs.SetHL(addr - 1)
	case inst.OperandIndirectBC:
		c.Mem.Write(c.Regs.Get16(inst.PairBC), v)
	case inst.OperandIndirectDE:
		c.Mem.Write(c.Regs.Get16(inst.PairDE), v)
	case inst.OperandIndirectC:
		c.Mem.Write(0xFF00+uint16(c.Regs.C), v)
	case inst.OperandIndirectA8:
		c.Mem.Write(0xFF00+uint16(imm8), v)
	case inst.OperandIndirectA16:
		c.Mem.Write(imm16, v)
	default:
		panic("cpu: invalid 8-bit operand kind")
	}
}

// shiftResult applies one of the rotate/shift/swap primitives named by op
// to v, returning the result and the carry-out (false for SWAP, which
// clears C).
func shiftResult(op inst.Op, v uint8, carryIn bool) (uint8, bool) {
	switch op {
	case inst.OpRLC:
		return rotateLeftCarry(v)
	case inst.OpRRC:
		return rotateRightCarry(v)
	case inst.OpRL:
		return rotateLeft(v, carryIn)
	case inst.OpRR:
		return rotateRight(v, carryIn)
	case inst.OpSLA:
		return shiftLeftArithmetic(v)
	case inst.OpSRA:
		return shiftRightArithmetic(v)
	case inst.OpSRL:
		return shiftRightLogical(v)
	case inst.OpSWAP:
		return swapNibbles(v), false
	default:
		panic("cpu: invalid shift op")
	}
}

// addSPDisplacement implements the ADD SP,r8 / LD HL,SP+r8 flag quirk: the
// signed displacement is added to the full 16-bit SP, but H/C are computed
// as if it were an unsigned 8-bit add against SP's low byte — real DMG
// hardware behavior, not a spec invariant derivable from 4.2's 16-bit add.
func addSPDisplacement(r *Registers, base uint16, imm8 uint8) uint16 {
	disp := int32(int8(imm8))
	result := uint16(int32(base) + disp)
	h := (base&0xF)+(uint16(imm8)&0xF) > 0xF
	carry := (base&0xFF)+uint16(imm8) > 0xFF
	r.SetFlags(Flags{H: h, C: carry})
	return result
}

// dispatch executes a decoded instruction and returns the next PC, per the
// taken/non-taken branch rules in spec.md §4.4.
func (c *CPU) dispatch(in inst.Instruction, pc, defaultAdvance uint16, imm8 uint8, imm16 uint16) (uint16, error) {
	r := c.Regs
	switch in.Op {
	case inst.OpNOP:
		return defaultAdvance, nil

	case inst.OpHALT:
		c.Halted = true
		return pc, nil

	case inst.OpSTOP:
		return pc + 2, nil

	case inst.OpDI, inst.OpEI, inst.OpDAA:
		// No interrupt controller exists (DI/EI); DAA is a declared
		// non-goal (spec.md §1). Both decode successfully and execute as
		// no-ops so decoder totality holds without faking semantics.
		return defaultAdvance, nil

	case inst.OpCCF:
		f := r.Flags()
		f.N, f.H, f.C = false, false, !f.C
		r.SetFlags(f)
		return defaultAdvance, nil

	case inst.OpSCF:
		f := r.Flags()
		f.N, f.H, f.C = false, false, true
		r.SetFlags(f)
		return defaultAdvance, nil

	case inst.OpCPL:
		r.A = r.A ^ 0xFF
		f := r.Flags()
		f.N, f.H = true, true
		r.SetFlags(f)
		return defaultAdvance, nil

	case inst.OpRLCA, inst.OpRRCA, inst.OpRLA, inst.OpRRA:
		var result uint8
		var carry bool
		switch in.Op {
		case inst.OpRLCA:
			result, carry = rotateLeftCarry(r.A)
		case inst.OpRRCA:
			result, carry = rotateRightCarry(r.A)
		case inst.OpRLA:
			result, carry = rotateLeft(r.A, r.Flags().C)
		case inst.OpRRA:
			result, carry = rotateRight(r.A, r.Flags().C)
		}
		r.A = result
		r.SetFlags(Flags{C: carry}) // Z forced to 0 (DMG A-rotate semantics)
		return defaultAdvance, nil

	case inst.OpADD:
		r.A = Add8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpADC:
		r.A = Adc8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpSUB:
		r.A = Sub8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpSBC:
		r.A = Sbc8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpAND:
		r.A = And8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpOR:
		r.A = Or8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpXOR:
		r.A = Xor8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil
	case inst.OpCP:
		Sub8(r, r.A, c.readOperand8(in.Src, imm8, imm16))
		return defaultAdvance, nil

	case inst.OpINC:
		v := c.readOperand8(in.Dst, imm8, imm16)
		c.writeOperand8(in.Dst, Inc8(r, v), imm8, imm16)
		return defaultAdvance, nil
	case inst.OpDEC:
		v := c.readOperand8(in.Dst, imm8, imm16)
		c.writeOperand8(in.Dst, Dec8(r, v), imm8, imm16)
		return defaultAdvance, nil

	case inst.OpADDHL:
		r.SetHL(Add16(r, r.HL(), r.Get16(in.Pair)))
		return defaultAdvance, nil
	case inst.OpADDSP:
		r.SP = addSPDisplacement(r, r.SP, imm8)
		return defaultAdvance, nil
	case inst.OpLDHLSP:
		r.SetHL(addSPDisplacement(r, r.SP, imm8))
		return defaultAdvance, nil
	case inst.OpLDSPHL:
		r.SP = r.HL()
		return defaultAdvance, nil
	case inst.OpINC16:
		r.Set16(in.Pair, r.Get16(in.Pair)+1)
		return defaultAdvance, nil
	case inst.OpDEC16:
		r.Set16(in.Pair, r.Get16(in.Pair)-1)
		return defaultAdvance, nil

	case inst.OpRLC, inst.OpRRC, inst.OpRL, inst.OpRR, inst.OpSLA, inst.OpSRA, inst.OpSRL, inst.OpSWAP:
		v := c.readOperand8(in.Dst, imm8, imm16)
		result, carry := shiftResult(in.Op, v, r.Flags().C)
		r.SetFlags(Flags{Z: result == 0, C: carry})
		c.writeOperand8(in.Dst, result, imm8, imm16)
		return defaultAdvance, nil

	case inst.OpBIT:
		TestBit(r, c.readOperand8(in.Dst, imm8, imm16), in.Bit)
		return defaultAdvance, nil
	case inst.OpRES:
		v := c.readOperand8(in.Dst, imm8, imm16)
		c.writeOperand8(in.Dst, v&^(1<<in.Bit), imm8, imm16)
		return defaultAdvance, nil
	case inst.OpSET:
		v := c.readOperand8(in.Dst, imm8, imm16)
		c.writeOperand8(in.Dst, v|(1<<in.Bit), imm8, imm16)
		return defaultAdvance, nil

	case inst.OpLD:
		switch {
		case in.Dst.Kind == inst.OperandPair:
			r.Set16(in.Dst.Pair, imm16)
		case in.Dst.Kind == inst.OperandIndirectA16 && in.Src.Kind == inst.OperandNone:
			sp := r.Get16(in.Pair)
			c.Mem.Write(imm16, byte(sp))
			c.Mem.Write(imm16+1, byte(sp>>8))
		default:
			v := c.readOperand8(in.Src, imm8, imm16)
			c.writeOperand8(in.Dst, v, imm8, imm16)
		}
		return defaultAdvance, nil

	case inst.OpLDH:
		v := c.readOperand8(in.Src, imm8, imm16)
		c.writeOperand8(in.Dst, v, imm8, imm16)
		return defaultAdvance, nil

	case inst.OpPUSH:
		c.Mem.Push(&r.SP, r.Get16(in.Pair))
		return defaultAdvance, nil
	case inst.OpPOP:
		r.Set16(in.Pair, c.Mem.Pop(&r.SP))
		return defaultAdvance, nil

	case inst.OpJP:
		if c.condTrue(in.Cond) {
			return imm16, nil
		}
		return defaultAdvance, nil
	case inst.OpJPHL:
		return r.HL(), nil
	case inst.OpJR:
		if c.condTrue(in.Cond) {
			return uint16(int32(defaultAdvance) + int32(int8(imm8))), nil
		}
		return defaultAdvance, nil
	case inst.OpCALL:
		if c.condTrue(in.Cond) {
			c.Mem.Push(&r.SP, defaultAdvance)
			return imm16, nil
		}
		return defaultAdvance, nil
	case inst.OpRET:
		if c.condTrue(in.Cond) {
			return c.Mem.Pop(&r.SP), nil
		}
		return defaultAdvance, nil
	case inst.OpRETI:
		return c.Mem.Pop(&r.SP), nil
	case inst.OpRST:
		c.Mem.Push(&r.SP, defaultAdvance)
		return in.Vector, nil

	default:
		return 0, fmt.Errorf("cpu: unimplemented op %v at 0x%04X", in.Op, pc)
	}
}
