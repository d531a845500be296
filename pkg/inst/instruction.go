// Package inst models the Sharp LR35902 instruction set: a decoder from raw
// opcode bytes to a tagged Instruction value, and the operand vocabulary
// that value is built from.
//
// We use an operand-parameterized Instruction rather than one flat enum per
// opcode byte (the teacher z80-optimizer's OpCode approach) because the DMG
// decoder needs to express "ADD A, r" and "BIT n, r" generically over a
// register operand, not as hundreds of distinct named constants.
package inst

// Reg identifies one of the seven 8-bit scalar operand registers.
// F is never a direct instruction operand (it's only reachable via AF).
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

func (r Reg) String() string {
	return [...]string{"A", "B", "C", "D", "E", "H", "L"}[r]
}

// Pair identifies a 16-bit register pair operand.
type Pair uint8

const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

func (p Pair) String() string {
	return [...]string{"BC", "DE", "HL", "SP", "AF"}[p]
}

// Cond is a jump/call/return condition.
type Cond uint8

const (
	CondAlways Cond = iota
	CondZ
	CondNZ
	CondC
	CondNC
)

func (c Cond) String() string {
	switch c {
	case CondZ:
		return "Z"
	case CondNZ:
		return "NZ"
	case CondC:
		return "C"
	case CondNC:
		return "NC"
	default:
		return ""
	}
}

// OperandKind tags which of Operand's fields is meaningful.
type OperandKind uint8

const (
	OperandNone         OperandKind = iota
	OperandReg                      // Reg: A,B,C,D,E,H,L
	OperandIndirectHL               // memory at HL
	OperandIndirectHLI              // memory at HL, then HL++
	OperandIndirectHLD              // memory at HL, then HL--
	OperandIndirectBC               // memory at BC
	OperandIndirectDE               // memory at DE
	OperandIndirectC                // memory at 0xFF00+C
	OperandIndirectA8               // memory at 0xFF00+imm8 (fetched at execute time)
	OperandIndirectA16              // memory at imm16 (fetched at execute time)
	OperandImm8                     // immediate d8 (fetched at execute time)
	OperandImm16                    // immediate d16 (fetched at execute time)
	OperandImm8Signed               // signed displacement r8 (JR, ADD SP,r8, LD HL,SP+r8)
	OperandPair                     // Pair: BC,DE,HL,SP (destination of LD rr,d16)
)

// Operand is a tagged union over the DMG's addressing modes.
type Operand struct {
	Kind OperandKind
	Reg  Reg
	Pair Pair
}

func regOperand(r Reg) Operand   { return Operand{Kind: OperandReg, Reg: r} }
func pairOperand(p Pair) Operand { return Operand{Kind: OperandPair, Pair: p} }

// Op names the instruction's mnemonic family; the operand fields on
// Instruction give it its specific register(s)/condition/bit.
type Op uint8

const (
	OpUnknown Op = iota
	OpNOP
	OpHALT
	OpSTOP
	OpDI
	OpEI
	OpDAA // decoded but not semantically implemented; see DESIGN.md

	OpLD
	OpLDH // LD (a8),A / LD A,(a8) / LD (C),A / LD A,(C)
	OpPUSH
	OpPOP

	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpOR
	OpXOR
	OpCP
	OpINC
	OpDEC

	OpADDHL // ADD HL, rr
	OpADDSP // ADD SP, r8
	OpLDHLSP
	OpLDSPHL
	OpINC16
	OpDEC16

	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpCPL
	OpCCF
	OpSCF

	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSWAP
	OpSRL
	OpBIT
	OpRES
	OpSET

	OpJP
	OpJPHL
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST

	OpExit // emulator-only sentinel, never produced by Decode
)

// Instruction is a fully decoded opcode: a mnemonic plus whichever operand
// fields that mnemonic uses. Unused fields are left at their zero value.
type Instruction struct {
	Op     Op
	Dst    Operand
	Src    Operand
	Pair   Pair   // 16-bit pair for INC16/DEC16/ADDHL/PUSH/POP, LD rr,d16 and LD (a16),SP
	Cond   Cond   // jump/call/return condition
	Bit    uint8  // bit position for BIT/RES/SET
	Vector uint16 // fixed RST target address
}

// ByteLen reports the instruction's encoded length in bytes, not counting a
// leading 0xCB prefix byte (CPU.Step reads that separately). CPU.Step uses
// it to fetch the immediate bytes and to compute the fall-through PC; taken
// jumps, calls and returns replace that PC with their own target.
func (in Instruction) ByteLen() int {
	if in.usesImm16() {
		return 3
	}
	if in.usesImm8() {
		return 2
	}
	return 1
}

func (in Instruction) usesImm16() bool {
	return in.Dst.Kind == OperandImm16 || in.Src.Kind == OperandImm16 ||
		in.Dst.Kind == OperandIndirectA16 || in.Src.Kind == OperandIndirectA16
}

func (in Instruction) usesImm8() bool {
	return in.Dst.Kind == OperandImm8 || in.Src.Kind == OperandImm8 ||
		in.Dst.Kind == OperandImm8Signed || in.Src.Kind == OperandImm8Signed ||
		in.Dst.Kind == OperandIndirectA8 || in.Src.Kind == OperandIndirectA8
}
