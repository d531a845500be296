package inst

// baseTable and cbTable are dense 256-entry decode tables, built once in
// init() the way the teacher's pkg/inst/catalog.go builds its Catalog:
// loop over the regular, densely-encoded regions (CB table, LD r,r' grid,
// ALU A,r grid) and fill the rest with explicit per-opcode assignments
// cross-checked against an authoritative opcode table (not transcribed by
// position, which is how the source repository got LD opcodes wrong; see
// spec.md §9).
var (
	baseTable [256]Instruction
	baseValid [256]bool
	cbTable   [256]Instruction
	cbValid   [256]bool
)

// regSlot returns the operand for the standard 3-bit register encoding
// 0..7 -> B,C,D,E,H,L,(HL),A shared by LD r,r', INC/DEC r, ALU A,r, and
// every CB-prefixed opcode.
func regSlot(i uint8) Operand {
	switch i {
	case 0:
		return regOperand(RegB)
	case 1:
		return regOperand(RegC)
	case 2:
		return regOperand(RegD)
	case 3:
		return regOperand(RegE)
	case 4:
		return regOperand(RegH)
	case 5:
		return regOperand(RegL)
	case 6:
		return Operand{Kind: OperandIndirectHL}
	default:
		return regOperand(RegA)
	}
}

func init() {
	initCBTable()
	initBaseTable()
}

func initCBTable() {
	rotateOps := [8]Op{OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSWAP, OpSRL}
	for group, op := range rotateOps {
		for r := uint8(0); r < 8; r++ {
			opcode := uint8(group<<3) | r
			cbTable[opcode] = Instruction{Op: op, Dst: regSlot(r)}
			cbValid[opcode] = true
		}
	}
	for bit := uint8(0); bit < 8; bit++ {
		for r := uint8(0); r < 8; r++ {
			biOpcode := 0x40 | bit<<3 | r
			cbTable[biOpcode] = Instruction{Op: OpBIT, Dst: regSlot(r), Bit: bit}
			cbValid[biOpcode] = true

			resOpcode := 0x80 | bit<<3 | r
			cbTable[resOpcode] = Instruction{Op: OpRES, Dst: regSlot(r), Bit: bit}
			cbValid[resOpcode] = true

			setOpcode := 0xC0 | bit<<3 | r
			cbTable[setOpcode] = Instruction{Op: OpSET, Dst: regSlot(r), Bit: bit}
			cbValid[setOpcode] = true
		}
	}
}

func setBase(opcode uint8, in Instruction) {
	baseTable[opcode] = in
	baseValid[opcode] = true
}

func initBaseTable() {
	imm8 := Operand{Kind: OperandImm8}
	imm16 := Operand{Kind: OperandImm16}
	dispR8 := Operand{Kind: OperandImm8Signed}
	addrA16 := Operand{Kind: OperandIndirectA16}
	addrBC := Operand{Kind: OperandIndirectBC}
	addrDE := Operand{Kind: OperandIndirectDE}
	addrHLI := Operand{Kind: OperandIndirectHLI}
	addrHLD := Operand{Kind: OperandIndirectHLD}
	a := regOperand(RegA)

	// === LD r, r' grid: 0x40..0x7F, 64 opcodes, 0x76 is HALT not LD (HL),(HL) ===
	for dstIdx := uint8(0); dstIdx < 8; dstIdx++ {
		for srcIdx := uint8(0); srcIdx < 8; srcIdx++ {
			opcode := 0x40 | dstIdx<<3 | srcIdx
			if dstIdx == 6 && srcIdx == 6 {
				setBase(opcode, Instruction{Op: OpHALT})
				continue
			}
			setBase(opcode, Instruction{Op: OpLD, Dst: regSlot(dstIdx), Src: regSlot(srcIdx)})
		}
	}

	// === ALU A, r grid: 0x80..0xBF, groups of 8 in encoding order ===
	aluOps := [8]Op{OpADD, OpADC, OpSUB, OpSBC, OpAND, OpXOR, OpOR, OpCP}
	for group, op := range aluOps {
		for r := uint8(0); r < 8; r++ {
			opcode := uint8(0x80+group*8) + r
			setBase(opcode, Instruction{Op: op, Src: regSlot(r)})
		}
	}

	// === INC r / DEC r: 00rrr100 / 00rrr101, skipping rows handled as pairs below ===
	for r := uint8(0); r < 8; r++ {
		incOpcode := 0x04 | r<<3
		decOpcode := 0x05 | r<<3
		ldOpcode := 0x06 | r<<3
		setBase(incOpcode, Instruction{Op: OpINC, Dst: regSlot(r)})
		setBase(decOpcode, Instruction{Op: OpDEC, Dst: regSlot(r)})
		setBase(ldOpcode, Instruction{Op: OpLD, Dst: regSlot(r), Src: imm8})
	}

	// === RST vectors: 11xxx111 ===
	for i := uint8(0); i < 8; i++ {
		opcode := 0xC7 | i<<3
		setBase(opcode, Instruction{Op: OpRST, Vector: uint16(i) * 8})
	}

	pairs := [4]Pair{PairBC, PairDE, PairHL, PairSP}
	pairBases := [4]uint8{0x00, 0x10, 0x20, 0x30}
	for i, p := range pairs {
		base := pairBases[i]
		setBase(base+0x01, Instruction{Op: OpLD, Pair: p, Src: imm16, Dst: pairOperand(p)})
		setBase(base+0x03, Instruction{Op: OpINC16, Pair: p})
		setBase(base+0x0B, Instruction{Op: OpDEC16, Pair: p})
		setBase(base+0x09, Instruction{Op: OpADDHL, Pair: p})
	}

	setBase(0x00, Instruction{Op: OpNOP})
	setBase(0x02, Instruction{Op: OpLD, Dst: addrBC, Src: a})
	setBase(0x07, Instruction{Op: OpRLCA})
	setBase(0x08, Instruction{Op: OpLD, Dst: addrA16, Pair: PairSP})
	setBase(0x0A, Instruction{Op: OpLD, Dst: a, Src: addrBC})
	setBase(0x0F, Instruction{Op: OpRRCA})

	setBase(0x10, Instruction{Op: OpSTOP})
	setBase(0x12, Instruction{Op: OpLD, Dst: addrDE, Src: a})
	setBase(0x17, Instruction{Op: OpRLA})
	setBase(0x18, Instruction{Op: OpJR, Cond: CondAlways, Src: dispR8})
	setBase(0x1A, Instruction{Op: OpLD, Dst: a, Src: addrDE})
	setBase(0x1F, Instruction{Op: OpRRA})

	setBase(0x20, Instruction{Op: OpJR, Cond: CondNZ, Src: dispR8})
	setBase(0x22, Instruction{Op: OpLD, Dst: addrHLI, Src: a})
	setBase(0x27, Instruction{Op: OpDAA})
	setBase(0x28, Instruction{Op: OpJR, Cond: CondZ, Src: dispR8})
	setBase(0x2A, Instruction{Op: OpLD, Dst: a, Src: addrHLI})
	setBase(0x2F, Instruction{Op: OpCPL})

	setBase(0x30, Instruction{Op: OpJR, Cond: CondNC, Src: dispR8})
	setBase(0x32, Instruction{Op: OpLD, Dst: addrHLD, Src: a})
	setBase(0x37, Instruction{Op: OpSCF})
	setBase(0x38, Instruction{Op: OpJR, Cond: CondC, Src: dispR8})
	setBase(0x3A, Instruction{Op: OpLD, Dst: a, Src: addrHLD})
	setBase(0x3F, Instruction{Op: OpCCF})

	setBase(0xC0, Instruction{Op: OpRET, Cond: CondNZ})
	setBase(0xC1, Instruction{Op: OpPOP, Pair: PairBC})
	setBase(0xC2, Instruction{Op: OpJP, Cond: CondNZ, Src: imm16})
	setBase(0xC3, Instruction{Op: OpJP, Cond: CondAlways, Src: imm16})
	setBase(0xC4, Instruction{Op: OpCALL, Cond: CondNZ, Src: imm16})
	setBase(0xC5, Instruction{Op: OpPUSH, Pair: PairBC})
	setBase(0xC6, Instruction{Op: OpADD, Src: imm8})
	setBase(0xC8, Instruction{Op: OpRET, Cond: CondZ})
	setBase(0xC9, Instruction{Op: OpRET, Cond: CondAlways})
	setBase(0xCA, Instruction{Op: OpJP, Cond: CondZ, Src: imm16})
	// 0xCB is the CB-prefix escape byte; CPU.Step consumes it and it never
	// reaches Decode as a base opcode itself — a documented gap.
	setBase(0xCC, Instruction{Op: OpCALL, Cond: CondZ, Src: imm16})
	setBase(0xCD, Instruction{Op: OpCALL, Cond: CondAlways, Src: imm16})
	setBase(0xCE, Instruction{Op: OpADC, Src: imm8})

	setBase(0xD0, Instruction{Op: OpRET, Cond: CondNC})
	setBase(0xD1, Instruction{Op: OpPOP, Pair: PairDE})
	setBase(0xD2, Instruction{Op: OpJP, Cond: CondNC, Src: imm16})
	setBase(0xD4, Instruction{Op: OpCALL, Cond: CondNC, Src: imm16})
	setBase(0xD5, Instruction{Op: OpPUSH, Pair: PairDE})
	setBase(0xD6, Instruction{Op: OpSUB, Src: imm8})
	setBase(0xD8, Instruction{Op: OpRET, Cond: CondC})
	setBase(0xD9, Instruction{Op: OpRETI})
	setBase(0xDA, Instruction{Op: OpJP, Cond: CondC, Src: imm16})
	setBase(0xDC, Instruction{Op: OpCALL, Cond: CondC, Src: imm16})
	setBase(0xDE, Instruction{Op: OpSBC, Src: imm8})

	setBase(0xE0, Instruction{Op: OpLDH, Dst: Operand{Kind: OperandIndirectA8}, Src: a})
	setBase(0xE1, Instruction{Op: OpPOP, Pair: PairHL})
	setBase(0xE2, Instruction{Op: OpLDH, Dst: Operand{Kind: OperandIndirectC}, Src: a})
	setBase(0xE5, Instruction{Op: OpPUSH, Pair: PairHL})
	setBase(0xE6, Instruction{Op: OpAND, Src: imm8})
	setBase(0xE8, Instruction{Op: OpADDSP, Src: dispR8})
	setBase(0xE9, Instruction{Op: OpJPHL})
	setBase(0xEA, Instruction{Op: OpLD, Dst: addrA16, Src: a})
	setBase(0xEE, Instruction{Op: OpXOR, Src: imm8})

	setBase(0xF0, Instruction{Op: OpLDH, Dst: a, Src: Operand{Kind: OperandIndirectA8}})
	setBase(0xF1, Instruction{Op: OpPOP, Pair: PairAF})
	setBase(0xF2, Instruction{Op: OpLDH, Dst: a, Src: Operand{Kind: OperandIndirectC}})
	setBase(0xF3, Instruction{Op: OpDI})
	setBase(0xF5, Instruction{Op: OpPUSH, Pair: PairAF})
	setBase(0xF6, Instruction{Op: OpOR, Src: imm8})
	setBase(0xF8, Instruction{Op: OpLDHLSP, Src: dispR8})
	setBase(0xF9, Instruction{Op: OpLDSPHL})
	setBase(0xFA, Instruction{Op: OpLD, Dst: a, Src: addrA16})
	setBase(0xFB, Instruction{Op: OpEI})
	setBase(0xFE, Instruction{Op: OpCP, Src: imm8})

	// 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD have
	// no DMG meaning (documented gaps: the Z80 IN/OUT/EX/IX-IY opcodes the
	// DMG never implements). Decode returns false for them.
}

// Decode maps a raw opcode byte (plus whether it followed a 0xCB prefix) to
// an Instruction. Returns ok=false for unmapped bytes: the CB escape byte
// itself when prefixed=false, and the handful of opcodes DMG hardware never
// defines.
func Decode(opcode byte, prefixed bool) (Instruction, bool) {
	if prefixed {
		return cbTable[opcode], cbValid[opcode]
	}
	return baseTable[opcode], baseValid[opcode]
}
