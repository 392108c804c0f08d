/*
decoder - Thumb-2 instruction decode: opcode word -> instruction form.

Copyright 2026
*/

// Package decoder pattern-matches a 32-bit opcode word (two concatenated
// Thumb-2 halfwords) against a table of masked forms and extracts operand
// fields. It does not touch CPU or memory state; interp and disasm both
// consume its output.
package decoder

// Kind enumerates every instruction form this simulator recognizes. Forms
// the decoder does not recognize fall through to KindUndefined.
type Kind int

const (
	KindUndefined Kind = iota
	KindUnimplemented // recognized but no execution semantics (VFP, coprocessor, exclusive access, barriers)

	// Shift/move/add/subtract (16-bit, Thumb-1 §A6.2.1).
	KindLslImm
	KindLsrImm
	KindAsrImm
	KindAddReg3
	KindSubReg3
	KindAddImm3
	KindSubImm3
	KindMovImm8
	KindCmpImm8
	KindAddImm8
	KindSubImm8

	// Data-processing register (16-bit, one opcode group).
	KindDPReg // Op field distinguishes AND/EOR/LSL/LSR/ASR/ADC/SBC/ROR/TST/RSB/CMP/CMN/ORR/MUL/BIC/MVN

	// Special data processing / branch-exchange (16-bit).
	KindAddHi
	KindCmpHi
	KindMovHi
	KindBx
	KindBlx

	// Loads/stores (16-bit).
	KindLdrLiteral
	KindLdrStrReg // register-offset load/store, Op selects STR/STRH/STRB/LDRSB/LDR/LDRH/LDRB/LDRSH
	KindLdrStrImm // word/byte immediate offset
	KindLdrStrHImm
	KindLdrStrSP

	KindAddSPPC // ADD Rd, SP|PC, #imm8<<2

	// Misc 16-bit.
	KindAddSubSPImm
	KindCbz
	KindPush
	KindPop
	KindRev
	KindBkpt16
	KindHint // NOP-compatible hints (NOP, YIELD, WFE, WFI, SEV)
	KindIT

	KindStmIA
	KindLdmIA

	KindBCond // conditional branch, 16-bit
	KindSvc
	KindBUncond16 // unconditional B, 16-bit

	// 32-bit forms.
	KindStmW
	KindLdmW
	KindPushW
	KindPopW
	KindLdrdStrd

	KindDPShiftedReg // data-processing (shifted register), 32-bit
	KindDPModImm     // data-processing (modified immediate), 32-bit
	KindMovImmW      // MOVW, 32-bit plain binary immediate
	KindMovtImmW     // MOVT

	KindBCondW   // conditional B.W, 32-bit
	KindBUncondW // unconditional B.W, 32-bit
	KindBl       // BL
	KindBlxImm   // BLX immediate (switches to ARM; decoded, execution treats as BL)

	KindStrSingle // STR/STRB/STRH, 32-bit, immediate or register offset
	KindLdrSingle // LDR/LDRB/LDRH/LDRSB/LDRSH, 32-bit

	KindExtendReg // SXTH/UXTH/SXTB/UXTB, 32-bit register-operand form
	KindRevW      // REV/REV16/RBIT/REVSH, 32-bit
	KindClz

	KindMul
	KindMla
	KindMls
	KindSdiv
	KindUdiv
	KindUmull
	KindSmull
	KindUmlal
	KindSmlal

	KindBkptW // not a real ARMv7-M encoding; placeholder unused, kept for table symmetry
)

// Shift types, as encoded in the 2-bit shift-type field.
const (
	ShiftLSL = 0
	ShiftLSR = 1
	ShiftASR = 2
	ShiftROR = 3
)

// Decoded carries every field a handler might need. Not every field is
// meaningful for every Kind; handlers read only the fields their form
// defines, mirroring the source's "extract then dispatch" structure while
// avoiding ~350 distinct Go types.
type Decoded struct {
	Kind   Kind
	Length int // 2 or 4

	Rd, Rn, Rm, Ra, Rt, Rt2 int
	RegList                 uint16

	Imm   uint32
	Cond  uint8
	Shift uint8 // shift type, 0-3
	Shamt uint8 // shift amount

	SetFlags bool
	Pre      bool // P: pre/post-indexing
	Up       bool // U: add/subtract offset
	WBack    bool // W: write-back
	Link     bool // L bit, where applicable (BL vs B, LDM vs STM ambiguity disambiguated by Kind already)
	Byte     bool
	Half     bool
	Signed   bool

	DPOp int // sub-opcode for KindDPReg / KindDPShiftedReg / KindDPModImm

	Raw uint32 // the full opcode word, for diagnostics
}

type formEntry struct {
	mask, value uint32
	length      int
	build       func(word uint32) Decoded
}

var table []formEntry

func register(mask, value uint32, length int, build func(word uint32) Decoded) {
	table = append(table, formEntry{mask: mask, value: value, length: length, build: build})
}

// Decode matches a fetched opcode word (first halfword in bits[31:16],
// second halfword -- valid only for 32-bit forms -- in bits[15:0]) against
// the form table in declaration order, first match wins. It returns the
// decoded form and its length in bytes. An opcode matching nothing decodes
// to KindUndefined with length 0, per the "undecodable opcode" error path.
func Decode(word uint32) Decoded {
	for _, e := range table {
		if word&e.mask == e.value {
			d := e.build(word)
			d.Length = e.length
			d.Raw = word
			return d
		}
	}
	return Decoded{Kind: KindUndefined, Length: 0, Raw: word}
}

// hw1 returns the first (lower-address) halfword of a fetched word.
func hw1(word uint32) uint16 { return uint16(word >> 16) }

// hw2 returns the second halfword, meaningful only for 32-bit forms.
func hw2(word uint32) uint16 { return uint16(word) }

func bits(v uint32, hi, lo uint) uint32 {
	return (v >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func bit(v uint32, n uint) bool {
	return (v>>n)&1 != 0
}

// narrowMask builds a (mask, value) pair for a 16-bit form, expressed
// against the high halfword of the fetched word with the low halfword
// wildcarded.
func narrowMask(maskHW, valueHW uint16) (uint32, uint32) {
	return uint32(maskHW) << 16, uint32(valueHW) << 16
}

// ThumbExpandImm decodes a 12-bit Thumb modified-constant field (as found
// in data-processing (modified immediate) encodings) to a 32-bit value.
// The top two bits of the 12-bit field select the replication pattern; if
// they are both zero, the bottom two bits of that nibble select between
// "8-bit value as-is" and three lane-replication patterns. Otherwise the
// field decodes to (0x80 | low7) rotated right by the 5-bit rotate amount.
func ThumbExpandImm(imm12 uint32) uint32 {
	if imm12&0xc00 == 0 {
		pattern := (imm12 >> 8) & 0x3
		low8 := imm12 & 0xff
		switch pattern {
		case 0:
			return low8
		case 1:
			return low8<<16 | low8
		case 2:
			return low8<<24 | low8<<8
		default: // 3
			return low8<<24 | low8<<16 | low8<<8 | low8
		}
	}
	rotate := (imm12 >> 7) & 0x1f
	low7 := imm12 & 0x7f
	base := 0x80 | low7
	return rorUint32(base, rotate)
}

// ThumbExpandImmC is ThumbExpandImm plus the carry-out the barrel shifter
// would produce, used by data-processing (modified immediate) forms that
// set flags.
func ThumbExpandImmC(imm12 uint32, carryIn bool) (uint32, bool) {
	if imm12&0xc00 == 0 {
		return ThumbExpandImm(imm12), carryIn
	}
	v := ThumbExpandImm(imm12)
	return v, v&0x80000000 != 0
}

func rorUint32(v uint32, n uint32) uint32 {
	n &= 31
	if n == 0 {
		return v
	}
	return (v >> n) | (v << (32 - n))
}

// ThumbSignExtend sign-extends an N-bit field to 32 bits. The decoder's
// callers pass the Thumb branch-displacement widths: 9 (B<cond>), 12 (B),
// 21 (B<cond>.W) and 25 (B.W, BL, BLX).
func ThumbSignExtend(value uint32, n uint) uint32 {
	shift := 32 - n
	return uint32(int32(value<<shift) >> shift)
}
