/*
cpu - ARMv7-M architectural register file, PSR, and IT-block state.

Copyright 2026
*/

// Package cpu holds the architectural state of one simulated core: the
// sixteen general registers, the Program Status Register flags, the
// If-Then block state vector, and the retired-instruction counter. It owns
// no memory; the interpreter reaches memory only through addrspace.
package cpu

import "github.com/rcornwell/thumb2sim/addrspace"

// Register numbers with architectural roles.
const (
	SP = 13
	LR = 14
	PC = 15
)

// PSR flag bit positions.
const (
	BitN = 31
	BitZ = 30
	BitC = 29
	BitV = 28
	BitQ = 27
)

// PSR flag masks.
const (
	MaskN uint32 = 1 << BitN
	MaskZ uint32 = 1 << BitZ
	MaskC uint32 = 1 << BitC
	MaskV uint32 = 1 << BitV
	MaskQ uint32 = 1 << BitQ

	// MaskIT covers the IT-block echo bit positions in the PSR: bits
	// 10-15 and bits 25-26.
	maskITLow  uint32 = 0x3f << 10
	maskITHigh uint32 = 0x3 << 25
	MaskIT     uint32 = maskITLow | maskITHigh

	// ResetPSR is the fixed post-reset PSR value used by the source this
	// simulator is modeled on.
	ResetPSR uint32 = 0x173
)

// Condition codes, 4-bit encodings per the ARM ARM.
const (
	CondEQ = 0x0
	CondNE = 0x1
	CondCS = 0x2
	CondCC = 0x3
	CondMI = 0x4
	CondPL = 0x5
	CondVS = 0x6
	CondVC = 0x7
	CondHI = 0x8
	CondLS = 0x9
	CondGE = 0xA
	CondLT = 0xB
	CondGT = 0xC
	CondLE = 0xD
	CondAL = 0xE
)

// ITSlot tags one pending conditional slot in the IT state vector.
type ITSlot int

const (
	ITNone ITSlot = iota
	ITThen
	ITElse
)

// ITState is the small state vector tracking up to five pending
// conditional slots plus the first condition code that governs them. It
// mirrors the ARMv7-M IT[7:0] byte: bits[7:4] the current condition,
// bits[3:0] the mask encoding both the remaining length and, via its
// low bit once shifted into bit 4, the then/else polarity of the slot
// about to execute. first holds the original firstcond nibble for the
// life of the block so CurrentSlot can tell then from else by comparing
// polarities rather than by reading a fixed bit position of a nibble
// that shifts underneath it.
type ITState struct {
	raw   uint8
	first uint8
}

// FromFields loads the IT state from the IT instruction's firstcond/mask
// fields (each 4 bits).
func (it *ITState) FromFields(firstCond, mask uint8) {
	it.first = firstCond & 0xf
	it.raw = (it.first << 4) | (mask & 0xf)
}

// Active reports whether any conditional slot is still pending.
func (it *ITState) Active() bool {
	return it.raw&0xf != 0
}

// Cond returns the condition code governing the current (lowest) slot.
func (it *ITState) Cond() uint8 {
	return it.raw >> 4
}

// CurrentSlot reports whether the instruction about to execute is in the
// THEN or ELSE part of the block, or NONE if no IT block is active.
// Then/else is entirely a matter of polarity: conditions come in
// complementary pairs that differ only in bit 0 (EQ=0000 vs NE=0001), so
// a slot is ELSE whenever the current condition's bit 0 differs from
// firstcond's bit 0, regardless of how many slots have already shifted
// through bit 4.
func (it *ITState) CurrentSlot() ITSlot {
	if !it.Active() {
		return ITNone
	}
	if (it.Cond()^it.first)&1 != 0 {
		return ITElse
	}
	return ITThen
}

// Shift advances the state vector by one slot, as the step driver does
// after every retired instruction except IT itself. This is the
// architectural ITAdvance: once the mask's low 3 bits go to zero the
// block is over, otherwise IT[4:0] is shifted left one place (the vacated
// low bit reads as zero, and the bit shifted into bit 4 becomes the low bit
// of the reported condition; CurrentSlot reports ELSE when it differs from
// firstcond's low bit).
func (it *ITState) Shift() {
	if it.raw&0xf == 0 {
		return
	}
	if it.raw&0x7 == 0 {
		it.raw = 0
		it.first = 0
		return
	}
	five := it.raw & 0x1f
	five = (five << 1) & 0x1f
	it.raw = (it.raw & 0xe0) | five
}

// Echo packs the IT state into the PSR's IT-echo bit positions: IT[7:2]
// lands in PSR[15:10], IT[1:0] lands in PSR[26:25].
func (it *ITState) Echo() uint32 {
	v := uint32(it.raw)
	low6 := (v >> 2) & 0x3f
	high2 := v & 0x3
	return (low6 << 10) | (high2 << 25)
}

// State is the full architectural register file plus status.
type State struct {
	Regs [16]uint32
	PSR  uint32
	IT   ITState

	// InsnCount is the monotonically increasing retired-instruction
	// counter.
	InsnCount uint64
}

// Reg reads a general register by number (0-15).
func (s *State) Reg(n int) uint32 { return s.Regs[n&0xf] }

// SetReg writes a general register by number (0-15).
func (s *State) SetReg(n int, v uint32) { s.Regs[n&0xf] = v }

// Flag reads one PSR flag bit.
func (s *State) Flag(mask uint32) bool { return s.PSR&mask != 0 }

// SetFlag writes one PSR flag bit, preserving all others.
func (s *State) SetFlag(mask uint32, set bool) {
	if set {
		s.PSR |= mask
	} else {
		s.PSR &^= mask
	}
}

// N, Z, C, V, Q read the individual condition flags.
func (s *State) N() bool { return s.Flag(MaskN) }
func (s *State) Z() bool { return s.Flag(MaskZ) }
func (s *State) C() bool { return s.Flag(MaskC) }
func (s *State) V() bool { return s.Flag(MaskV) }
func (s *State) Q() bool { return s.Flag(MaskQ) }

// UpdateITEcho clears the PSR's IT-echo bits and rewrites them from the
// current IT state. Called by the step driver exactly once per retired
// instruction, after the IT vector has been shifted.
func (s *State) UpdateITEcho() {
	s.PSR = (s.PSR &^ MaskIT) | s.IT.Echo()
}

// Reset reloads SP and PC from the Interrupt Vector Table at ivtBase,
// masks PC bit 0, clears flags and IT state, and sets the fixed
// post-reset PSR value.
func (s *State) Reset(mem *addrspace.Space, ivtBase uint32) {
	*s = State{}
	sp := mem.Read32(ivtBase)
	pc := mem.Read32(ivtBase + 4)
	s.Regs[SP] = sp
	s.Regs[PC] = pc &^ 1
	s.PSR = ResetPSR
}

// CondHolds evaluates a 4-bit condition code against the current flags.
func (s *State) CondHolds(cond uint8) bool {
	switch cond & 0xf {
	case CondEQ:
		return s.Z()
	case CondNE:
		return !s.Z()
	case CondCS:
		return s.C()
	case CondCC:
		return !s.C()
	case CondMI:
		return s.N()
	case CondPL:
		return !s.N()
	case CondVS:
		return s.V()
	case CondVC:
		return !s.V()
	case CondHI:
		return s.C() && !s.Z()
	case CondLS:
		return !s.C() || s.Z()
	case CondGE:
		return s.N() == s.V()
	case CondLT:
		return s.N() != s.V()
	case CondGT:
		return !s.Z() && s.N() == s.V()
	case CondLE:
		return s.Z() || s.N() != s.V()
	default: // AL and the reserved 0xF both mean "always" here
		return true
	}
}
