package interp

import "github.com/rcornwell/thumb2sim/cpu"

// addFlags computes the NZCV flags for an addition a+b (optionally with a
// carry-in, for ADC), using 33-bit-wide arithmetic so carry and overflow
// fall out unambiguously. N is derived from bit 31 of the result, not
// ported from the "aY > aY" add-flag typo noted in spec.md §4.4 (that
// comparison is always false and would force N to 0).
func addFlags(a, b uint32, carryIn bool) (result uint32, n, z, c, v bool) {
	wide := uint64(a) + uint64(b)
	if carryIn {
		wide++
	}
	result = uint32(wide)
	n = result&0x80000000 != 0
	z = result == 0
	c = wide > 0xffffffff
	v = (a^result)&(b^result)&0x80000000 != 0
	return
}

// subFlags computes the NZCV flags for a subtraction a-b (optionally
// with a borrow-in for SBC, expressed as carryIn = NOT borrow per the ARM
// convention) by rewriting the subtraction as a+^b+1 so it shares the add
// path's carry/overflow derivation.
func subFlags(a, b uint32, borrowless bool) (result uint32, n, z, c, v bool) {
	carry := borrowless
	return addFlags(a, ^b, carry)
}

// moveFlags computes N and Z only, from the produced value; C is left to
// the caller (preserved unless an explicit carry-producing helper, e.g.
// the barrel shifter, supplies one).
func moveFlags(value uint32) (n, z bool) {
	return value&0x80000000 != 0, value == 0
}

// applyNZCV writes all four arithmetic flags.
func applyNZCV(s *cpu.State, n, z, c, v bool) {
	s.SetFlag(cpu.MaskN, n)
	s.SetFlag(cpu.MaskZ, z)
	s.SetFlag(cpu.MaskC, c)
	s.SetFlag(cpu.MaskV, v)
}

// applyNZ writes only N and Z, leaving C and V untouched.
func applyNZ(s *cpu.State, n, z bool) {
	s.SetFlag(cpu.MaskN, n)
	s.SetFlag(cpu.MaskZ, z)
}

// setFlagsGate is the "condition-unconditional gate" from spec.md §4.4: a
// narrow-form Thumb instruction whose flags are set unconditionally
// (setFlagsAlways=true, e.g. every 32-bit data-processing form, or a
// 16-bit form outside an IT block) updates flags; a 16-bit form inside an
// active IT block does not, per "update flags only when outside an IT
// block".
func (ctx *Context) setFlagsGate(setFlagsAlways bool) bool {
	return setFlagsAlways || !ctx.CPU.IT.Active()
}
