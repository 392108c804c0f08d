package interp

import (
	"github.com/rcornwell/thumb2sim/cpu"
	"github.com/rcornwell/thumb2sim/decoder"
)

// execCbz handles CBZ/CBNZ (16-bit, compare-and-branch on low register,
// no flag update). d.Signed doubles as the "nonzero" polarity bit set by
// the decoder (CBNZ vs CBZ).
func (ctx *Context) execCbz(d decoder.Decoded, pcBefore uint32) {
	isZero := ctx.CPU.Reg(d.Rn) == 0
	taken := isZero
	if d.Signed {
		taken = !isZero
	}
	if !taken {
		return
	}
	target := pcBefore + 4 + d.Imm
	ctx.CPU.SetReg(cpu.PC, target)
}

func (ctx *Context) execBCond(d decoder.Decoded, pcBefore uint32) {
	if !ctx.CPU.CondHolds(d.Cond) {
		return
	}
	target := pcBefore + 4 + d.Imm
	ctx.CPU.SetReg(cpu.PC, target)
}

func (ctx *Context) execBUncond(d decoder.Decoded, pcBefore uint32) {
	target := pcBefore + 4 + d.Imm
	ctx.CPU.SetReg(cpu.PC, target)
}

func (ctx *Context) execBCondW(d decoder.Decoded, pcBefore uint32) {
	if !ctx.CPU.CondHolds(d.Cond) {
		return
	}
	target := pcBefore + 4 + d.Imm
	ctx.CPU.SetReg(cpu.PC, target)
}

func (ctx *Context) execBUncondW(d decoder.Decoded, pcBefore uint32) {
	target := pcBefore + 4 + d.Imm
	ctx.CPU.SetReg(cpu.PC, target)
}

// execBl handles BL and BLX(immediate); the simulator does not model a
// separate ARM instruction set, so the two share the same arithmetic (see
// interp.go's dispatch comment).
func (ctx *Context) execBl(d decoder.Decoded, pcBefore uint32) {
	target := pcBefore + 4 + d.Imm
	ctx.CPU.SetReg(cpu.LR, (pcBefore+uint32(d.Length))|1)
	ctx.CPU.SetReg(cpu.PC, target)
}
