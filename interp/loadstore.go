package interp

import (
	"github.com/rcornwell/thumb2sim/cpu"
	"github.com/rcornwell/thumb2sim/decoder"
)

func (ctx *Context) execLdrLiteral(d decoder.Decoded, pcVal uint32) {
	addr := pcVal + d.Imm
	ctx.CPU.SetReg(d.Rt, ctx.Mem.Read32(addr))
}

// execLdrStrReg handles the register-offset forms of the 16-bit group:
// LDR/STR/LDRB/STRB/LDRH/STRH/LDRSB/LDRSH, all Rn+Rm addressing.
func (ctx *Context) execLdrStrReg(d decoder.Decoded) {
	addr := ctx.CPU.Reg(d.Rn) + ctx.CPU.Reg(d.Rm)
	switch d.DPOp {
	case 0: // STR
		ctx.Mem.Write32(addr, ctx.CPU.Reg(d.Rt))
	case 1: // STRH
		ctx.Mem.Write16(addr, uint16(ctx.CPU.Reg(d.Rt)))
	case 2: // STRB
		ctx.Mem.Write8(addr, uint8(ctx.CPU.Reg(d.Rt)))
	case 3: // LDRSB
		ctx.CPU.SetReg(d.Rt, uint32(int32(int8(ctx.Mem.Read8(addr)))))
	case 4: // LDR
		ctx.CPU.SetReg(d.Rt, ctx.Mem.Read32(addr))
	case 5: // LDRH
		ctx.CPU.SetReg(d.Rt, uint32(ctx.Mem.Read16(addr)))
	case 6: // LDRB
		ctx.CPU.SetReg(d.Rt, uint32(ctx.Mem.Read8(addr)))
	case 7: // LDRSH
		ctx.CPU.SetReg(d.Rt, uint32(int32(int16(ctx.Mem.Read16(addr)))))
	}
}

// execLdrStrImm handles the 16-bit word/byte Rn+#imm5 forms. d.Link
// carries the L bit (true = load) and d.Byte distinguishes word vs byte
// access, per the single table entry that covers all four mnemonics.
func (ctx *Context) execLdrStrImm(d decoder.Decoded) {
	addr := ctx.CPU.Reg(d.Rn) + d.Imm
	switch {
	case d.Link && d.Byte:
		ctx.CPU.SetReg(d.Rt, uint32(ctx.Mem.Read8(addr)))
	case d.Link:
		ctx.CPU.SetReg(d.Rt, ctx.Mem.Read32(addr))
	case d.Byte:
		ctx.Mem.Write8(addr, uint8(ctx.CPU.Reg(d.Rt)))
	default:
		ctx.Mem.Write32(addr, ctx.CPU.Reg(d.Rt))
	}
}

func (ctx *Context) execLdrStrHImm(d decoder.Decoded) {
	addr := ctx.CPU.Reg(d.Rn) + d.Imm
	if d.Link {
		ctx.CPU.SetReg(d.Rt, uint32(ctx.Mem.Read16(addr)))
		return
	}
	ctx.Mem.Write16(addr, uint16(ctx.CPU.Reg(d.Rt)))
}

func (ctx *Context) execLdrStrSP(d decoder.Decoded) {
	addr := ctx.CPU.Reg(d.Rn) + d.Imm
	if d.Link {
		ctx.CPU.SetReg(d.Rt, ctx.Mem.Read32(addr))
		return
	}
	ctx.Mem.Write32(addr, ctx.CPU.Reg(d.Rt))
}

// execAddSPPC handles ADD Rd, SP|PC, #imm8<<2. d.Rn already holds SP or
// the literal register index 15, decided by the decoder.
func (ctx *Context) execAddSPPC(d decoder.Decoded, pcVal uint32) {
	if d.Rn == cpu.SP {
		ctx.CPU.SetReg(d.Rd, ctx.CPU.Reg(cpu.SP)+d.Imm)
		return
	}
	ctx.CPU.SetReg(d.Rd, pcVal+d.Imm)
}

// execAddSubSPImm handles ADD/SUB SP, SP, #imm7<<2; the destination is
// implicitly SP, so the form carries no Rd field.
func (ctx *Context) execAddSubSPImm(d decoder.Decoded) {
	sp := ctx.CPU.Reg(cpu.SP)
	if d.Up {
		ctx.CPU.SetReg(cpu.SP, sp+d.Imm)
		return
	}
	ctx.CPU.SetReg(cpu.SP, sp-d.Imm)
}

// execLdrdStrd handles LDRD/STRD, the 32-bit two-register-transfer forms
// with P/U/W-coded pre/post-indexed #imm8<<2 addressing.
func (ctx *Context) execLdrdStrd(d decoder.Decoded) {
	base := ctx.CPU.Reg(d.Rn)
	offsetAddr := base
	if d.Pre {
		if d.Up {
			offsetAddr = base + d.Imm
		} else {
			offsetAddr = base - d.Imm
		}
	}
	if d.Link { // L bit: true selects LDRD
		ctx.CPU.SetReg(d.Rt, ctx.Mem.Read32(offsetAddr))
		ctx.CPU.SetReg(d.Rt2, ctx.Mem.Read32(offsetAddr+4))
	} else {
		ctx.Mem.Write32(offsetAddr, ctx.CPU.Reg(d.Rt))
		ctx.Mem.Write32(offsetAddr+4, ctx.CPU.Reg(d.Rt2))
	}
	if d.WBack {
		var final uint32
		if d.Up {
			final = base + d.Imm
		} else {
			final = base - d.Imm
		}
		ctx.CPU.SetReg(d.Rn, final)
	}
}

// execStrSingle handles the 32-bit STR/STRB/STRH single-register-transfer
// group: Rn+#imm12 (DPOp==0) or Rn+Rm<<imm2 register-offset (DPOp==1).
func (ctx *Context) execStrSingle(d decoder.Decoded) {
	addr := ctx.effectiveAddr(d)
	v := ctx.CPU.Reg(d.Rt)
	switch {
	case d.Byte:
		ctx.Mem.Write8(addr, uint8(v))
	case d.Half:
		ctx.Mem.Write16(addr, uint16(v))
	default:
		ctx.Mem.Write32(addr, v)
	}
}

func (ctx *Context) execLdrSingle(d decoder.Decoded, pcVal uint32) {
	if d.Rn == 0xf {
		ctx.execLdrLiteralW(d, pcVal)
		return
	}
	addr := ctx.effectiveAddr(d)
	var v uint32
	switch {
	case d.Byte && d.Signed:
		v = uint32(int32(int8(ctx.Mem.Read8(addr))))
	case d.Byte:
		v = uint32(ctx.Mem.Read8(addr))
	case d.Half && d.Signed:
		v = uint32(int32(int16(ctx.Mem.Read16(addr))))
	case d.Half:
		v = uint32(ctx.Mem.Read16(addr))
	default:
		v = ctx.Mem.Read32(addr)
	}
	ctx.CPU.SetReg(d.Rt, v)
}

func (ctx *Context) execLdrLiteralW(d decoder.Decoded, pcVal uint32) {
	var addr uint32
	if d.Up {
		addr = pcVal + d.Imm
	} else {
		addr = pcVal - d.Imm
	}
	ctx.CPU.SetReg(d.Rt, ctx.Mem.Read32(addr))
}

// effectiveAddr computes the address for the 32-bit single-transfer
// group, writing back through Rn when the form requests it. DPOp==1
// selects the Rm, LSL #imm2 register-offset sub-variant (offset
// addressing at Rn + (Rm << imm2), no write-back); DPOp==0 is the #imm12/#imm8
// immediate form, honoring Pre/Up/WBack.
func (ctx *Context) effectiveAddr(d decoder.Decoded) uint32 {
	base := ctx.CPU.Reg(d.Rn)
	if d.DPOp == 1 {
		return base + (ctx.CPU.Reg(d.Rm) << d.Shamt)
	}
	addr := base
	if d.Pre {
		if d.Up {
			addr = base + d.Imm
		} else {
			addr = base - d.Imm
		}
	}
	if d.WBack {
		var final uint32
		if d.Up {
			final = base + d.Imm
		} else {
			final = base - d.Imm
		}
		ctx.CPU.SetReg(d.Rn, final)
	}
	return addr
}

func (ctx *Context) execPush(d decoder.Decoded) {
	sp := ctx.CPU.Reg(cpu.SP)
	count := popcount16(d.RegList)
	addr := sp - uint32(count)*4
	sp = addr
	for i := 0; i < 16; i++ {
		if d.RegList&(1<<uint(i)) == 0 {
			continue
		}
		ctx.Mem.Write32(addr, ctx.CPU.Reg(i))
		addr += 4
	}
	ctx.CPU.SetReg(cpu.SP, sp)
}

func (ctx *Context) execPop(d decoder.Decoded, pcBefore uint32) {
	addr := ctx.CPU.Reg(cpu.SP)
	loadedPC := false
	for i := 0; i < 16; i++ {
		if d.RegList&(1<<uint(i)) == 0 {
			continue
		}
		v := ctx.Mem.Read32(addr)
		if i == cpu.PC {
			v &^= 1
			loadedPC = true
		}
		ctx.CPU.SetReg(i, v)
		addr += 4
	}
	ctx.CPU.SetReg(cpu.SP, addr)
	if loadedPC {
		// PC already holds its final value; suppress the driver's
		// automatic same-as-before-advance by making it visibly moved.
		if ctx.CPU.Reg(cpu.PC) == pcBefore {
			ctx.CPU.SetReg(cpu.PC, ctx.CPU.Reg(cpu.PC)+2)
			ctx.CPU.SetReg(cpu.PC, ctx.CPU.Reg(cpu.PC)-2)
		}
	}
}

func (ctx *Context) execStmIA(d decoder.Decoded) {
	addr := ctx.CPU.Reg(d.Rn)
	for i := 0; i < 16; i++ {
		if d.RegList&(1<<uint(i)) == 0 {
			continue
		}
		ctx.Mem.Write32(addr, ctx.CPU.Reg(i))
		addr += 4
	}
	if d.WBack {
		ctx.CPU.SetReg(d.Rn, addr)
	}
}

func (ctx *Context) execLdmIA(d decoder.Decoded, pcBefore uint32) {
	addr := ctx.CPU.Reg(d.Rn)
	for i := 0; i < 16; i++ {
		if d.RegList&(1<<uint(i)) == 0 {
			continue
		}
		ctx.CPU.SetReg(i, ctx.Mem.Read32(addr))
		addr += 4
	}
	if d.WBack {
		ctx.CPU.SetReg(d.Rn, addr)
	}
	_ = pcBefore
}

// execStmW handles the 32-bit STM.W increment-after and STMDB decrement-
// before forms, distinguished by d.Up.
func (ctx *Context) execStmW(d decoder.Decoded) {
	base := ctx.CPU.Reg(d.Rn)
	count := popcount16(d.RegList)
	var addr uint32
	if d.Up {
		addr = base
	} else {
		addr = base - uint32(count)*4
	}
	start := addr
	for i := 0; i < 16; i++ {
		if d.RegList&(1<<uint(i)) == 0 {
			continue
		}
		ctx.Mem.Write32(addr, ctx.CPU.Reg(i))
		addr += 4
	}
	if d.WBack {
		if d.Up {
			ctx.CPU.SetReg(d.Rn, start+uint32(count)*4)
		} else {
			ctx.CPU.SetReg(d.Rn, start)
		}
	}
}

func (ctx *Context) execLdmW(d decoder.Decoded, pcBefore uint32) {
	base := ctx.CPU.Reg(d.Rn)
	count := popcount16(d.RegList)
	var addr uint32
	if d.Up {
		addr = base
	} else {
		addr = base - uint32(count)*4
	}
	start := addr
	for i := 0; i < 16; i++ {
		if d.RegList&(1<<uint(i)) == 0 {
			continue
		}
		v := ctx.Mem.Read32(addr)
		if i == cpu.PC {
			v &^= 1
		}
		ctx.CPU.SetReg(i, v)
		addr += 4
	}
	if d.WBack {
		if d.Up {
			ctx.CPU.SetReg(d.Rn, start+uint32(count)*4)
		} else {
			ctx.CPU.SetReg(d.Rn, start)
		}
	}
	_ = pcBefore
}

func popcount16(v uint16) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}
