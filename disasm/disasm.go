/*
thumb2sim - Thumb-2 disassembler

Copyright 2026

Permission is hereby granted, free of charge, to any person obtaining a
copy of this software and associated documentation files (the "Software"),
to deal in the Software without restriction, including without limitation
the rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, and to permit persons to whom the
Software is furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
*/

// Package disasm renders a decoder.Decoded form as assembly text. It is
// a second, independent consumer of the decoder's output, mirroring the
// teacher's disassembler/interpreter split: a name/format table keyed by
// the decoded kind, entirely separate from interp's execution semantics.
package disasm

import (
	"fmt"
	"strings"

	"github.com/rcornwell/thumb2sim/decoder"
)

var condNames = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "al", "",
}

func condSuffix(cond uint8) string {
	return condNames[cond&0xf]
}

func reg(n int) string {
	switch n {
	case 13:
		return "sp"
	case 14:
		return "lr"
	case 15:
		return "pc"
	default:
		return fmt.Sprintf("r%d", n)
	}
}

func regList(list uint16) string {
	var names []string
	for i := 0; i < 16; i++ {
		if list&(1<<uint(i)) != 0 {
			names = append(names, reg(i))
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

var dpRegNames = [16]string{
	"ands", "eors", "lsls", "lsrs", "asrs", "adcs", "sbcs", "rors",
	"tst", "rsbs", "cmp", "cmn", "orrs", "muls", "bics", "mvns",
}

var dpModImmNames = map[int]string{
	0x0: "and", 0x1: "bic", 0x2: "orr", 0x3: "orn", 0x4: "eor",
	0x8: "add", 0xA: "adc", 0xB: "sbc", 0xD: "sub", 0xE: "rsb",
}

var shiftNames = [4]string{"lsl", "lsr", "asr", "ror"}

// Format renders one decoded instruction as a textual mnemonic plus
// operands, matching common Thumb-2 assembly syntax closely enough for
// monitor and GDB-stub disassembly views; it does not attempt to
// reproduce every UAL aliasing rule.
func Format(d decoder.Decoded) string {
	switch d.Kind {
	case decoder.KindUndefined:
		return fmt.Sprintf(".word 0x%08x ; undefined", d.Raw)
	case decoder.KindUnimplemented:
		return fmt.Sprintf(".word 0x%08x ; unimplemented form", d.Raw)

	case decoder.KindLslImm:
		return fmt.Sprintf("lsls %s, %s, #%d", reg(d.Rd), reg(d.Rm), d.Shamt)
	case decoder.KindLsrImm:
		return fmt.Sprintf("lsrs %s, %s, #%d", reg(d.Rd), reg(d.Rm), d.Shamt)
	case decoder.KindAsrImm:
		return fmt.Sprintf("asrs %s, %s, #%d", reg(d.Rd), reg(d.Rm), d.Shamt)
	case decoder.KindAddReg3:
		return fmt.Sprintf("adds %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm))
	case decoder.KindSubReg3:
		return fmt.Sprintf("subs %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm))
	case decoder.KindAddImm3:
		return fmt.Sprintf("adds %s, %s, #%d", reg(d.Rd), reg(d.Rn), d.Imm)
	case decoder.KindSubImm3:
		return fmt.Sprintf("subs %s, %s, #%d", reg(d.Rd), reg(d.Rn), d.Imm)
	case decoder.KindMovImm8:
		return fmt.Sprintf("movs %s, #%d", reg(d.Rd), d.Imm)
	case decoder.KindCmpImm8:
		return fmt.Sprintf("cmp %s, #%d", reg(d.Rn), d.Imm)
	case decoder.KindAddImm8:
		return fmt.Sprintf("adds %s, #%d", reg(d.Rd), d.Imm)
	case decoder.KindSubImm8:
		return fmt.Sprintf("subs %s, #%d", reg(d.Rd), d.Imm)

	case decoder.KindDPReg:
		name := dpRegNames[d.DPOp&0xf]
		switch d.DPOp {
		case 8, 10, 11: // TST, CMP, CMN: two-operand, no Rd write
			return fmt.Sprintf("%s %s, %s", name, reg(d.Rn), reg(d.Rm))
		default:
			return fmt.Sprintf("%s %s, %s", name, reg(d.Rd), reg(d.Rm))
		}

	case decoder.KindAddHi:
		return fmt.Sprintf("add %s, %s", reg(d.Rd), reg(d.Rm))
	case decoder.KindCmpHi:
		return fmt.Sprintf("cmp %s, %s", reg(d.Rn), reg(d.Rm))
	case decoder.KindMovHi:
		return fmt.Sprintf("mov %s, %s", reg(d.Rd), reg(d.Rm))
	case decoder.KindBx:
		return fmt.Sprintf("bx %s", reg(d.Rm))
	case decoder.KindBlx:
		return fmt.Sprintf("blx %s", reg(d.Rm))

	case decoder.KindLdrLiteral:
		return fmt.Sprintf("ldr %s, [pc, #%d]", reg(d.Rt), d.Imm)
	case decoder.KindLdrStrReg:
		return fmt.Sprintf("%s %s, [%s, %s]", ldrStrRegName(d.DPOp), reg(d.Rt), reg(d.Rn), reg(d.Rm))
	case decoder.KindLdrStrImm:
		name := "str"
		if d.Link {
			name = "ldr"
		}
		if d.Byte {
			name += "b"
		}
		return fmt.Sprintf("%s %s, [%s, #%d]", name, reg(d.Rt), reg(d.Rn), d.Imm)
	case decoder.KindLdrStrHImm:
		name := "strh"
		if d.Link {
			name = "ldrh"
		}
		return fmt.Sprintf("%s %s, [%s, #%d]", name, reg(d.Rt), reg(d.Rn), d.Imm)
	case decoder.KindLdrStrSP:
		name := "str"
		if d.Link {
			name = "ldr"
		}
		return fmt.Sprintf("%s %s, [sp, #%d]", name, reg(d.Rt), d.Imm)
	case decoder.KindAddSPPC:
		return fmt.Sprintf("add %s, %s, #%d", reg(d.Rd), reg(d.Rn), d.Imm)
	case decoder.KindAddSubSPImm:
		if d.Up {
			return fmt.Sprintf("add sp, sp, #%d", d.Imm)
		}
		return fmt.Sprintf("sub sp, sp, #%d", d.Imm)
	case decoder.KindLdrdStrd:
		name := "strd"
		if d.Link {
			name = "ldrd"
		}
		return fmt.Sprintf("%s %s, %s, [%s, #%d]", name, reg(d.Rt), reg(d.Rt2), reg(d.Rn), d.Imm)
	case decoder.KindStrSingle:
		return fmt.Sprintf("%s %s, [%s, #%d]", strSingleName(d), reg(d.Rt), reg(d.Rn), d.Imm)
	case decoder.KindLdrSingle:
		return fmt.Sprintf("%s %s, [%s, #%d]", ldrSingleName(d), reg(d.Rt), reg(d.Rn), d.Imm)

	case decoder.KindCbz:
		name := "cbz"
		if d.Signed {
			name = "cbnz"
		}
		return fmt.Sprintf("%s %s, .%+d", name, reg(d.Rn), int32(d.Imm))
	case decoder.KindExtendReg:
		return fmt.Sprintf("%s %s, %s", extendName(d.DPOp), reg(d.Rd), reg(d.Rm))
	case decoder.KindRev, decoder.KindRevW:
		return fmt.Sprintf("%s %s, %s", revName(d.DPOp), reg(d.Rd), reg(d.Rm))
	case decoder.KindClz:
		return fmt.Sprintf("clz %s, %s", reg(d.Rd), reg(d.Rm))

	case decoder.KindPush, decoder.KindPushW:
		return fmt.Sprintf("push %s", regList(d.RegList))
	case decoder.KindPop, decoder.KindPopW:
		return fmt.Sprintf("pop %s", regList(d.RegList))
	case decoder.KindStmIA, decoder.KindStmW:
		return fmt.Sprintf("stm %s%s, %s", reg(d.Rn), wback(d.WBack), regList(d.RegList))
	case decoder.KindLdmIA, decoder.KindLdmW:
		return fmt.Sprintf("ldm %s%s, %s", reg(d.Rn), wback(d.WBack), regList(d.RegList))

	case decoder.KindBCond, decoder.KindBCondW:
		return fmt.Sprintf("b%s .%+d", condSuffix(d.Cond), int32(d.Imm))
	case decoder.KindBUncond16, decoder.KindBUncondW:
		return fmt.Sprintf("b .%+d", int32(d.Imm))
	case decoder.KindBl:
		return fmt.Sprintf("bl .%+d", int32(d.Imm))
	case decoder.KindBlxImm:
		return fmt.Sprintf("blx .%+d", int32(d.Imm))

	case decoder.KindHint:
		return "nop"
	case decoder.KindIT:
		return fmt.Sprintf("it %s", condSuffix(d.Cond))
	case decoder.KindSvc:
		return fmt.Sprintf("svc #%d", d.Imm)
	case decoder.KindBkpt16:
		return fmt.Sprintf("bkpt #%d", d.Imm)

	case decoder.KindDPModImm:
		return fmt.Sprintf("%s %s, %s, #%d", dpModImmName(d), reg(d.Rd), reg(d.Rn), d.Imm)
	case decoder.KindDPShiftedReg:
		return fmt.Sprintf("%s %s, %s, %s, %s #%d", dpModImmName(d), reg(d.Rd), reg(d.Rn), reg(d.Rm), shiftNames[d.Shift&3], d.Shamt)
	case decoder.KindMovImmW:
		return fmt.Sprintf("movw %s, #%d", reg(d.Rd), d.Imm)
	case decoder.KindMovtImmW:
		return fmt.Sprintf("movt %s, #%d", reg(d.Rd), d.Imm)

	case decoder.KindMul:
		return fmt.Sprintf("mul %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm))
	case decoder.KindMla:
		return fmt.Sprintf("mla %s, %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm), reg(d.Ra))
	case decoder.KindMls:
		return fmt.Sprintf("mls %s, %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm), reg(d.Ra))
	case decoder.KindSdiv:
		return fmt.Sprintf("sdiv %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm))
	case decoder.KindUdiv:
		return fmt.Sprintf("udiv %s, %s, %s", reg(d.Rd), reg(d.Rn), reg(d.Rm))
	case decoder.KindUmull:
		return fmt.Sprintf("umull %s, %s, %s, %s", reg(d.Rt), reg(d.Rt2), reg(d.Rn), reg(d.Rm))
	case decoder.KindSmull:
		return fmt.Sprintf("smull %s, %s, %s, %s", reg(d.Rt), reg(d.Rt2), reg(d.Rn), reg(d.Rm))
	case decoder.KindUmlal:
		return fmt.Sprintf("umlal %s, %s, %s, %s", reg(d.Rt), reg(d.Rt2), reg(d.Rn), reg(d.Rm))
	case decoder.KindSmlal:
		return fmt.Sprintf("smlal %s, %s, %s, %s", reg(d.Rt), reg(d.Rt2), reg(d.Rn), reg(d.Rm))

	default:
		return fmt.Sprintf(".word 0x%08x ; kind %d", d.Raw, d.Kind)
	}
}

func wback(w bool) string {
	if w {
		return "!"
	}
	return ""
}

func ldrStrRegName(op int) string {
	names := [8]string{"str", "strh", "strb", "ldrsb", "ldr", "ldrh", "ldrb", "ldrsh"}
	return names[op&7]
}

func strSingleName(d decoder.Decoded) string {
	switch {
	case d.Byte:
		return "strb"
	case d.Half:
		return "strh"
	default:
		return "str"
	}
}

func ldrSingleName(d decoder.Decoded) string {
	switch {
	case d.Byte && d.Signed:
		return "ldrsb"
	case d.Byte:
		return "ldrb"
	case d.Half && d.Signed:
		return "ldrsh"
	case d.Half:
		return "ldrh"
	default:
		return "ldr"
	}
}

func extendName(op int) string {
	switch op & 0x13 {
	case 0:
		return "sxth"
	case 1:
		return "sxtb"
	case 2:
		return "uxth"
	case 3:
		return "uxtb"
	default:
		return "extend"
	}
}

func revName(op int) string {
	switch op & 0x3 {
	case 0:
		return "rev"
	case 1:
		return "rev16"
	case 2:
		return "rbit"
	default:
		return "revsh"
	}
}

func dpModImmName(d decoder.Decoded) string {
	name, ok := dpModImmNames[d.DPOp]
	if !ok {
		return fmt.Sprintf("dp.%x", d.DPOp)
	}
	if d.SetFlags {
		return name + "s"
	}
	return name
}
