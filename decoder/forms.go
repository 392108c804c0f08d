package decoder

// Form table, in source declaration order: first match wins. Comments
// give the Thumb-2 manual mnemonic/encoding label this entry covers.
// Entries for VFP, coprocessor, exclusive-access, and barrier opcodes
// decode to KindUnimplemented: recognized, but left to the driver's
// "unimplemented form" path (diagnostic, state unchanged, PC advances by
// the decoded length).

func init() {
	register16Forms()
	register32Forms()
}

func register16Forms() {
	// --- Shift (immediate), add, subtract, move, compare (0b000.. / 0b001..) ---

	// LSL Rd, Rm, #imm5 (T1). When imm5==0 this is semantically MOV Rd,
	// Rm with flags -- the genuinely-ambiguous case the spec calls out
	// (mov_reg_T2 vs lsl_imm_T1 share encoding bits). We decode it as
	// LSL; the interpreter's shift-by-0 pass-through makes the two
	// identical in effect, so first-match order does not matter here.
	{
		mask, value := narrowMask(0xf800, 0x0000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindLslImm, Rd: int(bits(w, 2, 0)), Rm: int(bits(w, 5, 3)), Shamt: uint8(bits(w, 10, 6)), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0x0800)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindLsrImm, Rd: int(bits(w, 2, 0)), Rm: int(bits(w, 5, 3)), Shamt: uint8(bits(w, 10, 6)), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0x1000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindAsrImm, Rd: int(bits(w, 2, 0)), Rm: int(bits(w, 5, 3)), Shamt: uint8(bits(w, 10, 6)), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xfe00, 0x1800)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindAddReg3, Rd: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Rm: int(bits(w, 8, 6)), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xfe00, 0x1a00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindSubReg3, Rd: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Rm: int(bits(w, 8, 6)), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xfe00, 0x1c00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindAddImm3, Rd: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Imm: bits(w, 8, 6), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xfe00, 0x1e00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindSubImm3, Rd: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Imm: bits(w, 8, 6), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0x2000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindMovImm8, Rd: int(bits(w, 10, 8)), Imm: bits(w, 7, 0), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0x2800)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindCmpImm8, Rn: int(bits(w, 10, 8)), Imm: bits(w, 7, 0)}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0x3000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindAddImm8, Rd: int(bits(w, 10, 8)), Rn: int(bits(w, 10, 8)), Imm: bits(w, 7, 0), SetFlags: true}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0x3800)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindSubImm8, Rd: int(bits(w, 10, 8)), Rn: int(bits(w, 10, 8)), Imm: bits(w, 7, 0), SetFlags: true}
		})
	}

	// --- Data-processing register (0b010000) ---
	{
		mask, value := narrowMask(0xfc00, 0x4000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindDPReg, DPOp: int(bits(w, 9, 6)), Rd: int(bits(w, 2, 0)), Rn: int(bits(w, 2, 0)), Rm: int(bits(w, 5, 3))}
		})
	}

	// --- Special data processing / branch-exchange (0b010001) ---
	{
		mask, value := narrowMask(0xff00, 0x4400)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			rd := int(bits(w, 2, 0)) | int(boolBit(bit(w, 7)))<<3
			rm := int(bits(w, 6, 3))
			return Decoded{Kind: KindAddHi, Rd: rd, Rn: rd, Rm: rm}
		})
	}
	{
		mask, value := narrowMask(0xff00, 0x4500)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			rn := int(bits(w, 2, 0)) | int(boolBit(bit(w, 7)))<<3
			rm := int(bits(w, 6, 3))
			return Decoded{Kind: KindCmpHi, Rn: rn, Rm: rm}
		})
	}
	{
		mask, value := narrowMask(0xff00, 0x4600)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			rd := int(bits(w, 2, 0)) | int(boolBit(bit(w, 7)))<<3
			rm := int(bits(w, 6, 3))
			return Decoded{Kind: KindMovHi, Rd: rd, Rm: rm}
		})
	}
	{
		mask, value := narrowMask(0xff87, 0x4700)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindBx, Rm: int(bits(w, 6, 3))}
		})
	}
	{
		mask, value := narrowMask(0xff87, 0x4780)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindBlx, Rm: int(bits(w, 6, 3))}
		})
	}

	// --- LDR literal ---
	{
		mask, value := narrowMask(0xf800, 0x4800)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindLdrLiteral, Rt: int(bits(w, 10, 8)), Imm: bits(w, 7, 0) << 2}
		})
	}

	// --- Load/store register offset (0b0101) ---
	{
		mask, value := narrowMask(0xf000, 0x5000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindLdrStrReg, DPOp: int(bits(w, 11, 9)), Rt: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Rm: int(bits(w, 8, 6))}
		})
	}

	// --- Load/store word/byte immediate offset (0b011) ---
	{
		mask, value := narrowMask(0xe000, 0x6000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			byteAccess := bit(w, 12)
			load := bit(w, 11)
			shift := uint32(2)
			if byteAccess {
				shift = 0
			}
			return Decoded{Kind: KindLdrStrImm, Link: load, Byte: byteAccess, Rt: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Imm: bits(w, 10, 6) << shift}
		})
	}

	// --- Load/store halfword immediate offset (0b1000) ---
	{
		mask, value := narrowMask(0xf000, 0x8000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			load := bit(w, 11)
			return Decoded{Kind: KindLdrStrHImm, Link: load, Half: true, Rt: int(bits(w, 2, 0)), Rn: int(bits(w, 5, 3)), Imm: bits(w, 10, 6) << 1}
		})
	}

	// --- Load/store to/from stack (0b1001) ---
	{
		mask, value := narrowMask(0xf000, 0x9000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			load := bit(w, 11)
			return Decoded{Kind: KindLdrStrSP, Link: load, Rt: int(bits(w, 10, 8)), Rn: cpuSP, Imm: bits(w, 7, 0) << 2}
		})
	}

	// --- ADD Rd, SP|PC, #imm ---
	{
		mask, value := narrowMask(0xf000, 0xa000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			usesSP := bit(w, 11)
			rn := 15
			if usesSP {
				rn = cpuSP
			}
			return Decoded{Kind: KindAddSPPC, Rd: int(bits(w, 10, 8)), Rn: rn, Imm: bits(w, 7, 0) << 2}
		})
	}

	// --- ADD/SUB SP, SP, #imm7<<2 ---
	{
		mask, value := narrowMask(0xff00, 0xb000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindAddSubSPImm, Up: !bit(w, 7), Imm: bits(w, 6, 0) << 2}
		})
	}

	// --- CBZ / CBNZ ---
	{
		mask, value := narrowMask(0xf500, 0xb100)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			nonzero := bit(w, 11)
			imm := (bits(w, 8, 3) << 1) | (boolBit(bit(w, 9)) << 6)
			return Decoded{Kind: KindCbz, Rn: int(bits(w, 2, 0)), Imm: imm, Signed: nonzero}
		})
	}

	// --- Extend / reverse (16-bit) ---
	// The opcode sub-field lives in bits [7:6], so only the top byte is
	// fixed here; narrowMask(0xffc0, ...) would have pinned those bits too
	// and matched only one of the four SXTH/SXTB/UXTH/UXTB forms.
	{
		mask, value := narrowMask(0xff00, 0xb200)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindExtendReg, DPOp: int(bits(w, 7, 6)), Rd: int(bits(w, 2, 0)), Rm: int(bits(w, 5, 3))}
		})
	}
	{
		mask, value := narrowMask(0xff00, 0xba00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindRev, DPOp: int(bits(w, 7, 6)), Rd: int(bits(w, 2, 0)), Rm: int(bits(w, 5, 3))}
		})
	}

	// --- PUSH / POP ---
	{
		mask, value := narrowMask(0xfe00, 0xb400)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			list := bits(w, 7, 0)
			if bit(w, 8) {
				list |= 1 << LR
			}
			return Decoded{Kind: KindPush, RegList: uint16(list)}
		})
	}
	{
		mask, value := narrowMask(0xfe00, 0xbc00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			list := bits(w, 7, 0)
			if bit(w, 8) {
				list |= 1 << 15
			}
			return Decoded{Kind: KindPop, RegList: uint16(list)}
		})
	}

	// --- BKPT ---
	{
		mask, value := narrowMask(0xff00, 0xbe00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindBkpt16, Imm: bits(w, 7, 0)}
		})
	}

	// --- Hints: NOP, YIELD, WFE, WFI, SEV (and reserved hints -> also no-op) ---
	{
		mask, value := narrowMask(0xff0f, 0xbf00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindHint, DPOp: int(bits(w, 7, 4))}
		})
	}

	// --- IT ---
	{
		mask, value := narrowMask(0xff00, 0xbf00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindIT, Cond: uint8(bits(w, 7, 4)), Imm: bits(w, 3, 0)}
		})
	}

	// --- STM/LDM (register, increment after; LDM suppresses write-back when
	// the base register is in the list) ---
	{
		mask, value := narrowMask(0xf800, 0xc000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindStmIA, Rn: int(bits(w, 10, 8)), RegList: uint16(bits(w, 7, 0)), WBack: true}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0xc800)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			list := bits(w, 7, 0)
			rn := int(bits(w, 10, 8))
			wback := list&(1<<uint(rn)) == 0
			return Decoded{Kind: KindLdmIA, Rn: rn, RegList: uint16(list), WBack: wback}
		})
	}

	// --- Conditional branch / SVC / unconditional branch ---
	{
		mask, value := narrowMask(0xff00, 0xdf00)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			return Decoded{Kind: KindSvc, Imm: bits(w, 7, 0)}
		})
	}
	{
		mask, value := narrowMask(0xf000, 0xd000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			imm := ThumbSignExtend(bits(w, 7, 0)<<1, 9)
			return Decoded{Kind: KindBCond, Cond: uint8(bits(w, 11, 8)), Imm: imm}
		})
	}
	{
		mask, value := narrowMask(0xf800, 0xe000)
		register(mask, value, 2, func(word uint32) Decoded {
			w := uint32(hw1(word))
			imm := ThumbSignExtend(bits(w, 10, 0)<<1, 12)
			return Decoded{Kind: KindBUncond16, Imm: imm}
		})
	}
}

const cpuSP = 13
const LR = 14

func register32Forms() {
	// --- Load/store multiple, 32-bit (1110 100x x0xx xxxx) ---
	{
		mask, value := uint32(0xffd0_0000), uint32(0xe880_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindStmW, Up: true, Rn: int(bits(word, 19, 16)), RegList: uint16(w2), WBack: bit(word, 21)}
		})
	}
	{
		mask, value := uint32(0xffd0_0000), uint32(0xe890_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindLdmW, Up: true, Rn: int(bits(word, 19, 16)), RegList: uint16(w2), WBack: bit(word, 21)}
		})
	}
	// LDMDB/STMDB (decrement before) - reuse the same Kind with Pre/Up
	// flags so the interpreter's multi-register helper can branch on
	// direction; encoded separately because the W1 opcode differs.
	{
		mask, value := uint32(0xffd0_0000), uint32(0xe900_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindStmW, Pre: true, Rn: int(bits(word, 19, 16)), RegList: uint16(w2), WBack: bit(word, 21)}
		})
	}
	{
		mask, value := uint32(0xffd0_0000), uint32(0xe910_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindLdmW, Pre: true, Rn: int(bits(word, 19, 16)), RegList: uint16(w2), WBack: bit(word, 21)}
		})
	}

	// --- Load/store dual (LDRD/STRD, immediate) ---
	{
		mask, value := uint32(0xfe40_0000), uint32(0xe840_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			load := bit(word, 20)
			return Decoded{
				Kind: KindLdrdStrd, Link: load,
				Rn: int(bits(word, 19, 16)), Rt: int(bits(w2, 15, 12)), Rt2: int(bits(w2, 11, 8)),
				Imm: bits(w2, 7, 0) << 2, Up: bit(word, 23), Pre: bit(word, 24), WBack: bit(word, 21),
			}
		})
	}

	// --- Data-processing (modified immediate), 32-bit ---
	{
		mask, value := uint32(0xfa00_8000), uint32(0xf000_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			imm12 := (bits(word, 26, 26) << 11) | (bits(w2, 14, 12) << 8) | bits(w2, 7, 0)
			return Decoded{
				Kind: KindDPModImm, DPOp: int(bits(word, 24, 21)),
				Rn: int(bits(word, 19, 16)), Rd: int(bits(w2, 11, 8)),
				Imm: imm12, SetFlags: bit(word, 20),
			}
		})
	}

	// --- MOVW / MOVT / ADDW / SUBW (plain binary immediate) ---
	{
		mask, value := uint32(0xfbf0_8000), uint32(0xf240_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			imm := (bits(word, 26, 26) << 11) | (bits(w2, 14, 12) << 8) | bits(w2, 7, 0)
			imm |= bits(word, 19, 16) << 12
			return Decoded{Kind: KindMovImmW, Rd: int(bits(w2, 11, 8)), Imm: imm}
		})
	}
	{
		mask, value := uint32(0xfbf0_8000), uint32(0xf2c0_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			imm := (bits(word, 26, 26) << 11) | (bits(w2, 14, 12) << 8) | bits(w2, 7, 0)
			imm |= bits(word, 19, 16) << 12
			return Decoded{Kind: KindMovtImmW, Rd: int(bits(w2, 11, 8)), Imm: imm}
		})
	}

	// --- Branches and misc control, 32-bit ---
	{
		// Conditional B.W
		mask, value := uint32(0xf800_d000), uint32(0xf000_8000)
		register(mask, value, 4, func(word uint32) Decoded {
			cond := bits(word, 25, 22)
			if cond >= 0xe {
				// cond 111x is the misc-control space (hints, barriers, MSR/MRS).
				return Decoded{Kind: KindUnimplemented}
			}
			w2 := uint32(hw2(word))
			s := bits(word, 26, 26)
			j1 := bit(w2, 13)
			j2 := bit(w2, 11)
			imm11 := bits(w2, 10, 0)
			imm6 := bits(word, 21, 16)
			imm := (s << 20) | (boolBit(j2) << 19) | (boolBit(j1) << 18) | (imm6 << 12) | (imm11 << 1)
			return Decoded{Kind: KindBCondW, Cond: uint8(cond), Imm: ThumbSignExtend(imm, 21)}
		})
	}
	{
		// Unconditional B.W (uses J1/J2 XOR reconstruction of the high bits)
		mask, value := uint32(0xf800_d000), uint32(0xf000_9000)
		register(mask, value, 4, func(word uint32) Decoded {
			return Decoded{Kind: KindBUncondW, Imm: branchDisplacement24(word)}
		})
	}
	{
		// BL
		mask, value := uint32(0xf800_d000), uint32(0xf000_d000)
		register(mask, value, 4, func(word uint32) Decoded {
			return Decoded{Kind: KindBl, Imm: branchDisplacement24(word)}
		})
	}
	{
		// BLX immediate (same shape, bit 12 of hw2 clear instead of set)
		mask, value := uint32(0xf800_d000), uint32(0xf000_c000)
		register(mask, value, 4, func(word uint32) Decoded {
			return Decoded{Kind: KindBlxImm, Imm: branchDisplacement24(word) &^ 0x3}
		})
	}
	{
		// Hint / barrier instructions inside the misc-control space
		// (NOP.W, DMB, DSB, ISB): decode-only no-ops.
		mask, value := uint32(0xfff0_d000), uint32(0xf3a0_8000)
		register(mask, value, 4, func(word uint32) Decoded {
			return Decoded{Kind: KindUnimplemented}
		})
	}
	{
		// MSR/MRS and other privileged misc-control forms: recognized,
		// not executed (privilege modes are out of scope).
		mask, value := uint32(0xfff0_0000), uint32(0xf3e0_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			return Decoded{Kind: KindUnimplemented}
		})
	}

	// --- Data-processing (shifted register), 32-bit ---
	{
		mask, value := uint32(0xfe00_0000), uint32(0xea00_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			shamt := (bits(w2, 14, 12) << 2) | bits(w2, 7, 6)
			return Decoded{
				Kind: KindDPShiftedReg, DPOp: int(bits(word, 24, 21)),
				Rn: int(bits(word, 19, 16)), Rd: int(bits(w2, 11, 8)), Rm: int(bits(w2, 3, 0)),
				Shift: uint8(bits(w2, 5, 4)), Shamt: uint8(shamt), SetFlags: bit(word, 20),
			}
		})
	}

	// --- Store single data item, 32-bit ---
	{
		mask, value := uint32(0xff10_0000), uint32(0xf800_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			size := bits(word, 22, 21)
			d := Decoded{
				Kind: KindStrSingle, Rt: int(bits(w2, 15, 12)), Rn: int(bits(word, 19, 16)),
				Byte: size == 0, Half: size == 1, Imm: w2 & 0xfff, Up: true, Pre: true,
			}
			if !bit(word, 23) && w2&0x0fc0 == 0 {
				// Register offset form: imm field instead holds {Rm, shift}.
				d.Rm = int(bits(w2, 3, 0))
				d.Shamt = uint8(bits(w2, 5, 4))
				d.DPOp = 1 // marks "register offset" for this Kind
			}
			return d
		})
	}

	// --- Load word/halfword/byte, 32-bit (unsigned and signed) ---
	{
		mask, value := uint32(0xfe10_0000), uint32(0xf810_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			size := bits(word, 22, 21)
			signed := bit(word, 24)
			d := Decoded{
				Kind: KindLdrSingle, Rt: int(bits(w2, 15, 12)), Rn: int(bits(word, 19, 16)),
				Byte: size == 0, Half: size == 1, Signed: signed, Imm: w2 & 0xfff, Up: true, Pre: true,
			}
			if !bit(word, 23) && w2&0x0fc0 == 0 && int(bits(word, 19, 16)) != 15 {
				d.Rm = int(bits(w2, 3, 0))
				d.Shamt = uint8(bits(w2, 5, 4))
				d.Shift = ShiftLSL
				d.DPOp = 1 // register-offset marker
			}
			return d
		})
	}
	{
		// LDR.W literal (Rn == PC)
		mask, value := uint32(0xff7f_0000), uint32(0xf85f_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindLdrSingle, Rt: int(bits(w2, 15, 12)), Rn: 15, Imm: w2 & 0xfff, Up: bit(word, 23), Pre: true}
		})
	}

	// --- Register-operand data processing: extend, reverse, CLZ ---
	{
		mask, value := uint32(0xfff0_f0c0), uint32(0xfa00_f080)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindExtendReg, DPOp: int(bits(word, 19, 16)) + 0x10, Rd: int(bits(w2, 11, 8)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0c0), uint32(0xfa90_f080)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindRevW, DPOp: int(bits(w2, 5, 4)), Rd: int(bits(w2, 11, 8)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfab0_f080)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindClz, Rd: int(bits(w2, 11, 8)), Rm: int(bits(w2, 3, 0))}
		})
	}

	// --- Multiply, multiply accumulate, and absolute difference ---
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfb00_f000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindMul, Rd: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f000), uint32(0xfb00_f000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindMla, Rd: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0)), Ra: int(bits(w2, 15, 12))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfb00_f010)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindMls, Rd: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0)), Ra: int(bits(w2, 15, 12))}
		})
	}

	// --- Long multiply, long multiply accumulate, and divide ---
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfb90_f0f0)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindSdiv, Rd: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfbb0_f0f0)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindUdiv, Rd: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfb80_f000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindUmull, Rt: int(bits(w2, 15, 12)), Rt2: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfb80_f000) | 0x0010_0000
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindSmull, Rt: int(bits(w2, 15, 12)), Rt2: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfbe0_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindUmlal, Rt: int(bits(w2, 15, 12)), Rt2: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}
	{
		mask, value := uint32(0xfff0_f0f0), uint32(0xfbc0_0000)
		register(mask, value, 4, func(word uint32) Decoded {
			w2 := uint32(hw2(word))
			return Decoded{Kind: KindSmlal, Rt: int(bits(w2, 15, 12)), Rt2: int(bits(w2, 11, 8)), Rn: int(bits(word, 19, 16)), Rm: int(bits(w2, 3, 0))}
		})
	}

	// --- VFP / coprocessor (1110 11xx / 1111 11xx) and exclusive-access
	// (1110 1000 010x) opcodes: decoder entries with no execution
	// semantics, per spec.md ("FPU opcode decoding is in scope, but
	// arithmetic execution is not") and the non-goal on exclusive access.
	{
		mask, value := uint32(0xec00_0000), uint32(0xec00_0000)
		register(mask, value, 4, func(word uint32) Decoded { return Decoded{Kind: KindUnimplemented} })
	}
	{
		mask, value := uint32(0xffe0_0000), uint32(0xe860_0000)
		register(mask, value, 4, func(word uint32) Decoded { return Decoded{Kind: KindUnimplemented} })
	}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// branchDisplacement24 reconstructs the signed 24/25-bit displacement used
// by BL/B.W/BLX-immediate, including the XOR trick that recovers the two
// high bits of the displacement from the instruction's J1/J2 bits (ARMv7-M
// requires I1 = NOT(J1 XOR S), I2 = NOT(J2 XOR S)).
func branchDisplacement24(word uint32) uint32 {
	w2 := uint32(hw2(word))
	s := bits(word, 26, 26)
	j1 := bit(w2, 13)
	j2 := bit(w2, 11)
	i1 := boolBit(j1) ^ s ^ 1
	i2 := boolBit(j2) ^ s ^ 1
	imm10 := bits(word, 25, 16)
	imm11 := bits(w2, 10, 0)
	imm := (s << 24) | (i1 << 23) | (i2 << 22) | (imm10 << 12) | (imm11 << 1)
	return ThumbSignExtend(imm, 25)
}
