/*
thumb2sim - minimal Thumb-2 test-firmware assembler.

Copyright 2026
*/

// Package asm assembles the small subset of Thumb/Thumb-2 syntax needed
// to write test firmware images for the simulator: data movement,
// arithmetic, branches, load/store, and the BKPT syscall convention. It
// is grounded on the teacher's emu/assemble package: a line scanner
// (skipSpace/getNumber/getNext-style helpers) feeding a mnemonic table,
// generalized here to Thumb's mixed 16-/32-bit instruction lengths and a
// two-pass label-resolution scheme the fixed-length S/370 encoding never
// needed.
package asm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// condCodes maps the condition-code mnemonic suffix used on conditional
// branches to its 4-bit encoding (spec.md §3's 14-condition table, AL
// omitted since plain B is unconditional already).
var condCodes = map[string]uint8{
	"EQ": 0x0, "NE": 0x1, "CS": 0x2, "HS": 0x2, "CC": 0x3, "LO": 0x3,
	"MI": 0x4, "PL": 0x5, "VS": 0x6, "VC": 0x7, "HI": 0x8, "LS": 0x9,
	"GE": 0xA, "LT": 0xB, "GT": 0xC, "LE": 0xD,
}

// Assemble translates a program's worth of source lines into a flat
// binary image starting at base, resolving labels in a first pass.
func Assemble(source string, base uint32) ([]byte, error) {
	lines := splitLines(source)

	labels, lengths, err := scanLabels(lines, base)
	if err != nil {
		return nil, err
	}

	var out []byte
	addr := base
	for i, raw := range lines {
		_, text := stripLabel(raw)
		text = strings.TrimSpace(stripComment(text))
		if text == "" {
			continue
		}
		enc, err := encodeLine(text, addr, labels)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, enc...)
		addr += lengths[i]
	}
	return out, nil
}

// scanLabels performs the first pass: it walks the source computing each
// instruction's address (so forward and backward branch targets resolve)
// without emitting any bytes.
func scanLabels(lines []string, base uint32) (map[string]uint32, []uint32, error) {
	labels := map[string]uint32{}
	lengths := make([]uint32, len(lines))
	addr := base

	for i, raw := range lines {
		label, rest := stripLabel(raw)
		if label != "" {
			if _, dup := labels[label]; dup {
				return nil, nil, fmt.Errorf("line %d: duplicate label %q", i+1, label)
			}
			labels[label] = addr
		}
		text := strings.TrimSpace(stripComment(rest))
		if text == "" {
			continue
		}
		length, err := instructionLength(text)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lengths[i] = length
		addr += length
	}
	return labels, lengths, nil
}

func splitLines(source string) []string {
	return strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// stripLabel splits a leading "name:" off a line, if present.
func stripLabel(line string) (label, rest string) {
	trimmed := strings.TrimSpace(stripComment(line))
	idx := strings.IndexByte(trimmed, ':')
	if idx < 0 {
		return "", line
	}
	candidate := strings.TrimSpace(trimmed[:idx])
	if candidate == "" || strings.ContainsAny(candidate, " \t") {
		return "", line
	}
	return candidate, trimmed[idx+1:]
}

// wideMnemonics are 32-bit on this subset regardless of operand form.
var wideMnemonics = map[string]bool{"BL": true}

func instructionLength(text string) (uint32, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, errors.New("empty instruction")
	}
	mnem := strings.ToUpper(fields[0])
	if wideMnemonics[mnem] {
		return 4, nil
	}
	return 2, nil
}

func encodeLine(text string, addr uint32, labels map[string]uint32) ([]byte, error) {
	fields := strings.SplitN(text, " ", 2)
	mnem := stripITCondSuffix(strings.ToUpper(strings.TrimSpace(fields[0])))
	operands := ""
	if len(fields) == 2 {
		operands = strings.TrimSpace(fields[1])
	}
	args := splitArgs(operands)

	switch mnem {
	case "MOVS":
		return encodeMovImm8(args, true)
	case "MOV":
		if len(args) == 2 && strings.HasPrefix(strings.TrimSpace(args[1]), "#") {
			// IT-governed MOV Rd, #imm (stripped from MOVEQ/MOVNE/...)
			// encodes identically to MOVS: the IT block controls whether
			// the flag update and register write commit, not the bits.
			return encodeMovImm8(args, true)
		}
		return encodeMovHi(args)
	case "ADDS", "ADD":
		return encodeAddSub(args, false, true)
	case "SUBS", "SUB":
		return encodeAddSub(args, true, true)
	case "CMP":
		return encodeCmp(args)
	case "AND", "EOR", "ORR", "MVN", "TST", "MUL", "BIC", "ADC", "SBC", "ROR", "RSB", "CMN":
		return encodeDPReg(mnem, args)
	case "LSL", "LSR", "ASR":
		return encodeShift(mnem, args)
	case "LSLS", "LSRS", "ASRS":
		// The 16-bit shift encodings always update flags; the S suffix
		// is spelled out in source but carries no separate bit pattern.
		return encodeShift(strings.TrimSuffix(mnem, "S"), args)
	case "LDR":
		return encodeLdrStr(args, true, false)
	case "STR":
		return encodeLdrStr(args, false, false)
	case "LDRB":
		return encodeLdrStr(args, true, true)
	case "STRB":
		return encodeLdrStr(args, false, true)
	case "PUSH":
		return encodeRegList(args, 0xb400)
	case "POP":
		return encodeRegList(args, 0xbc00)
	case "LDMIA":
		return encodeLdmStm(splitBaseAndList(operands), 0xc800)
	case "STMIA":
		return encodeLdmStm(splitBaseAndList(operands), 0xc000)
	case "BX":
		return encodeBx(args)
	case "BL":
		return encodeBl(args, addr, labels)
	case "BKPT":
		return encodeBkpt(args)
	case "B":
		return encodeB(args, addr, labels)
	default:
		if isITMnemonic(mnem) {
			return encodeIT(mnem, args)
		}
		if cc, ok := condFromMnemonic(mnem); ok {
			return encodeBCond(cc, args, addr, labels)
		}
		return nil, fmt.Errorf("unknown mnemonic %q", mnem)
	}
}

func condFromMnemonic(mnem string) (uint8, bool) {
	if !strings.HasPrefix(mnem, "B") || len(mnem) < 3 {
		return 0, false
	}
	cc, ok := condCodes[mnem[1:]]
	return cc, ok
}

// condSuffixStrippable lists non-branch mnemonics whose trailing 2-letter
// condition suffix (MOVEQ, LDRNE, ...) is never encoded in the
// instruction's own bits: inside an IT block the condition is implied
// entirely by slot position, so these strip their suffix and assemble
// identically to the unconditioned form. True conditional branches
// (BEQ, BNE, ...) do encode their condition, via Bcc, and are left alone.
var condSuffixStrippable = map[string]bool{
	"MOV": true, "ADD": true, "SUB": true, "CMP": true, "AND": true,
	"ORR": true, "EOR": true, "LDR": true, "STR": true,
}

// stripITCondSuffix strips a trailing condition-code suffix from mnem if
// doing so leaves an exact match in condSuffixStrippable. Anything else
// (MOVS, ADDS, BEQ, LDRB, ...) passes through unchanged; matching against
// the full stripped base rather than just recognizing a condition-code
// suffix is what keeps this from misfiring on mnemonics like MOVS, whose
// trailing "VS" happens to also be a condition-code mnemonic.
func stripITCondSuffix(mnem string) string {
	if len(mnem) <= 3 {
		return mnem
	}
	suffix := mnem[len(mnem)-2:]
	if _, ok := condCodes[suffix]; !ok {
		return mnem
	}
	base := mnem[:len(mnem)-2]
	if condSuffixStrippable[base] {
		return base
	}
	return mnem
}

func splitArgs(operands string) []string {
	if operands == "" {
		return nil
	}
	parts := strings.Split(operands, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func regNum(tok string) (int, error) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	switch tok {
	case "sp":
		return 13, nil
	case "lr":
		return 14, nil
	case "pc":
		return 15, nil
	}
	if !strings.HasPrefix(tok, "r") {
		return 0, fmt.Errorf("expected register, got %q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 15 {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	return n, nil
}

func immediate(tok string) (uint32, error) {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimPrefix(tok, "#")
	base := 10
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate %q: %w", tok, err)
	}
	return uint32(v), nil
}

func u16le(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }

func encodeMovImm8(args []string, _ bool) ([]byte, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: MOVS Rd, #imm8")
	}
	rd, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	imm, err := immediate(args[1])
	if err != nil {
		return nil, err
	}
	if imm > 0xff {
		return nil, errors.New("MOVS immediate out of range")
	}
	return u16le(uint16(0x2000 | (rd << 8) | int(imm))), nil
}

func encodeMovHi(args []string) ([]byte, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: MOV Rd, Rm")
	}
	rd, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	rm, err := regNum(args[1])
	if err != nil {
		return nil, err
	}
	word := 0x4600 | (rm << 3) | (rd & 7)
	if rd >= 8 {
		word |= 1 << 7
	}
	return u16le(uint16(word)), nil
}

func encodeAddSub(args []string, sub bool, setFlags bool) ([]byte, error) {
	_ = setFlags
	if len(args) == 2 {
		args = []string{args[0], args[0], args[1]}
	}
	if len(args) != 3 {
		return nil, errors.New("usage: ADDS/SUBS Rd, Rn, Rm|#imm3")
	}
	rd, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	rn, err := regNum(args[1])
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(strings.TrimSpace(args[2]), "#") {
		imm, err := immediate(args[2])
		if err != nil {
			return nil, err
		}
		if rd == rn && imm <= 0xff && rd < 8 {
			op := uint16(0x3000)
			if sub {
				op = 0x3800
			}
			return u16le(op | uint16(rd<<8) | uint16(imm)), nil
		}
		if imm > 7 {
			return nil, errors.New("ADD/SUB imm3 out of range")
		}
		op := uint16(0x1c00)
		if sub {
			op = 0x1e00
		}
		return u16le(op | uint16(imm<<6) | uint16(rn<<3) | uint16(rd)), nil
	}

	rm, err := regNum(args[2])
	if err != nil {
		return nil, err
	}
	op := uint16(0x1800)
	if sub {
		op = 0x1a00
	}
	return u16le(op | uint16(rm<<6) | uint16(rn<<3) | uint16(rd)), nil
}

func encodeCmp(args []string) ([]byte, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: CMP Rn, #imm8|Rm")
	}
	rn, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(args[1]), "#") {
		imm, err := immediate(args[1])
		if err != nil {
			return nil, err
		}
		if imm > 0xff {
			return nil, errors.New("CMP immediate out of range")
		}
		return u16le(uint16(0x2800 | (rn << 8) | int(imm))), nil
	}
	rm, err := regNum(args[1])
	if err != nil {
		return nil, err
	}
	word := 0x4500 | (rm << 3) | (rn & 7)
	if rn >= 8 {
		word |= 1 << 7
	}
	return u16le(uint16(word)), nil
}

// dpOpCodes mirrors interp's dpAND..dpMVN ordering (AND/EOR/LSL/LSR/ASR/
// ADC/SBC/ROR/TST/RSB/CMP/CMN/ORR/MUL/BIC/MVN).
var dpOpCodes = map[string]int{
	"AND": 0, "EOR": 1, "LSL": 2, "LSR": 3, "ASR": 4, "ADC": 5, "SBC": 6,
	"ROR": 7, "TST": 8, "RSB": 9, "CMN": 11, "ORR": 12, "MUL": 13, "BIC": 14, "MVN": 15,
}

func encodeDPReg(mnem string, args []string) ([]byte, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("usage: %s Rdn, Rm", mnem)
	}
	rd, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	rm, err := regNum(args[1])
	if err != nil {
		return nil, err
	}
	if rd > 7 || rm > 7 {
		return nil, fmt.Errorf("%s only supports low registers", mnem)
	}
	op := dpOpCodes[mnem]
	return u16le(uint16(0x4000 | (op << 6) | (rm << 3) | rd)), nil
}

// shiftImmBase gives the base opcode for LSL/LSR/ASR's immediate-shift
// form (Rd, Rm, #imm5), distinct from their register-controlled form
// (Rdn, Rm) dpOpCodes covers.
var shiftImmBase = map[string]uint16{"LSL": 0x0000, "LSR": 0x0800, "ASR": 0x1000}

// encodeShift dispatches LSL/LSR/ASR to the immediate-shift-amount form
// when given three operands (Rd, Rm, #imm5), and to the existing
// register-controlled-shift form otherwise.
func encodeShift(mnem string, args []string) ([]byte, error) {
	if len(args) != 3 {
		return encodeDPReg(mnem, args)
	}
	rd, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	rm, err := regNum(args[1])
	if err != nil {
		return nil, err
	}
	if rd > 7 || rm > 7 {
		return nil, fmt.Errorf("%s only supports low registers", mnem)
	}
	shamt, err := immediate(args[2])
	if err != nil {
		return nil, err
	}
	if shamt > 31 {
		return nil, fmt.Errorf("%s shift amount out of range", mnem)
	}
	return u16le(shiftImmBase[mnem] | uint16(shamt<<6) | uint16(rm<<3) | uint16(rd)), nil
}

// parseMem parses "[Rn, #imm]" or "[Rn]".
func parseMem(tok string) (rn int, imm uint32, err error) {
	tok = strings.TrimSpace(tok)
	if !strings.HasPrefix(tok, "[") || !strings.HasSuffix(tok, "]") {
		return 0, 0, fmt.Errorf("expected [Rn, #imm], got %q", tok)
	}
	inner := strings.Split(tok[1:len(tok)-1], ",")
	rn, err = regNum(inner[0])
	if err != nil {
		return 0, 0, err
	}
	if len(inner) == 2 {
		imm, err = immediate(inner[1])
		if err != nil {
			return 0, 0, err
		}
	}
	return rn, imm, nil
}

func encodeLdrStr(args []string, load bool, byteAccess bool) ([]byte, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: LDR/STR Rt, [Rn, #imm]")
	}
	rt, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	rn, imm, err := parseMem(args[1])
	if err != nil {
		return nil, err
	}
	shift := uint32(2)
	if byteAccess {
		shift = 0
	}
	if imm%(1<<shift) != 0 {
		return nil, errors.New("immediate offset not aligned")
	}
	imm5 := imm >> shift
	if imm5 > 0x1f {
		return nil, errors.New("immediate offset out of range")
	}
	word := 0x6000 | (int(imm5) << 6) | (rn << 3) | rt
	if byteAccess {
		word |= 1 << 12
	}
	if load {
		word |= 1 << 11
	}
	return u16le(uint16(word)), nil
}

func encodeRegList(args []string, base uint16) ([]byte, error) {
	var list uint16
	extraBit := uint16(1) << 8 // LR for PUSH, PC for POP
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if a == "lr" || a == "LR" || a == "pc" || a == "PC" {
			list |= extraBit
			continue
		}
		r, err := regNum(a)
		if err != nil {
			return nil, err
		}
		if r > 7 {
			return nil, errors.New("PUSH/POP only supports r0-r7 plus lr/pc")
		}
		list |= 1 << r
	}
	return u16le(base | list), nil
}

// isITMnemonic reports whether mnem is IT or an ITxxx (x in {T,E}, up to
// three slots after the first).
func isITMnemonic(mnem string) bool {
	if !strings.HasPrefix(mnem, "IT") {
		return false
	}
	suffix := mnem[2:]
	if len(suffix) > 3 {
		return false
	}
	for _, c := range suffix {
		if c != 'T' && c != 'E' {
			return false
		}
	}
	return true
}

// encodeIT assembles the IT/ITT/ITE/... family: "IT{T,E}* cond". Each
// governed slot's then/else polarity folds into the mask as a bit equal
// to firstcond's LSB for a THEN slot, or its complement for an ELSE slot;
// the mask's remaining low bit marks where the block ends, per the
// ARMv7-M ITSTATE encoding.
func encodeIT(mnem string, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: %s cond", mnem)
	}
	cc, ok := condCodes[strings.ToUpper(strings.TrimSpace(args[0]))]
	if !ok {
		return nil, fmt.Errorf("unknown condition %q", args[0])
	}
	suffix := mnem[2:]
	x := cc & 1
	mask := uint16(1) << uint(3-len(suffix))
	for i, ch := range suffix {
		e := uint16(x)
		if ch == 'E' {
			e ^= 1
		}
		mask |= e << uint(3-i)
	}
	return u16le(0xbf00 | (uint16(cc) << 4) | mask), nil
}

// splitBaseAndList splits LDMIA/STMIA's "Rn!, {reglist}" operand text on
// the comma that separates the base register from the brace-delimited
// list, unlike splitArgs this does not also split on the commas that can
// appear inside the register list itself.
func splitBaseAndList(operands string) []string {
	idx := strings.IndexByte(operands, '{')
	if idx < 0 {
		return splitArgs(operands)
	}
	base := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(operands[:idx]), ","))
	return []string{base, strings.TrimSpace(operands[idx:])}
}

// parseBaseWriteback parses a load/store-multiple base operand of the
// form "Rn!", returning the register and whether the write-back suffix
// was present.
func parseBaseWriteback(tok string) (rn int, wback bool, err error) {
	tok = strings.TrimSpace(tok)
	wback = strings.HasSuffix(tok, "!")
	rn, err = regNum(strings.TrimSuffix(tok, "!"))
	return rn, wback, err
}

// parseRegRangeList parses LDMIA/STMIA's brace-delimited register list,
// which unlike PUSH/POP's allows hyphenated ranges ("{r1-r3}") alongside
// comma-separated registers ("{r1,r2,r3}").
func parseRegRangeList(tok string) (uint16, error) {
	tok = strings.TrimSpace(tok)
	if !strings.HasPrefix(tok, "{") || !strings.HasSuffix(tok, "}") {
		return 0, fmt.Errorf("expected {reglist}, got %q", tok)
	}
	var list uint16
	for _, part := range strings.Split(tok[1:len(tok)-1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.IndexByte(part, '-'); idx >= 0 {
			lo, err := regNum(part[:idx])
			if err != nil {
				return 0, err
			}
			hi, err := regNum(part[idx+1:])
			if err != nil {
				return 0, err
			}
			if hi < lo {
				return 0, fmt.Errorf("invalid register range %q", part)
			}
			for r := lo; r <= hi; r++ {
				list |= 1 << uint(r)
			}
			continue
		}
		r, err := regNum(part)
		if err != nil {
			return 0, err
		}
		list |= 1 << uint(r)
	}
	return list, nil
}

// encodeLdmStm assembles "LDMIA/STMIA Rn!, {reglist}". base selects
// between the STM (0xc000) and LDM (0xc800) encodings; write-back is
// mandatory in this subset's syntax, matching the only form the step
// driver's addressing mode supports.
func encodeLdmStm(args []string, base uint16) ([]byte, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: LDMIA/STMIA Rn!, {reglist}")
	}
	rn, wback, err := parseBaseWriteback(args[0])
	if err != nil {
		return nil, err
	}
	if !wback {
		return nil, errors.New("LDMIA/STMIA requires ! write-back in this subset")
	}
	if rn > 7 {
		return nil, errors.New("LDMIA/STMIA only supports low registers")
	}
	list, err := parseRegRangeList(args[1])
	if err != nil {
		return nil, err
	}
	if list == 0 || list > 0xff {
		return nil, errors.New("LDMIA/STMIA register list limited to r0-r7")
	}
	return u16le(base | uint16(rn<<8) | list), nil
}

func encodeBx(args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.New("usage: BX Rm")
	}
	rm, err := regNum(args[0])
	if err != nil {
		return nil, err
	}
	return u16le(uint16(0x4700 | (rm << 3))), nil
}

func encodeBkpt(args []string) ([]byte, error) {
	imm := uint32(0)
	if len(args) == 1 {
		v, err := immediate(args[0])
		if err != nil {
			return nil, err
		}
		imm = v
	}
	if imm > 0xff {
		return nil, errors.New("BKPT immediate out of range")
	}
	return u16le(uint16(0xbe00 | int(imm))), nil
}

func resolveLabel(args []string, addr uint32, labels map[string]uint32) (int32, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a single branch target")
	}
	target, ok := labels[strings.TrimSpace(args[0])]
	if !ok {
		return 0, fmt.Errorf("undefined label %q", args[0])
	}
	// PC reads as the instruction address + 4 on Thumb.
	return int32(target) - int32(addr+4), nil
}

func encodeB(args []string, addr uint32, labels map[string]uint32) ([]byte, error) {
	disp, err := resolveLabel(args, addr, labels)
	if err != nil {
		return nil, err
	}
	if disp < -2048 || disp > 2046 {
		return nil, errors.New("branch target out of 11-bit range")
	}
	imm11 := uint32(disp>>1) & 0x7ff
	return u16le(uint16(0xe000 | imm11)), nil
}

func encodeBCond(cc uint8, args []string, addr uint32, labels map[string]uint32) ([]byte, error) {
	disp, err := resolveLabel(args, addr, labels)
	if err != nil {
		return nil, err
	}
	if disp < -256 || disp > 254 {
		return nil, errors.New("conditional branch target out of 8-bit range")
	}
	imm8 := uint32(disp>>1) & 0xff
	return u16le(uint16(0xd000 | (uint16(cc) << 8) | uint16(imm8))), nil
}

func encodeBl(args []string, addr uint32, labels map[string]uint32) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.New("usage: BL label")
	}
	target, ok := labels[strings.TrimSpace(args[0])]
	if !ok {
		return nil, fmt.Errorf("undefined label %q", args[0])
	}
	disp := int32(target) - int32(addr+4)
	if disp < -(1<<24) || disp >= (1<<24) {
		return nil, errors.New("BL target out of 24-bit range")
	}
	imm := uint32(disp) >> 1
	s := (imm >> 23) & 1
	i1 := (imm >> 22) & 1
	i2 := (imm >> 21) & 1
	j1 := boolBit(i1 == s)
	j2 := boolBit(i2 == s)
	imm10 := (imm >> 11) & 0x3ff
	imm11 := imm & 0x7ff

	hw1 := uint16(0xf000 | (s << 10) | imm10)
	hw2 := uint16(0xd000 | (j1 << 13) | (j2 << 11) | imm11)

	out := u16le(hw1)
	out = append(out, u16le(hw2)...)
	return out, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
