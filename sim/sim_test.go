package sim

import (
	"encoding/binary"
	"testing"

	"github.com/rcornwell/thumb2sim/asm"
	"github.com/rcornwell/thumb2sim/cpu"
	"github.com/rcornwell/thumb2sim/interp"
)

// buildROM assembles body at codeAddr and prepends an IVT (SP, then
// entry point with bit 0 set per the Thumb-mode convention) at romBase.
func buildROM(t *testing.T, romBase, codeAddr, spInit uint32, body string) []byte {
	t.Helper()
	code, err := asm.Assemble(body, codeAddr)
	if err != nil {
		t.Fatalf("assembling firmware: %v", err)
	}
	rom := make([]byte, codeAddr-romBase+uint32(len(code)))
	binary.LittleEndian.PutUint32(rom[0:4], spInit)
	binary.LittleEndian.PutUint32(rom[4:8], codeAddr|1)
	copy(rom[codeAddr-romBase:], code)
	return rom
}

func newTestSimulator(t *testing.T, body string) *Simulator {
	t.Helper()
	const romBase = 0x08000000
	const codeAddr = romBase + 0x100
	const spInit = 0x20001000

	rom := buildROM(t, romBase, codeAddr, spInit, body)

	s, err := New(HardwareParams{
		ROMSize: 0x1000,
		RAMSize: 0x1000,
		IVTBase: romBase,
		ROMBase: romBase,
		RAMBase: 0x20000000,
	})
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	copy(s.Ctx.Mem.Memptr(romBase, uint32(len(rom))), rom)
	s.Ctx.CPU.Reset(s.Ctx.Mem, romBase)
	return s
}

func TestResetLoadsSPAndPC(t *testing.T) {
	s := newTestSimulator(t, "MOVS r0, #1\nBKPT #0xff\n")
	if got := s.Ctx.CPU.Reg(cpu.SP); got != 0x20001000 {
		t.Errorf("SP after reset = %#x, want 0x20001000", got)
	}
	if got := s.Ctx.CPU.Reg(cpu.PC); got != 0x08000100 {
		t.Errorf("PC after reset = %#x, want 0x08000100", got)
	}
}

func TestStepMovsAddsCmp(t *testing.T) {
	s := newTestSimulator(t, "MOVS r0, #5\nMOVS r1, #3\nADDS r2, r0, r1\nCMP r2, #8\n")
	for i := 0; i < 4; i++ {
		s.Step()
	}
	if got := s.Ctx.CPU.Reg(2); got != 8 {
		t.Errorf("r2 = %d, want 8", got)
	}
	if !s.Ctx.CPU.Z() {
		t.Error("Z flag clear after CMP r2,#8 with r2==8, want set")
	}
	if s.Ctx.CPU.InsnCount != 4 {
		t.Errorf("InsnCount = %d, want 4", s.Ctx.CPU.InsnCount)
	}
}

func TestBranchLoop(t *testing.T) {
	s := newTestSimulator(t, "MOVS r0, #0\nloop:\nADDS r0, r0, #1\nCMP r0, #3\nBNE loop\n")
	for i := 0; i < 20 && s.Ctx.CPU.Reg(0) != 3; i++ {
		s.Step()
	}
	if got := s.Ctx.CPU.Reg(0); got != 3 {
		t.Fatalf("r0 = %d, want 3 (loop should have converged)", got)
	}
}

func TestBarrelShiftCarryOut(t *testing.T) {
	// spec.md §8 scenario 4: mov r0,#0x80000000 is built here as
	// MOVS r0,#1 ; LSL r0,r0,#31 since the assembler has no 32-bit
	// modified-immediate MOV encoder; what's under test is the LSL
	// carry-out, not how R0 got its value.
	s := newTestSimulator(t, "MOVS r0, #1\nLSL r0, r0, #31\nLSLS r1, r0, #1\nBKPT #0xff\n")
	for i := 0; i < 3; i++ {
		s.Step()
	}
	if got := s.Ctx.CPU.Reg(0); got != 0x80000000 {
		t.Fatalf("r0 = %#x, want 0x80000000", got)
	}
	if got := s.Ctx.CPU.Reg(1); got != 0 {
		t.Errorf("r1 = %#x, want 0", got)
	}
	if !s.Ctx.CPU.Z() {
		t.Error("Z flag clear after shifting out the only set bit, want set")
	}
	if !s.Ctx.CPU.C() {
		t.Error("C flag clear after LSL shifted bit 31 out, want set")
	}
}

func TestITBlockThenElse(t *testing.T) {
	// spec.md §8 scenario 5, R0==0 branch: cmp r0,#0 holds EQ, so the
	// THEN slot (moveq) commits and the ELSE slot (movne) is skipped.
	eq := newTestSimulator(t, "MOVS r0, #0\nCMP r0, #0\nITE EQ\nMOVEQ r1, #10\nMOVNE r2, #20\nBKPT #0xff\n")
	for i := 0; i < 5; i++ {
		eq.Step()
	}
	if got := eq.Ctx.CPU.Reg(1); got != 10 {
		t.Errorf("R0==0: r1 = %d, want 10", got)
	}
	if got := eq.Ctx.CPU.Reg(2); got != 0 {
		t.Errorf("R0==0: r2 = %d, want 0 (MOVNE slot skipped)", got)
	}
	if eq.Ctx.CPU.IT.Active() {
		t.Error("IT state should be empty after both governed slots retire")
	}

	// spec.md §8 scenario 5, R0!=0 branch: cmp r0,#0 fails EQ, so THEN is
	// skipped and ELSE commits.
	ne := newTestSimulator(t, "MOVS r0, #1\nCMP r0, #0\nITE EQ\nMOVEQ r1, #10\nMOVNE r2, #20\nBKPT #0xff\n")
	for i := 0; i < 5; i++ {
		ne.Step()
	}
	if got := ne.Ctx.CPU.Reg(1); got != 0 {
		t.Errorf("R0!=0: r1 = %d, want 0 (MOVEQ slot skipped)", got)
	}
	if got := ne.Ctx.CPU.Reg(2); got != 20 {
		t.Errorf("R0!=0: r2 = %d, want 20", got)
	}
}

func TestLdmStmWriteback(t *testing.T) {
	// spec.md §8 scenario 6. The assembler has no "ldr r0, =RAM_BASE"
	// literal-pool pseudo-op, so the base address is seeded directly into
	// R0 before stepping the STMIA/LDMIA pair under test.
	s := newTestSimulator(t, "STMIA r0!, {r1-r3}\nLDMIA r4!, {r5-r7}\nBKPT #0xff\n")
	const ramBase = 0x20000000
	s.Ctx.CPU.SetReg(0, ramBase)
	s.Ctx.CPU.SetReg(1, 0x11111111)
	s.Ctx.CPU.SetReg(2, 0x22222222)
	s.Ctx.CPU.SetReg(3, 0x33333333)
	s.Ctx.CPU.SetReg(4, ramBase)

	s.Step() // STMIA r0!, {r1-r3}
	if got := s.Ctx.CPU.Reg(0); got != ramBase+12 {
		t.Errorf("R0 after STMIA = %#x, want %#x", got, ramBase+12)
	}
	if got := s.Ctx.Mem.Read32(ramBase); got != 0x11111111 {
		t.Errorf("mem[RAM_BASE] = %#x, want 0x11111111", got)
	}
	if got := s.Ctx.Mem.Read32(ramBase + 4); got != 0x22222222 {
		t.Errorf("mem[RAM_BASE+4] = %#x, want 0x22222222", got)
	}
	if got := s.Ctx.Mem.Read32(ramBase + 8); got != 0x33333333 {
		t.Errorf("mem[RAM_BASE+8] = %#x, want 0x33333333", got)
	}

	s.Step() // LDMIA r4!, {r5-r7}
	if got := s.Ctx.CPU.Reg(5); got != 0x11111111 {
		t.Errorf("R5 after LDMIA = %#x, want 0x11111111", got)
	}
	if got := s.Ctx.CPU.Reg(6); got != 0x22222222 {
		t.Errorf("R6 after LDMIA = %#x, want 0x22222222", got)
	}
	if got := s.Ctx.CPU.Reg(7); got != 0x33333333 {
		t.Errorf("R7 after LDMIA = %#x, want 0x33333333", got)
	}
	if got := s.Ctx.CPU.Reg(4); got != ramBase+12 {
		t.Errorf("R4 after LDMIA = %#x, want %#x", got, ramBase+12)
	}
}

func TestSyscallPutsHook(t *testing.T) {
	s := newTestSimulator(t, "MOVS r0, #2\nBKPT #0xff\n")
	var gotAddr uint32
	var called bool
	s.Ctx.Hooks.SyscallPuts = func(ctx *interp.Context, addr uint32) {
		called = true
		gotAddr = addr
	}
	s.Step() // MOVS r0, #2
	s.Step() // BKPT #0xff -> dispatches to SyscallPuts with R1
	if !called {
		t.Fatal("SyscallPuts hook was not invoked")
	}
	_ = gotAddr
}
