package interp

import (
	"testing"

	"github.com/rcornwell/thumb2sim/addrspace"
	"github.com/rcornwell/thumb2sim/cpu"
	"github.com/rcornwell/thumb2sim/decoder"
)

func newTestContext() *Context {
	mem := addrspace.New()
	mem.AddRegion("ram", 0x20000000, 0x1000, nil, false, false)
	ctx := New(mem)
	ctx.CPU.Regs[cpu.PC] = 0x08000000
	return ctx
}

func TestExecMovImm8(t *testing.T) {
	ctx := newTestContext()
	d := decoder.Decoded{Kind: decoder.KindMovImm8, Rd: 3, Imm: 42, Length: 2}
	ctx.Execute(d)
	if got := ctx.CPU.Reg(3); got != 42 {
		t.Errorf("r3 = %d, want 42", got)
	}
	if ctx.CPU.Z() {
		t.Error("Z set after MOVS r3,#42, want clear")
	}
}

func TestExecMovImm8Zero(t *testing.T) {
	ctx := newTestContext()
	d := decoder.Decoded{Kind: decoder.KindMovImm8, Rd: 0, Imm: 0, Length: 2}
	ctx.Execute(d)
	if !ctx.CPU.Z() {
		t.Error("Z clear after MOVS r0,#0, want set")
	}
}

func TestExecAddReg3Carry(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetReg(1, 0xffffffff)
	ctx.CPU.SetReg(2, 1)
	d := decoder.Decoded{Kind: decoder.KindAddReg3, Rd: 0, Rn: 1, Rm: 2, Length: 2}
	ctx.Execute(d)
	if got := ctx.CPU.Reg(0); got != 0 {
		t.Errorf("r0 = %#x, want 0", got)
	}
	if !ctx.CPU.C() {
		t.Error("C clear after 0xffffffff+1 overflow, want set")
	}
	if !ctx.CPU.Z() {
		t.Error("Z clear after result==0, want set")
	}
}

func TestExecCmpImm8SetsFlags(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetReg(2, 8)
	d := decoder.Decoded{Kind: decoder.KindCmpImm8, Rn: 2, Imm: 8, Length: 2}
	ctx.Execute(d)
	if !ctx.CPU.Z() {
		t.Error("Z clear after CMP r2,#8 with r2==8, want set")
	}
	if got := ctx.CPU.Reg(2); got != 8 {
		t.Error("CMP must not write its register operand")
	}
}

func TestExecBCondTaken(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetFlag(cpu.MaskZ, true)
	pc := ctx.CPU.Reg(cpu.PC)
	d := decoder.Decoded{Kind: decoder.KindBCond, Cond: cpu.CondEQ, Imm: 16, Length: 2}
	ctx.Execute(d)
	// pc reads as pc+4 for the branch base; +4 (current instruction
	// auto-advance is skipped by the branch handler writing PC directly).
	want := pc + 4 + 16
	if got := ctx.CPU.Reg(cpu.PC); got != want {
		t.Errorf("PC after taken BEQ = %#x, want %#x", got, want)
	}
}

func TestExecBCondNotTaken(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetFlag(cpu.MaskZ, false)
	pc := ctx.CPU.Reg(cpu.PC)
	d := decoder.Decoded{Kind: decoder.KindBCond, Cond: cpu.CondEQ, Imm: 16, Length: 2}
	ctx.Execute(d)
	if got := ctx.CPU.Reg(cpu.PC); got != pc+2 {
		t.Errorf("PC after not-taken BEQ = %#x, want %#x", got, pc+2)
	}
}

func TestExecPushPop(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetReg(cpu.SP, 0x20000100)
	ctx.CPU.SetReg(0, 0x11111111)
	ctx.CPU.SetReg(1, 0x22222222)
	push := decoder.Decoded{Kind: decoder.KindPush, RegList: 0x3, Length: 2}
	ctx.Execute(push)
	if got := ctx.CPU.Reg(cpu.SP); got != 0x200000f8 {
		t.Fatalf("SP after PUSH {r0,r1} = %#x, want 0x200000f8", got)
	}

	ctx.CPU.SetReg(0, 0)
	ctx.CPU.SetReg(1, 0)
	pop := decoder.Decoded{Kind: decoder.KindPop, RegList: 0x3, Length: 2}
	ctx.Execute(pop)
	if got := ctx.CPU.Reg(0); got != 0x11111111 {
		t.Errorf("r0 after POP = %#x, want 0x11111111", got)
	}
	if got := ctx.CPU.Reg(1); got != 0x22222222 {
		t.Errorf("r1 after POP = %#x, want 0x22222222", got)
	}
	if got := ctx.CPU.Reg(cpu.SP); got != 0x20000100 {
		t.Errorf("SP after POP = %#x, want 0x20000100", got)
	}
}

func TestExecBkptSyscallExit(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetReg(0, syscallExit)
	ctx.CPU.SetReg(1, 7)

	var gotStatus uint32
	var called bool
	ctx.Hooks.SyscallExit = func(_ *Context, status uint32) {
		called = true
		gotStatus = status
	}

	d := decoder.Decoded{Kind: decoder.KindBkpt16, Imm: 0xff, Length: 2}
	ctx.Execute(d)
	if !called {
		t.Fatal("SyscallExit hook was not invoked")
	}
	if gotStatus != 7 {
		t.Errorf("exit status = %d, want 7", gotStatus)
	}
}

func TestExecBkptNonSyscallForwardsToHook(t *testing.T) {
	ctx := newTestContext()
	var gotImm uint8
	ctx.Hooks.Bkpt = func(_ *Context, imm uint8) {
		gotImm = imm
	}
	d := decoder.Decoded{Kind: decoder.KindBkpt16, Imm: 3, Length: 2}
	ctx.Execute(d)
	if gotImm != 3 {
		t.Errorf("Bkpt hook imm = %d, want 3", gotImm)
	}
}

func TestExecDPModImmAnd(t *testing.T) {
	ctx := newTestContext()
	ctx.CPU.SetReg(1, 0xff00ffff)
	// Imm=0xff expands (control nibble 0) to the plain byte 0x000000ff.
	d := decoder.Decoded{Kind: decoder.KindDPModImm, DPOp: 0x0, Rn: 1, Rd: 0, Imm: 0xff, Length: 4}
	ctx.Execute(d)
	if got := ctx.CPU.Reg(0); got != 0xff {
		t.Errorf("AND result = %#x, want 0xff", got)
	}
}
