package interp

import "github.com/rcornwell/thumb2sim/decoder"

// execIT loads the IT state machine from the decoded firstcond/mask
// fields and immediately re-derives the PSR's IT-echo bits, so a debugger
// reading PSR right after single-stepping the IT instruction sees the
// same value a real core would.
func (ctx *Context) execIT(d decoder.Decoded) {
	ctx.CPU.IT.FromFields(d.Cond, uint8(d.Imm))
	ctx.CPU.UpdateITEcho()
}

// Syscall numbers carried in r0 for the BKPT #0xff guest-syscall trap.
// See guestlib/README.md for the guest-side calling convention.
const (
	syscallRead  = 0
	syscallWrite = 1
	syscallPuts  = 2
	syscallExit  = 3
)

// execBkpt dispatches BKPT. #0xff is reserved as the guest-syscall trap
// (r0 selects the operation, r1/r2 carry its arguments); any other
// immediate is forwarded to the host's Bkpt hook, if one is registered.
func (ctx *Context) execBkpt(d decoder.Decoded) {
	imm := uint8(d.Imm)
	if imm != 0xff {
		if ctx.Hooks.Bkpt != nil {
			ctx.Hooks.Bkpt(ctx, imm)
		}
		return
	}

	r0 := ctx.CPU.Reg(0)
	r1 := ctx.CPU.Reg(1)
	r2 := ctx.CPU.Reg(2)
	switch r0 {
	case syscallExit:
		if ctx.Hooks.SyscallExit != nil {
			ctx.Hooks.SyscallExit(ctx, r1)
		}
	case syscallWrite:
		if ctx.Hooks.SyscallWrite != nil {
			ctx.Hooks.SyscallWrite(ctx, r1, r2)
		}
	case syscallRead:
		if ctx.Hooks.SyscallRead != nil {
			n := ctx.Hooks.SyscallRead(ctx, r1, r2)
			ctx.CPU.SetReg(0, n)
		}
	case syscallPuts:
		if ctx.Hooks.SyscallPuts != nil {
			ctx.Hooks.SyscallPuts(ctx, r1)
		}
	}
}
