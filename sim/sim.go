/*
sim - hardware bring-up, the step driver, and state-dump support.

Copyright 2026
*/

// Package sim ties addrspace, cpu, decoder, and interp together: it builds
// an emulator context from a set of hardware parameters, runs the
// fetch-decode-execute-shift loop described by the step driver, and
// produces the on-disk state dump used for debugging.
package sim

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rcornwell/thumb2sim/addrspace"
	"github.com/rcornwell/thumb2sim/cpu"
	"github.com/rcornwell/thumb2sim/decoder"
	"github.com/rcornwell/thumb2sim/interp"
)

// HardwareParams describes the guest memory map and initial firmware
// images, as supplied by the CLI launcher or a test harness.
type HardwareParams struct {
	ROMSize, RAMSize           uint32
	IVTBase, ROMBase, RAMBase  uint32
	ROMImage, RAMImage         string // optional paths to raw binary blobs
}

// Simulator owns the emulator context for one guest machine.
type Simulator struct {
	Ctx *interp.Context
}

// New allocates zero-filled ROM/RAM buffers per p, registers them with the
// address space (ROM read-only, RAM writable), optionally loads the
// supplied images (truncated to the region size, with a diagnostic if the
// file is larger), and resets the CPU from the IVT.
func New(p HardwareParams) (*Simulator, error) {
	mem := addrspace.New()

	romBuf := make([]byte, p.ROMSize)
	if p.ROMImage != "" {
		if err := loadImage(p.ROMImage, romBuf); err != nil {
			return nil, fmt.Errorf("sim: loading ROM image: %w", err)
		}
	}
	ramBuf := make([]byte, p.RAMSize)
	if p.RAMImage != "" {
		if err := loadImage(p.RAMImage, ramBuf); err != nil {
			return nil, fmt.Errorf("sim: loading RAM image: %w", err)
		}
	}

	mem.AddRegion("rom", p.ROMBase, p.ROMSize, romBuf, true, false)
	mem.AddRegion("ram", p.RAMBase, p.RAMSize, ramBuf, false, false)

	ctx := interp.New(mem)
	ctx.CPU.Reset(mem, p.IVTBase)

	return &Simulator{Ctx: ctx}, nil
}

// loadImage reads path into buf, truncating if the file is
// larger than the region (reporting a diagnostic per spec.md's error
// handling design) and leaving the remainder of buf zero if it is
// smaller.
func loadImage(path string, buf []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) > len(buf) {
		slog.Default().Warn("firmware image larger than region, truncating",
			"path", path, "imageSize", len(data), "regionSize", len(buf))
		data = data[:len(buf)]
	}
	copy(buf, data)
	return nil
}

// fetchWord concatenates the two halfwords at PC, low address first into
// the high half of the returned word, matching decoder.hw1/hw2's layout.
func fetchWord(ctx *interp.Context) uint32 {
	pc := ctx.CPU.Reg(cpu.PC)
	hi := ctx.Mem.Read16(pc)
	lo := ctx.Mem.Read16(pc + 2)
	return uint32(hi)<<16 | uint32(lo)
}

// itConditionHolds evaluates the condition governing the slot about to
// execute. IT.Cond already reflects that slot's polarity (ELSE slots
// carry the inverse of firstcond in their low bit), so no separate
// then/else adjustment is needed here.
func itConditionHolds(s *cpu.State) bool {
	return s.CondHolds(s.IT.Cond())
}

// Step performs one pass of the step driver: fetch, IT-guard check,
// decode, execute-or-skip, PC catch-up, IT-vector shift, and PSR echo
// update. It is steps 2-9 of spec.md's step-driver description and is
// exposed standalone so the GDB stub can single-step without looping.
func (s *Simulator) Step() {
	ctx := s.Ctx
	word := fetchWord(ctx)
	d := decoder.Decode(word)

	execute := true
	if ctx.CPU.IT.Active() {
		execute = itConditionHolds(&ctx.CPU)
	}

	shiftIT := true
	if execute {
		shiftIT = ctx.Execute(d)
	} else {
		pcBefore := ctx.CPU.Reg(cpu.PC)
		ctx.CPU.SetReg(cpu.PC, pcBefore+uint32(d.Length))
	}

	ctx.CPU.InsnCount++
	if shiftIT {
		ctx.CPU.IT.Shift()
	}
	ctx.CPU.UpdateITEcho()
}

// Run steps until the host's EndEmulation hook returns true. A nil hook
// means run forever (the caller is expected to stop the process some
// other way, e.g. SIGINT).
func (s *Simulator) Run() {
	for {
		if s.Ctx.Hooks.EndEmulation != nil && s.Ctx.Hooks.EndEmulation(s.Ctx) {
			return
		}
		s.Step()
	}
}
