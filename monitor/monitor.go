/*
thumb2sim - interactive monitor command loop.

Copyright 2026
*/

// Package monitor implements the interactive REPL spec.md §6.6 describes:
// a liner-driven prompt accepting abbreviated commands to single-step,
// run, inspect registers and memory, set breakpoints, and dump state. It
// is grounded on the teacher's command/reader.ConsoleReader (the
// liner.NewLiner/SetCompleter/Prompt loop) and command/parser's
// minimum-abbreviation command table, adapted from per-device commands
// to per-CPU-state ones.
package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/thumb2sim/cpu"
	"github.com/rcornwell/thumb2sim/decoder"
	"github.com/rcornwell/thumb2sim/util/hex"
	"github.com/rcornwell/thumb2sim/disasm"
	"github.com/rcornwell/thumb2sim/sim"
)

type command struct {
	name     string
	min      int // minimum prefix length that still uniquely identifies this command
	process  func(args []string, s *sim.Simulator) (quit bool, err error)
}

var commandTable = []command{
	{name: "step", min: 1, process: cmdStep},
	{name: "continue", min: 1, process: cmdContinue},
	{name: "regs", min: 1, process: cmdRegs},
	{name: "memory", min: 1, process: cmdMemory},
	{name: "break", min: 1, process: cmdBreak},
	{name: "delete", min: 1, process: cmdDelete},
	{name: "disasm", min: 1, process: cmdDisasm},
	{name: "dump", min: 1, process: cmdDump},
	{name: "quit", min: 1, process: cmdQuit},
}

// breakpoints holds addresses that halt Run when reached; checked by the
// monitor's own run loop rather than sim.Simulator.Run, which knows
// nothing about breakpoints.
var breakpoints = map[uint32]bool{}

// Run drives the interactive command loop against s until the user quits
// or aborts with Ctrl-D.
func Run(s *sim.Simulator) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return completeCmd(partial)
	})

	for {
		input, err := line.Prompt("thumb2sim> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			fmt.Println("error reading line: " + err.Error())
			return
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		match := matchCommand(fields[0])
		if match == nil {
			fmt.Println("unknown command: " + fields[0])
			continue
		}

		quit, err := match.process(fields[1:], s)
		if err != nil {
			fmt.Println("error: " + err.Error())
		}
		if quit {
			return
		}
	}
}

func matchCommand(name string) *command {
	name = strings.ToLower(name)
	var found *command
	for i := range commandTable {
		c := &commandTable[i]
		if !strings.HasPrefix(c.name, name) || len(name) < c.min {
			continue
		}
		if found != nil {
			return nil // ambiguous
		}
		found = c
	}
	return found
}

func completeCmd(partial string) []string {
	var out []string
	for _, c := range commandTable {
		if strings.HasPrefix(c.name, strings.ToLower(partial)) {
			out = append(out, c.name)
		}
	}
	return out
}

func cmdStep(args []string, s *sim.Simulator) (bool, error) {
	count := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("step count must be a number: %w", err)
		}
		count = n
	}
	for i := 0; i < count; i++ {
		s.Step()
	}
	printRegs(s)
	return false, nil
}

func cmdContinue(_ []string, s *sim.Simulator) (bool, error) {
	for {
		pc := s.Ctx.CPU.Reg(cpu.PC)
		if breakpoints[pc] {
			fmt.Printf("breakpoint hit at %#08x\n", pc)
			return false, nil
		}
		if s.Ctx.Hooks.EndEmulation != nil && s.Ctx.Hooks.EndEmulation(s.Ctx) {
			return false, nil
		}
		s.Step()
	}
}

func cmdRegs(_ []string, s *sim.Simulator) (bool, error) {
	printRegs(s)
	return false, nil
}

func printRegs(s *sim.Simulator) {
	r := &s.Ctx.CPU
	for i := 0; i < 16; i++ {
		fmt.Printf("r%-2d=%08x  ", i, r.Reg(i))
		if i%4 == 3 {
			fmt.Println()
		}
	}
	fmt.Printf("psr=%08x n=%v z=%v c=%v v=%v q=%v\n",
		r.PSR, r.N(), r.Z(), r.C(), r.V(), r.Q())
}

func cmdMemory(args []string, s *sim.Simulator) (bool, error) {
	if len(args) < 1 {
		return false, errors.New("usage: memory <addr> [count]")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("invalid address: %w", err)
	}
	count := 64
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid count: %w", err)
		}
		count = n
	}
	base := uint32(addr)
	for row := 0; row < count; row += 16 {
		rowLen := 16
		if count-row < rowLen {
			rowLen = count - row
		}
		data := make([]byte, rowLen)
		for i := range data {
			data[i] = s.Ctx.Mem.Read8(base + uint32(row) + uint32(i))
		}
		var line strings.Builder
		hex.FormatWord(&line, []uint32{base + uint32(row)})
		line.WriteByte(' ')
		hex.FormatBytes(&line, true, data)
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
	return false, nil
}

func cmdBreak(args []string, _ *sim.Simulator) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: break <addr>")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("invalid address: %w", err)
	}
	breakpoints[uint32(addr)] = true
	return false, nil
}

func cmdDelete(args []string, _ *sim.Simulator) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: delete <addr>")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("invalid address: %w", err)
	}
	delete(breakpoints, uint32(addr))
	return false, nil
}

func cmdDisasm(args []string, s *sim.Simulator) (bool, error) {
	addr := s.Ctx.CPU.Reg(cpu.PC)
	if len(args) == 1 {
		v, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
		if err != nil {
			return false, fmt.Errorf("invalid address: %w", err)
		}
		addr = uint32(v)
	}
	for i := 0; i < 8; i++ {
		hi := s.Ctx.Mem.Read16(addr)
		word := uint32(hi)<<16 | uint32(s.Ctx.Mem.Read16(addr+2))
		d := decoder.Decode(word)
		fmt.Printf("%08x: %s\n", addr, disasm.Format(d))
		addr += uint32(d.Length)
	}
	return false, nil
}

func cmdDump(args []string, s *sim.Simulator) (bool, error) {
	dir := "dump"
	if len(args) == 1 {
		dir = args[0]
	}
	if err := s.Dump(dir); err != nil {
		return false, err
	}
	fmt.Println("wrote state dump to " + dir)
	return false, nil
}

func cmdQuit(_ []string, _ *sim.Simulator) (bool, error) {
	return true, nil
}
