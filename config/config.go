/*
thumb2sim - configuration file parser.

Copyright 2026
*/

// Package config reads the simulator's startup configuration file: a
// line-oriented format modeled on the teacher's configparser grammar
// ('#' starts a comment, blank lines are skipped, each remaining line is
// a keyword followed by whitespace-separated arguments) but scoped down
// to the handful of settings this simulator needs instead of a device
// model registry.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/thumb2sim/sim"
)

// Config is the fully-parsed startup configuration.
type Config struct {
	Hardware sim.HardwareParams

	LogFile  string
	LogLevel string // "debug", "info", "warn", "error"
	Debug    bool

	GDBSocket string // unix socket path; empty disables the stub
}

// Load reads and parses a configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a configuration stream, applying defaults for any setting
// the file does not mention.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{
		Hardware: sim.HardwareParams{
			ROMSize: 0x10000,
			RAMSize: 0x10000,
			IVTBase: 0x08000000,
			ROMBase: 0x08000000,
			RAMBase: 0x20000000,
		},
		LogLevel: "info",
	}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := cfg.applyLine(fields); err != nil {
			return nil, fmt.Errorf("config: line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: reading: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyLine(fields []string) error {
	keyword := strings.ToUpper(fields[0])
	args := fields[1:]

	switch keyword {
	case "ROMSIZE":
		v, err := parseSize(args)
		if err != nil {
			return err
		}
		c.Hardware.ROMSize = v
	case "RAMSIZE":
		v, err := parseSize(args)
		if err != nil {
			return err
		}
		c.Hardware.RAMSize = v
	case "ROMBASE":
		v, err := parseAddr(args)
		if err != nil {
			return err
		}
		c.Hardware.ROMBase = v
	case "RAMBASE":
		v, err := parseAddr(args)
		if err != nil {
			return err
		}
		c.Hardware.RAMBase = v
	case "IVTBASE":
		v, err := parseAddr(args)
		if err != nil {
			return err
		}
		c.Hardware.IVTBase = v
	case "ROMIMAGE":
		if len(args) != 1 {
			return fmt.Errorf("romimage requires exactly one path")
		}
		c.Hardware.ROMImage = args[0]
	case "RAMIMAGE":
		if len(args) != 1 {
			return fmt.Errorf("ramimage requires exactly one path")
		}
		c.Hardware.RAMImage = args[0]
	case "LOGFILE":
		if len(args) != 1 {
			return fmt.Errorf("logfile requires exactly one path")
		}
		c.LogFile = args[0]
	case "LOGLEVEL":
		if len(args) != 1 {
			return fmt.Errorf("loglevel requires exactly one value")
		}
		c.LogLevel = strings.ToLower(args[0])
	case "DEBUG":
		c.Debug = true
	case "GDB":
		if len(args) != 1 {
			return fmt.Errorf("gdb requires exactly one socket path")
		}
		c.GDBSocket = args[0]
	default:
		return fmt.Errorf("unknown configuration keyword %q", fields[0])
	}
	return nil
}

func parseSize(args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one size argument")
	}
	return parseScaledNumber(args[0])
}

func parseAddr(args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one address argument")
	}
	return parseScaledNumber(args[0])
}

// parseScaledNumber accepts decimal, 0x-hex, or a decimal value suffixed
// with K or M (multiplying by 1024 or 1024*1024), matching the address
// grammar the teacher's configparser documents for device sizes.
func parseScaledNumber(s string) (uint32, error) {
	mult := uint64(1)
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'K', 'k':
			mult = 1024
			s = s[:n-1]
		case 'M', 'm':
			mult = 1024 * 1024
			s = s[:n-1]
		}
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return uint32(v * mult), nil
}
