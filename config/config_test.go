package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse empty config: %v", err)
	}
	if cfg.Hardware.ROMBase != 0x08000000 || cfg.Hardware.RAMBase != 0x20000000 {
		t.Errorf("defaults = %#x/%#x, want 0x08000000/0x20000000", cfg.Hardware.ROMBase, cfg.Hardware.RAMBase)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel default = %q, want info", cfg.LogLevel)
	}
}

func TestParseOverrides(t *testing.T) {
	src := `
# a comment line
romsize 64K
ramsize 0x20000
rombase 0x08010000
romimage firmware.bin
loglevel debug
debug
gdb /tmp/thumb2sim.sock
`
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Hardware.ROMSize != 64*1024 {
		t.Errorf("ROMSize = %#x, want 0x10000", cfg.Hardware.ROMSize)
	}
	if cfg.Hardware.RAMSize != 0x20000 {
		t.Errorf("RAMSize = %#x, want 0x20000", cfg.Hardware.RAMSize)
	}
	if cfg.Hardware.ROMBase != 0x08010000 {
		t.Errorf("ROMBase = %#x, want 0x08010000", cfg.Hardware.ROMBase)
	}
	if cfg.Hardware.ROMImage != "firmware.bin" {
		t.Errorf("ROMImage = %q, want firmware.bin", cfg.Hardware.ROMImage)
	}
	if cfg.LogLevel != "debug" || !cfg.Debug {
		t.Errorf("LogLevel/Debug = %q/%v, want debug/true", cfg.LogLevel, cfg.Debug)
	}
	if cfg.GDBSocket != "/tmp/thumb2sim.sock" {
		t.Errorf("GDBSocket = %q, want /tmp/thumb2sim.sock", cfg.GDBSocket)
	}
}

func TestParseUnknownKeyword(t *testing.T) {
	if _, err := Parse(strings.NewReader("bogus 1")); err == nil {
		t.Fatal("expected an error for an unknown keyword")
	}
}

func TestParseScaledNumber(t *testing.T) {
	cases := map[string]uint32{
		"10":   10,
		"0x10": 0x10,
		"4K":   4096,
		"1M":   1024 * 1024,
	}
	for in, want := range cases {
		got, err := parseScaledNumber(in)
		if err != nil {
			t.Fatalf("parseScaledNumber(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseScaledNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
