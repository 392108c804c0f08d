package sim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestDumpRegsUseLowercaseKeys(t *testing.T) {
	s := newTestSimulator(t, "MOVS r0, #5\nMOVS r1, #3\nADDS r2, r0, r1\nBKPT #0xff\n")
	for i := 0; i < 3; i++ {
		s.Step()
	}

	dir := t.TempDir()
	if err := s.Dump(dir); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cpu.json"))
	if err != nil {
		t.Fatalf("reading cpu.json: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshaling cpu.json: %v", err)
	}
	regsRaw, ok := raw["regs"]
	if !ok {
		t.Fatal(`cpu.json missing top-level "regs" key`)
	}

	var regs map[string]uint32
	if err := json.Unmarshal(regsRaw, &regs); err != nil {
		t.Fatalf("unmarshaling regs: %v", err)
	}

	for i := 0; i < 16; i++ {
		lower := "r" + strconv.Itoa(i)
		upper := "R" + strconv.Itoa(i)
		if _, ok := regs[lower]; !ok {
			t.Errorf("regs missing lowercase key %q", lower)
		}
		if _, ok := regs[upper]; ok {
			t.Errorf("regs contains uppercase key %q, want lowercase only", upper)
		}
	}

	if got, want := regs["r2"], uint32(8); got != want {
		t.Errorf("regs[r2] = %d, want %d", got, want)
	}
}
