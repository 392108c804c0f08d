package disasm

import (
	"strings"
	"testing"

	"github.com/rcornwell/thumb2sim/decoder"
)

func fetch16(hw uint16) uint32 { return uint32(hw) << 16 }

func TestFormatMovImm8(t *testing.T) {
	d := decoder.Decode(fetch16(0x2005))
	got := Format(d)
	want := "movs r0, #5"
	if got != want {
		t.Errorf("Format(MOVS r0,#5) = %q, want %q", got, want)
	}
}

func TestFormatAddReg3(t *testing.T) {
	word := uint16(0x1800) | (1 << 6) | (0 << 3) | 2
	d := decoder.Decode(fetch16(word))
	got := Format(d)
	want := "adds r2, r0, r1"
	if got != want {
		t.Errorf("Format(ADDS r2,r0,r1) = %q, want %q", got, want)
	}
}

func TestFormatBxLr(t *testing.T) {
	d := decoder.Decode(fetch16(0x4700 | (14 << 3)))
	got := Format(d)
	want := "bx lr"
	if got != want {
		t.Errorf("Format(BX lr) = %q, want %q", got, want)
	}
}

func TestFormatPushWithLR(t *testing.T) {
	// PUSH {r0, r1, lr}: mask 0xfe00/0xb400, bit 8 = lr present.
	word := uint16(0xb400) | (1 << 8) | 0x3
	d := decoder.Decode(fetch16(word))
	got := Format(d)
	if !strings.HasPrefix(got, "push") || !strings.Contains(got, "lr") {
		t.Errorf("Format(PUSH {r0,r1,lr}) = %q, want it to mention push and lr", got)
	}
}

func TestFormatUndefined(t *testing.T) {
	d := decoder.Decode(fetch16(0xb800))
	got := Format(d)
	if !strings.Contains(got, "undefined") {
		t.Errorf("Format(undecodable) = %q, want it to mention undefined", got)
	}
}

func TestFormatBkpt(t *testing.T) {
	d := decoder.Decode(fetch16(0xbe00 | 0xff))
	got := Format(d)
	want := "bkpt #255"
	if got != want {
		t.Errorf("Format(BKPT #0xff) = %q, want %q", got, want)
	}
}
