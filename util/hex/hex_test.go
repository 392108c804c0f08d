package hex

import (
	"strings"
	"testing"
)

func TestFormatWord(t *testing.T) {
	var b strings.Builder
	FormatWord(&b, []uint32{0x08000100})
	if got, want := b.String(), "08000100 "; got != want {
		t.Errorf("FormatWord = %q, want %q", got, want)
	}
}

func TestFormatBytesSpaced(t *testing.T) {
	var b strings.Builder
	FormatBytes(&b, true, []byte{0x00, 0xff, 0x1a})
	if got, want := b.String(), "00 FF 1A "; got != want {
		t.Errorf("FormatBytes = %q, want %q", got, want)
	}
}

func TestFormatBytesUnspaced(t *testing.T) {
	var b strings.Builder
	FormatBytes(&b, false, []byte{0xde, 0xad})
	if got, want := b.String(), "DEAD"; got != want {
		t.Errorf("FormatBytes = %q, want %q", got, want)
	}
}
