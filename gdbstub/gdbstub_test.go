package gdbstub

import "testing"

func TestFramePacketChecksum(t *testing.T) {
	got := framePacket("g")
	want := "$g#" + "67" // 'g' == 0x67
	if got != want {
		t.Errorf("framePacket(%q) = %q, want %q", "g", got, want)
	}
}

func TestExtractPacket(t *testing.T) {
	buf := "+$g#67$m0,4#fe"
	pkt, rest, ok := extractPacket(buf)
	if !ok || pkt != "g" {
		t.Fatalf("extractPacket first = %q, %v, want %q, true", pkt, ok, "g")
	}
	pkt, rest, ok = extractPacket(rest)
	if !ok || pkt != "m0,4" {
		t.Fatalf("extractPacket second = %q, %v, want %q, true", pkt, ok, "m0,4")
	}
	if rest != "" {
		t.Errorf("extractPacket left rest = %q, want empty", rest)
	}
}

func TestExtractPacketIncomplete(t *testing.T) {
	_, rest, ok := extractPacket("$g")
	if ok {
		t.Fatalf("extractPacket on incomplete frame returned ok=true")
	}
	if rest != "$g" {
		t.Errorf("extractPacket incomplete rest = %q, want unchanged", rest)
	}
}

func TestParseAddrLen(t *testing.T) {
	addr, length, ok := parseAddrLen("20000000,10")
	if !ok {
		t.Fatal("parseAddrLen failed to parse valid input")
	}
	if addr != 0x20000000 || length != 0x10 {
		t.Errorf("parseAddrLen = (%#x, %#x), want (0x20000000, 0x10)", addr, length)
	}
	if _, _, ok := parseAddrLen("bad"); ok {
		t.Error("parseAddrLen accepted malformed input")
	}
}
