package addrspace

import "testing"

func newTestSpace() *Space {
	s := New()
	s.AddRegion("rom", 0x08000000, 0x1000, nil, true, false)
	s.AddRegion("ram", 0x20000000, 0x1000, nil, false, false)
	return s
}

func TestFindRespectsBounds(t *testing.T) {
	s := newTestSpace()

	if sl := s.Find(0x08000000, 4); sl == nil || sl.Name != "rom" {
		t.Fatalf("expected rom slice at base")
	}
	if sl := s.Find(0x08000ffd, 4); sl != nil {
		t.Fatalf("expected no slice for access crossing the end of rom")
	}
	if sl := s.Find(0x07ffffff, 1); sl != nil {
		t.Fatalf("expected no slice just below rom")
	}
}

func TestWriteReadRoundTrip8(t *testing.T) {
	s := newTestSpace()
	s.Write8(0x20000010, 0xab)
	if got := s.Read8(0x20000010); got != 0xab {
		t.Fatalf("got %#x, want 0xab", got)
	}
}

func TestWrite32Read16LittleEndian(t *testing.T) {
	s := newTestSpace()
	s.Write32(0x20000000, 0x11223344)
	if got := s.Read16(0x20000000); got != 0x3344 {
		t.Fatalf("got %#x, want 0x3344", got)
	}
	if got := s.Read16(0x20000002); got != 0x1122 {
		t.Fatalf("got %#x, want 0x1122", got)
	}
}

func TestWriteToReadOnlyDiscarded(t *testing.T) {
	s := newTestSpace()
	before := s.Read32(0x08000000)
	s.Write32(0x08000000, 0xdeadbeef)
	if got := s.Read32(0x08000000); got != before {
		t.Fatalf("write to ROM slice should be discarded, got %#x", got)
	}
}

func TestUnmappedReadReturnsZero(t *testing.T) {
	s := newTestSpace()
	if got := s.Read32(0xffff0000); got != 0 {
		t.Fatalf("unmapped read should return zero, got %#x", got)
	}
}

func TestUnmappedWriteDiscarded(t *testing.T) {
	s := newTestSpace()
	s.Write8(0xffff0000, 0x42) // must not panic
}

func TestAddRegionOverflowPanics(t *testing.T) {
	s := New()
	for i := 0; i < MaxSlices; i++ {
		s.AddRegion("x", uint32(i*0x1000), 0x1000, nil, false, false)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on slice table overflow")
		}
	}()
	s.AddRegion("overflow", 0x100000, 0x1000, nil, false, false)
}

func TestMemptrViewsBackingBuffer(t *testing.T) {
	s := newTestSpace()
	view := s.Memptr(0x20000000, 4)
	if view == nil {
		t.Fatalf("expected a view into ram")
	}
	view[0] = 0x55
	if got := s.Read8(0x20000000); got != 0x55 {
		t.Fatalf("memptr view should alias the backing buffer, got %#x", got)
	}
}

func TestShadowSlicesExcludedByCaller(t *testing.T) {
	s := New()
	s.AddRegion("ram", 0x20000000, 0x100, nil, false, false)
	s.AddRegion("ram_alias", 0x20000000, 0x100, nil, false, true)

	var names []string
	for _, sl := range s.Slices() {
		if sl.Shadow {
			continue
		}
		names = append(names, sl.Name)
	}
	if len(names) != 1 || names[0] != "ram" {
		t.Fatalf("expected only non-shadow slices enumerated, got %v", names)
	}
}
