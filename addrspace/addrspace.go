/*
addrspace - segmented 32-bit guest address space

Copyright 2026

Permission is hereby granted, free of charge, to any person obtaining a
copy of this software and associated documentation files (the "Software"),
to deal in the Software without restriction, including without limitation
the rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, and to permit persons to whom the
Software is furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
*/

// Package addrspace implements the guest's segmented physical address
// space: an ordered collection of slices (ROM, RAM, and anything else the
// host maps in) with byte/half/word accessors and read-only enforcement.
package addrspace

import (
	"encoding/binary"
	"fmt"
	"log/slog"
)

// MaxSlices bounds the slice table, matching the compile-time cap described
// by the data model: ROM, RAM, and a couple of spare mappings.
const MaxSlices = 4

// Slice is one contiguous mapped region of the guest address space.
type Slice struct {
	Name     string
	Begin    uint32 // inclusive
	End      uint32 // exclusive
	Buf      []byte
	ReadOnly bool
	Shadow   bool // alias of another slice; excluded from dump enumeration
}

func (s *Slice) contains(addr uint32, length uint32) bool {
	if length == 0 {
		return false
	}
	last := addr + length - 1
	if last < addr {
		return false // wrapped
	}
	return addr >= s.Begin && last < s.End
}

// Space is the ordered collection of slices making up the guest address
// space. Ordering defines priority when ranges overlap: the first slice
// whose range covers a request wins.
type Space struct {
	slices []*Slice
}

// New returns an empty address space.
func New() *Space {
	return &Space{slices: make([]*Slice, 0, MaxSlices)}
}

// AddRegion appends a mapped slice. It aborts the process if the slice
// table is full: per the error-handling design, a configuration error at
// init is the one fatal path in this simulator.
func (s *Space) AddRegion(name string, begin uint32, length uint32, buf []byte, readOnly bool, shadow bool) {
	if len(s.slices) >= MaxSlices {
		panic(fmt.Sprintf("addrspace: slice table full, cannot add region %q", name))
	}
	if buf == nil {
		buf = make([]byte, length)
	}
	s.slices = append(s.slices, &Slice{
		Name:     name,
		Begin:    begin,
		End:      begin + length,
		Buf:      buf,
		ReadOnly: readOnly,
		Shadow:   shadow,
	})
}

// Slices returns the slices in priority order. Callers must not mutate the
// returned slice of pointers; the backing buffers may be mutated through
// Memptr.
func (s *Space) Slices() []*Slice {
	return s.slices
}

// Find returns the first slice whose range fully contains
// [address, address+length-1], or nil if no slice covers the request.
func (s *Space) Find(address uint32, length uint32) *Slice {
	for _, sl := range s.slices {
		if sl.contains(address, length) {
			return sl
		}
	}
	return nil
}

// Memptr gives a raw byte view into the slice covering address, sized len
// bytes, or nil if the address is unmapped. Used by the host-callback
// surface to fulfill guest read/write syscalls and by the state dumper.
func (s *Space) Memptr(address uint32, length uint32) []byte {
	sl := s.Find(address, length)
	if sl == nil {
		return nil
	}
	off := address - sl.Begin
	return sl.Buf[off : off+length]
}

func (s *Space) fault(kind string, width int, address uint32) {
	slog.Default().Warn("addrspace fault", "kind", kind, "width", width, "address", fmt.Sprintf("0x%08x", address))
}

// Read8 loads an 8-bit value. Unmapped reads are reported as a diagnostic
// and return zero.
func (s *Space) Read8(address uint32) uint8 {
	sl := s.Find(address, 1)
	if sl == nil {
		s.fault("unmapped-read", 8, address)
		return 0
	}
	return sl.Buf[address-sl.Begin]
}

// Read16 loads a little-endian 16-bit value.
func (s *Space) Read16(address uint32) uint16 {
	sl := s.Find(address, 2)
	if sl == nil {
		s.fault("unmapped-read", 16, address)
		return 0
	}
	off := address - sl.Begin
	return binary.LittleEndian.Uint16(sl.Buf[off : off+2])
}

// Read32 loads a little-endian 32-bit value.
func (s *Space) Read32(address uint32) uint32 {
	sl := s.Find(address, 4)
	if sl == nil {
		s.fault("unmapped-read", 32, address)
		return 0
	}
	off := address - sl.Begin
	return binary.LittleEndian.Uint32(sl.Buf[off : off+4])
}

// Write8 stores an 8-bit value. Writes to a read-only slice are reported
// and discarded; writes to an unmapped address are reported and discarded.
func (s *Space) Write8(address uint32, value uint8) {
	sl := s.Find(address, 1)
	if sl == nil {
		s.fault("unmapped-write", 8, address)
		return
	}
	if sl.ReadOnly {
		s.fault("write-to-rom", 8, address)
		return
	}
	sl.Buf[address-sl.Begin] = value
}

// Write16 stores a little-endian 16-bit value.
func (s *Space) Write16(address uint32, value uint16) {
	sl := s.Find(address, 2)
	if sl == nil {
		s.fault("unmapped-write", 16, address)
		return
	}
	if sl.ReadOnly {
		s.fault("write-to-rom", 16, address)
		return
	}
	off := address - sl.Begin
	binary.LittleEndian.PutUint16(sl.Buf[off:off+2], value)
}

// Write32 stores a little-endian 32-bit value.
func (s *Space) Write32(address uint32, value uint32) {
	sl := s.Find(address, 4)
	if sl == nil {
		s.fault("unmapped-write", 32, address)
		return
	}
	if sl.ReadOnly {
		s.fault("write-to-rom", 32, address)
		return
	}
	off := address - sl.Begin
	binary.LittleEndian.PutUint32(sl.Buf[off:off+4], value)
}
