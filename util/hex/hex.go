/*
thumb2sim - hex formatting helpers for the monitor's memory dump.

Copyright 2026
*/

// Package hex renders raw words and byte runs as upper-case hex text,
// grounded on the teacher's util/hex package (same digit table and
// strings.Builder-based writers), trimmed to the two forms the monitor's
// memory dump actually uses.
package hex

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatWord appends each word in words as 8 hex digits followed by a space.
func FormatWord(str *strings.Builder, words []uint32) {
	for _, full := range words {
		shift := 28
		for range 8 {
			str.WriteByte(hexMap[(full>>shift)&0xf])
			shift -= 4
		}
		str.WriteByte(' ')
	}
}

// FormatBytes appends each byte in data as 2 hex digits, optionally
// separated by a space.
func FormatBytes(str *strings.Builder, space bool, data []uint8) {
	for _, by := range data {
		str.WriteByte(hexMap[(by>>4)&0xf])
		str.WriteByte(hexMap[by&0xf])
		if space {
			str.WriteByte(' ')
		}
	}
}
