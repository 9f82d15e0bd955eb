// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package wire contains the low level primitives of the WBXML encoding: global
// tokens, the document header, multi-byte integers, and a cursor and
// accumulator over raw wire bytes.
package wire // import "mellium.im/wbxml/internal/wire"

import (
	"errors"
	"fmt"
)

// Global tokens defined by WBXML 1.3 §7.1.
const (
	SwitchPage byte = 0x00
	End        byte = 0x01
	Entity     byte = 0x02
	StrI       byte = 0x03
	Literal    byte = 0x04
	ExtI0      byte = 0x40
	ExtI1      byte = 0x41
	ExtI2      byte = 0x42
	PI         byte = 0x43
	LiteralC   byte = 0x44
	ExtT0      byte = 0x80
	ExtT1      byte = 0x81
	ExtT2      byte = 0x82
	StrT       byte = 0x83
	LiteralA   byte = 0x84
	Ext0       byte = 0xC0
	Ext1       byte = 0xC1
	Ext2       byte = 0xC2
	Opaque     byte = 0xC3
	LiteralAC  byte = 0xC4
)

// Tag byte layout.
const (
	TokenMask   byte = 0x3F
	ContentFlag byte = 0x40
	AttrFlag    byte = 0x80

	// MinToken is the smallest token that does not collide with a global token
	// once the flag bits are masked off.
	MinToken byte = 0x05
	// MaxToken is the largest token that fits in a tag byte.
	MaxToken byte = 0x3F
)

// Header values used by ActiveSync.
const (
	Version     byte   = 0x03
	PublicID    uint32 = 0x01
	CharsetUTF8 uint32 = 0x6A
)

// ErrOverflow is returned when a multi-byte integer does not fit in 32 bits.
var ErrOverflow = errors.New("wire: multi-byte integer overflows 32 bits")

// IsGlobal reports whether b is a global token rather than a tag.
func IsGlobal(b byte) bool {
	return b&TokenMask < MinToken
}

// GlobalName returns the name of a global token as used in WBXML 1.3.
func GlobalName(b byte) string {
	switch b {
	case SwitchPage:
		return "SWITCH_PAGE"
	case End:
		return "END"
	case Entity:
		return "ENTITY"
	case StrI:
		return "STR_I"
	case Literal:
		return "LITERAL"
	case ExtI0, ExtI1, ExtI2:
		return fmt.Sprintf("EXT_I_%d", b-ExtI0)
	case PI:
		return "PI"
	case LiteralC:
		return "LITERAL_C"
	case ExtT0, ExtT1, ExtT2:
		return fmt.Sprintf("EXT_T_%d", b-ExtT0)
	case StrT:
		return "STR_T"
	case LiteralA:
		return "LITERAL_A"
	case Ext0, Ext1, Ext2:
		return fmt.Sprintf("EXT_%d", b-Ext0)
	case Opaque:
		return "OPAQUE"
	case LiteralAC:
		return "LITERAL_AC"
	}
	return fmt.Sprintf("0x%02X", b)
}

// AppendUint appends the multi-byte integer encoding of v to dst.
// Groups of seven bits are written most significant first and every byte but
// the last has its high bit set.
func AppendUint(dst []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	v >>= 7
	for v != 0 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
		v >>= 7
	}
	return append(dst, tmp[i:]...)
}

// Uint parses a multi-byte integer from the start of b and returns the value
// and the number of bytes it occupied.
func Uint(b []byte) (uint32, int, error) {
	var acc uint64
	for i, c := range b {
		if i >= 5 {
			return 0, 0, ErrOverflow
		}
		acc = acc<<7 | uint64(c&0x7F)
		if acc > 0xFFFFFFFF {
			return 0, 0, ErrOverflow
		}
		if c&0x80 == 0 {
			return uint32(acc), i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("wire: truncated multi-byte integer")
}

// AppendHeader appends the fixed document header: version, public identifier,
// UTF-8 charset, and an empty string table.
func AppendHeader(dst []byte) []byte {
	dst = append(dst, Version)
	dst = AppendUint(dst, PublicID)
	dst = AppendUint(dst, CharsetUTF8)
	return AppendUint(dst, 0)
}

// PayloadLen returns the length of the payload carried by raw, which must
// start with an STR_I or OPAQUE token.
func PayloadLen(raw []byte) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	switch raw[0] {
	case StrI:
		if len(raw) < 2 {
			return 0, false
		}
		return len(raw) - 2, true
	case Opaque:
		n, l, err := Uint(raw[1:])
		if err != nil {
			return 0, false
		}
		return int(n), 1+l+int(n) == len(raw)
	}
	return 0, false
}
