// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrNUL is returned when an inline string would contain its own terminator.
var ErrNUL = errors.New("wire: inline string contains a NUL byte")

// Accumulator builds a WBXML document in memory.
// Like Cursor it can report the bytes appended since the last checkpoint.
type Accumulator struct {
	buf  []byte
	mark int
}

// Bytes returns the accumulated document.
func (a *Accumulator) Bytes() []byte {
	return a.buf
}

// Len returns the number of bytes accumulated so far.
func (a *Accumulator) Len() int {
	return len(a.buf)
}

// Mark starts a new checkpoint.
func (a *Accumulator) Mark() {
	a.mark = len(a.buf)
}

// Since returns a copy of the bytes appended since the last checkpoint.
func (a *Accumulator) Since() []byte {
	return append([]byte(nil), a.buf[a.mark:]...)
}

// Header appends the document header.
func (a *Accumulator) Header() {
	a.buf = AppendHeader(a.buf)
}

// Tag appends a tag byte for token with the content and attribute flags set as
// requested.
func (a *Accumulator) Tag(token byte, content, attr bool) {
	b := token & TokenMask
	if content {
		b |= ContentFlag
	}
	if attr {
		b |= AttrFlag
	}
	a.buf = append(a.buf, b)
}

// SwitchPage appends a SWITCH_PAGE token followed by page.
func (a *Accumulator) SwitchPage(page byte) {
	a.buf = append(a.buf, SwitchPage, page)
}

// End appends an END token.
func (a *Accumulator) End() {
	a.buf = append(a.buf, End)
}

// Uint appends a multi-byte integer.
func (a *Accumulator) Uint(v uint32) {
	a.buf = AppendUint(a.buf, v)
}

// InlineString appends an STR_I token followed by s and its terminator.
func (a *Accumulator) InlineString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return ErrNUL
	}
	a.buf = append(a.buf, StrI)
	a.buf = append(a.buf, s...)
	a.buf = append(a.buf, 0)
	return nil
}

// Opaque appends an OPAQUE token, the length of b, and b.
func (a *Accumulator) Opaque(b []byte) {
	a.buf = append(a.buf, Opaque)
	a.buf = AppendUint(a.buf, uint32(len(b)))
	a.buf = append(a.buf, b...)
}

// OpaqueBase64 decodes s as standard base64 and appends the result as opaque
// data.
func (a *Accumulator) OpaqueBase64(s string) error {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	a.Opaque(b)
	return nil
}
