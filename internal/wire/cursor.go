// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wire

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
)

// chunk is the size of the buffer used when streaming payloads to a sink.
const chunk = 32 * 1024

// ContentError is returned by the streaming methods of Cursor when the payload
// could not be transformed or written to its sink.
// The cursor is always positioned after the payload when a ContentError is
// returned, so decoding may continue.
type ContentError struct {
	Err error
}

func (e *ContentError) Error() string {
	return "wire: payload not delivered: " + e.Err.Error()
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// Cursor reads the primitives of the WBXML encoding from an underlying reader.
//
// If recording is enabled, every byte consumed is also kept so that Since can
// report exactly what was read since the last call to Mark.
type Cursor struct {
	r      *bufio.Reader
	record bool
	rec    []byte
	off    int64
}

// NewCursor returns a cursor reading from r.
func NewCursor(r io.Reader, record bool) *Cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Cursor{r: br, record: record}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int64 {
	return c.off
}

// Mark starts a new checkpoint.
func (c *Cursor) Mark() {
	c.rec = c.rec[:0]
}

// Since returns a copy of the bytes consumed since the last checkpoint.
// It returns nil if recording is disabled.
func (c *Cursor) Since() []byte {
	if !c.record {
		return nil
	}
	return append([]byte(nil), c.rec...)
}

func (c *Cursor) keep(b ...byte) {
	c.off += int64(len(b))
	if c.record {
		c.rec = append(c.rec, b...)
	}
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	c.keep(b)
	return b, nil
}

// Uint reads a multi-byte integer.
func (c *Cursor) Uint() (uint32, error) {
	var acc uint64
	for i := 0; ; i++ {
		if i >= 5 {
			return 0, ErrOverflow
		}
		b, err := c.ReadByte()
		if err != nil {
			return 0, unexpected(err)
		}
		acc = acc<<7 | uint64(b&0x7F)
		if acc > 0xFFFFFFFF {
			return 0, ErrOverflow
		}
		if b&0x80 == 0 {
			return uint32(acc), nil
		}
	}
}

// CString reads a zero terminated string and returns it without the
// terminator.
func (c *Cursor) CString() (string, error) {
	b, err := c.r.ReadBytes(0)
	if err != nil {
		return "", unexpected(err)
	}
	c.keep(b...)
	return string(b[:len(b)-1]), nil
}

// Opaque reads n bytes.
// The buffer grows as data arrives so a bogus length cannot force a large
// allocation up front.
func (c *Cursor) Opaque(n uint32) ([]byte, error) {
	var buf bytes.Buffer
	_, err := io.CopyN(&buf, c.r, int64(n))
	if err != nil {
		return nil, unexpected(err)
	}
	c.keep(buf.Bytes()...)
	return buf.Bytes(), nil
}

// StreamOpaque copies n bytes of opaque data to w.
// If decode is true the data is treated as base64 text and decoded before it is
// written.
// Recording is suspended while streaming; Since will not include the payload.
func (c *Cursor) StreamOpaque(ctx context.Context, w io.Writer, n uint32, decode bool) (int64, error) {
	src := &ctxReader{ctx: ctx, r: io.LimitReader(c.r, int64(n))}
	written, err := c.stream(w, src, decode)
	c.off += src.n
	if src.err == nil && src.n < int64(n) {
		return written, io.ErrUnexpectedEOF
	}
	return written, err
}

// StreamString copies a zero terminated string to w without its terminator.
// If decode is true the string is treated as base64 text and decoded before it
// is written.
// Recording is suspended while streaming; Since will not include the payload.
func (c *Cursor) StreamString(ctx context.Context, w io.Writer, decode bool) (int64, error) {
	src := &ctxReader{ctx: ctx, r: &termReader{r: c.r}}
	written, err := c.stream(w, src, decode)
	// Account for the terminator as well.
	c.off += src.n + 1
	return written, err
}

func (c *Cursor) stream(w io.Writer, src *ctxReader, decode bool) (int64, error) {
	sink := &sinkWriter{w: w}
	var r io.Reader = src
	if decode {
		r = base64.NewDecoder(base64.StdEncoding, src)
	}
	buf := make([]byte, chunk)
	_, copyErr := io.CopyBuffer(sink, r, buf)
	if src.err != nil {
		return sink.n, unexpected(src.err)
	}
	// The transform may stop before the payload ends, drain the rest so that
	// the cursor lands after it.
	if _, err := io.CopyBuffer(io.Discard, src, buf); err != nil || src.err != nil {
		if src.err != nil {
			err = src.err
		}
		return sink.n, unexpected(err)
	}
	switch {
	case copyErr != nil:
		return sink.n, &ContentError{Err: copyErr}
	case sink.err != nil:
		return sink.n, &ContentError{Err: sink.err}
	}
	return sink.n, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ctxReader stops reading once its context is done and remembers any error
// returned by the underlying reader.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
	n   int64
	err error
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if err := r.ctx.Err(); err != nil {
		r.err = err
		return 0, err
	}
	n, err := r.r.Read(p)
	r.n += int64(n)
	if err != nil && err != io.EOF {
		r.err = err
	}
	return n, err
}

// termReader reads up to and consumes, but does not return, a zero byte.
type termReader struct {
	r    *bufio.Reader
	done bool
}

func (t *termReader) Read(p []byte) (int, error) {
	if t.done {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := t.r.Peek(1); err != nil {
		return 0, unexpected(err)
	}
	n := t.r.Buffered()
	if n > len(p) {
		n = len(p)
	}
	buf, _ := t.r.Peek(n)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		copy(p, buf[:i])
		_, err := t.r.Discard(i + 1)
		t.done = true
		return i, err
	}
	copy(p, buf)
	_, err := t.r.Discard(len(buf))
	return len(buf), err
}

// sinkWriter keeps accepting data after the underlying writer fails so that
// the source can be drained, and remembers the first failure.
type sinkWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return len(p), nil
	}
	n, err := s.w.Write(p)
	s.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.err = err
	}
	return len(p), nil
}

// IsContentError reports whether err is a recoverable payload error.
func IsContentError(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce)
}
