// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"mellium.im/wbxml/codepage"
	"mellium.im/wbxml/internal/attr"
	"mellium.im/wbxml/internal/stack"
	"mellium.im/wbxml/internal/wire"
	"mellium.im/wbxml/store"
)

// Names of the attributes added to elements whose content was peeled off.
const (
	AttrRef  = "ref"
	AttrFile = "file"
)

var errDecoderUsed = errors.New("wbxml: decoder already used")

// Decoder reads a single document from an input stream.
type Decoder struct {
	c      *wire.Cursor
	pages  *codepage.Table
	opts   options
	filter *filter

	open stack.Stack[*Element]
	root *Element
	page byte
	used bool

	// undo removes content peeled off during a failed decode.
	undo []func()
}

// NewDecoder returns a decoder that reads from r using the provided code
// pages.
func NewDecoder(r io.Reader, pages *codepage.Table, opts ...Option) *Decoder {
	o := getOpts(opts...)
	f := newFilter(o.policies, o.binary)
	return &Decoder{
		c:      wire.NewCursor(r, f != nil),
		pages:  pages,
		opts:   o,
		filter: f,
	}
}

// Decode is a convenience function that decodes the document in b.
func Decode(ctx context.Context, b []byte, pages *codepage.Table, opts ...Option) (*Element, *Redacted, error) {
	return NewDecoder(bytes.NewReader(b), pages, opts...).Decode(ctx)
}

// Decode reads the document and returns its tree.
// If redaction is enabled and a policy applies to the document, its redacted
// copy is also returned.
//
// On error no tree is returned and any content already peeled off during the
// call is removed.
// A decoder may only be used once.
func (d *Decoder) Decode(ctx context.Context) (*Element, *Redacted, error) {
	if d.used {
		return nil, nil, errDecoderUsed
	}
	d.used = true
	root, err := d.decode(ctx)
	if err != nil {
		for _, f := range d.undo {
			f()
		}
		d.undo = nil
		return nil, nil, err
	}
	return root, d.filter.finalize(), nil
}

func (d *Decoder) decode(ctx context.Context) (*Element, error) {
	if err := d.header(); err != nil {
		return nil, err
	}
	d.c.Mark()
	for {
		if err := ctx.Err(); err != nil {
			return nil, canceled(err)
		}
		b, err := d.c.ReadByte()
		if err == io.EOF {
			return d.eof()
		}
		if err != nil {
			return nil, err
		}
		if d.root != nil && d.open.Len() == 0 && b != wire.End {
			return nil, formatErr("data after the root element")
		}
		switch {
		case b == wire.SwitchPage:
			err = d.switchPage()
		case b == wire.End:
			d.end()
		case b == wire.StrI || b == wire.Opaque:
			err = d.content(ctx, b)
		case wire.IsGlobal(b):
			err = fmt.Errorf("%w: global token %s", ErrUnsupported, wire.GlobalName(b))
		default:
			err = d.tag(b)
		}
		if err != nil {
			if isCtxErr(err) {
				return nil, canceled(err)
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, formatErr("%w", err)
			}
			return nil, err
		}
	}
}

func (d *Decoder) header() error {
	v, err := d.c.ReadByte()
	if err != nil {
		return formatErr("missing header")
	}
	if v != wire.Version {
		return formatErr("unsupported version %#02x", v)
	}
	if _, err = d.c.Uint(); err != nil {
		return formatErr("reading public identifier: %w", err)
	}
	cs, err := d.c.Uint()
	if err != nil {
		return formatErr("reading charset: %w", err)
	}
	if cs != wire.CharsetUTF8 {
		return formatErr("unsupported charset %d", cs)
	}
	n, err := d.c.Uint()
	if err != nil {
		return formatErr("reading string table length: %w", err)
	}
	if n != 0 {
		return formatErr("non-empty string table")
	}
	return nil
}

// eof handles the end of input.
// A root element left open is accepted since some peers omit the final END.
func (d *Decoder) eof() (*Element, error) {
	switch {
	case d.root == nil:
		return nil, formatErr("no root element")
	case d.open.Len() > 1:
		top, _, _ := d.open.Top()
		return nil, formatErr("unexpected end of document inside %s", top.Name.Local)
	}
	d.open.PopTo(0, nil)
	return d.root, nil
}

func (d *Decoder) switchPage() error {
	p, err := d.c.ReadByte()
	if err != nil {
		return io.ErrUnexpectedEOF
	}
	if p > d.pages.Max() {
		return formatErr("switch to unknown code page %d", p)
	}
	d.page = p
	return nil
}

func (d *Decoder) end() {
	if n := d.open.Len(); n > 0 {
		d.open.PopTo(n-1, nil)
	}
	d.filter.skip(d.c.Since())
	d.c.Mark()
}

func (d *Decoder) tag(b byte) error {
	if b&wire.AttrFlag != 0 {
		return fmt.Errorf("%w: attributes on %s", ErrUnsupported, d.pages.Tag(d.page, b&wire.TokenMask).Local)
	}
	token := b & wire.TokenMask
	el := &Element{Name: d.pages.Tag(d.page, token)}
	if codepage.IsUnknown(el.Name) {
		d.opts.logger.Debug("unknown tag", "page", d.page, "token", token)
	}
	level := d.open.Len()
	if parent, _, ok := d.open.Top(); ok {
		parent.Children = append(parent.Children, el)
	} else {
		d.root = el
	}
	d.filter.update(level, el, d.c.Since())
	d.c.Mark()
	if b&wire.ContentFlag != 0 {
		d.open.Push(level, el)
	}
	return nil
}

func (d *Decoder) content(ctx context.Context, b byte) error {
	parent, _, ok := d.open.Top()
	if !ok {
		return formatErr("content outside of an element")
	}
	level := d.open.Len()

	var n uint32
	if b == wire.Opaque {
		var err error
		n, err = d.c.Uint()
		if err != nil {
			return formatErr("reading opaque length: %w", err)
		}
	}
	if d.pages.PeelOff(parent.Name) && (d.opts.store != nil || d.opts.peelFile) {
		d.filter.skip(d.c.Since())
		return d.peel(ctx, parent, level, b == wire.Opaque, n)
	}

	var node Node
	if b == wire.StrI {
		s, err := d.c.CString()
		if err != nil {
			return err
		}
		node = Text(utf8Text([]byte(s)))
	} else {
		data, err := d.c.Opaque(n)
		if err != nil {
			return err
		}
		switch {
		case d.pages.OpaqueBase64(parent.Name):
			node = Text(base64.StdEncoding.EncodeToString(data))
		case d.pages.Opaque(parent.Name):
			node = Opaque(data)
		default:
			node = Text(utf8Text(data))
		}
	}
	parent.Children = append(parent.Children, node)
	d.filter.update(level, node, d.c.Since())
	d.c.Mark()
	return nil
}

// peel streams content out of the document.
// Failures to store the content are logged and the element is left without a
// reference; only errors reading the document are returned.
func (d *Decoder) peel(ctx context.Context, parent *Element, level int, opaque bool, n uint32) error {
	var (
		w      io.WriteCloser = nopCloser{io.Discard}
		ref    *xml.Attr
		remove func()
	)
	switch {
	case d.opts.store != nil:
		s := d.opts.store
		id, sw, err := s.Create(ctx)
		if err != nil {
			if isCtxErr(err) {
				return err
			}
			d.opts.logger.Warn("storing peeled content failed", "tag", parent.Name.Local, "err", err)
			break
		}
		w = sw
		ref = &xml.Attr{Name: xml.Name{Local: AttrRef}, Value: id}
		remove = func() { _ = s.Remove(context.Background(), id) }
	default:
		f, err := store.TempFile(d.opts.peelDir)
		if err != nil {
			d.opts.logger.Warn("creating file for peeled content failed", "tag", parent.Name.Local, "err", err)
			break
		}
		w = f
		ref = &xml.Attr{Name: xml.Name{Local: AttrFile}, Value: f.Name()}
		remove = func() { _ = os.Remove(f.Name()) }
	}

	start := d.c.Offset()
	var err error
	if opaque {
		_, err = d.c.StreamOpaque(ctx, w, n, d.opts.peelFile)
	} else {
		_, err = d.c.StreamString(ctx, w, d.opts.peelFile)
	}
	size := d.c.Offset() - start
	if !opaque {
		size--
	}
	cerr := w.Close()
	if err != nil && !wire.IsContentError(err) {
		if remove != nil {
			remove()
		}
		return err
	}
	if err == nil {
		err = cerr
	}
	if err != nil && ref != nil {
		d.opts.logger.Warn("peeling off content failed", "tag", parent.Name.Local, "err", err)
		remove()
		ref = nil
	}
	if ref != nil {
		parent.Attr = attr.Set(parent.Attr, ref.Name.Local, ref.Value)
		d.undo = append(d.undo, remove)
	}
	d.filter.update(level, peeled{ref: ref, size: size}, nil)
	d.c.Mark()
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// utf8Text returns b as a string, replacing invalid UTF-8 sequences.
func utf8Text(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
