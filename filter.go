// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml

import (
	"encoding/xml"

	"mellium.im/wbxml/internal/stack"
	"mellium.im/wbxml/internal/wire"
	"mellium.im/wbxml/redact"
)

// Redacted is the redacted copy of a document built while it was decoded or
// encoded.
// Exactly one of Tree or WBXML is set depending on whether RedactBinary was
// used.
type Redacted struct {
	Tree  *Element
	WBXML []byte
}

// peeled stands in for content that was moved out of the document.
// It is only ever seen by the filter.
type peeled struct {
	ref  *xml.Attr
	size int64
}

func (peeled) node() {}

type filterFrame struct {
	// policy is nil when the element is not known to the policy tree.
	policy *redact.Node
	level  redact.Level
	attr   redact.Level
	out    *Element
	// closes is set if an END was opened for this element in the binary copy.
	closes bool
	// summary is the frame collecting the size of redacted content, if any.
	summary *filterFrame
	size    int64
	seen    bool
}

// filter builds the redacted copy of a document from a stream of nodes in
// document order.
// A nil filter ignores all updates.
type filter struct {
	supplier redact.Supplier
	tree     *redact.Tree
	disabled bool
	binary   bool

	frames stack.Stack[*filterFrame]
	root   *Element

	buf        []byte
	realPage   int
	shadowPage int
}

func newFilter(s redact.Supplier, binary bool) *filter {
	if s == nil {
		return nil
	}
	f := &filter{
		supplier:   s,
		binary:     binary,
		shadowPage: -1,
	}
	if binary {
		f.buf = wire.AppendHeader(nil)
	}
	return f
}

// update visits n at the given depth in the tree.
// raw holds the encoded bytes of n, including any page switch before it, and is
// required in binary mode.
func (f *filter) update(level int, n Node, raw []byte) {
	if f == nil || f.disabled {
		return
	}
	f.frames.PopTo(level, f.close)
	if el, ok := n.(*Element); ok {
		f.element(level, el, raw)
		return
	}
	f.content(n, raw)
}

// finalize closes all open frames and returns the redacted copy.
// It returns nil if no policy applied to the document.
func (f *filter) finalize() *Redacted {
	if f == nil || f.disabled || f.tree == nil {
		return nil
	}
	f.frames.PopTo(0, f.close)
	if f.binary {
		return &Redacted{WBXML: f.buf}
	}
	return &Redacted{Tree: f.root}
}

// pages records the page switches at the start of raw and returns the rest.
// Switches are never copied verbatim; element emits one when the next tag
// needs it.
func (f *filter) pages(raw []byte) []byte {
	for len(raw) >= 2 && raw[0] == wire.SwitchPage {
		f.realPage = int(raw[1])
		raw = raw[2:]
	}
	return raw
}

// skip tracks page switches in bytes that produce no node, such as those
// read before an END.
func (f *filter) skip(raw []byte) {
	if f == nil || f.disabled {
		return
	}
	f.pages(raw)
}

func (f *filter) element(level int, el *Element, raw []byte) {
	raw = f.pages(raw)

	parent, _, ok := f.frames.Top()
	if !ok {
		if f.tree == nil {
			f.tree = f.supplier.Tree(el.Name.Space)
			if f.tree == nil {
				f.disabled = true
				return
			}
		}
		parent = &filterFrame{policy: f.tree.Root}
	}

	fr := &filterFrame{}
	if parent.level != redact.None {
		// Inside redacted content: nothing is emitted, but sizes still count
		// toward the nearest summary.
		fr.level = parent.level
		fr.summary = parent.summary
		f.frames.Push(level, fr)
		return
	}

	match := redact.FindChild(parent.policy, el.Name)
	if match == nil {
		fr.level = redact.Full
		fr.attr = redact.Full
	} else {
		fr.policy = match
		fr.level = match.Element
		fr.attr = match.Attribute
		if match.Element == redact.Partial {
			fr.summary = fr
		}
	}

	if f.binary {
		if len(raw) > 0 {
			tag := raw[0]
			if f.shadowPage != f.realPage {
				f.buf = append(f.buf, wire.SwitchPage, byte(f.realPage))
				f.shadowPage = f.realPage
			}
			f.buf = append(f.buf, tag&^wire.AttrFlag)
			fr.closes = tag&wire.ContentFlag != 0
		}
	} else {
		fr.out = &Element{
			Name: el.Name,
			Attr: redactAttrs(el.Attr, fr.attr),
		}
		if parent.out == nil {
			f.root = fr.out
		} else {
			parent.out.Children = append(parent.out.Children, fr.out)
		}
	}
	f.frames.Push(level, fr)
}

func (f *filter) content(n Node, raw []byte) {
	raw = f.pages(raw)
	parent, _, ok := f.frames.Top()
	if !ok {
		return
	}
	size := contentSize(n, raw)
	switch {
	case parent.summary != nil:
		parent.summary.size += size
		parent.summary.seen = true
	case parent.level != redact.None:
		// Fully redacted.
	case isPeeled(n):
		p := n.(peeled)
		f.placeholder(parent, p.size)
		if p.ref != nil && !f.binary && parent.attr != redact.Full {
			v := p.ref.Value
			if parent.attr == redact.Partial {
				v = redact.Placeholder(int64(len(v)))
			}
			parent.out.Attr = append(parent.out.Attr, xml.Attr{Name: p.ref.Name, Value: v})
		}
	case f.binary:
		f.buf = append(f.buf, raw...)
	default:
		parent.out.Children = append(parent.out.Children, copyNode(n))
	}
}

func (f *filter) placeholder(fr *filterFrame, size int64) {
	s := redact.Placeholder(size)
	if !f.binary {
		fr.out.Children = append(fr.out.Children, Text(s))
		return
	}
	if fr.closes {
		f.buf = append(f.buf, wire.StrI)
		f.buf = append(f.buf, s...)
		f.buf = append(f.buf, 0)
	}
}

func (f *filter) close(_ int, fr *filterFrame) {
	if fr.summary == fr && fr.seen {
		f.placeholder(fr, fr.size)
	}
	if f.binary && fr.closes {
		f.buf = append(f.buf, wire.End)
	}
}

func isPeeled(n Node) bool {
	_, ok := n.(peeled)
	return ok
}

func contentSize(n Node, raw []byte) int64 {
	if p, ok := n.(peeled); ok {
		return p.size
	}
	if l, ok := wire.PayloadLen(raw); ok {
		return int64(l)
	}
	switch n := n.(type) {
	case Text:
		return int64(len(n))
	case Opaque:
		return int64(len(n))
	}
	return 0
}

func copyNode(n Node) Node {
	if o, ok := n.(Opaque); ok {
		return append(Opaque(nil), o...)
	}
	return n
}

// redactAttrs applies l to the attributes an element carries when it is
// visited.
// Neither codec visits such elements yet: the encoder rejects attributes and
// peel-off references reach the filter with the content, not the element.
func redactAttrs(attrs []xml.Attr, l redact.Level) []xml.Attr {
	if len(attrs) == 0 || l == redact.Full {
		return nil
	}
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if l == redact.Partial {
			a.Value = redact.Placeholder(int64(len(a.Value)))
		}
		out = append(out, a)
	}
	return out
}
