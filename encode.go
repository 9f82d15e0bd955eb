// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml

import (
	"errors"
	"fmt"

	"mellium.im/wbxml/codepage"
	"mellium.im/wbxml/internal/wire"
)

// Encoder writes document trees as WBXML.
type Encoder struct {
	pages *codepage.Table
	opts  options
}

// NewEncoder returns an encoder using the provided code pages.
// Peel off options are ignored by the encoder.
func NewEncoder(pages *codepage.Table, opts ...Option) *Encoder {
	return &Encoder{
		pages: pages,
		opts:  getOpts(opts...),
	}
}

// Encode is a convenience function that encodes the document rooted at root.
func Encode(root *Element, pages *codepage.Table, opts ...Option) ([]byte, *Redacted, error) {
	return NewEncoder(pages, opts...).Encode(root)
}

// Encode returns the WBXML encoding of the document rooted at root.
// If redaction is enabled and a policy applies to the document, its redacted
// copy is also returned.
func (e *Encoder) Encode(root *Element) ([]byte, *Redacted, error) {
	if root == nil {
		return nil, nil, errors.New("wbxml: no root element")
	}
	s := &encodeState{
		pages:  e.pages,
		filter: newFilter(e.opts.policies, e.opts.binary),
		page:   -1,
	}
	s.acc.Header()
	if err := s.element(root, 0); err != nil {
		return nil, nil, err
	}
	return s.acc.Bytes(), s.filter.finalize(), nil
}

type encodeState struct {
	pages  *codepage.Table
	acc    wire.Accumulator
	filter *filter
	// page is the active code page or -1 before the first element.
	page int
}

func (s *encodeState) visit(level int, n Node) {
	if s.filter != nil {
		s.filter.update(level, n, s.acc.Since())
	}
}

func (s *encodeState) element(el *Element, level int) error {
	if len(el.Attr) > 0 {
		return fmt.Errorf("%w: attributes on %s", ErrUnsupported, el.Name.Local)
	}
	page, token, err := s.pages.Token(el.Name)
	if err != nil {
		return fmt.Errorf("wbxml: encoding %s: %w", el.Name.Local, err)
	}
	content := hasContent(el)

	s.acc.Mark()
	if int(page) != s.page {
		s.acc.SwitchPage(page)
		s.page = int(page)
	}
	s.acc.Tag(token, content, false)
	s.visit(level, el)

	for _, c := range el.Children {
		switch c := c.(type) {
		case *Element:
			err = s.element(c, level+1)
		case Text:
			if c != "" {
				err = s.text(el.Name.Local, s.pages.Flags(el.Name), c, level+1)
			}
		case Opaque:
			if len(c) > 0 {
				s.acc.Mark()
				s.acc.Opaque(c)
				s.visit(level+1, c)
			}
		default:
			err = fmt.Errorf("wbxml: unsupported node %T in %s", c, el.Name.Local)
		}
		if err != nil {
			return err
		}
	}
	if content {
		s.acc.End()
	}
	return nil
}

func (s *encodeState) text(local string, flags codepage.Flags, t Text, level int) error {
	s.acc.Mark()
	switch {
	case flags&codepage.OpaqueBase64 != 0:
		if err := s.acc.OpaqueBase64(string(t)); err != nil {
			return fmt.Errorf("wbxml: content of %s: %w", local, err)
		}
	case flags&codepage.Opaque != 0:
		s.acc.Opaque([]byte(t))
	default:
		if err := s.acc.InlineString(string(t)); err != nil {
			return fmt.Errorf("wbxml: content of %s: %w", local, err)
		}
	}
	s.visit(level, t)
	return nil
}

func hasContent(el *Element) bool {
	for _, c := range el.Children {
		switch c := c.(type) {
		case Text:
			if c != "" {
				return true
			}
		case Opaque:
			if len(c) > 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}
