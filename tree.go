// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"mellium.im/xmlstream"
)

// Node is a node in a document tree.
// It is one of *Element, Text, or Opaque.
type Node interface {
	node()
}

// Text is character content.
type Text string

// Opaque is binary content.
type Opaque []byte

// Element is an element in a document tree.
// An element owns its children.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []Node
}

func (*Element) node() {}
func (Text) node()     {}
func (Opaque) node()   {}

// NewElement returns an element with the provided name and children.
func NewElement(name xml.Name, children ...Node) *Element {
	return &Element{Name: name, Children: children}
}

// Text returns the concatenation of the text children of e.
func (e *Element) Text() string {
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// Child returns the first child element with the provided local name or nil.
func (e *Element) Child(local string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name.Local == local {
			return el
		}
	}
	return nil
}

// TokenReader satisfies the xmlstream.Marshaler interface.
// Opaque content is written as base64 character data.
func (e *Element) TokenReader() xml.TokenReader {
	inner := make([]xml.TokenReader, 0, len(e.Children))
	for _, c := range e.Children {
		switch c := c.(type) {
		case *Element:
			inner = append(inner, c.TokenReader())
		case Text:
			inner = append(inner, xmlstream.Token(xml.CharData(c)))
		case Opaque:
			b := make(xml.CharData, base64.StdEncoding.EncodedLen(len(c)))
			base64.StdEncoding.Encode(b, c)
			inner = append(inner, xmlstream.Token(b))
		}
	}
	return xmlstream.Wrap(
		xmlstream.MultiReader(inner...),
		xml.StartElement{Name: e.Name, Attr: e.Attr},
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (e *Element) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, e.TokenReader())
}

// MarshalXML satisfies the xml.Marshaler interface.
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	_, err := e.WriteXML(enc)
	return err
}

// ReadTree builds a document tree from the first element read from r.
//
// Namespace declarations are resolved into element names and dropped from the
// attributes, character data that is only whitespace is ignored, and anything
// after the end of the first element is not read.
func ReadTree(r xml.TokenReader) (*Element, error) {
	var open []*Element
	for {
		tok, err := r.Token()
		if err == io.EOF {
			if len(open) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, errors.New("wbxml: no root element")
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				el.Attr = append(el.Attr, a)
			}
			if n := len(open); n > 0 {
				open[n-1].Children = append(open[n-1].Children, el)
			}
			open = append(open, el)
		case xml.EndElement:
			if len(open) == 0 {
				return nil, errors.New("wbxml: unexpected end element")
			}
			el := open[len(open)-1]
			open = open[:len(open)-1]
			if len(open) == 0 {
				return el, nil
			}
		case xml.CharData:
			n := len(open)
			if n == 0 || len(strings.TrimSpace(string(t))) == 0 {
				continue
			}
			parent := open[n-1]
			if last := len(parent.Children) - 1; last >= 0 {
				if prev, ok := parent.Children[last].(Text); ok {
					parent.Children[last] = prev + Text(t)
					continue
				}
			}
			parent.Children = append(parent.Children, Text(t))
		}
	}
}
