// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package codepage maps between qualified tag names and the small integer
// tokens used to encode them in WBXML.
//
// A code page assigns tokens to the tags of a single namespace and a Table
// groups the code pages used by a document type.
// Tables are built once and are safe for concurrent use afterwards; nothing in
// this package keeps global state.
package codepage // import "mellium.im/wbxml/codepage"

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// Errors returned by this package.
var (
	ErrUnknownTag = errors.New("codepage: no token for tag")
)

// unknownPrefix is prepended to the hex value of tokens that have no mapping.
const unknownPrefix = "UNKNOWN_TAG_"

const (
	minToken = 0x05
	maxToken = 0x3F
)

// Flags are per tag hints about how content is carried on the wire.
type Flags uint8

// A list of tag flags.
const (
	// Opaque content is written as a length prefixed blob instead of an inline
	// string.
	Opaque Flags = 1 << iota

	// OpaqueBase64 content is base64 text in the document tree but is decoded
	// and written as an opaque blob on the wire.
	OpaqueBase64

	// PeelOff content is too large to keep in memory and is written to external
	// storage during decoding.
	PeelOff
)

// String satisfies fmt.Stringer.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var s []string
	if f&Opaque != 0 {
		s = append(s, "opaque")
	}
	if f&OpaqueBase64 != 0 {
		s = append(s, "opaque-base64")
	}
	if f&PeelOff != 0 {
		s = append(s, "peel-off")
	}
	return strings.Join(s, "|")
}

// Tag is a single entry in a code page.
type Tag struct {
	Token byte
	Name  string
	Flags Flags
}

// Page is the code page for a single namespace.
type Page struct {
	Index byte
	Space string
	Tags  []Tag
}

// Seq returns tags with consecutive tokens starting at first.
// An empty name reserves a token without assigning a tag to it.
func Seq(first byte, names ...string) []Tag {
	tags := make([]Tag, 0, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		tags = append(tags, Tag{Token: first + byte(i), Name: name})
	}
	return tags
}

// With returns a copy of tags where every tag named in flags has those flags
// set.
// It panics if a name does not exist in tags.
func With(tags []Tag, flags map[string]Flags) []Tag {
	out := make([]Tag, len(tags))
	copy(out, tags)
	for name, f := range flags {
		found := false
		for i := range out {
			if out[i].Name == name {
				out[i].Flags |= f
				found = true
			}
		}
		if !found {
			panic(fmt.Sprintf("codepage: cannot set flags on unknown tag %q", name))
		}
	}
	return out
}

type page struct {
	index  byte
	space  string
	names  [maxToken + 1]string
	tokens map[string]byte
	flags  map[string]Flags
}

// Table is a read only registry of code pages.
type Table struct {
	pages  map[byte]*page
	spaces map[string]*page
	max    byte
}

// NewTable builds a table from pages.
// Page indexes and namespaces must be unique and every tag must have a token in
// the range 0x05–0x3F that is unique within its page.
func NewTable(pages ...Page) (*Table, error) {
	t := &Table{
		pages:  make(map[byte]*page, len(pages)),
		spaces: make(map[string]*page, len(pages)),
	}
	for _, p := range pages {
		if _, ok := t.pages[p.Index]; ok {
			return nil, fmt.Errorf("codepage: duplicate page index %d", p.Index)
		}
		if _, ok := t.spaces[p.Space]; ok {
			return nil, fmt.Errorf("codepage: duplicate namespace %q", p.Space)
		}
		cp := &page{
			index:  p.Index,
			space:  p.Space,
			tokens: make(map[string]byte, len(p.Tags)),
			flags:  make(map[string]Flags),
		}
		for _, tag := range p.Tags {
			if tag.Token < minToken || tag.Token > maxToken {
				return nil, fmt.Errorf("codepage: token 0x%02X for %s:%s out of range", tag.Token, p.Space, tag.Name)
			}
			if cp.names[tag.Token] != "" {
				return nil, fmt.Errorf("codepage: duplicate token 0x%02X in page %q", tag.Token, p.Space)
			}
			if _, ok := cp.tokens[tag.Name]; ok {
				return nil, fmt.Errorf("codepage: duplicate tag %s:%s", p.Space, tag.Name)
			}
			cp.names[tag.Token] = tag.Name
			cp.tokens[tag.Name] = tag.Token
			if tag.Flags != 0 {
				cp.flags[tag.Name] = tag.Flags
			}
		}
		t.pages[p.Index] = cp
		t.spaces[p.Space] = cp
		if p.Index > t.max {
			t.max = p.Index
		}
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(pages ...Page) *Table {
	t, err := NewTable(pages...)
	if err != nil {
		panic(err)
	}
	return t
}

// Max returns the highest page index in the table.
// Any page index up to and including Max may be switched to.
func (t *Table) Max() byte {
	return t.max
}

// Page returns the index of the code page for a namespace.
func (t *Table) Page(space string) (byte, bool) {
	p, ok := t.spaces[space]
	if !ok {
		return 0, false
	}
	return p.index, true
}

// Space returns the namespace of a code page.
func (t *Table) Space(index byte) (string, bool) {
	p, ok := t.pages[index]
	if !ok {
		return "", false
	}
	return p.space, true
}

// Token returns the code page index and token for a tag.
// If the tag has no mapping the error wraps ErrUnknownTag.
func (t *Table) Token(name xml.Name) (index, token byte, err error) {
	p, ok := t.spaces[name.Space]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown namespace %q for %q", ErrUnknownTag, name.Space, name.Local)
	}
	token, ok = p.tokens[name.Local]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s:%s", ErrUnknownTag, name.Space, name.Local)
	}
	return p.index, token, nil
}

// Tag returns the name of a token in a code page.
// Tokens without a mapping get a placeholder local name so that documents from
// newer protocol revisions can still be decoded.
func (t *Table) Tag(index, token byte) xml.Name {
	token &= maxToken
	p, ok := t.pages[index]
	if !ok {
		return xml.Name{Local: unknown(token)}
	}
	if name := p.names[token]; name != "" {
		return xml.Name{Space: p.space, Local: name}
	}
	return xml.Name{Space: p.space, Local: unknown(token)}
}

func unknown(token byte) string {
	return fmt.Sprintf("%s%02X", unknownPrefix, token)
}

// IsUnknown reports whether name is a placeholder created by Tag.
func IsUnknown(name xml.Name) bool {
	return strings.HasPrefix(name.Local, unknownPrefix)
}

// Flags returns the content flags for a tag.
func (t *Table) Flags(name xml.Name) Flags {
	p, ok := t.spaces[name.Space]
	if !ok {
		return 0
	}
	return p.flags[name.Local]
}

// Opaque reports whether content of the tag is written as opaque data.
func (t *Table) Opaque(name xml.Name) bool {
	return t.Flags(name)&Opaque != 0
}

// OpaqueBase64 reports whether content of the tag is base64 text that is
// written as opaque data.
func (t *Table) OpaqueBase64(name xml.Name) bool {
	return t.Flags(name)&OpaqueBase64 != 0
}

// PeelOff reports whether content of the tag should be moved to external
// storage during decoding.
func (t *Table) PeelOff(name xml.Name) bool {
	return t.Flags(name)&PeelOff != 0
}
