// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package redact describes which parts of a document must be scrubbed before it
// may be written to a diagnostic log.
//
// A policy is a tree of nodes per namespace that mirrors the shape of the
// documents it applies to.
// Each node carries the redaction level for the element it matches and for the
// attributes of that element.
// Any element that does not match a node in the tree is treated as unknown
// structure and is fully redacted.
package redact // import "mellium.im/wbxml/redact"

import (
	"encoding/xml"
	"fmt"
)

// Level is the amount of redaction applied to content.
type Level uint8

// A list of redaction levels.
const (
	// None copies content verbatim.
	None Level = iota

	// Partial replaces content with a placeholder that only reports its
	// length.
	Partial

	// Full removes content entirely.
	Full
)

// String satisfies fmt.Stringer.
func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Partial:
		return "partial"
	case Full:
		return "full"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// MarshalText satisfies encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l > Full {
		return nil, fmt.Errorf("redact: invalid level %d", uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*l = None
	case "partial":
		*l = Partial
	case "full":
		*l = Full
	default:
		return fmt.Errorf("redact: unknown level %q", text)
	}
	return nil
}

// Placeholder returns the text substituted for n bytes of partially redacted
// content.
func Placeholder(n int64) string {
	return fmt.Sprintf("[redacted %d bytes]", n)
}

// Node is a single node in a policy tree.
//
// Name matches an element by local name.
// If Name.Space is empty the node matches that local name in any namespace.
type Node struct {
	Name      xml.Name
	Element   Level
	Attribute Level
	Children  []*Node
}

// Elem is a shorthand for building a node that matches local in any namespace.
func Elem(local string, element Level, children ...*Node) *Node {
	return &Node{
		Name:     xml.Name{Local: local},
		Element:  element,
		Children: children,
	}
}

// WithAttr sets the attribute level of n and returns it.
func (n *Node) WithAttr(l Level) *Node {
	n.Attribute = l
	return n
}

func (n *Node) match(name xml.Name) bool {
	if n.Name.Local != name.Local {
		return false
	}
	return n.Name.Space == "" || n.Name.Space == name.Space
}

// FindChild returns the child of parent that matches name or nil if there is
// no match.
// A nil result is not an error; it marks structure the policy does not know
// about.
func FindChild(parent *Node, name xml.Name) *Node {
	if parent == nil {
		return nil
	}
	for _, c := range parent.Children {
		if c.match(name) {
			return c
		}
	}
	return nil
}

// Tree is the policy for documents whose root element is in Space.
type Tree struct {
	Space string
	Root  *Node
}

// NewTree returns a tree for documents in space with the given top level
// nodes.
func NewTree(space string, top ...*Node) *Tree {
	return &Tree{
		Space: space,
		Root:  &Node{Name: xml.Name{Space: space}, Children: top},
	}
}

// Supplier looks up the policy tree for documents whose root element is in a
// namespace.
// A nil result disables redaction for that document.
type Supplier interface {
	Tree(space string) *Tree
}

// Policies is a Supplier backed by a map from namespace to tree.
type Policies map[string]*Tree

// Tree satisfies Supplier.
func (p Policies) Tree(space string) *Tree {
	return p[space]
}

// Add adds trees to p, replacing any existing tree for the same namespace.
func (p Policies) Add(trees ...*Tree) Policies {
	for _, t := range trees {
		p[t.Space] = t
	}
	return p
}
