// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package redact

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlNode struct {
	Name      string     `yaml:"name"`
	Space     string     `yaml:"space,omitempty"`
	Element   Level      `yaml:"element,omitempty"`
	Attribute Level      `yaml:"attribute,omitempty"`
	Children  []yamlNode `yaml:"children,omitempty"`
}

type yamlTree struct {
	Namespace string     `yaml:"namespace"`
	Elements  []yamlNode `yaml:"elements"`
}

// LoadYAML reads policy trees from a stream of YAML documents, one tree per
// document.
//
// Each document looks like this:
//
//	namespace: Settings
//	elements:
//	- name: Settings
//	  children:
//	  - name: DeviceInformation
//	    element: partial
//	    attribute: full
//
// Levels are "none" (the default), "partial", or "full".
func LoadYAML(r io.Reader) (Policies, error) {
	p := make(Policies)
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	for i := 0; ; i++ {
		var doc yamlTree
		err := d.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redact: decoding policy document %d: %w", i, err)
		}
		if doc.Namespace == "" {
			return nil, fmt.Errorf("redact: policy document %d has no namespace", i)
		}
		top, err := fromYAML(doc.Elements)
		if err != nil {
			return nil, fmt.Errorf("redact: policy for %q: %w", doc.Namespace, err)
		}
		p.Add(NewTree(doc.Namespace, top...))
	}
}

func fromYAML(nodes []yamlNode) ([]*Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Name == "" {
			return nil, errors.New("node has no name")
		}
		children, err := fromYAML(n.Children)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Name, err)
		}
		out = append(out, &Node{
			Name:      xml.Name{Space: n.Space, Local: n.Name},
			Element:   n.Element,
			Attribute: n.Attribute,
			Children:  children,
		})
	}
	return out, nil
}

func toYAML(nodes []*Node) []yamlNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]yamlNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, yamlNode{
			Name:      n.Name.Local,
			Space:     n.Name.Space,
			Element:   n.Element,
			Attribute: n.Attribute,
			Children:  toYAML(n.Children),
		})
	}
	return out
}

// WriteYAML writes trees in the format read by LoadYAML.
func WriteYAML(w io.Writer, trees ...*Tree) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	for _, t := range trees {
		var top []*Node
		if t.Root != nil {
			top = t.Root.Children
		}
		err := e.Encode(yamlTree{
			Namespace: t.Space,
			Elements:  toYAML(top),
		})
		if err != nil {
			return err
		}
	}
	return e.Close()
}
