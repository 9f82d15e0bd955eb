// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package attr contains helpers for the attributes that peel-off adds to
// decoded elements.
package attr // import "mellium.im/wbxml/internal/attr"

import (
	"encoding/xml"
)

// Get returns the index and value of the first attribute with the provided
// local name from a list of attributes or -1 and an empty string if no such
// attribute exists.
func Get(attr []xml.Attr, local string) (int, string) {
	for i, a := range attr {
		if a.Name.Local == local {
			return i, a.Value
		}
	}
	return -1, ""
}

// Set replaces the value of the first attribute with the provided local name or
// appends a new attribute if no such attribute exists.
func Set(attr []xml.Attr, local, value string) []xml.Attr {
	if i, _ := Get(attr, local); i >= 0 {
		attr[i].Value = value
		return attr
	}
	return append(attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}
