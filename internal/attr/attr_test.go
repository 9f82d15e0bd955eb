// Copyright 2019 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package attr_test

import (
	"encoding/xml"
	"strconv"
	"testing"

	"mellium.im/wbxml/internal/attr"
)

var getTests = [...]struct {
	attr  []xml.Attr
	local string
	out   string
	idx   int
}{
	0: {idx: -1},
	1: {idx: -1, local: "ref"},
	2: {idx: -1, attr: []xml.Attr{}, local: "ref"},
	3: {
		attr:  []xml.Attr{{Name: xml.Name{Local: "ref"}, Value: "abc"}},
		local: "ref",
		out:   "abc",
	},
	4: {
		attr: []xml.Attr{
			{Name: xml.Name{Local: "file"}, Value: "/tmp/a"},
			{Name: xml.Name{Local: "file"}, Value: "/tmp/b"},
		},
		local: "file",
		out:   "/tmp/a",
	},
	5: {
		attr: []xml.Attr{
			{Name: xml.Name{Local: "ref"}, Value: "abc"},
			{Name: xml.Name{Space: "x", Local: "file"}, Value: "/tmp/a"},
		},
		local: "file",
		out:   "/tmp/a",
		idx:   1,
	},
}

func TestGet(t *testing.T) {
	for i, tc := range getTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			idx, out := attr.Get(tc.attr, tc.local)
			if out != tc.out {
				t.Errorf("wrong output: want=%q, got=%q", tc.out, out)
			}
			if idx != tc.idx {
				t.Errorf("wrong index: want=%d, got=%d", tc.idx, idx)
			}
		})
	}
}

func TestSet(t *testing.T) {
	a := attr.Set(nil, "ref", "one")
	if len(a) != 1 || a[0].Value != "one" {
		t.Fatalf("expected a single attribute, got %+v", a)
	}
	a = attr.Set(a, "file", "two")
	a = attr.Set(a, "ref", "three")
	if len(a) != 2 {
		t.Fatalf("expected two attributes, got %+v", a)
	}
	if _, v := attr.Get(a, "ref"); v != "three" {
		t.Errorf("wrong value for ref: want=%q, got=%q", "three", v)
	}
	if _, v := attr.Get(a, "file"); v != "two" {
		t.Errorf("wrong value for file: want=%q, got=%q", "two", v)
	}
}
