// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml_test

import (
	"encoding/xml"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mellium.im/wbxml"
)

var encodeTestCases = [...]struct {
	root *wbxml.Element
	out  []byte
	// lossy is set if decoding the output does not give back the same tree.
	lossy bool
}{
	0: {
		root: a("A", wbxml.Text("hello")),
		out:  doc(0x00, 0x00, 0x45, 0x03, 'h', 'e', 'l', 'l', 'o', 0x00, 0x01),
	},
	1: {
		root: a("A"),
		out:  doc(0x00, 0x00, 0x05),
	},
	2: {
		root: a("A", wbxml.Text("")),
		out:  doc(0x00, 0x00, 0x05),
	},
	3: {
		// Switches happen only when the page changes.
		root: a("A", b("X"), b("Y"), a("B"), b("X")),
		out:  doc(0x00, 0x00, 0x45, 0x00, 0x01, 0x05, 0x06, 0x00, 0x00, 0x06, 0x00, 0x01, 0x05, 0x01),
	},
	4: {
		root: a("Blob", wbxml.Opaque{1, 2, 3}),
		out:  doc(0x00, 0x00, 0x49, 0xc3, 0x03, 1, 2, 3, 0x01),
	},
	5: {
		root: a("Blob", wbxml.Text("ab")),
		out:  doc(0x00, 0x00, 0x49, 0xc3, 0x02, 'a', 'b', 0x01),
	},
	6: {
		root: a("ID", wbxml.Text("AQID")),
		out:  doc(0x00, 0x00, 0x4a, 0xc3, 0x03, 1, 2, 3, 0x01),
	},
	7: {
		// Opaque nodes are always written as opaque data.
		root:  a("A", wbxml.Opaque{0xff}),
		out:   doc(0x00, 0x00, 0x45, 0xc3, 0x01, 0xff, 0x01),
		lossy: true,
	},
	8: {
		root: a("A", a("B", wbxml.Text("1")), wbxml.Text("2")),
		out:  cat(doc(0x00, 0x00, 0x45, 0x46), str("1"), []byte{0x01}, str("2"), []byte{0x01}),
	},
}

func TestEncode(t *testing.T) {
	for i, tc := range encodeTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			out, red, err := wbxml.Encode(tc.root, testPages)
			require.NoError(t, err)
			assert.Nil(t, red)
			assert.Equal(t, tc.out, out)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	for i, tc := range [...]struct {
		root *wbxml.Element
		err  error
	}{
		0: {root: a("A", wbxml.NewElement(xml.Name{Space: nsA, Local: "Nope"})), err: wbxml.ErrUnknownTag},
		1: {root: wbxml.NewElement(xml.Name{Space: "Nope", Local: "A"}), err: wbxml.ErrUnknownTag},
		2: {root: &wbxml.Element{Name: xml.Name{Space: nsA, Local: "A"}, Attr: []xml.Attr{{Name: xml.Name{Local: "x"}, Value: "y"}}}, err: wbxml.ErrUnsupported},
		3: {root: a("A", wbxml.Text("nul\x00byte"))},
		4: {root: a("ID", wbxml.Text("not base64!"))},
		5: {root: nil},
		6: {root: a("A", nil)},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			out, _, err := wbxml.Encode(tc.root, testPages)
			if err == nil {
				t.Fatalf("expected an error, got output %x", out)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("wrong error: want=%v, got=%v", tc.err, err)
			}
			if out != nil {
				t.Errorf("expected no output on error, got %x", out)
			}
		})
	}
}

func TestEncoderReuse(t *testing.T) {
	e := wbxml.NewEncoder(testPages)
	first, _, err := e.Encode(a("A", b("X")))
	require.NoError(t, err)
	second, _, err := e.Encode(a("A", b("X")))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
