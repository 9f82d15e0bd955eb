// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml_test

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mellium.im/wbxml"
	"mellium.im/wbxml/activesync"
	"mellium.im/wbxml/store"
)

func TestDecodeLayout(t *testing.T) {
	root, red, err := wbxml.Decode(context.Background(),
		doc(0x00, 0x00, 0x45, 0x03, 'h', 'e', 'l', 'l', 'o', 0x00, 0x01), testPages)
	require.NoError(t, err)
	assert.Nil(t, red)
	assert.Equal(t, a("A", wbxml.Text("hello")), root)
}

func TestRoundTrip(t *testing.T) {
	for i, tc := range encodeTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if tc.lossy {
				t.Skip("opaque data under a plain tag decodes as text")
			}
			out, _, err := wbxml.Encode(tc.root, testPages)
			require.NoError(t, err)
			root, _, err := wbxml.Decode(context.Background(), out, testPages)
			require.NoError(t, err)
			again, _, err := wbxml.Encode(root, testPages)
			require.NoError(t, err)
			assert.Equal(t, out, again)
		})
	}
}

func TestRoundTripActiveSync(t *testing.T) {
	sync := func(local string, children ...wbxml.Node) *wbxml.Element {
		return wbxml.NewElement(xml.Name{Space: activesync.NSAirSync, Local: local}, children...)
	}
	email := func(local string, children ...wbxml.Node) *wbxml.Element {
		return wbxml.NewElement(xml.Name{Space: activesync.NSEmail, Local: local}, children...)
	}
	base := func(local string, children ...wbxml.Node) *wbxml.Element {
		return wbxml.NewElement(xml.Name{Space: activesync.NSAirSyncBase, Local: local}, children...)
	}
	email2 := func(local string, children ...wbxml.Node) *wbxml.Element {
		return wbxml.NewElement(xml.Name{Space: activesync.NSEmail2, Local: local}, children...)
	}
	root := sync("Sync",
		sync("Collections",
			sync("Collection",
				sync("SyncKey", wbxml.Text("1234")),
				sync("CollectionId", wbxml.Text("5")),
				sync("Commands",
					sync("Add",
						sync("ServerId", wbxml.Text("5:1")),
						sync("ApplicationData",
							email("Subject", wbxml.Text("Lunch?")),
							email("From", wbxml.Text("someone@example.net")),
							base("Body",
								base("Type", wbxml.Text("1")),
								base("Data", wbxml.Text("See you at noon")),
							),
							email2("ConversationId", wbxml.Text("AAECAwQFBgc=")),
							email("Read", wbxml.Text("0")),
						),
					),
				),
			),
		),
	)
	out, _, err := wbxml.Encode(root, activesync.Pages)
	require.NoError(t, err)
	got, _, err := wbxml.Decode(context.Background(), out, activesync.Pages)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestDecodeContent(t *testing.T) {
	for i, tc := range [...]struct {
		in   []byte
		root *wbxml.Element
	}{
		0: {
			in:   doc(0x00, 0x00, 0x49, 0xc3, 0x02, 0xde, 0xad, 0x01),
			root: a("Blob", wbxml.Opaque{0xde, 0xad}),
		},
		1: {
			in:   doc(0x00, 0x00, 0x4a, 0xc3, 0x03, 1, 2, 3, 0x01),
			root: a("ID", wbxml.Text("AQID")),
		},
		2: {
			in:   doc(0x00, 0x00, 0x45, 0xc3, 0x02, 'h', 'i', 0x01),
			root: a("A", wbxml.Text("hi")),
		},
		3: {
			// Invalid UTF-8 is replaced.
			in:   doc(0x00, 0x00, 0x45, 0xc3, 0x02, 'h', 0xff, 0x01),
			root: a("A", wbxml.Text("h�")),
		},
		4: {
			// The decoder starts on page 0.
			in:   doc(0x45, 0x46, 0x01, 0x01),
			root: a("A", a("B")),
		},
		5: {
			// Unknown tokens get placeholder names.
			in:   doc(0x00, 0x01, 0x3f),
			root: b("UNKNOWN_TAG_3F"),
		},
		6: {
			// An END at the root is tolerated.
			in:   doc(0x05, 0x01),
			root: a("A"),
		},
		7: {
			// A root missing its final END is tolerated.
			in:   cat(doc(0x45), str("x")),
			root: a("A", wbxml.Text("x")),
		},
		8: {
			in:   cat(doc(0x45), str("1"), str("2"), []byte{0x01}),
			root: a("A", wbxml.Text("1"), wbxml.Text("2")),
		},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			root, _, err := wbxml.Decode(context.Background(), tc.in, testPages)
			require.NoError(t, err)
			assert.Equal(t, tc.root, root)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for i, tc := range [...]struct {
		in  []byte
		err error
	}{
		0:  {in: nil, err: wbxml.ErrFormat},
		1:  {in: []byte{0x02, 0x01, 0x6a, 0x00, 0x05}, err: wbxml.ErrFormat},
		2:  {in: []byte{0x03, 0x01, 0x04, 0x00, 0x05}, err: wbxml.ErrFormat},
		3:  {in: []byte{0x03, 0x01, 0x6a, 0x01, 0x00, 0x05}, err: wbxml.ErrFormat},
		4:  {in: []byte{0x03, 0x01}, err: wbxml.ErrFormat},
		5:  {in: doc(), err: wbxml.ErrFormat},
		6:  {in: doc(0x00, 0x02, 0x05), err: wbxml.ErrFormat},
		7:  {in: doc(0x00), err: wbxml.ErrFormat},
		8:  {in: doc(0x45, 0x46), err: wbxml.ErrFormat},
		9:  {in: doc(0x05, 0x05), err: wbxml.ErrFormat},
		10: {in: doc(0x45, 0x01, 0x03, 'x', 0x00), err: wbxml.ErrFormat},
		11: {in: cat(doc(), str("x")), err: wbxml.ErrFormat},
		12: {in: doc(0x45, 0x03, 'x'), err: wbxml.ErrFormat},
		13: {in: doc(0x45, 0xc3, 0x05, 'x'), err: wbxml.ErrFormat},
		14: {in: doc(0x45, 0xc3, 0x80), err: wbxml.ErrFormat},
		15: {in: doc(0x45, 0x02, 0x01), err: wbxml.ErrUnsupported},
		16: {in: doc(0x45, 0x83, 0x01), err: wbxml.ErrUnsupported},
		17: {in: doc(0x45, 0x40, 0x01), err: wbxml.ErrUnsupported},
		18: {in: doc(0x85, 0x01), err: wbxml.ErrUnsupported},
		19: {in: doc(0xc5, 0x01), err: wbxml.ErrUnsupported},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			root, red, err := wbxml.Decode(context.Background(), tc.in, testPages)
			if !errors.Is(err, tc.err) {
				t.Fatalf("wrong error: want=%v, got=%v", tc.err, err)
			}
			if root != nil || red != nil {
				t.Errorf("expected no result on error, got %v, %v", root, red)
			}
		})
	}
}

func TestDecoderUsedOnce(t *testing.T) {
	d := wbxml.NewDecoder(bytes.NewReader(doc(0x05)), testPages)
	_, _, err := d.Decode(context.Background())
	require.NoError(t, err)
	_, _, err = d.Decode(context.Background())
	assert.Error(t, err)
}

func TestDecodeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := wbxml.Decode(ctx, doc(0x05), testPages)
	if !errors.Is(err, wbxml.ErrCanceled) {
		t.Errorf("wrong error: want=%v, got=%v", wbxml.ErrCanceled, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected the context error to be wrapped, got %v", err)
	}
}

func TestPeelToStore(t *testing.T) {
	s := &store.Mem{}
	in := cat(doc(0x45, 0x4b), str("aGVsbG8="), []byte{0x01, 0x4b, 0xc3, 0x03, 'a', 'b', 'c', 0x01, 0x01})
	root, _, err := wbxml.Decode(context.Background(), in, testPages, wbxml.PeelToStore(s))
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	for i, want := range []string{"aGVsbG8=", "abc"} {
		el := root.Children[i].(*wbxml.Element)
		assert.Empty(t, el.Children)
		require.Len(t, el.Attr, 1)
		assert.Equal(t, wbxml.AttrRef, el.Attr[0].Name.Local)
		content, ok := s.Get(el.Attr[0].Value)
		require.True(t, ok)
		assert.Equal(t, want, string(content))
	}
	assert.Equal(t, 2, s.Len())
}

func TestPeelToDir(t *testing.T) {
	dir := t.TempDir()
	in := cat(doc(0x45, 0x4b), str("aGVsbG8="), []byte{0x01, 0x01})
	root, _, err := wbxml.Decode(context.Background(), in, testPages, wbxml.PeelToDir(dir))
	require.NoError(t, err)

	el := root.Child("Data")
	require.NotNil(t, el)
	require.Len(t, el.Attr, 1)
	assert.Equal(t, wbxml.AttrFile, el.Attr[0].Name.Local)
	assert.Equal(t, dir, filepath.Dir(el.Attr[0].Value))
	content, err := os.ReadFile(el.Attr[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestPeelCorruptContent(t *testing.T) {
	dir := t.TempDir()
	in := cat(doc(0x45, 0x4b), str("not base64!"), []byte{0x01, 0x46, 0x01})
	root, _, err := wbxml.Decode(context.Background(), in, testPages, wbxml.PeelToDir(dir))
	require.NoError(t, err)

	el := root.Child("Data")
	require.NotNil(t, el)
	assert.Empty(t, el.Attr)
	assert.NotNil(t, root.Child("B"), "decoding should continue after the payload")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// failingStore wraps a Mem store so that creating objects or writing to them
// fails.
type failingStore struct {
	store.Mem
	create bool
}

func (s *failingStore) Create(ctx context.Context) (string, io.WriteCloser, error) {
	if s.create {
		return "", nil, errors.New("out of space")
	}
	id, w, err := s.Mem.Create(ctx)
	if err != nil {
		return "", nil, err
	}
	return id, failingWriter{w}, nil
}

type failingWriter struct {
	io.WriteCloser
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestPeelStoreFailure(t *testing.T) {
	in := cat(doc(0x45, 0x4b), str("aGVsbG8="), []byte{0x01, 0x46}, str("after"), []byte{0x01, 0x01})
	for i, s := range [...]*failingStore{
		0: {create: true},
		1: {},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			root, _, err := wbxml.Decode(context.Background(), in, testPages, wbxml.PeelToStore(s))
			require.NoError(t, err)

			el := root.Child("Data")
			require.NotNil(t, el)
			assert.Empty(t, el.Attr)
			assert.Empty(t, el.Children)
			sibling := root.Child("B")
			require.NotNil(t, sibling, "decoding should continue after the payload")
			assert.Equal(t, "after", sibling.Text())
			assert.Equal(t, 0, s.Len(), "no objects should be left behind")
		})
	}
}

func TestPeelWithoutDestination(t *testing.T) {
	in := cat(doc(0x45, 0x4b), str("aGVsbG8="), []byte{0x01, 0x01})
	root, _, err := wbxml.Decode(context.Background(), in, testPages)
	require.NoError(t, err)
	assert.Equal(t, a("A", a("Data", wbxml.Text("aGVsbG8="))), root)
}

// cancelReader returns one byte per read and cancels a context once it has
// returned the byte at offset at.
type cancelReader struct {
	b      []byte
	off    int
	at     int
	cancel context.CancelFunc
}

func (r *cancelReader) Read(p []byte) (int, error) {
	if r.off >= len(r.b) {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = r.b[r.off]
	if r.off == r.at {
		r.cancel()
	}
	r.off++
	return 1, nil
}

func TestPeelCanceledLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	first := cat(doc(0x45, 0x4b), str("aGVsbG8="), []byte{0x01})
	second := cat([]byte{0x4b}, str("d29ybGQhIHdvcmxkIQ=="), []byte{0x01, 0x01})
	in := cat(first, second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &cancelReader{b: in, at: len(first) + 5, cancel: cancel}
	root, _, err := wbxml.NewDecoder(r, testPages, wbxml.PeelToDir(dir)).Decode(ctx)
	require.ErrorIs(t, err, wbxml.ErrCanceled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, root)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "peeled off content should be removed")
}

func TestPeelCanceledStore(t *testing.T) {
	s := &store.Mem{}
	in := cat(doc(0x45, 0x4b), str("aGVsbG8="), []byte{0x01, 0x4b}, str("more content here"), []byte{0x01, 0x01})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &cancelReader{b: in, at: len(in) - 8, cancel: cancel}
	_, _, err := wbxml.NewDecoder(r, testPages, wbxml.PeelToStore(s)).Decode(ctx)
	require.ErrorIs(t, err, wbxml.ErrCanceled)
	assert.Equal(t, 0, s.Len())
}
