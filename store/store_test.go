// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package store_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"mellium.im/wbxml/store"
)

var (
	_ store.Store = (*store.Dir)(nil)
	_ store.Store = (*store.Mem)(nil)
)

func newDir(t *testing.T) *store.Dir {
	t.Helper()
	d, err := store.NewDir(filepath.Join(t.TempDir(), "objects"))
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}
	return d
}

func testStore(t *testing.T, s store.Store, read func(id string) ([]byte, bool)) {
	ctx := context.Background()
	id, err := s.Save(ctx, []byte("first"))
	if err != nil {
		t.Fatalf("error saving: %v", err)
	}
	other, w, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("error creating: %v", err)
	}
	if id == other {
		t.Fatalf("expected unique identifiers, got %q twice", id)
	}
	if b, ok := read(id); !ok || string(b) != "first" {
		t.Errorf("wrong content: want=%q, got=%q", "first", b)
	}

	if _, err = io.WriteString(w, "streamed"); err != nil {
		t.Fatalf("error writing: %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("error closing: %v", err)
	}
	if b, ok := read(other); !ok || string(b) != "streamed" {
		t.Errorf("wrong content: want=%q, got=%q", "streamed", b)
	}

	if err = s.Remove(ctx, id); err != nil {
		t.Fatalf("error removing: %v", err)
	}
	if _, ok := read(id); ok {
		t.Error("expected object to be removed")
	}
	if err = s.Remove(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("wrong error removing twice: want=%v, got=%v", store.ErrNotFound, err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err = s.Save(canceled, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("wrong error saving with canceled context: %v", err)
	}
	if _, _, err = s.Create(canceled); !errors.Is(err, context.Canceled) {
		t.Errorf("wrong error creating with canceled context: %v", err)
	}
}

func TestDir(t *testing.T) {
	d := newDir(t)
	testStore(t, d, func(id string) ([]byte, bool) {
		b, err := os.ReadFile(d.Path(id))
		return b, err == nil
	})
}

func TestMem(t *testing.T) {
	m := &store.Mem{}
	testStore(t, m, m.Get)
	if n := m.Len(); n != 1 {
		t.Errorf("wrong number of objects: want=1, got=%d", n)
	}
}

func TestDirRejectsPaths(t *testing.T) {
	d := newDir(t)
	for i, id := range []string{"", ".", "..", "../escape", "a/b"} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if err := d.Remove(context.Background(), id); err == nil || errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected identifier %q to be rejected", id)
			}
		})
	}
}

func TestTempFile(t *testing.T) {
	dir := t.TempDir()
	f, err := store.TempFile(dir)
	if err != nil {
		t.Fatalf("error creating temp file: %v", err)
	}
	defer f.Close()
	if filepath.Dir(f.Name()) != dir {
		t.Errorf("temp file created outside of %s: %s", dir, f.Name())
	}
}
