// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package store provides external storage for content that is too large to
// keep in a decoded document.
//
// Every object gets a freshly generated identifier, so concurrent decoders
// sharing a store never write to the same object.
// The lifecycle of stored objects belongs to the caller.
package store // import "mellium.im/wbxml/store"

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when an identifier does not name a stored object.
var ErrNotFound = errors.New("store: object not found")

// Store saves content under generated identifiers.
type Store interface {
	// Save creates a new object containing b and returns its identifier.
	Save(ctx context.Context, b []byte) (id string, err error)

	// Create creates a new object and returns its identifier along with a
	// writer for its content.
	// The object exists as soon as Create returns; if writing fails the caller
	// removes it.
	Create(ctx context.Context) (id string, w io.WriteCloser, err error)

	// Remove deletes an object.
	Remove(ctx context.Context, id string) error
}

// Dir is a Store that keeps each object in its own file in a directory.
type Dir struct {
	path string
}

// NewDir returns a store rooted at path, creating the directory if necessary.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the file that holds the object with the given identifier.
func (d *Dir) Path(id string) string {
	return filepath.Join(d.path, id)
}

func (d *Dir) valid(id string) error {
	if id == "" || filepath.Base(id) != id || id == "." || id == ".." {
		return fmt.Errorf("store: invalid identifier %q", id)
	}
	return nil
}

// Save satisfies Store.
func (d *Dir) Save(ctx context.Context, b []byte) (string, error) {
	id, w, err := d.Create(ctx)
	if err != nil {
		return "", err
	}
	_, err = w.Write(b)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(d.Path(id))
		return "", fmt.Errorf("store: %w", err)
	}
	return id, nil
}

// Create satisfies Store.
func (d *Dir) Create(ctx context.Context) (string, io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	id, err := randomID()
	if err != nil {
		return "", nil, err
	}
	f, err := os.OpenFile(d.Path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("store: %w", err)
	}
	return id, f, nil
}

// Remove satisfies Store.
func (d *Dir) Remove(ctx context.Context, id string) error {
	if err := d.valid(id); err != nil {
		return err
	}
	err := os.Remove(d.Path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

// Mem is a Store that keeps objects in memory.
// The zero value is an empty store ready to use.
type Mem struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// Save satisfies Store.
func (m *Mem) Save(ctx context.Context, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := randomID()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[id] = append([]byte(nil), b...)
	return id, nil
}

// Create satisfies Store.
// The object is empty until the returned writer is closed.
func (m *Mem) Create(ctx context.Context) (string, io.WriteCloser, error) {
	id, err := m.Save(ctx, nil)
	if err != nil {
		return "", nil, err
	}
	return id, &memWriter{m: m, id: id}, nil
}

// Remove satisfies Store.
func (m *Mem) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.objects, id)
	return nil
}

// Get returns the content of an object.
func (m *Mem) Get(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[id]
	return b, ok
}

// Len returns the number of stored objects.
func (m *Mem) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type memWriter struct {
	m   *Mem
	id  string
	buf bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	if _, ok := w.m.objects[w.id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, w.id)
	}
	w.m.objects[w.id] = w.buf.Bytes()
	return nil
}

// TempFile creates a new uniquely named file in dir for peeled off content.
// If dir is empty the default directory for temporary files is used.
func TempFile(dir string) (*os.File, error) {
	return os.CreateTemp(dir, "wbxml-peel-*")
}
