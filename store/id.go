// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// idLen is the number of random bytes in an object identifier.
const idLen = 16

// newID returns a hex encoded identifier read from r.
// Identifiers are used as file names, so only [0-9a-f] may appear in them.
func newID(r io.Reader) (string, error) {
	b := make([]byte, idLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("store: generating identifier: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func randomID() (string, error) {
	return newID(rand.Reader)
}
