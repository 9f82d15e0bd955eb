// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml

import (
	"context"
	"errors"
	"fmt"

	"mellium.im/wbxml/codepage"
)

// Errors returned by the decoder and encoder.
// Returned errors wrap one of these and may be checked with errors.Is.
var (
	// ErrFormat is returned when a document is malformed.
	ErrFormat = errors.New("wbxml: malformed document")

	// ErrUnsupported is returned when a document uses a feature of WBXML that
	// is not supported, such as attributes, string tables, or extension
	// tokens.
	ErrUnsupported = errors.New("wbxml: unsupported feature")

	// ErrUnknownTag is returned when encoding an element whose name is not in
	// the code page table.
	ErrUnknownTag = codepage.ErrUnknownTag

	// ErrCanceled is returned when the context passed to Decode is canceled
	// or its deadline expires.
	// The error also wraps the context's error.
	ErrCanceled = errors.New("wbxml: canceled")
)

func formatErr(format string, v ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFormat}, v...)...)
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}

func isCtxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
