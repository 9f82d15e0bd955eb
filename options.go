// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package wbxml

import (
	"log/slog"

	"mellium.im/wbxml/redact"
	"mellium.im/wbxml/store"
)

// Option configures a decoder or encoder.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	policies redact.Supplier
	binary   bool
	store    store.Store
	peelDir  string
	peelFile bool
}

func getOpts(o ...Option) options {
	var res options
	for _, f := range o {
		f(&res)
	}
	if res.logger == nil {
		res.logger = slog.New(slog.DiscardHandler)
	}
	return res
}

// Logger sets the logger used to report recoverable problems such as content
// that could not be peeled off.
// By default nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Redact enables building a redacted copy of each document using the policy
// trees returned by s.
// The tree is looked up by the namespace of the root element; if s has no tree
// for it no redacted copy is produced.
func Redact(s redact.Supplier) Option {
	return func(o *options) {
		o.policies = s
	}
}

// RedactBinary makes the redacted copy a WBXML document instead of a tree.
// It has no effect unless Redact is also used.
func RedactBinary() Option {
	return func(o *options) {
		o.binary = true
	}
}

// PeelToStore makes the decoder move the content of elements flagged for
// peeling off into s instead of keeping it in the tree.
// The raw bytes are stored and the element gets a "ref" attribute naming the
// stored object.
func PeelToStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
		o.peelFile = false
	}
}

// PeelToDir makes the decoder move the content of elements flagged for peeling
// off into new files in dir instead of keeping it in the tree.
// The content is base64 decoded and the element gets a "file" attribute with
// the path of the file.
// If dir is empty the default directory for temporary files is used.
func PeelToDir(dir string) Option {
	return func(o *options) {
		o.store = nil
		o.peelDir = dir
		o.peelFile = true
	}
}
