// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package wbxml implements the WAP Binary XML encoding as used by Exchange
// ActiveSync.
//
// Documents are decoded into a small tree of *Element, Text, and Opaque nodes
// and encoded back from such a tree.
// Tags are mapped to tokens by a codepage.Table; the ActiveSync table lives in
// the activesync package.
//
// Only the subset of WBXML 1.3 used by ActiveSync is supported: UTF-8
// documents with an empty string table, inline strings, opaque data, and code
// page switches.
// Attributes, string table references, entities, processing instructions, and
// extension tokens result in an error wrapping ErrUnsupported.
//
// # Redaction
//
// While a document is decoded or encoded a redacted copy may be built in the
// same pass, suitable for writing to a diagnostic log.
// The copy is controlled by a policy tree from the redact package, selected by
// the namespace of the root element:
//
//	root, red, err := wbxml.Decode(ctx, body, activesync.Pages,
//		wbxml.Redact(activesync.Policies))
//
// Content under elements with no policy is dropped, content under partially
// redacted elements is replaced by a placeholder giving its length, and
// elements that the policy does not know about are kept without their content.
// The copy can be a tree or, with RedactBinary, a WBXML document.
//
// # Peeling off content
//
// Tags flagged with codepage.PeelOff may carry very large payloads such as
// attachments.
// With PeelToStore or PeelToDir the decoder streams that content to external
// storage instead of keeping it in memory and records where it went in an
// attribute of the element.
// Streaming polls the context passed to Decode so large transfers can be
// canceled.
package wbxml // import "mellium.im/wbxml"
