// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package activesync provides the code pages and default redaction policies
// for Exchange ActiveSync documents.
//
// The code pages follow [MS-ASWBXML].
// Tags that carry binary blobs are flagged opaque, identifiers that are base64
// text in XML but raw bytes on the wire are flagged opaque-base64, and the
// content of ItemOperations:Data is flagged to be peeled off since it can carry
// whole attachments.
//
// [MS-ASWBXML]: https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-aswbxml/
package activesync // import "mellium.im/wbxml/activesync"
