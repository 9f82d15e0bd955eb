// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package capture wraps redacted documents in records that can be handed to a
// diagnostics collector.
//
// Records are encoded as CBOR using core deterministic encoding, so the same
// record always produces the same bytes.
// Only redacted copies of documents are ever put in a record.
package capture // import "mellium.im/wbxml/capture"

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"mellium.im/wbxml"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	opts.TimeTag = cbor.EncTagRequired
	encMode, err = opts.EncMode()
	if err != nil {
		panic("capture: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("capture: CBOR decoder initialization failed: " + err.Error())
	}
}

// Direction is the direction a captured document travelled.
type Direction uint8

// A list of directions.
const (
	Received Direction = iota
	Sent
)

// String satisfies fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Received:
		return "received"
	case Sent:
		return "sent"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Record is a single captured document.
type Record struct {
	Direction Direction `cbor:"1,keyasint"`
	Time      time.Time `cbor:"2,keyasint"`
	Space     string    `cbor:"3,keyasint,omitempty"`
	XML       string    `cbor:"4,keyasint,omitempty"`
	WBXML     []byte    `cbor:"5,keyasint,omitempty"`
}

// New creates a record from the redacted copy of a document.
// The time is set to the current time in UTC.
func New(dir Direction, r *wbxml.Redacted) (Record, error) {
	if r == nil {
		return Record{}, errors.New("capture: no redacted document")
	}
	rec := Record{
		Direction: dir,
		Time:      time.Now().UTC(),
		WBXML:     r.WBXML,
	}
	if r.Tree != nil {
		rec.Space = r.Tree.Name.Space
		s, err := RenderXML(r.Tree)
		if err != nil {
			return Record{}, err
		}
		rec.XML = s
	}
	return rec, nil
}

// RenderXML returns the XML form of a tree.
func RenderXML(root *wbxml.Element) (string, error) {
	var b strings.Builder
	e := xml.NewEncoder(&b)
	if _, err := root.WriteXML(e); err != nil {
		return "", fmt.Errorf("capture: rendering XML: %w", err)
	}
	if err := e.Flush(); err != nil {
		return "", fmt.Errorf("capture: rendering XML: %w", err)
	}
	return b.String(), nil
}

// Marshal encodes the record.
func (r Record) Marshal() ([]byte, error) {
	return encMode.Marshal(r)
}

// Unmarshal decodes a record encoded with Marshal.
func Unmarshal(b []byte) (Record, error) {
	var r Record
	err := decMode.Unmarshal(b, &r)
	return r, err
}

// Writer writes a stream of records.
type Writer struct {
	enc *cbor.Encoder
}

// NewWriter returns a writer that appends records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: encMode.NewEncoder(w)}
}

// Write appends a record to the stream.
func (w *Writer) Write(r Record) error {
	return w.enc.Encode(r)
}

// Reader reads a stream of records.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader returns a reader for records written by a Writer.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: decMode.NewDecoder(r)}
}

// Next returns the next record in the stream.
// At the end of the stream it returns io.EOF.
func (r *Reader) Next() (Record, error) {
	var rec Record
	err := r.dec.Decode(&rec)
	return rec, err
}
