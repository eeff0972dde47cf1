// Copyright © 2021 The upb.crypto.groupsig authors
//
// This file is part of groupsig.
//
// Groupsig is free software: you can redistribute it and/or modify it under
// the terms of the GNU Lesser General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Groupsig is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Lesser General Public License for more
// details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with groupsig. If not, see <http://www.gnu.org/licenses/>.

// Package repr implements the canonical representation codec shared by all
// protocol artifacts. Group elements are stored point-compressed; scalars are
// stored as their canonical byte form. All framing goes through gob, so a
// representation is self-delimiting and can be concatenated on a stream.
package repr

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/Nik-U/pbc"
)

// ConvertToBytes collects the representation of a WriterTo into a byte slice.
func ConvertToBytes(wt io.WriterTo) []byte {
	buf := new(bytes.Buffer)
	wt.WriteTo(buf)
	return buf.Bytes()
}

// Writer encodes artifact fields onto a stream. The first error sticks and
// turns all further calls into no-ops; callers check Err once at the end.
type Writer struct {
	w     io.Writer
	enc   *gob.Encoder
	count int64
	err   error
}

func NewWriter(w io.Writer) *Writer {
	gw := &Writer{w: w}
	gw.enc = gob.NewEncoder(gw)
	return gw
}

func (gw *Writer) Write(p []byte) (int, error) {
	if gw.err != nil {
		return len(p), nil
	}
	n, err := gw.w.Write(p)
	gw.count += int64(n)
	gw.err = err
	return n, err
}

func (gw *Writer) Encode(e interface{}) {
	if gw.err == nil {
		if err := gw.enc.Encode(e); err != nil {
			gw.err = err
		}
	}
}

// EncodeElement writes a group element in compressed point form.
func (gw *Writer) EncodeElement(e *pbc.Element) {
	gw.Encode(e.CompressedBytes())
}

// EncodeScalar writes a field element in canonical byte form.
func (gw *Writer) EncodeScalar(e *pbc.Element) {
	gw.Encode(e.Bytes())
}

func (gw *Writer) Count() int64 { return gw.count }
func (gw *Writer) Err() error   { return gw.err }

// Reader decodes artifact fields from a stream, mirroring Writer. Element
// decoding writes into caller-allocated elements so that every element is
// tied to the pairing of the scheme doing the restore.
type Reader struct {
	dec *gob.Decoder
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: gob.NewDecoder(r)}
}

func (gr *Reader) Decode(e interface{}) bool {
	if gr.err == nil {
		gr.err = gr.dec.Decode(e)
	}
	return gr.err == nil
}

func (gr *Reader) DecodeElement(e *pbc.Element) bool {
	var buf []byte
	if !gr.Decode(&buf) {
		return false
	}
	e.SetCompressedBytes(buf)
	return true
}

func (gr *Reader) DecodeScalar(e *pbc.Element) bool {
	var buf []byte
	if !gr.Decode(&buf) {
		return false
	}
	e.SetBytes(buf)
	return true
}

func (gr *Reader) Err() error { return gr.err }
