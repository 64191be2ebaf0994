// Package binary provides the append-only big-endian builder used to
// assemble login protocol packets. Every multi-byte integer on the wire
// is big-endian; variable-width fields carry a 2-byte length prefix.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOversizeField is returned when a length-prefixed field would not
	// fit its 16-bit length slot. This indicates a misconfigured profile,
	// never valid protocol data.
	ErrOversizeField = errors.New("length-prefixed field exceeds 0xFFFF bytes")
)

// Writer accumulates big-endian wire data. Methods chain; the first
// constraint violation sticks and is surfaced by Bytes, so a whole field
// sequence can be written before checking.
type Writer struct {
	buf []byte
	err error
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) *Writer {
	w.buf = append(w.buf, v)
	return w
}

// WriteU16 appends a big-endian 16-bit integer.
func (w *Writer) WriteU16(v uint16) *Writer {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
	return w
}

// WriteU32 appends a big-endian 32-bit integer.
func (w *Writer) WriteU32(v uint32) *Writer {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
	return w
}

// WriteU64 appends a big-endian 64-bit integer.
func (w *Writer) WriteU64(v uint64) *Writer {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
	return w
}

// WriteBytes appends raw bytes with no framing.
func (w *Writer) WriteBytes(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

// WriteTlv appends a 2-byte big-endian length prefix followed by b.
// This is the inner length-delimited field format, distinct from the
// outer tag/length/value framing. A field longer than 0xFFFF bytes sets
// the sticky error.
func (w *Writer) WriteTlv(b []byte) *Writer {
	if len(b) > math.MaxUint16 {
		if w.err == nil {
			w.err = fmt.Errorf("%w (%d bytes)", ErrOversizeField, len(b))
		}
		return w
	}
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(len(b)))
	w.buf = append(w.buf, b...)
	return w
}

// WriteTlvLimited appends a length-prefixed field truncated to at most
// limit bytes. Truncation keeps the leading bytes; the remote end expects
// fixed-width fields and ignores the rest.
func (w *Writer) WriteTlvLimited(b []byte, limit int) *Writer {
	if len(b) > limit {
		b = b[:limit]
	}
	return w.WriteTlv(b)
}

// Prepend inserts b before everything written so far. Used to attach the
// outer tag/length header once the payload length is known.
func (w *Writer) Prepend(b []byte) *Writer {
	buf := make([]byte, 0, len(b)+len(w.buf))
	buf = append(buf, b...)
	buf = append(buf, w.buf...)
	w.buf = buf
	return w
}

// Len returns the number of bytes accumulated so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes finalizes the writer and returns the accumulated output, or the
// sticky error if any field violated a length constraint.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}
