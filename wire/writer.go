// Package wire implements the little-endian binary layout shared with the
// rendering client, plus the text helpers used to emit rich-text content.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// MaxStringLength is the largest string, in bytes, the client accepts for one
// length-prefixed field.
const MaxStringLength = 32 * 1024

var ErrStringTooLong = errors.New("string exceeds the maximum wire length")

// Writer is an append-only byte buffer. The zero value is ready to use.
type Writer struct {
	buf []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice aliases the internal buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far. It is used as a position.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Truncate discards everything written after position n.
func (w *Writer) Truncate(n int) {
	w.buf = w.buf[:n]
}

func (w *Writer) WriteUint8(b byte) {
	w.buf = append(w.buf, b)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteInt32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

// PutInt32At overwrites 4 already written bytes at pos.
func (w *Writer) PutInt32At(pos int, v int32) {
	binary.LittleEndian.PutUint32(w.buf[pos:pos+4], uint32(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteString writes s prefixed with its length plus one as uint16.
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	w.WriteUint16(uint16(len(s) + 1))
	w.buf = append(w.buf, s...)
	return nil
}

// WriteBytes is WriteString for a byte slice.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	w.WriteUint16(uint16(len(b) + 1))
	w.buf = append(w.buf, b...)
	return nil
}

// WriteNullableString writes a zero length prefix for nil.
func (w *Writer) WriteNullableString(s *string) error {
	if s == nil {
		w.WriteUint16(0)
		return nil
	}
	return w.WriteString(*s)
}

// WriteRaw appends s without any prefix.
func (w *Writer) WriteRaw(s string) {
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteRawBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteRune appends r encoded as UTF-8.
func (w *Writer) WriteRune(r rune) {
	w.buf = utf8.AppendRune(w.buf, r)
}

// WriteIntAsString appends n in ASCII decimal.
func (w *Writer) WriteIntAsString(n int) {
	w.buf = strconv.AppendInt(w.buf, int64(n), 10)
}

// WriteFloatAsString appends the shortest decimal form of f. Negative zero
// and non-finite values are written as 0.
func (w *Writer) WriteFloatAsString(f float32) {
	if f == 0 || math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		w.buf = append(w.buf, '0')
		return
	}
	w.buf = strconv.AppendFloat(w.buf, float64(f), 'f', -1, 32)
}

// WriteFormatItem appends the placeholder {id}.
func (w *Writer) WriteFormatItem(id int) {
	w.buf = append(w.buf, '{')
	w.WriteIntAsString(id)
	w.buf = append(w.buf, '}')
}

// WriteFormatItemNoBreak appends {id} and records it as a no-break zone.
func (w *Writer) WriteFormatItemNoBreak(id int, zones *NoBreaks) {
	start := len(w.buf)
	w.WriteFormatItem(id)
	zones.Add(start, len(w.buf)-start)
}

// FormatItemLength returns the byte length of the placeholder {id}.
func FormatItemLength(id int) int {
	n := 3
	for id >= 10 {
		id /= 10
		n++
	}
	return n
}
