// Package codec provides the ordered binary read/write pair every
// persisted entity round-trips through. Writers and readers latch the
// first error and turn subsequent calls into no-ops, so encode and
// decode paths stay branch-free and check the error once at the end.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrShortRead indicates the stream ended before the declared payload.
var ErrShortRead = errors.New("codec: short read")

// Writer serializes values little-endian onto an io.Writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(buf []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(buf)
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(v byte) error {
	w.write([]byte{v})
	return w.err
}

// WriteBool writes a bool as one byte.
func (w *Writer) WriteBool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	w.WriteByte(b)
}

// WriteUint32 writes a fixed-width uint32.
func (w *Writer) WriteUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

// WriteUint64 writes a fixed-width uint64.
func (w *Writer) WriteUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

// WriteInt writes an int as a sign-preserved 64-bit value.
func (w *Writer) WriteInt(v int) {
	w.WriteUint64(uint64(int64(v)))
}

// WriteFloat64 writes a float64 by IEEE 754 bits.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteString writes a uint32 length prefix followed by the raw bytes.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.write([]byte(s))
}

// WriteBytes writes a uint32 length prefix followed by the raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUint32(uint32(len(b)))
	w.write(b)
}

// Reader deserializes values written by Writer, in the same order.
type Reader struct {
	r   io.Reader
	err error
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) read(buf []byte) bool {
	if r.err != nil {
		return false
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.err = ErrShortRead
		} else {
			r.err = err
		}
		return false
	}
	return true
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	var buf [1]byte
	r.read(buf[:])
	return buf[0], r.err
}

// ReadBool reads a bool written by WriteBool.
func (r *Reader) ReadBool() bool {
	b, _ := r.ReadByte()
	return b != 0
}

// ReadUint32 reads a fixed-width uint32.
func (r *Reader) ReadUint32() uint32 {
	var buf [4]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// ReadUint64 reads a fixed-width uint64.
func (r *Reader) ReadUint64() uint64 {
	var buf [8]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// ReadInt reads an int written by WriteInt.
func (r *Reader) ReadInt() int {
	return int(int64(r.ReadUint64()))
}

// ReadFloat64 reads a float64 written by WriteFloat64.
func (r *Reader) ReadFloat64() float64 {
	return math.Float64frombits(r.ReadUint64())
}

// ReadString reads a string written by WriteString.
func (r *Reader) ReadString() string {
	n := r.ReadUint32()
	if r.err != nil || n == 0 {
		return ""
	}
	if n > maxStringLen {
		r.err = fmt.Errorf("codec: string length %d exceeds limit", n)
		return ""
	}
	buf := make([]byte, n)
	if !r.read(buf) {
		return ""
	}
	return string(buf)
}

// ReadBytes reads a byte slice written by WriteBytes.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadUint32()
	if r.err != nil || n == 0 {
		return nil
	}
	if n > maxStringLen {
		r.err = fmt.Errorf("codec: blob length %d exceeds limit", n)
		return nil
	}
	buf := make([]byte, n)
	if !r.read(buf) {
		return nil
	}
	return buf
}

// Corrupt decoded lengths must not drive allocations; save snapshots
// never carry a single field this large.
const maxStringLen = 1 << 26
