// Package serialization implements the canonical binary encoding shared by every ledger
// codec: big-endian fixed-width integers, raw fixed-size byte arrays, and variable-length
// byte strings prefixed by a u64 big-endian length.
package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrTrailingBytes = errors.New("trailing bytes after value")
)

type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) PutUint8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *Writer) PutUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) PutUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// PutFixed writes raw bytes without any length information.
func (w *Writer) PutFixed(data []byte) {
	w.buf.Write(data)
}

// PutVarBytes writes a u64 length followed by the bytes.
func (w *Writer) PutVarBytes(data []byte) {
	w.PutUint64(uint64(len(data)))
	w.buf.Write(data)
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Reader consumes a byte slice front to back. Every getter fails with ErrUnexpectedEOF
// instead of returning a short value.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n, r.Remaining(), ErrUnexpectedEOF)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) GetUint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) GetUint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) GetUint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) GetUint64() (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// GetFixed copies exactly len(dst) bytes into dst.
func (r *Reader) GetFixed(dst []byte) error {
	b, err := r.next(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// GetBytes returns a copy of the next n bytes. A zero-length read yields nil, the one
// canonical empty value for decoded byte fields.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	b, err := r.next(n)
	if err != nil || n == 0 {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// GetVarBytes reads a u64 length and that many bytes. The length is checked against the
// remaining input before anything is allocated.
func (r *Reader) GetVarBytes() ([]byte, error) {
	l, err := r.GetUint64()
	if err != nil {
		return nil, err
	}
	if l > uint64(r.Remaining()) {
		return nil, fmt.Errorf("length %d exceeds remaining %d bytes: %w", l, r.Remaining(), ErrUnexpectedEOF)
	}
	return r.GetBytes(int(l))
}

// Finish reports ErrTrailingBytes if any input is left unread.
func (r *Reader) Finish() error {
	if r.Remaining() > 0 {
		return fmt.Errorf("%d bytes left: %w", r.Remaining(), ErrTrailingBytes)
	}
	return nil
}
