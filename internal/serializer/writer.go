// Package serializer implements the canonical wire encoding used for
// block work, transactions and other chain structures. All multi-byte
// integers are big-endian; points and hashes use their fixed-size
// canonical encodings.
package serializer

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"github.com/umbra-network/go-umbra/internal/crypto/hash"
)

// Serializable is implemented by every structure with a canonical wire form.
type Serializable interface {
	// Write appends the canonical encoding to w.
	Write(w *Writer)
	// Size returns the encoded length in bytes.
	Size() int
}

// Writer accumulates a canonical encoding.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteHash appends a 32-byte hash.
func (w *Writer) WriteHash(h hash.Hash) {
	w.buf.Write(h[:])
}

// WriteUint64 appends v in big-endian order.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteUint16 appends v in big-endian order.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteBytes appends b verbatim, with no length prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.Write(b)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// ToBytes returns the canonical encoding of s.
func ToBytes(s Serializable) []byte {
	w := NewWriter()
	s.Write(w)
	return w.Bytes()
}

// ToHex returns the hex form of the canonical encoding of s, as used by
// the RPC layer for transactions and miner work.
func ToHex(s Serializable) string {
	return hex.EncodeToString(ToBytes(s))
}
