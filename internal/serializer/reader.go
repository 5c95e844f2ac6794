package serializer

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/umbra-network/go-umbra/internal/crypto/hash"
)

// ErrInvalidSize is returned when a read runs past the end of the input
// or the input length does not match the expected structure size.
var ErrInvalidSize = errors.New("invalid serialized size")

// Reader decodes a canonical encoding. Reads never panic; underflow is
// reported as ErrInvalidSize so malformed network input is rejected
// cleanly.
type Reader struct {
	data []byte
	off  int
}

// NewReader wraps data for decoding.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Size returns the total input length.
func (r *Reader) Size() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, %d remaining", ErrInvalidSize, n, r.Remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadHash reads a 32-byte hash.
func (r *Reader) ReadHash() (hash.Hash, error) {
	b, err := r.take(hash.Size)
	if err != nil {
		return hash.Zero, err
	}
	return hash.FromBytes(b)
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

// ReadBytes32 reads a fixed 32-byte array.
func (r *Reader) ReadBytes32() ([32]byte, error) {
	var out [32]byte
	b, err := r.take(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}
