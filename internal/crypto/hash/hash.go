// Package hash provides the fixed-size chain hash used for block work,
// transactions and RPC identifiers.
package hash

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the length of a chain hash in bytes.
const Size = 32

// Hash is a 32-byte chain hash.
type Hash [Size]byte

// Zero is the all-zero hash.
var Zero Hash

// ErrInvalidSize is returned when input bytes are not exactly Size long.
var ErrInvalidSize = errors.New("invalid hash size")

// FromBytes copies b into a Hash, checking the length.
func FromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != Size {
		return h, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSize, Size, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// FromHex decodes a hex-encoded hash.
func FromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, err
	}
	return FromBytes(b)
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// IsZero reports whether the hash is all zeroes.
func (h Hash) IsZero() bool {
	return h == Zero
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
