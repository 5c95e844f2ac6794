package elgamal

import (
	"errors"
	"fmt"

	"github.com/gtank/ristretto255"
)

const (
	// PointSize is the length of a canonical compressed group element.
	PointSize = 32
	// CiphertextSize is the length of a compressed ciphertext:
	// commitment followed by handle.
	CiphertextSize = 2 * PointSize
)

var (
	// ErrInvalidPoint is returned when bytes do not decode to a valid
	// canonical ristretto255 element.
	ErrInvalidPoint = errors.New("invalid ristretto point encoding")
	// ErrInvalidSize is returned when a compressed input has the wrong length.
	ErrInvalidSize = errors.New("invalid compressed size")
)

// CompressedCommitment is the canonical wire encoding of a Pedersen
// commitment: one compressed point.
type CompressedCommitment [PointSize]byte

// CompressedHandle is the canonical wire encoding of a decrypt handle.
type CompressedHandle [PointSize]byte

// CompressedCiphertext is the canonical wire encoding of a ciphertext:
// commitment (32 bytes) followed by handle (32 bytes).
type CompressedCiphertext [CiphertextSize]byte

// CompressedCommitmentFromBytes copies b into a CompressedCommitment.
// Only the length is checked; decoding validity is deferred to Decompress.
func CompressedCommitmentFromBytes(b []byte) (CompressedCommitment, error) {
	var out CompressedCommitment
	if len(b) != PointSize {
		return out, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSize, PointSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// CompressedCiphertextFromBytes copies b into a CompressedCiphertext.
func CompressedCiphertextFromBytes(b []byte) (CompressedCiphertext, error) {
	var out CompressedCiphertext
	if len(b) != CiphertextSize {
		return out, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSize, CiphertextSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Decompress reconstructs the commitment. This is the fallible boundary:
// it must be called on every read from untrusted input, and fails with
// ErrInvalidPoint on malformed or non-canonical encodings.
func (c CompressedCommitment) Decompress() (PedersenCommitment, error) {
	p, err := decodePoint(c[:])
	if err != nil {
		return PedersenCommitment{}, fmt.Errorf("commitment: %w", err)
	}
	return PedersenCommitment{point: p}, nil
}

// Decompress reconstructs the handle, failing on invalid encodings.
func (h CompressedHandle) Decompress() (DecryptHandle, error) {
	p, err := decodePoint(h[:])
	if err != nil {
		return DecryptHandle{}, fmt.Errorf("handle: %w", err)
	}
	return DecryptHandle{point: p}, nil
}

// Commitment returns the commitment half of the encoding.
func (c CompressedCiphertext) Commitment() CompressedCommitment {
	var out CompressedCommitment
	copy(out[:], c[:PointSize])
	return out
}

// Handle returns the handle half of the encoding.
func (c CompressedCiphertext) Handle() CompressedHandle {
	var out CompressedHandle
	copy(out[:], c[PointSize:])
	return out
}

// Decompress reconstructs the ciphertext. It fails with ErrInvalidPoint
// if either half is not a valid point encoding; a partially decoded
// result is never returned.
func (c CompressedCiphertext) Decompress() (Ciphertext, error) {
	commitment, err := c.Commitment().Decompress()
	if err != nil {
		return Ciphertext{}, err
	}
	handle, err := c.Handle().Decompress()
	if err != nil {
		return Ciphertext{}, err
	}
	return Ciphertext{commitment: commitment, handle: handle}, nil
}

func decodePoint(b []byte) (*ristretto255.Element, error) {
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPoint, err)
	}
	return p, nil
}
