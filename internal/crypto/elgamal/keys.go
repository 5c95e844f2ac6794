package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/gtank/ristretto255"
)

// ErrZeroScalar is returned when a private key would be the zero scalar.
var ErrZeroScalar = errors.New("private key scalar is zero")

// PrivateKey is a twisted ElGamal decryption key.
type PrivateKey struct {
	s *ristretto255.Scalar
}

// PublicKey is a twisted ElGamal encryption key: P = s^-1 * H. Keeping
// the key on the blinding generator is what lets the commitment absorb
// public-amount adjustments without touching the handle.
type PublicKey struct {
	p *ristretto255.Element
}

// GenerateKey creates a fresh private key from the given randomness
// source. Pass nil to use crypto/rand.
func GenerateKey(r io.Reader) (*PrivateKey, error) {
	for {
		s, err := RandomScalar(r)
		if err != nil {
			return nil, err
		}
		if s.Equal(ristretto255.NewScalar()) == 1 {
			// Zero is not invertible, draw again.
			continue
		}
		return &PrivateKey{s: s}, nil
	}
}

// PrivateKeyFromBytes restores a private key from its canonical 32-byte
// scalar encoding.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	if s.Equal(ristretto255.NewScalar()) == 1 {
		return nil, ErrZeroScalar
	}
	return &PrivateKey{s: s}, nil
}

// Bytes returns the canonical scalar encoding of the private key.
func (sk *PrivateKey) Bytes() []byte {
	return sk.s.Bytes()
}

// PublicKey derives the matching public key P = s^-1 * H.
func (sk *PrivateKey) PublicKey() *PublicKey {
	inv := ristretto255.NewScalar().Invert(sk.s)
	return &PublicKey{
		p: ristretto255.NewIdentityElement().ScalarMult(inv, blindingGen),
	}
}

// PublicKeyFromBytes decodes a compressed public key point.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	p, err := decodePoint(b)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return &PublicKey{p: p}, nil
}

// Bytes returns the canonical compressed encoding of the public key.
func (pk *PublicKey) Bytes() []byte {
	return pk.p.Bytes()
}

// Point returns the underlying group element. The caller must not mutate it.
func (pk *PublicKey) Point() *ristretto255.Element {
	return pk.p
}

// DecryptHandle derives the handle D = blinding * P for this recipient.
func (pk *PublicKey) DecryptHandle(blinding *ristretto255.Scalar) DecryptHandle {
	return DecryptHandle{
		point: ristretto255.NewIdentityElement().ScalarMult(blinding, pk.p),
	}
}

// Encrypt encrypts an amount for this key with a fresh blinding factor
// drawn from r (crypto/rand when nil).
func (pk *PublicKey) Encrypt(r io.Reader, amount uint64) (Ciphertext, error) {
	blinding, err := RandomScalar(r)
	if err != nil {
		return Ciphertext{}, err
	}
	return pk.EncryptWithBlinding(amount, blinding), nil
}

// EncryptWithBlinding encrypts an amount with a caller-chosen blinding
// factor. Deterministic; used when the blinding must also feed a proof.
func (pk *PublicKey) EncryptWithBlinding(amount uint64, blinding *ristretto255.Scalar) Ciphertext {
	return Ciphertext{
		commitment: NewCommitment(amount, blinding),
		handle:     pk.DecryptHandle(blinding),
	}
}
