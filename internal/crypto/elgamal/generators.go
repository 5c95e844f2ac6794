package elgamal

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gtank/ristretto255"
	"golang.org/x/crypto/sha3"
)

// The two fixed Pedersen generators. G commits the amount, H commits the
// blinding factor. H is derived from G by hashing its canonical encoding
// to the curve, so no one knows log_G(H).
var (
	valueGen    = ristretto255.NewGeneratorElement()
	blindingGen = deriveBlindingGenerator()
)

func deriveBlindingGenerator() *ristretto255.Element {
	seed := sha3.Sum512(ristretto255.NewGeneratorElement().Bytes())
	h, err := ristretto255.NewIdentityElement().SetUniformBytes(seed[:])
	if err != nil {
		panic(fmt.Sprintf("elgamal: deriving blinding generator: %v", err))
	}
	return h
}

// ValueGenerator returns a copy of the amount generator G.
func ValueGenerator() *ristretto255.Element {
	return ristretto255.NewIdentityElement().Set(valueGen)
}

// BlindingGenerator returns a copy of the blinding generator H.
func BlindingGenerator() *ristretto255.Element {
	return ristretto255.NewIdentityElement().Set(blindingGen)
}

// AmountScalar converts a plaintext amount to a scalar.
func AmountScalar(amount uint64) *ristretto255.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], amount)
	s, err := ristretto255.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		// A uint64 is always below the group order.
		panic(fmt.Sprintf("elgamal: amount scalar: %v", err))
	}
	return s
}

// RandomScalar generates a uniformly random scalar from the given source,
// typically used as a blinding factor. Pass nil to use crypto/rand.
func RandomScalar(r io.Reader) (*ristretto255.Scalar, error) {
	if r == nil {
		r = rand.Reader
	}
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		return nil, err
	}
	return s, nil
}
