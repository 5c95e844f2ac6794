// Package curves abstracts the elliptic curves used for node identity
// keys and their handshake proofs. The confidential-amount engine does
// not go through this abstraction; it is pinned to ristretto255.
package curves

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidPoint is returned when bytes do not decode to a valid point.
var ErrInvalidPoint = errors.New("invalid point encoding")

// Point represents a point on an elliptic curve. It abstracts away the
// underlying coordinate system (Affine, Jacobian, Edwards).
type Point interface {
	// Bytes returns the compressed serialization of the point.
	Bytes() []byte

	// Add adds this point to another point.
	Add(p Point) Point

	// ScalarMult multiplies this point by a scalar.
	ScalarMult(s Scalar) Point

	// Equal reports whether both points are the same.
	Equal(p Point) bool
}

// Scalar represents a scalar value in the curve's scalar field.
type Scalar interface {
	// Bytes returns the serialization of the scalar.
	Bytes() []byte

	// BigInt returns the scalar as a big integer.
	BigInt() *big.Int

	// Add adds this scalar to another scalar.
	Add(s Scalar) Scalar

	// Mul multiplies this scalar by another scalar.
	Mul(s Scalar) Scalar

	// Invert returns the modular inverse of the scalar.
	Invert() Scalar
}

// Curve bundles the operations an identity scheme needs from a curve.
type Curve interface {
	// Name returns the name of the curve.
	Name() string

	// Order returns the order of the base point (group order).
	Order() *big.Int

	// NewScalar generates a random scalar.
	NewScalar() (Scalar, error)

	// NewScalarFromBigInt creates a scalar from a big integer, reduced
	// modulo the group order.
	NewScalarFromBigInt(n *big.Int) Scalar

	// ScalarFromBytes deserializes a scalar previously produced by
	// Scalar.Bytes on the same curve.
	ScalarFromBytes(b []byte) (Scalar, error)

	// BasePoint returns the generator point G.
	BasePoint() Point

	// NewPointFromBytes deserializes a point.
	NewPointFromBytes(b []byte) (Point, error)
}

// ByName returns the curve registered under the given name.
func ByName(name string) (Curve, error) {
	switch name {
	case "secp256k1":
		return &Secp256k1Curve{}, nil
	case "ed25519":
		return &Ed25519Curve{}, nil
	default:
		return nil, fmt.Errorf("unknown curve: %q", name)
	}
}
