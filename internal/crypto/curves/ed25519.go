package curves

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
)

// Ed25519Curve implements Curve over edwards25519, offered as an
// alternative identity curve for nodes interoperating with ed25519 key
// infrastructure.
type Ed25519Curve struct{}

func (c *Ed25519Curve) Name() string {
	return "ed25519"
}

func (c *Ed25519Curve) Order() *big.Int {
	// l = 2^252 + 27742317777372353535851937790883648493
	l, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return l
}

func (c *Ed25519Curve) NewScalar() (Scalar, error) {
	var b [64]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(b[:])
	if err != nil {
		return nil, err
	}
	return &Ed25519Scalar{s: s}, nil
}

func (c *Ed25519Curve) NewScalarFromBigInt(n *big.Int) Scalar {
	n = new(big.Int).Mod(n, c.Order())

	// big.Int is big-endian, edwards25519 scalars are little-endian.
	be := n.FillBytes(make([]byte, 32))
	var le [32]byte
	for i := 0; i < 32; i++ {
		le[i] = be[31-i]
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(le[:])
	if err != nil {
		// Unreachable: the value was reduced modulo the order above.
		panic(fmt.Sprintf("curves: ed25519 scalar from big.Int: %v", err))
	}
	return &Ed25519Scalar{s: s}
}

func (c *Ed25519Curve) ScalarFromBytes(b []byte) (Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("invalid ed25519 scalar: %w", err)
	}
	return &Ed25519Scalar{s: s}, nil
}

func (c *Ed25519Curve) BasePoint() Point {
	return &Ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) NewPointFromBytes(b []byte) (Point, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPoint, err)
	}
	// SetBytes tolerates some non-canonical encodings. Identity keys
	// must not be malleable, so require the canonical form.
	if !bytes.Equal(p.Bytes(), b) {
		return nil, fmt.Errorf("%w: non-canonical ed25519 encoding", ErrInvalidPoint)
	}
	return &Ed25519Point{p: p}, nil
}

// Ed25519Scalar implements Scalar.
type Ed25519Scalar struct {
	s *edwards25519.Scalar
}

func (s *Ed25519Scalar) Bytes() []byte {
	return s.s.Bytes()
}

func (s *Ed25519Scalar) BigInt() *big.Int {
	le := s.s.Bytes()
	be := make([]byte, len(le))
	for i := range le {
		be[len(le)-1-i] = le[i]
	}
	return new(big.Int).SetBytes(be)
}

func (s *Ed25519Scalar) Add(other Scalar) Scalar {
	o, ok := other.(*Ed25519Scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	return &Ed25519Scalar{s: edwards25519.NewScalar().Add(s.s, o.s)}
}

func (s *Ed25519Scalar) Mul(other Scalar) Scalar {
	o, ok := other.(*Ed25519Scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	return &Ed25519Scalar{s: edwards25519.NewScalar().Multiply(s.s, o.s)}
}

func (s *Ed25519Scalar) Invert() Scalar {
	return &Ed25519Scalar{s: edwards25519.NewScalar().Invert(s.s)}
}

// Ed25519Point implements Point.
type Ed25519Point struct {
	p *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	return p.p.Bytes()
}

func (p *Ed25519Point) Add(other Point) Point {
	o, ok := other.(*Ed25519Point)
	if !ok {
		panic("curves: point type mismatch")
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().Add(p.p, o.p)}
}

func (p *Ed25519Point) ScalarMult(s Scalar) Point {
	sc, ok := s.(*Ed25519Scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().ScalarMult(sc.s, p.p)}
}

func (p *Ed25519Point) Equal(other Point) bool {
	o, ok := other.(*Ed25519Point)
	if !ok {
		return false
	}
	return p.p.Equal(o.p) == 1
}
