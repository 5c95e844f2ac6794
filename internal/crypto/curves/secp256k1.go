package curves

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1Curve implements Curve over secp256k1, the default curve for
// node identity keys.
type Secp256k1Curve struct{}

func (c *Secp256k1Curve) Name() string {
	return "secp256k1"
}

func (c *Secp256k1Curve) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().N)
}

func (c *Secp256k1Curve) NewScalar() (Scalar, error) {
	k, err := rand.Int(rand.Reader, c.Order())
	if err != nil {
		return nil, err
	}
	return &Secp256k1Scalar{v: k}, nil
}

func (c *Secp256k1Curve) NewScalarFromBigInt(n *big.Int) Scalar {
	return &Secp256k1Scalar{v: new(big.Int).Mod(n, c.Order())}
}

func (c *Secp256k1Curve) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("invalid secp256k1 scalar length %d", len(b))
	}
	return c.NewScalarFromBigInt(new(big.Int).SetBytes(b)), nil
}

func (c *Secp256k1Curve) BasePoint() Point {
	var p secp256k1.JacobianPoint
	one := new(secp256k1.ModNScalar)
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &p)
	return &Secp256k1Point{p: p}
}

// NewPointFromBytes parses a 33-byte compressed point.
func (c *Secp256k1Curve) NewPointFromBytes(b []byte) (Point, error) {
	if len(b) != 33 || (b[0] != 0x02 && b[0] != 0x03) {
		return nil, fmt.Errorf("%w: want 33-byte compressed secp256k1 point", ErrInvalidPoint)
	}
	var x, y secp256k1.FieldVal
	if overflow := x.SetByteSlice(b[1:]); overflow {
		return nil, fmt.Errorf("%w: x coordinate out of range", ErrInvalidPoint)
	}
	if !secp256k1.DecompressY(&x, b[0] == 0x03, &y) {
		return nil, fmt.Errorf("%w: x coordinate not on curve", ErrInvalidPoint)
	}
	var p secp256k1.JacobianPoint
	p.X.Set(&x)
	p.Y.Set(y.Normalize())
	p.Z.SetInt(1)
	return &Secp256k1Point{p: p}, nil
}

// Secp256k1Scalar implements Scalar with big.Int arithmetic modulo N.
type Secp256k1Scalar struct {
	v *big.Int
}

func (s *Secp256k1Scalar) Bytes() []byte {
	return s.v.FillBytes(make([]byte, 32))
}

func (s *Secp256k1Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}

func (s *Secp256k1Scalar) Add(other Scalar) Scalar {
	o, ok := other.(*Secp256k1Scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	res := new(big.Int).Add(s.v, o.v)
	res.Mod(res, secp256k1.S256().N)
	return &Secp256k1Scalar{v: res}
}

func (s *Secp256k1Scalar) Mul(other Scalar) Scalar {
	o, ok := other.(*Secp256k1Scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	res := new(big.Int).Mul(s.v, o.v)
	res.Mod(res, secp256k1.S256().N)
	return &Secp256k1Scalar{v: res}
}

func (s *Secp256k1Scalar) Invert() Scalar {
	res := new(big.Int).ModInverse(s.v, secp256k1.S256().N)
	if res == nil {
		// ModInverse returns nil for zero; map zero to zero like the
		// ed25519 scalar field does.
		res = new(big.Int)
	}
	return &Secp256k1Scalar{v: res}
}

// Secp256k1Point implements Point over Jacobian coordinates.
type Secp256k1Point struct {
	p secp256k1.JacobianPoint
}

// Bytes returns the 33-byte compressed encoding.
func (p *Secp256k1Point) Bytes() []byte {
	affine := p.p
	affine.ToAffine()
	prefix := byte(0x02)
	if affine.Y.Normalize().IsOdd() {
		prefix = 0x03
	}
	x := affine.X.Normalize().Bytes()
	return append([]byte{prefix}, x[:]...)
}

func (p *Secp256k1Point) Add(other Point) Point {
	o, ok := other.(*Secp256k1Point)
	if !ok {
		panic("curves: point type mismatch")
	}
	var res secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &res)
	return &Secp256k1Point{p: res}
}

func (p *Secp256k1Point) ScalarMult(s Scalar) Point {
	sc, ok := s.(*Secp256k1Scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	k := new(secp256k1.ModNScalar)
	k.SetByteSlice(sc.Bytes())
	var res secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(k, &p.p, &res)
	return &Secp256k1Point{p: res}
}

func (p *Secp256k1Point) Equal(other Point) bool {
	o, ok := other.(*Secp256k1Point)
	if !ok {
		return false
	}
	a, b := p.p, o.p
	a.ToAffine()
	b.ToAffine()
	return a.X.Normalize().Equals(b.X.Normalize()) &&
		a.Y.Normalize().Equals(b.Y.Normalize())
}
