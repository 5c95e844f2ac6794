package curves

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCurves(t *testing.T) []Curve {
	t.Helper()
	return []Curve{&Secp256k1Curve{}, &Ed25519Curve{}}
}

func TestScalarArithmetic(t *testing.T) {
	for _, curve := range allCurves(t) {
		t.Run(curve.Name(), func(t *testing.T) {
			val := big.NewInt(12345)
			s := curve.NewScalarFromBigInt(val)
			assert.Equal(t, val, s.BigInt())

			sum := s.Add(s)
			assert.Equal(t, big.NewInt(24690), sum.BigInt())

			product := s.Mul(s)
			assert.Equal(t, new(big.Int).Mul(val, val), product.BigInt())

			inv := s.Invert()
			assert.Equal(t, big.NewInt(1), inv.Mul(s).BigInt())
		})
	}
}

func TestScalarInvertZero(t *testing.T) {
	for _, curve := range allCurves(t) {
		t.Run(curve.Name(), func(t *testing.T) {
			zero := curve.NewScalarFromBigInt(big.NewInt(0))
			assert.Equal(t, 0, zero.Invert().BigInt().Sign())
		})
	}
}

func TestEd25519Order(t *testing.T) {
	// l = 2^252 + 27742317777372353535851937790883648493
	delta, ok := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	require.True(t, ok)
	l := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 252), delta)

	curve := &Ed25519Curve{}
	assert.Equal(t, l, curve.Order())

	// Values at and above the order must reduce into the scalar field
	// without tripping the canonical-bytes check.
	assert.Equal(t, 0, curve.NewScalarFromBigInt(curve.Order()).BigInt().Sign())
	wide := new(big.Int).Lsh(big.NewInt(1), 255)
	assert.True(t, curve.NewScalarFromBigInt(wide).BigInt().Cmp(l) < 0)
}

func TestScalarReducedModOrder(t *testing.T) {
	for _, curve := range allCurves(t) {
		t.Run(curve.Name(), func(t *testing.T) {
			over := new(big.Int).Add(curve.Order(), big.NewInt(7))
			s := curve.NewScalarFromBigInt(over)
			assert.Equal(t, big.NewInt(7), s.BigInt())
		})
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	for _, curve := range allCurves(t) {
		t.Run(curve.Name(), func(t *testing.T) {
			s, err := curve.NewScalar()
			require.NoError(t, err)

			restored, err := curve.ScalarFromBytes(s.Bytes())
			require.NoError(t, err)
			assert.Equal(t, s.BigInt(), restored.BigInt())
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	for _, curve := range allCurves(t) {
		t.Run(curve.Name(), func(t *testing.T) {
			g := curve.BasePoint()

			// 2*G == G + G
			two := curve.NewScalarFromBigInt(big.NewInt(2))
			assert.True(t, g.ScalarMult(two).Equal(g.Add(g)))

			// (a+b)*G == a*G + b*G
			a := curve.NewScalarFromBigInt(big.NewInt(17))
			b := curve.NewScalarFromBigInt(big.NewInt(29))
			lhs := g.ScalarMult(a.Add(b))
			rhs := g.ScalarMult(a).Add(g.ScalarMult(b))
			assert.True(t, lhs.Equal(rhs))
		})
	}
}

func TestPointBytesRoundTrip(t *testing.T) {
	for _, curve := range allCurves(t) {
		t.Run(curve.Name(), func(t *testing.T) {
			s, err := curve.NewScalar()
			require.NoError(t, err)
			p := curve.BasePoint().ScalarMult(s)

			restored, err := curve.NewPointFromBytes(p.Bytes())
			require.NoError(t, err)
			assert.True(t, p.Equal(restored))
			assert.Equal(t, p.Bytes(), restored.Bytes())
		})
	}
}

func TestPointFromBytesRejectsGarbage(t *testing.T) {
	secp := &Secp256k1Curve{}
	_, err := secp.NewPointFromBytes([]byte{0x04, 1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidPoint)

	// 0x02 prefix with an x coordinate that has no curve point.
	bad := make([]byte, 33)
	bad[0] = 0x02
	for i := 1; i < 33; i++ {
		bad[i] = 0xFF
	}
	_, err = secp.NewPointFromBytes(bad)
	assert.ErrorIs(t, err, ErrInvalidPoint)

	ed := &Ed25519Curve{}
	badEd := make([]byte, 32)
	for i := range badEd {
		badEd[i] = 0xFF
	}
	_, err = ed.NewPointFromBytes(badEd)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestEd25519RejectsNonCanonicalEncoding(t *testing.T) {
	ed := &Ed25519Curve{}

	// All 0xFF decodes to a point under edwards25519 but is not the
	// canonical encoding of that point.
	bad := make([]byte, 32)
	for i := range bad {
		bad[i] = 0xFF
	}
	_, err := ed.NewPointFromBytes(bad)
	assert.ErrorIs(t, err, ErrInvalidPoint)

	// Canonical encodings still round-trip.
	s, err := ed.NewScalar()
	require.NoError(t, err)
	p := ed.BasePoint().ScalarMult(s)
	restored, err := ed.NewPointFromBytes(p.Bytes())
	require.NoError(t, err)
	assert.True(t, p.Equal(restored))
}

func TestByName(t *testing.T) {
	for _, name := range []string{"secp256k1", "ed25519"} {
		curve, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, curve.Name())
	}

	_, err := ByName("p-256")
	assert.Error(t, err)
}
