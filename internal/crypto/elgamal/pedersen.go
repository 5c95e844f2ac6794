package elgamal

import "github.com/gtank/ristretto255"

// PedersenCommitment is the value-binding half of a twisted ElGamal
// ciphertext: C = amount*G + blinding*H. It is hiding as long as the
// blinding factor is uniformly random, and binding under the discrete
// log assumption.
type PedersenCommitment struct {
	point *ristretto255.Element
}

// NewCommitment commits to amount with the given blinding factor.
func NewCommitment(amount uint64, blinding *ristretto255.Scalar) PedersenCommitment {
	// C = amount*G + blinding*H
	c := ristretto255.NewIdentityElement().ScalarBaseMult(AmountScalar(amount))
	rH := ristretto255.NewIdentityElement().ScalarMult(blinding, blindingGen)
	c.Add(c, rH)
	return PedersenCommitment{point: c}
}

// CommitmentFromPoint constructs a commitment directly from a group
// element. No validation is performed; validity is a property of how the
// point was derived.
func CommitmentFromPoint(p *ristretto255.Element) PedersenCommitment {
	return PedersenCommitment{point: ristretto255.NewIdentityElement().Set(p)}
}

// Point returns the underlying group element. The caller must not mutate it.
func (c PedersenCommitment) Point() *ristretto255.Element {
	return c.point
}

// Add returns the commitment to the sum of the two committed amounts.
// The implied blinding factors sum as well.
func (c PedersenCommitment) Add(other PedersenCommitment) PedersenCommitment {
	return PedersenCommitment{
		point: ristretto255.NewIdentityElement().Add(c.point, other.point),
	}
}

// Sub returns the commitment to the difference of the committed amounts.
func (c PedersenCommitment) Sub(other PedersenCommitment) PedersenCommitment {
	return PedersenCommitment{
		point: ristretto255.NewIdentityElement().Subtract(c.point, other.point),
	}
}

// AddAmount adjusts the committed amount by a publicly known scalar:
// C + s*G. The existing blinding factor is reused unchanged, so no fresh
// randomness is needed for transparent adjustments such as fees.
func (c PedersenCommitment) AddAmount(s *ristretto255.Scalar) PedersenCommitment {
	sG := ristretto255.NewIdentityElement().ScalarBaseMult(s)
	return PedersenCommitment{
		point: ristretto255.NewIdentityElement().Add(c.point, sG),
	}
}

// SubAmount subtracts a publicly known scalar from the committed amount.
func (c PedersenCommitment) SubAmount(s *ristretto255.Scalar) PedersenCommitment {
	sG := ristretto255.NewIdentityElement().ScalarBaseMult(s)
	return PedersenCommitment{
		point: ristretto255.NewIdentityElement().Subtract(c.point, sG),
	}
}

// AddAssign sets c to c + other.
func (c *PedersenCommitment) AddAssign(other PedersenCommitment) {
	c.point = ristretto255.NewIdentityElement().Add(c.point, other.point)
}

// SubAssign sets c to c - other.
func (c *PedersenCommitment) SubAssign(other PedersenCommitment) {
	c.point = ristretto255.NewIdentityElement().Subtract(c.point, other.point)
}

// Equal reports whether the two commitments are the same group element.
func (c PedersenCommitment) Equal(other PedersenCommitment) bool {
	return c.point.Equal(other.point) == 1
}

// Compress returns the canonical 32-byte encoding of the commitment.
func (c PedersenCommitment) Compress() CompressedCommitment {
	var out CompressedCommitment
	copy(out[:], c.point.Bytes())
	return out
}
