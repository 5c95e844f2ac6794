package elgamal

import "github.com/gtank/ristretto255"

// Ciphertext is one encrypted amount: a Pedersen commitment and the
// decrypt handle tying it to a specific recipient. Both halves are
// produced from the same blinding factor.
//
// The algebra below is total. Validators combine ciphertexts
// homomorphically (sum inputs, subtract outputs and public fees) and
// check balance conservation without ever decrypting.
type Ciphertext struct {
	commitment PedersenCommitment
	handle     DecryptHandle
}

// NewCiphertext constructs a ciphertext from its two halves. No
// validation is performed; the parts are assumed to share one blinding
// factor.
func NewCiphertext(commitment PedersenCommitment, handle DecryptHandle) Ciphertext {
	return Ciphertext{commitment: commitment, handle: handle}
}

// ZeroCiphertext returns the additive identity: both halves set to the
// group identity. For any ciphertext X, X.Add(ZeroCiphertext()) equals X
// and X.Sub(X) equals ZeroCiphertext().
func ZeroCiphertext() Ciphertext {
	return Ciphertext{
		commitment: CommitmentFromPoint(ristretto255.NewIdentityElement()),
		handle:     HandleFromPoint(ristretto255.NewIdentityElement()),
	}
}

// Commitment returns the commitment half.
func (ct Ciphertext) Commitment() PedersenCommitment {
	return ct.commitment
}

// Handle returns the decrypt handle half.
func (ct Ciphertext) Handle() DecryptHandle {
	return ct.handle
}

// Add returns (C1+C2, D1+D2), the encryption of the sum of the two
// amounts. Commutative and associative.
func (ct Ciphertext) Add(other Ciphertext) Ciphertext {
	return Ciphertext{
		commitment: ct.commitment.Add(other.commitment),
		handle:     ct.handle.Add(other.handle),
	}
}

// Sub returns (C1-C2, D1-D2), the encryption of the difference.
func (ct Ciphertext) Sub(other Ciphertext) Ciphertext {
	return Ciphertext{
		commitment: ct.commitment.Sub(other.commitment),
		handle:     ct.handle.Sub(other.handle),
	}
}

// AddAmount adds a publicly known amount: (C + s*G, D). The handle is
// unchanged since the adjustment needs no blinding factor.
func (ct Ciphertext) AddAmount(s *ristretto255.Scalar) Ciphertext {
	return Ciphertext{
		commitment: ct.commitment.AddAmount(s),
		handle:     ct.handle,
	}
}

// SubAmount subtracts a publicly known amount such as a transparent fee:
// (C - s*G, D). The handle is unchanged.
func (ct Ciphertext) SubAmount(s *ristretto255.Scalar) Ciphertext {
	return Ciphertext{
		commitment: ct.commitment.SubAmount(s),
		handle:     ct.handle,
	}
}

// AddAssign sets ct to ct + other.
func (ct *Ciphertext) AddAssign(other Ciphertext) {
	ct.commitment.AddAssign(other.commitment)
	ct.handle.AddAssign(other.handle)
}

// SubAssign sets ct to ct - other.
func (ct *Ciphertext) SubAssign(other Ciphertext) {
	ct.commitment.SubAssign(other.commitment)
	ct.handle.SubAssign(other.handle)
}

// AddAmountAssign sets ct to ct + s*G, leaving the handle untouched.
func (ct *Ciphertext) AddAmountAssign(s *ristretto255.Scalar) {
	ct.commitment = ct.commitment.AddAmount(s)
}

// SubAmountAssign sets ct to ct - s*G, leaving the handle untouched.
func (ct *Ciphertext) SubAmountAssign(s *ristretto255.Scalar) {
	ct.commitment = ct.commitment.SubAmount(s)
}

// Equal reports whether both halves match.
func (ct Ciphertext) Equal(other Ciphertext) bool {
	return ct.commitment.Equal(other.commitment) && ct.handle.Equal(other.handle)
}

// Compress returns the canonical 64-byte encoding, commitment first.
func (ct Ciphertext) Compress() CompressedCiphertext {
	var out CompressedCiphertext
	copy(out[:PointSize], ct.commitment.point.Bytes())
	copy(out[PointSize:], ct.handle.point.Bytes())
	return out
}
