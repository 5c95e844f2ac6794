package elgamal

import "github.com/gtank/ristretto255"

// DecryptHandle is the key-dependent half of a twisted ElGamal
// ciphertext: D = blinding*P for the recipient's public key P. Only the
// holder of the matching private key can use it to strip the blinding
// from the commitment.
//
// Unlike the commitment there is no scalar-adjustment operation here:
// the handle depends only on the blinding factor, never on the amount,
// so public-amount adjustments must leave it untouched.
type DecryptHandle struct {
	point *ristretto255.Element
}

// HandleFromPoint constructs a handle directly from a group element.
func HandleFromPoint(p *ristretto255.Element) DecryptHandle {
	return DecryptHandle{point: ristretto255.NewIdentityElement().Set(p)}
}

// Point returns the underlying group element. The caller must not mutate it.
func (d DecryptHandle) Point() *ristretto255.Element {
	return d.point
}

// Add returns the handle for the sum of the two blinding factors.
func (d DecryptHandle) Add(other DecryptHandle) DecryptHandle {
	return DecryptHandle{
		point: ristretto255.NewIdentityElement().Add(d.point, other.point),
	}
}

// Sub returns the handle for the difference of the two blinding factors.
func (d DecryptHandle) Sub(other DecryptHandle) DecryptHandle {
	return DecryptHandle{
		point: ristretto255.NewIdentityElement().Subtract(d.point, other.point),
	}
}

// AddAssign sets d to d + other.
func (d *DecryptHandle) AddAssign(other DecryptHandle) {
	d.point = ristretto255.NewIdentityElement().Add(d.point, other.point)
}

// SubAssign sets d to d - other.
func (d *DecryptHandle) SubAssign(other DecryptHandle) {
	d.point = ristretto255.NewIdentityElement().Subtract(d.point, other.point)
}

// Equal reports whether the two handles are the same group element.
func (d DecryptHandle) Equal(other DecryptHandle) bool {
	return d.point.Equal(other.point) == 1
}

// Compress returns the canonical 32-byte encoding of the handle.
func (d DecryptHandle) Compress() CompressedHandle {
	var out CompressedHandle
	copy(out[:], d.point.Bytes())
	return out
}
