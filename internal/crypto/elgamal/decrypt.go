package elgamal

import (
	"errors"
	"math"

	"github.com/gtank/ristretto255"
)

// ErrAmountOutOfRange is returned when the encrypted amount is not in
// the search bound given to Decrypt, or the ciphertext does not belong
// to this key.
var ErrAmountOutOfRange = errors.New("amount not found in decryption range")

// DecryptPoint strips the blinding from the ciphertext, returning
// M = C - s*D = amount*G. Total; recovering the amount itself from M
// requires the bounded discrete-log search in Decrypt.
func (sk *PrivateKey) DecryptPoint(ct Ciphertext) *ristretto255.Element {
	sD := ristretto255.NewIdentityElement().ScalarMult(sk.s, ct.handle.point)
	return ristretto255.NewIdentityElement().Subtract(ct.commitment.point, sD)
}

// Decrypt recovers the plaintext amount, searching [0, max] with
// baby-step giant-step. The bound is the caller's: how much brute force
// is acceptable depends on the deployment, so it is never guessed here.
// Returns ErrAmountOutOfRange if the amount is not in bound.
func (sk *PrivateKey) Decrypt(ct Ciphertext, max uint64) (uint64, error) {
	target := sk.DecryptPoint(ct)

	// Amounts 0..max split as i*step + j with 0 <= j < step.
	step := uint64(math.Sqrt(float64(max))) + 1

	// Baby steps: j*G for each j.
	baby := make(map[string]uint64, step)
	cur := ristretto255.NewIdentityElement()
	g := ValueGenerator()
	for j := uint64(0); j < step; j++ {
		baby[string(cur.Bytes())] = j
		cur.Add(cur, g)
	}

	// Giant steps: repeatedly subtract step*G from the target.
	stride := ristretto255.NewIdentityElement().ScalarBaseMult(AmountScalar(step))
	probe := ristretto255.NewIdentityElement().Set(target)
	for i := uint64(0); i*step <= max; i++ {
		if j, ok := baby[string(probe.Bytes())]; ok {
			amount := i*step + j
			if amount > max {
				break
			}
			return amount, nil
		}
		probe.Subtract(probe, stride)
	}
	return 0, ErrAmountOutOfRange
}
