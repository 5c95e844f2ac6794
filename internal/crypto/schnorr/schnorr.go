// Package schnorr implements a Schnorr proof of knowledge of a discrete
// logarithm over any curve from the curves package. Nodes use it during
// the p2p handshake to prove ownership of their identity key.
package schnorr

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/umbra-network/go-umbra/internal/crypto/curves"
)

// ErrInvalidProof is returned when a serialized proof is malformed.
var ErrInvalidProof = errors.New("invalid schnorr proof encoding")

// Proof proves knowledge of x such that X = x * G, bound to a session id
// so a handshake transcript cannot be replayed in another session.
type Proof struct {
	R curves.Point  // Commitment R = k * G
	S curves.Scalar // Response s = k + e * x
}

// Prove generates a proof for the secret x with public key X = x*G.
// The session id is mixed into the challenge.
func Prove(curve curves.Curve, x curves.Scalar, X curves.Point, sessionID []byte) (*Proof, error) {
	if x == nil || X == nil {
		return nil, errors.New("schnorr: inputs cannot be nil")
	}

	// 1. Generate random nonce k
	k, err := curve.NewScalar()
	if err != nil {
		return nil, err
	}

	// 2. Compute R = k * G
	R := curve.BasePoint().ScalarMult(k)

	// 3. Compute challenge e = H(sid, X, R)
	e := challenge(curve, X, R, sessionID)

	// 4. Compute s = k + e * x mod n
	s := k.Add(e.Mul(x))

	return &Proof{R: R, S: s}, nil
}

// Verify checks the proof against public key X and the session id.
func (p *Proof) Verify(curve curves.Curve, X curves.Point, sessionID []byte) bool {
	if p == nil || p.R == nil || p.S == nil || X == nil {
		return false
	}

	e := challenge(curve, X, p.R, sessionID)

	// s*G must equal R + e*X.
	lhs := curve.BasePoint().ScalarMult(p.S)
	rhs := p.R.Add(X.ScalarMult(e))
	return lhs.Equal(rhs)
}

// Serialize encodes the proof as len(R) || R || len(S) || S. Point and
// scalar sizes differ across curves, hence the length prefixes.
func (p *Proof) Serialize() []byte {
	r := p.R.Bytes()
	s := p.S.Bytes()
	out := make([]byte, 0, 2+len(r)+len(s))
	out = append(out, byte(len(r)))
	out = append(out, r...)
	out = append(out, byte(len(s)))
	out = append(out, s...)
	return out
}

// ParseProof decodes a proof serialized for the given curve.
func ParseProof(curve curves.Curve, data []byte) (*Proof, error) {
	if len(data) < 1 {
		return nil, ErrInvalidProof
	}
	rLen := int(data[0])
	if len(data) < 1+rLen+1 {
		return nil, ErrInvalidProof
	}
	R, err := curve.NewPointFromBytes(data[1 : 1+rLen])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	sLen := int(data[1+rLen])
	rest := data[1+rLen+1:]
	if len(rest) != sLen {
		return nil, ErrInvalidProof
	}
	S, err := curve.ScalarFromBytes(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	return &Proof{R: R, S: S}, nil
}

// challenge computes H(sid, X, R) reduced modulo the group order.
func challenge(curve curves.Curve, X, R curves.Point, sessionID []byte) curves.Scalar {
	h := sha256.New()
	h.Write(sessionID)
	h.Write(X.Bytes())
	h.Write(R.Bytes())
	e := new(big.Int).SetBytes(h.Sum(nil))
	return curve.NewScalarFromBigInt(e)
}
