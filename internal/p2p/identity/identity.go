// Package identity manages node identity keys and the handshake proof a
// node presents when connecting to a peer.
package identity

import (
	"encoding/hex"
	"errors"

	"github.com/umbra-network/go-umbra/internal/crypto/curves"
	"github.com/umbra-network/go-umbra/internal/crypto/schnorr"
)

// ErrBadProof is returned when a peer's ownership proof does not verify.
var ErrBadProof = errors.New("identity proof verification failed")

// Identity is a node's long-lived identity keypair.
type Identity struct {
	curve curves.Curve
	priv  curves.Scalar
	pub   curves.Point
}

// New generates a fresh identity on the given curve.
func New(curve curves.Curve) (*Identity, error) {
	priv, err := curve.NewScalar()
	if err != nil {
		return nil, err
	}
	return &Identity{
		curve: curve,
		priv:  priv,
		pub:   curve.BasePoint().ScalarMult(priv),
	}, nil
}

// FromPrivateBytes restores an identity from a serialized private scalar.
func FromPrivateBytes(curve curves.Curve, b []byte) (*Identity, error) {
	priv, err := curve.ScalarFromBytes(b)
	if err != nil {
		return nil, err
	}
	return &Identity{
		curve: curve,
		priv:  priv,
		pub:   curve.BasePoint().ScalarMult(priv),
	}, nil
}

// Curve returns the identity's curve.
func (id *Identity) Curve() curves.Curve {
	return id.curve
}

// PublicKey returns the identity public key.
func (id *Identity) PublicKey() curves.Point {
	return id.pub
}

// PrivateBytes returns the serialized private scalar.
func (id *Identity) PrivateBytes() []byte {
	return id.priv.Bytes()
}

// NodeID returns the stable peer identifier: the hex-encoded compressed
// public key.
func (id *Identity) NodeID() string {
	return hex.EncodeToString(id.pub.Bytes())
}

// ProveOwnership produces a handshake proof bound to the session id the
// peer supplied, proving possession of the identity private key.
func (id *Identity) ProveOwnership(sessionID []byte) (*schnorr.Proof, error) {
	return schnorr.Prove(id.curve, id.priv, id.pub, sessionID)
}

// VerifyOwnership checks a peer's handshake proof against its advertised
// public key and the session id we issued.
func VerifyOwnership(curve curves.Curve, publicKey []byte, sessionID []byte, proof *schnorr.Proof) error {
	pub, err := curve.NewPointFromBytes(publicKey)
	if err != nil {
		return err
	}
	if !proof.Verify(curve, pub, sessionID) {
		return ErrBadProof
	}
	return nil
}
