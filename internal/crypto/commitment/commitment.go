// Package commitment implements a hash based commit-reveal scheme. The
// p2p handshake uses it so that neither peer can pick the session id
// after seeing the other side's contribution.
package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"errors"
)

// SaltSize is the byte length of the decommitment salt.
const SaltSize = 32

// Size is the byte length of a commitment.
const Size = sha256.Size

// ErrOpenFailed is returned when a reveal does not match its commitment.
var ErrOpenFailed = errors.New("commitment does not open to the revealed value")

// Commitment binds a value without revealing it. C is published first,
// Salt is kept private until the reveal.
type Commitment struct {
	C    [Size]byte
	Salt [SaltSize]byte
}

// Commit commits to the given parts with a fresh random salt. Parts are
// length-prefixed before hashing so distinct splits of the same bytes
// yield distinct commitments.
func Commit(parts ...[]byte) (*Commitment, error) {
	var c Commitment
	if _, err := rand.Read(c.Salt[:]); err != nil {
		return nil, err
	}
	c.C = digest(c.Salt[:], parts)
	return &c, nil
}

// Open verifies that the commitment c opens to the given parts under the
// revealed salt.
func Open(c [Size]byte, salt [SaltSize]byte, parts ...[]byte) error {
	computed := digest(salt[:], parts)
	if subtle.ConstantTimeCompare(computed[:], c[:]) != 1 {
		return ErrOpenFailed
	}
	return nil
}

func digest(salt []byte, parts [][]byte) [Size]byte {
	h := sha256.New()
	h.Write(salt)
	var n [4]byte
	for _, p := range parts {
		binary.BigEndian.PutUint32(n[:], uint32(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
