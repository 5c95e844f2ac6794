package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/umbra-network/go-umbra/internal/crypto/commitment"
)

// SessionSeedSize is the byte length of each peer's session id
// contribution.
const SessionSeedSize = 32

// ErrBadSessionReveal is returned when a peer's revealed seed does not
// match its earlier commitment.
var ErrBadSessionReveal = errors.New("session seed reveal does not match commitment")

// SessionOffer is the first handshake message: a commitment to our
// session seed, sent before we learn the peer's seed.
type SessionOffer struct {
	seed [SessionSeedSize]byte
	com  *commitment.Commitment
}

// NewSessionOffer draws a random session seed and commits to it.
func NewSessionOffer() (*SessionOffer, error) {
	var o SessionOffer
	if _, err := rand.Read(o.seed[:]); err != nil {
		return nil, fmt.Errorf("drawing session seed: %w", err)
	}
	com, err := commitment.Commit(o.seed[:])
	if err != nil {
		return nil, err
	}
	o.com = com
	return &o, nil
}

// Commitment returns the value to send in the first handshake message.
func (o *SessionOffer) Commitment() [commitment.Size]byte {
	return o.com.C
}

// Reveal returns the seed and salt to send once the peer's commitment
// has arrived.
func (o *SessionOffer) Reveal() (seed [SessionSeedSize]byte, salt [commitment.SaltSize]byte) {
	return o.seed, o.com.Salt
}

// SessionID derives the shared session id from our offer and the peer's
// reveal, after checking the reveal against the commitment the peer sent
// first. Both sides derive the same id because the seeds are combined in
// a fixed initiator-then-responder order.
func SessionID(initiator bool, local *SessionOffer, peerCommit [commitment.Size]byte, peerSeed [SessionSeedSize]byte, peerSalt [commitment.SaltSize]byte) ([]byte, error) {
	if err := commitment.Open(peerCommit, peerSalt, peerSeed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSessionReveal, err)
	}
	h := sha256.New()
	if initiator {
		h.Write(local.seed[:])
		h.Write(peerSeed[:])
	} else {
		h.Write(peerSeed[:])
		h.Write(local.seed[:])
	}
	return h.Sum(nil), nil
}
