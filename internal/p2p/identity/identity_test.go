package identity

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbra-network/go-umbra/internal/crypto/curves"
)

func TestHandshakeRoundTrip(t *testing.T) {
	for _, name := range []string{"secp256k1", "ed25519"} {
		t.Run(name, func(t *testing.T) {
			curve, err := curves.ByName(name)
			require.NoError(t, err)

			id, err := New(curve)
			require.NoError(t, err)

			sid := []byte("handshake-session")
			proof, err := id.ProveOwnership(sid)
			require.NoError(t, err)

			err = VerifyOwnership(curve, id.PublicKey().Bytes(), sid, proof)
			assert.NoError(t, err)
		})
	}
}

func TestVerifyOwnershipRejectsWrongSession(t *testing.T) {
	curve := &curves.Secp256k1Curve{}
	id, err := New(curve)
	require.NoError(t, err)

	proof, err := id.ProveOwnership([]byte("session-a"))
	require.NoError(t, err)

	err = VerifyOwnership(curve, id.PublicKey().Bytes(), []byte("session-b"), proof)
	assert.ErrorIs(t, err, ErrBadProof)
}

func TestVerifyOwnershipRejectsForeignKey(t *testing.T) {
	curve := &curves.Secp256k1Curve{}
	alice, err := New(curve)
	require.NoError(t, err)
	bob, err := New(curve)
	require.NoError(t, err)

	sid := []byte("session")
	proof, err := alice.ProveOwnership(sid)
	require.NoError(t, err)

	err = VerifyOwnership(curve, bob.PublicKey().Bytes(), sid, proof)
	assert.ErrorIs(t, err, ErrBadProof)
}

func TestVerifyOwnershipRejectsBadPublicKey(t *testing.T) {
	curve := &curves.Secp256k1Curve{}
	id, err := New(curve)
	require.NoError(t, err)

	sid := []byte("session")
	proof, err := id.ProveOwnership(sid)
	require.NoError(t, err)

	err = VerifyOwnership(curve, []byte{0x02, 0x01}, sid, proof)
	assert.ErrorIs(t, err, curves.ErrInvalidPoint)
}

func TestFromPrivateBytes(t *testing.T) {
	for _, name := range []string{"secp256k1", "ed25519"} {
		t.Run(name, func(t *testing.T) {
			curve, err := curves.ByName(name)
			require.NoError(t, err)

			id, err := New(curve)
			require.NoError(t, err)

			restored, err := FromPrivateBytes(curve, id.PrivateBytes())
			require.NoError(t, err)
			assert.True(t, id.PublicKey().Equal(restored.PublicKey()))
			assert.Equal(t, id.NodeID(), restored.NodeID())
		})
	}
}

func TestNodeID(t *testing.T) {
	curve := &curves.Secp256k1Curve{}
	id, err := New(curve)
	require.NoError(t, err)

	decoded, err := hex.DecodeString(id.NodeID())
	require.NoError(t, err)
	assert.Equal(t, id.PublicKey().Bytes(), decoded)
}
