package elgamal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sk, pk := testKey(t)

	for _, amount := range []uint64{0, 1, 5, 100, 4095} {
		ct := encryptAmount(t, pk, amount)
		got, err := sk.Decrypt(ct, 5000)
		require.NoError(t, err)
		assert.Equal(t, amount, got)
	}
}

func TestDecryptOutOfRange(t *testing.T) {
	sk, pk := testKey(t)
	ct := encryptAmount(t, pk, 300)

	_, err := sk.Decrypt(ct, 100)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestDecryptWrongKey(t *testing.T) {
	_, pk := testKey(t)
	other, _ := testKey(t)
	ct := encryptAmount(t, pk, 10)

	// Another key strips the blinding incorrectly: the result is a
	// random-looking point outside the searched amount space.
	_, err := other.Decrypt(ct, 1000)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestEncryptWithBlindingIsDeterministic(t *testing.T) {
	_, pk := testKey(t)
	r, err := RandomScalar(nil)
	require.NoError(t, err)

	a := pk.EncryptWithBlinding(55, r)
	b := pk.EncryptWithBlinding(55, r)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Compress(), b.Compress())
}

func TestPrivateKeySerializationRoundTrip(t *testing.T) {
	sk, pk := testKey(t)

	restored, err := PrivateKeyFromBytes(sk.Bytes())
	require.NoError(t, err)
	assert.Equal(t, pk.Bytes(), restored.PublicKey().Bytes())

	ct := encryptAmount(t, pk, 77)
	amount, err := restored.Decrypt(ct, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), amount)
}

func TestPrivateKeyRejectsZeroScalar(t *testing.T) {
	_, err := PrivateKeyFromBytes(make([]byte, 32))
	assert.ErrorIs(t, err, ErrZeroScalar)
}

func TestPublicKeyFromBytesRejectsGarbage(t *testing.T) {
	bad := make([]byte, 32)
	for i := range bad {
		bad[i] = 0xFF
	}
	_, err := PublicKeyFromBytes(bad)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestDecryptPointMatchesAmountBase(t *testing.T) {
	sk, pk := testKey(t)
	ct := encryptAmount(t, pk, 42)

	// C - s*D must equal 42*G exactly.
	expected := ValueGenerator().ScalarBaseMult(AmountScalar(42))
	assert.Equal(t, 1, sk.DecryptPoint(ct).Equal(expected))
}
