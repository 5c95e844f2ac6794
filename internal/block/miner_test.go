package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbra-network/go-umbra/internal/crypto/elgamal"
	"github.com/umbra-network/go-umbra/internal/crypto/hash"
	"github.com/umbra-network/go-umbra/internal/serializer"
)

func testWork(t *testing.T) *MinerWork {
	t.Helper()
	var headerHash hash.Hash
	for i := range headerHash {
		headerHash[i] = byte(i)
	}
	return NewMinerWork(headerHash, 1700000000000)
}

func TestMinerWorkSerializedSize(t *testing.T) {
	w := testWork(t)
	assert.Equal(t, 112, WorkSize)
	assert.Len(t, serializer.ToBytes(w), WorkSize)

	sk, err := elgamal.GenerateKey(nil)
	require.NoError(t, err)
	w.SetMiner(sk.PublicKey())
	assert.Len(t, serializer.ToBytes(w), WorkSize)
}

func TestMinerWorkRoundTrip(t *testing.T) {
	w := testWork(t)
	sk, err := elgamal.GenerateKey(nil)
	require.NoError(t, err)
	w.SetMiner(sk.PublicKey())
	w.SetThreadID16(513)
	w.IncrementNonce()
	w.IncrementNonce()

	decoded, err := ReadMinerWork(serializer.ToBytes(w))
	require.NoError(t, err)
	assert.Equal(t, w.HeaderWorkHash(), decoded.HeaderWorkHash())
	assert.Equal(t, w.Timestamp(), decoded.Timestamp())
	assert.Equal(t, uint64(2), decoded.Nonce())
	assert.Equal(t, w.ExtraNonce(), decoded.ExtraNonce())
	require.NotNil(t, decoded.Miner())
	assert.Equal(t, sk.PublicKey().Bytes(), decoded.Miner().Bytes())
}

func TestMinerWorkRoundTripWithoutMiner(t *testing.T) {
	w := testWork(t)
	decoded, err := ReadMinerWork(serializer.ToBytes(w))
	require.NoError(t, err)
	assert.Nil(t, decoded.Miner())
}

func TestReadMinerWorkRejectsWrongSize(t *testing.T) {
	_, err := ReadMinerWork(make([]byte, WorkSize-1))
	assert.ErrorIs(t, err, serializer.ErrInvalidSize)

	_, err = ReadMinerWork(make([]byte, WorkSize+1))
	assert.ErrorIs(t, err, serializer.ErrInvalidSize)
}

func TestReadMinerWorkHex(t *testing.T) {
	w := testWork(t)
	decoded, err := ReadMinerWorkHex(serializer.ToHex(w))
	require.NoError(t, err)
	assert.Equal(t, w.PowHash(), decoded.PowHash())

	_, err = ReadMinerWorkHex("not-hex")
	assert.Error(t, err)
}

func TestCachePatchesMatchFullRebuild(t *testing.T) {
	w := testWork(t)

	// Prime the cache.
	_ = w.PowHash()

	// Mutate the two hot fields; the cache is patched, not rebuilt.
	w.SetTimestamp(1700000005000)
	for i := 0; i < 10; i++ {
		w.IncrementNonce()
	}

	fresh, err := ReadMinerWork(serializer.ToBytes(w))
	require.NoError(t, err)
	assert.Equal(t, fresh.PowHash(), w.PowHash())
}

func TestThreadIDInvalidatesCache(t *testing.T) {
	w := testWork(t)
	before := w.PowHash()

	w.SetThreadID(7)
	after := w.PowHash()
	assert.NotEqual(t, before, after)

	extra := w.ExtraNonce()
	assert.Equal(t, byte(7), extra[ExtraNonceSize-1])

	w.SetThreadID16(0x0102)
	extra = w.ExtraNonce()
	assert.Equal(t, byte(1), extra[ExtraNonceSize-2])
	assert.Equal(t, byte(2), extra[ExtraNonceSize-1])
}

func TestNonceChangesPowHash(t *testing.T) {
	w := testWork(t)
	before := w.PowHash()
	w.IncrementNonce()
	assert.NotEqual(t, before, w.PowHash())
}

func TestCheckDifficulty(t *testing.T) {
	var h hash.Hash
	// An all-zero digest passes any difficulty.
	assert.True(t, CheckDifficulty(h, 1))
	assert.True(t, CheckDifficulty(h, 1<<40))

	for i := range h {
		h[i] = 0xFF
	}
	// The all-ones digest only passes difficulty 1 (and the 0 fallback).
	assert.True(t, CheckDifficulty(h, 1))
	assert.True(t, CheckDifficulty(h, 0))
	assert.False(t, CheckDifficulty(h, 2))
}
