// Package block holds the proof-of-work mining structures. MinerWork is
// the fixed-layout byte blob miners iterate on; it carries no algebraic
// logic, only the layout and the high-frequency nonce/timestamp patches.
package block

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"

	"github.com/umbra-network/go-umbra/internal/crypto/elgamal"
	"github.com/umbra-network/go-umbra/internal/crypto/hash"
	"github.com/umbra-network/go-umbra/internal/serializer"
)

const (
	// ExtraNonceSize is the free-form area miners may write to spread a
	// job across more workers.
	ExtraNonceSize = 32

	// WorkSize is the full serialized miner work length:
	// header work hash (32) || timestamp (8) || nonce (8) ||
	// extra nonce (32) || miner public key (32).
	WorkSize = hash.Size + 8 + 8 + ExtraNonceSize + elgamal.PointSize

	timestampOffset = hash.Size
	nonceOffset     = timestampOffset + 8
)

// MinerWork is one mining job. The header work hash covers everything
// immutable in the block header; miners mutate only the timestamp, the
// nonce and the extra nonce.
//
// The serialized form is cached after the first PowHash call and patched
// in place on timestamp/nonce changes, never rebuilt, since those two
// fields change millions of times per second while mining.
type MinerWork struct {
	headerWorkHash hash.Hash
	timestamp      uint64 // milliseconds
	nonce          uint64
	miner          *elgamal.PublicKey
	extraNonce     [ExtraNonceSize]byte

	cache []byte
}

// NewMinerWork creates a job for the given immutable header work hash.
func NewMinerWork(headerWorkHash hash.Hash, timestamp uint64) *MinerWork {
	return &MinerWork{
		headerWorkHash: headerWorkHash,
		timestamp:      timestamp,
	}
}

// HeaderWorkHash returns the immutable header work hash.
func (w *MinerWork) HeaderWorkHash() hash.Hash {
	return w.headerWorkHash
}

// Timestamp returns the current timestamp in milliseconds.
func (w *MinerWork) Timestamp() uint64 {
	return w.timestamp
}

// Nonce returns the current nonce.
func (w *MinerWork) Nonce() uint64 {
	return w.nonce
}

// Miner returns the miner public key, or nil if unset.
func (w *MinerWork) Miner() *elgamal.PublicKey {
	return w.miner
}

// ExtraNonce returns a copy of the extra nonce area.
func (w *MinerWork) ExtraNonce() [ExtraNonceSize]byte {
	return w.extraNonce
}

// SetMiner assigns the public key rewarded by this work.
func (w *MinerWork) SetMiner(pk *elgamal.PublicKey) {
	w.miner = pk
	w.cache = nil
}

// SetTimestamp updates the timestamp, patching only its 8 bytes in the
// cached work buffer.
func (w *MinerWork) SetTimestamp(timestamp uint64) {
	w.timestamp = timestamp
	if w.cache != nil {
		writer := serializer.NewWriter()
		writer.WriteUint64(timestamp)
		copy(w.cache[timestampOffset:timestampOffset+8], writer.Bytes())
	}
}

// IncrementNonce advances the nonce, patching only its 8 bytes in the
// cached work buffer.
func (w *MinerWork) IncrementNonce() {
	w.nonce++
	if w.cache != nil {
		writer := serializer.NewWriter()
		writer.WriteUint64(w.nonce)
		copy(w.cache[nonceOffset:nonceOffset+8], writer.Bytes())
	}
}

// SetThreadID tags the last extra-nonce byte with a worker id, so each
// thread of a miner searches a disjoint nonce space.
func (w *MinerWork) SetThreadID(id uint8) {
	w.extraNonce[ExtraNonceSize-1] = id
	w.cache = nil
}

// SetThreadID16 tags the last two extra-nonce bytes with a worker id,
// for miners running more than 256 threads.
func (w *MinerWork) SetThreadID16(id uint16) {
	writer := serializer.NewWriter()
	writer.WriteUint16(id)
	copy(w.extraNonce[ExtraNonceSize-2:], writer.Bytes())
	w.cache = nil
}

// PowHash returns the proof-of-work digest of the current work. The
// first call builds the serialized buffer; later calls reuse it with the
// in-place nonce/timestamp patches applied.
func (w *MinerWork) PowHash() hash.Hash {
	if w.cache == nil {
		w.cache = serializer.ToBytes(w)
	}
	return sha3.Sum256(w.cache)
}

// Write appends the canonical miner work layout.
func (w *MinerWork) Write(writer *serializer.Writer) {
	writer.WriteHash(w.headerWorkHash) // 32
	writer.WriteUint64(w.timestamp)    // 40
	writer.WriteUint64(w.nonce)        // 48
	writer.WriteBytes(w.extraNonce[:]) // 80

	// 112. An unset miner key serializes as 32 zero bytes.
	if w.miner != nil {
		writer.WriteBytes(w.miner.Bytes())
	} else {
		writer.WriteBytes(make([]byte, elgamal.PointSize))
	}
}

// Size returns the fixed serialized length.
func (w *MinerWork) Size() int {
	return WorkSize
}

// ReadMinerWork decodes a miner work blob, rejecting any input whose
// size is not exactly WorkSize.
func ReadMinerWork(data []byte) (*MinerWork, error) {
	if len(data) != WorkSize {
		logrus.Debugf("invalid miner work size: expected %d, got %d", WorkSize, len(data))
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", serializer.ErrInvalidSize, WorkSize, len(data))
	}

	r := serializer.NewReader(data)
	headerWorkHash, err := r.ReadHash()
	if err != nil {
		return nil, err
	}
	timestamp, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	nonce, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	extraNonce, err := r.ReadBytes32()
	if err != nil {
		return nil, err
	}
	minerBytes, err := r.ReadBytes(elgamal.PointSize)
	if err != nil {
		return nil, err
	}

	w := &MinerWork{
		headerWorkHash: headerWorkHash,
		timestamp:      timestamp,
		nonce:          nonce,
		extraNonce:     extraNonce,
	}
	if !isZero(minerBytes) {
		pk, err := elgamal.PublicKeyFromBytes(minerBytes)
		if err != nil {
			return nil, fmt.Errorf("miner key: %w", err)
		}
		w.miner = pk
	}
	return w, nil
}

// ReadMinerWorkHex decodes the hex form used by the getwork RPC.
func ReadMinerWorkHex(s string) (*MinerWork, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return ReadMinerWork(b)
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
