// Package api defines the JSON types exchanged with the daemon RPC.
package api

import (
	"encoding/hex"
	"fmt"

	"github.com/umbra-network/go-umbra/internal/crypto/elgamal"
)

// NotifyEvent identifies a server-push event stream.
type NotifyEvent string

const (
	// NewBlock fires when a block is accepted by the daemon.
	NewBlock NotifyEvent = "new_block"
	// BlockOrdered fires when a block receives its final topological order.
	BlockOrdered NotifyEvent = "block_ordered"
	// StableHeightChanged fires when the stable height moves.
	StableHeightChanged NotifyEvent = "stable_height_changed"
	// TransactionAddedInMempool fires when a transaction enters the mempool.
	TransactionAddedInMempool NotifyEvent = "transaction_added_in_mempool"
)

// GetInfoResult is the daemon's chain summary.
type GetInfoResult struct {
	Height       uint64 `json:"height"`
	TopoHeight   uint64 `json:"topoheight"`
	StableHeight uint64 `json:"stableheight"`
	TopBlockHash string `json:"top_block_hash"`
	Difficulty   uint64 `json:"difficulty"`
	MempoolSize  int    `json:"mempool_size"`
	Version      string `json:"version"`
	Network      string `json:"network"`
}

// GetBalanceParams requests the confidential balance of an address for
// one asset.
type GetBalanceParams struct {
	Address string `json:"address"`
	Asset   string `json:"asset"`
}

// GetBalanceAtTopoHeightParams pins the balance query to a topoheight.
type GetBalanceAtTopoHeightParams struct {
	Address    string `json:"address"`
	Asset      string `json:"asset"`
	TopoHeight uint64 `json:"topoheight"`
}

// VersionedBalance is one version of an account's confidential balance:
// the hex-encoded compressed ciphertext plus the topoheight of the
// previous version, if any.
type VersionedBalance struct {
	Balance            string  `json:"balance"`
	PreviousTopoHeight *uint64 `json:"previous_topoheight,omitempty"`
}

// Ciphertext decodes and decompresses the balance. Untrusted input: the
// decompression validates both points.
func (v *VersionedBalance) Ciphertext() (elgamal.Ciphertext, error) {
	raw, err := hex.DecodeString(v.Balance)
	if err != nil {
		return elgamal.Ciphertext{}, fmt.Errorf("balance hex: %w", err)
	}
	compressed, err := elgamal.CompressedCiphertextFromBytes(raw)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	return compressed.Decompress()
}

// GetBalanceResult carries the latest balance version and its topoheight.
type GetBalanceResult struct {
	Version    VersionedBalance `json:"version"`
	TopoHeight uint64           `json:"topoheight"`
}

// GetNonceParams requests an account nonce.
type GetNonceParams struct {
	Address    string  `json:"address"`
	TopoHeight *uint64 `json:"topoheight,omitempty"`
}

// GetNonceResult carries an account nonce.
type GetNonceResult struct {
	Nonce      uint64 `json:"nonce"`
	TopoHeight uint64 `json:"topoheight"`
}

// SubmitTransactionParams submits a serialized transaction in hex form.
type SubmitTransactionParams struct {
	Data string `json:"data"`
}

// GetBlockAtTopoHeightParams requests one block by topological order.
type GetBlockAtTopoHeightParams struct {
	TopoHeight uint64 `json:"topoheight"`
	IncludeTxs bool   `json:"include_txs"`
}

// BlockResponse is the daemon's view of one block.
type BlockResponse struct {
	Hash       string   `json:"hash"`
	Height     uint64   `json:"height"`
	TopoHeight uint64   `json:"topoheight"`
	Timestamp  uint64   `json:"timestamp"`
	Nonce      uint64   `json:"nonce"`
	Miner      string   `json:"miner"`
	Difficulty uint64   `json:"difficulty"`
	TxHashes   []string `json:"txs_hashes"`
}

// GetBlockTemplateParams requests mining work paying out to an address.
type GetBlockTemplateParams struct {
	Address string `json:"address"`
}

// GetBlockTemplateResult is the getwork payload: the hex-encoded miner
// work blob plus the difficulty to meet.
type GetBlockTemplateResult struct {
	Template   string `json:"template"`
	Difficulty uint64 `json:"difficulty"`
	Height     uint64 `json:"height"`
}

// SubmitBlockParams submits solved miner work in hex form.
type SubmitBlockParams struct {
	MinerWork string `json:"miner_work"`
}

// NewBlockEvent is the payload of the NewBlock notification.
type NewBlockEvent struct {
	BlockResponse
}

// BlockOrderedEvent is the payload of the BlockOrdered notification.
type BlockOrderedEvent struct {
	BlockHash  string `json:"block_hash"`
	TopoHeight uint64 `json:"topoheight"`
}

// StableHeightChangedEvent is the payload of the StableHeightChanged
// notification.
type StableHeightChangedEvent struct {
	PreviousStableHeight uint64 `json:"previous_stable_height"`
	NewStableHeight      uint64 `json:"new_stable_height"`
}

// TransactionAddedInMempoolEvent is the payload of the mempool
// notification.
type TransactionAddedInMempoolEvent struct {
	Hash string `json:"hash"`
}
