package daemonapi

import (
	"context"
	"encoding/json"

	"github.com/umbra-network/go-umbra/internal/api"
	"github.com/umbra-network/go-umbra/internal/block"
	"github.com/umbra-network/go-umbra/internal/serializer"
)

// GetVersion returns the daemon version string.
func (c *Client) GetVersion(ctx context.Context) (string, error) {
	var version string
	err := c.Call(ctx, "get_version", nil, &version)
	return version, err
}

// GetInfo returns the daemon's chain summary.
func (c *Client) GetInfo(ctx context.Context) (*api.GetInfoResult, error) {
	var info api.GetInfoResult
	if err := c.Call(ctx, "get_info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBalance returns the latest confidential balance version for an
// address and asset.
func (c *Client) GetBalance(ctx context.Context, address, asset string) (*api.GetBalanceResult, error) {
	var res api.GetBalanceResult
	err := c.Call(ctx, "get_balance", &api.GetBalanceParams{Address: address, Asset: asset}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBalanceAtTopoHeight returns the balance version stored at the given
// topoheight.
func (c *Client) GetBalanceAtTopoHeight(ctx context.Context, address, asset string, topoheight uint64) (*api.VersionedBalance, error) {
	var res api.VersionedBalance
	err := c.Call(ctx, "get_balance_at_topoheight", &api.GetBalanceAtTopoHeightParams{
		Address:    address,
		Asset:      asset,
		TopoHeight: topoheight,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetNonce returns the latest account nonce for an address.
func (c *Client) GetNonce(ctx context.Context, address string) (*api.GetNonceResult, error) {
	var res api.GetNonceResult
	err := c.Call(ctx, "get_nonce", &api.GetNonceParams{Address: address}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBlockAtTopoHeight returns the block ordered at the given topoheight.
func (c *Client) GetBlockAtTopoHeight(ctx context.Context, topoheight uint64, includeTxs bool) (*api.BlockResponse, error) {
	var res api.BlockResponse
	err := c.Call(ctx, "get_block_at_topoheight", &api.GetBlockAtTopoHeightParams{
		TopoHeight: topoheight,
		IncludeTxs: includeTxs,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitTransaction submits a serialized transaction.
func (c *Client) SubmitTransaction(ctx context.Context, tx serializer.Serializable) error {
	var accepted bool
	return c.Call(ctx, "submit_transaction", &api.SubmitTransactionParams{
		Data: serializer.ToHex(tx),
	}, &accepted)
}

// GetBlockTemplate fetches mining work paying out to the given address.
func (c *Client) GetBlockTemplate(ctx context.Context, address string) (*api.GetBlockTemplateResult, error) {
	var res api.GetBlockTemplateResult
	err := c.Call(ctx, "get_block_template", &api.GetBlockTemplateParams{Address: address}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitBlock submits solved miner work.
func (c *Client) SubmitBlock(ctx context.Context, work *block.MinerWork) error {
	var accepted bool
	return c.Call(ctx, "submit_block", &api.SubmitBlockParams{
		MinerWork: serializer.ToHex(work),
	}, &accepted)
}

// OnNewBlock subscribes to block notifications.
func (c *Client) OnNewBlock(ctx context.Context) (<-chan json.RawMessage, error) {
	return c.Subscribe(ctx, api.NewBlock)
}

// OnBlockOrdered subscribes to block ordering notifications.
func (c *Client) OnBlockOrdered(ctx context.Context) (<-chan json.RawMessage, error) {
	return c.Subscribe(ctx, api.BlockOrdered)
}

// OnStableHeightChanged subscribes to stable height notifications.
func (c *Client) OnStableHeightChanged(ctx context.Context) (<-chan json.RawMessage, error) {
	return c.Subscribe(ctx, api.StableHeightChanged)
}

// OnTransactionAddedInMempool subscribes to mempool notifications.
func (c *Client) OnTransactionAddedInMempool(ctx context.Context) (<-chan json.RawMessage, error) {
	return c.Subscribe(ctx, api.TransactionAddedInMempool)
}
