// Package solana wraps the ledger RPC, token account resolution, and
// unsigned transaction assembly behind a small service the action handlers
// consume.
package solana

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"challenges-backend/models"
)

// rpcAPI is the slice of the RPC client the backend actually uses.
type rpcAPI interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
}

// Client talks to one cluster's RPC endpoint.
type Client struct {
	api rpcAPI
}

// NewClient creates a client for the given RPC endpoint.
func NewClient(endpoint string) *Client {
	return &Client{api: rpc.New(endpoint)}
}

// LatestBlockhash fetches the current recent blockhash. Callers must fetch
// it immediately before transaction assembly and never cache it; a stale
// blockhash gets the signed transaction rejected by the network.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.api.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, models.NewUpstreamError("getLatestBlockhash", err)
	}
	return out.Value.Blockhash, nil
}

// AccountExists reports whether an account is present on chain.
func (c *Client) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := c.api.GetAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, models.NewUpstreamError("getAccountInfo", err)
	}
	return true, nil
}
