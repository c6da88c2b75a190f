package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"challenges-backend/config"
	"challenges-backend/models"
)

// Service builds the unsigned transactions the action protocol proposes.
// It holds one RPC client per configured cluster and is safe for concurrent
// use; nothing is cached between requests.
type Service struct {
	creationFeeLamports uint64
	clients             map[config.Cluster]*Client
}

// NewService creates a service with one RPC client per cluster in the
// cluster table.
func NewService(cfg *config.Config) *Service {
	clients := make(map[config.Cluster]*Client, len(config.Clusters))
	for cluster, cc := range config.Clusters {
		clients[cluster] = NewClient(cc.RPCEndpoint)
	}
	return &Service{
		creationFeeLamports: cfg.CreationFeeLamports,
		clients:             clients,
	}
}

func (s *Service) client(cluster config.Cluster) (*Client, error) {
	c, ok := s.clients[cluster]
	if !ok {
		return nil, &models.AccountResolutionError{Message: fmt.Sprintf("unsupported cluster: %s", cluster)}
	}
	return c, nil
}

// CreationFeeTx builds the flat platform-fee transfer that finalizes a
// challenge proposal: a minimal lamport transfer from the proposer to the
// cluster's treasury wallet. The proposer is the fee payer.
func (s *Service) CreationFeeTx(ctx context.Context, cluster config.Cluster, payer solana.PublicKey) (string, error) {
	cc, ok := config.Clusters[cluster]
	if !ok {
		return "", &models.AccountResolutionError{Message: fmt.Sprintf("unsupported cluster: %s", cluster)}
	}
	treasury, err := solana.PublicKeyFromBase58(cc.TreasuryWallet)
	if err != nil {
		return "", &models.AccountResolutionError{Message: "invalid treasury wallet configured for cluster"}
	}

	client, err := s.client(cluster)
	if err != nil {
		return "", err
	}

	instructions := []solana.Instruction{
		transferNative(s.creationFeeLamports, payer, treasury),
	}

	// Fetched last so the blockhash is as fresh as possible at assembly.
	blockhash, err := client.LatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	return serializeUnsigned(instructions, blockhash, payer)
}

// JoinTx builds the wager transfer that joins a user to a challenge: the
// recorded wager, scaled to chain units by the currency's precision, moving
// from the user's resolved token account into the escrow's. The joining
// user is the fee payer and pays for any token account creation.
func (s *Service) JoinTx(ctx context.Context, cluster config.Cluster, ch *models.ChallengeRecord, user solana.PublicKey) (string, error) {
	cc, ok := config.Clusters[cluster]
	if !ok {
		return "", &models.AccountResolutionError{Message: fmt.Sprintf("unsupported cluster: %s", cluster)}
	}
	escrow, err := solana.PublicKeyFromBase58(cc.EscrowAccount)
	if err != nil {
		return "", &models.AccountResolutionError{Message: "invalid escrow account configured for cluster"}
	}

	decimals, ok := config.ClusterDecimals(cluster, ch.Currency)
	if !ok {
		return "", &models.PrecisionError{
			Message: fmt.Sprintf("no decimal precision configured for %s on %s", ch.Currency, cluster),
		}
	}
	wager, err := decimal.NewFromString(ch.Wager)
	if err != nil {
		return "", models.NewValidationError("wager", "challenge wager is not a valid decimal amount")
	}
	amount, err := ToChainUnits(wager, decimals)
	if err != nil {
		return "", err
	}

	resolved, err := s.resolveAccounts(ctx, cluster, ch.Currency, user, escrow)
	if err != nil {
		return "", err
	}

	instructions := append([]solana.Instruction{}, resolved.Setup...)
	if ch.Currency == config.CurrencySOL {
		instructions = append(instructions, transferNative(amount, user, escrow))
	} else {
		instructions = append(instructions,
			transferToken(amount, resolved.UserTokenAccount, resolved.EscrowTokenAccount, user))
	}

	client, err := s.client(cluster)
	if err != nil {
		return "", err
	}
	blockhash, err := client.LatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	return serializeUnsigned(instructions, blockhash, user)
}
