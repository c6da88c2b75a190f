package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"

	"challenges-backend/config"
	"challenges-backend/models"
)

// ResolvedAccounts holds the on-chain token accounts a wager transfer moves
// between, plus any instructions needed to create accounts that do not exist
// yet. For the native asset the token accounts are the wallets themselves
// and Setup is empty.
type ResolvedAccounts struct {
	UserTokenAccount   solana.PublicKey
	EscrowTokenAccount solana.PublicKey
	Setup              []solana.Instruction
}

// resolveAccounts derives the user-side and escrow-side token accounts for
// a currency on a cluster. Missing associated accounts are created as part
// of the eventual transaction, paid for by the user (the fee payer).
func (s *Service) resolveAccounts(ctx context.Context, cluster config.Cluster, currency config.Currency, user, escrow solana.PublicKey) (*ResolvedAccounts, error) {
	if currency == config.CurrencySOL {
		return &ResolvedAccounts{UserTokenAccount: user, EscrowTokenAccount: escrow}, nil
	}

	cc, ok := config.Clusters[cluster]
	if !ok {
		return nil, &models.AccountResolutionError{Message: fmt.Sprintf("unsupported cluster: %s", cluster)}
	}
	mintAddr, ok := cc.Mints[currency]
	if !ok {
		return nil, &models.AccountResolutionError{
			Message: fmt.Sprintf("currency %s is not supported on cluster %s", currency, cluster),
		}
	}
	mint, err := solana.PublicKeyFromBase58(mintAddr)
	if err != nil {
		return nil, &models.AccountResolutionError{
			Message: fmt.Sprintf("invalid mint configured for %s on %s", currency, cluster),
		}
	}

	userATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, &models.AccountResolutionError{Message: "failed to derive user token account"}
	}
	escrowATA, _, err := solana.FindAssociatedTokenAddress(escrow, mint)
	if err != nil {
		return nil, &models.AccountResolutionError{Message: "failed to derive escrow token account"}
	}

	client, err := s.client(cluster)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedAccounts{UserTokenAccount: userATA, EscrowTokenAccount: escrowATA}

	userExists, err := client.AccountExists(ctx, userATA)
	if err != nil {
		return nil, err
	}
	if !userExists {
		resolved.Setup = append(resolved.Setup,
			associatedtokenaccount.NewCreateInstruction(user, user, mint).Build())
	}

	escrowExists, err := client.AccountExists(ctx, escrowATA)
	if err != nil {
		return nil, err
	}
	if !escrowExists {
		resolved.Setup = append(resolved.Setup,
			associatedtokenaccount.NewCreateInstruction(user, escrow, mint).Build())
	}

	return resolved, nil
}
