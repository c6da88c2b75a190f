package solana

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"challenges-backend/config"
	"challenges-backend/models"
)

// fakeRPC satisfies rpcAPI without touching the network.
type fakeRPC struct {
	blockhashCalls   int
	accountInfoCalls int
	blockhash        solana.Hash
	blockhashErr     error
	existing         map[solana.PublicKey]bool
}

func (f *fakeRPC) GetLatestBlockhash(_ context.Context, _ rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	f.blockhashCalls++
	if f.blockhashErr != nil {
		return nil, f.blockhashErr
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: f.blockhash},
	}, nil
}

func (f *fakeRPC) GetAccountInfo(_ context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	f.accountInfoCalls++
	if f.existing[account] {
		return &rpc.GetAccountInfoResult{}, nil
	}
	return nil, rpc.ErrNotFound
}

func newTestService(f *fakeRPC) *Service {
	return &Service{
		creationFeeLamports: 1,
		clients: map[config.Cluster]*Client{
			config.ClusterDevnet: {api: f},
		},
	}
}

func decodeTx(t *testing.T, encoded string) *solana.Transaction {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("transaction is not valid base64: %v", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		t.Fatalf("transaction does not deserialize: %v", err)
	}
	return tx
}

func TestCreationFeeTxPayer(t *testing.T) {
	f := &fakeRPC{blockhash: solana.Hash{1, 2, 3}}
	svc := newTestService(f)
	payer := solana.NewWallet().PublicKey()

	encoded, err := svc.CreationFeeTx(context.Background(), config.ClusterDevnet, payer)
	if err != nil {
		t.Fatalf("CreationFeeTx returned error: %v", err)
	}

	tx := decodeTx(t, encoded)
	if len(tx.Message.AccountKeys) == 0 || !tx.Message.AccountKeys[0].Equals(payer) {
		t.Fatalf("fee payer = %v, want %v", tx.Message.AccountKeys[0], payer)
	}
	if len(tx.Message.Instructions) != 1 {
		t.Fatalf("instruction count = %d, want 1", len(tx.Message.Instructions))
	}
	if tx.Message.RecentBlockhash != f.blockhash {
		t.Fatalf("blockhash = %v, want %v", tx.Message.RecentBlockhash, f.blockhash)
	}
	if int(tx.Message.Header.NumRequiredSignatures) != len(tx.Signatures) {
		t.Fatalf("signature slots = %d, want %d", len(tx.Signatures), tx.Message.Header.NumRequiredSignatures)
	}
	for _, sig := range tx.Signatures {
		if sig != (solana.Signature{}) {
			t.Fatal("unsigned transaction carries a non-empty signature")
		}
	}
	if f.blockhashCalls != 1 {
		t.Fatalf("blockhash calls = %d, want 1", f.blockhashCalls)
	}
}

func TestCreationFeeTxUnsupportedCluster(t *testing.T) {
	svc := newTestService(&fakeRPC{})
	_, err := svc.CreationFeeTx(context.Background(), config.Cluster("testnet"), solana.NewWallet().PublicKey())
	if err == nil {
		t.Fatal("unsupported cluster was accepted")
	}
}

func TestCreationFeeTxUpstreamFailure(t *testing.T) {
	f := &fakeRPC{blockhashErr: context.DeadlineExceeded}
	svc := newTestService(f)
	_, err := svc.CreationFeeTx(context.Background(), config.ClusterDevnet, solana.NewWallet().PublicKey())
	if err == nil {
		t.Fatal("expected error when blockhash fetch fails")
	}
	if !models.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %T: %v", err, err)
	}
}

func TestJoinTxNative(t *testing.T) {
	f := &fakeRPC{blockhash: solana.Hash{9}}
	svc := newTestService(f)
	user := solana.NewWallet().PublicKey()

	ch := &models.ChallengeRecord{
		ID:       7,
		Name:     "Morning Run",
		Currency: config.CurrencySOL,
		Wager:    "1.5",
		Cluster:  config.ClusterDevnet,
	}

	encoded, err := svc.JoinTx(context.Background(), config.ClusterDevnet, ch, user)
	if err != nil {
		t.Fatalf("JoinTx returned error: %v", err)
	}

	tx := decodeTx(t, encoded)
	if !tx.Message.AccountKeys[0].Equals(user) {
		t.Fatalf("fee payer = %v, want joining user %v", tx.Message.AccountKeys[0], user)
	}
	// Native transfers need no token account setup.
	if len(tx.Message.Instructions) != 1 {
		t.Fatalf("instruction count = %d, want 1", len(tx.Message.Instructions))
	}
	if f.accountInfoCalls != 0 {
		t.Fatalf("native join resolved token accounts: %d getAccountInfo calls", f.accountInfoCalls)
	}
}

func TestJoinTxTokenCreatesMissingAccounts(t *testing.T) {
	f := &fakeRPC{blockhash: solana.Hash{9}, existing: map[solana.PublicKey]bool{}}
	svc := newTestService(f)
	user := solana.NewWallet().PublicKey()

	ch := &models.ChallengeRecord{
		ID:       7,
		Name:     "Morning Run",
		Currency: config.CurrencyUSDC,
		Wager:    "25",
		Cluster:  config.ClusterDevnet,
	}

	encoded, err := svc.JoinTx(context.Background(), config.ClusterDevnet, ch, user)
	if err != nil {
		t.Fatalf("JoinTx returned error: %v", err)
	}

	tx := decodeTx(t, encoded)
	// Neither associated account exists, so two create instructions precede
	// the token transfer.
	if len(tx.Message.Instructions) != 3 {
		t.Fatalf("instruction count = %d, want 3", len(tx.Message.Instructions))
	}
	if f.accountInfoCalls != 2 {
		t.Fatalf("getAccountInfo calls = %d, want 2", f.accountInfoCalls)
	}
}

func TestJoinTxTokenExistingAccounts(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	cc := config.Clusters[config.ClusterDevnet]
	escrow := solana.MustPublicKeyFromBase58(cc.EscrowAccount)
	mint := solana.MustPublicKeyFromBase58(cc.Mints[config.CurrencyUSDC])
	userATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		t.Fatalf("deriving user ATA: %v", err)
	}
	escrowATA, _, err := solana.FindAssociatedTokenAddress(escrow, mint)
	if err != nil {
		t.Fatalf("deriving escrow ATA: %v", err)
	}

	f := &fakeRPC{
		blockhash: solana.Hash{9},
		existing:  map[solana.PublicKey]bool{userATA: true, escrowATA: true},
	}
	svc := newTestService(f)

	ch := &models.ChallengeRecord{
		Currency: config.CurrencyUSDC,
		Wager:    "25",
		Cluster:  config.ClusterDevnet,
	}
	encoded, err := svc.JoinTx(context.Background(), config.ClusterDevnet, ch, user)
	if err != nil {
		t.Fatalf("JoinTx returned error: %v", err)
	}

	tx := decodeTx(t, encoded)
	if len(tx.Message.Instructions) != 1 {
		t.Fatalf("instruction count = %d, want just the transfer", len(tx.Message.Instructions))
	}
}

func TestJoinTxRejectsBadWager(t *testing.T) {
	svc := newTestService(&fakeRPC{blockhash: solana.Hash{9}})
	ch := &models.ChallengeRecord{
		Currency: config.CurrencySOL,
		Wager:    "not-a-number",
		Cluster:  config.ClusterDevnet,
	}
	_, err := svc.JoinTx(context.Background(), config.ClusterDevnet, ch, solana.NewWallet().PublicKey())
	if err == nil {
		t.Fatal("malformed wager was accepted")
	}
	if !strings.Contains(err.Error(), "wager") {
		t.Fatalf("error does not name the wager field: %v", err)
	}
}

func TestJoinTxRejectsUnknownCurrency(t *testing.T) {
	svc := newTestService(&fakeRPC{blockhash: solana.Hash{9}})
	ch := &models.ChallengeRecord{
		Currency: config.Currency("DOGE"),
		Wager:    "1",
		Cluster:  config.ClusterDevnet,
	}
	_, err := svc.JoinTx(context.Background(), config.ClusterDevnet, ch, solana.NewWallet().PublicKey())
	if err == nil {
		t.Fatal("unknown currency was accepted")
	}
}
