package config

// Cluster identifies a Solana network environment.
type Cluster string

const (
	ClusterDevnet  Cluster = "devnet"
	ClusterMainnet Cluster = "mainnet"
)

// DefaultCluster is used whenever a request does not pin a cluster.
const DefaultCluster = ClusterDevnet

// Currency is a settlement asset supported by the platform.
type Currency string

const (
	CurrencySOL  Currency = "SOL"
	CurrencyUSDC Currency = "USDC"
	CurrencyBONK Currency = "BONK"
)

// Currencies lists the supported currencies in display order. SOL is the
// native asset and the default token for new challenges.
var Currencies = []Currency{CurrencySOL, CurrencyUSDC, CurrencyBONK}

// ClusterConfig is the per-network on-chain table: where the treasury and
// escrow live, which RPC endpoint to use, and how each currency is
// represented on chain. Loaded once at startup and never mutated.
type ClusterConfig struct {
	RPCEndpoint    string
	TreasuryWallet string
	EscrowAccount  string
	// Mints maps each SPL currency to its mint address. The native asset
	// has no mint and is absent from this map.
	Mints map[Currency]string
	// Decimals maps every supported currency to its on-chain precision.
	Decimals map[Currency]int
}

// Clusters is the process-wide cluster table. Treasury/escrow defaults can
// be overridden per cluster through the environment (see Load).
var Clusters = map[Cluster]ClusterConfig{
	ClusterDevnet: {
		RPCEndpoint:    "https://api.devnet.solana.com",
		TreasuryWallet: "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS",
		EscrowAccount:  "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		Mints: map[Currency]string{
			CurrencyUSDC: "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU",
			CurrencyBONK: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
		},
		Decimals: map[Currency]int{
			CurrencySOL:  9,
			CurrencyUSDC: 6,
			CurrencyBONK: 5,
		},
	},
	ClusterMainnet: {
		RPCEndpoint:    "https://api.mainnet-beta.solana.com",
		TreasuryWallet: "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS",
		EscrowAccount:  "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		Mints: map[Currency]string{
			CurrencyUSDC: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			CurrencyBONK: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
		},
		Decimals: map[Currency]int{
			CurrencySOL:  9,
			CurrencyUSDC: 6,
			CurrencyBONK: 5,
		},
	},
}

// ValidCluster reports whether raw names a supported cluster.
func ValidCluster(raw string) bool {
	_, ok := Clusters[Cluster(raw)]
	return ok
}

// ValidCurrency reports whether raw names a supported currency.
func ValidCurrency(raw string) bool {
	for _, c := range Currencies {
		if Currency(raw) == c {
			return true
		}
	}
	return false
}

// ClusterDecimals returns the on-chain precision for a currency on a
// cluster. The second return is false when the pair is not configured.
func ClusterDecimals(cluster Cluster, currency Currency) (int, bool) {
	cc, ok := Clusters[cluster]
	if !ok {
		return 0, false
	}
	d, ok := cc.Decimals[currency]
	return d, ok
}
