package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds process-wide settings loaded once at startup.
type Config struct {
	Port           string
	BaseURL        string // public base URL used in icons and share links
	IsProd         bool
	RequestTimeout time.Duration

	// CreationFeeLamports is the flat platform fee collected when a
	// challenge is proposed. The proposer pays it into the treasury.
	CreationFeeLamports uint64

	// RegistryURLs maps a cluster to the challenge registry base URL.
	RegistryURLs map[Cluster]string

	// StoreDriver selects the keyed store backend: "memory" or "postgres".
	StoreDriver string
	PGDSN       string
}

// Load reads configuration from the environment, falling back to development
// defaults. RPC endpoints and treasury/escrow addresses in the cluster table
// can be overridden per cluster.
func Load() *Config {
	cfg := &Config{
		Port:                getEnv("PORT", "3001"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:3001"),
		IsProd:              os.Getenv("IS_PROD") == "prod",
		RequestTimeout:      30 * time.Second,
		CreationFeeLamports: 1,
		RegistryURLs: map[Cluster]string{
			ClusterDevnet:  getEnv("REGISTRY_URL_DEVNET", "https://stagingapiv2.catoff.xyz"),
			ClusterMainnet: getEnv("REGISTRY_URL_MAINNET", "https://apiv2.catoff.xyz"),
		},
		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		PGDSN:       os.Getenv("PG_DSN"),
	}

	if cfg.IsProd {
		cfg.BaseURL = getEnv("BASE_URL", "https://join.catoff.xyz")
	}

	if raw := os.Getenv("REQUEST_TIMEOUT_SEC"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.RequestTimeout = time.Duration(v) * time.Second
		}
	}

	if raw := os.Getenv("CREATION_FEE_LAMPORTS"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil && v > 0 {
			cfg.CreationFeeLamports = v
		}
	}

	applyClusterOverrides()

	return cfg
}

// applyClusterOverrides patches the cluster table from the environment
// before it is first read. Runs once during Load; the table is treated as
// immutable afterwards.
func applyClusterOverrides() {
	overrides := []struct {
		cluster Cluster
		env     string
		apply   func(*ClusterConfig, string)
	}{
		{ClusterDevnet, "RPC_URL_DEVNET", func(c *ClusterConfig, v string) { c.RPCEndpoint = v }},
		{ClusterMainnet, "RPC_URL_MAINNET", func(c *ClusterConfig, v string) { c.RPCEndpoint = v }},
		{ClusterDevnet, "TREASURY_WALLET_DEVNET", func(c *ClusterConfig, v string) { c.TreasuryWallet = v }},
		{ClusterMainnet, "TREASURY_WALLET_MAINNET", func(c *ClusterConfig, v string) { c.TreasuryWallet = v }},
		{ClusterDevnet, "ESCROW_ACCOUNT_DEVNET", func(c *ClusterConfig, v string) { c.EscrowAccount = v }},
		{ClusterMainnet, "ESCROW_ACCOUNT_MAINNET", func(c *ClusterConfig, v string) { c.EscrowAccount = v }},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			cc := Clusters[o.cluster]
			o.apply(&cc, v)
			Clusters[o.cluster] = cc
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
