package config

// ProjectConfig is the decoded domains.toml
type ProjectConfig struct {
	DefaultNetwork string                   `toml:"default_network"`
	Registry       RegistryConfig           `toml:"registry"`
	Networks       map[string]NetworkConfig `toml:"networks"`
}

// RegistryConfig configures deployments of the registry contract
type RegistryConfig struct {
	// TLD is the top-level suffix passed to the constructor
	TLD string `toml:"tld"`
	// Fee is the base registration price in ether, e.g. "0.1"
	Fee string `toml:"fee"`
	// Tiers maps a name length ("3") to a price in ether
	Tiers map[string]string `toml:"tiers"`
	// RecordPolicy is "owner" or "open"; only enforced by local networks
	RecordPolicy string `toml:"record_policy"`
	// Artifact is the compiled contract JSON (abi + bytecode) used to deploy on rpc networks
	Artifact string `toml:"artifact"`
}

// NetworkConfig is one [networks.<name>] table
type NetworkConfig struct {
	Type           NetworkType `toml:"type"`
	URL            string      `toml:"url"`
	ChainID        uint64      `toml:"chain_id"`
	Accounts       []string    `toml:"accounts"` //nolint:gosec // holds env var references
	Explorer       string      `toml:"explorer"`
	Mnemonic       string      `toml:"mnemonic"`
	AccountCount   int         `toml:"account_count"`
	InitialBalance string      `toml:"initial_balance"`
	TxFee          string      `toml:"tx_fee"`
	Persist        bool        `toml:"persist"`
	RateLimit      float64     `toml:"rate_limit"`
	Burst          int         `toml:"burst"`
}
