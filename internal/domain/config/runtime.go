package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	ConfigFile  string // empty when no domains.toml was found

	// Network selected with --network, config.local.json or default_network
	Network *Network

	// From is the default signer from config.local.json, "" for account 0
	From string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig
}

// NetworkType selects the backend that serves a network
type NetworkType string

const (
	// NetworkTypeLocal is an in-process chain
	NetworkTypeLocal NetworkType = "local"
	// NetworkTypeRPC is a remote EVM JSON-RPC endpoint
	NetworkTypeRPC NetworkType = "rpc"
)

// Network represents a resolved network configuration
type Network struct {
	Name        string      `json:"name"`
	Type        NetworkType `json:"type"`
	ChainID     uint64      `json:"chainId"`
	RPCURL      string      `json:"rpcUrl,omitempty"`
	ExplorerURL string      `json:"explorerUrl,omitempty"`

	// rpc networks sign with these keys, already env-expanded
	PrivateKeys []string `json:"-"`

	// local networks
	Mnemonic       string `json:"-"`
	AccountCount   int    `json:"accounts,omitempty"`
	InitialBalance string `json:"initialBalance,omitempty"`
	TxFee          string `json:"txFee,omitempty"`
	Persist        bool   `json:"persist"`

	// Requests per second against the endpoint, 0 for unlimited
	RateLimit float64 `json:"rateLimit,omitempty"`
	Burst     int     `json:"burst,omitempty"`
}

// IsLocal reports whether the network is served in-process
func (n *Network) IsLocal() bool {
	return n.Type == NetworkTypeLocal
}

// Ephemeral networks lose all state when the process exits
func (n *Network) Ephemeral() bool {
	return n.IsLocal() && !n.Persist
}
