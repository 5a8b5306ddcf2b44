package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultNetwork is used when neither --network, config.local.json nor
// default_network name one
const DefaultNetwork = "hardhat"

// builtinNetworks are available without a domains.toml. Project networks with
// the same name replace them.
var builtinNetworks = map[string]config.NetworkConfig{
	"hardhat": {
		Type:    config.NetworkTypeLocal,
		ChainID: 31337,
	},
	"mumbai": {
		Type:     config.NetworkTypeRPC,
		URL:      "${ALCHEMY_URL}",
		ChainID:  80001,
		Accounts: []string{"${TEST_ACCOUNT_PRIVATE_KEY}"},
		Explorer: "https://mumbai.polygonscan.com",
	},
}

// envVarPattern matches ${VAR_NAME} references
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// NetworkResolver resolves network names against the project config
type NetworkResolver struct {
	networks map[string]config.NetworkConfig
}

// NewNetworkResolver merges the built-in networks with those of project, which may be nil
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	networks := make(map[string]config.NetworkConfig, len(builtinNetworks))
	for name, n := range builtinNetworks {
		networks[name] = n
	}
	if project != nil {
		for name, n := range project.Networks {
			networks[name] = n
		}
	}
	return &NetworkResolver{networks: networks}
}

// GetNetworks returns all network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := lo.Keys(r.networks)
	sort.Strings(names)
	return names
}

// Resolve expands and validates the named network
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	raw, ok := r.networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrNetworkNotFound, name, strings.Join(r.GetNetworks(), ", "))
	}

	url, err := expandEnv(raw.URL)
	if err != nil {
		return nil, fmt.Errorf("network %s: url: %w", name, err)
	}

	networkType := raw.Type
	if networkType == "" {
		networkType = config.NetworkTypeLocal
		if url != "" {
			networkType = config.NetworkTypeRPC
		}
	}

	network := &config.Network{
		Name:           name,
		Type:           networkType,
		ChainID:        raw.ChainID,
		RPCURL:         url,
		ExplorerURL:    os.ExpandEnv(raw.Explorer),
		AccountCount:   raw.AccountCount,
		InitialBalance: raw.InitialBalance,
		TxFee:          raw.TxFee,
		Persist:        raw.Persist,
		RateLimit:      raw.RateLimit,
		Burst:          raw.Burst,
	}

	switch networkType {
	case config.NetworkTypeLocal:
		mnemonic, err := expandEnv(raw.Mnemonic)
		if err != nil {
			return nil, fmt.Errorf("network %s: mnemonic: %w", name, err)
		}
		network.Mnemonic = mnemonic
	case config.NetworkTypeRPC:
		if url == "" {
			return nil, fmt.Errorf("network %s: url is required for rpc networks", name)
		}
		for i, account := range raw.Accounts {
			key, err := expandEnv(account)
			if err != nil {
				return nil, fmt.Errorf("network %s: account %d: %w", name, i, err)
			}
			network.PrivateKeys = append(network.PrivateKeys, key)
		}
	default:
		return nil, fmt.Errorf("network %s: unknown type %q (expected %q or %q)", name, networkType, config.NetworkTypeLocal, config.NetworkTypeRPC)
	}

	return network, nil
}

// expandEnv replaces ${VAR} references and fails on unset variables
func expandEnv(value string) (string, error) {
	var missing []string
	expanded := envVarPattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := envVarPattern.FindStringSubmatch(ref)[1]
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("environment variable %s is not set", strings.Join(lo.Uniq(missing), ", "))
	}
	return expanded, nil
}
