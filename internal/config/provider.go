package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/registry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultTLD is the suffix registries are deployed with unless configured
const DefaultTLD = "mus"

// flagKeys maps persistent flags onto viper keys
var flagKeys = map[string]string{
	"network":         "network",
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"json":            "json",
	"timeout":         "timeout",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		root, _, err := FindProjectRoot(".")
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
		projectRoot = root
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		From:           v.GetString("from"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Project:        &config.ProjectConfig{},
	}

	LoadEnv(projectRoot)

	configFile := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(configFile); err == nil {
		project, err := LoadProject(configFile)
		if err != nil {
			return nil, err
		}
		cfg.Project = project
		cfg.ConfigFile = configFile
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = cfg.Project.DefaultNetwork
	}
	if networkName == "" {
		networkName = DefaultNetwork
	}
	network, err := NewNetworkResolver(cfg.Project).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// .domains/config.local.json holds defaults written by 'domains config set'
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("DOMAINS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		}
	}

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Project)
}

// ResolveTLD returns the configured suffix, or DefaultTLD
func ResolveTLD(cfg *config.RuntimeConfig) string {
	if cfg.Project != nil && cfg.Project.Registry.TLD != "" {
		return cfg.Project.Registry.TLD
	}
	return DefaultTLD
}

// RegistryOptions turns [registry] settings into options for registries
// hosted on local networks
func RegistryOptions(cfg *config.RuntimeConfig) ([]registry.Option, error) {
	if cfg.Project == nil {
		return nil, nil
	}
	rc := cfg.Project.Registry

	var opts []registry.Option

	policy, err := registry.ParseRecordPolicy(rc.RecordPolicy)
	if err != nil {
		return nil, fmt.Errorf("registry.record_policy: %w", err)
	}
	opts = append(opts, registry.WithRecordPolicy(policy))

	pricing := registry.DefaultPricing()
	if rc.Fee != "" {
		fee, err := domain.ParseEther(rc.Fee)
		if err != nil {
			return nil, fmt.Errorf("registry.fee: %w", err)
		}
		pricing.Base = fee
	}
	for key, value := range rc.Tiers {
		length, err := strconv.Atoi(key)
		if err != nil || length < registry.MinNameLength || length > registry.MaxNameLength {
			return nil, fmt.Errorf("registry.tiers: %q is not a name length between %d and %d", key, registry.MinNameLength, registry.MaxNameLength)
		}
		price, err := domain.ParseEther(value)
		if err != nil {
			return nil, fmt.Errorf("registry.tiers.%s: %w", key, err)
		}
		if pricing.Tiers == nil {
			pricing.Tiers = make(map[int]*big.Int)
		}
		pricing.Tiers[length] = price
	}
	opts = append(opts, registry.WithPricing(pricing))

	return opts, nil
}
