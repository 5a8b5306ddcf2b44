package adapters

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/wire"
	adapterconfig "github.com/musdomains/domains/internal/adapters/config"
	"github.com/musdomains/domains/internal/adapters/evm"
	"github.com/musdomains/domains/internal/adapters/fs"
	"github.com/musdomains/domains/internal/adapters/interactive"
	"github.com/musdomains/domains/internal/adapters/localchain"
	"github.com/musdomains/domains/internal/adapters/scenario"
	internalconfig "github.com/musdomains/domains/internal/config"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/usecase"
)

// ProvideBackend opens the chain behind the active network: an in-process
// chain for local networks, a JSON-RPC endpoint otherwise
func ProvideBackend(cfg *config.RuntimeConfig, states *fs.ChainStateStoreAdapter, log *slog.Logger) (usecase.Backend, func(), error) {
	network := cfg.Network
	if network == nil {
		return nil, nil, fmt.Errorf("no network configured")
	}

	var (
		backend usecase.Backend
		err     error
	)
	if network.IsLocal() {
		opts, optErr := internalconfig.RegistryOptions(cfg)
		if optErr != nil {
			return nil, nil, optErr
		}
		backend, err = localchain.Open(network, opts, states, log)
	} else {
		backend, err = evm.NewBackend(network, ProvideArtifactPath(cfg), log)
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := backend.Close(); err != nil {
			log.Warn("failed to close backend", "network", network.Name, "error", err)
		}
	}
	return backend, cleanup, nil
}

// ProvideArtifactPath resolves [registry].artifact against the project root
func ProvideArtifactPath(cfg *config.RuntimeConfig) string {
	if cfg.Project == nil || cfg.Project.Registry.Artifact == "" {
		return ""
	}
	if filepath.IsAbs(cfg.Project.Registry.Artifact) {
		return cfg.Project.Registry.Artifact
	}
	return filepath.Join(cfg.ProjectRoot, cfg.Project.Registry.Artifact)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStoreAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),

	fs.NewChainStateStoreAdapter,
)

// ChainSet provides the backend for the active network
var ChainSet = wire.NewSet(
	ProvideBackend,
)

// ScenarioSet provides scenario loading
var ScenarioSet = wire.NewSet(
	scenario.NewLoaderAdapter,
	wire.Bind(new(usecase.ScenarioLoader), new(*scenario.LoaderAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),

	interactive.NewFuzzySuggester,
	wire.Bind(new(usecase.NameSuggester), new(*interactive.FuzzySuggester)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.ProvideNetworkResolver,
	adapterconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*adapterconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ChainSet,
	ScenarioSet,
	InteractiveSet,
	ConfigSet,
)
