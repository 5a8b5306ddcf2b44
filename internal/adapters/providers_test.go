package adapters

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/musdomains/domains/internal/adapters/evm"
	"github.com/musdomains/domains/internal/adapters/fs"
	"github.com/musdomains/domains/internal/adapters/localchain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideBackend(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := t.TempDir()

	newCfg := func(network *config.Network, project *config.ProjectConfig) *config.RuntimeConfig {
		return &config.RuntimeConfig{
			ProjectRoot: root,
			DataDir:     filepath.Join(root, ".domains"),
			Network:     network,
			Project:     project,
		}
	}

	t.Run("local", func(t *testing.T) {
		cfg := newCfg(&config.Network{Name: "hardhat", Type: config.NetworkTypeLocal}, &config.ProjectConfig{})
		backend, cleanup, err := ProvideBackend(cfg, fs.NewChainStateStoreAdapter(cfg), log)
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &localchain.Backend{}, backend)
	})

	t.Run("local with bad registry settings", func(t *testing.T) {
		cfg := newCfg(&config.Network{Name: "hardhat", Type: config.NetworkTypeLocal}, &config.ProjectConfig{
			Registry: config.RegistryConfig{Fee: "free"},
		})
		_, _, err := ProvideBackend(cfg, fs.NewChainStateStoreAdapter(cfg), log)
		assert.ErrorContains(t, err, "registry.fee")
	})

	t.Run("rpc dials lazily", func(t *testing.T) {
		cfg := newCfg(&config.Network{Name: "mumbai", Type: config.NetworkTypeRPC, RPCURL: "http://127.0.0.1:1", ChainID: 80001}, &config.ProjectConfig{})
		backend, cleanup, err := ProvideBackend(cfg, fs.NewChainStateStoreAdapter(cfg), log)
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &evm.Backend{}, backend)
	})

	t.Run("no network", func(t *testing.T) {
		cfg := newCfg(nil, nil)
		_, _, err := ProvideBackend(cfg, fs.NewChainStateStoreAdapter(cfg), log)
		assert.Error(t, err)
	})
}

func TestProvideArtifactPath(t *testing.T) {
	cfg := &config.RuntimeConfig{ProjectRoot: "/work", Project: &config.ProjectConfig{}}
	assert.Empty(t, ProvideArtifactPath(cfg))

	cfg.Project.Registry.Artifact = "artifacts/Domains.json"
	assert.Equal(t, filepath.Join("/work", "artifacts/Domains.json"), ProvideArtifactPath(cfg))

	cfg.Project.Registry.Artifact = "/abs/Domains.json"
	assert.Equal(t, "/abs/Domains.json", ProvideArtifactPath(cfg))
}
