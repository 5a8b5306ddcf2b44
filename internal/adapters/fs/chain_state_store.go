package fs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/musdomains/domains/internal/adapters/localchain"
	"github.com/musdomains/domains/internal/domain/config"
)

// ChainStateStoreAdapter keeps local chain snapshots in .domains/chains/<network>.json
type ChainStateStoreAdapter struct {
	dir string
}

// NewChainStateStoreAdapter creates a store under the project data dir
func NewChainStateStoreAdapter(cfg *config.RuntimeConfig) *ChainStateStoreAdapter {
	return &ChainStateStoreAdapter{
		dir: filepath.Join(cfg.DataDir, "chains"),
	}
}

func (s *ChainStateStoreAdapter) path(network string) string {
	return filepath.Join(s.dir, network+".json")
}

// LoadChainState returns nil when the network was never saved
func (s *ChainStateStoreAdapter) LoadChainState(_ context.Context, network string) (*localchain.State, error) {
	var state localchain.State
	found, err := readJSON(s.path(network), &state)
	if err != nil {
		return nil, fmt.Errorf("failed to load chain state: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

// SaveChainState writes the snapshot for network
func (s *ChainStateStoreAdapter) SaveChainState(_ context.Context, network string, state *localchain.State) error {
	return writeJSON(s.path(network), state)
}

// Ensure ChainStateStoreAdapter implements StateStore
var _ localchain.StateStore = (*ChainStateStoreAdapter)(nil)
