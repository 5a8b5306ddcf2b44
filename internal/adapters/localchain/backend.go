package localchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
	"github.com/musdomains/domains/internal/usecase"
)

// StateStore persists chain state between runs
type StateStore interface {
	// LoadChainState returns nil, nil when the network has no saved state
	LoadChainState(ctx context.Context, network string) (*State, error)
	SaveChainState(ctx context.Context, network string, state *State) error
}

// Backend serves a local network from an in-process Chain
type Backend struct {
	network *config.Network
	chain   *Chain
	store   StateStore
	log     *slog.Logger

	mu     sync.Mutex
	loaded bool
}

// Open creates the chain for network. Unless the network is ephemeral, its
// saved state is restored from store on first use.
func Open(network *config.Network, regOpts []registry.Option, store StateStore, log *slog.Logger) (*Backend, error) {
	cfg := Config{
		ChainID:         network.ChainID,
		Mnemonic:        network.Mnemonic,
		Accounts:        network.AccountCount,
		RegistryOptions: regOpts,
	}
	if network.InitialBalance != "" {
		bal, err := domain.ParseEther(network.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid initial_balance for %s: %w", network.Name, err)
		}
		cfg.InitialBalance = bal
	}
	if network.TxFee != "" {
		fee, err := domain.ParseEther(network.TxFee)
		if err != nil {
			return nil, fmt.Errorf("invalid tx_fee for %s: %w", network.Name, err)
		}
		cfg.TxFee = fee
	}

	chain, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return NewBackend(network, chain, store, log), nil
}

// NewBackend wraps chain. A nil store or an ephemeral network disables persistence.
func NewBackend(network *config.Network, chain *Chain, store StateStore, log *slog.Logger) *Backend {
	if log == nil {
		log = slog.Default()
	}
	b := &Backend{
		network: network,
		chain:   chain,
		log:     log.With("network", network.Name),
	}
	if !network.Ephemeral() {
		b.store = store
	}
	return b
}

// ready restores saved state once, under the context of the first call.
// A failed load is retried by the next call.
func (b *Backend) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded || b.store == nil {
		return nil
	}

	state, err := b.store.LoadChainState(ctx, b.network.Name)
	if err != nil {
		return err
	}
	if state != nil {
		if err := b.chain.Restore(state); err != nil {
			return fmt.Errorf("failed to restore %s: %w", b.network.Name, err)
		}
		b.log.Debug("restored chain state", "block", state.Block, "contracts", len(state.Contracts))
	}
	b.loaded = true
	return nil
}

func (b *Backend) Network() *config.Network {
	return b.network
}

func (b *Backend) ChainID(ctx context.Context) (uint64, error) {
	if err := b.ready(ctx); err != nil {
		return 0, err
	}
	return b.chain.ChainID(), nil
}

func (b *Backend) Accounts(ctx context.Context) ([]common.Address, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	return b.chain.Accounts(), nil
}

func (b *Backend) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	return b.chain.BalanceAt(address), nil
}

func (b *Backend) DeployRegistry(ctx context.Context, from common.Address, tld string) (*models.Deployment, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}

	addr, receipt, err := b.chain.Deploy(from, tld)
	if err != nil {
		return nil, err
	}
	b.log.Debug("deployed registry", "address", addr.Hex(), "tld", tld, "block", receipt.BlockNumber)

	if err := b.save(ctx); err != nil {
		return nil, err
	}

	return &models.Deployment{
		Network:     b.network.Name,
		ChainID:     b.chain.ChainID(),
		Address:     addr,
		TLD:         tld,
		Deployer:    from,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		CreatedAt:   time.Now(),
	}, nil
}

func (b *Backend) Registry(ctx context.Context, address common.Address) (usecase.RegistryContract, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	if err := b.chain.View(address, func(*registry.Registry) error { return nil }); err != nil {
		return nil, err
	}
	return &Contract{backend: b, address: address}, nil
}

func (b *Backend) Close() error {
	return nil
}

func (b *Backend) save(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	if err := b.store.SaveChainState(ctx, b.network.Name, b.chain.State()); err != nil {
		return fmt.Errorf("failed to save chain state: %w", err)
	}
	return nil
}

func (b *Backend) transact(ctx context.Context, from, to common.Address, value *big.Int, fn func(*registry.Registry) (*big.Int, error)) (*models.Receipt, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	receipt, err := b.chain.Transact(from, to, value, fn)
	if err != nil {
		b.log.Debug("transaction reverted", "from", from.Hex(), "error", err)
		return nil, err
	}
	b.log.Debug("transaction mined", "hash", receipt.TxHash.Hex(), "block", receipt.BlockNumber)
	if err := b.save(ctx); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (b *Backend) view(ctx context.Context, to common.Address, fn func(*registry.Registry) error) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.chain.View(to, fn)
}

// Contract is a registry deployed on a local chain
type Contract struct {
	backend *Backend
	address common.Address
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) TLD(ctx context.Context) (tld string, err error) {
	err = c.backend.view(ctx, c.address, func(r *registry.Registry) error {
		tld = r.TLD()
		return nil
	})
	return tld, err
}

func (c *Contract) Owner(ctx context.Context) (owner common.Address, err error) {
	err = c.backend.view(ctx, c.address, func(r *registry.Registry) error {
		owner = r.Owner()
		return nil
	})
	return owner, err
}

func (c *Contract) Price(ctx context.Context, name string) (price *big.Int, err error) {
	err = c.backend.view(ctx, c.address, func(r *registry.Registry) error {
		var perr error
		price, perr = r.Price(name)
		return perr
	})
	return price, err
}

func (c *Contract) Register(ctx context.Context, from common.Address, name string, value *big.Int) (*models.Receipt, error) {
	return c.backend.transact(ctx, from, c.address, value, func(r *registry.Registry) (*big.Int, error) {
		return nil, r.Register(from, name, value)
	})
}

func (c *Contract) SetRecord(ctx context.Context, from common.Address, name, record string) (*models.Receipt, error) {
	return c.backend.transact(ctx, from, c.address, nil, func(r *registry.Registry) (*big.Int, error) {
		return nil, r.SetRecord(from, name, record)
	})
}

func (c *Contract) GetAddress(ctx context.Context, name string) (owner common.Address, err error) {
	err = c.backend.view(ctx, c.address, func(r *registry.Registry) error {
		owner = r.GetAddress(name)
		return nil
	})
	return owner, err
}

func (c *Contract) GetRecord(ctx context.Context, name string) (record string, err error) {
	err = c.backend.view(ctx, c.address, func(r *registry.Registry) error {
		record = r.GetRecord(name)
		return nil
	})
	return record, err
}

func (c *Contract) Names(ctx context.Context) (names []string, err error) {
	err = c.backend.view(ctx, c.address, func(r *registry.Registry) error {
		names = r.Names()
		return nil
	})
	return names, err
}

func (c *Contract) Withdraw(ctx context.Context, from common.Address) (*models.Receipt, error) {
	return c.backend.transact(ctx, from, c.address, nil, func(r *registry.Registry) (*big.Int, error) {
		return r.Withdraw(from)
	})
}

var (
	_ usecase.Backend          = (*Backend)(nil)
	_ usecase.RegistryContract = (*Contract)(nil)
)
