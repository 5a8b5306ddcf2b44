package localchain

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

type memoryStore struct {
	states  map[string]*State
	saves   int
	loads   int
	loadCtx context.Context
}

func (m *memoryStore) LoadChainState(ctx context.Context, network string) (*State, error) {
	m.loads++
	m.loadCtx = ctx
	return m.states[network], nil
}

func (m *memoryStore) SaveChainState(_ context.Context, network string, state *State) error {
	if m.states == nil {
		m.states = make(map[string]*State)
	}
	m.states[network] = state
	m.saves++
	return nil
}

func TestBackendRegistryFlow(t *testing.T) {
	ctx := context.Background()
	network := &config.Network{Name: "hardhat", Type: config.NetworkTypeLocal, AccountCount: 2}
	b, err := Open(network, nil, nil, nil)
	require.NoError(t, err)

	accounts, err := b.Accounts(ctx)
	require.NoError(t, err)
	owner, other := accounts[0], accounts[1]

	dep, err := b.DeployRegistry(ctx, owner, "mus")
	require.NoError(t, err)
	assert.Equal(t, "hardhat", dep.Network)
	assert.Equal(t, owner, dep.Deployer)
	assert.Equal(t, "mus", dep.TLD)

	reg, err := b.Registry(ctx, dep.Address)
	require.NoError(t, err)

	tld, err := reg.TLD(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mus", tld)

	price, err := reg.Price(ctx, "twice")
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultFee, price)

	_, err = reg.Price(ctx, "2")
	assert.ErrorIs(t, err, registry.ErrInvalidName)

	_, err = reg.Register(ctx, owner, "twice", price)
	require.NoError(t, err)
	_, err = reg.Register(ctx, other, "twice", ether(1))
	assert.ErrorIs(t, err, registry.ErrAlreadyRegistered)

	_, err = reg.SetRecord(ctx, owner, "twice", "https://example.com")
	require.NoError(t, err)

	got, err := reg.GetAddress(ctx, "twice")
	require.NoError(t, err)
	assert.Equal(t, owner, got)
	record, err := reg.GetRecord(ctx, "twice")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", record)

	missing, err := reg.GetAddress(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, missing)

	_, err = reg.Withdraw(ctx, other)
	assert.ErrorIs(t, err, registry.ErrUnauthorized)
	_, err = reg.Withdraw(ctx, owner)
	require.NoError(t, err)

	bal, err := b.BalanceAt(ctx, dep.Address)
	require.NoError(t, err)
	assert.Zero(t, bal.Sign())

	_, err = b.Registry(ctx, common.HexToAddress("0xdead"))
	assert.Error(t, err)
}

func TestBackendPersistence(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	network := &config.Network{Name: "devnet", Type: config.NetworkTypeLocal, Persist: true, AccountCount: 1}

	b, err := Open(network, nil, store, nil)
	require.NoError(t, err)
	accounts, _ := b.Accounts(ctx)
	dep, err := b.DeployRegistry(ctx, accounts[0], "mus")
	require.NoError(t, err)
	reg, err := b.Registry(ctx, dep.Address)
	require.NoError(t, err)
	_, err = reg.Register(ctx, accounts[0], "twice", registry.DefaultFee)
	require.NoError(t, err)
	_, err = reg.Register(ctx, accounts[0], "twice", registry.DefaultFee)
	require.Error(t, err)

	assert.Equal(t, 2, store.saves, "reverted calls are not saved")

	reopened, err := Open(network, nil, store, nil)
	require.NoError(t, err)
	reg, err = reopened.Registry(ctx, dep.Address)
	require.NoError(t, err)
	owner, err := reg.GetAddress(ctx, "twice")
	require.NoError(t, err)
	assert.Equal(t, accounts[0], owner)
}

func TestBackendEphemeralSkipsStore(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	network := &config.Network{Name: "hardhat", Type: config.NetworkTypeLocal, AccountCount: 1}

	b, err := Open(network, nil, store, nil)
	require.NoError(t, err)
	accounts, _ := b.Accounts(ctx)
	_, err = b.DeployRegistry(ctx, accounts[0], "mus")
	require.NoError(t, err)

	assert.Zero(t, store.saves)
}

func TestOpenRejectsBadAmounts(t *testing.T) {
	_, err := Open(&config.Network{Name: "x", Type: config.NetworkTypeLocal, TxFee: "abc"}, nil, nil, nil)
	assert.Error(t, err)

	_, err = Open(&config.Network{Name: "x", Type: config.NetworkTypeLocal, InitialBalance: "-1"}, nil, nil, nil)
	assert.Error(t, err)
}

func TestBackendLoadsStateOnFirstUse(t *testing.T) {
	store := &memoryStore{}
	network := &config.Network{Name: "devnet", Type: config.NetworkTypeLocal, Persist: true, AccountCount: 1}

	b, err := Open(network, nil, store, nil)
	require.NoError(t, err)
	assert.Zero(t, store.loads)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Accounts(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.loads)

	ctx := context.WithValue(context.Background(), ctxKey{}, "first")
	_, err = b.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads)
	assert.Equal(t, "first", store.loadCtx.Value(ctxKey{}))

	_, err = b.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads)
}
