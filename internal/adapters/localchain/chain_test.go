package localchain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

func newTestChain(t *testing.T, cfg Config) (*Chain, []common.Address) {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c, c.Accounts()
}

func register(name string, from common.Address, value *big.Int) func(*registry.Registry) (*big.Int, error) {
	return func(r *registry.Registry) (*big.Int, error) {
		return nil, r.Register(from, name, value)
	}
}

func TestDeriveAddresses(t *testing.T) {
	first, err := DeriveAddresses(DefaultMnemonic, 3)
	require.NoError(t, err)
	second, err := DeriveAddresses(DefaultMnemonic, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.NotEqual(t, first[0], first[1])
	assert.NotEqual(t, first[1], first[2])

	// Same accounts as Hardhat and anvil
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), first[0])
	assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), first[1])
	assert.Equal(t, common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"), first[2])

	_, err = DeriveAddresses("not a valid mnemonic", 1)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	c, accounts := newTestChain(t, Config{})

	assert.Equal(t, uint64(DefaultChainID), c.ChainID())
	assert.Len(t, accounts, DefaultAccounts)
	for _, acc := range accounts {
		assert.Equal(t, DefaultInitialBalance, c.BalanceAt(acc))
	}
	assert.Zero(t, c.BlockNumber())
}

func TestDeploy(t *testing.T) {
	c, accounts := newTestChain(t, Config{Accounts: 2})

	addr, receipt, err := c.Deploy(accounts[0], "mus")
	require.NoError(t, err)

	assert.NotEqual(t, common.Address{}, addr)
	assert.Equal(t, uint64(1), receipt.BlockNumber)
	assert.True(t, receipt.Succeeded())
	assert.Zero(t, c.BalanceAt(addr).Sign())

	again, _, err := c.Deploy(accounts[0], "mus")
	require.NoError(t, err)
	assert.NotEqual(t, addr, again, "nonce advances the contract address")

	_, _, err = c.Deploy(accounts[1], "MUS")
	assert.Error(t, err)
	assert.Equal(t, uint64(2), c.BlockNumber())
}

func TestTransact(t *testing.T) {
	t.Run("payment moves to the contract", func(t *testing.T) {
		c, accounts := newTestChain(t, Config{Accounts: 2})
		addr, _, err := c.Deploy(accounts[0], "mus")
		require.NoError(t, err)

		receipt, err := c.Transact(accounts[1], addr, registry.DefaultFee, register("twice", accounts[1], registry.DefaultFee))
		require.NoError(t, err)

		assert.Equal(t, registry.DefaultFee, receipt.Value)
		assert.Equal(t, registry.DefaultFee, c.BalanceAt(addr))
		assert.Equal(t, new(big.Int).Sub(DefaultInitialBalance, registry.DefaultFee), c.BalanceAt(accounts[1]))
	})

	t.Run("revert changes nothing", func(t *testing.T) {
		c, accounts := newTestChain(t, Config{Accounts: 2, TxFee: big.NewInt(1000)})
		addr, _, err := c.Deploy(accounts[0], "mus")
		require.NoError(t, err)
		_, err = c.Transact(accounts[0], addr, registry.DefaultFee, register("twice", accounts[0], registry.DefaultFee))
		require.NoError(t, err)

		before := c.State()
		_, err = c.Transact(accounts[1], addr, ether(1), register("twice", accounts[1], ether(1)))

		assert.ErrorIs(t, err, registry.ErrAlreadyRegistered)
		assert.Equal(t, before, c.State())
	})

	t.Run("fee is charged on success", func(t *testing.T) {
		fee := big.NewInt(21000)
		c, accounts := newTestChain(t, Config{Accounts: 1, TxFee: fee})
		addr, receipt, err := c.Deploy(accounts[0], "mus")
		require.NoError(t, err)
		assert.Equal(t, fee, receipt.Fee)

		_, err = c.Transact(accounts[0], addr, registry.DefaultFee, register("twice", accounts[0], registry.DefaultFee))
		require.NoError(t, err)

		spent := new(big.Int).Add(registry.DefaultFee, new(big.Int).Mul(fee, big.NewInt(2)))
		assert.Equal(t, new(big.Int).Sub(DefaultInitialBalance, spent), c.BalanceAt(accounts[0]))
	})

	t.Run("sender must cover value and fee", func(t *testing.T) {
		c, accounts := newTestChain(t, Config{Accounts: 2, InitialBalance: ether(1)})
		addr, _, err := c.Deploy(accounts[0], "mus")
		require.NoError(t, err)

		_, err = c.Transact(accounts[1], addr, ether(2), register("twice", accounts[1], ether(2)))

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, ether(1), c.BalanceAt(accounts[1]))
	})

	t.Run("unknown contract", func(t *testing.T) {
		c, accounts := newTestChain(t, Config{Accounts: 1})

		_, err := c.Transact(accounts[0], common.HexToAddress("0x1234"), nil, register("twice", accounts[0], nil))

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestWithdrawPayout(t *testing.T) {
	c, accounts := newTestChain(t, Config{Accounts: 2})
	owner, other := accounts[0], accounts[1]
	addr, _, err := c.Deploy(owner, "mus")
	require.NoError(t, err)
	_, err = c.Transact(other, addr, registry.DefaultFee, register("twice", other, registry.DefaultFee))
	require.NoError(t, err)

	withdraw := func(from common.Address) func(*registry.Registry) (*big.Int, error) {
		return func(r *registry.Registry) (*big.Int, error) {
			return r.Withdraw(from)
		}
	}

	_, err = c.Transact(other, addr, nil, withdraw(other))
	assert.ErrorIs(t, err, registry.ErrUnauthorized)
	assert.Equal(t, registry.DefaultFee, c.BalanceAt(addr))

	_, err = c.Transact(owner, addr, nil, withdraw(owner))
	require.NoError(t, err)
	assert.Zero(t, c.BalanceAt(addr).Sign())
	assert.Equal(t, new(big.Int).Add(DefaultInitialBalance, registry.DefaultFee), c.BalanceAt(owner))
}

func TestStateRestore(t *testing.T) {
	c, accounts := newTestChain(t, Config{Accounts: 2})
	addr, _, err := c.Deploy(accounts[0], "mus")
	require.NoError(t, err)
	_, err = c.Transact(accounts[1], addr, registry.DefaultFee, register("twice", accounts[1], registry.DefaultFee))
	require.NoError(t, err)

	fresh, _ := newTestChain(t, Config{Accounts: 2})
	require.NoError(t, fresh.Restore(c.State()))

	assert.Equal(t, c.State(), fresh.State())
	assert.Equal(t, c.BlockNumber(), fresh.BlockNumber())
	require.NoError(t, fresh.View(addr, func(r *registry.Registry) error {
		assert.Equal(t, accounts[1], r.GetAddress("twice"))
		return nil
	}))

	other, _ := newTestChain(t, Config{ChainID: 1, Accounts: 2})
	assert.Error(t, other.Restore(c.State()))
}
