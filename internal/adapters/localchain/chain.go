// Package localchain runs registry contracts on an in-process chain: accounts
// with native balances, one block per transaction, and a single lock that puts
// every call in one total order.
package localchain

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
)

const (
	DefaultChainID  = 31337
	DefaultAccounts = 10
)

// DefaultInitialBalance funds every development account with 10000 ether.
var DefaultInitialBalance = new(big.Int).Mul(big.NewInt(10000), big.NewInt(params.Ether))

// Config configures a new chain.
type Config struct {
	ChainID        uint64
	Mnemonic       string
	Accounts       int
	InitialBalance *big.Int
	// TxFee is charged to the sender of every mined transaction
	TxFee *big.Int
	// RegistryOptions apply to every registry deployed on the chain
	RegistryOptions []registry.Option
}

// Chain is an in-process, automining chain.
type Chain struct {
	mu sync.Mutex

	chainID  uint64
	fee      *big.Int
	regOpts  []registry.Option
	accounts []common.Address

	balances  map[common.Address]*big.Int
	nonces    map[common.Address]uint64
	block     uint64
	contracts map[common.Address]*registry.Registry
}

// New creates a chain with funded development accounts.
func New(cfg Config) (*Chain, error) {
	if cfg.ChainID == 0 {
		cfg.ChainID = DefaultChainID
	}
	if cfg.Mnemonic == "" {
		cfg.Mnemonic = DefaultMnemonic
	}
	if cfg.Accounts <= 0 {
		cfg.Accounts = DefaultAccounts
	}
	if cfg.InitialBalance == nil {
		cfg.InitialBalance = DefaultInitialBalance
	}
	if cfg.TxFee == nil {
		cfg.TxFee = new(big.Int)
	}

	accounts, err := DeriveAddresses(cfg.Mnemonic, cfg.Accounts)
	if err != nil {
		return nil, err
	}

	c := &Chain{
		chainID:   cfg.ChainID,
		fee:       new(big.Int).Set(cfg.TxFee),
		regOpts:   cfg.RegistryOptions,
		accounts:  accounts,
		balances:  make(map[common.Address]*big.Int, len(accounts)),
		nonces:    make(map[common.Address]uint64),
		contracts: make(map[common.Address]*registry.Registry),
	}
	for _, addr := range accounts {
		c.balances[addr] = new(big.Int).Set(cfg.InitialBalance)
	}
	return c, nil
}

func (c *Chain) ChainID() uint64 {
	return c.chainID
}

// Accounts returns the development accounts in derivation order.
func (c *Chain) Accounts() []common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]common.Address, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Chain) BlockNumber() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block
}

// BalanceAt returns the balance of an account, or the treasury of a registry
// contract.
func (c *Chain) BalanceAt(addr common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balanceOf(addr)
}

func (c *Chain) balanceOf(addr common.Address) *big.Int {
	if reg, ok := c.contracts[addr]; ok {
		return reg.Treasury()
	}
	if bal, ok := c.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// Deploy creates a registry for tld owned by from.
func (c *Chain) Deploy(from common.Address, tld string) (common.Address, *models.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.canPay(from, nil); err != nil {
		return common.Address{}, nil, err
	}

	reg, err := registry.New(tld, from, c.regOpts...)
	if err != nil {
		return common.Address{}, nil, err
	}

	addr := crypto.CreateAddress(from, c.nonces[from])
	c.contracts[addr] = reg
	receipt := c.commit(from, addr, nil, nil)
	return addr, receipt, nil
}

// Transact runs fn against the registry at to on behalf of from, sending
// value along. fn returns the amount the registry pays back to from. If fn
// fails, the transaction reverts and no balance, nonce or registry state
// changes.
func (c *Chain) Transact(from, to common.Address, value *big.Int, fn func(*registry.Registry) (*big.Int, error)) (*models.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reg, ok := c.contracts[to]
	if !ok {
		return nil, fmt.Errorf("no contract at %s: %w", to.Hex(), domain.ErrNotFound)
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("negative value: %w", domain.ErrInvalidAmount)
	}
	if err := c.canPay(from, value); err != nil {
		return nil, err
	}

	payout, err := fn(reg)
	if err != nil {
		return nil, err
	}
	return c.commit(from, to, value, payout), nil
}

// View runs a read-only fn against the registry at to.
func (c *Chain) View(to common.Address, fn func(*registry.Registry) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	reg, ok := c.contracts[to]
	if !ok {
		return fmt.Errorf("no contract at %s: %w", to.Hex(), domain.ErrNotFound)
	}
	return fn(reg)
}

func (c *Chain) canPay(from common.Address, value *big.Int) error {
	cost := new(big.Int).Set(c.fee)
	if value != nil {
		cost.Add(cost, value)
	}
	if bal := c.balanceOf(from); bal.Cmp(cost) < 0 {
		return fmt.Errorf("%s has %s wei, needs %s: %w", from.Hex(), bal, cost, domain.ErrInsufficientFunds)
	}
	return nil
}

// commit charges from, mines a block and returns the receipt. Callers hold
// the lock and have checked canPay.
func (c *Chain) commit(from, to common.Address, value, payout *big.Int) *models.Receipt {
	if value == nil {
		value = new(big.Int)
	}

	bal := c.balanceOf(from)
	bal.Sub(bal, value)
	bal.Sub(bal, c.fee)
	if payout != nil {
		bal.Add(bal, payout)
	}
	c.balances[from] = bal

	nonce := c.nonces[from]
	c.nonces[from] = nonce + 1
	c.block++

	return &models.Receipt{
		TxHash:      txHash(c.chainID, from, nonce),
		BlockNumber: c.block,
		From:        from,
		To:          to,
		Value:       new(big.Int).Set(value),
		Fee:         new(big.Int).Set(c.fee),
		Status:      types.ReceiptStatusSuccessful,
	}
}

func txHash(chainID uint64, from common.Address, nonce uint64) common.Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], chainID)
	binary.BigEndian.PutUint64(buf[8:], nonce)
	return crypto.Keccak256Hash(buf[:8], from.Bytes(), buf[8:])
}

// State is the persisted form of a chain.
type State struct {
	ChainID   uint64                               `json:"chainId"`
	Block     uint64                               `json:"block"`
	Accounts  []common.Address                     `json:"accounts"`
	Balances  map[common.Address]*hexutil.Big      `json:"balances"`
	Nonces    map[common.Address]uint64            `json:"nonces"`
	Contracts map[common.Address]registry.Snapshot `json:"contracts"`
}

// State copies the full chain state.
func (c *Chain) State() *State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &State{
		ChainID:   c.chainID,
		Block:     c.block,
		Accounts:  append([]common.Address(nil), c.accounts...),
		Balances:  make(map[common.Address]*hexutil.Big, len(c.balances)),
		Nonces:    make(map[common.Address]uint64, len(c.nonces)),
		Contracts: make(map[common.Address]registry.Snapshot, len(c.contracts)),
	}
	for addr, bal := range c.balances {
		s.Balances[addr] = (*hexutil.Big)(new(big.Int).Set(bal))
	}
	for addr, nonce := range c.nonces {
		s.Nonces[addr] = nonce
	}
	for addr, reg := range c.contracts {
		s.Contracts[addr] = reg.Snapshot()
	}
	return s
}

// Restore replaces the chain state with s.
func (c *Chain) Restore(s *State) error {
	if s.ChainID != 0 && s.ChainID != c.chainID {
		return fmt.Errorf("state belongs to chain %d, not %d", s.ChainID, c.chainID)
	}

	contracts := make(map[common.Address]*registry.Registry, len(s.Contracts))
	for addr, snap := range s.Contracts {
		reg, err := registry.FromSnapshot(snap)
		if err != nil {
			return fmt.Errorf("failed to restore contract %s: %w", addr.Hex(), err)
		}
		contracts[addr] = reg
	}

	balances := make(map[common.Address]*big.Int, len(s.Balances))
	for addr, bal := range s.Balances {
		if bal != nil {
			balances[addr] = new(big.Int).Set(bal.ToInt())
		}
	}
	nonces := make(map[common.Address]uint64, len(s.Nonces))
	for addr, nonce := range s.Nonces {
		nonces[addr] = nonce
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(s.Accounts) > 0 {
		c.accounts = append([]common.Address(nil), s.Accounts...)
	}
	c.block = s.Block
	c.balances = balances
	c.nonces = nonces
	c.contracts = contracts
	return nil
}
