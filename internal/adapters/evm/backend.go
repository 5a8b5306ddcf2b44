// Package evm serves networks reachable over EVM JSON-RPC, where the registry
// is a deployed Domains contract.
package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/usecase"
)

// Backend talks to one rpc network. The connection is opened on first use.
type Backend struct {
	network  *config.Network
	artifact string
	abi      abi.ABI
	log      *slog.Logger

	mu      sync.Mutex
	client  *client
	chainID *big.Int
	keys    []*ecdsa.PrivateKey
	addrs   []common.Address
}

// NewBackend creates a backend for network. artifact is the compiled Domains
// contract used by DeployRegistry and may be empty.
func NewBackend(network *config.Network, artifact string, log *slog.Logger) (*Backend, error) {
	if network.RPCURL == "" {
		return nil, fmt.Errorf("network %s has no rpc url", network.Name)
	}
	parsed, err := ParseDomainsABI()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		network:  network,
		artifact: artifact,
		abi:      parsed,
		log:      log.With("network", network.Name),
	}, nil
}

func (b *Backend) Network() *config.Network {
	return b.network
}

func (b *Backend) connect(ctx context.Context) (*client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client != nil {
		return b.client, nil
	}

	b.log.Debug("connecting", "url", b.network.RPCURL)
	raw, err := ethclient.DialContext(ctx, b.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	cl := newClient(raw, b.network.RateLimit, b.network.Burst)

	chainID, err := cl.ChainID(ctx)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if b.network.ChainID != 0 && chainID.Uint64() != b.network.ChainID {
		raw.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", b.network.ChainID, chainID.Uint64())
	}

	b.client = cl
	b.chainID = chainID
	return cl, nil
}

func (b *Backend) loadKeys() ([]common.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.addrs != nil {
		return b.addrs, nil
	}

	keys, addrs, err := parseKeys(b.network.PrivateKeys)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", b.network.Name, err)
	}
	b.keys = keys
	b.addrs = addrs
	return addrs, nil
}

func parseKeys(hexKeys []string) ([]*ecdsa.PrivateKey, []common.Address, error) {
	keys := make([]*ecdsa.PrivateKey, 0, len(hexKeys))
	addrs := make([]common.Address, 0, len(hexKeys))
	for i, k := range hexKeys {
		k = strings.TrimPrefix(strings.TrimSpace(k), "0x")
		if k == "" {
			return nil, nil, fmt.Errorf("account %d is empty, is its environment variable set?", i)
		}
		key, err := crypto.HexToECDSA(k)
		if err != nil {
			return nil, nil, fmt.Errorf("account %d is not a valid private key: %w", i, err)
		}
		keys = append(keys, key)
		addrs = append(addrs, crypto.PubkeyToAddress(key.PublicKey))
	}
	return keys, addrs, nil
}

func (b *Backend) transactor(ctx context.Context, from common.Address) (*bind.TransactOpts, error) {
	if _, err := b.loadKeys(); err != nil {
		return nil, err
	}
	if _, err := b.connect(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, addr := range b.addrs {
		if addr == from {
			opts, err := bind.NewKeyedTransactorWithChainID(b.keys[i], b.chainID)
			if err != nil {
				return nil, err
			}
			opts.Context = ctx
			return opts, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", from.Hex(), domain.ErrUnknownAccount)
}

func (b *Backend) ChainID(ctx context.Context) (uint64, error) {
	if _, err := b.connect(ctx); err != nil {
		return 0, err
	}
	return b.chainID.Uint64(), nil
}

func (b *Backend) Accounts(_ context.Context) ([]common.Address, error) {
	addrs, err := b.loadKeys()
	if err != nil {
		return nil, err
	}
	return append([]common.Address(nil), addrs...), nil
}

func (b *Backend) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	cl, err := b.connect(ctx)
	if err != nil {
		return nil, err
	}
	return cl.BalanceAt(ctx, address, nil)
}

func (b *Backend) DeployRegistry(ctx context.Context, from common.Address, tld string) (*models.Deployment, error) {
	if b.artifact == "" {
		return nil, fmt.Errorf("deploying on %s needs the compiled contract: set registry.artifact in domains.toml", b.network.Name)
	}
	artifact, err := LoadArtifact(b.artifact)
	if err != nil {
		return nil, err
	}

	opts, err := b.transactor(ctx, from)
	if err != nil {
		return nil, err
	}
	cl, err := b.connect(ctx)
	if err != nil {
		return nil, err
	}

	addr, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, cl, tld)
	if err != nil {
		return nil, decodeRevert(b.abi, "deploy", tld, err)
	}
	b.log.Debug("deployment sent", "tx", tx.Hash().Hex(), "address", addr.Hex())

	if _, err := bind.WaitDeployed(ctx, cl, tx); err != nil {
		return nil, fmt.Errorf("deployment %s failed: %w", tx.Hash().Hex(), err)
	}
	receipt, err := cl.TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployment receipt: %w", err)
	}

	return &models.Deployment{
		Network:     b.network.Name,
		ChainID:     b.chainID.Uint64(),
		Address:     addr,
		TLD:         tld,
		Deployer:    from,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		CreatedAt:   time.Now(),
	}, nil
}

func (b *Backend) Registry(ctx context.Context, address common.Address) (usecase.RegistryContract, error) {
	cl, err := b.connect(ctx)
	if err != nil {
		return nil, err
	}

	code, err := cl.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("no contract at %s: %w", address.Hex(), domain.ErrNotFound)
	}

	return &Contract{
		backend: b,
		address: address,
		bound:   bind.NewBoundContract(address, b.abi, cl, cl, cl),
	}, nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		b.client.Close()
		b.client = nil
	}
	return nil
}

// Contract is a Domains contract deployed on an rpc network
type Contract struct {
	backend *Backend
	address common.Address
	bound   *bind.BoundContract
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) call(ctx context.Context, op, name, method string, args ...interface{}) (interface{}, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, decodeRevert(c.backend.abi, op, name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned nothing", method)
	}
	return out[0], nil
}

// transact simulates the call first so reverts come back with their data,
// then sends it and waits until it is mined.
func (c *Contract) transact(ctx context.Context, from common.Address, value *big.Int, op, name, method string, args ...interface{}) (*models.Receipt, error) {
	opts, err := c.backend.transactor(ctx, from)
	if err != nil {
		return nil, err
	}
	cl, err := c.backend.connect(ctx)
	if err != nil {
		return nil, err
	}

	input, err := c.backend.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{From: from, To: &c.address, Value: value, Data: input}
	if _, err := cl.CallContract(ctx, msg, nil); err != nil {
		return nil, decodeRevert(c.backend.abi, op, name, err)
	}

	opts.Value = value
	tx, err := c.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, decodeRevert(c.backend.abi, op, name, err)
	}
	c.backend.log.Debug("transaction sent", "method", method, "tx", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, cl, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s %q: transaction %s: %w", op, name, tx.Hash().Hex(), domain.ErrReverted)
	}
	r := toReceipt(from, c.address, tx, receipt)
	r.URL = c.backend.explorerLink("tx", r.TxHash.Hex())
	return r, nil
}

// explorerLink returns <explorer>/<kind>/<id>, or "" when the network has no explorer
func (b *Backend) explorerLink(kind, id string) string {
	if b.network.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(b.network.ExplorerURL, "/") + "/" + kind + "/" + id
}

func toReceipt(from, to common.Address, tx *types.Transaction, receipt *types.Receipt) *models.Receipt {
	price := receipt.EffectiveGasPrice
	if price == nil {
		price = tx.GasPrice()
	}
	value := tx.Value()
	if value == nil {
		value = new(big.Int)
	}
	return &models.Receipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		From:        from,
		To:          to,
		Value:       value,
		Fee:         new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), price),
		Status:      receipt.Status,
	}
}

func (c *Contract) TLD(ctx context.Context) (string, error) {
	out, err := c.call(ctx, "tld", "", "tld")
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out, new(string)).(*string), nil
}

func (c *Contract) Owner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "owner", "", "owner")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out, new(common.Address)).(*common.Address), nil
}

func (c *Contract) Price(ctx context.Context, name string) (*big.Int, error) {
	out, err := c.call(ctx, "price", name, "price", name)
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out, new(big.Int)).(*big.Int), nil
}

func (c *Contract) Register(ctx context.Context, from common.Address, name string, value *big.Int) (*models.Receipt, error) {
	return c.transact(ctx, from, value, "register", name, "register", name)
}

func (c *Contract) SetRecord(ctx context.Context, from common.Address, name, record string) (*models.Receipt, error) {
	return c.transact(ctx, from, nil, "setRecord", name, "setRecord", name, record)
}

func (c *Contract) GetAddress(ctx context.Context, name string) (common.Address, error) {
	out, err := c.call(ctx, "getAddress", name, "getAddress", name)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out, new(common.Address)).(*common.Address), nil
}

func (c *Contract) GetRecord(ctx context.Context, name string) (string, error) {
	out, err := c.call(ctx, "getRecord", name, "getRecord", name)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out, new(string)).(*string), nil
}

func (c *Contract) Names(ctx context.Context) ([]string, error) {
	out, err := c.call(ctx, "getAllNames", "", "getAllNames")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out, new([]string)).(*[]string), nil
}

func (c *Contract) Withdraw(ctx context.Context, from common.Address) (*models.Receipt, error) {
	return c.transact(ctx, from, nil, "withdraw", "", "withdraw")
}

var (
	_ usecase.Backend          = (*Backend)(nil)
	_ usecase.RegistryContract = (*Contract)(nil)
)
