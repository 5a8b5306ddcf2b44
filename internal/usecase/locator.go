package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/samber/lo"
)

// RegistryRef points at a registry: an explicit address, an interactive pick
// among recorded deployments, or (both empty) the latest deployment
type RegistryRef struct {
	Contract string
	Pick     bool
}

// ContractLocator resolves registries and signing accounts on the active network
type ContractLocator struct {
	config      *config.RuntimeConfig
	backend     Backend
	deployments DeploymentStore
	selector    DeploymentSelector
}

// NewContractLocator creates a new ContractLocator
func NewContractLocator(cfg *config.RuntimeConfig, backend Backend, deployments DeploymentStore, selector DeploymentSelector) *ContractLocator {
	return &ContractLocator{
		config:      cfg,
		backend:     backend,
		deployments: deployments,
		selector:    selector,
	}
}

// Registry returns the registry ref points at
func (l *ContractLocator) Registry(ctx context.Context, ref RegistryRef) (RegistryContract, error) {
	if ref.Contract != "" {
		if !common.IsHexAddress(ref.Contract) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, ref.Contract)
		}
		return l.backend.Registry(ctx, common.HexToAddress(ref.Contract))
	}

	network := l.backend.Network()
	noDeployment := domain.NoDeploymentErr{Network: network.Name, Ephemeral: network.Ephemeral()}

	if !ref.Pick {
		latest, err := l.deployments.LatestDeployment(ctx, network.Name)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, noDeployment
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load deployments: %w", err)
		}
		return l.backend.Registry(ctx, latest.Address)
	}

	deployments, err := l.deployments.ListDeployments(ctx, network.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployments: %w", err)
	}
	if len(deployments) == 0 {
		return nil, noDeployment
	}
	newestFirst := slices.Clone(deployments)
	slices.Reverse(newestFirst)
	selected, err := l.selector.SelectDeployment(ctx, newestFirst, "Select a registry")
	if err != nil {
		return nil, err
	}
	return l.backend.Registry(ctx, selected.Address)
}

// Signer resolves ref to one of the backend's accounts. An empty ref falls
// back to the configured default signer, then to account 0.
func (l *ContractLocator) Signer(ctx context.Context, ref string) (common.Address, error) {
	if ref == "" {
		ref = l.config.From
	}
	if ref == "" {
		ref = "0"
	}

	accounts, err := l.backend.Accounts(ctx)
	if err != nil {
		return common.Address{}, err
	}

	addr, err := l.account(accounts, ref)
	if err != nil {
		return common.Address{}, err
	}
	if !lo.Contains(accounts, addr) {
		return common.Address{}, fmt.Errorf("%w: %s cannot sign on %s", domain.ErrUnknownAccount, addr.Hex(), l.backend.Network().Name)
	}
	return addr, nil
}

// Address resolves an account index or any address
func (l *ContractLocator) Address(ctx context.Context, ref string) (common.Address, error) {
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	accounts, err := l.backend.Accounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return l.account(accounts, ref)
}

func (l *ContractLocator) account(accounts []common.Address, ref string) (common.Address, error) {
	ref = strings.TrimSpace(ref)
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	index, err := strconv.Atoi(ref)
	if err != nil {
		if strings.HasPrefix(ref, "0x") {
			return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, ref)
		}
		return common.Address{}, fmt.Errorf("%w: %q is neither an account index nor an address", domain.ErrUnknownAccount, ref)
	}
	if index < 0 || index >= len(accounts) {
		return common.Address{}, fmt.Errorf("%w: index %d (%d accounts available)", domain.ErrUnknownAccount, index, len(accounts))
	}
	return accounts[index], nil
}

// newDomain builds a domain view from registry reads
func newDomain(name, tld string, owner common.Address, record string) *models.Domain {
	return &models.Domain{Name: name, TLD: tld, Owner: owner, Record: record}
}
