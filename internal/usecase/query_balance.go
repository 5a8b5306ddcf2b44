package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
)

// RegistryBalanceRef selects the registry's own balance
const RegistryBalanceRef = "registry"

// QueryBalanceParams contains parameters for reading balances
type QueryBalanceParams struct {
	Registry RegistryRef
	// Of holds "registry", account indexes or addresses. Empty lists every
	// account plus the registry when one is deployed.
	Of []string
}

// QueryBalanceResult contains the requested balances in order
type QueryBalanceResult struct {
	Network  string
	Balances []models.Balance
}

// QueryBalance reads native balances of accounts and the registry
type QueryBalance struct {
	backend Backend
	locator *ContractLocator
}

// NewQueryBalance creates a new QueryBalance use case
func NewQueryBalance(backend Backend, locator *ContractLocator) *QueryBalance {
	return &QueryBalance{
		backend: backend,
		locator: locator,
	}
}

// Run executes the use case
func (uc *QueryBalance) Run(ctx context.Context, params QueryBalanceParams) (*QueryBalanceResult, error) {
	result := &QueryBalanceResult{Network: uc.backend.Network().Name}

	refs := params.Of
	if len(refs) == 0 {
		accounts, err := uc.backend.Accounts(ctx)
		if err != nil {
			return nil, err
		}
		for i, account := range accounts {
			balance, err := uc.backend.BalanceAt(ctx, account)
			if err != nil {
				return nil, err
			}
			result.Balances = append(result.Balances, models.Balance{Label: fmt.Sprintf("account %d", i), Address: account, Wei: balance})
		}

		balance, err := uc.registryBalance(ctx, params.Registry)
		if errors.Is(err, domain.ErrNotFound) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result.Balances = append(result.Balances, *balance)
		return result, nil
	}

	for _, ref := range refs {
		if strings.EqualFold(ref, RegistryBalanceRef) {
			balance, err := uc.registryBalance(ctx, params.Registry)
			if err != nil {
				return nil, err
			}
			result.Balances = append(result.Balances, *balance)
			continue
		}

		address, err := uc.locator.Address(ctx, ref)
		if err != nil {
			return nil, err
		}
		balance, err := uc.backend.BalanceAt(ctx, address)
		if err != nil {
			return nil, err
		}
		label := "account " + ref
		if common.IsHexAddress(ref) {
			label = "address"
		}
		result.Balances = append(result.Balances, models.Balance{Label: label, Address: address, Wei: balance})
	}
	return result, nil
}

func (uc *QueryBalance) registryBalance(ctx context.Context, ref RegistryRef) (*models.Balance, error) {
	contract, err := uc.locator.Registry(ctx, ref)
	if err != nil {
		return nil, err
	}
	balance, err := uc.backend.BalanceAt(ctx, contract.Address())
	if err != nil {
		return nil, err
	}
	return &models.Balance{Label: RegistryBalanceRef, Address: contract.Address(), Wei: balance}, nil
}
