package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain/models"
)

// ListDomainsParams contains parameters for listing names
type ListDomainsParams struct {
	Registry RegistryRef
	// Owner keeps only names held by this account index or address
	Owner string
}

// ListDomainsResult contains the registered names in registration order
type ListDomainsResult struct {
	Registry common.Address
	TLD      string
	Owner    common.Address
	Domains  []*models.Domain
}

// ListDomains lists every registered name with its owner and record
type ListDomains struct {
	locator *ContractLocator
	sink    ProgressSink
}

// NewListDomains creates a new ListDomains use case
func NewListDomains(locator *ContractLocator, sink ProgressSink) *ListDomains {
	return &ListDomains{
		locator: locator,
		sink:    sink,
	}
}

// Run executes the use case
func (uc *ListDomains) Run(ctx context.Context, params ListDomainsParams) (*ListDomainsResult, error) {
	contract, err := uc.locator.Registry(ctx, params.Registry)
	if err != nil {
		return nil, err
	}

	result := &ListDomainsResult{Registry: contract.Address()}
	if params.Owner != "" {
		if result.Owner, err = uc.locator.Address(ctx, params.Owner); err != nil {
			return nil, err
		}
	}
	if result.TLD, err = contract.TLD(ctx); err != nil {
		return nil, err
	}

	names, err := contract.Names(ctx)
	if err != nil {
		return nil, err
	}

	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "list"})
	for i, name := range names {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "list",
			Current: i + 1,
			Total:   len(names),
			Message: "Reading " + name,
			Spinner: true,
		})

		owner, err := contract.GetAddress(ctx, name)
		if err != nil {
			return nil, err
		}
		if params.Owner != "" && owner != result.Owner {
			continue
		}
		record, err := contract.GetRecord(ctx, name)
		if err != nil {
			return nil, err
		}
		result.Domains = append(result.Domains, newDomain(name, result.TLD, owner, record))
	}

	return result, nil
}
