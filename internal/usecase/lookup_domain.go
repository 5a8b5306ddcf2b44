package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain/models"
)

// LookupDomainParams contains parameters for looking up a name
type LookupDomainParams struct {
	Registry RegistryRef
	Name     string
}

// LookupDomainResult contains the owner and record of a name. Unregistered
// names resolve to the zero address and come with close matches.
type LookupDomainResult struct {
	Registry    common.Address
	Domain      *models.Domain
	Suggestions []string
}

// LookupDomain resolves a name to its owner and record
type LookupDomain struct {
	locator   *ContractLocator
	suggester NameSuggester
}

// NewLookupDomain creates a new LookupDomain use case
func NewLookupDomain(locator *ContractLocator, suggester NameSuggester) *LookupDomain {
	return &LookupDomain{
		locator:   locator,
		suggester: suggester,
	}
}

// Run executes the use case
func (uc *LookupDomain) Run(ctx context.Context, params LookupDomainParams) (*LookupDomainResult, error) {
	contract, err := uc.locator.Registry(ctx, params.Registry)
	if err != nil {
		return nil, err
	}
	tld, err := contract.TLD(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := contract.GetAddress(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	result := &LookupDomainResult{
		Registry: contract.Address(),
		Domain:   newDomain(params.Name, tld, owner, ""),
	}

	if result.Domain.Registered() {
		if result.Domain.Record, err = contract.GetRecord(ctx, params.Name); err != nil {
			return nil, err
		}
		return result, nil
	}

	names, err := contract.Names(ctx)
	if err != nil {
		return nil, err
	}
	result.Suggestions = uc.suggester.Suggest(params.Name, names)
	return result, nil
}
