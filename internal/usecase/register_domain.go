package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
)

// RegisterDomainParams contains parameters for registering a name
type RegisterDomainParams struct {
	Registry RegistryRef
	From     string
	Name     string
	// Value is the payment in ether; empty pays the quoted price
	Value string
}

// RegisterDomainResult contains the result of registering a name
type RegisterDomainResult struct {
	Registry common.Address
	Domain   *models.Domain
	Price    *big.Int
	Paid     *big.Int
	Receipt  *models.Receipt
}

// RegisterDomain registers a name for the signer
type RegisterDomain struct {
	locator *ContractLocator
	sink    ProgressSink
}

// NewRegisterDomain creates a new RegisterDomain use case
func NewRegisterDomain(locator *ContractLocator, sink ProgressSink) *RegisterDomain {
	return &RegisterDomain{
		locator: locator,
		sink:    sink,
	}
}

// Run executes the use case
func (uc *RegisterDomain) Run(ctx context.Context, params RegisterDomainParams) (*RegisterDomainResult, error) {
	contract, err := uc.locator.Registry(ctx, params.Registry)
	if err != nil {
		return nil, err
	}
	from, err := uc.locator.Signer(ctx, params.From)
	if err != nil {
		return nil, err
	}
	tld, err := contract.TLD(ctx)
	if err != nil {
		return nil, err
	}

	price, err := contract.Price(ctx, params.Name)
	if err != nil {
		// report a failed quote as the register call the user asked for
		var opErr *registry.OpError
		if errors.As(err, &opErr) {
			return nil, &registry.OpError{Op: "register", Name: params.Name, Err: opErr.Err}
		}
		return nil, err
	}
	paid := price
	if params.Value != "" {
		if paid, err = domain.ParseEther(params.Value); err != nil {
			return nil, err
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "register",
		Message: fmt.Sprintf("Registering %s.%s for %s ETH", params.Name, tld, domain.FormatEther(paid)),
		Spinner: true,
	})
	receipt, err := contract.Register(ctx, from, params.Name, paid)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "register"})
	if err != nil {
		return nil, err
	}

	return &RegisterDomainResult{
		Registry: contract.Address(),
		Domain:   newDomain(params.Name, tld, from, ""),
		Price:    price,
		Paid:     paid,
		Receipt:  receipt,
	}, nil
}
