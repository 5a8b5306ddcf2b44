package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/registry"
)

// QuotePriceParams contains parameters for quoting registration prices
type QuotePriceParams struct {
	Registry RegistryRef
	Names    []string
}

// Quote is the price of one name. Invalid names carry Err instead of a price.
type Quote struct {
	Name      string
	Price     *big.Int
	Available bool
	Err       error
}

// QuotePriceResult contains one quote per requested name
type QuotePriceResult struct {
	TLD    string
	Quotes []Quote
}

// QuotePrice quotes registration prices
type QuotePrice struct {
	locator *ContractLocator
}

// NewQuotePrice creates a new QuotePrice use case
func NewQuotePrice(locator *ContractLocator) *QuotePrice {
	return &QuotePrice{locator: locator}
}

// Run executes the use case
func (uc *QuotePrice) Run(ctx context.Context, params QuotePriceParams) (*QuotePriceResult, error) {
	contract, err := uc.locator.Registry(ctx, params.Registry)
	if err != nil {
		return nil, err
	}
	tld, err := contract.TLD(ctx)
	if err != nil {
		return nil, err
	}

	result := &QuotePriceResult{TLD: tld}
	for _, name := range params.Names {
		quote := Quote{Name: name}
		quote.Price, err = contract.Price(ctx, name)
		if err != nil {
			if registry.KindOf(err) == "" {
				return nil, err
			}
			quote.Err = err
			result.Quotes = append(result.Quotes, quote)
			continue
		}

		owner, err := contract.GetAddress(ctx, name)
		if err != nil {
			return nil, err
		}
		quote.Available = owner == (common.Address{})
		result.Quotes = append(result.Quotes, quote)
	}
	return result, nil
}
