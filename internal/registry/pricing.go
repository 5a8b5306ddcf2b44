package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// DefaultFee is the registration price of a name without a length tier: 0.1 ether.
var DefaultFee = new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(10))

// Pricing decides how much a name costs to register.
type Pricing struct {
	// Base applies to every name whose length has no tier
	Base *big.Int
	// Tiers maps an exact name length to its price
	Tiers map[int]*big.Int
}

// FlatPricing charges fee for every name.
func FlatPricing(fee *big.Int) Pricing {
	return Pricing{Base: new(big.Int).Set(fee)}
}

// DefaultPricing is a flat DefaultFee.
func DefaultPricing() Pricing {
	return FlatPricing(DefaultFee)
}

// PriceOf returns a copy of the price for name. The caller validates the name.
func (p Pricing) PriceOf(name string) *big.Int {
	if tier, ok := p.Tiers[len(name)]; ok && tier != nil {
		return new(big.Int).Set(tier)
	}
	if p.Base == nil {
		return new(big.Int).Set(DefaultFee)
	}
	return new(big.Int).Set(p.Base)
}

func (p Pricing) clone() Pricing {
	out := Pricing{}
	if p.Base != nil {
		out.Base = new(big.Int).Set(p.Base)
	}
	if len(p.Tiers) > 0 {
		out.Tiers = make(map[int]*big.Int, len(p.Tiers))
		for length, price := range p.Tiers {
			if price != nil {
				out.Tiers[length] = new(big.Int).Set(price)
			}
		}
	}
	return out
}
