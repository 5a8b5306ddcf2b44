package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Domain is a registered (or looked up) name
type Domain struct {
	Name   string         `json:"name"`
	TLD    string         `json:"tld"`
	Owner  common.Address `json:"owner"`
	Record string         `json:"record,omitempty"`
}

// FullName returns name.tld
func (d *Domain) FullName() string {
	if d.TLD == "" {
		return d.Name
	}
	return d.Name + "." + d.TLD
}

// Registered reports whether the name has an owner
func (d *Domain) Registered() bool {
	return d.Owner != (common.Address{})
}

// Balance is the native currency balance of an account or contract
type Balance struct {
	Label   string         `json:"label"`
	Address common.Address `json:"address"`
	Wei     *big.Int       `json:"wei"`
}
