package models

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment represents a deployed registry contract
type Deployment struct {
	// Core identification
	Network string         `json:"network"`
	ChainID uint64         `json:"chainId"`
	Address common.Address `json:"address"`

	// Constructor argument
	TLD string `json:"tld"`

	// Creation transaction
	Deployer    common.Address `json:"deployer"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`

	// Metadata
	CreatedAt time.Time `json:"createdAt"`
}

// ID returns the unique key of the deployment, e.g. "localhost/0x5FbD..."
func (d *Deployment) ID() string {
	return fmt.Sprintf("%s/%s", d.Network, d.Address.Hex())
}
