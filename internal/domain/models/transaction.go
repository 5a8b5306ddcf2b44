package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Receipt is the outcome of a mined transaction
type Receipt struct {
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	Value       *big.Int       `json:"value"`
	// Fee is gas used times the effective gas price
	Fee    *big.Int `json:"fee"`
	Status uint64   `json:"status"`
	// URL is the transaction page on the network's block explorer, if any
	URL string `json:"url,omitempty"`
}

// Succeeded reports whether the transaction executed without reverting
func (r *Receipt) Succeeded() bool {
	return r.Status == types.ReceiptStatusSuccessful
}
