package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
)

// WithdrawTreasuryParams contains parameters for withdrawing registration fees
type WithdrawTreasuryParams struct {
	Registry RegistryRef
	From     string
	// Yes skips the confirmation prompt
	Yes bool
}

// WithdrawTreasuryResult contains balances around the withdrawal
type WithdrawTreasuryResult struct {
	Registry      common.Address
	To            common.Address
	Amount        *big.Int
	TreasuryAfter *big.Int
	BalanceBefore *big.Int
	BalanceAfter  *big.Int
	Receipt       *models.Receipt
}

// WithdrawTreasury moves the registry's balance to its owner
type WithdrawTreasury struct {
	config    *config.RuntimeConfig
	backend   Backend
	locator   *ContractLocator
	confirmer Confirmer
	sink      ProgressSink
}

// NewWithdrawTreasury creates a new WithdrawTreasury use case
func NewWithdrawTreasury(cfg *config.RuntimeConfig, backend Backend, locator *ContractLocator, confirmer Confirmer, sink ProgressSink) *WithdrawTreasury {
	return &WithdrawTreasury{
		config:    cfg,
		backend:   backend,
		locator:   locator,
		confirmer: confirmer,
		sink:      sink,
	}
}

// Run executes the use case
func (uc *WithdrawTreasury) Run(ctx context.Context, params WithdrawTreasuryParams) (*WithdrawTreasuryResult, error) {
	contract, err := uc.locator.Registry(ctx, params.Registry)
	if err != nil {
		return nil, err
	}
	from, err := uc.locator.Signer(ctx, params.From)
	if err != nil {
		return nil, err
	}

	treasury, err := uc.backend.BalanceAt(ctx, contract.Address())
	if err != nil {
		return nil, err
	}
	before, err := uc.backend.BalanceAt(ctx, from)
	if err != nil {
		return nil, err
	}

	if !params.Yes {
		if uc.config.NonInteractive {
			return nil, fmt.Errorf("%w: pass --yes to withdraw in non-interactive mode", domain.ErrCancelled)
		}
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Withdraw %s ETH from %s to %s", domain.FormatEther(treasury), contract.Address().Hex(), from.Hex()))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrCancelled
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "withdraw",
		Message: fmt.Sprintf("Withdrawing %s ETH", domain.FormatEther(treasury)),
		Spinner: true,
	})
	receipt, err := contract.Withdraw(ctx, from)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "withdraw"})
	if err != nil {
		return nil, err
	}

	result := &WithdrawTreasuryResult{
		Registry:      contract.Address(),
		To:            from,
		Amount:        treasury,
		BalanceBefore: before,
		Receipt:       receipt,
	}
	if result.TreasuryAfter, err = uc.backend.BalanceAt(ctx, contract.Address()); err != nil {
		return nil, err
	}
	if result.BalanceAfter, err = uc.backend.BalanceAt(ctx, from); err != nil {
		return nil, err
	}
	return result, nil
}
