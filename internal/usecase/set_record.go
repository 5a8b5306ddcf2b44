package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain/models"
)

// SetRecordParams contains parameters for setting a record
type SetRecordParams struct {
	Registry RegistryRef
	From     string
	Name     string
	Record   string
}

// SetRecordResult contains the result of setting a record
type SetRecordResult struct {
	Registry common.Address
	Domain   *models.Domain
	Receipt  *models.Receipt
}

// SetRecord stores a record for a registered name
type SetRecord struct {
	locator *ContractLocator
	sink    ProgressSink
}

// NewSetRecord creates a new SetRecord use case
func NewSetRecord(locator *ContractLocator, sink ProgressSink) *SetRecord {
	return &SetRecord{
		locator: locator,
		sink:    sink,
	}
}

// Run executes the use case
func (uc *SetRecord) Run(ctx context.Context, params SetRecordParams) (*SetRecordResult, error) {
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

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "set-record",
		Message: fmt.Sprintf("Setting record for %s.%s", params.Name, tld),
		Spinner: true,
	})
	receipt, err := contract.SetRecord(ctx, from, params.Name, params.Record)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "set-record"})
	if err != nil {
		return nil, err
	}

	owner, err := contract.GetAddress(ctx, params.Name)
	if err != nil {
		return nil, err
	}

	return &SetRecordResult{
		Registry: contract.Address(),
		Domain:   newDomain(params.Name, tld, owner, params.Record),
		Receipt:  receipt,
	}, nil
}
