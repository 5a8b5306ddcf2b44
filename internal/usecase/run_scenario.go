package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
)

// RunScenarioParams contains parameters for running a scenario
type RunScenarioParams struct {
	// Ref is a built-in scenario name or a YAML file path
	Ref string
	// Registry is used by steps that run before any deploy step
	Registry RegistryRef
}

// RunScenarioResult contains every executed step. On failure it holds the
// steps up to and including the failing one.
type RunScenarioResult struct {
	Scenario *models.Scenario
	Network  string
	Registry common.Address
	Steps    []*models.StepResult
}

// RunScenario executes a scenario step by step, awaiting each call
type RunScenario struct {
	backend Backend
	loader  ScenarioLoader
	locator *ContractLocator
	deploy  *DeployRegistry
	sink    ProgressSink
	log     *slog.Logger
}

// NewRunScenario creates a new RunScenario use case
func NewRunScenario(backend Backend, loader ScenarioLoader, locator *ContractLocator, deploy *DeployRegistry, sink ProgressSink, log *slog.Logger) *RunScenario {
	return &RunScenario{
		backend: backend,
		loader:  loader,
		locator: locator,
		deploy:  deploy,
		sink:    sink,
		log:     log.With("component", "RunScenario"),
	}
}

// scenarioState is the registry the remaining steps talk to
type scenarioState struct {
	contract RegistryContract
	tld      string
}

// Run executes the use case
func (uc *RunScenario) Run(ctx context.Context, params RunScenarioParams) (*RunScenarioResult, error) {
	scenario, err := uc.loader.LoadScenario(ctx, params.Ref)
	if err != nil {
		return nil, err
	}

	result := &RunScenarioResult{
		Scenario: scenario,
		Network:  uc.backend.Network().Name,
	}
	state := &scenarioState{}
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "scenario"})

	for i, step := range scenario.Steps {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "scenario",
			Current: i + 1,
			Total:   len(scenario.Steps),
			Message: step.String(),
			Spinner: true,
		})

		started := time.Now()
		output, receipt, stepErr := uc.execute(ctx, state, params.Registry, step)
		stepResult := &models.StepResult{
			Index:    i,
			Step:     step,
			Output:   output,
			Receipt:  receipt,
			Duration: time.Since(started),
		}
		if state.contract != nil {
			result.Registry = state.contract.Address()
		}
		result.Steps = append(result.Steps, stepResult)

		if err := checkOutcome(step, stepErr); err != nil {
			stepResult.Err = err
			stepResult.Error = err.Error()
			return result, err
		}
		if stepErr != nil {
			stepResult.Err = stepErr
			stepResult.Error = stepErr.Error()
			stepResult.Expected = true
			uc.log.Debug("step failed as expected", "step", step.String(), "kind", step.Expect)
		}
	}

	return result, nil
}

// checkOutcome compares a step error with the step's expectation
func checkOutcome(step models.ScenarioStep, err error) error {
	if step.Expect == "" {
		if err != nil {
			return domain.UnexpectedOutcomeErr{Step: step.String(), Err: err}
		}
		return nil
	}

	kind, parseErr := registry.ParseKind(step.Expect)
	if parseErr != nil {
		return parseErr
	}
	if err == nil {
		return domain.UnexpectedOutcomeErr{Step: step.String(), Expected: string(kind)}
	}
	if registry.KindOf(err) != kind {
		return domain.UnexpectedOutcomeErr{Step: step.String(), Expected: string(kind), Err: err}
	}
	return nil
}

func (uc *RunScenario) target(ctx context.Context, state *scenarioState, ref RegistryRef) (RegistryContract, string, error) {
	if state.contract == nil {
		contract, err := uc.locator.Registry(ctx, ref)
		if err != nil {
			return nil, "", err
		}
		tld, err := contract.TLD(ctx)
		if err != nil {
			return nil, "", err
		}
		state.contract, state.tld = contract, tld
		uc.sink.Info(fmt.Sprintf("Using registry %s (.%s)", contract.Address().Hex(), tld))
	}
	return state.contract, state.tld, nil
}

// execute performs one step and returns the line it prints
func (uc *RunScenario) execute(ctx context.Context, state *scenarioState, ref RegistryRef, step models.ScenarioStep) (string, *models.Receipt, error) {
	if step.Action == models.ActionDeploy {
		deployed, err := uc.deploy.Run(ctx, DeployRegistryParams{TLD: step.TLD, From: step.From})
		if err != nil {
			return "", nil, err
		}
		contract, err := uc.backend.Registry(ctx, deployed.Deployment.Address)
		if err != nil {
			return "", nil, err
		}
		state.contract, state.tld = contract, deployed.Deployment.TLD
		return say(step, "Contract deployed to:", contract.Address().Hex()), nil, nil
	}

	if step.Action == models.ActionBalance && !strings.EqualFold(step.Of, RegistryBalanceRef) {
		address, err := uc.locator.Address(ctx, step.Of)
		if err != nil {
			return "", nil, err
		}
		balance, err := uc.backend.BalanceAt(ctx, address)
		if err != nil {
			return "", nil, err
		}
		return say(step, fmt.Sprintf("Balance of %s:", address.Hex()), domain.FormatEther(balance)), nil, nil
	}

	contract, tld, err := uc.target(ctx, state, ref)
	if err != nil {
		return "", nil, err
	}
	full := step.Name + "." + tld

	switch step.Action {
	case models.ActionOwner:
		owner, err := contract.Owner(ctx)
		if err != nil {
			return "", nil, err
		}
		return say(step, "Contract deployed by:", owner.Hex()), nil, nil

	case models.ActionRegister:
		from, err := uc.locator.Signer(ctx, step.From)
		if err != nil {
			return "", nil, err
		}
		value, err := uc.value(ctx, contract, step)
		if err != nil {
			return "", nil, err
		}
		receipt, err := contract.Register(ctx, from, step.Name, value)
		if err != nil {
			return "", nil, err
		}
		return say(step, "Minted domain "+full, ""), receipt, nil

	case models.ActionSetRecord:
		from, err := uc.locator.Signer(ctx, step.From)
		if err != nil {
			return "", nil, err
		}
		receipt, err := contract.SetRecord(ctx, from, step.Name, step.Record)
		if err != nil {
			return "", nil, err
		}
		return say(step, "Set record for "+full, ""), receipt, nil

	case models.ActionGetAddress:
		owner, err := contract.GetAddress(ctx, step.Name)
		if err != nil {
			return "", nil, err
		}
		return say(step, fmt.Sprintf("Owner of domain %s:", step.Name), owner.Hex()), nil, nil

	case models.ActionGetRecord:
		record, err := contract.GetRecord(ctx, step.Name)
		if err != nil {
			return "", nil, err
		}
		return say(step, fmt.Sprintf("Record of domain %s:", step.Name), record), nil, nil

	case models.ActionPrice:
		price, err := contract.Price(ctx, step.Name)
		if err != nil {
			return "", nil, err
		}
		return say(step, fmt.Sprintf("Price of domain %s:", step.Name), domain.FormatEther(price)), nil, nil

	case models.ActionWithdraw:
		from, err := uc.locator.Signer(ctx, step.From)
		if err != nil {
			return "", nil, err
		}
		amount, err := uc.backend.BalanceAt(ctx, contract.Address())
		if err != nil {
			return "", nil, err
		}
		receipt, err := contract.Withdraw(ctx, from)
		if err != nil {
			return "", nil, err
		}
		return say(step, "Withdrew from contract:", domain.FormatEther(amount)), receipt, nil

	case models.ActionBalance:
		balance, err := uc.backend.BalanceAt(ctx, contract.Address())
		if err != nil {
			return "", nil, err
		}
		return say(step, "Contract balance:", domain.FormatEther(balance)), nil, nil
	}

	return "", nil, fmt.Errorf("unsupported action %q", step.Action)
}

// value is the step's payment, or the quoted price when none is given
func (uc *RunScenario) value(ctx context.Context, contract RegistryContract, step models.ScenarioStep) (*big.Int, error) {
	if step.Value != "" {
		return domain.ParseEther(step.Value)
	}
	return contract.Price(ctx, step.Name)
}

// say renders "label value", with the step's own label when it has one
func say(step models.ScenarioStep, label, value string) string {
	if step.Say != "" {
		label = step.Say
	}
	if value == "" {
		return label
	}
	return label + " " + value
}
