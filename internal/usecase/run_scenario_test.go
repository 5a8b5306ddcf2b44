package usecase_test

import (
	"context"
	"testing"

	"github.com/musdomains/domains/internal/adapters/scenario"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/registry"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockScenarioLoader is a mock implementation of ScenarioLoader
type MockScenarioLoader struct {
	mock.Mock
}

func (m *MockScenarioLoader) LoadScenario(ctx context.Context, ref string) (*models.Scenario, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scenario), args.Error(1)
}

func (m *MockScenarioLoader) BuiltinScenarios() []string {
	return m.Called().Get(0).([]string)
}

func newRunScenario(e *env, loader usecase.ScenarioLoader) *usecase.RunScenario {
	deploy := usecase.NewDeployRegistry(e.cfg, e.backend, e.locator, e.deployments, e.sink, progressLogger())
	return usecase.NewRunScenario(e.backend, loader, e.locator, deploy, e.sink, progressLogger())
}

func outputs(result *usecase.RunScenarioResult) []string {
	var lines []string
	for _, step := range result.Steps {
		lines = append(lines, step.Output)
	}
	return lines
}

func TestRunScenarioBuiltins(t *testing.T) {
	ctx := context.Background()

	t.Run("deploy", func(t *testing.T) {
		e := newEnv(t, false)
		result, err := newRunScenario(e, scenario.NewLoaderAdapter()).Run(ctx, usecase.RunScenarioParams{Ref: "deploy"})
		require.NoError(t, err)

		addr := result.Registry.Hex()
		assert.Equal(t, []string{
			"Contract deployed to: " + addr,
			"Minted domain twice.mus",
			"Set record for twice.mus",
			"Owner of domain twice: " + e.accounts[0].Hex(),
			"Contract balance: 0.1",
		}, outputs(result))
	})

	t.Run("run", func(t *testing.T) {
		e := newEnv(t, false)
		result, err := newRunScenario(e, scenario.NewLoaderAdapter()).Run(ctx, usecase.RunScenarioParams{Ref: "run"})
		require.NoError(t, err)

		lines := outputs(result)
		assert.Equal(t, "Contract deployed by: "+e.accounts[0].Hex(), lines[1])
		assert.Equal(t, "Contract balance: 0.1", lines[len(lines)-1])
	})

	t.Run("negative", func(t *testing.T) {
		e := newEnv(t, false)
		before, err := e.backend.BalanceAt(ctx, e.accounts[0])
		require.NoError(t, err)

		result, err := newRunScenario(e, scenario.NewLoaderAdapter()).Run(ctx, usecase.RunScenarioParams{Ref: "negative"})
		require.NoError(t, err)

		var expected []registry.Kind
		for _, step := range result.Steps {
			assert.False(t, step.Failed(), step.Step.String())
			if step.Expected {
				expected = append(expected, registry.KindOf(step.Err))
			}
		}
		assert.Equal(t, []registry.Kind{registry.KindAlreadyRegistered, registry.KindInvalidName, registry.KindUnauthorized}, expected)

		lines := outputs(result)
		assert.Equal(t, "Contract balance: 0.1", lines[3])
		assert.Equal(t, "Contract balance: 0.1", lines[5])
		assert.Equal(t, "Contract balance: 0.0", lines[len(lines)-2])

		// the owner paid 0.1 to register and got it back
		after, err := e.backend.BalanceAt(ctx, e.accounts[0])
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestRunScenarioOutcomes(t *testing.T) {
	ctx := context.Background()

	run := func(t *testing.T, steps ...models.ScenarioStep) (*usecase.RunScenarioResult, error) {
		t.Helper()
		e := newEnv(t, false)
		loader := new(MockScenarioLoader)
		loader.On("LoadScenario", ctx, "custom").Return(&models.Scenario{Name: "custom", Steps: steps}, nil)
		return newRunScenario(e, loader).Run(ctx, usecase.RunScenarioParams{Ref: "custom"})
	}
	deploy := models.ScenarioStep{Action: models.ActionDeploy, TLD: "mus"}

	t.Run("expected failure that succeeds", func(t *testing.T) {
		result, err := run(t, deploy, models.ScenarioStep{Action: models.ActionRegister, Name: "abc", Expect: "InvalidName"})

		var unexpected domain.UnexpectedOutcomeErr
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, "InvalidName", unexpected.Expected)
		assert.Nil(t, unexpected.Err)
		require.Len(t, result.Steps, 2)
		assert.True(t, result.Steps[1].Failed())
	})

	t.Run("wrong failure kind", func(t *testing.T) {
		_, err := run(t, deploy, models.ScenarioStep{Action: models.ActionRegister, Name: "abc", Value: "0.01", Expect: "AlreadyRegistered"})
		assert.ErrorIs(t, err, registry.ErrInsufficientPayment)
		assert.ErrorContains(t, err, "expected AlreadyRegistered")
	})

	t.Run("unexpected failure stops the run", func(t *testing.T) {
		result, err := run(t,
			deploy,
			models.ScenarioStep{Action: models.ActionWithdraw, From: "1"},
			models.ScenarioStep{Action: models.ActionBalance, Of: "registry"},
		)
		assert.ErrorIs(t, err, registry.ErrUnauthorized)
		assert.Len(t, result.Steps, 2)
	})

	t.Run("custom labels and default price", func(t *testing.T) {
		result, err := run(t,
			deploy,
			models.ScenarioStep{Action: models.ActionRegister, Name: "abc"},
			models.ScenarioStep{Action: models.ActionPrice, Name: "abc", Say: "costs"},
			models.ScenarioStep{Action: models.ActionGetRecord, Name: "abc"},
		)
		require.NoError(t, err)
		assert.Equal(t, "costs 0.1", result.Steps[2].Output)
		assert.Equal(t, "Record of domain abc:", result.Steps[3].Output)
	})

	t.Run("recorded registry is announced", func(t *testing.T) {
		e := newEnv(t, true)
		dep := e.deploy(t)
		loader := new(MockScenarioLoader)
		loader.On("LoadScenario", ctx, "lookup").Return(&models.Scenario{Name: "lookup", Steps: []models.ScenarioStep{
			{Action: models.ActionGetAddress, Name: "abc"},
			{Action: models.ActionGetRecord, Name: "abc"},
		}}, nil)

		result, err := newRunScenario(e, loader).Run(ctx, usecase.RunScenarioParams{Ref: "lookup"})
		require.NoError(t, err)
		assert.Equal(t, dep.Address, result.Registry)
		assert.Equal(t, []string{"Using registry " + dep.Address.Hex() + " (.mus)"}, e.sink.notices)
	})

	t.Run("no deployment to target", func(t *testing.T) {
		_, err := run(t, models.ScenarioStep{Action: models.ActionGetAddress, Name: "abc"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
