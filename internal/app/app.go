package app

import (
	"log/slog"

	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Backend usecase.Backend
	Sink    usecase.ProgressSink

	// Registry use cases
	DeployRegistry   *usecase.DeployRegistry
	RegisterDomain   *usecase.RegisterDomain
	SetRecord        *usecase.SetRecord
	LookupDomain     *usecase.LookupDomain
	ListDomains      *usecase.ListDomains
	QuotePrice       *usecase.QuotePrice
	WithdrawTreasury *usecase.WithdrawTreasury
	QueryBalance     *usecase.QueryBalance
	RunScenario      *usecase.RunScenario

	// Management use cases
	ListNetworks    *usecase.ListNetworks
	ListDeployments *usecase.ListDeployments
	ShowConfig      *usecase.ShowConfig
	SetConfig       *usecase.SetConfig
	RemoveConfig    *usecase.RemoveConfig

	// Scenarios lists built-in scenario names for help output
	Scenarios usecase.ScenarioLoader
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	backend usecase.Backend,
	sink usecase.ProgressSink,
	deployRegistry *usecase.DeployRegistry,
	registerDomain *usecase.RegisterDomain,
	setRecord *usecase.SetRecord,
	lookupDomain *usecase.LookupDomain,
	listDomains *usecase.ListDomains,
	quotePrice *usecase.QuotePrice,
	withdrawTreasury *usecase.WithdrawTreasury,
	queryBalance *usecase.QueryBalance,
	runScenario *usecase.RunScenario,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	scenarios usecase.ScenarioLoader,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		Backend:          backend,
		Sink:             sink,
		DeployRegistry:   deployRegistry,
		RegisterDomain:   registerDomain,
		SetRecord:        setRecord,
		LookupDomain:     lookupDomain,
		ListDomains:      listDomains,
		QuotePrice:       quotePrice,
		WithdrawTreasury: withdrawTreasury,
		QueryBalance:     queryBalance,
		RunScenario:      runScenario,
		ListNetworks:     listNetworks,
		ListDeployments:  listDeployments,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
		Scenarios:        scenarios,
	}, nil
}
