package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
)

// Backend is the chain a network runs on. Every transaction it sends is
// awaited until mined before the call returns.
type Backend interface {
	Network() *config.Network
	ChainID(ctx context.Context) (uint64, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
	DeployRegistry(ctx context.Context, from common.Address, tld string) (*models.Deployment, error)
	Registry(ctx context.Context, address common.Address) (RegistryContract, error)
	Close() error
}

// RegistryContract is a deployed Domains registry. Rejected calls return an
// error that wraps one of the registry package sentinels and change nothing.
type RegistryContract interface {
	Address() common.Address
	TLD(ctx context.Context) (string, error)
	Owner(ctx context.Context) (common.Address, error)
	Price(ctx context.Context, name string) (*big.Int, error)
	Register(ctx context.Context, from common.Address, name string, value *big.Int) (*models.Receipt, error)
	SetRecord(ctx context.Context, from common.Address, name, record string) (*models.Receipt, error)
	GetAddress(ctx context.Context, name string) (common.Address, error)
	GetRecord(ctx context.Context, name string) (string, error)
	Names(ctx context.Context) ([]string, error)
	Withdraw(ctx context.Context, from common.Address) (*models.Receipt, error)
}

// DeploymentStore handles persistence of registry deployments
type DeploymentStore interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	LatestDeployment(ctx context.Context, network string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error)
}

// LocalConfigStore handles persistence of per-checkout defaults
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, local *config.LocalConfig) error
	GetPath() string
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// ScenarioLoader loads scenarios by built-in name or file path
type ScenarioLoader interface {
	LoadScenario(ctx context.Context, ref string) (*models.Scenario, error)
	BuiltinScenarios() []string
}

// DeploymentSelector picks one of several recorded deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error)
}

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NameSuggester finds registered names close to a misspelled one
type NameSuggester interface {
	Suggest(name string, candidates []string) []string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	// Info reports a notice that is not part of the command's output
	Info(message string)
}
