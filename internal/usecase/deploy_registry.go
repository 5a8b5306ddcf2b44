package usecase

import (
	"context"
	"fmt"
	"log/slog"

	internalconfig "github.com/musdomains/domains/internal/config"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
)

// DeployRegistryParams contains parameters for deploying a registry
type DeployRegistryParams struct {
	// TLD defaults to [registry].tld, then "mus"
	TLD string
	// From is the deployer: an account index or address
	From string
}

// DeployRegistryResult contains the result of deploying a registry
type DeployRegistryResult struct {
	Deployment *models.Deployment
	// Recorded is false on ephemeral networks, whose state ends with the process
	Recorded bool
}

// DeployRegistry deploys a new registry and records it for the network
type DeployRegistry struct {
	config      *config.RuntimeConfig
	backend     Backend
	locator     *ContractLocator
	deployments DeploymentStore
	sink        ProgressSink
	log         *slog.Logger
}

// NewDeployRegistry creates a new DeployRegistry use case
func NewDeployRegistry(
	cfg *config.RuntimeConfig,
	backend Backend,
	locator *ContractLocator,
	deployments DeploymentStore,
	sink ProgressSink,
	log *slog.Logger,
) *DeployRegistry {
	return &DeployRegistry{
		config:      cfg,
		backend:     backend,
		locator:     locator,
		deployments: deployments,
		sink:        sink,
		log:         log.With("component", "DeployRegistry"),
	}
}

// Run executes the use case
func (uc *DeployRegistry) Run(ctx context.Context, params DeployRegistryParams) (*DeployRegistryResult, error) {
	tld := params.TLD
	if tld == "" {
		tld = internalconfig.ResolveTLD(uc.config)
	}

	from, err := uc.locator.Signer(ctx, params.From)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "deploy",
		Message: fmt.Sprintf("Deploying .%s registry on %s", tld, uc.backend.Network().Name),
		Spinner: true,
	})
	deployment, err := uc.backend.DeployRegistry(ctx, from, tld)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "deploy"})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy registry: %w", err)
	}

	result := &DeployRegistryResult{Deployment: deployment}
	if uc.backend.Network().Ephemeral() {
		uc.sink.Info(fmt.Sprintf("%s is ephemeral: registry %s is not recorded and is gone when the command exits", deployment.Network, deployment.Address.Hex()))
		return result, nil
	}

	if err := uc.deployments.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("registry deployed at %s but could not be recorded: %w", deployment.Address.Hex(), err)
	}
	result.Recorded = true
	uc.log.Info("recorded deployment", "id", deployment.ID())

	return result, nil
}
