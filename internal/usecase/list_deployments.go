package usecase

import (
	"context"
	"sort"

	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// All lists deployments of every network instead of the active one
	All bool
}

// DeploymentListResult contains deployments ordered by network, newest last
type DeploymentListResult struct {
	Network     string
	Deployments []*models.Deployment
}

// ListDeployments is the use case for listing recorded registry deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		store:  store,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	network := uc.config.Network.Name
	if params.All {
		network = ""
	}

	deployments, err := uc.store.ListDeployments(ctx, network)
	if err != nil {
		return nil, err
	}

	// Stable so recording order survives within a network
	sort.SliceStable(deployments, func(i, j int) bool {
		return deployments[i].Network < deployments[j].Network
	})

	return &DeploymentListResult{
		Network:     network,
		Deployments: deployments,
	}, nil
}
