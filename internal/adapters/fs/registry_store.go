package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/domain/models"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/samber/lo"
)

// DeploymentsFile lists every recorded registry deployment
const DeploymentsFile = "deployments.json"

type deploymentsFile struct {
	Deployments []*models.Deployment `json:"deployments"`
}

// DeploymentStoreAdapter keeps deployments in .domains/deployments.json
type DeploymentStoreAdapter struct {
	path string
	mu   sync.Mutex
}

// NewDeploymentStoreAdapter creates a store under the project data dir
func NewDeploymentStoreAdapter(cfg *config.RuntimeConfig) *DeploymentStoreAdapter {
	return &DeploymentStoreAdapter{
		path: filepath.Join(cfg.DataDir, DeploymentsFile),
	}
}

func (s *DeploymentStoreAdapter) load() (*deploymentsFile, error) {
	var file deploymentsFile
	if _, err := readJSON(s.path, &file); err != nil {
		return nil, err
	}
	file.Deployments = lo.Compact(file.Deployments)
	return &file, nil
}

// SaveDeployment records a deployment, replacing an earlier one with the same ID
func (s *DeploymentStoreAdapter) SaveDeployment(_ context.Context, deployment *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	id := deployment.ID()
	file.Deployments = lo.Reject(file.Deployments, func(d *models.Deployment, _ int) bool {
		return d.ID() == id
	})
	file.Deployments = append(file.Deployments, deployment)

	if err := writeJSON(s.path, file); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// LatestDeployment returns the most recently saved deployment on network
func (s *DeploymentStoreAdapter) LatestDeployment(ctx context.Context, network string) (*models.Deployment, error) {
	deployments, err := s.ListDeployments(ctx, network)
	if err != nil {
		return nil, err
	}
	if len(deployments) == 0 {
		return nil, domain.NoDeploymentErr{Network: network}
	}
	return deployments[len(deployments)-1], nil
}

// ListDeployments returns deployments in save order; an empty network matches all
func (s *DeploymentStoreAdapter) ListDeployments(_ context.Context, network string) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	if network == "" {
		return file.Deployments, nil
	}
	return lo.Filter(file.Deployments, func(d *models.Deployment, _ int) bool {
		return d.Network == network
	}), nil
}

// Ensure DeploymentStoreAdapter implements DeploymentStore
var _ usecase.DeploymentStore = (*DeploymentStoreAdapter)(nil)
