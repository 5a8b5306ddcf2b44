package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/musdomains/domains/internal/usecase"
)

// DeploymentsRenderer renders recorded registry deployments
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders deployments grouped by network, latest marked
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		if result.Network != "" {
			fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network)
		} else {
			fmt.Fprintln(r.out, "No deployments found")
		}
		return nil
	}

	t := newTable("NETWORK", "ADDRESS", "TLD", "DEPLOYER", "BLOCK", "CREATED", "")
	for i, dep := range result.Deployments {
		latest := ""
		if i == len(result.Deployments)-1 || result.Deployments[i+1].Network != dep.Network {
			latest = amountStyle.Sprint("latest")
		}
		t.AppendRow(table.Row{
			dep.Network,
			addressStyle.Sprint(dep.Address.Hex()),
			"." + dep.TLD,
			dep.Deployer.Hex(),
			dep.BlockNumber,
			faintStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
			latest,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
