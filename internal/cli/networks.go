package cli

import (
	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in networks and those configured in domains.toml. The
current network is marked; networks that fail to resolve show why.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return output(cmd, app, render.NetworkViews(result), func() error {
				return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
			})
		},
	}
}

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var params usecase.ListDeploymentsParams

	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "List recorded registry deployments",
		Long: `List the registries recorded in .domains/deployments.json for the current
network, or for every network with --all. The latest deployment of a network
is the default registry of its commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
			})
		},
	}

	cmd.Flags().BoolVarP(&params.All, "all", "a", false, "Include every network")

	return cmd
}
