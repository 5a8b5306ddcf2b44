package cli

import (
	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var params usecase.DeployRegistryParams

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a new registry",
		Long: `Deploy a new registry contract. The deployer becomes its owner and the
only account allowed to withdraw fees.

Deployments on persistent networks are recorded in .domains/deployments.json
and become the default registry of later commands.`,
		Example: `  # Deploy a .mus registry from account 0
  domains deploy

  # Deploy a .dev registry from account 2 on devnet
  domains deploy --tld dev --from 2 -n devnet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployRegistry.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderDeploy(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.TLD, "tld", "", "Suffix of the registry's names (default from domains.toml, then \"mus\")")
	cmd.Flags().StringVar(&params.From, "from", "", "Deployer: account index or address")

	return cmd
}
