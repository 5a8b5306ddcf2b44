package cli

import (
	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// NewWithdrawCmd creates the withdraw command
func NewWithdrawCmd() *cobra.Command {
	var params usecase.WithdrawTreasuryParams

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Move collected fees to the registry owner",
		Long: `Transfer the registry's whole balance to its owner. Only the account that
deployed the registry may withdraw.

Asks for confirmation unless --yes is given; with --non-interactive,
--yes is required.`,
		Example: `  domains withdraw --yes`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.WithdrawTreasury.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderWithdraw(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.From, "from", "", "Signer: account index or address")
	cmd.Flags().BoolVarP(&params.Yes, "yes", "y", false, "Skip the confirmation prompt")
	addRegistryFlags(cmd, &params.Registry)

	return cmd
}

// NewBalanceCmd creates the balance command
func NewBalanceCmd() *cobra.Command {
	var params usecase.QueryBalanceParams

	cmd := &cobra.Command{
		Use:   "balance [registry|account|address]...",
		Short: "Show ETH balances",
		Long: `Show balances of accounts, addresses or the registry. Without arguments
every account is listed, followed by the registry when one is deployed.`,
		Example: `  # Everything
  domains balance

  # The registry and account 0
  domains balance registry 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Of = args
			result, err := app.QueryBalance.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderBalances(result)
			})
		},
	}

	addRegistryFlags(cmd, &params.Registry)

	return cmd
}
