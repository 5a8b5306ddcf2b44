package cli

import (
	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var params usecase.RegisterDomainParams

	cmd := &cobra.Command{
		Use:     "register <name>",
		Aliases: []string{"mint"},
		Short:   "Register a name",
		Long: `Register a name for the signer. Names are 3 to 10 lowercase letters or
digits and are given without the suffix.

The payment defaults to the quoted price. Paying less reverts; paying more
keeps the excess in the registry.`,
		Example: `  # Register twice.mus for account 0
  domains register twice

  # Register from account 1 paying 0.5 ETH
  domains register spotify --from 1 --value 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Name = args[0]
			result, err := app.RegisterDomain.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderRegister(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.From, "from", "", "Signer: account index or address")
	cmd.Flags().StringVar(&params.Value, "value", "", "Payment in ETH (defaults to the price)")
	addRegistryFlags(cmd, &params.Registry)

	return cmd
}

// NewSetRecordCmd creates the set-record command
func NewSetRecordCmd() *cobra.Command {
	var params usecase.SetRecordParams

	cmd := &cobra.Command{
		Use:   "set-record <name> <record>",
		Short: "Point a registered name at a record",
		Long: `Store a free-form record, such as a URL or handle, for a registered name.
The record policy in domains.toml decides who may do this: "owner" (the
default) allows only the name's owner, "open" allows anyone.`,
		Example: `  domains set-record twice spotify`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Name = args[0]
			params.Record = args[1]
			result, err := app.SetRecord.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderSetRecord(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.From, "from", "", "Signer: account index or address")
	addRegistryFlags(cmd, &params.Registry)

	return cmd
}
