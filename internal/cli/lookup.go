package cli

import (
	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// NewLookupCmd creates the lookup command
func NewLookupCmd() *cobra.Command {
	var params usecase.LookupDomainParams

	cmd := &cobra.Command{
		Use:     "lookup <name>",
		Aliases: []string{"get-address", "address"},
		Short:   "Show the owner and record of a name",
		Long: `Show the owner and record of a name. Unregistered names resolve to the
zero address; similar registered names are suggested.`,
		Example: `  domains lookup twice`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Name = args[0]
			result, err := app.LookupDomain.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderLookup(result)
			})
		},
	}

	addRegistryFlags(cmd, &params.Registry)

	return cmd
}

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var params usecase.ListDomainsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered names",
		Example: `  # Every name in the registry
  domains list

  # Names held by account 1
  domains list --owner 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDomains.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderDomains(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.Owner, "owner", "", "Only names held by this account index or address")
	addRegistryFlags(cmd, &params.Registry)

	return cmd
}

// NewPriceCmd creates the price command
func NewPriceCmd() *cobra.Command {
	var params usecase.QuotePriceParams

	cmd := &cobra.Command{
		Use:     "price <name>...",
		Aliases: []string{"quote"},
		Short:   "Quote registration prices",
		Example: `  domains price twice abc spotify`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Names = args
			result, err := app.QuotePrice.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewRegistryRenderer(cmd.OutOrStdout()).RenderQuotes(result)
			})
		},
	}

	addRegistryFlags(cmd, &params.Registry)

	return cmd
}
