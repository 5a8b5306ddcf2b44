package cli

import (
	"fmt"
	"strings"

	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// DefaultScenario is run when no scenario is named
const DefaultScenario = "run"

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		params  usecase.RunScenarioParams
		list    bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run a scripted scenario against a registry",
		Long: `Run a scenario: a YAML list of registry calls executed in order, each
awaited before the next. A step may declare the error it expects; any
other failure stops the run.

Scenarios are either built in (see --list) or read from a file.`,
		Example: `  # Deploy, register twice.mus and print its owner
  domains run

  # The rejected-call walkthrough
  domains run negative

  # A scenario file against the latest devnet registry
  domains run ./scenarios/airdrop.yaml -n devnet`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if list {
				names := app.Scenarios.BuiltinScenarios()
				if app.Config.JSON {
					return render.JSON(cmd.OutOrStdout(), names)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
				return nil
			}

			params.Ref = DefaultScenario
			if len(args) > 0 {
				params.Ref = args[0]
			}

			result, runErr := app.RunScenario.Run(cmd.Context(), params)
			if result == nil {
				return runErr
			}

			// Steps that ran are shown even when a later one failed
			if err := output(cmd, app, result, func() error {
				return render.NewScenarioRenderer(cmd.OutOrStdout(), verbose).Render(result)
			}); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List built-in scenarios")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show each call and its duration")
	addRegistryFlags(cmd, &params.Registry)

	return cmd
}
