package cli

import (
	"context"
	"fmt"

	"github.com/musdomains/domains/internal/adapters/progress"
	"github.com/musdomains/domains/internal/app"
	"github.com/musdomains/domains/internal/cli/render"
	"github.com/musdomains/domains/internal/config"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipInit lists commands that run without a project or chain
var skipInit = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command. The returned func releases the app
// and must run after Execute, also when the command failed.
func NewRootCmd() (*cobra.Command, func()) {
	var release []func()
	closeApp := func() {
		for i := len(release) - 1; i >= 0; i-- {
			release[i]()
		}
		release = nil
	}

	rootCmd := &cobra.Command{
		Use:   "domains",
		Short: "Register and resolve names on a Domains registry",
		Long: `Domains deploys a name registry contract and lets accounts register
names under its suffix (twice.mus), point them at a record and withdraw
the collected fees.

Local networks run an in-process chain; rpc networks talk to a node.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipInit[cmd.Name()] {
				return nil
			}

			projectRoot, _, err := config.FindProjectRoot(".")
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink = progress.NewSpinnerProgressReporter()
			if v.GetBool("json") || v.GetBool("non_interactive") {
				sink = progress.NewNopSink()
			}

			appInstance, cleanup, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			release = append(release, cleanup)

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				release = append(release, cancel)
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., hardhat, mumbai)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort commands after this long (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Registry Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewRegisterCmd(),
		NewSetRecordCmd(),
		NewLookupCmd(),
		NewListCmd(),
		NewPriceCmd(),
		NewWithdrawCmd(),
		NewBalanceCmd(),
		NewRunCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewNetworksCmd(),
		NewDeploymentsCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd, closeApp
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// output writes result as JSON when --json is set and through text otherwise
func output(cmd *cobra.Command, app *app.App, result interface{}, text func() error) error {
	if app.Config.JSON {
		return render.JSON(cmd.OutOrStdout(), result)
	}
	return text()
}

// addRegistryFlags adds the flags that pick the registry a command talks to
func addRegistryFlags(cmd *cobra.Command, ref *usecase.RegistryRef) {
	cmd.Flags().StringVar(&ref.Contract, "contract", "", "Registry address (defaults to the latest deployment on the network)")
	cmd.Flags().BoolVar(&ref.Pick, "pick", false, "Choose among the recorded deployments interactively")
}
