//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/musdomains/domains/internal/adapters"
	"github.com/musdomains/domains/internal/config"
	"github.com/musdomains/domains/internal/logging"
	"github.com/musdomains/domains/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance. The returned cleanup closes the backend.
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,

		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewContractLocator,
		usecase.NewDeployRegistry,
		usecase.NewRegisterDomain,
		usecase.NewSetRecord,
		usecase.NewLookupDomain,
		usecase.NewListDomains,
		usecase.NewQuotePrice,
		usecase.NewWithdrawTreasury,
		usecase.NewQueryBalance,
		usecase.NewRunScenario,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil, nil
}
