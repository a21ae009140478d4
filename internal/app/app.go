package app

import (
	"log/slog"

	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Binding   *usecase.ContractBinding
	Selector  usecase.Selector
	Suggester usecase.Suggester

	// Use cases
	ReadConfig        *usecase.ReadConfig
	ResolveDictionary *usecase.ResolveDictionary
	PrepareDeploy     *usecase.PrepareDeploy
	SendDeploy        *usecase.SendDeploy
	ListNetworks      *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	binding *usecase.ContractBinding,
	selector usecase.Selector,
	suggester usecase.Suggester,
	readConfig *usecase.ReadConfig,
	resolveDictionary *usecase.ResolveDictionary,
	prepareDeploy *usecase.PrepareDeploy,
	sendDeploy *usecase.SendDeploy,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		Binding:           binding,
		Selector:          selector,
		Suggester:         suggester,
		ReadConfig:        readConfig,
		ResolveDictionary: resolveDictionary,
		PrepareDeploy:     prepareDeploy,
		SendDeploy:        sendDeploy,
		ListNetworks:      listNetworks,
	}, nil
}
