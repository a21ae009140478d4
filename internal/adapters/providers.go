package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/casper"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/clock"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/fs"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/interactive"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/keys"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/progress"
	"github.com/trebuchet-org/cep78-cli/internal/adapters/runtimeargs"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// NodeSet provides the node RPC client
var NodeSet = wire.NewSet(
	casper.NewClient,
	wire.Bind(new(usecase.StateQuerier), new(*casper.Client)),
	wire.Bind(new(usecase.DeploySubmitter), new(*casper.Client)),

	casper.NewProber,
	wire.Bind(new(usecase.NodeProber), new(*casper.Prober)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewProgramStoreAdapter,
	wire.Bind(new(usecase.ProgramStore), new(*fs.ProgramStoreAdapter)),

	keys.NewFileSigner,
	wire.Bind(new(usecase.Signer), new(*keys.FileSigner)),
)

// DeploySet provides argument encoding and timestamps for deploys
var DeploySet = wire.NewSet(
	runtimeargs.NewBuilder,
	wire.Bind(new(usecase.ArgumentBuilder), new(*runtimeargs.Builder)),

	clock.NewSystemClock,
	wire.Bind(new(usecase.Clock), new(clock.SystemClock)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Selector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Suggester), new(*interactive.SelectorAdapter)),

	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	NodeSet,
	FSSet,
	DeploySet,
	InteractiveSet,
)
