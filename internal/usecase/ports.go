package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// StateQuerier reads global state from a node
type StateQuerier interface {
	// StateRootHash returns the latest state root hash
	StateRootHash(ctx context.Context) (string, error)
	// QueryContractValue reads the value stored under path in the named keys of contract
	QueryContractValue(ctx context.Context, stateRoot string, contract [32]byte, path []string) (clvalue.Value, error)
	// QueryDictionaryItem reads one entry of a dictionary owned by contract
	QueryDictionaryItem(ctx context.Context, stateRoot string, contract [32]byte, dictionary, itemKey string) (clvalue.Value, error)
}

// NodeProber checks whether a node other than the configured one answers
type NodeProber interface {
	Probe(ctx context.Context, nodeURL string) (string, error)
}

// DeploySubmitter sends prepared deploys to a node
type DeploySubmitter interface {
	PutDeploy(ctx context.Context, deploy *domain.Deploy) (string, error)
}

// Signer holds the account key that signs deploys
type Signer interface {
	// PublicKey returns domain.ErrNoSigningKey when no key is configured
	PublicKey() (domain.PublicKey, error)
	Sign(ctx context.Context, hash [32]byte) (domain.Approval, error)
}

// ProgramStore loads session programs by file name
type ProgramStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// ArgumentBuilder turns an entry point call into runtime arguments
type ArgumentBuilder interface {
	Build(call domain.Call, contract *domain.ContractReference) (*clvalue.Args, error)
}

// Clock supplies deploy timestamps
type Clock interface {
	Now() time.Time
}

// Confirmer asks the user before an irreversible action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Selector lets the user pick one of several options
type Selector interface {
	Select(ctx context.Context, prompt string, options []string) (int, error)
}

// Suggester proposes close matches for a mistyped name
type Suggester interface {
	Suggest(input string, candidates []string) []string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
