package casper

import (
	"context"
	"log/slog"
	"time"

	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// Prober checks whether a node answers by asking it for the latest state
// root hash
type Prober struct {
	timeout time.Duration
	log     *slog.Logger
}

var _ usecase.NodeProber = (*Prober)(nil)

// NewProber creates a new prober
func NewProber(cfg *config.RuntimeConfig, log *slog.Logger) *Prober {
	return &Prober{timeout: cfg.Timeout, log: log}
}

// Probe dials nodeURL and returns its state root hash
func (p *Prober) Probe(ctx context.Context, nodeURL string) (string, error) {
	client, err := Dial(nodeURL, p.timeout, p.log)
	if err != nil {
		return "", err
	}
	defer client.Close()

	return client.StateRootHash(ctx)
}
