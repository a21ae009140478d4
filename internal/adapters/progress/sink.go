package progress

import (
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// NewProgressSink picks the spinner for interactive runs and the no-op sink
// when output must stay machine readable
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON || cfg.YAML {
		return usecase.NopProgress{}
	}
	return NewSpinnerProgressReporter()
}
