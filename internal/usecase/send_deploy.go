package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

// SendDeploy submits a prepared deploy to the node. It sends once and does
// not wait for execution.
type SendDeploy struct {
	submitter DeploySubmitter
	confirmer Confirmer
	progress  ProgressSink
	config    *config.RuntimeConfig
	log       *slog.Logger
}

// NewSendDeploy creates a new send deploy use case
func NewSendDeploy(
	submitter DeploySubmitter,
	confirmer Confirmer,
	progress ProgressSink,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *SendDeploy {
	return &SendDeploy{
		submitter: submitter,
		confirmer: confirmer,
		progress:  progress,
		config:    cfg,
		log:       log,
	}
}

// SendDeployResult contains the outcome of a send
type SendDeployResult struct {
	DeployHash string
	// Sent is false when the user declined the confirmation
	Sent bool
}

// Execute sends deploy and returns the hash reported by the node
func (s *SendDeploy) Execute(ctx context.Context, deploy *domain.Deploy) (*SendDeployResult, error) {
	if deploy == nil || !deploy.Signed() {
		return nil, &domain.UsageError{Op: "send deploy", Reason: "deploy has no approvals", Err: domain.ErrUnsigned}
	}

	if !s.config.Yes && !s.config.NonInteractive {
		prompt := fmt.Sprintf("Send deploy %s to %s", deploy.HashHex(), deploy.Header.ChainName)
		ok, err := s.confirmer.Confirm(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &SendDeployResult{DeployHash: deploy.HashHex()}, nil
		}
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "sending",
		Message: fmt.Sprintf("Sending deploy %s", deploy.HashHex()),
		Spinner: true,
	})

	hash, err := s.submitter.PutDeploy(ctx, deploy)
	s.progress.OnProgress(ctx, ProgressEvent{Stage: "sent"})
	if err != nil {
		s.progress.Error(fmt.Sprintf("Deploy %s was rejected", deploy.HashHex()))
		return nil, fmt.Errorf("failed to put deploy: %w", err)
	}

	s.log.Debug("deploy accepted", "deploy_hash", hash)
	s.progress.Info(fmt.Sprintf("Node accepted deploy %s", hash))
	return &SendDeployResult{DeployHash: hash, Sent: true}, nil
}
