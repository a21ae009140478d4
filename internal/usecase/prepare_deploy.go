package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/holiman/uint256"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

// PrepareDeploy turns an entry point call into a deploy ready to be sent
type PrepareDeploy struct {
	builder  ArgumentBuilder
	binding  *ContractBinding
	programs ProgramStore
	signer   Signer
	clock    Clock
	config   *config.RuntimeConfig
	log      *slog.Logger
}

// NewPrepareDeploy creates a new prepare deploy use case
func NewPrepareDeploy(
	builder ArgumentBuilder,
	binding *ContractBinding,
	programs ProgramStore,
	signer Signer,
	clock Clock,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *PrepareDeploy {
	return &PrepareDeploy{
		builder:  builder,
		binding:  binding,
		programs: programs,
		signer:   signer,
		clock:    clock,
		config:   cfg,
		log:      log,
	}
}

// DeployOptions override the configured defaults of a single deploy
type DeployOptions struct {
	// Payment in motes, defaults to the configured amount for the entry point
	Payment *uint256.Int
	// Program replaces the default session program of install, mint and transfer
	Program []byte
	// ProgramName is loaded from the program store instead of the default
	// program when Program is nil
	ProgramName string
	// Sender defaults to the public key of the signing key
	Sender *domain.PublicKey
}

// Execute builds, wraps and (when a signing key is configured) signs call
func (p *PrepareDeploy) Execute(ctx context.Context, call domain.Call, opts DeployOptions) (*domain.Deploy, error) {
	if call == nil {
		return nil, domain.ErrUnknownEntryPoint
	}
	ep := call.EntryPoint()

	contract := p.binding.Current()
	if ep.Stored() {
		var err error
		if contract, err = p.binding.Require(string(ep)); err != nil {
			return nil, err
		}
	}

	args, err := p.builder.Build(call, contract)
	if err != nil {
		return nil, err
	}
	p.log.Debug("built runtime args", "entry_point", ep, "args", args.Names())

	var session domain.ExecutableDeployItem
	if ep.Stored() {
		session = domain.NewStoredContractByHash(contract.Hash, ep, args)
	} else {
		program := opts.Program
		if program == nil {
			name := ep.DefaultProgram()
			if opts.ProgramName != "" {
				name = opts.ProgramName
			}
			if program, err = p.programs.Load(ctx, name); err != nil {
				return nil, fmt.Errorf("failed to load session program %s for %s: %w", name, ep, err)
			}
		}
		session = domain.NewModuleBytes(program, args)
	}

	amount := opts.Payment
	if amount == nil {
		var ok bool
		if amount, ok = p.config.Payments.For(string(ep)); !ok {
			return nil, &domain.ValidationError{Field: "payment", Reason: fmt.Sprintf("no payment amount for %s", ep)}
		}
	}

	sender, err := p.sender(ep, opts)
	if err != nil {
		return nil, err
	}

	if p.config.Network == nil || p.config.Network.ChainName == "" {
		return nil, &domain.UsageError{Op: string(ep), Reason: "chain name is not configured"}
	}

	deploy := domain.NewDeploy(domain.DeployParams{
		Account:   sender,
		Timestamp: p.clock.Now(),
		TTL:       p.config.TTL,
		GasPrice:  p.config.GasPrice,
		ChainName: p.config.Network.ChainName,
	}, domain.StandardPayment(amount), session)

	if err := p.sign(ctx, deploy); err != nil {
		return nil, err
	}

	p.log.Debug("prepared deploy", "entry_point", ep, "deploy_hash", deploy.HashHex(), "signed", deploy.Signed())
	return deploy, nil
}

func (p *PrepareDeploy) sender(ep domain.EntryPoint, opts DeployOptions) (domain.PublicKey, error) {
	if opts.Sender != nil {
		return *opts.Sender, nil
	}
	pk, err := p.signer.PublicKey()
	if err != nil {
		return domain.PublicKey{}, &domain.UsageError{Op: string(ep), Reason: "no sender public key", Err: err}
	}
	return pk, nil
}

func (p *PrepareDeploy) sign(ctx context.Context, deploy *domain.Deploy) error {
	if _, err := p.signer.PublicKey(); err != nil {
		if errors.Is(err, domain.ErrNoSigningKey) {
			return nil
		}
		return err
	}
	approval, err := p.signer.Sign(ctx, deploy.Hash)
	if err != nil {
		return fmt.Errorf("failed to sign deploy: %w", err)
	}
	deploy.AddApproval(approval)
	return nil
}

// Install prepares the deploy that installs a new collection
func (p *PrepareDeploy) Install(ctx context.Context, args domain.InstallArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.InstallCall{InstallArgs: args}, opts)
}

func (p *PrepareDeploy) SetVariables(ctx context.Context, vars domain.ConfigurableVariables, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.SetVariablesCall{ConfigurableVariables: vars}, opts)
}

func (p *PrepareDeploy) Mint(ctx context.Context, args domain.MintArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.MintCall{MintArgs: args}, opts)
}

func (p *PrepareDeploy) Burn(ctx context.Context, args domain.BurnArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.BurnCall{BurnArgs: args}, opts)
}

func (p *PrepareDeploy) Transfer(ctx context.Context, args domain.TransferArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.TransferCall{TransferArgs: args}, opts)
}

func (p *PrepareDeploy) Approve(ctx context.Context, args domain.ApproveArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.ApproveCall{ApproveArgs: args}, opts)
}

func (p *PrepareDeploy) SetApprovalForAll(ctx context.Context, args domain.ApprovalForAllArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.SetApprovalForAllCall{ApprovalForAllArgs: args}, opts)
}

func (p *PrepareDeploy) RegisterOwner(ctx context.Context, args domain.RegisterOwnerArgs, opts DeployOptions) (*domain.Deploy, error) {
	return p.Execute(ctx, domain.RegisterOwnerCall{RegisterOwnerArgs: args}, opts)
}
