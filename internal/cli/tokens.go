package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/app"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// NewSetVariablesCmd creates the set-variables command
func NewSetVariablesCmd() *cobra.Command {
	var allowMinting bool
	var whitelist []string
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "set-variables",
		Short: "Change the configurable settings of the contract",
		Long: `Change allow_minting and the contract whitelist of the bound contract.
Settings that are not given keep their current value.

Examples:
  cep78 set-variables --allow-minting=false
  cep78 set-variables --whitelist hash-1234...,hash-abcd...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var vars domain.ConfigurableVariables
			if cmd.Flags().Changed("allow-minting") {
				vars.AllowMinting = &allowMinting
			}
			if cmd.Flags().Changed("whitelist") {
				vars.ContractWhitelist = whitelist
			}
			return runDeploy(cmd, domain.EntryPointSetVariables, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.SetVariables(ctx, vars, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&allowMinting, "allow-minting", false, "Allow or stop minting")
	cmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "Contract hashes allowed to mint")
	cmd.MarkFlagsOneRequired("allow-minting", "whitelist")
	deploy.register(cmd, false)
	return cmd
}

// NewMintCmd creates the mint command
func NewMintCmd() *cobra.Command {
	var owner string
	var meta map[string]string
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a token",
		Long: `Mint one token to an owner. The owner is an account hash, a public key or,
for collections that allow contract holders, a contract hash.

Examples:
  cep78 mint --owner account-hash-2c4a... --meta name=John --meta symbol=JD
  cep78 mint --owner 01ab... --meta token_uri=https://example.com/1.json --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey("owner", owner)
			if err != nil {
				return err
			}
			in := domain.MintArgs{Owner: key, Meta: meta}
			return runDeploy(cmd, domain.EntryPointMint, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.Mint(ctx, in, opts)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Token owner (account hash, contract hash or public key hex)")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Metadata field as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("owner")
	deploy.register(cmd, true)
	return cmd
}

// NewBurnCmd creates the burn command
func NewBurnCmd() *cobra.Command {
	var token tokenFlags
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Burn a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.BurnArgs{TokenIdentifier: token.identifier(cmd)}
			return runDeploy(cmd, domain.EntryPointBurn, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.Burn(ctx, in, opts)
			})
		},
	}

	token.register(cmd)
	deploy.register(cmd, false)
	return cmd
}

// NewTransferCmd creates the transfer command
func NewTransferCmd() *cobra.Command {
	var source, target string
	var token tokenFlags
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer a token",
		Long: `Transfer a token from its owner to a new owner.

Examples:
  cep78 transfer --source account-hash-2c4a... --target 0203... --token-id 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseKey("source", source)
			if err != nil {
				return err
			}
			dst, err := parseKey("target", target)
			if err != nil {
				return err
			}
			in := domain.TransferArgs{TokenIdentifier: token.identifier(cmd), Source: src, Target: dst}
			return runDeploy(cmd, domain.EntryPointTransfer, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.Transfer(ctx, in, opts)
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Current owner (account hash, contract hash or public key hex)")
	cmd.Flags().StringVar(&target, "target", "", "New owner (account hash, contract hash or public key hex)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	token.register(cmd)
	deploy.register(cmd, true)
	return cmd
}

// NewApproveCmd creates the approve command
func NewApproveCmd() *cobra.Command {
	var operator string
	var token tokenFlags
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve an operator for one token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseKey("operator", operator)
			if err != nil {
				return err
			}
			in := domain.ApproveArgs{TokenIdentifier: token.identifier(cmd), Operator: op}
			return runDeploy(cmd, domain.EntryPointApprove, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.Approve(ctx, in, opts)
			})
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "Operator (account hash, contract hash or public key hex)")
	_ = cmd.MarkFlagRequired("operator")
	token.register(cmd)
	deploy.register(cmd, false)
	return cmd
}

// NewApproveAllCmd creates the approve-all command
func NewApproveAllCmd() *cobra.Command {
	var operator string
	var revoke bool
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "approve-all",
		Short: "Approve or revoke an operator for all of the caller's tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseKey("operator", operator)
			if err != nil {
				return err
			}
			in := domain.ApprovalForAllArgs{ApproveAll: !revoke, Operator: op}
			return runDeploy(cmd, domain.EntryPointSetApprovalForAll, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.SetApprovalForAll(ctx, in, opts)
			})
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "Operator (account hash, contract hash or public key hex)")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "Revoke instead of grant")
	_ = cmd.MarkFlagRequired("operator")
	deploy.register(cmd, false)
	return cmd
}

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var owner string
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an owner for reverse lookup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey("owner", owner)
			if err != nil {
				return err
			}
			in := domain.RegisterOwnerArgs{TokenOwner: key}
			return runDeploy(cmd, domain.EntryPointRegisterOwner, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.RegisterOwner(ctx, in, opts)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner to register (account hash, contract hash or public key hex)")
	_ = cmd.MarkFlagRequired("owner")
	deploy.register(cmd, false)
	return cmd
}
