package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/app"
	"github.com/trebuchet-org/cep78-cli/internal/cli/render"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// deployFlags are the flags shared by every command that sends a deploy
type deployFlags struct {
	payment string
	program string
	sender  string
}

func (f *deployFlags) register(cmd *cobra.Command, session bool) {
	cmd.Flags().StringVar(&f.payment, "payment", "", "Payment amount in motes (defaults to the cep78.toml or built-in amount)")
	cmd.Flags().StringVar(&f.sender, "sender", "", "Public key hex of the deploy account (defaults to the signing key)")
	if session {
		cmd.Flags().StringVar(&f.program, "wasm", "", "Session program: a file name in the wasm dir or a path")
	}
	cmd.Flags().Bool("dry-run", false, "Print the prepared deploy without sending it")
}

func (f *deployFlags) options() (usecase.DeployOptions, error) {
	var opts usecase.DeployOptions
	if f.payment != "" {
		amount, err := clvalue.ParseU512(f.payment)
		if err != nil {
			return opts, &domain.ValidationError{Field: "payment", Reason: err.Error()}
		}
		opts.Payment = amount
	}
	if f.sender != "" {
		pk, err := domain.ParsePublicKey(f.sender)
		if err != nil {
			return opts, err
		}
		opts.Sender = &pk
	}
	opts.ProgramName = f.program
	return opts, nil
}

type prepareFunc func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error)

// runDeploy prepares a deploy and then sends it, or renders it on --dry-run
func runDeploy(cmd *cobra.Command, ep domain.EntryPoint, flags *deployFlags, prepare prepareFunc) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	opts, err := flags.options()
	if err != nil {
		return err
	}

	deploy, err := prepare(cmd.Context(), app, opts)
	if err != nil {
		return fmt.Errorf("failed to prepare %s deploy: %w", ep, err)
	}

	result := &render.DeployResult{EntryPoint: ep, Deploy: deploy}
	if !app.Config.DryRun {
		if result.Send, err = app.SendDeploy.Execute(cmd.Context(), deploy); err != nil {
			return err
		}
	}

	return render.NewDeployRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config)).Render(result)
}

// tokenFlags select a token by ordinal or hash
type tokenFlags struct {
	id   uint64
	hash string
}

func (f *tokenFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.id, "token-id", 0, "Token ordinal")
	cmd.Flags().StringVar(&f.hash, "token-hash", "", "Token hash")
	cmd.MarkFlagsOneRequired("token-id", "token-hash")
}

// identifier passes on whatever was given. Whether both may be given is up to
// the identifier policy.
func (f *tokenFlags) identifier(cmd *cobra.Command) domain.TokenIdentifier {
	var id domain.TokenIdentifier
	if cmd.Flags().Changed("token-id") {
		tokenID := f.id
		id.TokenID = &tokenID
	}
	if cmd.Flags().Changed("token-hash") {
		hash := f.hash
		id.TokenHash = &hash
	}
	return id
}

// parseAccount reads an account flag given as account hash or public key
func parseAccount(flag, value string) (clvalue.Key, error) {
	key, err := domain.ParseAccount(value)
	if err != nil {
		return clvalue.Key{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return key, nil
}

// parseKey reads a token holder flag. Contract hashes and urefs are taken as
// keys; anything else is read as an account.
func parseKey(flag, value string) (clvalue.Key, error) {
	if !strings.HasPrefix(value, clvalue.HashPrefix) && !strings.HasPrefix(value, clvalue.URefPrefix) {
		return parseAccount(flag, value)
	}
	key, err := clvalue.ParseKey(value)
	if err != nil {
		return clvalue.Key{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return key, nil
}

// optionalEnum parses an enum flag that is left out of the call when empty
func optionalEnum[T domain.ConfigEnum](field, raw string) (*T, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := domain.ParseEnum[T](field, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// enumUsage lists the accepted values of an enum flag
func enumUsage[T domain.ConfigEnum](what string) string {
	return fmt.Sprintf("%s (%s)", what, strings.Join(domain.EnumNames[T](), "|"))
}
