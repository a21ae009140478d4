package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/app"
	"github.com/trebuchet-org/cep78-cli/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cep78",
		Short: "Client for CEP-78 NFT contracts on Casper",
		Long: `cep78 installs CEP-78 NFT collections, sends mint, burn, transfer and
approval deploys, and reads contract configuration and token data from a
Casper node.

Configuration is read from flags, CEP78_* environment variables, .env files
and an optional cep78.toml in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("network", "n", "", "Network from cep78.toml [networks] to use")
	flags.String("node-url", "", "Node JSON-RPC endpoint (env NODE_URL)")
	flags.String("chain-name", "", "Chain name deploys are signed for (env NETWORK_NAME)")
	flags.String("contract-hash", "", "Hash of the installed contract")
	flags.String("contract-package-hash", "", "Package hash of the installed contract")
	flags.String("key", "", "Secret key PEM file or key directory (env MASTER_KEY_PAIR_PATH)")
	flags.String("wasm-dir", "", "Directory holding the session programs (default \"wasm\")")
	flags.Bool("strict-identifiers", false, "Reject token identifiers that give both or neither of id and hash")
	flags.Bool("json", false, "Output JSON")
	flags.Bool("yaml", false, "Output YAML")
	flags.BoolP("yes", "y", false, "Send deploys without asking for confirmation")
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts")
	flags.Duration("timeout", 0, "Timeout for the whole command (default 2m)")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "deploy",
		Title: "Deploy Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "query",
		Title: "Query Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewInstallCmd(),
		NewSetVariablesCmd(),
		NewMintCmd(),
		NewBurnCmd(),
		NewTransferCmd(),
		NewApproveCmd(),
		NewApproveAllCmd(),
		NewRegisterCmd(),
	} {
		cmd.GroupID = "deploy"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewConfigCmd(),
		NewOwnerOfCmd(),
		NewBalanceOfCmd(),
		NewMetadataOfCmd(),
		NewNetworksCmd(),
	} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
