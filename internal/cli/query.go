package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/cli/render"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
)

// NewOwnerOfCmd creates the owner-of command
func NewOwnerOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner-of <token-id>",
		Short: "Print the owner of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			owner, err := app.ResolveDictionary.OwnerOf(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render.NewQueryRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config)).RenderValue("owner", owner)
		},
	}
}

// NewBalanceOfCmd creates the balance-of command
func NewBalanceOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance-of <account>",
		Short: "Print how many tokens an account holds",
		Long: `Print how many tokens an account holds. The account is an account hash
("account-hash-...") or a public key hex.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			account, err := parseAccount("account", args[0])
			if err != nil {
				return err
			}

			balance, err := app.ResolveDictionary.BalanceOf(cmd.Context(), account.String())
			if err != nil {
				return err
			}

			return render.NewQueryRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config)).RenderValue("balance", balance)
		},
	}
}

// NewMetadataOfCmd creates the metadata-of command
func NewMetadataOfCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "metadata-of <token-id>",
		Short: "Print the metadata of a token",
		Long: `Print the metadata of a token. Without --kind the metadata kind of the
contract is read first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			metadataKind, err := optionalEnum[domain.NFTMetadataKind]("kind", kind)
			if err != nil {
				return err
			}

			meta, err := app.ResolveDictionary.MetadataOf(cmd.Context(), args[0], metadataKind)
			if err != nil {
				return err
			}

			return render.NewQueryRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config)).RenderMetadata(args[0], meta)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", enumUsage[domain.NFTMetadataKind]("Metadata kind"))
	return cmd
}
