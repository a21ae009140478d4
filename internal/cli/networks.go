package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/cli/render"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks from cep78.toml",
		Long: `List all networks configured in the [networks] section of cep78.toml.

With --probe every node with a node_url is asked for its latest state root
hash to check that it answers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Probe: probe})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config))
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Check that each node answers")
	return cmd
}
