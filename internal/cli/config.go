package cli

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/app"
	"github.com/trebuchet-org/cep78-cli/internal/cli/render"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read the configuration of the bound contract",
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [item]",
		Short: "Read one configuration item",
		Long: fmt.Sprintf(`Read one configuration item of the bound contract. Without an item
name you are asked to pick one.

Items: %s`, strings.Join(itemNames(), ", ")),
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return itemNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			item, err := resolveConfigItem(cmd, app, args)
			if err != nil {
				return err
			}

			value, err := app.ReadConfig.Describe(cmd.Context(), item)
			if err != nil {
				return err
			}

			renderer := render.NewConfigRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config))
			return renderer.RenderItem(&render.ConfigItemResult{Item: item, Value: value})
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Read every configuration item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entries, err := app.ReadConfig.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewConfigRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config))
			return renderer.RenderSnapshot(app.Binding.Current(), entries)
		},
	}
}

// resolveConfigItem returns the item named in args, asks for one when args
// is empty, and suggests close names for a typo
func resolveConfigItem(cmd *cobra.Command, app *app.App, args []string) (domain.ConfigItem, error) {
	names := itemNames()

	if len(args) == 0 {
		if app.Config.NonInteractive {
			return "", fmt.Errorf("item name is required in non-interactive mode")
		}
		index, err := app.Selector.Select(cmd.Context(), "Select a configuration item", names)
		if err != nil {
			return "", err
		}
		return domain.ConfigItem(names[index]), nil
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	if domain.IsConfigItem(name) {
		return domain.ConfigItem(name), nil
	}

	msg := fmt.Sprintf("unknown configuration item %q", args[0])
	if suggestions := app.Suggester.Suggest(name, names); len(suggestions) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(suggestions, ", "))
	}
	return "", &domain.ValidationError{Field: "config item", Reason: msg}
}

func itemNames() []string {
	return lo.Map(domain.ConfigItems, func(item domain.ConfigItem, _ int) string {
		return string(item)
	})
}
