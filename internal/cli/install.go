package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/cep78-cli/internal/app"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"gopkg.in/yaml.v3"
)

type installFlags struct {
	name         string
	symbol       string
	supply       uint64
	ownership    string
	kind         string
	metadataKind string
	identifier   string
	mutability   string
	schema       string

	mintingMode   string
	allowMinting  bool
	whitelistMode string
	holderMode    string
	whitelist     []string
	burnMode      string
	reverseLookup string
	eventsMode    string
	namedKeyConv  string
}

// NewInstallCmd creates the install command
func NewInstallCmd() *cobra.Command {
	var f installFlags
	var deploy deployFlags

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install a new CEP-78 collection",
		Long: `Install a new CEP-78 collection by running the contract session program.

Enum flags take a member name (case-insensitive) or its ordinal. Optional
settings that are not given are left to the contract defaults.

Examples:
  cep78 install --name Punks --symbol PNK --supply 1000 \
    --ownership Transferable --kind Digital --metadata-kind CEP78 \
    --identifier Ordinal --mutability Immutable
  cep78 install ... --metadata-kind CustomValidated --schema schema.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.installArgs(cmd)
			if err != nil {
				return err
			}
			return runDeploy(cmd, domain.EntryPointInstall, &deploy, func(ctx context.Context, a *app.App, opts usecase.DeployOptions) (*domain.Deploy, error) {
				return a.PrepareDeploy.Install(ctx, *in, opts)
			})
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "Collection name")
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "Collection symbol")
	cmd.Flags().Uint64Var(&f.supply, "supply", 0, "Total token supply")
	cmd.Flags().StringVar(&f.ownership, "ownership", "", enumUsage[domain.NFTOwnershipMode]("Ownership mode"))
	cmd.Flags().StringVar(&f.kind, "kind", "", enumUsage[domain.NFTKind]("NFT kind"))
	cmd.Flags().StringVar(&f.metadataKind, "metadata-kind", "", enumUsage[domain.NFTMetadataKind]("Metadata kind"))
	cmd.Flags().StringVar(&f.identifier, "identifier", "", enumUsage[domain.NFTIdentifierMode]("Identifier mode"))
	cmd.Flags().StringVar(&f.mutability, "mutability", "", enumUsage[domain.MetadataMutability]("Metadata mutability"))
	cmd.Flags().StringVar(&f.schema, "schema", "", "Metadata schema file (.json, .yaml or .toml)")

	cmd.Flags().StringVar(&f.mintingMode, "minting-mode", "", enumUsage[domain.MintingMode]("Minting mode"))
	cmd.Flags().BoolVar(&f.allowMinting, "allow-minting", true, "Allow minting after install")
	cmd.Flags().StringVar(&f.whitelistMode, "whitelist-mode", "", enumUsage[domain.WhitelistMode]("Whitelist mode"))
	cmd.Flags().StringVar(&f.holderMode, "holder-mode", "", enumUsage[domain.NFTHolderMode]("Holder mode"))
	cmd.Flags().StringSliceVar(&f.whitelist, "whitelist", nil, "Contract hashes allowed to mint")
	cmd.Flags().StringVar(&f.burnMode, "burn-mode", "", enumUsage[domain.BurnMode]("Burn mode"))
	cmd.Flags().StringVar(&f.reverseLookup, "reverse-lookup", "", enumUsage[domain.OwnerReverseLookupMode]("Owner reverse lookup mode"))
	cmd.Flags().StringVar(&f.eventsMode, "events-mode", "", enumUsage[domain.EventsMode]("Events mode"))
	cmd.Flags().StringVar(&f.namedKeyConv, "named-key-convention", "", enumUsage[domain.NamedKeyConvention]("Named key convention"))

	for _, name := range []string{"name", "symbol", "supply", "ownership", "kind", "metadata-kind", "identifier", "mutability"} {
		_ = cmd.MarkFlagRequired(name)
	}

	deploy.register(cmd, true)
	return cmd
}

func (f *installFlags) installArgs(cmd *cobra.Command) (*domain.InstallArgs, error) {
	in := &domain.InstallArgs{
		CollectionName:   f.name,
		CollectionSymbol: f.symbol,
		TotalTokenSupply: f.supply,
	}

	var err error
	if in.OwnershipMode, err = domain.ParseEnum[domain.NFTOwnershipMode]("ownership", f.ownership); err != nil {
		return nil, err
	}
	if in.NFTKind, err = domain.ParseEnum[domain.NFTKind]("kind", f.kind); err != nil {
		return nil, err
	}
	if in.NFTMetadataKind, err = domain.ParseEnum[domain.NFTMetadataKind]("metadata-kind", f.metadataKind); err != nil {
		return nil, err
	}
	if in.IdentifierMode, err = domain.ParseEnum[domain.NFTIdentifierMode]("identifier", f.identifier); err != nil {
		return nil, err
	}
	if in.MetadataMutability, err = domain.ParseEnum[domain.MetadataMutability]("mutability", f.mutability); err != nil {
		return nil, err
	}

	if f.schema != "" {
		schema, err := loadSchema(f.schema)
		if err != nil {
			return nil, err
		}
		in.JSONSchema = *schema
	}

	if in.MintingMode, err = optionalEnum[domain.MintingMode]("minting-mode", f.mintingMode); err != nil {
		return nil, err
	}
	if in.WhitelistMode, err = optionalEnum[domain.WhitelistMode]("whitelist-mode", f.whitelistMode); err != nil {
		return nil, err
	}
	if in.HolderMode, err = optionalEnum[domain.NFTHolderMode]("holder-mode", f.holderMode); err != nil {
		return nil, err
	}
	if in.BurnMode, err = optionalEnum[domain.BurnMode]("burn-mode", f.burnMode); err != nil {
		return nil, err
	}
	if in.OwnerReverseLookupMode, err = optionalEnum[domain.OwnerReverseLookupMode]("reverse-lookup", f.reverseLookup); err != nil {
		return nil, err
	}
	if in.EventsMode, err = optionalEnum[domain.EventsMode]("events-mode", f.eventsMode); err != nil {
		return nil, err
	}
	if in.NamedKeyConvention, err = optionalEnum[domain.NamedKeyConvention]("named-key-convention", f.namedKeyConv); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("allow-minting") {
		allow := f.allowMinting
		in.AllowMinting = &allow
	}
	if cmd.Flags().Changed("whitelist") {
		in.ContractWhitelist = f.whitelist
	}

	return in, nil
}

// loadSchema reads a metadata schema, choosing the format by extension
func loadSchema(path string) (*domain.JSONSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	var schema domain.JSONSchema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &schema)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &schema)
	case ".toml":
		err = toml.Unmarshal(data, &schema)
	default:
		return nil, &domain.ValidationError{Field: "schema", Reason: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	return &schema, nil
}
