package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

const (
	// ProjectFile marks the project root and holds networks and payments
	ProjectFile = "cep78.toml"

	defaultTTL      = 30 * time.Minute
	defaultGasPrice = 1
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadDotEnv(projectRoot)

	file, source, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		WasmDir:           firstNonEmpty(v.GetString("wasm_dir"), file.Client.WasmDir),
		KeyPath:           firstNonEmpty(v.GetString("key"), file.Client.KeyPath),
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		JSON:              v.GetBool("json"),
		YAML:              v.GetBool("yaml"),
		Yes:               v.GetBool("yes"),
		Timeout:           v.GetDuration("timeout"),
		DryRun:            v.GetBool("dry_run"),
		StrictIdentifiers: v.GetBool("strict_identifiers") || file.Client.StrictIdentifiers,
		GasPrice:          defaultGasPrice,
		TTL:               defaultTTL,
		ConfigSource:      source,
	}

	if cfg.JSON && cfg.YAML {
		return nil, fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	if cfg.TTL, err = parseTTL(firstNonEmpty(v.GetString("ttl"), file.Client.TTL)); err != nil {
		return nil, err
	}
	if gasPrice := v.GetUint64("gas_price"); gasPrice != 0 {
		cfg.GasPrice = gasPrice
	} else if file.Client.GasPrice != 0 {
		cfg.GasPrice = file.Client.GasPrice
	}

	if cfg.Payments, err = buildPayments(file.Payments); err != nil {
		return nil, err
	}

	cfg.Network, err = resolveNetwork(v.GetString("network"), file.Networks, config.NetworkFileConfig{
		NodeURL:             v.GetString("node_url"),
		ChainName:           v.GetString("chain_name"),
		ContractHash:        v.GetString("contract_hash"),
		ContractPackageHash: v.GetString("contract_package_hash"),
	})
	if err != nil {
		return nil, err
	}

	cfg.Networks = make(map[string]*config.Network, len(file.Networks))
	for name := range file.Networks {
		network, err := resolveNetwork(name, file.Networks, config.NetworkFileConfig{})
		if err != nil {
			return nil, err
		}
		if network == nil {
			network = &config.Network{Name: name}
		}
		cfg.Networks[name] = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to find cep78.toml.
// Without one the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("CEP78")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Unprefixed names used by existing Casper tooling
	_ = v.BindEnv("node_url", "CEP78_NODE_URL", "NODE_URL")
	_ = v.BindEnv("chain_name", "CEP78_CHAIN_NAME", "NETWORK_NAME")
	_ = v.BindEnv("key", "CEP78_KEY", "MASTER_KEY_PAIR_PATH")

	// Set defaults
	v.SetDefault("timeout", "2m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	bind := func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			panic(err)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)

	return v
}

func parseTTL(raw string) (time.Duration, error) {
	if raw == "" {
		return defaultTTL, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid ttl %q: %w", raw, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("invalid ttl %q: must be positive", raw)
	}
	return ttl, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
