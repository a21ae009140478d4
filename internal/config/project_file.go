package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

// loadDotEnv loads .env files so that cep78.toml values can reference them.
// Variables already set in the environment win.
func loadDotEnv(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectFile parses cep78.toml and expands ${VAR} references. A missing
// file yields an empty config and an empty source.
func loadProjectFile(projectRoot string) (*config.Cep78FileConfig, string, error) {
	path := filepath.Join(projectRoot, ProjectFile)

	var raw config.Cep78FileConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &config.Cep78FileConfig{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	raw.Client.WasmDir = os.ExpandEnv(raw.Client.WasmDir)
	raw.Client.KeyPath = os.ExpandEnv(raw.Client.KeyPath)
	raw.Client.TTL = os.ExpandEnv(raw.Client.TTL)

	for name, network := range raw.Networks {
		raw.Networks[name] = config.NetworkFileConfig{
			NodeURL:             os.ExpandEnv(network.NodeURL),
			ChainName:           os.ExpandEnv(network.ChainName),
			ContractHash:        os.ExpandEnv(network.ContractHash),
			ContractPackageHash: os.ExpandEnv(network.ContractPackageHash),
		}
	}

	for entryPoint, amount := range raw.Payments {
		raw.Payments[entryPoint] = os.ExpandEnv(amount)
	}

	return &raw, path, nil
}
