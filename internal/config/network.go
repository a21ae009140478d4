package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

// defaultNetwork is the cep78.toml entry used when no network is named
const defaultNetwork = "default"

// resolveNetwork merges the named cep78.toml network with flag and
// environment overrides. It returns nil when nothing is configured.
func resolveNetwork(name string, networks map[string]config.NetworkFileConfig, overrides config.NetworkFileConfig) (*config.Network, error) {
	explicit := name != ""
	if !explicit {
		name = defaultNetwork
	}

	base, ok := networks[name]
	if !ok && explicit {
		return nil, fmt.Errorf("network '%s' not found in %s [networks] (available: %s)",
			name, ProjectFile, strings.Join(networkNames(networks), ", "))
	}

	if base.NodeURL == "" {
		base.NodeURL = os.Getenv(GenerateEnvVarName(name))
	}

	network := &config.Network{
		Name:                name,
		NodeURL:             firstNonEmpty(overrides.NodeURL, base.NodeURL),
		ChainName:           firstNonEmpty(overrides.ChainName, base.ChainName),
		ContractHash:        firstNonEmpty(overrides.ContractHash, base.ContractHash),
		ContractPackageHash: firstNonEmpty(overrides.ContractPackageHash, base.ContractPackageHash),
	}

	if network.NodeURL == "" && network.ChainName == "" && network.ContractHash == "" && network.ContractPackageHash == "" {
		return nil, nil
	}
	return network, nil
}

// GenerateEnvVarName generates a conventional env var name for a network's node URL.
// Convention: uppercase, dashes/dots to underscores, append _NODE_URL.
// Examples: testnet -> TESTNET_NODE_URL, casper-test -> CASPER_TEST_NODE_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_NODE_URL"
}

func networkNames(networks map[string]config.NetworkFileConfig) []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return []string{"none"}
	}
	return names
}
