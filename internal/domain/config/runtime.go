package config

import (
	"time"

	"github.com/holiman/uint256"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	WasmDir     string
	KeyPath     string // secret key PEM, empty when signing is not configured

	// Context settings
	Network  *Network
	Networks map[string]*Network // every cep78.toml network, without flag overrides

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	YAML           bool
	Yes            bool // skip send confirmation
	Timeout        time.Duration

	// Deploy settings
	TTL               time.Duration
	GasPrice          uint64
	DryRun            bool
	StrictIdentifiers bool
	Payments          Payments

	// Config source tracking
	ConfigSource string // path of cep78.toml, empty when none was found
}

// Network represents network configuration
type Network struct {
	Name                string `json:"name"`
	NodeURL             string `json:"nodeUrl"`
	ChainName           string `json:"chainName"`
	ContractHash        string `json:"contractHash,omitempty"`
	ContractPackageHash string `json:"contractPackageHash,omitempty"`
}

// Payments are the default payment amounts in motes per entry point.
type Payments map[string]*uint256.Int

// For returns the default payment of entryPoint, falling back to the
// "default" entry when the entry point has none.
func (p Payments) For(entryPoint string) (*uint256.Int, bool) {
	if amount, ok := p[entryPoint]; ok && amount != nil {
		return amount, true
	}
	amount, ok := p["default"]
	return amount, ok && amount != nil
}
