package config

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// DefaultPayments are the payment amounts in motes used when cep78.toml
// doesn't override them.
var DefaultPayments = map[string]uint64{
	string(domain.EntryPointInstall):       250_000_000_000,
	string(domain.EntryPointMint):          2_000_000_000,
	string(domain.EntryPointRegisterOwner): 1_000_000_000,
	string(domain.EntryPointTransfer):      13_000_000_000,
	"default":                              1_000_000_000,
}

// buildPayments overlays the [payments] table on the defaults
func buildPayments(overrides map[string]string) (config.Payments, error) {
	payments := make(config.Payments, len(DefaultPayments)+len(overrides))
	for entryPoint, amount := range DefaultPayments {
		payments[entryPoint] = uint256.NewInt(amount)
	}

	for entryPoint, raw := range overrides {
		if entryPoint != "default" && !knownEntryPoint(entryPoint) {
			return nil, fmt.Errorf("invalid [payments] entry %q: unknown entry point", entryPoint)
		}
		amount, err := clvalue.ParseU512(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid [payments] entry %q: %w", entryPoint, err)
		}
		payments[entryPoint] = amount
	}
	return payments, nil
}

func knownEntryPoint(name string) bool {
	for _, ep := range domain.EntryPoints {
		if string(ep) == name {
			return true
		}
	}
	return false
}
