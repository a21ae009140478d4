package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe asks every node with a node_url for its state root hash
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	config.Network
	Current       bool
	StateRootHash string
	Error         error
}

var errNoNodeURL = errors.New("no node_url configured")

// ListNetworks is a use case for listing the networks of cep78.toml
type ListNetworks struct {
	prober NodeProber
	config *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(prober NodeProber, cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{
		prober: prober,
		config: cfg,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := make([]string, 0, len(uc.config.Networks))
	for name := range uc.config.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{
			Network: *uc.config.Networks[name],
			Current: uc.config.Network != nil && uc.config.Network.Name == name,
		}

		if params.Probe {
			if status.NodeURL == "" {
				status.Error = errNoNodeURL
			} else {
				status.StateRootHash, status.Error = uc.prober.Probe(ctx, status.NodeURL)
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
