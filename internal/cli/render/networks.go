package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format Format
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format Format) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkDocument struct {
	Name          string `json:"name"`
	NodeURL       string `json:"node_url,omitempty"`
	ChainName     string `json:"chain_name,omitempty"`
	ContractHash  string `json:"contract_hash,omitempty"`
	Current       bool   `json:"current"`
	StateRootHash string `json:"state_root_hash,omitempty"`
	Error         string `json:"error,omitempty"`
}

// RenderNetworksList renders the configured networks, marking the one in use
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if r.format != FormatText {
		return Structured(r.out, r.format, lo.Map(result.Networks, func(n usecase.NetworkStatus, _ int) networkDocument {
			doc := networkDocument{
				Name:          n.Name,
				NodeURL:       n.NodeURL,
				ChainName:     n.ChainName,
				ContractHash:  n.ContractHash,
				Current:       n.Current,
				StateRootHash: n.StateRootHash,
			}
			if n.Error != nil {
				doc.Error = n.Error.Error()
			}
			return doc
		}))
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in cep78.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		name := network.Name
		if network.Current {
			name = color.New(color.Bold).Sprint(name + " *")
		}
		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", name, network.Error)
		case network.StateRootHash != "":
			fmt.Fprintf(r.out, "  ✅ %s - %s (%s) - State root: %s\n", name, network.ChainName, network.NodeURL, network.StateRootHash)
		default:
			fmt.Fprintf(r.out, "  • %s - %s (%s)\n", name, orNone(network.ChainName, "chain_name"), orNone(network.NodeURL, "node_url"))
		}
	}

	return nil
}

func orNone(value, what string) string {
	return lo.Ternary(value == "", "no "+what, value)
}
