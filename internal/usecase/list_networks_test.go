package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

func TestListNetworks(t *testing.T) {
	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: "testnet", NodeURL: "http://testnet/rpc"},
		Networks: map[string]*config.Network{
			"testnet": {Name: "testnet", NodeURL: "http://testnet/rpc", ChainName: "casper-test"},
			"mainnet": {Name: "mainnet", NodeURL: "http://mainnet/rpc", ChainName: "casper"},
			"local":   {Name: "local", ChainName: "casper-net-1"},
		},
	}

	t.Run("without probing", func(t *testing.T) {
		prober := new(MockNodeProber)
		result, err := usecase.NewListNetworks(prober, cfg).Run(context.Background(), usecase.ListNetworksParams{})
		require.NoError(t, err)

		require.Len(t, result.Networks, 3)
		assert.Equal(t, "local", result.Networks[0].Name)
		assert.Equal(t, "mainnet", result.Networks[1].Name)
		assert.Equal(t, "testnet", result.Networks[2].Name)
		assert.True(t, result.Networks[2].Current)
		assert.False(t, result.Networks[0].Current)
		prober.AssertNotCalled(t, "Probe", mock.Anything, mock.Anything)
	})

	t.Run("probing", func(t *testing.T) {
		prober := new(MockNodeProber)
		prober.On("Probe", mock.Anything, "http://testnet/rpc").Return("root", nil)
		prober.On("Probe", mock.Anything, "http://mainnet/rpc").Return("", errors.New("connection refused"))

		result, err := usecase.NewListNetworks(prober, cfg).Run(context.Background(), usecase.ListNetworksParams{Probe: true})
		require.NoError(t, err)

		assert.ErrorContains(t, result.Networks[0].Error, "no node_url")
		assert.ErrorContains(t, result.Networks[1].Error, "connection refused")
		assert.NoError(t, result.Networks[2].Error)
		assert.Equal(t, "root", result.Networks[2].StateRootHash)
		prober.AssertExpectations(t)
	})

	t.Run("no networks", func(t *testing.T) {
		result, err := usecase.NewListNetworks(new(MockNodeProber), &config.RuntimeConfig{}).Run(context.Background(), usecase.ListNetworksParams{Probe: true})
		require.NoError(t, err)
		assert.Empty(t, result.Networks)
	})
}
