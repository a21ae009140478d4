package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

var testAccount = domain.PublicKey{Algorithm: domain.AlgorithmEd25519, Raw: bytes.Repeat([]byte{0x11}, 32)}

func testDeploy(signed bool) *domain.Deploy {
	args := clvalue.NewArgs()
	args.Insert("token_owner", clvalue.String("alice"))
	d := domain.NewDeploy(domain.DeployParams{
		Account:   testAccount,
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		TTL:       30 * time.Minute,
		GasPrice:  1,
		ChainName: "casper-test",
	}, domain.StandardPayment(uint256.NewInt(2_000_000_000)), domain.NewModuleBytes([]byte{0, 0x61, 0x73, 0x6d}, args))
	if signed {
		d.AddApproval(domain.Approval{
			Signer:    testAccount,
			Signature: domain.Signature{Algorithm: domain.AlgorithmEd25519, Raw: make([]byte, 64)},
		})
	}
	return d
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatText, FormatFor(&config.RuntimeConfig{}))
	assert.Equal(t, FormatJSON, FormatFor(&config.RuntimeConfig{JSON: true}))
	assert.Equal(t, FormatYAML, FormatFor(&config.RuntimeConfig{YAML: true}))
}

func TestStructured(t *testing.T) {
	doc := map[string]any{"name": "Punks", "items": []string{"a", "b"}}

	var out bytes.Buffer
	require.NoError(t, Structured(&out, FormatJSON, doc))
	assert.JSONEq(t, `{"name": "Punks", "items": ["a", "b"]}`, out.String())

	out.Reset()
	require.NoError(t, Structured(&out, FormatYAML, doc))
	assert.NotContains(t, out.String(), "{")
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &back))
	assert.Equal(t, map[string]any{"name": "Punks", "items": []any{"a", "b"}}, back)
}

func TestDeployRenderer_DryRun(t *testing.T) {
	tests := []struct {
		name     string
		signed   bool
		contains []string
		excludes []string
	}{
		{
			name:   "signed",
			signed: true,
			contains: []string{
				"Entry point", "mint",
				"casper-test",
				"2024-05-01 12:00:00.000 UTC",
				"30m",
				"2000000000 motes",
				"session program (4 bytes)",
				"yes (" + testAccount.Hex() + ")",
				"token_owner", `String(alice)`,
			},
			excludes: []string{"not signed"},
		},
		{
			name:     "unsigned",
			contains: []string{"Deploy is not signed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDeploy(tt.signed)
			var out bytes.Buffer
			err := NewDeployRenderer(&out, FormatText).Render(&DeployResult{EntryPoint: domain.EntryPointMint, Deploy: d})
			require.NoError(t, err)

			assert.Contains(t, out.String(), d.HashHex())
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestDeployRenderer_Sent(t *testing.T) {
	d := testDeploy(true)

	var out bytes.Buffer
	r := NewDeployRenderer(&out, FormatText)
	require.NoError(t, r.Render(&DeployResult{
		EntryPoint: domain.EntryPointBurn,
		Deploy:     d,
		Send:       &usecase.SendDeployResult{DeployHash: d.HashHex(), Sent: true},
	}))
	assert.Contains(t, out.String(), "Sent burn deploy")
	assert.Contains(t, out.String(), "Deploy hash: "+d.HashHex())

	out.Reset()
	require.NoError(t, r.Render(&DeployResult{EntryPoint: domain.EntryPointBurn, Deploy: d, Send: &usecase.SendDeployResult{}}))
	assert.Contains(t, out.String(), "Deploy not sent")

	out.Reset()
	require.NoError(t, NewDeployRenderer(&out, FormatJSON).Render(&DeployResult{
		EntryPoint: domain.EntryPointBurn,
		Deploy:     d,
		Send:       &usecase.SendDeployResult{DeployHash: d.HashHex(), Sent: true},
	}))
	assert.JSONEq(t, `{"entry_point": "burn", "deploy_hash": "`+d.HashHex()+`", "sent": true}`, out.String())
}

func TestDeployRenderer_JSON(t *testing.T) {
	d := testDeploy(false)

	var out bytes.Buffer
	require.NoError(t, NewDeployRenderer(&out, FormatJSON).Render(&DeployResult{EntryPoint: domain.EntryPointMint, Deploy: d}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, d.HashHex(), doc["hash"])
	assert.Empty(t, doc["approvals"])
}

func TestConfigRenderer(t *testing.T) {
	contract := &domain.ContractReference{Hash: [32]byte{0xab}}
	entries := []usecase.ConfigEntry{
		{Item: domain.ItemCollectionName, Value: "Punks"},
		{Item: domain.ItemBurnMode, Err: errors.New("boom")},
	}

	t.Run("item", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewConfigRenderer(&out, FormatText).RenderItem(&ConfigItemResult{Item: domain.ItemCollectionName, Value: "Punks"}))
		assert.Equal(t, "Punks\n", out.String())

		out.Reset()
		require.NoError(t, NewConfigRenderer(&out, FormatYAML).RenderItem(&ConfigItemResult{Item: domain.ItemCollectionName, Value: "Punks"}))
		assert.Equal(t, "collection_name: Punks\n", out.String())
	})

	t.Run("snapshot text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewConfigRenderer(&out, FormatText).RenderSnapshot(contract, entries))
		assert.Contains(t, out.String(), contract.String())
		assert.Contains(t, out.String(), "Collection Name")
		assert.Contains(t, out.String(), "Punks")
		assert.Contains(t, out.String(), "error: boom")
		assert.Contains(t, out.String(), "1 of 2 items could not be read")
	})

	t.Run("snapshot json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewConfigRenderer(&out, FormatJSON).RenderSnapshot(contract, entries))
		assert.JSONEq(t, `{
			"contract": "`+contract.String()+`",
			"items": [
				{"item": "collection_name", "value": "Punks"},
				{"item": "burn_mode", "error": "boom"}
			]
		}`, out.String())
	})
}

func TestQueryRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewQueryRenderer(&out, FormatText)

	require.NoError(t, r.RenderValue("owner", "account-hash-01"))
	assert.Equal(t, "account-hash-01\n", out.String())

	out.Reset()
	require.NoError(t, r.RenderMetadata("7", map[string]string{"symbol": "JD", "name": "John"}))
	text := out.String()
	assert.Contains(t, text, "FIELD")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("name")), bytes.Index(out.Bytes(), []byte("symbol")))
	assert.Contains(t, text, "John")

	out.Reset()
	require.NoError(t, r.RenderMetadata("7", nil))
	assert.Equal(t, "Token 7 has no metadata\n", out.String())

	out.Reset()
	require.NoError(t, NewQueryRenderer(&out, FormatJSON).RenderMetadata("7", map[string]string{"name": "John"}))
	assert.JSONEq(t, `{"token_id": "7", "metadata": {"name": "John"}}`, out.String())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "Collection Name", TitleCase("collection_name"))
	assert.Equal(t, "❌ Boom", FormatError("boom"))
	assert.Equal(t, "✅ done", FormatSuccess("done"))
	assert.Equal(t, "⚠️  careful", FormatWarning("careful"))
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{Networks: []usecase.NetworkStatus{
		{Network: config.Network{Name: "local", ChainName: "casper-net-1"}},
		{Network: config.Network{Name: "mainnet", NodeURL: "http://mainnet/rpc"}, Error: errors.New("connection refused")},
		{Network: config.Network{Name: "testnet", NodeURL: "http://testnet/rpc", ChainName: "casper-test"}, Current: true, StateRootHash: "root"},
	}}

	var out bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&out, FormatText).RenderNetworksList(result))
	assert.Contains(t, out.String(), "• local - casper-net-1 (no node_url)")
	assert.Contains(t, out.String(), "❌ mainnet - Error: connection refused")
	assert.Contains(t, out.String(), "✅ testnet * - casper-test (http://testnet/rpc) - State root: root")

	out.Reset()
	require.NoError(t, NewNetworksRenderer(&out, FormatText).RenderNetworksList(&usecase.ListNetworksResult{}))
	assert.Contains(t, out.String(), "No networks configured")

	out.Reset()
	require.NoError(t, NewNetworksRenderer(&out, FormatJSON).RenderNetworksList(result))
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "connection refused", docs[1]["error"])
	assert.Equal(t, true, docs[2]["current"])
}
