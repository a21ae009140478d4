package domain

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

func testPublicKey(t *testing.T) PublicKey {
	t.Helper()
	pk, err := ParsePublicKey("01" + strings.Repeat("ab", 32))
	require.NoError(t, err)
	return pk
}

func TestParsePublicKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantAlg KeyAlgorithm
		wantErr bool
	}{
		{name: "ed25519", input: "01" + strings.Repeat("ab", 32), wantAlg: AlgorithmEd25519},
		{name: "secp256k1", input: "02" + "03" + strings.Repeat("cd", 32), wantAlg: AlgorithmSecp256k1},
		{name: "ed25519 wrong length", input: "01" + strings.Repeat("ab", 33), wantErr: true},
		{name: "unknown tag", input: "05" + strings.Repeat("ab", 32), wantErr: true},
		{name: "not hex", input: "01zz", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, err := ParsePublicKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAlg, pk.Algorithm)
			assert.Equal(t, tt.input, pk.Hex())
		})
	}
}

func TestAccountHash(t *testing.T) {
	pk := testPublicKey(t)

	preimage := append([]byte("ed25519\x00"), pk.Raw...)
	want := blake2b.Sum256(preimage)

	assert.Equal(t, want, pk.AccountHash())
	assert.Equal(t, "account-hash-"+hex.EncodeToString(want[:]), pk.AccountKey().String())

	fromHex, err := ParseAccount(pk.Hex())
	require.NoError(t, err)
	fromHash, err := ParseAccount(pk.AccountKey().String())
	require.NoError(t, err)
	assert.Equal(t, fromHash, fromHex)
}

func TestFormatTTL(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Minute, "30m"},
		{time.Hour + 30*time.Minute, "1h 30m"},
		{24 * time.Hour, "1day"},
		{50*time.Hour + 1500*time.Millisecond, "2days 2h 1s 500ms"},
		{0, "0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTTL(tt.in), tt.in.String())
	}
}

func TestNewDeploy(t *testing.T) {
	pk := testPublicKey(t)
	ts := time.Date(2024, 5, 1, 12, 0, 0, 123_456_789, time.UTC)

	sessionArgs := clvalue.NewArgs()
	sessionArgs.Insert("token_id", clvalue.U64(1))
	session := NewStoredContractByHash([32]byte{9}, EntryPointBurn, sessionArgs)
	payment := StandardPayment(uint256.NewInt(1_000_000_000))

	deploy := NewDeploy(DeployParams{
		Account:   pk,
		Timestamp: ts,
		TTL:       30 * time.Minute,
		GasPrice:  1,
		ChainName: "casper-test",
	}, payment, session)

	assert.Equal(t, Blake2b256(payment.Bytes(), session.Bytes()), deploy.Header.BodyHash)
	assert.Equal(t, blake2b.Sum256(deploy.Header.Bytes()), deploy.Hash)
	assert.False(t, deploy.Signed())

	t.Run("header bytes layout", func(t *testing.T) {
		b := deploy.Header.Bytes()
		// key(33) ts(8) ttl(8) gas(8) body(32) deps(4) chain(4+11)
		assert.Len(t, b, 33+8+8+8+32+4+4+len("casper-test"))
		assert.Equal(t, pk.Bytes(), b[:33])
		assert.Equal(t, uint64(ts.UnixMilli()), leU64(b[33:41]))
		assert.Equal(t, uint64(30*60*1000), leU64(b[41:49]))
	})

	t.Run("session bytes", func(t *testing.T) {
		b := session.Bytes()
		assert.Equal(t, byte(1), b[0])
		assert.Equal(t, byte(9), b[1])
		assert.Equal(t, "04000000"+hex.EncodeToString([]byte("burn")), hex.EncodeToString(b[33:41]))
		assert.Equal(t, sessionArgs.Bytes(), b[41:])
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(deploy)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, deploy.HashHex(), raw["hash"])
		assert.Equal(t, []any{}, raw["approvals"])

		header := raw["header"].(map[string]any)
		assert.Equal(t, "2024-05-01T12:00:00.123Z", header["timestamp"])
		assert.Equal(t, "30m", header["ttl"])
		assert.Equal(t, pk.Hex(), header["account"])
		assert.Equal(t, "casper-test", header["chain_name"])

		stored := raw["session"].(map[string]any)["StoredContractByHash"].(map[string]any)
		assert.Equal(t, "burn", stored["entry_point"])
		module := raw["payment"].(map[string]any)["ModuleBytes"].(map[string]any)
		assert.Equal(t, "", module["module_bytes"])
	})

	t.Run("approvals are unique per signer", func(t *testing.T) {
		approval := Approval{Signer: pk, Signature: Signature{Algorithm: AlgorithmEd25519, Raw: make([]byte, 64)}}
		deploy.AddApproval(approval)
		deploy.AddApproval(approval)
		assert.Len(t, deploy.Approvals, 1)
		assert.True(t, deploy.Signed())
		assert.True(t, strings.HasPrefix(approval.Signature.Hex(), "01"))
	})
}

func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
