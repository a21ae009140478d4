package clvalue

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsInsert(t *testing.T) {
	args := NewArgs()
	args.Insert("collection_name", String("enhanced-nft"))
	args.Insert("total_token_supply", U64(10))
	args.Insert("ownership_mode", U8(2))

	assert.Equal(t, []string{"collection_name", "total_token_supply", "ownership_mode"}, args.Names())
	assert.Equal(t, 3, args.Len())

	// replacing keeps the original position
	args.Insert("collection_name", String("renamed"))
	assert.Equal(t, []string{"collection_name", "total_token_supply", "ownership_mode"}, args.Names())

	v, ok := args.Get("collection_name")
	require.True(t, ok)
	name, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "renamed", name)

	assert.True(t, args.Has("ownership_mode"))
	assert.False(t, args.Has("burn_mode"))
	_, ok = args.Get("burn_mode")
	assert.False(t, ok)

	var zero Args
	zero.Insert("amount", U512(uint256.NewInt(1)))
	assert.Equal(t, []string{"amount"}, zero.Names())

	assert.PanicsWithValue(t, `clvalue: zero Value for argument "x"`, func() { zero.Insert("x", Value{}) })
	assert.False(t, zero.Has("x"))
}

func TestArgsBytes(t *testing.T) {
	args := NewArgs()
	args.Insert("a", U8(1))

	// count, name "a", CLValue(len 1, payload 01, type U8)
	assert.Equal(t, "01000000"+"0100000061"+"0100000001"+"03", hex.EncodeToString(args.Bytes()))
	assert.Equal(t, "00000000", hex.EncodeToString(NewArgs().Bytes()))
}

func TestArgsJSONRoundTrip(t *testing.T) {
	meta := StringMap(map[string]string{"color": "Blue"})
	whitelist, err := List(KeyType, KeyValue(HashKey([32]byte{1})))
	require.NoError(t, err)

	args := NewArgs()
	args.Insert("token_meta_data", String(`{"color":"Blue"}`))
	args.Insert("meta", meta)
	args.Insert("burn_mode", None(U8Type))
	args.Insert("contract_whitelist", whitelist)
	args.Insert("amount", U512(uint256.NewInt(2500000000)))
	args.Insert("hash", ByteArray(make([]byte, 32)))

	data, err := json.Marshal(args)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `[["token_meta_data",{"cl_type":"String"`), string(data))
	assert.Contains(t, string(data), `"parsed":"2500000000"`)
	assert.Contains(t, string(data), `{"cl_type":{"Option":"U8"},"bytes":"00","parsed":null}`)

	var decoded Args
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, args.Names(), decoded.Names())
	assert.Equal(t, args.Bytes(), decoded.Bytes())
}

func TestValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, v Value)
	}{
		{
			name:  "u8 ignores parsed",
			input: `{"cl_type":"U8","bytes":"02","parsed":99}`,
			check: func(t *testing.T, v Value) {
				u, err := v.AsU8()
				require.NoError(t, err)
				assert.Equal(t, uint8(2), u)
			},
		},
		{
			name:  "string map",
			input: `{"cl_type":{"Map":{"key":"String","value":"String"}},"bytes":"0100000005000000636f6c6f7204000000426c7565"}`,
			check: func(t *testing.T, v Value) {
				m, err := v.AsStringMap()
				require.NoError(t, err)
				assert.Equal(t, map[string]string{"color": "Blue"}, m)
			},
		},
		{
			name:  "byte array",
			input: `{"cl_type":{"ByteArray":2},"bytes":"abcd"}`,
			check: func(t *testing.T, v Value) {
				b, err := v.AsByteArray()
				require.NoError(t, err)
				assert.Equal(t, []byte{0xab, 0xcd}, b)
			},
		},
		{name: "unknown type", input: `{"cl_type":"U256","bytes":"00"}`, wantErr: true},
		{name: "bad hex", input: `{"cl_type":"U8","bytes":"zz"}`, wantErr: true},
		{name: "bytes disagree with type", input: `{"cl_type":"U64","bytes":"01"}`, wantErr: true},
		{name: "option without inner", input: `{"cl_type":"Option","bytes":"00"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			err := json.Unmarshal([]byte(tt.input), &v)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}
