package keys

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

func writeKey(t *testing.T, dir string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, SecretKeyFile)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFileSigner_Ed25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	dir := t.TempDir()
	writeKey(t, dir, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	// a directory resolves to its secret_key.pem
	signer := NewFileSigner(&config.RuntimeConfig{KeyPath: dir})

	pk, err := signer.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, domain.AlgorithmEd25519, pk.Algorithm)
	assert.Equal(t, []byte(pub), pk.Raw)

	var hash [32]byte
	hash[0] = 1
	approval, err := signer.Sign(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, pk, approval.Signer)
	assert.Len(t, approval.Signature.Raw, ed25519.SignatureSize)
	assert.True(t, ed25519.Verify(pub, hash[:], approval.Signature.Raw))
	assert.Equal(t, "01", approval.Signature.Hex()[:2])
}

func TestFileSigner_Secp256k1(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	data, err := MarshalSEC1(priv)
	require.NoError(t, err)

	// openssl writes the curve parameters ahead of the key
	params := pem.EncodeToMemory(&pem.Block{Type: "EC PARAMETERS", Bytes: []byte{0x06, 0x05, 0x2b, 0x81, 0x04, 0x00, 0x0a}})
	path := writeKey(t, t.TempDir(), append(params, data...))

	signer := NewFileSigner(&config.RuntimeConfig{KeyPath: path})

	pk, err := signer.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, domain.AlgorithmSecp256k1, pk.Algorithm)
	assert.Equal(t, priv.PubKey().SerializeCompressed(), pk.Raw)

	var hash [32]byte
	hash[31] = 9
	approval, err := signer.Sign(context.Background(), hash)
	require.NoError(t, err)
	require.Len(t, approval.Signature.Raw, 64)

	var r, s secp256k1.ModNScalar
	r.SetByteSlice(approval.Signature.Raw[:32])
	s.SetByteSlice(approval.Signature.Raw[32:])
	digest := sha256.Sum256(hash[:])
	assert.True(t, ecdsa.NewSignature(&r, &s).Verify(digest[:], priv.PubKey()))
}

func TestFileSigner_NoKey(t *testing.T) {
	signer := NewFileSigner(&config.RuntimeConfig{})

	_, err := signer.PublicKey()
	assert.ErrorIs(t, err, domain.ErrNoSigningKey)

	_, err = signer.Sign(context.Background(), [32]byte{})
	assert.ErrorIs(t, err, domain.ErrNoSigningKey)
}

func TestParseSecretKey_Invalid(t *testing.T) {
	tests := map[string][]byte{
		"empty":          nil,
		"not pem":        []byte("secret"),
		"public key":     pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte{1}}),
		"garbage pkcs8":  pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1, 2, 3}}),
		"garbage ec key": pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{1, 2, 3}}),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSecretKey(data)
			assert.Error(t, err)
		})
	}
}

func TestLoadSecretKey_Missing(t *testing.T) {
	_, err := LoadSecretKey(filepath.Join(t.TempDir(), "nope.pem"))
	assert.ErrorContains(t, err, "failed to read secret key")
}
