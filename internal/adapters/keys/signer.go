package keys

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// SecretKeyFile is the file looked up when the key path is a directory
const SecretKeyFile = "secret_key.pem"

var oidSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}

// FileSigner signs deploys with a secret key read from a PEM file. The file
// is read on first use.
type FileSigner struct {
	path string

	once sync.Once
	key  SecretKey
	err  error
}

var _ usecase.Signer = (*FileSigner)(nil)

// SecretKey is a loaded account secret key
type SecretKey interface {
	Public() domain.PublicKey
	SignHash(hash [32]byte) (domain.Signature, error)
}

// NewFileSigner creates a signer for the configured key path. An empty path
// yields a signer without a key.
func NewFileSigner(cfg *config.RuntimeConfig) *FileSigner {
	return &FileSigner{path: cfg.KeyPath}
}

// PublicKey returns the public key of the secret key
func (s *FileSigner) PublicKey() (domain.PublicKey, error) {
	key, err := s.load()
	if err != nil {
		return domain.PublicKey{}, err
	}
	return key.Public(), nil
}

// Sign signs a deploy hash
func (s *FileSigner) Sign(_ context.Context, hash [32]byte) (domain.Approval, error) {
	key, err := s.load()
	if err != nil {
		return domain.Approval{}, err
	}
	sig, err := key.SignHash(hash)
	if err != nil {
		return domain.Approval{}, err
	}
	return domain.Approval{Signer: key.Public(), Signature: sig}, nil
}

func (s *FileSigner) load() (SecretKey, error) {
	if s.path == "" {
		return nil, domain.ErrNoSigningKey
	}
	s.once.Do(func() {
		s.key, s.err = LoadSecretKey(s.path)
	})
	return s.key, s.err
}

// LoadSecretKey reads an ed25519 (PKCS#8) or secp256k1 (SEC 1) secret key.
// path may name the PEM file or the directory holding secret_key.pem.
func LoadSecretKey(path string) (SecretKey, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, SecretKeyFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret key: %w", err)
	}
	key, err := ParseSecretKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secret key %s: %w", path, err)
	}
	return key, nil
}

// ParseSecretKey decodes the first private key block of a PEM document
func ParseSecretKey(data []byte) (SecretKey, error) {
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return nil, errors.New("no private key block found")
		}
		switch block.Type {
		case "PRIVATE KEY":
			return parsePKCS8(block.Bytes)
		case "EC PRIVATE KEY":
			return parseSEC1(block.Bytes)
		}
	}
}

func parsePKCS8(der []byte) (SecretKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	edKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unsupported PKCS#8 key type %T", key)
	}
	return ed25519Key{edKey}, nil
}

type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

func parseSEC1(der []byte) (SecretKey, error) {
	var ec ecPrivateKey
	if _, err := asn1.Unmarshal(der, &ec); err != nil {
		return nil, fmt.Errorf("invalid EC private key: %w", err)
	}
	if len(ec.NamedCurveOID) > 0 && !ec.NamedCurveOID.Equal(oidSecp256k1) {
		return nil, fmt.Errorf("unsupported curve %s", ec.NamedCurveOID)
	}
	if len(ec.PrivateKey) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("secp256k1 key is %d bytes", len(ec.PrivateKey))
	}
	return secp256k1Key{secp256k1.PrivKeyFromBytes(ec.PrivateKey)}, nil
}

// MarshalSEC1 encodes a secp256k1 secret key as an "EC PRIVATE KEY" PEM block
func MarshalSEC1(key *secp256k1.PrivateKey) ([]byte, error) {
	der, err := asn1.Marshal(ecPrivateKey{
		Version:       1,
		PrivateKey:    key.Serialize(),
		NamedCurveOID: oidSecp256k1,
		PublicKey: asn1.BitString{
			Bytes:     key.PubKey().SerializeUncompressed(),
			BitLength: 8 * secp256k1.PubKeyBytesLenUncompressed,
		},
	})
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), nil
}

type ed25519Key struct {
	key ed25519.PrivateKey
}

func (k ed25519Key) Public() domain.PublicKey {
	return domain.PublicKey{
		Algorithm: domain.AlgorithmEd25519,
		Raw:       []byte(k.key.Public().(ed25519.PublicKey)),
	}
}

func (k ed25519Key) SignHash(hash [32]byte) (domain.Signature, error) {
	return domain.Signature{Algorithm: domain.AlgorithmEd25519, Raw: ed25519.Sign(k.key, hash[:])}, nil
}

type secp256k1Key struct {
	key *secp256k1.PrivateKey
}

func (k secp256k1Key) Public() domain.PublicKey {
	return domain.PublicKey{
		Algorithm: domain.AlgorithmSecp256k1,
		Raw:       k.key.PubKey().SerializeCompressed(),
	}
}

// SignHash produces the 64-byte r||s form over sha256 of the deploy hash
func (k secp256k1Key) SignHash(hash [32]byte) (domain.Signature, error) {
	digest := sha256.Sum256(hash[:])
	compact := ecdsa.SignCompact(k.key, digest[:], true)
	return domain.Signature{Algorithm: domain.AlgorithmSecp256k1, Raw: compact[1:]}, nil
}
