package domain

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/blake2b"

	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// KeyAlgorithm is the signature scheme of an account key. Its value is the
// tag byte that prefixes keys and signatures.
type KeyAlgorithm uint8

const (
	AlgorithmEd25519   KeyAlgorithm = 1
	AlgorithmSecp256k1 KeyAlgorithm = 2
)

func (a KeyAlgorithm) String() string {
	switch a {
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// PublicKey is an account public key.
type PublicKey struct {
	Algorithm KeyAlgorithm
	Raw       []byte
}

// ParsePublicKey reads the tagged hex form, e.g. "01" followed by 32 ed25519 bytes.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, &ValidationError{Field: "public key", Reason: err.Error()}
	}
	if len(b) == 0 {
		return PublicKey{}, &ValidationError{Field: "public key", Reason: "empty"}
	}
	pk := PublicKey{Algorithm: KeyAlgorithm(b[0]), Raw: b[1:]}
	switch {
	case pk.Algorithm == AlgorithmEd25519 && len(pk.Raw) == 32:
	case pk.Algorithm == AlgorithmSecp256k1 && len(pk.Raw) == 33:
	default:
		return PublicKey{}, &ValidationError{
			Field:  "public key",
			Reason: fmt.Sprintf("%d bytes with tag %d", len(pk.Raw), b[0]),
		}
	}
	return pk, nil
}

// Bytes is the tag byte followed by the raw key.
func (p PublicKey) Bytes() []byte {
	return append([]byte{byte(p.Algorithm)}, p.Raw...)
}

func (p PublicKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

func (p PublicKey) String() string {
	return p.Hex()
}

// AccountHash is blake2b-256 over the algorithm name, a zero byte and the raw key.
func (p PublicKey) AccountHash() [32]byte {
	return Blake2b256([]byte(p.Algorithm.String()), []byte{0}, p.Raw)
}

// AccountKey is the account Key owned by p.
func (p PublicKey) AccountKey() clvalue.Key {
	return clvalue.AccountKey(p.AccountHash())
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Hex())
}

// ParseAccount reads an account given as "account-hash-…" or as a public key hex.
func ParseAccount(s string) (clvalue.Key, error) {
	if strings.HasPrefix(s, clvalue.AccountHashPrefix) {
		k, err := clvalue.ParseKey(s)
		if err != nil {
			return clvalue.Key{}, &ValidationError{Field: "account", Reason: err.Error()}
		}
		return k, nil
	}
	pk, err := ParsePublicKey(s)
	if err != nil {
		return clvalue.Key{}, err
	}
	return pk.AccountKey(), nil
}

// Signature is a tagged signature.
type Signature struct {
	Algorithm KeyAlgorithm
	Raw       []byte
}

func (s Signature) Hex() string {
	return hex.EncodeToString(append([]byte{byte(s.Algorithm)}, s.Raw...))
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Hex())
}

// Approval is one signature over the deploy hash.
type Approval struct {
	Signer    PublicKey `json:"signer"`
	Signature Signature `json:"signature"`
}

// ModuleBytes runs a session program.
type ModuleBytes struct {
	Module []byte
	Args   *clvalue.Args
}

// StoredContractByHash calls an entry point of an installed contract.
type StoredContractByHash struct {
	Hash       [32]byte
	EntryPoint string
	Args       *clvalue.Args
}

// ExecutableDeployItem is the payment or session part of a deploy. Exactly one
// field is set.
type ExecutableDeployItem struct {
	ModuleBytes          *ModuleBytes
	StoredContractByHash *StoredContractByHash
}

// NewModuleBytes wraps a session program.
func NewModuleBytes(module []byte, args *clvalue.Args) ExecutableDeployItem {
	return ExecutableDeployItem{ModuleBytes: &ModuleBytes{Module: module, Args: args}}
}

// NewStoredContractByHash wraps a stored entry point call.
func NewStoredContractByHash(hash [32]byte, entryPoint EntryPoint, args *clvalue.Args) ExecutableDeployItem {
	return ExecutableDeployItem{StoredContractByHash: &StoredContractByHash{
		Hash:       hash,
		EntryPoint: string(entryPoint),
		Args:       args,
	}}
}

// StandardPayment pays amount motes from the sender's main purse.
func StandardPayment(amount *uint256.Int) ExecutableDeployItem {
	args := clvalue.NewArgs()
	args.Insert("amount", clvalue.U512(amount))
	return NewModuleBytes(nil, args)
}

// Args returns the runtime arguments of the item.
func (e ExecutableDeployItem) Args() *clvalue.Args {
	switch {
	case e.ModuleBytes != nil:
		return e.ModuleBytes.Args
	case e.StoredContractByHash != nil:
		return e.StoredContractByHash.Args
	default:
		return clvalue.NewArgs()
	}
}

func argsOrEmpty(a *clvalue.Args) *clvalue.Args {
	if a == nil {
		return clvalue.NewArgs()
	}
	return a
}

// Bytes serializes the item: its tag, its body, then its args.
func (e ExecutableDeployItem) Bytes() []byte {
	var out []byte
	switch {
	case e.ModuleBytes != nil:
		out = append(out, 0)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(e.ModuleBytes.Module)))
		out = append(out, e.ModuleBytes.Module...)
		out = append(out, argsOrEmpty(e.ModuleBytes.Args).Bytes()...)
	case e.StoredContractByHash != nil:
		out = append(out, 1)
		out = append(out, e.StoredContractByHash.Hash[:]...)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(e.StoredContractByHash.EntryPoint)))
		out = append(out, e.StoredContractByHash.EntryPoint...)
		out = append(out, argsOrEmpty(e.StoredContractByHash.Args).Bytes()...)
	}
	return out
}

func (e ExecutableDeployItem) MarshalJSON() ([]byte, error) {
	switch {
	case e.ModuleBytes != nil:
		return json.Marshal(map[string]any{"ModuleBytes": map[string]any{
			"module_bytes": hex.EncodeToString(e.ModuleBytes.Module),
			"args":         argsOrEmpty(e.ModuleBytes.Args),
		}})
	case e.StoredContractByHash != nil:
		return json.Marshal(map[string]any{"StoredContractByHash": map[string]any{
			"hash":        hex.EncodeToString(e.StoredContractByHash.Hash[:]),
			"entry_point": e.StoredContractByHash.EntryPoint,
			"args":        argsOrEmpty(e.StoredContractByHash.Args),
		}})
	default:
		return nil, fmt.Errorf("empty executable deploy item")
	}
}

// DeployHeader is the signed part of a deploy.
type DeployHeader struct {
	Account      PublicKey
	Timestamp    time.Time
	TTL          time.Duration
	GasPrice     uint64
	BodyHash     [32]byte
	Dependencies [][32]byte
	ChainName    string
}

// Bytes serializes the header in the order the node hashes it.
func (h DeployHeader) Bytes() []byte {
	out := h.Account.Bytes()
	out = binary.LittleEndian.AppendUint64(out, uint64(h.Timestamp.UnixMilli()))
	out = binary.LittleEndian.AppendUint64(out, uint64(h.TTL.Milliseconds()))
	out = binary.LittleEndian.AppendUint64(out, h.GasPrice)
	out = append(out, h.BodyHash[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(h.Dependencies)))
	for _, d := range h.Dependencies {
		out = append(out, d[:]...)
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(h.ChainName)))
	return append(out, h.ChainName...)
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

func (h DeployHeader) MarshalJSON() ([]byte, error) {
	deps := make([]string, len(h.Dependencies))
	for i, d := range h.Dependencies {
		deps[i] = hex.EncodeToString(d[:])
	}
	return json.Marshal(struct {
		Account      PublicKey `json:"account"`
		Timestamp    string    `json:"timestamp"`
		TTL          string    `json:"ttl"`
		GasPrice     uint64    `json:"gas_price"`
		BodyHash     string    `json:"body_hash"`
		Dependencies []string  `json:"dependencies"`
		ChainName    string    `json:"chain_name"`
	}{
		Account:      h.Account,
		Timestamp:    h.Timestamp.UTC().Format(timestampLayout),
		TTL:          FormatTTL(h.TTL),
		GasPrice:     h.GasPrice,
		BodyHash:     hex.EncodeToString(h.BodyHash[:]),
		Dependencies: deps,
		ChainName:    h.ChainName,
	})
}

// FormatTTL renders d the way the node expects, e.g. "30m" or "1day 2h".
// Precision below a millisecond is dropped.
func FormatTTL(d time.Duration) string {
	ms := d.Milliseconds()
	if ms <= 0 {
		return "0s"
	}
	units := []struct {
		size int64
		name string
	}{
		{24 * 60 * 60 * 1000, "day"},
		{60 * 60 * 1000, "h"},
		{60 * 1000, "m"},
		{1000, "s"},
		{1, "ms"},
	}
	var parts []string
	for _, u := range units {
		n := ms / u.size
		if n == 0 {
			continue
		}
		ms -= n * u.size
		name := u.name
		if name == "day" && n > 1 {
			name = "days"
		}
		parts = append(parts, fmt.Sprintf("%d%s", n, name))
	}
	return strings.Join(parts, " ")
}

// Deploy is a prepared unit of work for the node.
type Deploy struct {
	Hash      [32]byte
	Header    DeployHeader
	Payment   ExecutableDeployItem
	Session   ExecutableDeployItem
	Approvals []Approval
}

// DeployParams are the header inputs of NewDeploy.
type DeployParams struct {
	Account   PublicKey
	Timestamp time.Time
	TTL       time.Duration
	GasPrice  uint64
	ChainName string
}

// NewDeploy builds an unsigned deploy and computes its body and deploy hashes.
func NewDeploy(params DeployParams, payment, session ExecutableDeployItem) *Deploy {
	header := DeployHeader{
		Account:   params.Account,
		Timestamp: params.Timestamp.Truncate(time.Millisecond),
		TTL:       params.TTL,
		GasPrice:  params.GasPrice,
		BodyHash:  Blake2b256(payment.Bytes(), session.Bytes()),
		ChainName: params.ChainName,
	}
	return &Deploy{
		Hash:    Blake2b256(header.Bytes()),
		Header:  header,
		Payment: payment,
		Session: session,
	}
}

// HashHex is the deploy hash as the node prints it.
func (d *Deploy) HashHex() string {
	return hex.EncodeToString(d.Hash[:])
}

// Signed reports whether the deploy carries at least one approval.
func (d *Deploy) Signed() bool {
	return len(d.Approvals) > 0
}

// AddApproval appends a signature unless the same signer already signed.
func (d *Deploy) AddApproval(a Approval) {
	for _, existing := range d.Approvals {
		if existing.Signer.Hex() == a.Signer.Hex() {
			return
		}
	}
	d.Approvals = append(d.Approvals, a)
}

func (d *Deploy) MarshalJSON() ([]byte, error) {
	approvals := d.Approvals
	if approvals == nil {
		approvals = []Approval{}
	}
	return json.Marshal(struct {
		Hash      string               `json:"hash"`
		Header    DeployHeader         `json:"header"`
		Payment   ExecutableDeployItem `json:"payment"`
		Session   ExecutableDeployItem `json:"session"`
		Approvals []Approval           `json:"approvals"`
	}{
		Hash:      d.HashHex(),
		Header:    d.Header,
		Payment:   d.Payment,
		Session:   d.Session,
		Approvals: approvals,
	})
}

// Blake2b256 hashes the concatenation of parts.
func Blake2b256(parts ...[]byte) [32]byte {
	h, _ := blake2b.New256(nil)
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
