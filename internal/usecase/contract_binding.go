package usecase

import (
	"sync/atomic"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

// ContractBinding holds the contract the client currently targets. Readers
// see either the previous or the new reference, never a mix.
type ContractBinding struct {
	ref atomic.Pointer[domain.ContractReference]
}

// NewContractBinding binds the contract configured for the network, if any
func NewContractBinding(cfg *config.RuntimeConfig) (*ContractBinding, error) {
	b := &ContractBinding{}
	if cfg.Network != nil && cfg.Network.ContractHash != "" {
		if _, err := b.SetContractHash(cfg.Network.ContractHash, cfg.Network.ContractPackageHash); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// SetContractHash binds the client to a contract. Both hashes may carry a
// "hash-" prefix; packageHash may be empty.
func (b *ContractBinding) SetContractHash(hash, packageHash string) (*domain.ContractReference, error) {
	ref, err := domain.ParseContractReference(hash, packageHash)
	if err != nil {
		return nil, err
	}
	b.ref.Store(ref)
	return ref, nil
}

// Current returns the bound contract or nil
func (b *ContractBinding) Current() *domain.ContractReference {
	return b.ref.Load()
}

// Require returns the bound contract or a UsageError naming op
func (b *ContractBinding) Require(op string) (*domain.ContractReference, error) {
	ref := b.ref.Load()
	if ref == nil {
		return nil, domain.NotBound(op)
	}
	return ref, nil
}
