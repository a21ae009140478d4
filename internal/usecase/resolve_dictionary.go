package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// ResolveDictionary looks up per-token and per-account entries in the
// dictionaries owned by the bound contract
type ResolveDictionary struct {
	state   StateQuerier
	binding *ContractBinding
	config  *ReadConfig
	log     *slog.Logger
}

// NewResolveDictionary creates a new dictionary resolver
func NewResolveDictionary(state StateQuerier, binding *ContractBinding, config *ReadConfig, log *slog.Logger) *ResolveDictionary {
	return &ResolveDictionary{
		state:   state,
		binding: binding,
		config:  config,
		log:     log,
	}
}

// OwnerOf returns the owner of tokenID as an "account-hash-" string
func (r *ResolveDictionary) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	v, err := r.lookup(ctx, "owner of", domain.DictTokenOwners, tokenID)
	if err != nil {
		return "", err
	}
	key, err := v.AsKey()
	if err != nil {
		return "", domain.WrapDecode(domain.DictTokenOwners, err)
	}
	return clvalue.AccountHashPrefix + key.Hex(), nil
}

// BalanceOf returns the number of tokens held by accountHash, which must
// carry the "account-hash-" prefix
func (r *ResolveDictionary) BalanceOf(ctx context.Context, accountHash string) (uint64, error) {
	itemKey, err := domain.BalanceDictionaryKey(accountHash)
	if err != nil {
		return 0, err
	}
	v, err := r.lookup(ctx, "balance of", domain.DictBalances, itemKey)
	if err != nil {
		return 0, err
	}
	n, err := v.AsU64()
	if err != nil {
		return 0, domain.WrapDecode(domain.DictBalances, err)
	}
	return n, nil
}

// MetadataOf returns the metadata of tokenID. When kind is nil the
// contract's metadata kind is read first.
func (r *ResolveDictionary) MetadataOf(ctx context.Context, tokenID string, kind *domain.NFTMetadataKind) (map[string]string, error) {
	if _, err := r.binding.Require("metadata of"); err != nil {
		return nil, err
	}

	if kind == nil {
		k, err := r.config.MetadataKind(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata kind: %w", err)
		}
		kind = &k
	}

	dictionary, err := domain.MetadataDictionary(*kind)
	if err != nil {
		return nil, err
	}

	v, err := r.lookup(ctx, "metadata of", dictionary, tokenID)
	if err != nil {
		return nil, err
	}
	meta, err := v.AsStringMap()
	if err != nil {
		return nil, domain.WrapDecode(dictionary, err)
	}
	return meta, nil
}

func (r *ResolveDictionary) lookup(ctx context.Context, op, dictionary, itemKey string) (clvalue.Value, error) {
	ref, err := r.binding.Require(op)
	if err != nil {
		return clvalue.Value{}, err
	}

	root, err := r.state.StateRootHash(ctx)
	if err != nil {
		return clvalue.Value{}, fmt.Errorf("failed to get state root hash: %w", err)
	}

	r.log.Debug("query dictionary item", "dictionary", dictionary, "item_key", itemKey)
	v, err := r.state.QueryDictionaryItem(ctx, root, ref.Hash, dictionary, itemKey)
	if err != nil {
		return clvalue.Value{}, fmt.Errorf("failed to query %s[%s]: %w", dictionary, itemKey, err)
	}
	return v, nil
}
