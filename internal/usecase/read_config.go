package usecase

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// ReadConfig reads the settings stored by the bound contract. Every call is
// one uncached read against the latest state root.
type ReadConfig struct {
	state   StateQuerier
	binding *ContractBinding
	log     *slog.Logger
}

// NewReadConfig creates a new read config use case
func NewReadConfig(state StateQuerier, binding *ContractBinding, log *slog.Logger) *ReadConfig {
	return &ReadConfig{
		state:   state,
		binding: binding,
		log:     log,
	}
}

// ConfigEntry is one row of a snapshot
type ConfigEntry struct {
	Item  domain.ConfigItem
	Value string
	Err   error
}

// GetConfig returns the raw value stored under item
func (r *ReadConfig) GetConfig(ctx context.Context, item domain.ConfigItem) (clvalue.Value, error) {
	ref, err := r.binding.Require("read " + string(item))
	if err != nil {
		return clvalue.Value{}, err
	}

	root, err := r.state.StateRootHash(ctx)
	if err != nil {
		return clvalue.Value{}, fmt.Errorf("failed to get state root hash: %w", err)
	}

	v, err := r.state.QueryContractValue(ctx, root, ref.Hash, []string{string(item)})
	if err != nil {
		return clvalue.Value{}, fmt.Errorf("failed to query %s: %w", item, err)
	}

	r.log.Debug("read config item", "item", item, "cl_type", v.Type().String())
	return v, nil
}

func readEnum[T domain.ConfigEnum](ctx context.Context, r *ReadConfig, item domain.ConfigItem) (T, error) {
	var zero T
	v, err := r.GetConfig(ctx, item)
	if err != nil {
		return zero, err
	}
	raw, err := v.AsU8()
	if err != nil {
		return zero, domain.WrapDecode(string(item), err)
	}
	return domain.EnumFromU8[T](item, raw)
}

func (r *ReadConfig) OwnershipMode(ctx context.Context) (domain.NFTOwnershipMode, error) {
	return readEnum[domain.NFTOwnershipMode](ctx, r, domain.ItemOwnershipMode)
}

func (r *ReadConfig) NFTKind(ctx context.Context) (domain.NFTKind, error) {
	return readEnum[domain.NFTKind](ctx, r, domain.ItemNFTKind)
}

func (r *ReadConfig) MetadataKind(ctx context.Context) (domain.NFTMetadataKind, error) {
	return readEnum[domain.NFTMetadataKind](ctx, r, domain.ItemMetadataKind)
}

func (r *ReadConfig) IdentifierMode(ctx context.Context) (domain.NFTIdentifierMode, error) {
	return readEnum[domain.NFTIdentifierMode](ctx, r, domain.ItemIdentifierMode)
}

func (r *ReadConfig) MetadataMutability(ctx context.Context) (domain.MetadataMutability, error) {
	return readEnum[domain.MetadataMutability](ctx, r, domain.ItemMetadataMutability)
}

func (r *ReadConfig) MintingMode(ctx context.Context) (domain.MintingMode, error) {
	return readEnum[domain.MintingMode](ctx, r, domain.ItemMintingMode)
}

func (r *ReadConfig) WhitelistMode(ctx context.Context) (domain.WhitelistMode, error) {
	return readEnum[domain.WhitelistMode](ctx, r, domain.ItemWhitelistMode)
}

func (r *ReadConfig) BurnMode(ctx context.Context) (domain.BurnMode, error) {
	return readEnum[domain.BurnMode](ctx, r, domain.ItemBurnMode)
}

func (r *ReadConfig) HolderMode(ctx context.Context) (domain.NFTHolderMode, error) {
	return readEnum[domain.NFTHolderMode](ctx, r, domain.ItemHolderMode)
}

// OwnerReverseLookupMode reads the "reporting_mode" item
func (r *ReadConfig) OwnerReverseLookupMode(ctx context.Context) (domain.OwnerReverseLookupMode, error) {
	return readEnum[domain.OwnerReverseLookupMode](ctx, r, domain.ItemReportingMode)
}

func (r *ReadConfig) EventsMode(ctx context.Context) (domain.EventsMode, error) {
	return readEnum[domain.EventsMode](ctx, r, domain.ItemEventsMode)
}

// JSONSchema returns the stored schema string exactly as stored
func (r *ReadConfig) JSONSchema(ctx context.Context) (string, error) {
	return r.readString(ctx, domain.ItemJSONSchema)
}

func (r *ReadConfig) CollectionName(ctx context.Context) (string, error) {
	return r.readString(ctx, domain.ItemCollectionName)
}

func (r *ReadConfig) CollectionSymbol(ctx context.Context) (string, error) {
	return r.readString(ctx, domain.ItemCollectionSymbol)
}

func (r *ReadConfig) TotalTokenSupply(ctx context.Context) (uint64, error) {
	return r.readU64(ctx, domain.ItemTotalTokenSupply)
}

func (r *ReadConfig) NumberOfMintedTokens(ctx context.Context) (uint64, error) {
	return r.readU64(ctx, domain.ItemNumberOfMintedTokens)
}

func (r *ReadConfig) AllowMinting(ctx context.Context) (bool, error) {
	v, err := r.GetConfig(ctx, domain.ItemAllowMinting)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	return b, domain.WrapDecode(string(domain.ItemAllowMinting), err)
}

// ContractWhitelist returns the whitelisted contracts as "hash-" strings.
// Both List<Key> and List<ByteArray(32)> storage layouts are accepted.
func (r *ReadConfig) ContractWhitelist(ctx context.Context) ([]string, error) {
	v, err := r.GetConfig(ctx, domain.ItemContractWhitelist)
	if err != nil {
		return nil, err
	}

	if keys, err := v.AsList(clvalue.KeyType); err == nil {
		out := make([]string, len(keys))
		for i, item := range keys {
			k, _ := item.AsKey()
			out[i] = k.String()
		}
		return out, nil
	}

	hashes, err := v.AsList(clvalue.ByteArrayOf(32))
	if err != nil {
		return nil, domain.WrapDecode(string(domain.ItemContractWhitelist), err)
	}
	out := make([]string, len(hashes))
	for i, item := range hashes {
		b, _ := item.AsByteArray()
		out[i] = clvalue.HashPrefix + hex.EncodeToString(b)
	}
	return out, nil
}

// Describe reads item through its typed accessor and formats it for display
func (r *ReadConfig) Describe(ctx context.Context, item domain.ConfigItem) (string, error) {
	switch item {
	case domain.ItemCollectionName:
		return r.CollectionName(ctx)
	case domain.ItemCollectionSymbol:
		return r.CollectionSymbol(ctx)
	case domain.ItemJSONSchema:
		return r.JSONSchema(ctx)
	case domain.ItemTotalTokenSupply:
		return formatU64(r.TotalTokenSupply(ctx))
	case domain.ItemNumberOfMintedTokens:
		return formatU64(r.NumberOfMintedTokens(ctx))
	case domain.ItemAllowMinting:
		b, err := r.AllowMinting(ctx)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case domain.ItemContractWhitelist:
		list, err := r.ContractWhitelist(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(list, ","), nil
	case domain.ItemOwnershipMode:
		return describe(r.OwnershipMode(ctx))
	case domain.ItemNFTKind:
		return describe(r.NFTKind(ctx))
	case domain.ItemMetadataKind:
		return describe(r.MetadataKind(ctx))
	case domain.ItemIdentifierMode:
		return describe(r.IdentifierMode(ctx))
	case domain.ItemMetadataMutability:
		return describe(r.MetadataMutability(ctx))
	case domain.ItemMintingMode:
		return describe(r.MintingMode(ctx))
	case domain.ItemWhitelistMode:
		return describe(r.WhitelistMode(ctx))
	case domain.ItemBurnMode:
		return describe(r.BurnMode(ctx))
	case domain.ItemHolderMode:
		return describe(r.HolderMode(ctx))
	case domain.ItemReportingMode:
		return describe(r.OwnerReverseLookupMode(ctx))
	case domain.ItemEventsMode:
		return describe(r.EventsMode(ctx))
	default:
		v, err := r.GetConfig(ctx, item)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	}
}

// Snapshot reads every known item in turn. Per-item failures are kept in the
// entry; only a missing contract binding fails the whole snapshot.
func (r *ReadConfig) Snapshot(ctx context.Context) ([]ConfigEntry, error) {
	if _, err := r.binding.Require("config show"); err != nil {
		return nil, err
	}

	entries := make([]ConfigEntry, 0, len(domain.ConfigItems))
	for _, item := range domain.ConfigItems {
		value, err := r.Describe(ctx, item)
		if err != nil {
			r.log.Debug("config item unavailable", "item", item, "error", err)
		}
		entries = append(entries, ConfigEntry{Item: item, Value: value, Err: err})
	}
	return entries, nil
}

func (r *ReadConfig) readString(ctx context.Context, item domain.ConfigItem) (string, error) {
	v, err := r.GetConfig(ctx, item)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	return s, domain.WrapDecode(string(item), err)
}

func (r *ReadConfig) readU64(ctx context.Context, item domain.ConfigItem) (uint64, error) {
	v, err := r.GetConfig(ctx, item)
	if err != nil {
		return 0, err
	}
	n, err := v.AsU64()
	return n, domain.WrapDecode(string(item), err)
}

func describe[T fmt.Stringer](v T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func formatU64(n uint64, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}
