package domain

import (
	"fmt"

	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// ConfigItem is the named key under which the contract stores one setting.
type ConfigItem string

const (
	ItemCollectionName       ConfigItem = "collection_name"
	ItemCollectionSymbol     ConfigItem = "collection_symbol"
	ItemTotalTokenSupply     ConfigItem = "total_token_supply"
	ItemNumberOfMintedTokens ConfigItem = "number_of_minted_tokens"
	ItemAllowMinting         ConfigItem = "allow_minting"
	ItemContractWhitelist    ConfigItem = "contract_whitelist"
	ItemJSONSchema           ConfigItem = "json_schema"
	ItemOwnershipMode        ConfigItem = "ownership_mode"
	ItemNFTKind              ConfigItem = "nft_kind"
	ItemMetadataKind         ConfigItem = "nft_metadata_kind"
	ItemIdentifierMode       ConfigItem = "identifier_mode"
	ItemMetadataMutability   ConfigItem = "metadata_mutability"
	ItemMintingMode          ConfigItem = "minting_mode"
	ItemWhitelistMode        ConfigItem = "whitelist_mode"
	ItemBurnMode             ConfigItem = "burn_mode"
	ItemHolderMode           ConfigItem = "holder_mode"
	ItemReportingMode        ConfigItem = "reporting_mode"
	ItemEventsMode           ConfigItem = "events_mode"
)

// ConfigItems is every readable item in display order.
var ConfigItems = []ConfigItem{
	ItemCollectionName,
	ItemCollectionSymbol,
	ItemTotalTokenSupply,
	ItemNumberOfMintedTokens,
	ItemAllowMinting,
	ItemContractWhitelist,
	ItemOwnershipMode,
	ItemNFTKind,
	ItemMetadataKind,
	ItemIdentifierMode,
	ItemMetadataMutability,
	ItemMintingMode,
	ItemWhitelistMode,
	ItemBurnMode,
	ItemHolderMode,
	ItemReportingMode,
	ItemEventsMode,
	ItemJSONSchema,
}

// IsConfigItem reports whether name is a known item.
func IsConfigItem(name string) bool {
	for _, item := range ConfigItems {
		if string(item) == name {
			return true
		}
	}
	return false
}

// Dictionary names
const (
	DictTokenOwners = "token_owners"
	DictBalances    = "balances"
)

// MetadataDictionary returns the dictionary holding metadata of the given kind.
func MetadataDictionary(kind NFTMetadataKind) (string, error) {
	switch kind {
	case MetadataCEP78:
		return "metadata_cep78", nil
	case MetadataNFT721:
		return "metadata_nft721", nil
	case MetadataRaw:
		return "metadata_raw", nil
	case MetadataCustomValidated:
		return "metadata_custom_validated", nil
	default:
		return "", &ValidationError{Field: "metadata kind", Reason: fmt.Sprintf("unsupported kind %d", uint8(kind))}
	}
}

// BalanceDictionaryKey turns a formatted account hash into its balances key by
// removing exactly len("account-hash-") leading characters.
func BalanceDictionaryKey(accountHash string) (string, error) {
	n := len(clvalue.AccountHashPrefix)
	if len(accountHash) <= n {
		return "", &ValidationError{Field: "account", Reason: fmt.Sprintf("%q is shorter than a formatted account hash", accountHash)}
	}
	return accountHash[n:], nil
}

// ContractReference is the on-chain contract a client is bound to.
type ContractReference struct {
	Hash        [32]byte
	PackageHash *[32]byte
}

// ParseContractReference accepts "hash-" prefixed or bare hex for both hashes.
// An empty packageHash leaves the package unset.
func ParseContractReference(hash, packageHash string) (*ContractReference, error) {
	h, err := clvalue.Hash32FromString(hash)
	if err != nil {
		return nil, &ValidationError{Field: "contract hash", Reason: err.Error()}
	}
	ref := &ContractReference{Hash: h}
	if packageHash != "" {
		p, err := clvalue.Hash32FromString(packageHash)
		if err != nil {
			return nil, &ValidationError{Field: "contract package hash", Reason: err.Error()}
		}
		ref.PackageHash = &p
	}
	return ref, nil
}

// Key returns the contract as a hash Key argument.
func (r *ContractReference) Key() clvalue.Key {
	return clvalue.HashKey(r.Hash)
}

func (r *ContractReference) String() string {
	return r.Key().String()
}
