package domain

import (
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// JSONSchemaEntry describes one metadata property.
type JSONSchemaEntry struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Description string `json:"description" toml:"description" yaml:"description"`
	Required    bool   `json:"required" toml:"required" yaml:"required"`
}

// JSONSchema is the custom-validated metadata schema. It is serialized
// verbatim into the install arguments and never validated here.
type JSONSchema struct {
	Properties map[string]JSONSchemaEntry `json:"properties" toml:"properties" yaml:"properties"`
}

// InstallArgs are the arguments of a contract installation.
// Optional fields are nil when not supplied and are then left out entirely.
type InstallArgs struct {
	CollectionName     string
	CollectionSymbol   string
	TotalTokenSupply   uint64
	OwnershipMode      NFTOwnershipMode
	NFTKind            NFTKind
	JSONSchema         JSONSchema
	NFTMetadataKind    NFTMetadataKind
	IdentifierMode     NFTIdentifierMode
	MetadataMutability MetadataMutability

	MintingMode            *MintingMode
	AllowMinting           *bool
	WhitelistMode          *WhitelistMode
	HolderMode             *NFTHolderMode
	ContractWhitelist      []string
	BurnMode               *BurnMode
	OwnerReverseLookupMode *OwnerReverseLookupMode
	EventsMode             *EventsMode
	NamedKeyConvention     *NamedKeyConvention
}

// ConfigurableVariables are the settings set_variables may change.
type ConfigurableVariables struct {
	AllowMinting      *bool
	ContractWhitelist []string
}

// MintArgs mints one token to Owner with the given metadata.
type MintArgs struct {
	Owner clvalue.Key
	Meta  map[string]string
}

// TokenIdentifier names a token by ordinal, by hash, or (unvalidated) both.
type TokenIdentifier struct {
	TokenID   *uint64
	TokenHash *string
}

// ByID identifies a token by its ordinal.
func ByID(id uint64) TokenIdentifier {
	return TokenIdentifier{TokenID: &id}
}

// ByHash identifies a token by its hash.
func ByHash(hash string) TokenIdentifier {
	return TokenIdentifier{TokenHash: &hash}
}

// BurnArgs burns one token.
type BurnArgs struct {
	TokenIdentifier
}

// TransferArgs moves one token from Source to Target.
type TransferArgs struct {
	TokenIdentifier
	Source clvalue.Key
	Target clvalue.Key
}

// ApproveArgs lets Operator transfer one token.
type ApproveArgs struct {
	TokenIdentifier
	Operator clvalue.Key
}

// ApprovalForAllArgs grants or revokes Operator for all of the caller's tokens.
type ApprovalForAllArgs struct {
	ApproveAll bool
	Operator   clvalue.Key
}

// RegisterOwnerArgs registers TokenOwner for owner reverse lookup.
type RegisterOwnerArgs struct {
	TokenOwner clvalue.Key
}
