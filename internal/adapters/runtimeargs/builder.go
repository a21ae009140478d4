package runtimeargs

import (
	"encoding/json"
	"fmt"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// Argument names understood by the contract and its session programs
const (
	ArgCollectionName         = "collection_name"
	ArgCollectionSymbol       = "collection_symbol"
	ArgTotalTokenSupply       = "total_token_supply"
	ArgOwnershipMode          = "ownership_mode"
	ArgNFTKind                = "nft_kind"
	ArgJSONSchema             = "json_schema"
	ArgNFTMetadataKind        = "nft_metadata_kind"
	ArgIdentifierMode         = "identifier_mode"
	ArgMetadataMutability     = "metadata_mutability"
	ArgMintingMode            = "minting_mode"
	ArgAllowMinting           = "allow_minting"
	ArgWhitelistMode          = "whitelist_mode"
	ArgHolderMode             = "holder_mode"
	ArgContractWhitelist      = "contract_whitelist"
	ArgBurnMode               = "burn_mode"
	ArgOwnerReverseLookupMode = "owner_reverse_lookup_mode"
	ArgEventsMode             = "events_mode"
	ArgNamedKeyConvention     = "named_key_convention"

	ArgNFTContractHash      = "nft_contract_hash"
	ArgTokenOwner           = "token_owner"
	ArgTokenMetaData        = "token_meta_data"
	ArgTokenID              = "token_id"
	ArgTokenHash            = "token_hash"
	ArgSourceKey            = "source_key"
	ArgTargetKey            = "target_key"
	ArgIsHashIdentifierMode = "is_hash_identifier_mode"
	ArgOperator             = "operator"
	ArgApproveAll           = "approve_all"
)

// Builder translates entry point calls into runtime arguments. It holds no
// mutable state and may be shared between goroutines.
type Builder struct {
	// StrictIdentifiers rejects calls that name a token by both id and hash,
	// or by neither. By default such calls are passed through and left to the
	// contract to reject.
	StrictIdentifiers bool
}

var _ usecase.ArgumentBuilder = (*Builder)(nil)

// NewBuilder creates a Builder from the runtime configuration
func NewBuilder(cfg *config.RuntimeConfig) *Builder {
	return &Builder{StrictIdentifiers: cfg.StrictIdentifiers}
}

// Build returns the arguments of call. contract is the bound contract; calls
// that reference it fail with a UsageError when it is nil.
func (b *Builder) Build(call domain.Call, contract *domain.ContractReference) (*clvalue.Args, error) {
	switch c := call.(type) {
	case domain.InstallCall:
		return b.install(c.InstallArgs)
	case domain.SetVariablesCall:
		return b.setVariables(c.ConfigurableVariables)
	case domain.MintCall:
		return b.mint(c.MintArgs, contract)
	case domain.BurnCall:
		return b.burn(c.BurnArgs)
	case domain.TransferCall:
		return b.transfer(c.TransferArgs, contract)
	case domain.ApproveCall:
		return b.approve(c.ApproveArgs)
	case domain.SetApprovalForAllCall:
		args := clvalue.NewArgs()
		args.Insert(ArgApproveAll, clvalue.Bool(c.ApproveAll))
		args.Insert(ArgOperator, clvalue.KeyValue(c.Operator))
		return args, nil
	case domain.RegisterOwnerCall:
		args := clvalue.NewArgs()
		args.Insert(ArgTokenOwner, clvalue.KeyValue(c.TokenOwner))
		return args, nil
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnknownEntryPoint, call)
	}
}

func (b *Builder) install(in domain.InstallArgs) (*clvalue.Args, error) {
	if in.IdentifierMode == domain.IdentifierHash && in.MetadataMutability == domain.MetadataMutable {
		return nil, &domain.ValidationError{
			Field:  "identifier mode",
			Reason: "Hash identifiers cannot be combined with Mutable metadata",
		}
	}

	schema, err := json.Marshal(in.JSONSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize json schema: %w", err)
	}

	args := clvalue.NewArgs()
	args.Insert(ArgCollectionName, clvalue.String(in.CollectionName))
	args.Insert(ArgCollectionSymbol, clvalue.String(in.CollectionSymbol))
	args.Insert(ArgTotalTokenSupply, clvalue.U64(in.TotalTokenSupply))
	args.Insert(ArgOwnershipMode, clvalue.U8(uint8(in.OwnershipMode)))
	args.Insert(ArgNFTKind, clvalue.U8(uint8(in.NFTKind)))
	args.Insert(ArgJSONSchema, clvalue.String(string(schema)))
	args.Insert(ArgNFTMetadataKind, clvalue.U8(uint8(in.NFTMetadataKind)))
	args.Insert(ArgIdentifierMode, clvalue.U8(uint8(in.IdentifierMode)))
	args.Insert(ArgMetadataMutability, clvalue.U8(uint8(in.MetadataMutability)))

	if in.MintingMode != nil {
		args.Insert(ArgMintingMode, clvalue.U8(uint8(*in.MintingMode)))
	}
	if in.AllowMinting != nil {
		args.Insert(ArgAllowMinting, clvalue.Bool(*in.AllowMinting))
	}
	if in.WhitelistMode != nil {
		args.Insert(ArgWhitelistMode, clvalue.U8(uint8(*in.WhitelistMode)))
	}
	if in.HolderMode != nil {
		args.Insert(ArgHolderMode, clvalue.U8(uint8(*in.HolderMode)))
	}
	if in.ContractWhitelist != nil {
		list, err := hashKeyList(in.ContractWhitelist)
		if err != nil {
			return nil, err
		}
		args.Insert(ArgContractWhitelist, list)
	}
	if in.BurnMode != nil {
		args.Insert(ArgBurnMode, clvalue.Some(clvalue.U8(uint8(*in.BurnMode))))
	}
	if in.OwnerReverseLookupMode != nil {
		args.Insert(ArgOwnerReverseLookupMode, clvalue.U8(uint8(*in.OwnerReverseLookupMode)))
	}
	if in.EventsMode != nil {
		args.Insert(ArgEventsMode, clvalue.U8(uint8(*in.EventsMode)))
	}
	if in.NamedKeyConvention != nil {
		args.Insert(ArgNamedKeyConvention, clvalue.U8(uint8(*in.NamedKeyConvention)))
	}
	return args, nil
}

func (b *Builder) setVariables(in domain.ConfigurableVariables) (*clvalue.Args, error) {
	args := clvalue.NewArgs()
	if in.AllowMinting != nil {
		args.Insert(ArgAllowMinting, clvalue.Bool(*in.AllowMinting))
	}
	if in.ContractWhitelist != nil {
		list, err := hashKeyList(in.ContractWhitelist)
		if err != nil {
			return nil, err
		}
		args.Insert(ArgContractWhitelist, list)
	}
	return args, nil
}

func (b *Builder) mint(in domain.MintArgs, contract *domain.ContractReference) (*clvalue.Args, error) {
	if contract == nil {
		return nil, domain.NotBound("mint")
	}
	meta := in.Meta
	if meta == nil {
		meta = map[string]string{}
	}
	// encoding/json writes map keys in sorted order
	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize token metadata: %w", err)
	}

	args := clvalue.NewArgs()
	args.Insert(ArgNFTContractHash, clvalue.KeyValue(contract.Key()))
	args.Insert(ArgTokenOwner, clvalue.KeyValue(in.Owner))
	args.Insert(ArgTokenMetaData, clvalue.String(string(encoded)))
	return args, nil
}

func (b *Builder) burn(in domain.BurnArgs) (*clvalue.Args, error) {
	if err := b.checkIdentifier(in.TokenIdentifier); err != nil {
		return nil, err
	}
	args := clvalue.NewArgs()
	insertIdentifier(args, in.TokenIdentifier)
	return args, nil
}

func (b *Builder) transfer(in domain.TransferArgs, contract *domain.ContractReference) (*clvalue.Args, error) {
	if contract == nil {
		return nil, domain.NotBound("transfer")
	}
	if err := b.checkIdentifier(in.TokenIdentifier); err != nil {
		return nil, err
	}

	args := clvalue.NewArgs()
	args.Insert(ArgNFTContractHash, clvalue.KeyValue(contract.Key()))
	args.Insert(ArgTargetKey, clvalue.KeyValue(in.Target))
	args.Insert(ArgSourceKey, clvalue.KeyValue(in.Source))

	// With both identifiers the hash flag is inserted last and wins.
	if in.TokenID != nil {
		args.Insert(ArgIsHashIdentifierMode, clvalue.Bool(false))
		args.Insert(ArgTokenID, clvalue.U64(*in.TokenID))
	}
	if in.TokenHash != nil {
		args.Insert(ArgIsHashIdentifierMode, clvalue.Bool(true))
		args.Insert(ArgTokenHash, clvalue.String(*in.TokenHash))
	}
	return args, nil
}

func (b *Builder) approve(in domain.ApproveArgs) (*clvalue.Args, error) {
	if err := b.checkIdentifier(in.TokenIdentifier); err != nil {
		return nil, err
	}
	args := clvalue.NewArgs()
	args.Insert(ArgOperator, clvalue.KeyValue(in.Operator))
	insertIdentifier(args, in.TokenIdentifier)
	return args, nil
}

func (b *Builder) checkIdentifier(id domain.TokenIdentifier) error {
	if !b.StrictIdentifiers {
		return nil
	}
	switch {
	case id.TokenID != nil && id.TokenHash != nil:
		return &domain.ValidationError{Field: "token identifier", Reason: "both token id and token hash supplied"}
	case id.TokenID == nil && id.TokenHash == nil:
		return &domain.ValidationError{Field: "token identifier", Reason: "one of token id or token hash is required"}
	}
	return nil
}

func insertIdentifier(args *clvalue.Args, id domain.TokenIdentifier) {
	if id.TokenID != nil {
		args.Insert(ArgTokenID, clvalue.U64(*id.TokenID))
	}
	if id.TokenHash != nil {
		args.Insert(ArgTokenHash, clvalue.String(*id.TokenHash))
	}
}

func hashKeyList(hashes []string) (clvalue.Value, error) {
	items := make([]clvalue.Value, len(hashes))
	for i, s := range hashes {
		h, err := clvalue.Hash32FromString(s)
		if err != nil {
			return clvalue.Value{}, &domain.ValidationError{Field: "contract whitelist", Reason: err.Error()}
		}
		items[i] = clvalue.KeyValue(clvalue.HashKey(h))
	}
	return clvalue.List(clvalue.KeyType, items...)
}
