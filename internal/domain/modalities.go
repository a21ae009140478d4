package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigEnum is the set of contract modalities. Every member is stored on chain
// as a single u8 whose value must fall inside the enum's range.
type ConfigEnum interface {
	~uint8
	fmt.Stringer
	members() []string
}

// NFTOwnershipMode controls who may transfer a token.
type NFTOwnershipMode uint8

const (
	OwnershipMinter NFTOwnershipMode = iota
	OwnershipAssigned
	OwnershipTransferable
)

// NFTKind describes the commodity the token represents.
type NFTKind uint8

const (
	NFTKindPhysical NFTKind = iota
	NFTKindDigital
	NFTKindVirtual
)

// NFTMetadataKind selects the metadata schema and its dictionary.
type NFTMetadataKind uint8

const (
	MetadataCEP78 NFTMetadataKind = iota
	MetadataNFT721
	MetadataRaw
	MetadataCustomValidated
)

// NFTIdentifierMode selects ordinal or hash token identifiers.
type NFTIdentifierMode uint8

const (
	IdentifierOrdinal NFTIdentifierMode = iota
	IdentifierHash
)

type MetadataMutability uint8

const (
	MetadataImmutable MetadataMutability = iota
	MetadataMutable
)

type MintingMode uint8

const (
	MintingInstaller MintingMode = iota
	MintingPublic
	MintingACL
)

type WhitelistMode uint8

const (
	WhitelistUnlocked WhitelistMode = iota
	WhitelistLocked
)

type NFTHolderMode uint8

const (
	HolderAccounts NFTHolderMode = iota
	HolderContracts
	HolderMixed
)

type BurnMode uint8

const (
	Burnable BurnMode = iota
	NonBurnable
)

// OwnerReverseLookupMode is stored under "reporting_mode".
type OwnerReverseLookupMode uint8

const (
	ReverseLookupNone OwnerReverseLookupMode = iota
	ReverseLookupComplete
	ReverseLookupTransfersOnly
)

type EventsMode uint8

const (
	EventsNone EventsMode = iota
	EventsCEP47
	EventsCES
	EventsNative
	EventsNativeBytes
)

// NamedKeyConvention is an install-time option only; it is never read back.
type NamedKeyConvention uint8

const (
	NamedKeyDerivedFromCollectionName NamedKeyConvention = iota
	NamedKeyV1_0Standard
	NamedKeyV1_0Custom
)

var (
	ownershipModeNames      = []string{"Minter", "Assigned", "Transferable"}
	nftKindNames            = []string{"Physical", "Digital", "Virtual"}
	metadataKindNames       = []string{"CEP78", "NFT721", "Raw", "CustomValidated"}
	identifierModeNames     = []string{"Ordinal", "Hash"}
	metadataMutabilityNames = []string{"Immutable", "Mutable"}
	mintingModeNames        = []string{"Installer", "Public", "ACL"}
	whitelistModeNames      = []string{"Unlocked", "Locked"}
	holderModeNames         = []string{"Accounts", "Contracts", "Mixed"}
	burnModeNames           = []string{"Burnable", "NonBurnable"}
	reverseLookupNames      = []string{"NoLookUp", "Complete", "TransfersOnly"}
	eventsModeNames         = []string{"NoEvents", "CEP47", "CES", "Native", "NativeBytes"}
	namedKeyNames           = []string{"DerivedFromCollectionName", "V_1_0_standard", "V_1_0_custom"}
)

func (NFTOwnershipMode) members() []string       { return ownershipModeNames }
func (NFTKind) members() []string                { return nftKindNames }
func (NFTMetadataKind) members() []string        { return metadataKindNames }
func (NFTIdentifierMode) members() []string      { return identifierModeNames }
func (MetadataMutability) members() []string     { return metadataMutabilityNames }
func (MintingMode) members() []string            { return mintingModeNames }
func (WhitelistMode) members() []string          { return whitelistModeNames }
func (NFTHolderMode) members() []string          { return holderModeNames }
func (BurnMode) members() []string               { return burnModeNames }
func (OwnerReverseLookupMode) members() []string { return reverseLookupNames }
func (EventsMode) members() []string             { return eventsModeNames }
func (NamedKeyConvention) members() []string     { return namedKeyNames }

func (m NFTOwnershipMode) String() string       { return enumString(m) }
func (m NFTKind) String() string                { return enumString(m) }
func (m NFTMetadataKind) String() string        { return enumString(m) }
func (m NFTIdentifierMode) String() string      { return enumString(m) }
func (m MetadataMutability) String() string     { return enumString(m) }
func (m MintingMode) String() string            { return enumString(m) }
func (m WhitelistMode) String() string          { return enumString(m) }
func (m NFTHolderMode) String() string          { return enumString(m) }
func (m BurnMode) String() string               { return enumString(m) }
func (m OwnerReverseLookupMode) String() string { return enumString(m) }
func (m EventsMode) String() string             { return enumString(m) }
func (m NamedKeyConvention) String() string     { return enumString(m) }

func enumString[T ConfigEnum](v T) string {
	names := v.members()
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(v))
}

// EnumNames lists the member names of T in ordinal order.
func EnumNames[T ConfigEnum]() []string {
	var zero T
	return append([]string(nil), zero.members()...)
}

// EnumFromU8 range-checks a raw ordinal read from item.
func EnumFromU8[T ConfigEnum](item ConfigItem, raw uint8) (T, error) {
	var zero T
	if n := len(zero.members()); int(raw) >= n {
		return zero, &DecodeMismatchError{
			Item:     string(item),
			Expected: fmt.Sprintf("ordinal 0..%d", n-1),
			Got:      strconv.Itoa(int(raw)),
		}
	}
	return T(raw), nil
}

// ParseEnum reads a member from user input: its name (case-insensitive) or
// its decimal ordinal.
func ParseEnum[T ConfigEnum](field, s string) (T, error) {
	var zero T
	names := zero.members()
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return T(i), nil
		}
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil && int(n) < len(names) {
		return T(n), nil
	}
	return zero, &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("%q is not one of %s", s, strings.Join(names, ", ")),
	}
}
