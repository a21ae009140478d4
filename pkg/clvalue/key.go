package clvalue

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// KeyTag selects the variant of a Key.
type KeyTag uint8

const (
	KeyTagAccount KeyTag = 0
	KeyTagHash    KeyTag = 1
	KeyTagURef    KeyTag = 2
)

// Formatted key prefixes. AccountHashPrefix is exactly 13 characters long.
const (
	AccountHashPrefix = "account-hash-"
	URefPrefix        = "uref-"
)

// AccessRights are the URef permission bits.
type AccessRights uint8

const (
	AccessNone         AccessRights = 0
	AccessRead         AccessRights = 1
	AccessWrite        AccessRights = 2
	AccessAdd          AccessRights = 4
	AccessReadAddWrite AccessRights = AccessRead | AccessWrite | AccessAdd
)

// Key addresses global state: an account, a hash (contract or package) or a URef.
type Key struct {
	Tag    KeyTag
	Data   [32]byte
	Access AccessRights
}

// AccountKey returns the Key of an account hash.
func AccountKey(hash [32]byte) Key {
	return Key{Tag: KeyTagAccount, Data: hash}
}

// HashKey returns the Key of a contract or package hash.
func HashKey(hash [32]byte) Key {
	return Key{Tag: KeyTagHash, Data: hash}
}

// ParseKey parses "account-hash-…", "hash-…" or "uref-…-NNN".
func ParseKey(s string) (Key, error) {
	switch {
	case strings.HasPrefix(s, AccountHashPrefix):
		h, err := Hash32FromString(strings.TrimPrefix(s, AccountHashPrefix))
		if err != nil {
			return Key{}, fmt.Errorf("parse account key: %w", err)
		}
		return AccountKey(h), nil
	case strings.HasPrefix(s, HashPrefix):
		h, err := Hash32FromString(s)
		if err != nil {
			return Key{}, fmt.Errorf("parse hash key: %w", err)
		}
		return HashKey(h), nil
	case strings.HasPrefix(s, URefPrefix):
		body := strings.TrimPrefix(s, URefPrefix)
		idx := strings.LastIndex(body, "-")
		if idx < 0 {
			return Key{}, fmt.Errorf("parse uref key %q: missing access rights", s)
		}
		h, err := Hash32FromString(body[:idx])
		if err != nil {
			return Key{}, fmt.Errorf("parse uref key: %w", err)
		}
		rights, err := strconv.ParseUint(body[idx+1:], 8, 8)
		if err != nil {
			return Key{}, fmt.Errorf("parse uref key %q: %w", s, err)
		}
		return Key{Tag: KeyTagURef, Data: h, Access: AccessRights(rights)}, nil
	default:
		return Key{}, fmt.Errorf("unrecognized key %q", s)
	}
}

// Hex returns the hex of the key payload without any prefix.
func (k Key) Hex() string {
	return hex.EncodeToString(k.Data[:])
}

func (k Key) String() string {
	switch k.Tag {
	case KeyTagAccount:
		return AccountHashPrefix + k.Hex()
	case KeyTagHash:
		return HashPrefix + k.Hex()
	case KeyTagURef:
		return fmt.Sprintf("%s%s-%03o", URefPrefix, k.Hex(), uint8(k.Access))
	default:
		return fmt.Sprintf("key(%d)-%s", k.Tag, k.Hex())
	}
}

// Bytes serializes the key as its tag byte followed by the payload.
func (k Key) Bytes() []byte {
	out := append([]byte{byte(k.Tag)}, k.Data[:]...)
	if k.Tag == KeyTagURef {
		out = append(out, byte(k.Access))
	}
	return out
}

// ReadKey reads a serialized key.
func ReadKey(b []byte) (Key, []byte, error) {
	tag, rest, err := ReadU8(b)
	if err != nil {
		return Key{}, nil, err
	}
	switch KeyTag(tag) {
	case KeyTagAccount, KeyTagHash, KeyTagURef:
	default:
		return Key{}, nil, fmt.Errorf("%w: unsupported key tag %d", ErrMalformed, tag)
	}
	data, rest, err := ReadFixed(rest, 32)
	if err != nil {
		return Key{}, nil, err
	}
	k := Key{Tag: KeyTag(tag)}
	copy(k.Data[:], data)
	if k.Tag == KeyTagURef {
		access, r, err := ReadU8(rest)
		if err != nil {
			return Key{}, nil, err
		}
		k.Access, rest = AccessRights(access), r
	}
	return k, rest, nil
}
