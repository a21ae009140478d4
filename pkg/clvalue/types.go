package clvalue

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Tag is the discriminator of a CLType as numbered by the execution engine.
type Tag uint8

const (
	TagBool      Tag = 0
	TagU8        Tag = 3
	TagU32       Tag = 4
	TagU64       Tag = 5
	TagU512      Tag = 8
	TagUnit      Tag = 9
	TagString    Tag = 10
	TagKey       Tag = 11
	TagOption    Tag = 13
	TagList      Tag = 14
	TagByteArray Tag = 15
	TagMap       Tag = 17
)

var tagNames = map[Tag]string{
	TagBool:      "Bool",
	TagU8:        "U8",
	TagU32:       "U32",
	TagU64:       "U64",
	TagU512:      "U512",
	TagUnit:      "Unit",
	TagString:    "String",
	TagKey:       "Key",
	TagOption:    "Option",
	TagList:      "List",
	TagByteArray: "ByteArray",
	TagMap:       "Map",
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagNames))
	for t, n := range tagNames {
		m[n] = t
	}
	return m
}()

func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Type describes the shape of a value. Composite tags carry their inner types.
type Type struct {
	Tag Tag
	// Elem is the inner type of Option and List.
	Elem *Type
	// Key and Val are the entry types of Map.
	Key *Type
	Val *Type
	// Size is the fixed length of ByteArray.
	Size uint32
}

// Simple types
var (
	BoolType   = Type{Tag: TagBool}
	U8Type     = Type{Tag: TagU8}
	U32Type    = Type{Tag: TagU32}
	U64Type    = Type{Tag: TagU64}
	U512Type   = Type{Tag: TagU512}
	UnitType   = Type{Tag: TagUnit}
	StringType = Type{Tag: TagString}
	KeyType    = Type{Tag: TagKey}
)

// OptionOf returns Option<elem>.
func OptionOf(elem Type) Type {
	return Type{Tag: TagOption, Elem: &elem}
}

// ListOf returns List<elem>.
func ListOf(elem Type) Type {
	return Type{Tag: TagList, Elem: &elem}
}

// MapOf returns Map<key, val>.
func MapOf(key, val Type) Type {
	return Type{Tag: TagMap, Key: &key, Val: &val}
}

// ByteArrayOf returns ByteArray<size>.
func ByteArrayOf(size uint32) Type {
	return Type{Tag: TagByteArray, Size: size}
}

// Equal reports whether both types have the same tag and the same inner types.
func (t Type) Equal(o Type) bool {
	if t.Tag != o.Tag {
		return false
	}
	switch t.Tag {
	case TagOption, TagList:
		return t.Elem != nil && o.Elem != nil && t.Elem.Equal(*o.Elem)
	case TagMap:
		return t.Key != nil && o.Key != nil && t.Val != nil && o.Val != nil &&
			t.Key.Equal(*o.Key) && t.Val.Equal(*o.Val)
	case TagByteArray:
		return t.Size == o.Size
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Tag {
	case TagOption, TagList:
		if t.Elem == nil {
			return t.Tag.String() + "(?)"
		}
		return fmt.Sprintf("%s(%s)", t.Tag, t.Elem)
	case TagMap:
		if t.Key == nil || t.Val == nil {
			return "Map(?)"
		}
		return fmt.Sprintf("Map(%s,%s)", t.Key, t.Val)
	case TagByteArray:
		return fmt.Sprintf("ByteArray(%d)", t.Size)
	default:
		return t.Tag.String()
	}
}

// Bytes serializes the type: its tag byte followed by any inner types.
func (t Type) Bytes() []byte {
	out := []byte{byte(t.Tag)}
	switch t.Tag {
	case TagOption, TagList:
		out = append(out, t.Elem.Bytes()...)
	case TagMap:
		out = append(out, t.Key.Bytes()...)
		out = append(out, t.Val.Bytes()...)
	case TagByteArray:
		out = binary.LittleEndian.AppendUint32(out, t.Size)
	}
	return out
}

// TypeFromBytes reads a serialized type and returns it with the remaining bytes.
func TypeFromBytes(b []byte) (Type, []byte, error) {
	tag, rest, err := ReadU8(b)
	if err != nil {
		return Type{}, nil, fmt.Errorf("read type tag: %w", err)
	}
	switch Tag(tag) {
	case TagBool, TagU8, TagU32, TagU64, TagU512, TagUnit, TagString, TagKey:
		return Type{Tag: Tag(tag)}, rest, nil
	case TagOption, TagList:
		elem, rest, err := TypeFromBytes(rest)
		if err != nil {
			return Type{}, nil, err
		}
		return Type{Tag: Tag(tag), Elem: &elem}, rest, nil
	case TagMap:
		k, rest, err := TypeFromBytes(rest)
		if err != nil {
			return Type{}, nil, err
		}
		v, rest, err := TypeFromBytes(rest)
		if err != nil {
			return Type{}, nil, err
		}
		return MapOf(k, v), rest, nil
	case TagByteArray:
		size, rest, err := ReadU32(rest)
		if err != nil {
			return Type{}, nil, err
		}
		return ByteArrayOf(size), rest, nil
	default:
		return Type{}, nil, fmt.Errorf("%w: unsupported type tag %d", ErrMalformed, tag)
	}
}

// MarshalJSON writes the node's cl_type notation, e.g. "U8" or {"Option":"U8"}.
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.Tag {
	case TagOption, TagList:
		return json.Marshal(map[string]Type{t.Tag.String(): *t.Elem})
	case TagMap:
		return json.Marshal(map[string]map[string]Type{
			"Map": {"key": *t.Key, "value": *t.Val},
		})
	case TagByteArray:
		return json.Marshal(map[string]uint32{"ByteArray": t.Size})
	default:
		name, ok := tagNames[t.Tag]
		if !ok {
			return nil, fmt.Errorf("unsupported type tag %d", t.Tag)
		}
		return json.Marshal(name)
	}
}

// UnmarshalJSON reads the node's cl_type notation.
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		tag, ok := tagsByName[name]
		if !ok {
			return fmt.Errorf("%w: unknown cl_type %q", ErrMalformed, name)
		}
		switch tag {
		case TagOption, TagList, TagMap, TagByteArray:
			return fmt.Errorf("%w: cl_type %q needs inner types", ErrMalformed, name)
		}
		*t = Type{Tag: tag}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: cl_type: %v", ErrMalformed, err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("%w: cl_type object must have exactly one key", ErrMalformed)
	}
	for name, raw := range obj {
		switch name {
		case "Option", "List":
			var elem Type
			if err := json.Unmarshal(raw, &elem); err != nil {
				return err
			}
			*t = Type{Tag: tagsByName[name], Elem: &elem}
		case "Map":
			var entry struct {
				Key   *Type `json:"key"`
				Value *Type `json:"value"`
			}
			if err := json.Unmarshal(raw, &entry); err != nil {
				return err
			}
			if entry.Key == nil || entry.Value == nil {
				return fmt.Errorf("%w: Map cl_type needs key and value", ErrMalformed)
			}
			*t = MapOf(*entry.Key, *entry.Value)
		case "ByteArray":
			var size uint32
			if err := json.Unmarshal(raw, &size); err != nil {
				return fmt.Errorf("%w: ByteArray size: %v", ErrMalformed, err)
			}
			*t = ByteArrayOf(size)
		default:
			return fmt.Errorf("%w: unsupported cl_type %q", ErrMalformed, name)
		}
	}
	return nil
}
