package clvalue

import (
	"fmt"
	"sort"

	"github.com/holiman/uint256"
)

// Value is a tagged value: a Type plus a payload that always agrees with it.
// Values are built with the constructors in this file or with Encode, and
// read back with the As* accessors or Decode.
type Value struct {
	typ     Type
	payload any
}

// MapEntry is one key/value pair of a Map value.
type MapEntry struct {
	Key   Value
	Value Value
}

func Bool(v bool) Value     { return Value{typ: BoolType, payload: v} }
func U8(v uint8) Value      { return Value{typ: U8Type, payload: v} }
func U32(v uint32) Value    { return Value{typ: U32Type, payload: v} }
func U64(v uint64) Value    { return Value{typ: U64Type, payload: v} }
func String(s string) Value { return Value{typ: StringType, payload: s} }
func KeyValue(k Key) Value  { return Value{typ: KeyType, payload: k} }
func Unit() Value           { return Value{typ: UnitType, payload: struct{}{}} }

// U512 copies v; a nil v is zero.
func U512(v *uint256.Int) Value {
	c := new(uint256.Int)
	if v != nil {
		c.Set(v)
	}
	return Value{typ: U512Type, payload: c}
}

// ByteArray copies b into a fixed ByteArray of len(b).
func ByteArray(b []byte) Value {
	c := make([]byte, len(b))
	copy(c, b)
	return Value{typ: ByteArrayOf(uint32(len(b))), payload: c}
}

// Some wraps v in a present Option.
func Some(v Value) Value {
	inner := v
	return Value{typ: OptionOf(v.typ), payload: &inner}
}

// None is the absent Option of elem.
func None(elem Type) Value {
	return Value{typ: OptionOf(elem), payload: (*Value)(nil)}
}

// List builds a List of elem. Every item must carry elem.
func List(elem Type, items ...Value) (Value, error) {
	t := ListOf(elem)
	out := make([]Value, len(items))
	for i, item := range items {
		if !item.typ.Equal(elem) {
			return Value{}, encodeErr(t, item, "item %d is %s", i, item.typ)
		}
		out[i] = item
	}
	return Value{typ: t, payload: out}, nil
}

// Map builds a Map of key/val. Entries keep the given order.
func Map(key, val Type, entries ...MapEntry) (Value, error) {
	t := MapOf(key, val)
	out := make([]MapEntry, len(entries))
	for i, e := range entries {
		if !e.Key.typ.Equal(key) || !e.Value.typ.Equal(val) {
			return Value{}, encodeErr(t, e, "entry %d is (%s,%s)", i, e.Key.typ, e.Value.typ)
		}
		out[i] = e
	}
	return Value{typ: t, payload: out}, nil
}

// StringMap builds a Map<String,String> with keys in sorted order.
func StringMap(m map[string]string) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]MapEntry, len(keys))
	for i, k := range keys {
		entries[i] = MapEntry{Key: String(k), Value: String(m[k])}
	}
	return Value{typ: MapOf(StringType, StringType), payload: entries}
}

// IsZero reports whether v is the zero Value, which has no payload and is
// never a valid argument.
func (v Value) IsZero() bool { return v.payload == nil }

// Type returns the type carried by v.
func (v Value) Type() Type { return v.typ }

func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.typ, v.parsed())
}

// Bytes serializes the payload without its type.
func (v Value) Bytes() []byte {
	return v.appendBytes(nil)
}

func (v Value) appendBytes(b []byte) []byte {
	switch v.typ.Tag {
	case TagBool:
		p, _ := v.payload.(bool)
		if p {
			return append(b, 1)
		}
		return append(b, 0)
	case TagU8:
		p, _ := v.payload.(uint8)
		return append(b, p)
	case TagU32:
		p, _ := v.payload.(uint32)
		return appendU32(b, p)
	case TagU64:
		p, _ := v.payload.(uint64)
		return appendU64(b, p)
	case TagU512:
		p, _ := v.payload.(*uint256.Int)
		if p == nil {
			p = new(uint256.Int)
		}
		return appendU512(b, p)
	case TagUnit:
		return b
	case TagString:
		p, _ := v.payload.(string)
		return appendString(b, p)
	case TagKey:
		p, _ := v.payload.(Key)
		return append(b, p.Bytes()...)
	case TagByteArray:
		p, _ := v.payload.([]byte)
		return append(b, p...)
	case TagOption:
		p, _ := v.payload.(*Value)
		if p == nil {
			return append(b, 0)
		}
		return p.appendBytes(append(b, 1))
	case TagList:
		p, _ := v.payload.([]Value)
		b = appendU32(b, uint32(len(p)))
		for _, item := range p {
			b = item.appendBytes(b)
		}
		return b
	case TagMap:
		p, _ := v.payload.([]MapEntry)
		b = appendU32(b, uint32(len(p)))
		for _, e := range p {
			b = e.Key.appendBytes(b)
			b = e.Value.appendBytes(b)
		}
		return b
	default:
		return b
	}
}

// CLValueBytes serializes v in the engine's CLValue layout:
// u32 payload length, payload, type.
func (v Value) CLValueBytes() []byte {
	payload := v.Bytes()
	out := appendU32(nil, uint32(len(payload)))
	out = append(out, payload...)
	return append(out, v.typ.Bytes()...)
}

// ReadValue reads one payload of type t and returns the remaining bytes.
func ReadValue(t Type, b []byte) (Value, []byte, error) {
	switch t.Tag {
	case TagBool:
		p, rest, err := ReadBool(b)
		return Value{typ: t, payload: p}, rest, err
	case TagU8:
		p, rest, err := ReadU8(b)
		return Value{typ: t, payload: p}, rest, err
	case TagU32:
		p, rest, err := ReadU32(b)
		return Value{typ: t, payload: p}, rest, err
	case TagU64:
		p, rest, err := ReadU64(b)
		return Value{typ: t, payload: p}, rest, err
	case TagU512:
		p, rest, err := ReadU512(b)
		return Value{typ: t, payload: p}, rest, err
	case TagUnit:
		return Unit(), b, nil
	case TagString:
		p, rest, err := ReadString(b)
		return Value{typ: t, payload: p}, rest, err
	case TagKey:
		p, rest, err := ReadKey(b)
		return Value{typ: t, payload: p}, rest, err
	case TagByteArray:
		p, rest, err := ReadFixed(b, t.Size)
		return Value{typ: t, payload: p}, rest, err
	case TagOption:
		present, rest, err := ReadU8(b)
		if err != nil {
			return Value{}, nil, err
		}
		switch present {
		case 0:
			return None(*t.Elem), rest, nil
		case 1:
			inner, rest, err := ReadValue(*t.Elem, rest)
			if err != nil {
				return Value{}, nil, err
			}
			return Some(inner), rest, nil
		default:
			return Value{}, nil, fmt.Errorf("%w: invalid option byte %d", ErrMalformed, present)
		}
	case TagList:
		n, rest, err := ReadU32(b)
		if err != nil {
			return Value{}, nil, err
		}
		items := make([]Value, 0, min(int(n), len(rest)))
		for i := uint32(0); i < n; i++ {
			var item Value
			item, rest, err = ReadValue(*t.Elem, rest)
			if err != nil {
				return Value{}, nil, fmt.Errorf("list item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return Value{typ: t, payload: items}, rest, nil
	case TagMap:
		n, rest, err := ReadU32(b)
		if err != nil {
			return Value{}, nil, err
		}
		entries := make([]MapEntry, 0, min(int(n), len(rest)))
		for i := uint32(0); i < n; i++ {
			var e MapEntry
			if e.Key, rest, err = ReadValue(*t.Key, rest); err != nil {
				return Value{}, nil, fmt.Errorf("map key %d: %w", i, err)
			}
			if e.Value, rest, err = ReadValue(*t.Val, rest); err != nil {
				return Value{}, nil, fmt.Errorf("map value %d: %w", i, err)
			}
			entries = append(entries, e)
		}
		return Value{typ: t, payload: entries}, rest, nil
	default:
		return Value{}, nil, fmt.Errorf("%w: unsupported type %s", ErrMalformed, t)
	}
}

// ParseValue reads exactly one payload of type t; trailing bytes are an error.
func ParseValue(t Type, b []byte) (Value, error) {
	v, rest, err := ReadValue(t, b)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("%w: %d trailing bytes after %s", ErrMalformed, len(rest), t)
	}
	return v, nil
}

// ReadCLValue reads the CLValue layout written by CLValueBytes.
func ReadCLValue(b []byte) (Value, []byte, error) {
	n, rest, err := ReadU32(b)
	if err != nil {
		return Value{}, nil, err
	}
	payload, rest, err := ReadFixed(rest, n)
	if err != nil {
		return Value{}, nil, err
	}
	t, rest, err := TypeFromBytes(rest)
	if err != nil {
		return Value{}, nil, err
	}
	v, err := ParseValue(t, payload)
	if err != nil {
		return Value{}, nil, err
	}
	return v, rest, nil
}
