package clvalue

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

// Pair is the native form of a Map entry.
type Pair struct {
	Key   any
	Value any
}

// Encode converts a native Go value into a Value of type t, recursing into
// Option, List and Map. Accepted native forms per tag:
//
//	Bool bool | U8 uint8 | U32 uint32 | U64 uint64 | U512 *uint256.Int, uint64
//	String string | Key Key, formatted key string
//	ByteArray []byte, hex string with optional "hash-" prefix
//	Option nil or a nil pointer for absent, anything else for present
//	List any slice | Map []Pair, map[string]string
//
// A Value whose type equals t is returned as is.
func Encode(native any, t Type) (Value, error) {
	if v, ok := native.(Value); ok {
		if !v.typ.Equal(t) {
			return Value{}, encodeErr(t, native, "value carries %s", v.typ)
		}
		return v, nil
	}

	switch t.Tag {
	case TagBool:
		if p, ok := native.(bool); ok {
			return Bool(p), nil
		}
	case TagU8:
		if p, ok := native.(uint8); ok {
			return U8(p), nil
		}
	case TagU32:
		if p, ok := native.(uint32); ok {
			return U32(p), nil
		}
	case TagU64:
		if p, ok := native.(uint64); ok {
			return U64(p), nil
		}
	case TagU512:
		switch p := native.(type) {
		case *uint256.Int:
			if p == nil {
				return Value{}, encodeErr(t, native, "nil amount")
			}
			return U512(p), nil
		case uint64:
			return U512(uint256.NewInt(p)), nil
		}
	case TagUnit:
		if native == nil {
			return Unit(), nil
		}
		if _, ok := native.(struct{}); ok {
			return Unit(), nil
		}
	case TagString:
		if p, ok := native.(string); ok {
			if !utf8.ValidString(p) {
				return Value{}, encodeErr(t, native, "string is not valid UTF-8")
			}
			return String(p), nil
		}
	case TagKey:
		switch p := native.(type) {
		case Key:
			return KeyValue(p), nil
		case string:
			k, err := ParseKey(p)
			if err != nil {
				return Value{}, encodeErr(t, native, "%v", err)
			}
			return KeyValue(k), nil
		}
	case TagByteArray:
		return encodeByteArray(native, t)
	case TagOption:
		return encodeOption(native, t)
	case TagList:
		return encodeList(native, t)
	case TagMap:
		return encodeMap(native, t)
	}
	return Value{}, encodeErr(t, native, "unsupported native type")
}

func encodeByteArray(native any, t Type) (Value, error) {
	var b []byte
	switch p := native.(type) {
	case []byte:
		b = p
	case [32]byte:
		b = p[:]
	case string:
		decoded, err := HashFromString(p)
		if err != nil {
			return Value{}, encodeErr(t, native, "%v", err)
		}
		b = decoded
	default:
		return Value{}, encodeErr(t, native, "unsupported native type")
	}
	if uint32(len(b)) != t.Size {
		return Value{}, encodeErr(t, native, "length %d, want %d", len(b), t.Size)
	}
	return ByteArray(b), nil
}

func encodeOption(native any, t Type) (Value, error) {
	if native == nil {
		return None(*t.Elem), nil
	}
	rv := reflect.ValueOf(native)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return None(*t.Elem), nil
		}
		// *uint256.Int is itself the native U512 form.
		if _, isAmount := native.(*uint256.Int); !isAmount {
			native = rv.Elem().Interface()
		}
	}
	inner, err := Encode(native, *t.Elem)
	if err != nil {
		return Value{}, err
	}
	return Some(inner), nil
}

func encodeList(native any, t Type) (Value, error) {
	rv := reflect.ValueOf(native)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return Value{}, encodeErr(t, native, "expected a slice")
	}
	items := make([]Value, rv.Len())
	for i := range items {
		item, err := Encode(rv.Index(i).Interface(), *t.Elem)
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return Value{typ: t, payload: items}, nil
}

func encodeMap(native any, t Type) (Value, error) {
	var pairs []Pair
	switch p := native.(type) {
	case []Pair:
		pairs = p
	case map[string]string:
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Value: p[k]})
		}
	default:
		return Value{}, encodeErr(t, native, "unsupported native type")
	}
	entries := make([]MapEntry, len(pairs))
	for i, pair := range pairs {
		k, err := Encode(pair.Key, *t.Key)
		if err != nil {
			return Value{}, err
		}
		v, err := Encode(pair.Value, *t.Val)
		if err != nil {
			return Value{}, err
		}
		entries[i] = MapEntry{Key: k, Value: v}
	}
	return Value{typ: t, payload: entries}, nil
}

// Decode returns the native form of v after checking that it carries the
// expected type. It never coerces between types.
func Decode(v Value, expected Type) (any, error) {
	if err := v.expect(expected); err != nil {
		return nil, err
	}
	return v.native(), nil
}

func (v Value) native() any {
	switch v.typ.Tag {
	case TagU512:
		p, _ := v.payload.(*uint256.Int)
		if p == nil {
			return new(uint256.Int)
		}
		return new(uint256.Int).Set(p)
	case TagUnit:
		return nil
	case TagByteArray:
		p, _ := v.payload.([]byte)
		c := make([]byte, len(p))
		copy(c, p)
		return c
	case TagOption:
		p, _ := v.payload.(*Value)
		if p == nil {
			return nil
		}
		return p.native()
	case TagList:
		p, _ := v.payload.([]Value)
		out := make([]any, len(p))
		for i, item := range p {
			out[i] = item.native()
		}
		return out
	case TagMap:
		p, _ := v.payload.([]MapEntry)
		out := make([]Pair, len(p))
		for i, e := range p {
			out[i] = Pair{Key: e.Key.native(), Value: e.Value.native()}
		}
		return out
	default:
		return v.payload
	}
}

// parsed is the JSON-friendly rendering used for the "parsed" field.
func (v Value) parsed() any {
	switch v.typ.Tag {
	case TagU512:
		p, _ := v.payload.(*uint256.Int)
		if p == nil {
			return "0"
		}
		return p.ToBig().String()
	case TagKey:
		p, _ := v.payload.(Key)
		return p.String()
	case TagByteArray:
		p, _ := v.payload.([]byte)
		return hex.EncodeToString(p)
	case TagOption:
		p, _ := v.payload.(*Value)
		if p == nil {
			return nil
		}
		return p.parsed()
	case TagList:
		p, _ := v.payload.([]Value)
		out := make([]any, len(p))
		for i, item := range p {
			out[i] = item.parsed()
		}
		return out
	case TagMap:
		p, _ := v.payload.([]MapEntry)
		out := make([]map[string]any, len(p))
		for i, e := range p {
			out[i] = map[string]any{"key": e.Key.parsed(), "value": e.Value.parsed()}
		}
		return out
	default:
		return v.native()
	}
}

func (v Value) expect(t Type) error {
	if v.IsZero() {
		return fmt.Errorf("%w: zero Value read as %s", ErrMalformed, t)
	}
	if !v.typ.Equal(t) {
		return &DecodeMismatchError{Expected: t, Got: v.typ}
	}
	return nil
}

// AsBool reads a Bool.
func (v Value) AsBool() (bool, error) {
	if err := v.expect(BoolType); err != nil {
		return false, err
	}
	p, _ := v.payload.(bool)
	return p, nil
}

// AsU8 reads a U8.
func (v Value) AsU8() (uint8, error) {
	if err := v.expect(U8Type); err != nil {
		return 0, err
	}
	p, _ := v.payload.(uint8)
	return p, nil
}

// AsU64 reads a U64.
func (v Value) AsU64() (uint64, error) {
	if err := v.expect(U64Type); err != nil {
		return 0, err
	}
	p, _ := v.payload.(uint64)
	return p, nil
}

// AsU512 reads a U512.
func (v Value) AsU512() (*uint256.Int, error) {
	if err := v.expect(U512Type); err != nil {
		return nil, err
	}
	return v.native().(*uint256.Int), nil
}

// AsString reads a String.
func (v Value) AsString() (string, error) {
	if err := v.expect(StringType); err != nil {
		return "", err
	}
	p, _ := v.payload.(string)
	return p, nil
}

// AsKey reads a Key.
func (v Value) AsKey() (Key, error) {
	if err := v.expect(KeyType); err != nil {
		return Key{}, err
	}
	p, _ := v.payload.(Key)
	return p, nil
}

// AsByteArray reads a ByteArray of any size.
func (v Value) AsByteArray() ([]byte, error) {
	if v.IsZero() {
		return nil, fmt.Errorf("%w: zero Value read as a byte array", ErrMalformed)
	}
	if v.typ.Tag != TagByteArray {
		return nil, &DecodeMismatchError{Expected: ByteArrayOf(v.typ.Size), Got: v.typ}
	}
	return v.native().([]byte), nil
}

// AsOption reads an Option of elem. The returned pointer is nil when absent.
func (v Value) AsOption(elem Type) (*Value, error) {
	if err := v.expect(OptionOf(elem)); err != nil {
		return nil, err
	}
	p, _ := v.payload.(*Value)
	if p == nil {
		return nil, nil
	}
	inner := *p
	return &inner, nil
}

// AsList reads a List of elem.
func (v Value) AsList(elem Type) ([]Value, error) {
	if err := v.expect(ListOf(elem)); err != nil {
		return nil, err
	}
	p, _ := v.payload.([]Value)
	return append([]Value(nil), p...), nil
}

// AsStringMap reads a Map<String,String>.
func (v Value) AsStringMap() (map[string]string, error) {
	if err := v.expect(MapOf(StringType, StringType)); err != nil {
		return nil, err
	}
	p, _ := v.payload.([]MapEntry)
	out := make(map[string]string, len(p))
	for _, e := range p {
		k, _ := e.Key.payload.(string)
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("%w: duplicate map key %q", ErrMalformed, k)
		}
		val, _ := e.Value.payload.(string)
		out[k] = val
	}
	return out, nil
}
