package clvalue

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

// HashPrefix is the literal prefix of formatted hash references.
const HashPrefix = "hash-"

// ReadU8 reads one byte.
func ReadU8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, fmt.Errorf("%w: need 1 byte for u8, have 0", ErrMalformed)
	}
	return b[0], b[1:], nil
}

// ReadU32 reads a little-endian u32.
func ReadU32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, fmt.Errorf("%w: need 4 bytes for u32, have %d", ErrMalformed, len(b))
	}
	return binary.LittleEndian.Uint32(b), b[4:], nil
}

// ReadU64 reads a little-endian u64.
func ReadU64(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, fmt.Errorf("%w: need 8 bytes for u64, have %d", ErrMalformed, len(b))
	}
	return binary.LittleEndian.Uint64(b), b[8:], nil
}

// ReadBool reads a single 0/1 byte.
func ReadBool(b []byte) (bool, []byte, error) {
	v, rest, err := ReadU8(b)
	if err != nil {
		return false, nil, err
	}
	switch v {
	case 0:
		return false, rest, nil
	case 1:
		return true, rest, nil
	default:
		return false, nil, fmt.Errorf("%w: invalid bool byte %d", ErrMalformed, v)
	}
}

// ReadString reads a u32 length prefix followed by UTF-8 bytes.
func ReadString(b []byte) (string, []byte, error) {
	n, rest, err := ReadU32(b)
	if err != nil {
		return "", nil, err
	}
	if uint64(len(rest)) < uint64(n) {
		return "", nil, fmt.Errorf("%w: string length %d exceeds %d remaining bytes", ErrMalformed, n, len(rest))
	}
	s := rest[:n]
	if !utf8.Valid(s) {
		return "", nil, fmt.Errorf("%w: string is not valid UTF-8", ErrMalformed)
	}
	return string(s), rest[n:], nil
}

// ReadFixed reads exactly n raw bytes.
func ReadFixed(b []byte, n uint32) ([]byte, []byte, error) {
	if uint64(len(b)) < uint64(n) {
		return nil, nil, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformed, n, len(b))
	}
	out := make([]byte, n)
	copy(out, b[:n])
	return out, b[n:], nil
}

// ReadU512 reads a length byte followed by little-endian magnitude bytes.
// Magnitudes wider than 256 bits are rejected.
func ReadU512(b []byte) (*uint256.Int, []byte, error) {
	n, rest, err := ReadU8(b)
	if err != nil {
		return nil, nil, err
	}
	if n > 64 {
		return nil, nil, fmt.Errorf("%w: u512 length %d", ErrMalformed, n)
	}
	le, rest, err := ReadFixed(rest, uint32(n))
	if err != nil {
		return nil, nil, err
	}
	for i := 32; i < len(le); i++ {
		if le[i] != 0 {
			return nil, nil, fmt.Errorf("%w: u512 value exceeds 256 bits", ErrMalformed)
		}
	}
	if len(le) > 32 {
		le = le[:32]
	}
	return new(uint256.Int).SetBytes(reverse(le)), rest, nil
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

func appendString(b []byte, s string) []byte {
	b = appendU32(b, uint32(len(s)))
	return append(b, s...)
}

func appendU512(b []byte, v *uint256.Int) []byte {
	be := v.Bytes()
	b = append(b, byte(len(be)))
	return append(b, reverse(be)...)
}

func reverse(in []byte) []byte {
	out := make([]byte, len(in))
	for i, c := range in {
		out[len(in)-1-i] = c
	}
	return out
}

// ParseUint parses the canonical base-10 string form of an unsigned integer
// of the given bit width. Use it only where the input is genuinely textual.
func ParseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("parse u%d %q: %w", bits, s, err)
	}
	return v, nil
}

// ParseU512 parses a base-10 amount such as a payment in motes.
func ParseU512(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse u512 %q: %w", s, err)
	}
	return v, nil
}

// HashFromString hex-decodes a hash reference. A leading "hash-" is removed
// once if present, so both forms decode to the same bytes.
func HashFromString(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, HashPrefix))
	if err != nil {
		return nil, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return b, nil
}

// Hash32FromString is HashFromString for references that must be 32 bytes.
func Hash32FromString(s string) ([32]byte, error) {
	var out [32]byte
	b, err := HashFromString(s)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("invalid hash %q: expected 32 bytes, got %d", s, len(b))
	}
	copy(out[:], b)
	return out, nil
}
