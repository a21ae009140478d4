package clvalue

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type jsonValue struct {
	CLType Type            `json:"cl_type"`
	Bytes  string          `json:"bytes"`
	Parsed json.RawMessage `json:"parsed,omitempty"`
}

// MarshalJSON writes the node's {"cl_type","bytes","parsed"} form.
func (v Value) MarshalJSON() ([]byte, error) {
	parsed, err := json.Marshal(v.parsed())
	if err != nil {
		return nil, fmt.Errorf("marshal parsed %s: %w", v.typ, err)
	}
	return json.Marshal(jsonValue{
		CLType: v.typ,
		Bytes:  hex.EncodeToString(v.Bytes()),
		Parsed: parsed,
	})
}

// UnmarshalJSON decodes "bytes" against "cl_type". The "parsed" field is
// informative only and is not trusted.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw jsonValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	b, err := hex.DecodeString(raw.Bytes)
	if err != nil {
		return fmt.Errorf("%w: bytes: %v", ErrMalformed, err)
	}
	parsed, err := ParseValue(raw.CLType, b)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
