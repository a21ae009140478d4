package clvalue

import (
	"encoding/json"
	"fmt"
)

// NamedArg is one runtime argument.
type NamedArg struct {
	Name  string
	Value Value
}

// Args is an ordered set of runtime arguments with unique names.
// The zero value is ready to use.
type Args struct {
	items []NamedArg
	index map[string]int
}

// NewArgs returns an empty argument set.
func NewArgs() *Args {
	return &Args{}
}

// Insert adds name. An existing name keeps its position and takes the new value.
// Inserting the zero Value panics.
func (a *Args) Insert(name string, v Value) {
	if v.IsZero() {
		panic(fmt.Sprintf("clvalue: zero Value for argument %q", name))
	}
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if i, ok := a.index[name]; ok {
		a.items[i].Value = v
		return
	}
	a.index[name] = len(a.items)
	a.items = append(a.items, NamedArg{Name: name, Value: v})
}

// Get returns the value stored under name.
func (a *Args) Get(name string) (Value, bool) {
	i, ok := a.index[name]
	if !ok {
		return Value{}, false
	}
	return a.items[i].Value, true
}

// Has reports whether name is present.
func (a *Args) Has(name string) bool {
	_, ok := a.index[name]
	return ok
}

// Names returns the argument names in insertion order.
func (a *Args) Names() []string {
	out := make([]string, len(a.items))
	for i, item := range a.items {
		out[i] = item.Name
	}
	return out
}

// Items returns a copy of the arguments in insertion order.
func (a *Args) Items() []NamedArg {
	return append([]NamedArg(nil), a.items...)
}

func (a *Args) Len() int {
	return len(a.items)
}

// Bytes serializes the set as a u32 count followed by (name, CLValue) pairs.
func (a *Args) Bytes() []byte {
	out := appendU32(nil, uint32(len(a.items)))
	for _, item := range a.items {
		out = appendString(out, item.Name)
		out = append(out, item.Value.CLValueBytes()...)
	}
	return out
}

// MarshalJSON writes the node form [[name, value], ...].
func (a *Args) MarshalJSON() ([]byte, error) {
	out := make([][2]any, len(a.items))
	for i, item := range a.items {
		out[i] = [2]any{item.Name, item.Value}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the node form [[name, value], ...].
func (a *Args) UnmarshalJSON(data []byte) error {
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: args: %v", ErrMalformed, err)
	}
	*a = Args{}
	for i, pair := range raw {
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return fmt.Errorf("%w: arg %d name: %v", ErrMalformed, i, err)
		}
		var v Value
		if err := json.Unmarshal(pair[1], &v); err != nil {
			return fmt.Errorf("arg %q: %w", name, err)
		}
		a.Insert(name, v)
	}
	return nil
}
