package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
)

// QueryRenderer renders dictionary lookups
type QueryRenderer struct {
	out    io.Writer
	format Format
}

// NewQueryRenderer creates a new query renderer
func NewQueryRenderer(out io.Writer, format Format) *QueryRenderer {
	return &QueryRenderer{out: out, format: format}
}

// RenderValue renders a single looked-up value under key
func (r *QueryRenderer) RenderValue(key string, value any) error {
	if r.format != FormatText {
		return Structured(r.out, r.format, map[string]any{key: value})
	}
	fmt.Fprintln(r.out, value)
	return nil
}

// RenderMetadata renders token metadata sorted by field name
func (r *QueryRenderer) RenderMetadata(tokenID string, meta map[string]string) error {
	if r.format != FormatText {
		return Structured(r.out, r.format, map[string]any{"token_id": tokenID, "metadata": meta})
	}

	if len(meta) == 0 {
		fmt.Fprintf(r.out, "Token %s has no metadata\n", tokenID)
		return nil
	}

	keys := lo.Keys(meta)
	sort.Strings(keys)
	rows := lo.Map(keys, func(k string, _ int) []string {
		return []string{k, meta[k]}
	})
	fmt.Fprintln(r.out, renderTable([]string{"FIELD", "VALUE"}, rows))
	return nil
}
