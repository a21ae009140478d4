package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// ConfigItemResult is a single decoded configuration item
type ConfigItemResult struct {
	Item  domain.ConfigItem
	Value string
}

// ConfigRenderer renders contract configuration
type ConfigRenderer struct {
	out    io.Writer
	format Format
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer, format Format) *ConfigRenderer {
	return &ConfigRenderer{out: out, format: format}
}

// RenderItem renders one item
func (r *ConfigRenderer) RenderItem(result *ConfigItemResult) error {
	if r.format != FormatText {
		return Structured(r.out, r.format, map[string]string{string(result.Item): result.Value})
	}
	fmt.Fprintln(r.out, result.Value)
	return nil
}

// RenderSnapshot renders every item of the bound contract. Items that failed
// to read are shown with their error.
func (r *ConfigRenderer) RenderSnapshot(contract *domain.ContractReference, entries []usecase.ConfigEntry) error {
	if r.format != FormatText {
		return Structured(r.out, r.format, snapshotDocument(contract, entries))
	}

	fmt.Fprintf(r.out, "📋 Contract %s\n", color.New(color.FgCyan).Sprint(contract))
	rows := lo.Map(entries, func(e usecase.ConfigEntry, _ int) []string {
		value := e.Value
		if e.Err != nil {
			value = color.New(color.FgRed).Sprintf("error: %v", e.Err)
		}
		return []string{TitleCase(string(e.Item)), value}
	})
	fmt.Fprintln(r.out, renderTable(nil, rows))

	if failed := lo.CountBy(entries, func(e usecase.ConfigEntry) bool { return e.Err != nil }); failed > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d of %d items could not be read", failed, len(entries))))
	}
	return nil
}

type snapshotItem struct {
	Item  string `json:"item"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func snapshotDocument(contract *domain.ContractReference, entries []usecase.ConfigEntry) any {
	return struct {
		Contract string         `json:"contract"`
		Items    []snapshotItem `json:"items"`
	}{
		Contract: contract.String(),
		Items: lo.Map(entries, func(e usecase.ConfigEntry, _ int) snapshotItem {
			item := snapshotItem{Item: string(e.Item), Value: e.Value}
			if e.Err != nil {
				item.Error = e.Err.Error()
			}
			return item
		}),
	}
}
