package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"gopkg.in/yaml.v3"
)

type Renderer[T any] interface {
	Render(result T) error
}

// Format selects how a command writes its result
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

// FormatFor returns the output format requested by --json or --yaml
func FormatFor(cfg *config.RuntimeConfig) Format {
	switch {
	case cfg.JSON:
		return FormatJSON
	case cfg.YAML:
		return FormatYAML
	default:
		return FormatText
	}
}

// Structured writes v as indented JSON or as YAML. YAML goes through the
// JSON encoding so custom marshalers and field order are kept.
func Structured(out io.Writer, format Format, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if format != FormatYAML {
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to convert output to yaml: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = out.Write(buf.Bytes())
	return err
}

// blockStyle drops the flow and quoting styles inherited from JSON
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
