package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

// ProgramStoreAdapter implements ProgramStore using the wasm directory
type ProgramStoreAdapter struct {
	dir string
}

var _ usecase.ProgramStore = (*ProgramStoreAdapter)(nil)

// NewProgramStoreAdapter creates a new ProgramStoreAdapter. A relative wasm
// directory is resolved against the project root.
func NewProgramStoreAdapter(cfg *config.RuntimeConfig) *ProgramStoreAdapter {
	dir := cfg.WasmDir
	if dir == "" {
		dir = "wasm"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &ProgramStoreAdapter{dir: dir}
}

// Load reads a session program. name may be a bare file name, looked up in
// the wasm directory, or a path.
func (s *ProgramStoreAdapter) Load(ctx context.Context, name string) ([]byte, error) {
	path := name
	if filepath.Base(name) == name {
		path = filepath.Join(s.dir, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session program: %w", err)
	}
	if !bytes.HasPrefix(data, wasmMagic) {
		return nil, &domain.ValidationError{Field: "session program", Reason: fmt.Sprintf("%s is not a wasm module", path)}
	}
	return data, nil
}
