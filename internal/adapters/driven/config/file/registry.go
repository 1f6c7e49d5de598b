package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
)

// Ensure RegistrySource implements the interface.
var _ driven.RegistrySource = (*RegistrySource)(nil)

// RegistrySource reads the company registry: a list of {id, guid} entries.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
type RegistrySource struct {
	path string
}

// NewRegistrySource creates a registry source for name relative to dir.
// An absolute name is used as is.
func NewRegistrySource(dir, name string) *RegistrySource {
	if name == "" {
		name = domain.RegistryFileName
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return &RegistrySource{path: name}
}

// Path returns the registry file path.
func (s *RegistrySource) Path() string {
	return s.path
}

// Registry reads and folds the registry file.
func (s *RegistrySource) Registry(_ context.Context) (domain.Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Registry{}, fmt.Errorf("read registry: %w", err)
	}

	entries, err := decodeEntries(s.path, data)
	if err != nil {
		return domain.Registry{}, fmt.Errorf("parse registry %s: %w", s.path, err)
	}
	return domain.NewRegistry(entries), nil
}

func decodeEntries(path string, data []byte) ([]domain.RegistryEntry, error) {
	var entries []domain.RegistryEntry

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
