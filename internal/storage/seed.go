package storage

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fintrack/internal/core"
)

// seedFile is the on-disk shape of a category seed file:
//
//	categories:
//	  - id: "1"
//	    name: Salary
//	    type: income
//	    icon: "💰"
//	    color: "#10b981"
type seedFile struct {
	Categories []core.Category `yaml:"categories"`
}

// LoadSeedCategories reads a YAML seed file. Entries without a name or with an
// unknown type are rejected.
func LoadSeedCategories(path string) ([]core.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("seed category %d: %w", i, core.ErrEmptyName)
		}
		if !c.Type.IsValid() {
			return nil, fmt.Errorf("seed category %q: %w", c.Name, core.ErrInvalidType)
		}
		if c.ID == "" {
			f.Categories[i].ID = fmt.Sprintf("seed-%d", i+1)
		}
	}
	return f.Categories, nil
}

// SeedCategories resolves the seed set: the file at path when it loads and is
// non-empty, otherwise core.DefaultCategories.
func SeedCategories(path string) []core.Category {
	if path == "" {
		return core.DefaultCategories()
	}
	cats, err := LoadSeedCategories(path)
	if err != nil {
		slog.Warn("Falling back to default categories", "path", path, "error", err)
		return core.DefaultCategories()
	}
	if len(cats) == 0 {
		slog.Warn("Seed file has no categories, using defaults", "path", path)
		return core.DefaultCategories()
	}
	return cats
}
