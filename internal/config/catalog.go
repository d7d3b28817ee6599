package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML platform catalog:
//
//	platforms:
//	  - 레뷰
//	  - 리뷰노트
//	  - 강남맛집
type Catalog struct {
	Platforms []string `yaml:"platforms"`
}

// LoadCatalog reads the catalog at path. Blank and duplicate platform names
// are removed; order is kept.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(catalog.Platforms))
	platforms := make([]string, 0, len(catalog.Platforms))
	for _, p := range catalog.Platforms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		platforms = append(platforms, p)
	}
	catalog.Platforms = platforms
	return &catalog, nil
}
