package catalog

import (
	"fmt"
	"os"

	"checklist-assessment-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a YAML catalog.
func LoadFile(path string) (domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) catalog document and validates it.
func Parse(data []byte) (domain.Catalog, error) {
	var c domain.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Scoring == "" {
		c.Scoring = domain.PolicyKeywordTier
	}
	if err := Validate(c); err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}
