package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// paletteFile is the YAML shape of PALETTE_FILE:
//
//	colors:
//	  TD: "#1b4f72"
//	  Cat5: "#5d0000"
type paletteFile struct {
	Colors map[string]string `yaml:"colors"`
}

// LoadPalette reads category colour overrides from a YAML file. Categories
// not listed keep their default colour.
func LoadPalette(path string) (map[domain.Category]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return ParsePalette(data)
}

// ParsePalette decodes palette YAML.
func ParsePalette(data []byte) (map[domain.Category]string, error) {
	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	out := make(map[domain.Category]string, len(pf.Colors))
	for label, color := range pf.Colors {
		c, err := domain.ParseCategory(label)
		if err != nil {
			return nil, fmt.Errorf("parse palette: %w", err)
		}
		out[c] = color
	}
	return out, nil
}
