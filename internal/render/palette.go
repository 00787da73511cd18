package render

import (
	"strings"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// Palette assigns a CSS colour to each category.
type Palette map[domain.Category]string

const (
	colorSelected   = "#3498db"
	colorUnselected = "#bdc3c7"
	colorBorder     = "#2c3e50"
	colorLand       = "#e8f4e8"
	colorLandStroke = "#95a5a6"
)

// DefaultPalette returns the stock category colours.
func DefaultPalette() Palette {
	return Palette{
		domain.TD:   "#1b4f72",
		domain.TS:   "#117a65",
		domain.Cat1: "#9c640c",
		domain.Cat2: "#cb4335",
		domain.Cat3: "#7d3c98",
		domain.Cat4: "#e91e63",
		domain.Cat5: "#5d0000",
	}
}

// Merge returns a copy of p with the entries of overrides applied.
func (p Palette) Merge(overrides map[domain.Category]string) Palette {
	out := make(Palette, len(p))
	for c, col := range p {
		out[c] = col
	}
	for c, col := range overrides {
		if col = strings.TrimSpace(col); col != "" {
			out[c] = col
		}
	}
	return out
}

// Color returns the colour for c, falling back to the unselected grey.
func (p Palette) Color(c domain.Category) string {
	if col, ok := p[c]; ok {
		return col
	}
	return colorUnselected
}

// LegendItem is one swatch of the map legend.
type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend lists every category with its colour in severity order.
func (p Palette) Legend() []LegendItem {
	out := make([]LegendItem, 0, domain.CategoryCount)
	for _, c := range domain.Categories() {
		out = append(out, LegendItem{Label: c.String(), Color: p.Color(c)})
	}
	return out
}
