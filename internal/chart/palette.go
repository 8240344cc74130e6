package chart

import (
	"github.com/jengzang/accident-dashboard/internal/models"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// qualitative colors, assigned to categories in first-seen order
var paletteHex = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

// Palette gives every category one fixed color so a category looks the
// same on the map and on both bar charts.
type Palette struct {
	order  []string
	colors map[string]string
}

// NewPalette assigns colors to categories in order. Duplicates keep their
// first color; the colors wrap around after the tenth category.
func NewPalette(categories []string) *Palette {
	p := &Palette{colors: make(map[string]string)}
	for _, c := range categories {
		p.add(c)
	}
	return p
}

func (p *Palette) add(category string) {
	if _, ok := p.colors[category]; ok {
		return
	}
	p.colors[category] = "#" + paletteHex[len(p.order)%len(paletteHex)]
	p.order = append(p.order, category)
}

// Hex returns the "#rrggbb" color of category. Unknown categories get the
// neutral gray.
func (p *Palette) Hex(category string) string {
	if hex, ok := p.colors[category]; ok {
		return hex
	}
	return "#9e9e9e"
}

// Color returns the category color for go-chart
func (p *Palette) Color(category string) drawing.Color {
	return drawing.ColorFromHex(p.Hex(category)[1:])
}

// Legend returns the categories with their colors, in the order they
// were added
func (p *Palette) Legend() []models.LegendEntry {
	out := make([]models.LegendEntry, len(p.order))
	for i, c := range p.order {
		out[i] = models.LegendEntry{Category: c, Color: p.colors[c]}
	}
	return out
}
