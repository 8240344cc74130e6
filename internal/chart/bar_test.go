package chart

import (
	"bytes"
	"testing"

	"github.com/jengzang/accident-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var spec = BarSpec{
	Title:      "Deaths by gender",
	XLabel:     "Gender",
	YLabel:     "Deaths",
	Width:      640,
	Height:     360,
	EmptyLabel: "no data",
}

func TestRenderBar(t *testing.T) {
	counts := models.CategoryCount{Field: "gender", Entries: []models.CategoryEntry{
		{Category: "M", Count: 12},
		{Category: "F", Count: 7},
		{Category: "", Count: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderBar(&buf, spec, counts, NewPalette(counts.Categories())))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Deaths by gender")
}

func TestRenderBar_SingleAndEmpty(t *testing.T) {
	single := models.CategoryCount{Entries: []models.CategoryEntry{{Category: "F", Count: 1}}}
	var buf bytes.Buffer
	require.NoError(t, RenderBar(&buf, spec, single, NewPalette([]string{"F"})))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, RenderBar(&buf, spec, models.CategoryCount{}, NewPalette(nil)))
	assert.Contains(t, buf.String(), "<svg")
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 50, barWidth(900, 0))
	assert.Equal(t, 120, barWidth(900, 2))
	assert.Equal(t, 8, barWidth(300, 100))
}

func TestPalette(t *testing.T) {
	p := NewPalette([]string{"M", "F", "M", ""})

	assert.Equal(t, "#636efa", p.Hex("M"))
	assert.Equal(t, "#ef553b", p.Hex("F"))
	assert.Equal(t, "#00cc96", p.Hex(""))
	assert.Equal(t, "#9e9e9e", p.Hex("unknown"))
	assert.Equal(t, []models.LegendEntry{
		{Category: "M", Color: "#636efa"},
		{Category: "F", Color: "#ef553b"},
		{Category: "", Color: "#00cc96"},
	}, p.Legend(), "legend keeps first-seen order")

	c := p.Color("F")
	assert.Equal(t, uint8(0xef), c.R)
	assert.Equal(t, uint8(0x55), c.G)
	assert.Equal(t, uint8(0x3b), c.B)
}

func TestPalette_Wraps(t *testing.T) {
	cats := make([]string, len(paletteHex)+1)
	for i := range cats {
		cats[i] = string(rune('a' + i))
	}
	p := NewPalette(cats)
	assert.Equal(t, p.Hex("a"), p.Hex(cats[len(paletteHex)]))
}
