// Package chart renders category counts as SVG bar charts.
package chart

import (
	"fmt"
	"io"

	"github.com/jengzang/accident-dashboard/internal/models"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	backgroundHex = "121212"
	foregroundHex = "ffffff"
	accentHex     = "00ff99"
)

// BarSpec is the presentation of one bar chart
type BarSpec struct {
	Title      string
	XLabel     string
	YLabel     string
	Width      int
	Height     int
	EmptyLabel string // label for the blank category and for a chart with no data
}

// RenderBar writes counts as an SVG bar chart. Bars keep the order of
// counts and take their fill from palette.
func RenderBar(w io.Writer, spec BarSpec, counts models.CategoryCount, palette *Palette) error {
	bars := make([]gochart.Value, 0, len(counts.Entries))
	maxCount := 0
	for _, e := range counts.Entries {
		label := e.Category
		if label == "" {
			label = spec.EmptyLabel
		}
		col := palette.Color(e.Category)
		bars = append(bars, gochart.Value{
			Label: label,
			Value: float64(e.Count),
			Style: gochart.Style{
				FillColor:   col,
				StrokeColor: col,
				StrokeWidth: 1,
			},
		})
		maxCount = max(maxCount, e.Count)
	}
	if len(bars) == 0 {
		bars = append(bars, gochart.Value{Label: spec.EmptyLabel, Value: 0})
	}

	bg := drawing.ColorFromHex(backgroundHex)
	fg := drawing.ColorFromHex(foregroundHex)

	bc := gochart.BarChart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontColor: drawing.ColorFromHex(accentHex), FontSize: 14},
		Width:      spec.Width,
		Height:     spec.Height,
		BarWidth:   barWidth(spec.Width, len(bars)),
		Background: gochart.Style{
			FillColor: bg,
			Padding:   gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis: gochart.Style{
			FontColor:   fg,
			StrokeColor: fg,
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Style: gochart.Style{FontColor: fg, StrokeColor: fg},
			// a fixed range keeps single-bar and all-equal charts drawable
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(max(1, maxCount))},
		},
		Bars: bars,
	}

	if err := bc.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render %q: %w", spec.Title, err)
	}
	return nil
}

// barWidth spreads the bars over roughly two thirds of the chart
func barWidth(width, bars int) int {
	if bars == 0 {
		return 50
	}
	return max(8, min(120, width*2/3/bars))
}
