package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jengzang/accident-dashboard/internal/chart"
	"github.com/jengzang/accident-dashboard/internal/config"
	"github.com/jengzang/accident-dashboard/internal/dataset"
	"github.com/jengzang/accident-dashboard/internal/models"
	"github.com/jengzang/accident-dashboard/internal/spatial"
	"github.com/jengzang/accident-dashboard/internal/stats"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// ErrUnknownChart is returned by Chart for a name that was never rendered
var ErrUnknownChart = errors.New("unknown chart")

// Dashboard is everything the presentation layer reads. It is built once
// and never modified, so handlers share it without locking.
type Dashboard struct {
	Table     *dataset.Table
	Accidents models.CategoryCount
	Deaths    models.CategoryCount
	FatalFlag string
	Map       models.MapView
	Legend    []models.LegendEntry // first-seen order, same as the charts
	Charts    []models.ChartInfo
	BuiltAt   time.Time
}

// DashboardService handles business logic for the accident dashboard
type DashboardService struct {
	dash     *Dashboard
	charts   map[string][]byte
	features []byte
}

// NewDashboardService aggregates the table and pre-renders every artifact
// served over HTTP.
func NewDashboardService(cfg *config.Config, table *dataset.Table, logger *zap.Logger) (*DashboardService, error) {
	start := time.Now()

	accidents, err := stats.CountBy(table, models.ColumnGender)
	if err != nil {
		return nil, fmt.Errorf("failed to count accidents: %w", err)
	}
	deaths, err := stats.CountFatal(table, models.ColumnGender, cfg.Data.FatalFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to count deaths: %w", err)
	}

	palette := chart.NewPalette(accidents.Categories())
	records := table.Records()

	dash := &Dashboard{
		Table:     table,
		Accidents: accidents,
		Deaths:    deaths,
		FatalFlag: cfg.Data.FatalFlag,
		Map:       buildMapView(cfg.Map, spatial.PointsFromRecords(records)),
		Legend:    palette.Legend(),
		Charts: []models.ChartInfo{
			{Name: models.ChartAccidents, Title: cfg.Charts.Accidents.Title, URL: "/dash/charts/" + models.ChartAccidents + ".svg"},
			{Name: models.ChartDeaths, Title: cfg.Charts.Deaths.Title, URL: "/dash/charts/" + models.ChartDeaths + ".svg"},
		},
		BuiltAt: time.Now(),
	}

	s := &DashboardService{dash: dash, charts: make(map[string][]byte)}

	for name, pair := range map[string]struct {
		label  config.BarLabel
		counts models.CategoryCount
	}{
		models.ChartAccidents: {cfg.Charts.Accidents, accidents},
		models.ChartDeaths:    {cfg.Charts.Deaths, deaths},
	} {
		var buf bytes.Buffer
		spec := chart.BarSpec{
			Title:      pair.label.Title,
			XLabel:     pair.label.XLabel,
			YLabel:     pair.label.YLabel,
			Width:      cfg.Charts.Width,
			Height:     cfg.Charts.Height,
			EmptyLabel: cfg.Charts.EmptyLabel,
		}
		if err := chart.RenderBar(&buf, spec, pair.counts, palette); err != nil {
			return nil, err
		}
		s.charts[name] = buf.Bytes()
	}

	s.features, err = encodeFeatures(records, palette)
	if err != nil {
		return nil, err
	}

	logger.Info("dashboard built",
		zap.Int("records", table.Len()),
		zap.Int("categories", len(accidents.Entries)),
		zap.Int("deaths", deaths.Total()),
		zap.Duration("took", time.Since(start)),
	)
	return s, nil
}

// Dashboard returns the shared read-only dashboard
func (s *DashboardService) Dashboard() *Dashboard {
	return s.dash
}

// Counts returns both category counts
func (s *DashboardService) Counts() models.CountsResponse {
	return models.CountsResponse{
		Total:     s.dash.Table.Len(),
		Accidents: s.dash.Accidents,
		Deaths:    s.dash.Deaths,
		FatalFlag: s.dash.FatalFlag,
	}
}

// Chart returns the rendered SVG of a chart
func (s *DashboardService) Chart(name string) ([]byte, error) {
	svg, ok := s.charts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return svg, nil
}

// FeatureCollection returns the table as GeoJSON for the map layer
func (s *DashboardService) FeatureCollection() []byte {
	return s.features
}

func encodeFeatures(records []models.Record, palette *chart.Palette) ([]byte, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(records))}
	for i, r := range records {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.Itoa(i),
			Geometry: geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}),
			Properties: map[string]interface{}{
				models.ColumnGender:      r.Gender,
				models.ColumnTimestamp:   r.Timestamp,
				models.ColumnFatality:    r.Fatality,
				models.ColumnSubjectCode: r.SubjectCode,
				"color":                  palette.Hex(r.Gender),
			},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}
	return data, nil
}

var tileStyles = map[string]struct{ url, attribution string }{
	"carto-positron": {
		"https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		"&copy; OpenStreetMap contributors &copy; CARTO",
	},
	"carto-darkmatter": {
		"https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		"&copy; OpenStreetMap contributors &copy; CARTO",
	},
	"open-street-map": {
		"https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		"&copy; OpenStreetMap contributors",
	},
}

// buildMapView uses the configured center when there is one, otherwise it
// centers and zooms on the data.
func buildMapView(mc config.MapConfig, points []spatial.Point) models.MapView {
	style, ok := tileStyles[mc.Style]
	if !ok {
		style = tileStyles["carto-positron"]
	}

	view := models.MapView{
		CenterLat:   mc.CenterLat,
		CenterLon:   mc.CenterLon,
		Zoom:        mc.Zoom,
		Style:       mc.Style,
		TileURL:     style.url,
		Attribution: style.attribution,
		Title:       mc.Title,
		ColorLabel:  mc.ColorLabel,
	}
	if b, ok := spatial.Bounds(points); ok {
		view.Bounds = &b
	}

	if !mc.HasCenter() {
		if c, ok := spatial.Centroid(points); ok {
			view.CenterLat, view.CenterLon = c.Lat, c.Lon
		}
		if view.Bounds != nil {
			view.Zoom = spatial.ZoomForBounds(*view.Bounds)
		}
	}
	return view
}
