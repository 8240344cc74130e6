package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jengzang/accident-dashboard/internal/config"
	"github.com/jengzang/accident-dashboard/internal/models"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// featureCollection keeps geometries and properties raw so that every
// feature can be checked on its own.
type featureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type feature struct {
	Type       string                     `json:"type"`
	Geometry   json.RawMessage            `json:"geometry"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// Load reads the GeoJSON file at path and builds the record table.
func Load(path string, keys config.PropertyKeys) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Decode(f, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}

// Decode builds the record table from a GeoJSON FeatureCollection. Each
// feature becomes exactly one record, in input order.
func Decode(r io.Reader, keys config.PropertyKeys) (*Table, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, collectionError("malformed JSON", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, collectionError(fmt.Sprintf("unexpected type %q", fc.Type), nil)
	}
	if fc.Features == nil {
		return nil, collectionError("missing features", nil)
	}

	records := make([]models.Record, 0, len(fc.Features))
	for i, raw := range fc.Features {
		rec, err := decodeFeature(i, raw, keys)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return NewTable(records), nil
}

func decodeFeature(idx int, raw json.RawMessage, keys config.PropertyKeys) (models.Record, error) {
	var f feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return models.Record{}, featureError(idx, "malformed feature", err)
	}
	if f.Type != "" && f.Type != "Feature" {
		return models.Record{}, featureError(idx, fmt.Sprintf("unexpected type %q", f.Type), nil)
	}
	if isNull(f.Geometry) {
		return models.Record{}, featureError(idx, "missing geometry", nil)
	}

	var g geom.T
	if err := geojson.Unmarshal(f.Geometry, &g); err != nil {
		return models.Record{}, featureError(idx, "malformed geometry", err)
	}
	lon, lat, ok := firstCoord(g)
	if !ok {
		return models.Record{}, featureError(idx, "geometry has no coordinate pair", nil)
	}

	return models.Record{
		Longitude:   lon,
		Latitude:    lat,
		Gender:      propertyString(f.Properties, keys.Gender),
		Timestamp:   propertyString(f.Properties, keys.Timestamp),
		Fatality:    propertyString(f.Properties, keys.Fatality),
		SubjectCode: propertyString(f.Properties, keys.SubjectCode),
	}, nil
}

// firstCoord returns the first two ordinates of a geometry. Collections
// use their first member.
func firstCoord(g geom.T) (float64, float64, bool) {
	if g == nil {
		return 0, 0, false
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		if gc.NumGeoms() == 0 {
			return 0, 0, false
		}
		return firstCoord(gc.Geom(0))
	}
	flat := g.FlatCoords()
	if g.Stride() < 2 || len(flat) < 2 {
		return 0, 0, false
	}
	return flat[0], flat[1], true
}

// propertyString copies a property as text: strings unquoted, null or
// missing as "", anything else as its JSON text.
func propertyString(props map[string]json.RawMessage, key string) string {
	raw, ok := props[key]
	if !ok || isNull(raw) {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
