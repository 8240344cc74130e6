package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr)
	assert.Equal(t, "MUERTO.geojson", cfg.Data.Path)
	assert.Equal(t, "S", cfg.Data.FatalFlag)
	assert.Equal(t, PropertyKeys{
		Gender:      "GENERO",
		Timestamp:   "FECHA_HORA_ACC",
		Fatality:    "MUERTE_POSTERIOR",
		SubjectCode: "CODIGO_ACCIDENTADO",
	}, cfg.Data.Properties)
	assert.Equal(t, 10, cfg.Map.Zoom)
	assert.True(t, cfg.Map.HasCenter())
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
  rate_limit: 30
  rate_window: 10s
data:
  path: /srv/data/accidents.geojson
  properties:
    gender: Genero
archive:
  db_path: /tmp/records.db
log:
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, "/srv/data/accidents.geojson", cfg.Data.Path)
	assert.Equal(t, "Genero", cfg.Data.Properties.Gender)
	// untouched keys keep their defaults
	assert.Equal(t, "MUERTE_POSTERIOR", cfg.Data.Properties.Fatality)
	assert.Equal(t, "/tmp/records.db", cfg.Archive.DBPath)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "Número de Fallecidos por Género", cfg.Charts.Deaths.Title)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unclosed"},
		{"empty property key", "data:\n  properties:\n    fatality: \"\"\n"},
		{"zoom out of range", "map:\n  zoom: 40\n"},
		{"unknown log format", "log:\n  format: xml\n"},
		{"rate limit without window", "server:\n  rate_limit: 5\n  rate_window: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestHasCenter(t *testing.T) {
	assert.False(t, MapConfig{}.HasCenter())
	assert.True(t, MapConfig{CenterLon: -74}.HasCenter())
}
