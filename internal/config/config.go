package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read at startup. It is optional.
const DefaultPath = "config.yaml"

// Config 应用配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Map     MapConfig     `yaml:"map"`
	Charts  ChartsConfig  `yaml:"charts"`
	Archive ArchiveConfig `yaml:"archive"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RateLimit       int           `yaml:"rate_limit"` // requests per window and IP, 0 disables
	RateWindow      time.Duration `yaml:"rate_window"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DataConfig points at the GeoJSON source and names the properties to copy.
type DataConfig struct {
	Path       string       `yaml:"path"`
	Properties PropertyKeys `yaml:"properties"`
	FatalFlag  string       `yaml:"fatal_flag"`
}

// PropertyKeys maps record fields to feature property names.
type PropertyKeys struct {
	Gender      string `yaml:"gender"`
	Timestamp   string `yaml:"timestamp"`
	Fatality    string `yaml:"fatality"`
	SubjectCode string `yaml:"subject_code"`
}

// MapConfig holds the scatter map presentation.
type MapConfig struct {
	Title      string  `yaml:"title"`
	Heading    string  `yaml:"heading"`
	ColorLabel string  `yaml:"color_label"`
	CenterLat  float64 `yaml:"center_lat"`
	CenterLon  float64 `yaml:"center_lon"`
	Zoom       int     `yaml:"zoom"`
	Style      string  `yaml:"style"`
}

// ChartsConfig holds the bar chart presentation.
type ChartsConfig struct {
	Heading    string   `yaml:"heading"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	EmptyLabel string   `yaml:"empty_label"`
	Accidents  BarLabel `yaml:"accidents"`
	Deaths     BarLabel `yaml:"deaths"`
}

// BarLabel names one bar chart and its axes.
type BarLabel struct {
	Title  string `yaml:"title"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
}

// ArchiveConfig enables the SQLite snapshot of the loaded records.
type ArchiveConfig struct {
	DBPath string `yaml:"db_path"` // empty disables
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:5000",
			RateWindow:      time.Minute,
			ShutdownTimeout: 5 * time.Second,
		},
		Data: DataConfig{
			Path: "MUERTO.geojson",
			Properties: PropertyKeys{
				Gender:      "GENERO",
				Timestamp:   "FECHA_HORA_ACC",
				Fatality:    "MUERTE_POSTERIOR",
				SubjectCode: "CODIGO_ACCIDENTADO",
			},
			FatalFlag: "S",
		},
		Map: MapConfig{
			Title:      "Accidentes de Tráfico en Bogotá 2007-2024",
			Heading:    "Mapa de Accidentes de Tráfico en Bogotá por Género",
			ColorLabel: "Sexo del Accidentado",
			CenterLat:  4.60971,
			CenterLon:  -74.08175,
			Zoom:       10,
			Style:      "carto-positron",
		},
		Charts: ChartsConfig{
			Heading:    "Análisis de Accidentes por Género",
			Width:      900,
			Height:     450,
			EmptyLabel: "sin datos",
			Accidents: BarLabel{
				Title:  "Número de Accidentados por Género",
				XLabel: "Género",
				YLabel: "Número de Accidentados",
			},
			Deaths: BarLabel{
				Title:  "Número de Fallecidos por Género",
				XLabel: "Género",
				YLabel: "Número de Fallecidos",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load 加载配置. A missing file yields the defaults; a present file is
// decoded on top of them.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a YAML overlay can break.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		return errors.New("server.rate_window must be positive when rate_limit is set")
	}
	if c.Data.Path == "" {
		return errors.New("data.path is required")
	}
	p := c.Data.Properties
	if p.Gender == "" || p.Timestamp == "" || p.Fatality == "" || p.SubjectCode == "" {
		return errors.New("data.properties: every property key must be set")
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 22 {
		return fmt.Errorf("map.zoom out of range: %d", c.Map.Zoom)
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return errors.New("charts.width and charts.height must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// HasCenter reports whether the map center was configured. A zero pair
// means "derive from the data".
func (m MapConfig) HasCenter() bool {
	return m.CenterLat != 0 || m.CenterLon != 0
}
