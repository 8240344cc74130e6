package models

// Bounds is a lon/lat bounding box
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// MapView describes how the scatter map opens
type MapView struct {
	CenterLat   float64 `json:"center_lat"`
	CenterLon   float64 `json:"center_lon"`
	Zoom        int     `json:"zoom"`
	Style       string  `json:"style"`
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
	Title       string  `json:"title"`
	ColorLabel  string  `json:"color_label"`
	Bounds      *Bounds `json:"bounds,omitempty"` // nil when no point is valid
}

// Chart names served under /dash/charts
const (
	ChartAccidents = "accidents"
	ChartDeaths    = "deaths"
)

// LegendEntry is one category of the map legend
type LegendEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// ChartInfo describes a rendered bar chart
type ChartInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CountsResponse is the payload of the counts endpoint
type CountsResponse struct {
	Total     int           `json:"total"`
	Accidents CategoryCount `json:"accidents"`
	Deaths    CategoryCount `json:"deaths"`
	FatalFlag string        `json:"fatal_flag"`
}
