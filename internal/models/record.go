package models

// Record is one accident victim, flattened from a GeoJSON feature
type Record struct {
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Gender      string  `json:"gender"`       // GENERO
	Timestamp   string  `json:"timestamp"`    // FECHA_HORA_ACC, kept verbatim
	Fatality    string  `json:"fatality"`     // MUERTE_POSTERIOR, "S" when the victim died
	SubjectCode string  `json:"subject_code"` // CODIGO_ACCIDENTADO
}

// Column names of the record table
const (
	ColumnLongitude   = "longitude"
	ColumnLatitude    = "latitude"
	ColumnGender      = "gender"
	ColumnTimestamp   = "timestamp"
	ColumnFatality    = "fatality"
	ColumnSubjectCode = "subject_code"
)

// CategoryEntry is one distinct value and how often it occurs
type CategoryEntry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCount holds grouped occurrence counts over one field, in the
// order each category was first seen.
type CategoryCount struct {
	Field   string          `json:"field"`
	Entries []CategoryEntry `json:"entries"`
}

// Total returns the sum of all counts
func (c CategoryCount) Total() int {
	total := 0
	for _, e := range c.Entries {
		total += e.Count
	}
	return total
}

// Get returns the count for a category, 0 when absent
func (c CategoryCount) Get(category string) int {
	for _, e := range c.Entries {
		if e.Category == category {
			return e.Count
		}
	}
	return 0
}

// Categories returns the categories in order
func (c CategoryCount) Categories() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Category
	}
	return out
}
