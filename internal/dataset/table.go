package dataset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jengzang/accident-dashboard/internal/models"
)

// ErrUnknownColumn is returned for a column name the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Table is the ordered, read-only set of records loaded at startup. The
// dataframe view is built once with the table and shares its lifetime.
type Table struct {
	records []models.Record
	frame   dataframe.DataFrame
}

// NewTable builds a table over records. The slice is copied.
func NewTable(records []models.Record) *Table {
	rs := make([]models.Record, len(records))
	copy(rs, records)

	lons := make([]float64, len(rs))
	lats := make([]float64, len(rs))
	genders := make([]string, len(rs))
	stamps := make([]string, len(rs))
	fatal := make([]string, len(rs))
	codes := make([]string, len(rs))
	for i, r := range rs {
		lons[i] = r.Longitude
		lats[i] = r.Latitude
		genders[i] = r.Gender
		stamps[i] = r.Timestamp
		fatal[i] = r.Fatality
		codes[i] = r.SubjectCode
	}

	frame := dataframe.New(
		series.New(lons, series.Float, models.ColumnLongitude),
		series.New(lats, series.Float, models.ColumnLatitude),
		series.New(genders, series.String, models.ColumnGender),
		series.New(stamps, series.String, models.ColumnTimestamp),
		series.New(fatal, series.String, models.ColumnFatality),
		series.New(codes, series.String, models.ColumnSubjectCode),
	)

	return &Table{records: rs, frame: frame}
}

// Len returns the number of records
func (t *Table) Len() int { return len(t.records) }

// At returns the i-th record
func (t *Table) At(i int) models.Record { return t.records[i] }

// Records returns a copy of all records in input order
func (t *Table) Records() []models.Record {
	out := make([]models.Record, len(t.records))
	copy(out, t.records)
	return out
}

// Frame returns the dataframe view. DataFrame methods return new frames,
// so callers cannot mutate the table through it.
func (t *Table) Frame() dataframe.DataFrame { return t.frame }

// Column returns the values of one column as text, in record order.
// Coordinates use the shortest text that round-trips.
func (t *Table) Column(name string) ([]string, error) {
	if !HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(t.records))
	for i, r := range t.records {
		out[i] = fieldText(r, name)
	}
	return out, nil
}

// Subset returns a table over the records at indexes, in that order.
func (t *Table) Subset(indexes []int) (*Table, error) {
	rs := make([]models.Record, len(indexes))
	for i, idx := range indexes {
		if idx < 0 || idx >= len(t.records) {
			return nil, fmt.Errorf("row %d out of range [0, %d)", idx, len(t.records))
		}
		rs[i] = t.records[idx]
	}
	if len(rs) == 0 {
		return NewTable(nil), nil
	}

	frame := t.frame.Subset(indexes)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to subset rows: %w", frame.Err)
	}
	return &Table{records: rs, frame: frame}, nil
}

func fieldText(r models.Record, name string) string {
	switch name {
	case models.ColumnLongitude:
		return strconv.FormatFloat(r.Longitude, 'f', -1, 64)
	case models.ColumnLatitude:
		return strconv.FormatFloat(r.Latitude, 'f', -1, 64)
	case models.ColumnGender:
		return r.Gender
	case models.ColumnTimestamp:
		return r.Timestamp
	case models.ColumnFatality:
		return r.Fatality
	case models.ColumnSubjectCode:
		return r.SubjectCode
	}
	return ""
}

// HasColumn reports whether name is a record column
func HasColumn(name string) bool {
	switch name {
	case models.ColumnLongitude, models.ColumnLatitude, models.ColumnGender,
		models.ColumnTimestamp, models.ColumnFatality, models.ColumnSubjectCode:
		return true
	}
	return false
}
