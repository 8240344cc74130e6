package stats

import (
	"errors"
	"fmt"

	"github.com/jengzang/accident-dashboard/internal/dataset"
	"github.com/jengzang/accident-dashboard/internal/models"
)

// ErrUnknownField is returned when grouping or filtering on a column the
// record table does not have.
var ErrUnknownField = errors.New("unknown field")

// CountBy groups the table on the distinct values of field and counts
// them. Categories come out in the order they are first seen; the empty
// value is a category too, so the counts always sum to t.Len().
func CountBy(t *dataset.Table, field string) (models.CategoryCount, error) {
	if !dataset.HasColumn(field) {
		return models.CategoryCount{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	values, err := t.Column(field)
	if err != nil {
		return models.CategoryCount{}, err
	}
	return Tally(field, values), nil
}

// CountWhere is CountBy restricted to the records whose filterField equals
// value.
func CountWhere(t *dataset.Table, field, filterField, value string) (models.CategoryCount, error) {
	for _, name := range []string{field, filterField} {
		if !dataset.HasColumn(name) {
			return models.CategoryCount{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	flags, err := t.Column(filterField)
	if err != nil {
		return models.CategoryCount{}, err
	}
	var rows []int
	for i, v := range flags {
		if v == value {
			rows = append(rows, i)
		}
	}

	sub, err := t.Subset(rows)
	if err != nil {
		return models.CategoryCount{}, fmt.Errorf("failed to filter %s == %q: %w", filterField, value, err)
	}
	return CountBy(sub, field)
}

// CountFatal counts field over the records whose fatality flag equals
// sentinel.
func CountFatal(t *dataset.Table, field, sentinel string) (models.CategoryCount, error) {
	return CountWhere(t, field, models.ColumnFatality, sentinel)
}

// Tally counts values in first-seen order.
func Tally(field string, values []string) models.CategoryCount {
	cc := models.CategoryCount{Field: field, Entries: []models.CategoryEntry{}}
	index := make(map[string]int)

	for _, v := range values {
		if i, ok := index[v]; ok {
			cc.Entries[i].Count++
			continue
		}
		index[v] = len(cc.Entries)
		cc.Entries = append(cc.Entries, models.CategoryEntry{Category: v, Count: 1})
	}
	return cc
}
