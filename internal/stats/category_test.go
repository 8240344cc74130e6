package stats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jengzang/accident-dashboard/internal/dataset"
	"github.com/jengzang/accident-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(genders, flags []string) *dataset.Table {
	records := make([]models.Record, len(genders))
	for i := range genders {
		records[i] = models.Record{
			Longitude:   -74 + float64(i)/100,
			Latitude:    4.6,
			Gender:      genders[i],
			Fatality:    flags[i],
			SubjectCode: fmt.Sprintf("C%d", i),
		}
	}
	return dataset.NewTable(records)
}

func entries(pairs ...any) []models.CategoryEntry {
	out := []models.CategoryEntry{}
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.CategoryEntry{Category: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return out
}

func TestCountBy_TwoFeatureExample(t *testing.T) {
	tb := table([]string{"F", "M"}, []string{"S", "N"})

	all, err := CountBy(tb, models.ColumnGender)
	require.NoError(t, err)
	if diff := cmp.Diff(entries("F", 1, "M", 1), all.Entries); diff != "" {
		t.Errorf("unrestricted counts mismatch (-want +got):\n%s", diff)
	}

	fatal, err := CountFatal(tb, models.ColumnGender, "S")
	require.NoError(t, err)
	if diff := cmp.Diff(entries("F", 1), fatal.Entries); diff != "" {
		t.Errorf("fatal counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCountBy_FirstSeenOrder(t *testing.T) {
	tb := table(
		[]string{"M", "F", "M", "", "F", "M", "NO INFORMA"},
		[]string{"N", "S", "S", "S", "N", "", "S"},
	)

	all, err := CountBy(tb, models.ColumnGender)
	require.NoError(t, err)
	want := entries("M", 3, "F", 2, "", 1, "NO INFORMA", 1)
	if diff := cmp.Diff(want, all.Entries); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, models.ColumnGender, all.Field)
	assert.Equal(t, tb.Len(), all.Total())

	fatal, err := CountFatal(tb, models.ColumnGender, "S")
	require.NoError(t, err)
	want = entries("F", 1, "M", 1, "", 1, "NO INFORMA", 1)
	if diff := cmp.Diff(want, fatal.Entries); diff != "" {
		t.Errorf("fatal counts mismatch (-want +got):\n%s", diff)
	}
	assert.Less(t, fatal.Total(), all.Total())
}

func TestCountFatal_AllFatal(t *testing.T) {
	tb := table([]string{"F", "M", "M"}, []string{"S", "S", "S"})

	all, err := CountBy(tb, models.ColumnGender)
	require.NoError(t, err)
	fatal, err := CountFatal(tb, models.ColumnGender, "S")
	require.NoError(t, err)

	assert.Equal(t, all.Total(), fatal.Total())
	assert.Equal(t, all.Entries, fatal.Entries)
}

func TestCountFatal_NoneFatal(t *testing.T) {
	tb := table([]string{"F", "M"}, []string{"N", ""})

	fatal, err := CountFatal(tb, models.ColumnGender, "S")
	require.NoError(t, err)
	assert.Equal(t, 0, fatal.Total())
	assert.Empty(t, fatal.Entries)
}

func TestCountWhere_OtherFields(t *testing.T) {
	tb := table([]string{"F", "M", "F"}, []string{"S", "N", "S"})

	byFlag, err := CountBy(tb, models.ColumnFatality)
	require.NoError(t, err)
	assert.Equal(t, 2, byFlag.Get("S"))
	assert.Equal(t, 1, byFlag.Get("N"))
	assert.Equal(t, 0, byFlag.Get("X"))

	codes, err := CountWhere(tb, models.ColumnSubjectCode, models.ColumnGender, "F")
	require.NoError(t, err)
	assert.Equal(t, []string{"C0", "C2"}, codes.Categories())
}

func TestCountBy_EmptyTable(t *testing.T) {
	tb := dataset.NewTable(nil)

	all, err := CountBy(tb, models.ColumnGender)
	require.NoError(t, err)
	assert.Equal(t, 0, all.Total())

	fatal, err := CountFatal(tb, models.ColumnGender, "S")
	require.NoError(t, err)
	assert.Equal(t, 0, fatal.Total())
}

func TestCountBy_UnknownField(t *testing.T) {
	tb := table([]string{"F"}, []string{"S"})

	_, err := CountBy(tb, "GENERO")
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = CountWhere(tb, models.ColumnGender, "muerte", "S")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestTally(t *testing.T) {
	cc := Tally("x", []string{"b", "a", "b", "b"})
	assert.Equal(t, entries("b", 3, "a", 1), cc.Entries)
	assert.Equal(t, 4, cc.Total())

	empty := Tally("x", nil)
	assert.NotNil(t, empty.Entries)
	assert.Empty(t, empty.Entries)
}

func TestCountBy_CoordinatesKeepFullPrecision(t *testing.T) {
	tb := dataset.NewTable([]models.Record{
		{Longitude: -74.1234567, Latitude: 4.6},
		{Longitude: -74.1234568, Latitude: 4.6},
		{Longitude: -74, Latitude: 4.6},
	})

	lons, err := CountBy(tb, models.ColumnLongitude)
	require.NoError(t, err)
	if diff := cmp.Diff(entries("-74.1234567", 1, "-74.1234568", 1, "-74", 1), lons.Entries); diff != "" {
		t.Errorf("longitude counts mismatch (-want +got):\n%s", diff)
	}

	lats, err := CountWhere(tb, models.ColumnLatitude, models.ColumnLongitude, "-74.1234568")
	require.NoError(t, err)
	assert.Equal(t, entries("4.6", 1), lats.Entries)
}

func TestCountFatal_NaNSentinel(t *testing.T) {
	tb := table([]string{"F", "M", "M"}, []string{"NaN", "S", "NaN"})

	fatal, err := CountFatal(tb, models.ColumnGender, "NaN")
	require.NoError(t, err)
	if diff := cmp.Diff(entries("F", 1, "M", 1), fatal.Entries); diff != "" {
		t.Errorf("fatal counts mismatch (-want +got):\n%s", diff)
	}

	byFlag, err := CountBy(tb, models.ColumnFatality)
	require.NoError(t, err)
	assert.Equal(t, entries("NaN", 2, "S", 1), byFlag.Entries)
}
