package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/accident-dashboard/internal/database"
	"github.com/jengzang/accident-dashboard/internal/models"
	"github.com/jengzang/accident-dashboard/internal/stats"
)

// RecordRepository handles database operations for archived records
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// columns the repository may group or filter on; keys are the record
// column names, values the SQL column names
var groupable = map[string]string{
	models.ColumnGender:      "gender",
	models.ColumnTimestamp:   "timestamp",
	models.ColumnFatality:    "fatality",
	models.ColumnSubjectCode: "subject_code",
}

// ReplaceAll swaps the archived snapshot for records in one transaction.
// Row ids follow input order.
func (r *RecordRepository) ReplaceAll(ctx context.Context, records []models.Record) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
			(id, longitude, latitude, gender, timestamp, fatality, subject_code)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range records {
			_, err := stmt.ExecContext(ctx, i+1, rec.Longitude, rec.Latitude,
				rec.Gender, rec.Timestamp, rec.Fatality, rec.SubjectCode)
			if err != nil {
				return fmt.Errorf("failed to insert record %d: %w", i, err)
			}
		}
		return nil
	})
}

// Count returns the number of archived records
func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// CountBy groups archived records on field, in first-seen order
func (r *RecordRepository) CountBy(ctx context.Context, field string) (models.CategoryCount, error) {
	col, ok := groupable[field]
	if !ok {
		return models.CategoryCount{}, fmt.Errorf("%w: %q", stats.ErrUnknownField, field)
	}

	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM records
		GROUP BY %[1]s ORDER BY MIN(id)`, col)
	return r.queryCounts(ctx, field, query)
}

// CountWhere groups the archived records whose filterField equals value
func (r *RecordRepository) CountWhere(ctx context.Context, field, filterField, value string) (models.CategoryCount, error) {
	col, ok := groupable[field]
	if !ok {
		return models.CategoryCount{}, fmt.Errorf("%w: %q", stats.ErrUnknownField, field)
	}
	filterCol, ok := groupable[filterField]
	if !ok {
		return models.CategoryCount{}, fmt.Errorf("%w: %q", stats.ErrUnknownField, filterField)
	}

	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM records
		WHERE %[2]s = ?
		GROUP BY %[1]s ORDER BY MIN(id)`, col, filterCol)
	return r.queryCounts(ctx, field, query, value)
}

func (r *RecordRepository) queryCounts(ctx context.Context, field, query string, args ...interface{}) (models.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.CategoryCount{}, fmt.Errorf("failed to query counts by %s: %w", field, err)
	}
	defer rows.Close()

	cc := models.CategoryCount{Field: field, Entries: []models.CategoryEntry{}}
	for rows.Next() {
		var e models.CategoryEntry
		if err := rows.Scan(&e.Category, &e.Count); err != nil {
			return models.CategoryCount{}, fmt.Errorf("failed to scan count: %w", err)
		}
		cc.Entries = append(cc.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return models.CategoryCount{}, fmt.Errorf("failed to iterate counts: %w", err)
	}
	return cc, nil
}
