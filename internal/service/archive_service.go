package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jengzang/accident-dashboard/internal/models"
	"go.uber.org/zap"
)

// ErrArchiveMismatch is returned when the archived counts differ from the
// in-memory ones.
var ErrArchiveMismatch = errors.New("archive counts differ from loaded data")

// RecordStore is the archive the service writes the table into
type RecordStore interface {
	ReplaceAll(ctx context.Context, records []models.Record) error
	Count(ctx context.Context) (int, error)
	CountBy(ctx context.Context, field string) (models.CategoryCount, error)
	CountWhere(ctx context.Context, field, filterField, value string) (models.CategoryCount, error)
}

// ArchiveService snapshots the dashboard table into a RecordStore
type ArchiveService struct {
	store  RecordStore
	logger *zap.Logger
}

// NewArchiveService creates a new archive service
func NewArchiveService(store RecordStore, logger *zap.Logger) *ArchiveService {
	return &ArchiveService{store: store, logger: logger}
}

// Archive writes the table and checks that the store counts the same
// categories, in the same order, as the dashboard.
func (s *ArchiveService) Archive(ctx context.Context, dash *Dashboard) error {
	start := time.Now()

	if err := s.store.ReplaceAll(ctx, dash.Table.Records()); err != nil {
		return fmt.Errorf("failed to archive records: %w", err)
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n != dash.Table.Len() {
		return fmt.Errorf("%w: %d archived, %d loaded", ErrArchiveMismatch, n, dash.Table.Len())
	}

	accidents, err := s.store.CountBy(ctx, models.ColumnGender)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(dash.Accidents.Entries, accidents.Entries); diff != "" {
		return fmt.Errorf("%w: accidents (-loaded +archived):\n%s", ErrArchiveMismatch, diff)
	}

	deaths, err := s.store.CountWhere(ctx, models.ColumnGender, models.ColumnFatality, dash.FatalFlag)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(dash.Deaths.Entries, deaths.Entries); diff != "" {
		return fmt.Errorf("%w: deaths (-loaded +archived):\n%s", ErrArchiveMismatch, diff)
	}

	s.logger.Info("records archived", zap.Int("records", n), zap.Duration("took", time.Since(start)))
	return nil
}
