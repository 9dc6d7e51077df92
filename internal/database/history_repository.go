package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tubewarden/tubewarden/internal/ingest"
	"github.com/tubewarden/tubewarden/internal/moderation"
)

// HistoryRepository persists moderation activity for later review. It
// implements moderation.Recorder and ingest.Recorder.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a history repository and ensures its schema
// exists.
func NewHistoryRepository(db *sqlx.DB) (*HistoryRepository, error) {
	r := &HistoryRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *HistoryRepository) ensureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS moderation_batches (
			id          BIGSERIAL PRIMARY KEY,
			action      TEXT        NOT NULL,
			requested   INTEGER     NOT NULL,
			verified    INTEGER     NOT NULL,
			succeeded   INTEGER     NOT NULL,
			failed      INTEGER     NOT NULL,
			executed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS ingestion_runs (
			id           BIGSERIAL PRIMARY KEY,
			channel_id   TEXT        NOT NULL,
			fetched      INTEGER     NOT NULL,
			spam         INTEGER     NOT NULL,
			skipped      INTEGER     NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// RecordBatch inserts one batch outcome.
func (r *HistoryRepository) RecordBatch(ctx context.Context, rec moderation.BatchRecord) error {
	query := `
		INSERT INTO moderation_batches (action, requested, verified, succeeded, failed)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.Action, rec.Requested, rec.Verified, rec.Succeeded, rec.Failed)
	if err != nil {
		return fmt.Errorf("failed to record moderation batch: %w", err)
	}
	return nil
}

// RecordIngestion inserts one ingestion pass summary.
func (r *HistoryRepository) RecordIngestion(ctx context.Context, rec ingest.RunRecord) error {
	query := `
		INSERT INTO ingestion_runs (channel_id, fetched, spam, skipped)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ChannelID, rec.Fetched, rec.Spam, rec.Skipped)
	if err != nil {
		return fmt.Errorf("failed to record ingestion run: %w", err)
	}
	return nil
}

// BatchStats aggregates recorded batch outcomes.
type BatchStats struct {
	TotalBatches   int       `db:"total_batches"`
	TotalSucceeded int       `db:"total_succeeded"`
	TotalFailed    int       `db:"total_failed"`
	LastExecutedAt time.Time `db:"last_executed_at"`
}

// GetBatchStats returns aggregate counts across all recorded batches.
func (r *HistoryRepository) GetBatchStats(ctx context.Context) (*BatchStats, error) {
	var stats BatchStats
	query := `
		SELECT
			COUNT(*)                          AS total_batches,
			COALESCE(SUM(succeeded), 0)       AS total_succeeded,
			COALESCE(SUM(failed), 0)          AS total_failed,
			COALESCE(MAX(executed_at), now()) AS last_executed_at
		FROM moderation_batches
	`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get batch stats: %w", err)
	}
	return &stats, nil
}
