package database_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/tubewarden/tubewarden/internal/database"
	"github.com/tubewarden/tubewarden/internal/ingest"
	"github.com/tubewarden/tubewarden/internal/moderation"
)

func newTestRepository(t *testing.T) (*database.HistoryRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))

	repo, err := database.NewHistoryRepository(sqlx.NewDb(mockDB, "postgres"))
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	return repo, mock
}

func TestHistoryRepository_RecordBatch(t *testing.T) {
	repo, mock := newTestRepository(t)
	ctx := context.Background()
	rec := moderation.BatchRecord{
		Action:    "delete",
		Requested: 5,
		Verified:  4,
		Succeeded: 3,
		Failed:    1,
	}

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successfully records batch",
			setupMock: func() {
				mock.ExpectExec("INSERT INTO moderation_batches").
					WithArgs(rec.Action, rec.Requested, rec.Verified, rec.Succeeded, rec.Failed).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			wantErr: false,
		},
		{
			name: "database error returns error",
			setupMock: func() {
				mock.ExpectExec("INSERT INTO moderation_batches").
					WithArgs(rec.Action, rec.Requested, rec.Verified, rec.Succeeded, rec.Failed).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			callErr := repo.RecordBatch(ctx, rec)
			if (callErr != nil) != tc.wantErr {
				t.Errorf("RecordBatch() error = %v, wantErr %v", callErr, tc.wantErr)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestHistoryRepository_RecordIngestion(t *testing.T) {
	repo, mock := newTestRepository(t)
	ctx := context.Background()
	rec := ingest.RunRecord{
		ChannelID: "channel-1",
		Fetched:   20,
		Spam:      4,
		Skipped:   1,
	}

	mock.ExpectExec("INSERT INTO ingestion_runs").
		WithArgs(rec.ChannelID, rec.Fetched, rec.Spam, rec.Skipped).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.RecordIngestion(ctx, rec); err != nil {
		t.Errorf("RecordIngestion() unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestHistoryRepository_GetBatchStats(t *testing.T) {
	repo, mock := newTestRepository(t)
	ctx := context.Background()
	executedAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"total_batches", "total_succeeded", "total_failed", "last_executed_at",
	}).AddRow(3, 12, 2, executedAt)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.GetBatchStats(ctx)
	if err != nil {
		t.Fatalf("GetBatchStats() unexpected error: %v", err)
	}

	if stats.TotalBatches != 3 {
		t.Errorf("total batches: got %d, want 3", stats.TotalBatches)
	}
	if stats.TotalSucceeded != 12 {
		t.Errorf("total succeeded: got %d, want 12", stats.TotalSucceeded)
	}
	if stats.TotalFailed != 2 {
		t.Errorf("total failed: got %d, want 2", stats.TotalFailed)
	}
	if !stats.LastExecutedAt.Equal(executedAt) {
		t.Errorf("last executed at: got %v, want %v", stats.LastExecutedAt, executedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
