package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sqlgate/internal/domain"
)

var _ domain.QueryHistoryRepository = (*QueryHistoryRepo)(nil)

// QueryHistoryRepo is the append-only record of gateway executions.
type QueryHistoryRepo struct {
	db *sql.DB
}

// NewQueryHistoryRepo creates a QueryHistoryRepo.
func NewQueryHistoryRepo(db *sql.DB) *QueryHistoryRepo {
	return &QueryHistoryRepo{db: db}
}

// Append records one execution.
func (r *QueryHistoryRepo) Append(ctx context.Context, entry domain.QueryHistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO query_history (database_id, fingerprint, status, row_count, duration_ms, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.DatabaseID, entry.Fingerprint, entry.Status, entry.RowCount,
		entry.DurationMs, ptrToNullStr(entry.ErrorMessage), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("append query history: %w", err)
	}
	return nil
}

// List returns a page of history entries, newest first, plus the total count.
func (r *QueryHistoryRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.QueryHistoryEntry, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM query_history`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query history: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, database_id, fingerprint, status, row_count, duration_ms, error_message, created_at
		 FROM query_history ORDER BY id DESC LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list query history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []domain.QueryHistoryEntry
	for rows.Next() {
		var e domain.QueryHistoryEntry
		var errMsg sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &e.DatabaseID, &e.Fingerprint, &e.Status,
			&e.RowCount, &e.DurationMs, &errMsg, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scan query history: %w", err)
		}
		e.ErrorMessage = nullStrToPtr(errMsg)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
