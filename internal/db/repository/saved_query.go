package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sqlgate/internal/domain"
)

var _ domain.SavedQueryRepository = (*SavedQueryRepo)(nil)

// SavedQueryRepo stores named SQL snippets.
type SavedQueryRepo struct {
	db *sql.DB
}

// NewSavedQueryRepo creates a SavedQueryRepo.
func NewSavedQueryRepo(db *sql.DB) *SavedQueryRepo {
	return &SavedQueryRepo{db: db}
}

// Create inserts a new saved query with a generated id.
func (r *SavedQueryRepo) Create(ctx context.Context, q *domain.SavedQuery) (*domain.SavedQuery, error) {
	id := uuid.NewString()
	now := formatTime(time.Now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_queries (id, name, sql_text, database_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, q.Name, q.SQL, ptrToNullStr(q.DatabaseID), now, now)
	if err != nil {
		return nil, fmt.Errorf("create saved query: %w", err)
	}
	return r.Get(ctx, id)
}

// Get returns a saved query by id.
func (r *SavedQueryRepo) Get(ctx context.Context, id string) (*domain.SavedQuery, error) {
	var q domain.SavedQuery
	var databaseID sql.NullString
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, sql_text, database_id, created_at, updated_at
		 FROM saved_queries WHERE id = ?`, id).
		Scan(&q.ID, &q.Name, &q.SQL, &databaseID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("saved query %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get saved query %s: %w", id, err)
	}
	q.DatabaseID = nullStrToPtr(databaseID)
	q.CreatedAt = parseTime(createdAt)
	q.UpdatedAt = parseTime(updatedAt)
	return &q, nil
}

// List returns a page of saved queries ordered by name, plus the total count.
func (r *SavedQueryRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.SavedQuery, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_queries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count saved queries: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sql_text, database_id, created_at, updated_at
		 FROM saved_queries ORDER BY name LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list saved queries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var queries []domain.SavedQuery
	for rows.Next() {
		var q domain.SavedQuery
		var databaseID sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&q.ID, &q.Name, &q.SQL, &databaseID, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan saved query: %w", err)
		}
		q.DatabaseID = nullStrToPtr(databaseID)
		q.CreatedAt = parseTime(createdAt)
		q.UpdatedAt = parseTime(updatedAt)
		queries = append(queries, q)
	}
	return queries, total, rows.Err()
}

// Update applies partial updates and returns the updated saved query.
func (r *SavedQueryRepo) Update(ctx context.Context, id string, req domain.UpdateSavedQueryRequest) (*domain.SavedQuery, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}
	sqlText := existing.SQL
	if req.SQL != nil {
		sqlText = *req.SQL
	}
	databaseID := existing.DatabaseID
	if req.DatabaseID != nil {
		databaseID = req.DatabaseID
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE saved_queries SET name = ?, sql_text = ?, database_id = ?, updated_at = ? WHERE id = ?`,
		name, sqlText, ptrToNullStr(databaseID), formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("update saved query %s: %w", id, err)
	}
	return r.Get(ctx, id)
}

// Delete removes a saved query.
func (r *SavedQueryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_queries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete saved query %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved query %s: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound("saved query %q not found", id)
	}
	return nil
}
