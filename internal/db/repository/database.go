package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sqlgate/internal/domain"
)

var _ domain.DatabaseRepository = (*DatabaseRepo)(nil)

// DatabaseRepo mirrors remote databases discovered via ListDatabases.
type DatabaseRepo struct {
	db *sql.DB
}

// NewDatabaseRepo creates a DatabaseRepo.
func NewDatabaseRepo(db *sql.DB) *DatabaseRepo {
	return &DatabaseRepo{db: db}
}

// Upsert inserts or refreshes one discovered database.
func (r *DatabaseRepo) Upsert(ctx context.Context, d domain.Database) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO databases (id, name, version, num_tables, size_bytes, synced_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name,
		 version = excluded.version, num_tables = excluded.num_tables,
		 size_bytes = excluded.size_bytes, synced_at = excluded.synced_at`,
		d.ID, d.Name, d.Version, ptrToNullInt(d.NumTables), ptrToNullInt(d.SizeBytes),
		formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("upsert database %s: %w", d.ID, err)
	}
	return nil
}

// List returns all registered databases ordered by name.
func (r *DatabaseRepo) List(ctx context.Context) ([]domain.Database, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, version, num_tables, size_bytes FROM databases ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var dbs []domain.Database
	for rows.Next() {
		var d domain.Database
		var numTables, sizeBytes sql.NullInt64
		if err := rows.Scan(&d.ID, &d.Name, &d.Version, &numTables, &sizeBytes); err != nil {
			return nil, fmt.Errorf("scan database: %w", err)
		}
		d.NumTables = nullIntToPtr(numTables)
		d.SizeBytes = nullIntToPtr(sizeBytes)
		dbs = append(dbs, d)
	}
	return dbs, rows.Err()
}

// Get returns one registered database, or nil when unknown.
func (r *DatabaseRepo) Get(ctx context.Context, id string) (*domain.Database, error) {
	var d domain.Database
	var numTables, sizeBytes sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, version, num_tables, size_bytes FROM databases WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Version, &numTables, &sizeBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get database %s: %w", id, err)
	}
	d.NumTables = nullIntToPtr(numTables)
	d.SizeBytes = nullIntToPtr(sizeBytes)
	return &d, nil
}
