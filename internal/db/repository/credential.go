package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sqlgate/internal/domain"
)

var _ domain.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo persists the single active credential set. The table is
// constrained to one row (id = 1); Set replaces it atomically.
type CredentialRepo struct {
	db *sql.DB
}

// NewCredentialRepo creates a CredentialRepo.
func NewCredentialRepo(db *sql.DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

// Get returns the active credential set, or nil when none is configured.
func (r *CredentialRepo) Get(ctx context.Context) (*domain.CredentialSet, error) {
	var accountID, token, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, token, updated_at FROM credentials WHERE id = 1`).
		Scan(&accountID, &token, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &domain.CredentialSet{
		AccountID: accountID,
		Token:     token,
		UpdatedAt: parseTime(updatedAt),
	}, nil
}

// Set replaces the active credential set.
func (r *CredentialRepo) Set(ctx context.Context, cred domain.CredentialSet) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (id, account_id, token, updated_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET account_id = excluded.account_id,
		 token = excluded.token, updated_at = excluded.updated_at`,
		cred.AccountID, cred.Token, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}
	return nil
}

// Clear removes the active credential set.
func (r *CredentialRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
