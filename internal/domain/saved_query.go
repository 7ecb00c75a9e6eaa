package domain

import "time"

// SavedQuery is a named SQL snippet stored for reuse by the browser tool.
type SavedQuery struct {
	ID         string
	Name       string
	SQL        string
	DatabaseID *string // optional: the database the snippet was written for
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpdateSavedQueryRequest holds partial updates for a saved query.
// Nil fields are left unchanged.
type UpdateSavedQueryRequest struct {
	Name       *string
	SQL        *string
	DatabaseID *string
}
