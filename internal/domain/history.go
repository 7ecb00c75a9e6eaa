package domain

import "time"

// Query history statuses.
const (
	HistoryStatusOK          = "ok"
	HistoryStatusCached      = "cached"
	HistoryStatusUserError   = "user_error"
	HistoryStatusSystemError = "system_error"
)

// QueryHistoryEntry records a single gateway execution.
type QueryHistoryEntry struct {
	ID           int64
	DatabaseID   string
	Fingerprint  string
	Status       string
	RowCount     int64
	DurationMs   int64
	ErrorMessage *string
	CreatedAt    time.Time
}
