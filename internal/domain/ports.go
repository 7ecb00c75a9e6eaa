package domain

import "context"

// SQLExecutor issues SQL against the remote service. Implemented by
// remote.Client; mocked in tests. Failures carry a typed failure detail
// that the classifier turns into UserError or SystemError.
type SQLExecutor interface {
	Execute(ctx context.Context, databaseID, sqlText string) (*RemoteResult, error)
	ListDatabases(ctx context.Context) ([]Database, error)
	DescribeSchema(ctx context.Context, databaseID string) ([]SchemaObject, error)
}

// RemoteResult is the narrowed successful response of a remote execution.
type RemoteResult struct {
	Rows       []Row
	DurationMs *float64
	Changes    *int64
	TotalCount *int64
}

// CredentialSource yields the active credential set, or absent.
// Implemented by the credential service.
type CredentialSource interface {
	GetActive(ctx context.Context) (*CredentialSet, error)
}

// CredentialRepository persists the single-slot active credential.
type CredentialRepository interface {
	Get(ctx context.Context) (*CredentialSet, error)
	Set(ctx context.Context, cred CredentialSet) error
	Clear(ctx context.Context) error
}

// DatabaseRepository mirrors remote databases discovered via ListDatabases.
type DatabaseRepository interface {
	Upsert(ctx context.Context, db Database) error
	List(ctx context.Context) ([]Database, error)
	Get(ctx context.Context, id string) (*Database, error)
}

// SavedQueryRepository stores named SQL snippets.
type SavedQueryRepository interface {
	Create(ctx context.Context, q *SavedQuery) (*SavedQuery, error)
	Get(ctx context.Context, id string) (*SavedQuery, error)
	List(ctx context.Context, page PageRequest) ([]SavedQuery, int64, error)
	Update(ctx context.Context, id string, req UpdateSavedQueryRequest) (*SavedQuery, error)
	Delete(ctx context.Context, id string) error
}

// QueryHistoryRepository appends and lists gateway execution records.
type QueryHistoryRepository interface {
	Append(ctx context.Context, entry QueryHistoryEntry) error
	List(ctx context.Context, page PageRequest) ([]QueryHistoryEntry, int64, error)
}
