// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"

	"sqlgate/internal/domain"
)

// === SQL Executor Mock ===

// MockSQLExecutor implements domain.SQLExecutor for testing. Call counters
// let tests assert how many remote round trips a code path performed.
type MockSQLExecutor struct {
	ExecuteFn        func(ctx context.Context, databaseID, sqlText string) (*domain.RemoteResult, error)
	ListDatabasesFn  func(ctx context.Context) ([]domain.Database, error)
	DescribeSchemaFn func(ctx context.Context, databaseID string) ([]domain.SchemaObject, error)

	ExecuteCalls        int
	ListDatabasesCalls  int
	DescribeSchemaCalls int
	ExecutedSQL         []string // every sqlText passed to Execute, in order
}

// Execute implements the interface method for testing.
func (m *MockSQLExecutor) Execute(ctx context.Context, databaseID, sqlText string) (*domain.RemoteResult, error) {
	m.ExecuteCalls++
	m.ExecutedSQL = append(m.ExecutedSQL, sqlText)
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, databaseID, sqlText)
	}
	panic("unexpected call to MockSQLExecutor.Execute")
}

// ListDatabases implements the interface method for testing.
func (m *MockSQLExecutor) ListDatabases(ctx context.Context) ([]domain.Database, error) {
	m.ListDatabasesCalls++
	if m.ListDatabasesFn != nil {
		return m.ListDatabasesFn(ctx)
	}
	panic("unexpected call to MockSQLExecutor.ListDatabases")
}

// DescribeSchema implements the interface method for testing.
func (m *MockSQLExecutor) DescribeSchema(ctx context.Context, databaseID string) ([]domain.SchemaObject, error) {
	m.DescribeSchemaCalls++
	if m.DescribeSchemaFn != nil {
		return m.DescribeSchemaFn(ctx, databaseID)
	}
	panic("unexpected call to MockSQLExecutor.DescribeSchema")
}

var _ domain.SQLExecutor = (*MockSQLExecutor)(nil)

// === Query History Mock ===

// MockHistoryRepo implements domain.QueryHistoryRepository for testing.
type MockHistoryRepo struct {
	AppendFn func(ctx context.Context, entry domain.QueryHistoryEntry) error
	ListFn   func(ctx context.Context, page domain.PageRequest) ([]domain.QueryHistoryEntry, int64, error)
	Entries  []domain.QueryHistoryEntry // collected entries for assertions
}

// Append implements the interface method for testing.
func (m *MockHistoryRepo) Append(ctx context.Context, entry domain.QueryHistoryEntry) error {
	if m.AppendFn != nil {
		if err := m.AppendFn(ctx, entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// List implements the interface method for testing.
func (m *MockHistoryRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.QueryHistoryEntry, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	panic("unexpected call to MockHistoryRepo.List")
}

// LastEntry returns the last collected history entry, or nil if none.
func (m *MockHistoryRepo) LastEntry() *domain.QueryHistoryEntry {
	if len(m.Entries) == 0 {
		return nil
	}
	return &m.Entries[len(m.Entries)-1]
}

// HasStatus returns true if any collected entry has the given status.
func (m *MockHistoryRepo) HasStatus(status string) bool {
	for _, e := range m.Entries {
		if e.Status == status {
			return true
		}
	}
	return false
}

var _ domain.QueryHistoryRepository = (*MockHistoryRepo)(nil)

// === Credential Mocks ===

// MockCredentialSource implements domain.CredentialSource for testing.
type MockCredentialSource struct {
	GetActiveFn func(ctx context.Context) (*domain.CredentialSet, error)
}

// GetActive implements the interface method for testing.
func (m *MockCredentialSource) GetActive(ctx context.Context) (*domain.CredentialSet, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx)
	}
	panic("unexpected call to MockCredentialSource.GetActive")
}

var _ domain.CredentialSource = (*MockCredentialSource)(nil)

// MockCredentialRepo implements domain.CredentialRepository for testing.
type MockCredentialRepo struct {
	GetFn   func(ctx context.Context) (*domain.CredentialSet, error)
	SetFn   func(ctx context.Context, cred domain.CredentialSet) error
	ClearFn func(ctx context.Context) error
}

// Get implements the interface method for testing.
func (m *MockCredentialRepo) Get(ctx context.Context) (*domain.CredentialSet, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	panic("unexpected call to MockCredentialRepo.Get")
}

// Set implements the interface method for testing.
func (m *MockCredentialRepo) Set(ctx context.Context, cred domain.CredentialSet) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, cred)
	}
	panic("unexpected call to MockCredentialRepo.Set")
}

// Clear implements the interface method for testing.
func (m *MockCredentialRepo) Clear(ctx context.Context) error {
	if m.ClearFn != nil {
		return m.ClearFn(ctx)
	}
	panic("unexpected call to MockCredentialRepo.Clear")
}

var _ domain.CredentialRepository = (*MockCredentialRepo)(nil)

// === Database Registry Mock ===

// MockDatabaseRepo implements domain.DatabaseRepository for testing.
type MockDatabaseRepo struct {
	UpsertFn func(ctx context.Context, db domain.Database) error
	ListFn   func(ctx context.Context) ([]domain.Database, error)
	GetFn    func(ctx context.Context, id string) (*domain.Database, error)
	Upserted []domain.Database // collected upserts for assertions
}

// Upsert implements the interface method for testing.
func (m *MockDatabaseRepo) Upsert(ctx context.Context, db domain.Database) error {
	if m.UpsertFn != nil {
		if err := m.UpsertFn(ctx, db); err != nil {
			return err
		}
	}
	m.Upserted = append(m.Upserted, db)
	return nil
}

// List implements the interface method for testing.
func (m *MockDatabaseRepo) List(ctx context.Context) ([]domain.Database, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	panic("unexpected call to MockDatabaseRepo.List")
}

// Get implements the interface method for testing.
func (m *MockDatabaseRepo) Get(ctx context.Context, id string) (*domain.Database, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	panic("unexpected call to MockDatabaseRepo.Get")
}

var _ domain.DatabaseRepository = (*MockDatabaseRepo)(nil)

// === Saved Query Mock ===

// MockSavedQueryRepo implements domain.SavedQueryRepository for testing.
type MockSavedQueryRepo struct {
	CreateFn func(ctx context.Context, q *domain.SavedQuery) (*domain.SavedQuery, error)
	GetFn    func(ctx context.Context, id string) (*domain.SavedQuery, error)
	ListFn   func(ctx context.Context, page domain.PageRequest) ([]domain.SavedQuery, int64, error)
	UpdateFn func(ctx context.Context, id string, req domain.UpdateSavedQueryRequest) (*domain.SavedQuery, error)
	DeleteFn func(ctx context.Context, id string) error
}

// Create implements the interface method for testing.
func (m *MockSavedQueryRepo) Create(ctx context.Context, q *domain.SavedQuery) (*domain.SavedQuery, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, q)
	}
	panic("unexpected call to MockSavedQueryRepo.Create")
}

// Get implements the interface method for testing.
func (m *MockSavedQueryRepo) Get(ctx context.Context, id string) (*domain.SavedQuery, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	panic("unexpected call to MockSavedQueryRepo.Get")
}

// List implements the interface method for testing.
func (m *MockSavedQueryRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.SavedQuery, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	panic("unexpected call to MockSavedQueryRepo.List")
}

// Update implements the interface method for testing.
func (m *MockSavedQueryRepo) Update(ctx context.Context, id string, req domain.UpdateSavedQueryRequest) (*domain.SavedQuery, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, req)
	}
	panic("unexpected call to MockSavedQueryRepo.Update")
}

// Delete implements the interface method for testing.
func (m *MockSavedQueryRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockSavedQueryRepo.Delete")
}

var _ domain.SavedQueryRepository = (*MockSavedQueryRepo)(nil)
