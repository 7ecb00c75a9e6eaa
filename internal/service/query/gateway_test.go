package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/cache"
	"sqlgate/internal/domain"
	"sqlgate/internal/remote"
	"sqlgate/internal/testutil"
)

func newGateway(executor *testutil.MockSQLExecutor, history *testutil.MockHistoryRepo) *GatewayService {
	// A nil *MockHistoryRepo must become a nil interface, not a typed nil,
	// so the service's history == nil check sees it.
	var repo domain.QueryHistoryRepository
	if history != nil {
		repo = history
	}
	return NewGatewayService(executor, remote.NewClassifier(nil), cache.New(5*time.Minute), repo, nil)
}

// === RunQuery ===

func TestGatewayService_RunQuery(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		changes := int64(0)
		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(_ context.Context, databaseID, sqlText string) (*domain.RemoteResult, error) {
				assert.Equal(t, "db-1", databaseID)
				assert.Equal(t, "SELECT * FROM orders", sqlText)
				return &domain.RemoteResult{Rows: []domain.Row{{"id": 1}}, Changes: &changes}, nil
			},
		}
		history := &testutil.MockHistoryRepo{}
		svc := newGateway(executor, history)

		outcome, err := svc.RunQuery(context.Background(), "db-1", "SELECT * FROM orders")

		require.NoError(t, err)
		assert.Equal(t, 1, outcome.RowCount)
		assert.False(t, outcome.FromCache)
		assert.Equal(t, 1, executor.ExecuteCalls)

		entry := history.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, domain.HistoryStatusOK, entry.Status)
		assert.Equal(t, int64(1), entry.RowCount)
	})

	t.Run("second_identical_query_served_from_cache", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return &domain.RemoteResult{Rows: []domain.Row{{"id": 1}, {"id": 2}}}, nil
			},
		}
		history := &testutil.MockHistoryRepo{}
		svc := newGateway(executor, history)

		first, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")
		require.NoError(t, err)
		assert.False(t, first.FromCache)

		second, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")
		require.NoError(t, err)
		assert.True(t, second.FromCache)
		assert.Equal(t, first.Rows, second.Rows)
		assert.Equal(t, 1, executor.ExecuteCalls, "cache hit must not reach the network")
		assert.True(t, history.HasStatus(domain.HistoryStatusCached))
	})

	t.Run("whitespace_variant_misses_cache", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return &domain.RemoteResult{Rows: []domain.Row{}}, nil
			},
		}
		svc := newGateway(executor, &testutil.MockHistoryRepo{})

		_, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")
		require.NoError(t, err)
		_, err = svc.RunQuery(context.Background(), "db-1", "SELECT  1")
		require.NoError(t, err)

		assert.Equal(t, 2, executor.ExecuteCalls, "raw text keys the cache; no normalization")
	})

	t.Run("same_sql_different_database_misses_cache", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return &domain.RemoteResult{Rows: []domain.Row{}}, nil
			},
		}
		svc := newGateway(executor, &testutil.MockHistoryRepo{})

		_, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")
		require.NoError(t, err)
		_, err = svc.RunQuery(context.Background(), "db-2", "SELECT 1")
		require.NoError(t, err)

		assert.Equal(t, 2, executor.ExecuteCalls)
	})

	t.Run("validation_empty_sql", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{}
		svc := newGateway(executor, &testutil.MockHistoryRepo{})

		_, err := svc.RunQuery(context.Background(), "db-1", "   ")

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Zero(t, executor.ExecuteCalls)
	})

	t.Run("validation_missing_database", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{}
		svc := newGateway(executor, &testutil.MockHistoryRepo{})

		_, err := svc.RunQuery(context.Background(), "", "SELECT 1")

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Zero(t, executor.ExecuteCalls)
	})
}

// === RunQuery: failures ===

func TestGatewayService_RunQuery_Failures(t *testing.T) {
	t.Parallel()

	t.Run("user_error_surfaces_verbatim_and_is_not_cached", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return nil, &remote.Failure{Kind: remote.KindApplication, Messages: []string{"no such table: orders"}}
			},
		}
		history := &testutil.MockHistoryRepo{}
		svc := newGateway(executor, history)

		_, err := svc.RunQuery(context.Background(), "db-1", "SELECT * FROM orders")

		var userErr *domain.UserError
		require.True(t, errors.As(err, &userErr))
		assert.Equal(t, "no such table: orders", userErr.Message)
		assert.True(t, history.HasStatus(domain.HistoryStatusUserError))

		// Retrying the identical query must hit the remote again.
		_, err = svc.RunQuery(context.Background(), "db-1", "SELECT * FROM orders")
		require.Error(t, err)
		assert.Equal(t, 2, executor.ExecuteCalls, "failures never enter the cache")
	})

	t.Run("transport_failure_becomes_system_error", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return nil, &remote.Failure{Kind: remote.KindTransport, StatusText: "connection refused"}
			},
		}
		history := &testutil.MockHistoryRepo{}
		svc := newGateway(executor, history)

		_, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")

		var sysErr *domain.SystemError
		require.True(t, errors.As(err, &sysErr))
		assert.True(t, history.HasStatus(domain.HistoryStatusSystemError))
	})

	t.Run("credential_precondition_passes_through", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return nil, domain.ErrValidation("no active credential configured")
			},
		}
		svc := newGateway(executor, &testutil.MockHistoryRepo{})

		_, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation), "validation must not be reclassified as system")
	})

	t.Run("history_failure_does_not_fail_the_query", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return &domain.RemoteResult{Rows: []domain.Row{{"id": 1}}}, nil
			},
		}
		history := &testutil.MockHistoryRepo{
			AppendFn: func(context.Context, domain.QueryHistoryEntry) error {
				return errors.New("disk full")
			},
		}
		svc := newGateway(executor, history)

		outcome, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")

		require.NoError(t, err)
		assert.Equal(t, 1, outcome.RowCount)
	})

	t.Run("nil_history_is_allowed", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return &domain.RemoteResult{Rows: []domain.Row{}}, nil
			},
		}
		svc := newGateway(executor, nil)

		_, err := svc.RunQuery(context.Background(), "db-1", "SELECT 1")
		require.NoError(t, err)
	})
}

// === Fingerprint ===

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := domain.Fingerprint("SELECT 1")
	b := domain.Fingerprint("SELECT 1")
	c := domain.Fingerprint("select 1")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "case differences produce distinct fingerprints")
	assert.Len(t, a, 64)
}
