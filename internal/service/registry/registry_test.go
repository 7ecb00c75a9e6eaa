package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain"
	"sqlgate/internal/remote"
	"sqlgate/internal/testutil"
)

// === Sync ===

func TestService_Sync(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ListDatabasesFn: func(context.Context) ([]domain.Database, error) {
				return []domain.Database{{ID: "db-1", Name: "northwind"}, {ID: "db-2", Name: "sandbox"}}, nil
			},
		}
		repo := &testutil.MockDatabaseRepo{}
		svc := NewService(executor, repo, remote.NewClassifier(nil), nil)

		dbs, err := svc.Sync(context.Background())

		require.NoError(t, err)
		assert.Len(t, dbs, 2)
		assert.Len(t, repo.Upserted, 2)
		assert.Equal(t, "db-1", repo.Upserted[0].ID)
	})

	t.Run("remote_failure_is_classified", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ListDatabasesFn: func(context.Context) ([]domain.Database, error) {
				return nil, &remote.Failure{Kind: remote.KindAuth, StatusCode: 401, StatusText: "401 Unauthorized"}
			},
		}
		svc := NewService(executor, &testutil.MockDatabaseRepo{}, remote.NewClassifier(nil), nil)

		_, err := svc.Sync(context.Background())

		var sysErr *domain.SystemError
		require.True(t, errors.As(err, &sysErr))
	})

	t.Run("credential_precondition_passes_through", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			ListDatabasesFn: func(context.Context) ([]domain.Database, error) {
				return nil, domain.ErrValidation("no active credential configured")
			},
		}
		svc := NewService(executor, &testutil.MockDatabaseRepo{}, remote.NewClassifier(nil), nil)

		_, err := svc.Sync(context.Background())

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
	})
}

// === Get ===

func TestService_Get(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		repo := &testutil.MockDatabaseRepo{
			GetFn: func(_ context.Context, id string) (*domain.Database, error) {
				return &domain.Database{ID: id, Name: "northwind"}, nil
			},
		}
		svc := NewService(&testutil.MockSQLExecutor{}, repo, remote.NewClassifier(nil), nil)

		db, err := svc.Get(context.Background(), "db-1")

		require.NoError(t, err)
		assert.Equal(t, "northwind", db.Name)
	})

	t.Run("unregistered_database", func(t *testing.T) {
		t.Parallel()

		repo := &testutil.MockDatabaseRepo{
			GetFn: func(context.Context, string) (*domain.Database, error) { return nil, nil },
		}
		svc := NewService(&testutil.MockSQLExecutor{}, repo, remote.NewClassifier(nil), nil)

		_, err := svc.Get(context.Background(), "ghost")

		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

// === Schema ===

func TestService_Schema(t *testing.T) {
	t.Parallel()

	executor := &testutil.MockSQLExecutor{
		DescribeSchemaFn: func(context.Context, string) ([]domain.SchemaObject, error) {
			return []domain.SchemaObject{{Name: "orders", Kind: domain.ObjectKindTable}}, nil
		},
	}
	svc := NewService(executor, &testutil.MockDatabaseRepo{}, remote.NewClassifier(nil), nil)

	objects, err := svc.Schema(context.Background(), "db-1")

	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "orders", objects[0].Name)
}
