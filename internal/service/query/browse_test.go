package query

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

func newBrowse(executor *testutil.MockSQLExecutor) *BrowseService {
	return NewBrowseService(executor, remote.NewClassifier(nil), nil)
}

func schemaWith(objects ...domain.SchemaObject) func(context.Context, string) ([]domain.SchemaObject, error) {
	return func(context.Context, string) ([]domain.SchemaObject, error) {
		return objects, nil
	}
}

// === Browse ===

func TestBrowseService_Browse(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			DescribeSchemaFn: schemaWith(domain.SchemaObject{Name: "orders", Kind: domain.ObjectKindTable}),
			ExecuteFn: func(_ context.Context, _, sqlText string) (*domain.RemoteResult, error) {
				assert.Equal(t, `SELECT * FROM "orders" LIMIT 25 OFFSET 50`, sqlText)
				return &domain.RemoteResult{Rows: []domain.Row{{"id": 1}}}, nil
			},
		}
		svc := newBrowse(executor)

		result, err := svc.Browse(context.Background(), "db-1", "orders", 25, 50)

		require.NoError(t, err)
		assert.Equal(t, 1, result.RowCount)
		assert.Equal(t, 25, result.PageSize)
		assert.Equal(t, 1, executor.DescribeSchemaCalls)
	})

	t.Run("quote_doubling_in_table_name", func(t *testing.T) {
		t.Parallel()

		weird := `odd"name`
		executor := &testutil.MockSQLExecutor{
			DescribeSchemaFn: schemaWith(domain.SchemaObject{Name: weird, Kind: domain.ObjectKindTable}),
			ExecuteFn: func(_ context.Context, _, sqlText string) (*domain.RemoteResult, error) {
				assert.Equal(t, `SELECT * FROM "odd""name" LIMIT 10 OFFSET 0`, sqlText)
				return &domain.RemoteResult{Rows: []domain.Row{}}, nil
			},
		}
		svc := newBrowse(executor)

		_, err := svc.Browse(context.Background(), "db-1", weird, 10, 0)
		require.NoError(t, err)
	})

	t.Run("unknown_table_short_circuits", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			DescribeSchemaFn: schemaWith(domain.SchemaObject{Name: "orders", Kind: domain.ObjectKindTable}),
		}
		svc := newBrowse(executor)

		_, err := svc.Browse(context.Background(), "db-1", "users; DROP TABLE orders", 10, 0)

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Zero(t, executor.ExecuteCalls, "no SELECT may be issued for an unknown table")
	})

	t.Run("views_are_not_browsable", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			DescribeSchemaFn: schemaWith(domain.SchemaObject{Name: "v_totals", Kind: domain.ObjectKindView}),
		}
		svc := newBrowse(executor)

		_, err := svc.Browse(context.Background(), "db-1", "v_totals", 10, 0)

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Zero(t, executor.ExecuteCalls)
	})

	t.Run("schema_failure_is_classified", func(t *testing.T) {
		t.Parallel()

		executor := &testutil.MockSQLExecutor{
			DescribeSchemaFn: func(context.Context, string) ([]domain.SchemaObject, error) {
				return nil, &remote.Failure{Kind: remote.KindTransport, StatusText: "connection refused"}
			},
		}
		svc := newBrowse(executor)

		_, err := svc.Browse(context.Background(), "db-1", "orders", 10, 0)

		var sysErr *domain.SystemError
		require.True(t, errors.As(err, &sysErr))
	})
}

// === Browse: parameter validation ===

func TestBrowseService_Browse_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		database string
		table    string
		limit    int
		offset   int
	}{
		{"missing_database", "", "orders", 10, 0},
		{"missing_table", "db-1", "", 10, 0},
		{"limit_zero", "db-1", "orders", 0, 0},
		{"limit_too_large", "db-1", "orders", 101, 0},
		{"negative_offset", "db-1", "orders", 10, -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &testutil.MockSQLExecutor{}
			svc := newBrowse(executor)

			_, err := svc.Browse(context.Background(), tt.database, tt.table, tt.limit, tt.offset)

			var validation *domain.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Zero(t, executor.ExecuteCalls)
			assert.Zero(t, executor.DescribeSchemaCalls, "validation precedes the schema call")
		})
	}
}

func TestBrowseService_Browse_LimitBounds(t *testing.T) {
	t.Parallel()

	for _, limit := range []int{BrowseMinLimit, BrowseMaxLimit} {
		executor := &testutil.MockSQLExecutor{
			DescribeSchemaFn: schemaWith(domain.SchemaObject{Name: "orders", Kind: domain.ObjectKindTable}),
			ExecuteFn: func(context.Context, string, string) (*domain.RemoteResult, error) {
				return &domain.RemoteResult{Rows: []domain.Row{}}, nil
			},
		}
		svc := newBrowse(executor)

		_, err := svc.Browse(context.Background(), "db-1", "orders", limit, 0)
		assert.NoError(t, err, "limit %d is inside the allowed range", limit)
	}
}
