package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain"
	"sqlgate/internal/testutil"
)

// === Create ===

func TestSavedQueryService_Create(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		repo := &testutil.MockSavedQueryRepo{
			CreateFn: func(_ context.Context, q *domain.SavedQuery) (*domain.SavedQuery, error) {
				q.ID = "sq-1"
				return q, nil
			},
		}
		svc := NewSavedQueryService(repo)

		dbID := "db-1"
		q, err := svc.Create(context.Background(), "daily totals", "SELECT COUNT(*) FROM orders", &dbID)

		require.NoError(t, err)
		assert.Equal(t, "sq-1", q.ID)
		assert.Equal(t, "daily totals", q.Name)
		require.NotNil(t, q.DatabaseID)
		assert.Equal(t, "db-1", *q.DatabaseID)
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewSavedQueryService(&testutil.MockSavedQueryRepo{})

		_, err := svc.Create(context.Background(), "  ", "SELECT 1", nil)

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
	})

	t.Run("blank_sql_rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewSavedQueryService(&testutil.MockSavedQueryRepo{})

		_, err := svc.Create(context.Background(), "totals", "", nil)

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
	})
}

// === Update ===

func TestSavedQueryService_Update(t *testing.T) {
	t.Parallel()

	t.Run("partial_update", func(t *testing.T) {
		t.Parallel()

		repo := &testutil.MockSavedQueryRepo{
			UpdateFn: func(_ context.Context, id string, req domain.UpdateSavedQueryRequest) (*domain.SavedQuery, error) {
				return &domain.SavedQuery{ID: id, Name: *req.Name, SQL: "SELECT 1"}, nil
			},
		}
		svc := NewSavedQueryService(repo)

		name := "renamed"
		q, err := svc.Update(context.Background(), "sq-1", domain.UpdateSavedQueryRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "renamed", q.Name)
	})

	t.Run("blank_updates_rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewSavedQueryService(&testutil.MockSavedQueryRepo{})

		blank := "  "
		var validation *domain.ValidationError

		_, err := svc.Update(context.Background(), "sq-1", domain.UpdateSavedQueryRequest{Name: &blank})
		require.True(t, errors.As(err, &validation))

		_, err = svc.Update(context.Background(), "sq-1", domain.UpdateSavedQueryRequest{SQL: &blank})
		require.True(t, errors.As(err, &validation))
	})

	t.Run("unknown_id", func(t *testing.T) {
		t.Parallel()

		repo := &testutil.MockSavedQueryRepo{
			UpdateFn: func(context.Context, string, domain.UpdateSavedQueryRequest) (*domain.SavedQuery, error) {
				return nil, domain.ErrNotFound("saved query not found")
			},
		}
		svc := NewSavedQueryService(repo)

		name := "x"
		_, err := svc.Update(context.Background(), "ghost", domain.UpdateSavedQueryRequest{Name: &name})

		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}
