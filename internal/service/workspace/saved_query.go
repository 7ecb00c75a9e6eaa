// Package workspace holds the operator-facing CRUD surfaces: saved queries
// and query history.
package workspace

import (
	"context"
	"strings"

	"sqlgate/internal/domain"
)

// SavedQueryService validates and stores named SQL snippets.
type SavedQueryService struct {
	repo domain.SavedQueryRepository
}

// NewSavedQueryService creates a SavedQueryService.
func NewSavedQueryService(repo domain.SavedQueryRepository) *SavedQueryService {
	return &SavedQueryService{repo: repo}
}

// Create stores a new saved query.
func (s *SavedQueryService) Create(ctx context.Context, name, sqlText string, databaseID *string) (*domain.SavedQuery, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("name is required")
	}
	if strings.TrimSpace(sqlText) == "" {
		return nil, domain.ErrValidation("sql is required")
	}
	return s.repo.Create(ctx, &domain.SavedQuery{Name: name, SQL: sqlText, DatabaseID: databaseID})
}

// Get returns one saved query by id.
func (s *SavedQueryService) Get(ctx context.Context, id string) (*domain.SavedQuery, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of saved queries plus the total count.
func (s *SavedQueryService) List(ctx context.Context, page domain.PageRequest) ([]domain.SavedQuery, int64, error) {
	return s.repo.List(ctx, page)
}

// Update applies partial updates to a saved query.
func (s *SavedQueryService) Update(ctx context.Context, id string, req domain.UpdateSavedQueryRequest) (*domain.SavedQuery, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, domain.ErrValidation("name must not be empty")
	}
	if req.SQL != nil && strings.TrimSpace(*req.SQL) == "" {
		return nil, domain.ErrValidation("sql must not be empty")
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a saved query.
func (s *SavedQueryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// HistoryService lists gateway execution records.
type HistoryService struct {
	repo domain.QueryHistoryRepository
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(repo domain.QueryHistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns a page of history entries, newest first, plus the total count.
func (s *HistoryService) List(ctx context.Context, page domain.PageRequest) ([]domain.QueryHistoryEntry, int64, error) {
	return s.repo.List(ctx, page)
}
