// Package registry mirrors remote databases into the local metadata store.
package registry

import (
	"context"
	"errors"
	"log/slog"

	"sqlgate/internal/domain"
	"sqlgate/internal/remote"
)

// Service discovers databases on the remote service and persists their
// id→name mappings. Discovery is explicit (Sync), never implicit per request.
type Service struct {
	executor   domain.SQLExecutor
	repo       domain.DatabaseRepository
	classifier *remote.Classifier
	logger     *slog.Logger
}

// NewService creates a registry Service.
func NewService(executor domain.SQLExecutor, repo domain.DatabaseRepository, classifier *remote.Classifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{executor: executor, repo: repo, classifier: classifier, logger: logger}
}

// Sync fetches the remote database list and upserts every entry into the
// registry. Returns the freshly-discovered list.
func (s *Service) Sync(ctx context.Context) ([]domain.Database, error) {
	dbs, err := s.executor.ListDatabases(ctx)
	if err != nil {
		return nil, s.classify(err)
	}

	for _, db := range dbs {
		if err := s.repo.Upsert(ctx, db); err != nil {
			return nil, err
		}
	}
	s.logger.Info("database registry synced", "count", len(dbs))
	return dbs, nil
}

// List returns the registered databases.
func (s *Service) List(ctx context.Context) ([]domain.Database, error) {
	return s.repo.List(ctx)
}

// Get returns one registered database by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Database, error) {
	db, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, domain.ErrNotFound("database %q not registered", id)
	}
	return db, nil
}

// Schema returns the live schema enumeration for a database. The gateway
// does not cache it; display callers may.
func (s *Service) Schema(ctx context.Context, databaseID string) ([]domain.SchemaObject, error) {
	objects, err := s.executor.DescribeSchema(ctx, databaseID)
	if err != nil {
		return nil, s.classify(err)
	}
	return objects, nil
}

func (s *Service) classify(err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return err
	}
	return s.classifier.Classify(err)
}
