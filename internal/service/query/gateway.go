// Package query implements the query execution gateway: cache-aware ad-hoc
// SQL execution and injection-safe table browsing against the remote service.
package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"sqlgate/internal/cache"
	"sqlgate/internal/domain"
	"sqlgate/internal/remote"
)

// GatewayService orchestrates query execution: cache lookup, remote call,
// failure classification, cache population, and outcome records.
type GatewayService struct {
	executor   domain.SQLExecutor
	classifier *remote.Classifier
	cache      *cache.ResultCache
	history    domain.QueryHistoryRepository
	logger     *slog.Logger
	flight     singleflight.Group
}

// NewGatewayService creates a GatewayService. history may be nil to disable
// execution records.
func NewGatewayService(executor domain.SQLExecutor, classifier *remote.Classifier, resultCache *cache.ResultCache, history domain.QueryHistoryRepository, logger *slog.Logger) *GatewayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GatewayService{
		executor:   executor,
		classifier: classifier,
		cache:      resultCache,
		history:    history,
		logger:     logger,
	}
}

// RunQuery executes sqlText against databaseID, serving fresh cache entries
// without touching the network. Failures are classified exactly once, never
// cached, and never retried here.
func (s *GatewayService) RunQuery(ctx context.Context, databaseID, sqlText string) (*domain.ExecutionOutcome, error) {
	if strings.TrimSpace(sqlText) == "" {
		return nil, domain.ErrValidation("sql query is required")
	}
	if databaseID == "" {
		return nil, domain.ErrValidation("database is required")
	}

	fingerprint := domain.Fingerprint(sqlText)

	if entry, ok := s.cache.Get(fingerprint, databaseID); ok {
		outcome := &domain.ExecutionOutcome{
			Rows:      entry.Rows,
			RowCount:  entry.RowCount,
			ElapsedMs: entry.ElapsedMs,
			FromCache: true,
		}
		s.record(ctx, databaseID, fingerprint, domain.HistoryStatusCached, int64(entry.RowCount), 0, nil)
		s.logger.Info("query served from cache",
			"database", databaseID, "fingerprint", fingerprint, "rows", entry.RowCount)
		return outcome, nil
	}

	// Concurrent identical queries collapse onto one remote call. Duplicate
	// calls would be harmless (last Put wins); this just avoids them.
	v, err, _ := s.flight.Do(fingerprint+"|"+databaseID, func() (interface{}, error) {
		return s.execute(ctx, databaseID, sqlText, fingerprint)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ExecutionOutcome), nil
}

// execute performs the remote call on a cache miss and populates the cache
// on success.
func (s *GatewayService) execute(ctx context.Context, databaseID, sqlText, fingerprint string) (*domain.ExecutionOutcome, error) {
	start := time.Now()

	result, err := s.executor.Execute(ctx, databaseID, sqlText)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return nil, s.fail(ctx, databaseID, fingerprint, elapsed, err)
	}

	outcome := &domain.ExecutionOutcome{
		Rows:      result.Rows,
		RowCount:  len(result.Rows),
		Changes:   result.Changes,
		ElapsedMs: elapsed,
		FromCache: false,
	}

	s.cache.Put(fingerprint, databaseID, outcome.Rows, outcome.RowCount, elapsed)
	s.record(ctx, databaseID, fingerprint, domain.HistoryStatusOK, int64(outcome.RowCount), elapsed, nil)
	s.logger.Info("query executed",
		"database", databaseID, "fingerprint", fingerprint,
		"rows", outcome.RowCount, "elapsed_ms", elapsed)

	return outcome, nil
}

// fail classifies a remote failure and emits the outcome record. Validation
// failures from the credential precondition pass through unclassified.
func (s *GatewayService) fail(ctx context.Context, databaseID, fingerprint string, elapsed int64, err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return err
	}

	classified := s.classifier.Classify(err)

	switch e := classified.(type) {
	case *domain.UserError:
		s.record(ctx, databaseID, fingerprint, domain.HistoryStatusUserError, 0, elapsed, &e.Message)
		s.logger.Info("query rejected by remote engine",
			"database", databaseID, "fingerprint", fingerprint, "error", e.Message)
	case *domain.SystemError:
		s.record(ctx, databaseID, fingerprint, domain.HistoryStatusSystemError, 0, elapsed, &e.Message)
		s.logger.Error("query failed",
			"database", databaseID, "fingerprint", fingerprint,
			"status", e.StatusCode, "error", e.Message)
	}
	return classified
}

// record appends a history entry. Best-effort: a history failure must never
// block or fail the request.
func (s *GatewayService) record(ctx context.Context, databaseID, fingerprint, status string, rows, elapsed int64, errMsg *string) {
	if s.history == nil {
		return
	}
	entry := domain.QueryHistoryEntry{
		DatabaseID:   databaseID,
		Fingerprint:  fingerprint,
		Status:       status,
		RowCount:     rows,
		DurationMs:   elapsed,
		ErrorMessage: errMsg,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Warn("append query history failed", "error", err)
	}
}
