package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sqlgate/internal/domain"
	"sqlgate/internal/remote"
)

// Browse page size bounds.
const (
	BrowseMinLimit = 1
	BrowseMaxLimit = 100
)

// BrowseService plans and executes generic table-browse requests. A requested
// table name is validated against the live schema enumeration before it is
// ever embedded into SQL text, and is identifier-quoted on top of that.
type BrowseService struct {
	executor   domain.SQLExecutor
	classifier *remote.Classifier
	logger     *slog.Logger
}

// NewBrowseService creates a BrowseService.
func NewBrowseService(executor domain.SQLExecutor, classifier *remote.Classifier, logger *slog.Logger) *BrowseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowseService{executor: executor, classifier: classifier, logger: logger}
}

// Browse returns one page of rows from tableName. Validation failures and
// unknown tables short-circuit before the SELECT is issued. Results never
// enter the gateway's result cache: browsing is paginated and lives outside
// the free-form query key space.
func (s *BrowseService) Browse(ctx context.Context, databaseID, tableName string, limit, offset int) (*domain.BrowseResult, error) {
	if databaseID == "" {
		return nil, domain.ErrValidation("database is required")
	}
	if tableName == "" {
		return nil, domain.ErrValidation("table name is required")
	}
	if limit < BrowseMinLimit || limit > BrowseMaxLimit {
		return nil, domain.ErrValidation("limit must be between %d and %d", BrowseMinLimit, BrowseMaxLimit)
	}
	if offset < 0 {
		return nil, domain.ErrValidation("offset must not be negative")
	}

	// The schema check is a precondition, not a SQL execution: an unknown
	// table is the caller's mistake even though discovering that required a
	// remote call.
	objects, err := s.executor.DescribeSchema(ctx, databaseID)
	if err != nil {
		return nil, s.classify(err)
	}
	if !tableExists(objects, tableName) {
		return nil, domain.ErrValidation("table %q not found", tableName)
	}

	sqlText := fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", quoteIdent(tableName), limit, offset)

	result, err := s.executor.Execute(ctx, databaseID, sqlText)
	if err != nil {
		return nil, s.classify(err)
	}

	s.logger.Info("table browse executed",
		"database", databaseID, "table", tableName,
		"rows", len(result.Rows), "limit", limit, "offset", offset)

	return &domain.BrowseResult{
		Rows:     result.Rows,
		RowCount: len(result.Rows),
		PageSize: limit,
	}, nil
}

func (s *BrowseService) classify(err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return err
	}
	return s.classifier.Classify(err)
}

// tableExists reports whether name appears in the enumeration with kind
// table. Views are deliberately excluded from browsing.
func tableExists(objects []domain.SchemaObject, name string) bool {
	for _, obj := range objects {
		if obj.Kind == domain.ObjectKindTable && obj.Name == name {
			return true
		}
	}
	return false
}

// quoteIdent wraps an identifier in double quotes, doubling any embedded
// quote. The membership check above is the primary defense; quoting blocks
// injection through exploitation of unquoted identifiers.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
