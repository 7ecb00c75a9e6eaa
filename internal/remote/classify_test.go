package remote

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain"
)

// === Classify: application failures ===

func TestClassifier_Classify_ApplicationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		messages []string
		wantUser bool
	}{
		{"syntax_error", []string{`near "SELET": syntax error`}, true},
		{"no_such_table", []string{"no such table: orders"}, true},
		{"no_such_column", []string{"no such column: totel"}, true},
		{"parse_error", []string{"parse error at line 3"}, true},
		{"duplicate_column", []string{"duplicate column name: id"}, true},
		{"table_already_exists", []string{"table users already exists"}, true},
		{"constraint_violation", []string{"UNIQUE constraint failed: users.email"}, true},
		{"case_insensitive_match", []string{"Syntax Error in statement"}, true},
		{"overloaded", []string{"Database is overloaded"}, false},
		{"rate_limited", []string{"too many requests"}, false},
		{"quota_exceeded", []string{"storage quota exceeded"}, false},
		{"empty_messages", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClassifier(nil)
			err := c.Classify(&Failure{Kind: KindApplication, Messages: tt.messages})
			require.Error(t, err)

			var userErr *domain.UserError
			var sysErr *domain.SystemError
			if tt.wantUser {
				require.True(t, errors.As(err, &userErr), "expected UserError, got %T: %v", err, err)
				for _, msg := range tt.messages {
					assert.Contains(t, userErr.Message, msg, "remote message must survive verbatim")
				}
			} else {
				require.True(t, errors.As(err, &sysErr), "expected SystemError, got %T: %v", err, err)
			}
		})
	}
}

// === Classify: auth and transport ===

func TestClassifier_Classify_AuthIsAlwaysSystem(t *testing.T) {
	t.Parallel()

	// Auth bodies can contain signature words; the kind must win regardless.
	for _, status := range []int{401, 403} {
		status := status
		t.Run(fmt.Sprintf("status_%d", status), func(t *testing.T) {
			t.Parallel()

			c := NewClassifier(nil)
			err := c.Classify(&Failure{
				Kind:       KindAuth,
				StatusCode: status,
				StatusText: "Unauthorized",
				Messages:   []string{"syntax error in token"},
			})

			var sysErr *domain.SystemError
			require.True(t, errors.As(err, &sysErr))
			assert.Equal(t, status, sysErr.StatusCode)
		})
	}
}

func TestClassifier_Classify_Transport(t *testing.T) {
	t.Parallel()

	t.Run("http_500", func(t *testing.T) {
		t.Parallel()

		c := NewClassifier(nil)
		err := c.Classify(&Failure{Kind: KindTransport, StatusCode: 500, StatusText: "Internal Server Error"})

		var sysErr *domain.SystemError
		require.True(t, errors.As(err, &sysErr))
		assert.Equal(t, 500, sysErr.StatusCode)
	})

	t.Run("connection_error", func(t *testing.T) {
		t.Parallel()

		c := NewClassifier(nil)
		err := c.Classify(&Failure{Kind: KindTransport, StatusText: "dial tcp: connection refused"})

		var sysErr *domain.SystemError
		require.True(t, errors.As(err, &sysErr))
		assert.Zero(t, sysErr.StatusCode)
	})
}

func TestClassifier_Classify_NonFailureError(t *testing.T) {
	t.Parallel()

	c := NewClassifier(nil)
	err := c.Classify(errors.New("something unexpected"))

	var sysErr *domain.SystemError
	require.True(t, errors.As(err, &sysErr), "unknown errors classify conservatively as system")
}

// === Signature conjunctions and overrides ===

func TestClassifier_ConjunctionSignature(t *testing.T) {
	t.Parallel()

	c := NewClassifier(nil)

	t.Run("both_parts_present", func(t *testing.T) {
		t.Parallel()

		err := c.Classify(&Failure{Kind: KindApplication, Messages: []string{"table widgets already exists"}})
		var userErr *domain.UserError
		assert.True(t, errors.As(err, &userErr))
	})

	t.Run("one_part_missing", func(t *testing.T) {
		t.Parallel()

		err := c.Classify(&Failure{Kind: KindApplication, Messages: []string{"replication target already exists"}})
		var sysErr *domain.SystemError
		assert.True(t, errors.As(err, &sysErr), "'already exists' without 'table' must not match")
	})
}

func TestClassifier_CustomSignatures(t *testing.T) {
	t.Parallel()

	c := NewClassifier([]string{"my custom marker"})

	err := c.Classify(&Failure{Kind: KindApplication, Messages: []string{"MY CUSTOM MARKER hit"}})
	var userErr *domain.UserError
	require.True(t, errors.As(err, &userErr))

	// The default list is replaced, not extended.
	err = c.Classify(&Failure{Kind: KindApplication, Messages: []string{"syntax error"}})
	var sysErr *domain.SystemError
	assert.True(t, errors.As(err, &sysErr))
}
