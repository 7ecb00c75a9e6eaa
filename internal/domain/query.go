package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Row is a single result record as returned by the remote SQL service:
// column name to scalar value.
type Row map[string]interface{}

// ExecutionOutcome is the structured result of a gateway query execution.
type ExecutionOutcome struct {
	Rows      []Row
	RowCount  int
	Changes   *int64 // rows changed by DML, when the remote reports it
	ElapsedMs int64  // wall clock for the whole operation, not just the remote call
	FromCache bool
}

// BrowseResult is the outcome of a table-browse execution.
type BrowseResult struct {
	Rows     []Row
	RowCount int
	PageSize int
}

// Fingerprint returns the deterministic cache fingerprint for a SQL text.
// The raw text is hashed as-is: no whitespace folding or case normalization,
// so textually distinct but semantically identical queries miss independently.
func Fingerprint(sqlText string) string {
	sum := sha256.Sum256([]byte(sqlText))
	return hex.EncodeToString(sum[:])
}
