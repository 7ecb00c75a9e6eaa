// Package db provides SQLite connectivity and migration support for the
// local metadata store (credentials, database registry, saved queries,
// query history).
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
)

// Hardened SQLite DSN parameters.
const (
	busyTimeoutMs = "5000"
	synchronous   = "NORMAL"
	journalMode   = "WAL"
)

// OpenSQLite opens a *sql.DB pool for the given SQLite file path.
//
// mode controls write-safety and pool sizing:
//   - "write": MaxOpenConns=1 with _txlock=immediate, for serialized writes
//   - "read":  maxOpen connections (0 defaults to 4), no _txlock
func OpenSQLite(path, mode string, maxOpen int) (*sql.DB, error) {
	if mode != "read" && mode != "write" {
		return nil, fmt.Errorf("invalid SQLite mode %q: must be \"read\" or \"write\"", mode)
	}

	handle, err := sql.Open("sqlite3", buildDSN(path, mode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite (%s): %w", mode, err)
	}

	if mode == "write" {
		handle.SetMaxOpenConns(1)
		handle.SetMaxIdleConns(1)
	} else {
		if maxOpen <= 0 {
			maxOpen = 4
		}
		handle.SetMaxOpenConns(maxOpen)
		handle.SetMaxIdleConns(maxOpen)
	}
	handle.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("ping sqlite (%s): %w", mode, err)
	}

	return handle, nil
}

// OpenSQLitePair opens a write pool and a read pool over the same file.
// This is the recommended SQLite setup for a concurrent Go HTTP server.
func OpenSQLitePair(path string, readMaxOpen int) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = OpenSQLite(path, "write", 0)
	if err != nil {
		return nil, nil, err
	}

	readDB, err = OpenSQLite(path, "read", readMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}

	return writeDB, readDB, nil
}

func buildDSN(path, mode string) string {
	params := url.Values{}
	params.Set("_journal_mode", journalMode)
	params.Set("_busy_timeout", busyTimeoutMs)
	params.Set("_synchronous", synchronous)
	params.Set("_foreign_keys", "on")
	if mode == "write" {
		params.Set("_txlock", "immediate")
	}
	return path + "?" + params.Encode()
}
