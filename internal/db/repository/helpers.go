// Package repository implements the SQLite-backed stores behind the domain
// repository interfaces.
package repository

import (
	"database/sql"
	"time"
)

// sqliteTimeFormat is how timestamps are stored in the metadata store.
const sqliteTimeFormat = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(sqliteTimeFormat, s)
	return t
}

func nullStrToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrToNullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullIntToPtr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

func ptrToNullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
