// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package dbutil

import (
	"strings"

	"github.com/zeebo/errs"
)

// Implementation type of valid DBs
type Implementation int

const (
	// Unknown is an unknown db type
	Unknown Implementation = iota
	// Postgres is a Postgresdb type
	Postgres
	// SQLite is a SQLite3 type
	SQLite
)

// ImplementationForScheme returns the Implementation used for the specified
// connection scheme.
func ImplementationForScheme(scheme string) Implementation {
	switch scheme {
	case "postgres", "postgresql":
		return Postgres
	case "sqlite", "sqlite3":
		return SQLite
	default:
		return Unknown
	}
}

// SplitConnstr returns the driver and source to use with sql.Open from a full
// connection string.
func SplitConnstr(s string) (driver string, source string, implementation Implementation, err error) {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return "", "", Unknown, errs.New("unsupported database connection string %q", s)
	}

	switch ImplementationForScheme(s[:idx]) {
	case Postgres:
		// the postgres driver wants the scheme kept in place
		return "postgres", s, Postgres, nil
	case SQLite:
		return "sqlite3", s[idx+len("://"):], SQLite, nil
	default:
		return "", "", Unknown, errs.New("unsupported database connection string %q", s)
	}
}
