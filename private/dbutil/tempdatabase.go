// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package dbutil

import (
	"database/sql"

	"github.com/zeebo/errs"
)

// TempDatabase is a working database that is created for one test-suite run
// and destroyed afterwards.
type TempDatabase struct {
	*sql.DB
	// ConnStr reaches the working database itself.
	ConnStr        string
	Name           string
	Driver         string
	Implementation Implementation
	// Cleanup destroys the working database. It must not go through the
	// connection held in DB, since a database cannot drop itself while
	// something is connected to it.
	Cleanup func() error
}

// Close closes the connection to the working database and destroys it.
func (db *TempDatabase) Close() error {
	return errs.Combine(db.DB.Close(), db.Cleanup())
}
