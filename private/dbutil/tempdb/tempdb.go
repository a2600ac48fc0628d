// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

// Package tempdb provides a driver-agnostic way to create working databases
// for one test-suite run.
package tempdb

import (
	"context"

	"github.com/zeebo/errs"

	"github.com/execsuite/execsuite/private/dbutil"
	"github.com/execsuite/execsuite/private/dbutil/pgutil"
	"github.com/execsuite/execsuite/private/dbutil/sqliteutil"
)

// OpenUnique opens a working database with a unique random name on the server
// (or in a temporary directory, for embedded implementations) pointed to by
// connstr. Closing the returned TempDatabase destroys the working database.
func OpenUnique(ctx context.Context, connstr string, namePrefix string) (*dbutil.TempDatabase, error) {
	_, _, implementation, err := dbutil.SplitConnstr(connstr)
	if err != nil {
		return nil, err
	}

	switch implementation {
	case dbutil.Postgres:
		return pgutil.OpenUnique(ctx, connstr, namePrefix)
	case dbutil.SQLite:
		return sqliteutil.OpenUnique(ctx, namePrefix)
	default:
		return nil, errs.New("unsupported database implementation for %q", connstr)
	}
}
