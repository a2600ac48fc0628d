// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package sqliteutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers sqlite3 driver
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"

	"github.com/execsuite/execsuite/private/dbutil"
)

var (
	mon = monkit.Package()

	// Error is the default error class for the package.
	Error = errs.Class("sqliteutil")
)

// OpenUnique opens a sqlite database in a fresh temporary directory, which is
// removed when the database is closed. The lifecycle is trivial compared to a
// server-backed working database; it exists so embedded backends offer the
// same shape as pgutil.OpenUnique.
func OpenUnique(ctx context.Context, namePrefix string) (_ *dbutil.TempDatabase, err error) {
	defer mon.Task()(&ctx)(&err)

	dir, err := os.MkdirTemp("", namePrefix+"-*")
	if err != nil {
		return nil, Error.Wrap(err)
	}

	path := filepath.Join(dir, "working.db")
	db, err := sql.Open("sqlite3", path)
	if err == nil {
		err = db.PingContext(ctx)
	}
	if err != nil {
		return nil, errs.Combine(
			Error.New("failed to open %q with driver sqlite3: %v", path, err),
			Error.Wrap(os.RemoveAll(dir)))
	}

	cleanup := func() error {
		return Error.Wrap(os.RemoveAll(dir))
	}

	dbutil.Configure(db, "tmp_sqlite", mon)
	return &dbutil.TempDatabase{
		DB:             db,
		ConnStr:        "sqlite3://" + path,
		Name:           filepath.Base(dir),
		Driver:         "sqlite3",
		Implementation: dbutil.SQLite,
		Cleanup:        cleanup,
	}, nil
}

// ListTables returns the user tables of the connected database.
func ListTables(ctx context.Context, db *sql.DB) (tables []string, err error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(rows.Close())) }()

	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, Error.Wrap(err)
		}
		tables = append(tables, table)
	}
	return tables, Error.Wrap(rows.Err())
}

// DeleteAll removes all rows from every user table in the connected database,
// leaving the table structure in place.
func DeleteAll(ctx context.Context, db *sql.DB) error {
	tables, err := ListTables(ctx, db)
	if err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, `DELETE FROM `+QuoteIdentifier(table)); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

// QuoteIdentifier quotes s as a sqlite identifier.
func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
