// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package pgutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/zeebo/errs"
)

// ListTables returns the user tables of the connected database's current schema.
func ListTables(ctx context.Context, db *sql.DB) (tables []string, err error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM   information_schema.tables
		WHERE  table_schema = CURRENT_SCHEMA
		  AND  table_type = 'BASE TABLE'
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

// TruncateAll removes all rows from every user table in the connected
// database, leaving the table structure in place. Sequences restart so that
// consecutive uses see identical generated keys.
func TruncateAll(ctx context.Context, db *sql.DB) error {
	tables, err := ListTables(ctx, db)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(tables))
	for _, table := range tables {
		quoted = append(quoted, pq.QuoteIdentifier(table))
	}

	_, err = db.ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(quoted, ", ")+" RESTART IDENTITY CASCADE")
	return Error.Wrap(err)
}
