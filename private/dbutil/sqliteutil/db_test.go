// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package sqliteutil_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/execsuite/execsuite/private/dbutil"
	"github.com/execsuite/execsuite/private/dbutil/sqliteutil"
	"github.com/execsuite/execsuite/private/testcontext"
)

func TestOpenUnique(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	testDB, err := sqliteutil.OpenUnique(ctx, "sqliteutil-test")
	require.NoError(t, err)

	require.Equal(t, "sqlite3", testDB.Driver)
	require.Equal(t, dbutil.SQLite, testDB.Implementation)

	path := strings.TrimPrefix(testDB.ConnStr, "sqlite3://")
	_, err = testDB.ExecContext(ctx, `CREATE TABLE kv ( k text PRIMARY KEY, v text )`)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, testDB.Close())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "expected working database file to be removed")
}

func TestDeleteAll(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	testDB, err := sqliteutil.OpenUnique(ctx, "sqliteutil-test")
	require.NoError(t, err)
	defer ctx.Check(testDB.Close)

	// empty database: nothing to do
	require.NoError(t, sqliteutil.DeleteAll(ctx, testDB.DB))

	_, err = testDB.ExecContext(ctx, `CREATE TABLE accounts ( id integer PRIMARY KEY, name text )`)
	require.NoError(t, err)
	_, err = testDB.ExecContext(ctx, `INSERT INTO accounts (name) VALUES ('alice'), ('bob')`)
	require.NoError(t, err)

	require.NoError(t, sqliteutil.DeleteAll(ctx, testDB.DB))

	var count int
	require.NoError(t, testDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count))
	require.Zero(t, count)

	// table structure survives the reset
	tables, err := sqliteutil.ListTables(ctx, testDB.DB)
	require.NoError(t, err)
	require.Equal(t, []string{"accounts"}, tables)
}
