// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package executortest_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/execsuite/execsuite/executortest"
	"github.com/execsuite/execsuite/private/testcontext"
)

func TestRun(t *testing.T) {
	executortest.Run(t, func(ctx *testcontext.Context, t *testing.T, param executortest.Param) {
		target := param.ExecutorTarget()
		require.NotEmpty(t, target.Driver)
		require.NotEmpty(t, target.ConnStr)

		db, err := sql.Open(target.Driver, openSource(target))
		require.NoError(t, err)
		defer ctx.Check(db.Close)

		_, err = db.ExecContext(ctx, `CREATE TABLE wsv ( height integer, hash text )`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO wsv VALUES (1, 'aa'), (2, 'bb')`)
		require.NoError(t, err)

		// clearing state repeatedly leaves the database reachable and the
		// target untouched
		for i := 0; i < 3; i++ {
			require.NoError(t, param.ClearBackendState(ctx))
			require.Equal(t, target, param.ExecutorTarget())
		}

		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wsv`).Scan(&count))
		require.Zero(t, count)

		// identity is stable across calls
		require.Equal(t, param.String(), param.String())
		require.NotEmpty(t, param.String())
	})
}

// openSource maps a Target to the source string sql.Open expects for its
// driver. The execution engine under test does the same mapping internally.
func openSource(target executortest.Target) string {
	if target.Driver == "sqlite3" {
		return target.ConnStr[len("sqlite3://"):]
	}
	return target.ConnStr
}
