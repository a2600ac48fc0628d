// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package executortest_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/execsuite/execsuite/executortest"
	"github.com/execsuite/execsuite/private/dbutil/pgtest"
	"github.com/execsuite/execsuite/private/testcontext"
)

func TestManagerLifecyclePostgres(t *testing.T) {
	connstr := pgtest.PickPostgres(t)

	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	manager, err := executortest.NewTestDBManager(ctx, zaptest.NewLogger(t), executortest.ManagerConfig{
		ServerConnStr: connstr,
	})
	require.NoError(t, err)

	name := manager.Name()
	require.NotEmpty(t, name)

	masterConn, err := sql.Open("postgres", connstr)
	require.NoError(t, err)
	defer ctx.Check(masterConn.Close)

	var count int
	require.NoError(t, masterConn.QueryRowContext(ctx, `SELECT COUNT(*) FROM pg_database WHERE datname = $1`, name).Scan(&count))
	require.Equal(t, 1, count, "expected working database to exist while provisioned")

	// the target reaches a live and empty working database
	target := manager.Target()
	workingConn, err := sql.Open(target.Driver, target.ConnStr)
	require.NoError(t, err)
	require.NoError(t, workingConn.PingContext(ctx))
	require.NoError(t, masterConn.QueryRowContext(ctx, `SELECT COUNT(*) FROM pg_database WHERE datname = $1`, name).Scan(&count))
	require.Equal(t, 1, count)
	require.NoError(t, workingConn.Close())

	require.NoError(t, manager.Close())

	require.NoError(t, masterConn.QueryRowContext(ctx, `SELECT COUNT(*) FROM pg_database WHERE datname = $1`, name).Scan(&count))
	require.Zero(t, count, "expected working database to be dropped after teardown")

	// torn down managers stay inert
	require.NoError(t, manager.Close())
	require.Error(t, manager.ClearState(ctx))
}

func TestManagerUnreachableServer(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	_, err := executortest.NewTestDBManager(ctx, zaptest.NewLogger(t), executortest.ManagerConfig{
		ServerConnStr: "postgres://execsuite@localhost:1/testexecsuite?sslmode=disable&connect_timeout=1",
	})
	require.Error(t, err)
}

func TestManagerMissingConnStr(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	_, err := executortest.NewTestDBManager(ctx, zaptest.NewLogger(t), executortest.ManagerConfig{})
	require.Error(t, err)
}

func TestManagerNamesDistinct(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	names := make(map[string]bool)
	for i := 0; i < 4; i++ {
		manager, err := executortest.NewTestDBManager(ctx, zaptest.NewLogger(t), executortest.ManagerConfig{
			ServerConnStr: "sqlite://",
		})
		require.NoError(t, err)
		defer ctx.Check(manager.Close)

		require.False(t, names[manager.Name()], "managers generated duplicate name %q", manager.Name())
		names[manager.Name()] = true
	}
}

func TestParamIdentity(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	log := zaptest.NewLogger(t)

	first, err := executortest.NewSqliteParam(ctx, log)
	require.NoError(t, err)
	defer ctx.Check(first.Close)

	second, err := executortest.NewSqliteParam(ctx, log)
	require.NoError(t, err)
	defer ctx.Check(second.Close)

	require.Equal(t, first.String(), first.String())
	require.NotEqual(t, first.String(), second.String())
}

func TestNewParamUnsupported(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	_, err := executortest.NewParam(ctx, zaptest.NewLogger(t), executortest.Backend{
		Name:    "Bolt",
		ConnStr: "bolt:///tmp/bolt.db",
	})
	require.Error(t, err)
}
