// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package executortest

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/execsuite/execsuite/private/dbutil"
	"github.com/execsuite/execsuite/private/dbutil/pgutil"
	"github.com/execsuite/execsuite/private/dbutil/sqliteutil"
	"github.com/execsuite/execsuite/private/dbutil/tempdb"
)

// ManagerConfig carries the server-level connection options used to provision
// a working database. It is passed explicitly so the manager never reads
// ambient process state.
type ManagerConfig struct {
	// ServerConnStr points at the maintenance database on the test server.
	ServerConnStr string
	// NamePrefix distinguishes this suite's working databases from other
	// suites sharing the same server. Defaults to "testdb".
	NamePrefix string
}

// TestDBManager owns one ephemeral working database for the duration of a
// test-suite run.
//
// The manager has exactly two states. After NewTestDBManager succeeds it is
// provisioned: the working database exists on the server and is reachable
// through Target().ConnStr. Close moves it to torn down, which drops the
// database and makes the manager inert; the transition happens once and the
// generated name is never reused by this instance.
type TestDBManager struct {
	log    *zap.Logger
	tempDB *dbutil.TempDatabase
	target Target
	torn   bool
}

// NewTestDBManager creates the working database. Any failure here is fatal to
// test-suite startup: the manager refuses to come up provisioned on top of a
// partially-created database.
func NewTestDBManager(ctx context.Context, log *zap.Logger, config ManagerConfig) (*TestDBManager, error) {
	if config.ServerConnStr == "" {
		return nil, Error.New("server connection string not provided")
	}
	prefix := config.NamePrefix
	if prefix == "" {
		prefix = "testdb"
	}

	log.Debug("creating working database", zap.String("prefix", prefix))
	tempDB, err := tempdb.OpenUnique(ctx, config.ServerConnStr, prefix)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	log.Debug("working database created", zap.String("name", tempDB.Name))

	return &TestDBManager{
		log:    log,
		tempDB: tempDB,
		target: Target{Driver: tempDB.Driver, ConnStr: tempDB.ConnStr},
	}, nil
}

// Name returns the generated working-database name.
func (manager *TestDBManager) Name() string { return manager.tempDB.Name }

// Target returns the connection options scoped to the working database.
func (manager *TestDBManager) Target() Target { return manager.target }

// DB returns the open handle to the working database.
func (manager *TestDBManager) DB() *sql.DB { return manager.tempDB.DB }

// ClearState resets accumulated mutable state inside the working database
// without recreating it. Safe to call repeatedly; any error leaves the reset
// incomplete and must abort the test case.
func (manager *TestDBManager) ClearState(ctx context.Context) error {
	if manager.torn {
		return Error.New("manager for %q is torn down", manager.tempDB.Name)
	}

	switch manager.tempDB.Implementation {
	case dbutil.Postgres:
		return Error.Wrap(pgutil.TruncateAll(ctx, manager.tempDB.DB))
	case dbutil.SQLite:
		return Error.Wrap(sqliteutil.DeleteAll(ctx, manager.tempDB.DB))
	default:
		return Error.New("unsupported implementation %v", manager.tempDB.Implementation)
	}
}

// Close drops the working database. Dropping is best-effort: a failure is
// logged and returned for reporting, but the manager releases its in-process
// handles either way and considers the name consumed. Repeated calls are
// no-ops.
func (manager *TestDBManager) Close() error {
	if manager.torn {
		return nil
	}
	manager.torn = true

	name := manager.tempDB.Name
	if err := manager.tempDB.Close(); err != nil {
		manager.log.Error("failed to drop working database; it needs operator cleanup",
			zap.String("name", name), zap.Error(err))
		return Error.Wrap(err)
	}
	manager.log.Debug("working database dropped", zap.String("name", name))
	return nil
}
