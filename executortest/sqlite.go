// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package executortest

import (
	"context"

	"go.uber.org/zap"
)

// SqliteParam is the embedded SQLite backend parameter. Its working database
// is a temporary file, so the lifecycle is trivial next to PostgresParam, but
// it offers the same capability set.
type SqliteParam struct {
	manager *TestDBManager
}

// NewSqliteParam provisions a working database in a temporary directory.
func NewSqliteParam(ctx context.Context, log *zap.Logger) (*SqliteParam, error) {
	manager, err := NewTestDBManager(ctx, log.Named("testdb"), ManagerConfig{
		ServerConnStr: "sqlite://",
		NamePrefix:    "exec",
	})
	if err != nil {
		return nil, err
	}
	return &SqliteParam{manager: manager}, nil
}

// ClearBackendState deletes all execution-engine state in the working
// database.
func (param *SqliteParam) ClearBackendState(ctx context.Context) error {
	return param.manager.ClearState(ctx)
}

// ExecutorTarget returns the descriptor pointing at the working database.
func (param *SqliteParam) ExecutorTarget() Target {
	return param.manager.Target()
}

// String implements Param.
func (param *SqliteParam) String() string {
	return "sqlite/" + param.manager.Name()
}

// Close removes the working database file.
func (param *SqliteParam) Close() error {
	return param.manager.Close()
}
