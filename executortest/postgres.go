// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package executortest

import (
	"context"

	"go.uber.org/zap"
)

// PostgresParam is the PostgreSQL backend parameter. It creates and holds a
// test database manager that resolves server connection options, creates a
// working database with a random name and drops it when the suite completes.
type PostgresParam struct {
	manager *TestDBManager
}

// NewPostgresParam provisions a working database on the server pointed to by
// serverConnStr.
func NewPostgresParam(ctx context.Context, log *zap.Logger, serverConnStr string) (*PostgresParam, error) {
	manager, err := NewTestDBManager(ctx, log.Named("testdb"), ManagerConfig{
		ServerConnStr: serverConnStr,
		NamePrefix:    "exec",
	})
	if err != nil {
		return nil, err
	}
	return &PostgresParam{manager: manager}, nil
}

// ClearBackendState truncates all execution-engine state in the working
// database.
func (param *PostgresParam) ClearBackendState(ctx context.Context) error {
	return param.manager.ClearState(ctx)
}

// ExecutorTarget returns the descriptor pointing at the working database.
func (param *PostgresParam) ExecutorTarget() Target {
	return param.manager.Target()
}

// String implements Param.
func (param *PostgresParam) String() string {
	return "postgres/" + param.manager.Name()
}

// Close drops the working database.
func (param *PostgresParam) Close() error {
	return param.manager.Close()
}
