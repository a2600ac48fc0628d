// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

// Package executortest provides backend-parameterized fixtures for running
// execution-engine test suites against different storage backends.
//
// A test suite constructs one Param per backend kind before the first test
// case runs and closes it after the last one. In between, the harness points
// the execution engine at Param.ExecutorTarget() and calls
// Param.ClearBackendState() so consecutive test cases start from a clean
// logical state without paying for database recreation.
package executortest

import (
	"context"
	"strings"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// Error is the default error class for the package.
var Error = errs.Class("executortest")

// Target tells the test harness how to connect the execution engine to the
// working database. It is immutable and stays valid for the entire lifetime
// of the Param that produced it.
type Target struct {
	Driver  string
	ConnStr string
}

// Param selects which storage backend an execution test suite runs against.
//
// A Param is created once, queried from the suite's own control flow and
// closed once. It is not safe for concurrent use.
type Param interface {
	// ClearBackendState resets accumulated mutable state inside the existing
	// working database. A failure means test isolation can no longer be
	// guaranteed; callers must treat it as fatal to the test case rather
	// than continue with a partial reset.
	ClearBackendState(ctx context.Context) error

	// ExecutorTarget returns the descriptor the harness needs to point the
	// execution engine at this backend. It is a pure query and returns the
	// same value every time.
	ExecutorTarget() Target

	// String returns a stable human-readable identity used in test-case
	// naming and reporting.
	String() string

	// Close destroys the working database. Errors report a leaked
	// server-side database that needs operator cleanup, but in-process
	// resources are always released.
	Close() error
}

// NewParam constructs the backend parameter for the given backend descriptor.
func NewParam(ctx context.Context, log *zap.Logger, backend Backend) (Param, error) {
	switch {
	case strings.HasPrefix(backend.ConnStr, "postgres://"), strings.HasPrefix(backend.ConnStr, "postgresql://"):
		return NewPostgresParam(ctx, log, backend.ConnStr)
	case strings.HasPrefix(backend.ConnStr, "sqlite://"), strings.HasPrefix(backend.ConnStr, "sqlite3://"):
		return NewSqliteParam(ctx, log)
	default:
		return nil, Error.New("unsupported backend connection string %q", backend.ConnStr)
	}
}
