// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package executortest

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/execsuite/execsuite/private/dbutil/pgtest"
	"github.com/execsuite/execsuite/private/testcontext"
)

// Backend describes one storage backend the execution-engine suite can run
// against.
type Backend struct {
	Name    string
	ConnStr string
	Message string
}

// Backends returns the default backends.
func Backends() []Backend {
	return []Backend{
		{
			Name:    "Postgres",
			ConnStr: *pgtest.ConnStr,
			Message: "Postgres flag missing, example: -postgres-test-db=" + pgtest.DefaultConnStr + " or use EXECSUITE_POSTGRES_TEST environment variable.",
		},
		{
			Name:    "Sqlite",
			ConnStr: "sqlite://",
		},
	}
}

// Run iterates over all configured backends. For each it provisions a working
// database, clears backend state and hands the parameter to test.
func Run(t *testing.T, test func(ctx *testcontext.Context, t *testing.T, param Param)) {
	for _, backend := range Backends() {
		backend := backend
		t.Run(backend.Name, func(t *testing.T) {
			t.Parallel()

			ctx := testcontext.New(t)
			defer ctx.Cleanup()

			if backend.ConnStr == "" {
				t.Skipf("Backend %s connection string not provided. %s", backend.Name, backend.Message)
			}

			param, err := NewParam(ctx, zaptest.NewLogger(t), backend)
			if err != nil {
				t.Fatal(err)
			}
			defer ctx.Check(param.Close)

			if err := param.ClearBackendState(ctx); err != nil {
				t.Fatal(err)
			}

			test(ctx, t, param)
		})
	}
}

// Bench iterates over all configured backends for benchmarks.
func Bench(b *testing.B, bench func(b *testing.B, param Param)) {
	for _, backend := range Backends() {
		backend := backend
		b.Run(backend.Name, func(b *testing.B) {
			ctx := testcontext.New(b)
			defer ctx.Cleanup()

			if backend.ConnStr == "" {
				b.Skipf("Backend %s connection string not provided. %s", backend.Name, backend.Message)
			}

			param, err := NewParam(ctx, zap.NewNop(), backend)
			if err != nil {
				b.Fatal(err)
			}
			defer ctx.Check(param.Close)

			if err := param.ClearBackendState(ctx); err != nil {
				b.Fatal(err)
			}

			bench(b, param)
		})
	}
}
