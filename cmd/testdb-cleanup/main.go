// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

// testdb-cleanup drops working databases left behind by test suites whose
// teardown failed. Teardown is best-effort: when a drop fails at suite end
// the server-side database remains and needs operator-level cleanup, which
// this tool provides.
package main

import (
	"context"
	"database/sql"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/execsuite/execsuite/private/dbutil/pgtest"
	"github.com/execsuite/execsuite/private/dbutil/pgutil"
)

var (
	rootCmd = &cobra.Command{
		Use:   "testdb-cleanup",
		Short: "Drop leaked test working databases",
		RunE:  cmdCleanup,
	}

	connStr string
	prefix  string
	dryRun  bool
)

func init() {
	rootCmd.Flags().StringVar(&connStr, "postgres", os.Getenv("EXECSUITE_POSTGRES_TEST"), "server connection string, example: "+pgtest.DefaultConnStr)
	rootCmd.Flags().StringVar(&prefix, "prefix", "exec", "working database name prefix to match")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "list matching databases without dropping them")
}

func cmdCleanup(cmd *cobra.Command, args []string) (err error) {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if connStr == "" {
		return errs.New("server connection string not provided, use --postgres or EXECSUITE_POSTGRES_TEST")
	}

	ctx := context.Background()
	masterDB, err := sql.Open("postgres", connStr)
	if err == nil {
		err = masterDB.PingContext(ctx)
	}
	if err != nil {
		return errs.New("failed to connect to %q: %v", connStr, err)
	}
	defer func() { err = errs.Combine(err, masterDB.Close()) }()

	leaked, err := listLeaked(ctx, masterDB, prefix)
	if err != nil {
		return err
	}
	if len(leaked) == 0 {
		log.Info("no leaked working databases found", zap.String("prefix", prefix))
		return nil
	}

	for _, name := range leaked {
		if dryRun {
			log.Info("would drop working database", zap.String("name", name))
			continue
		}
		if dropErr := pgutil.DropDatabase(ctx, masterDB, name); dropErr != nil {
			log.Error("failed to drop working database", zap.String("name", name), zap.Error(dropErr))
			err = errs.Combine(err, dropErr)
			continue
		}
		log.Info("dropped working database", zap.String("name", name))
	}
	return err
}

// listLeaked returns databases whose names have the generated working
// database shape for the given prefix.
func listLeaked(ctx context.Context, masterDB *sql.DB, prefix string) (leaked []string, err error) {
	likePattern := strings.NewReplacer(`\`, `\\`, `_`, `\_`, `%`, `\%`).Replace(prefix) + `\_%`
	rows, err := masterDB.QueryContext(ctx, `
		SELECT datname FROM pg_database
		WHERE NOT datistemplate AND datname LIKE $1
	`, likePattern)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer func() { err = errs.Combine(err, rows.Close()) }()

	rxGenerated := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `_[0-9a-f]{16}$`)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(err)
		}
		if rxGenerated.MatchString(name) {
			leaked = append(leaked, name)
		}
	}
	return leaked, errs.Wrap(rows.Err())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
