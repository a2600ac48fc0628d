// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package pgutil

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"

	"github.com/execsuite/execsuite/private/dbutil"
)

var (
	mon = monkit.Package()

	// Error is the default error class for the package.
	Error = errs.Class("pgutil")
)

// OpenUnique opens a postgres server connection and creates a working database
// with a unique random name on it. The returned TempDatabase is connected to
// the working database and drops it when closed. It is expected that this
// should normally be used by way of
// "github.com/execsuite/execsuite/private/dbutil/tempdb".OpenUnique() instead
// of calling it directly.
func OpenUnique(ctx context.Context, connstr string, namePrefix string) (_ *dbutil.TempDatabase, err error) {
	defer mon.Task()(&ctx)(&err)

	// sanity check, because you get an unhelpful error message when this happens
	if !strings.HasPrefix(connstr, "postgres://") && !strings.HasPrefix(connstr, "postgresql://") {
		return nil, Error.New("expected a postgres URI, but got %q", connstr)
	}

	masterDB, err := sql.Open("postgres", connstr)
	if err == nil {
		// check that the connection actually works before issuing CREATE
		// DATABASE, to make troubleshooting (lots) easier
		err = masterDB.PingContext(ctx)
	}
	if err != nil {
		return nil, Error.New("failed to connect to %q with driver postgres: %v", connstr, err)
	}

	name := TestDatabaseName(namePrefix)
	_, err = masterDB.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name))
	if err != nil {
		if IsDuplicateDatabaseError(err) {
			err = Error.New("working database name collision: %q", name)
		} else {
			err = Error.New("failed to create database %q: %v", name, err)
		}
		return nil, errs.Combine(err, masterDB.Close())
	}

	connStrWithDB, err := ConnstrWithDatabase(connstr, name)
	if err != nil {
		return nil, errs.Combine(err, dropDatabase(ctx, masterDB, name), masterDB.Close())
	}

	db, err := sql.Open("postgres", connStrWithDB)
	if err == nil {
		err = db.PingContext(ctx)
	}
	if err != nil {
		err = Error.New("failed to connect to %q with driver postgres: %v", connStrWithDB, err)
		return nil, errs.Combine(err, dropDatabase(ctx, masterDB, name), masterDB.Close())
	}

	cleanup := func() error {
		// a database cannot be dropped through its own connection, so the
		// drop goes over the server-level connection
		return errs.Combine(dropDatabase(context.Background(), masterDB, name), masterDB.Close())
	}

	dbutil.Configure(db, "tmp_postgres", mon)
	return &dbutil.TempDatabase{
		DB:             db,
		ConnStr:        connStrWithDB,
		Name:           name,
		Driver:         "postgres",
		Implementation: dbutil.Postgres,
		Cleanup:        cleanup,
	}, nil
}

func dropDatabase(ctx context.Context, masterDB *sql.DB, name string) error {
	_, err := masterDB.ExecContext(ctx, "DROP DATABASE "+pq.QuoteIdentifier(name))
	return Error.Wrap(err)
}

// DropDatabase removes the named database over an already established
// server-level connection.
func DropDatabase(ctx context.Context, masterDB *sql.DB, name string) error {
	return dropDatabase(ctx, masterDB, name)
}

// ConnstrWithDatabase changes the database part of a postgres connection string.
func ConnstrWithDatabase(connstr, dbname string) (string, error) {
	u, err := url.Parse(connstr)
	if err != nil {
		return "", Error.New("invalid connstr: %q", connstr)
	}
	u.Path = "/" + dbname
	return u.String(), nil
}

// DatabaseFromConnstr returns the database part of a postgres connection string.
func DatabaseFromConnstr(connstr string) (string, error) {
	u, err := url.Parse(connstr)
	if err != nil {
		return "", Error.New("invalid connstr: %q", connstr)
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}

// IsDuplicateDatabaseError checks whether the error is a postgres
// duplicate_database error from CREATE DATABASE.
func IsDuplicateDatabaseError(err error) bool {
	return errs.IsFunc(err, func(err error) bool {
		if e, ok := err.(*pq.Error); ok {
			return e.Code == "42P04"
		}
		return false
	})
}
