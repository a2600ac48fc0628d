// Copyright (C) 2026 Execsuite Authors.
// See LICENSE for copying information.

package dbutil

import (
	"database/sql"
	"flag"

	"github.com/spacemonkeygo/monkit/v3"
)

var (
	maxIdleConns    = flag.Int("db.max_idle_conns", 20, "Maximum Amount of Idle Database connections, -1 means the stdlib default")
	maxOpenConns    = flag.Int("db.max_open_conns", 25, "Maximum Amount of Open Database connections, -1 means the stdlib default")
	connMaxLifetime = flag.Duration("db.conn_max_lifetime", -1, "Maximum Database Connection Lifetime, -1 means the stdlib default")
)

// Configure Sets Connection Boundaries and adds db_stats monitoring to monkit
func Configure(db *sql.DB, dbName string, mon *monkit.Scope) {
	if *maxIdleConns >= 0 {
		db.SetMaxIdleConns(*maxIdleConns)
	}
	if *maxOpenConns >= 0 {
		db.SetMaxOpenConns(*maxOpenConns)
	}
	if *connMaxLifetime >= 0 {
		db.SetConnMaxLifetime(*connMaxLifetime)
	}
	mon.Chain(monkit.StatSourceFunc(
		func(cb func(key monkit.SeriesKey, field string, val float64)) {
			monkit.StatSourceFromStruct(monkit.NewSeriesKey("db_stats").WithTag("db_name", dbName), db.Stats()).Stats(cb)
		}))
}
