// Package dialect provides the database abstraction consumed by the nexo
// relation-resolution engine.
//
// It defines the interfaces and dialect names used for database-specific
// operations, allowing nexo to run against multiple backends.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
// The Driver interface is the full capability set the engine needs from a
// storage backend:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface extends ExecQuerier with Commit and Rollback, and the
// ExecQuerier interface is implemented by both Driver and Tx.
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/syssam/nexo/dialect"
//	    "github.com/syssam/nexo/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// Wrapping a driver with query logging:
//
//	drv = dialect.Debug(drv)
//
// # Sub-packages
//
//   - dialect/sql: the database/sql driver implementation, the query
//     builder used by the relation resolver, and record scanning.
package dialect
