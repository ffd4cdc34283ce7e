// Package sqlite3 registers the github.com/mattn/go-sqlite3 driver for
// source/sql.Open(source/sql.DriverSQLite3, ...), mirroring
// pbanos-botanic/pkg/bio/sql/sqlite3adapter's blank import of the same
// driver. Import this package for its side effect only.
package sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)
