// Package postgres registers the github.com/lib/pq driver for
// source/sql.Open(source/sql.DriverPostgres, ...), mirroring
// pbanos-botanic's pgadapter blank-importing its own Postgres driver.
// Import this package for its side effect only.
package postgres

import (
	_ "github.com/lib/pq"
)
