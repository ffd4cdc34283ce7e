// Package sql loads feature rows and targets from any database/sql driver
// via a caller-supplied query, returning them as parallel slices that the
// caller wraps into tabular samples. Grounded on pbanos-botanic's
// dataset/sqldataset + pkg/bio/sql/sqlite3adapter shape: one
// query-scanning core (this package) with concrete drivers registered by
// blank import. The two drivers this module exercises are
// github.com/mattn/go-sqlite3 and github.com/lib/pq, matching the
// teacher pack's (pbanos-botanic) sqlite3adapter/pgadapter split: their
// driver names are constants here, and each driver is registered by
// blank-importing its subpackage (source/sql/sqlite3 or
// source/sql/postgres); database/sql already gives one scanning path for
// every driver.
package sql

import (
	"database/sql"
	"fmt"
)

const (
	// DriverSQLite3 registers github.com/mattn/go-sqlite3 under the name
	// database/sql expects in sql.Open.
	DriverSQLite3 = "sqlite3"
	// DriverPostgres registers github.com/lib/pq.
	DriverPostgres = "postgres"
)

// Open opens driverName (DriverSQLite3 or DriverPostgres) at dsn. Callers
// must blank-import the matching driver package
// (github.com/mattn/go-sqlite3 or github.com/lib/pq) so it registers
// itself with database/sql before calling Open.
func Open(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driverName, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", driverName, err)
	}
	return db, nil
}

// ReadClassif runs query against db and scans each row into a feature
// vector of length nFeatures plus a trailing class-index column, producing
// parallel X/class-index slices. query must select the class index column
// last.
func ReadClassif(db *sql.DB, query string, nFeatures int) (x [][]float64, class []int, err error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		dest := make([]interface{}, nFeatures+1)
		vals := make([]float64, nFeatures+1)
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}
		x = append(x, append([]float64(nil), vals[:nFeatures]...))
		class = append(class, int(vals[nFeatures]))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating rows: %w", err)
	}
	return x, class, nil
}

// ReadRegress is ReadClassif's regression counterpart: the trailing column
// is a float64 target instead of a class index.
func ReadRegress(db *sql.DB, query string, nFeatures int) (x [][]float64, y []float64, err error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		dest := make([]interface{}, nFeatures+1)
		vals := make([]float64, nFeatures+1)
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}
		x = append(x, append([]float64(nil), vals[:nFeatures]...))
		y = append(y, vals[nFeatures])
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating rows: %w", err)
	}
	return x, y, nil
}
