package database

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the SQLite database using the provided DSN.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; keep the pool small to avoid
	// SQLITE_BUSY churn under concurrent requests.
	db.SetMaxOpenConns(1)
	return db, nil
}
