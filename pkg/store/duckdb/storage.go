package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SnapshotTableSchema = `
	CREATE TABLE IF NOT EXISTS analysis_snapshots (
		id VARCHAR NOT NULL PRIMARY KEY,
		industry VARCHAR NOT NULL,
		generated_at TIMESTAMP NOT NULL,
		report JSON NOT NULL
	);
`

const NoteTableSchema = `
	CREATE TABLE IF NOT EXISTS session_notes (
		id VARCHAR NOT NULL PRIMARY KEY,
		note VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	SnapshotTableSchema,
	NoteTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the dashboard history database and runs the boot
// queries. Use ":memory:" for ephemeral storage.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=2", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
