package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// schema.sql contains the SQL statements for creating the street-view
// dataset and render-run manifest tables.
//
//go:embed schema.sql
var schemaSQL string

// DB wraps the SQLite database holding the street-view dataset and the
// render-run manifest.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the dataset database at path and applies the
// embedded schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply dataset schema: %w", err)
	}

	return &DB{db}, nil
}

// InsertRecord stores one street-view record. Inserting an existing ID
// fails; the dataset is append-only.
func (db *DB) InsertRecord(rec GeoRecord) error {
	query := `
		INSERT INTO street_views (id, lon, lat, altitude, bearing, imported_at_ns)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, rec.ID, rec.Longitude, rec.Latitude, rec.Altitude, rec.CompassBearing, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("insert street view %s: %w", rec.ID, err)
	}
	return nil
}

// CountRecords returns the number of street-view records in the dataset.
func (db *DB) CountRecords() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM street_views`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count street views: %w", err)
	}
	return n, nil
}

// Records returns a Source over the dataset, ordered by record ID so a
// run is reproducible regardless of insertion order.
func (db *DB) Records() Source {
	return &sqliteSource{db: db.DB}
}

type sqliteSource struct {
	db *sql.DB
}

func (s *sqliteSource) Open(ctx context.Context) (Iterator, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lon, lat, altitude, bearing
		FROM street_views
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query street views: %w", err)
	}
	return &sqliteIterator{rows: rows}, nil
}

type sqliteIterator struct {
	rows    *sql.Rows
	current GeoRecord
	err     error
}

func (it *sqliteIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	var rec GeoRecord
	if err := it.rows.Scan(&rec.ID, &rec.Longitude, &rec.Latitude, &rec.Altitude, &rec.CompassBearing); err != nil {
		it.err = fmt.Errorf("scan street view: %w", err)
		return false
	}
	it.current = rec
	return true
}

func (it *sqliteIterator) Record() GeoRecord { return it.current }

func (it *sqliteIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *sqliteIterator) Close() error { return it.rows.Close() }
