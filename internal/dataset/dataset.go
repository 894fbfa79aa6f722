// Package dataset provides the geo-referenced street-view records the
// render pipeline consumes, backed by SQLite, plus the run manifest that
// pairs each real photograph with its simulated render outputs.
package dataset

import "context"

// GeoRecord is one geo-referenced street-level photograph. Records are
// immutable once produced by a Source.
type GeoRecord struct {
	ID             string  `json:"id"`
	Longitude      float64 `json:"longitude"`       // degrees
	Latitude       float64 `json:"latitude"`        // degrees
	Altitude       float64 `json:"altitude"`        // meters
	CompassBearing float64 `json:"compass_bearing"` // degrees, 0 = north, clockwise
}

// Iterator walks a finite sequence of records in the sql.Rows style:
//
//	it, err := src.Open(ctx)
//	for it.Next() { rec := it.Record(); ... }
//	err = it.Err()
//	it.Close()
type Iterator interface {
	Next() bool
	Record() GeoRecord
	Err() error
	Close() error
}

// Source produces a lazy, finite record sequence. Each Open starts a
// fresh pass; the pipeline performs exactly one pass per run.
type Source interface {
	Open(ctx context.Context) (Iterator, error)
}

// SliceSource is an in-memory Source, mainly for tests and small jobs.
type SliceSource []GeoRecord

// Open returns an iterator over the slice.
func (s SliceSource) Open(ctx context.Context) (Iterator, error) {
	return &sliceIterator{records: s, pos: -1}, nil
}

type sliceIterator struct {
	records []GeoRecord
	pos     int
}

func (it *sliceIterator) Next() bool {
	if it.pos+1 >= len(it.records) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Record() GeoRecord { return it.records[it.pos] }
func (it *sliceIterator) Err() error        { return nil }
func (it *sliceIterator) Close() error      { return nil }
