package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSV column names accepted for import. These match the column names of
// the street-level imagery exports this tool ingests.
var csvColumnAliases = map[string][]string{
	"id":       {"id", "image_id"},
	"lon":      {"lon", "longitude"},
	"lat":      {"lat", "latitude"},
	"altitude": {"altitude", "computed_altitude"},
	"bearing":  {"bearing", "compass_angle", "computed_compass_angle"},
}

// ImportCSV reads street-view records from a headered CSV stream and
// inserts them into the dataset. It returns the number of imported rows.
// The header may use either canonical or export column names (e.g.
// "computed_compass_angle" for "bearing").
func (db *DB) ImportCSV(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read CSV header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return 0, err
	}

	imported := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read CSV row %d: %w", imported+2, err)
		}

		rec, err := recordFromRow(row, cols)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if err := db.InsertRecord(rec); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

type columnIndexes struct {
	id, lon, lat, altitude, bearing int
}

func resolveColumns(header []string) (columnIndexes, error) {
	find := func(key string) (int, error) {
		for _, alias := range csvColumnAliases[key] {
			for i, col := range header {
				if col == alias {
					return i, nil
				}
			}
		}
		return 0, fmt.Errorf("CSV header missing %q column (accepted names: %v)", key, csvColumnAliases[key])
	}

	var cols columnIndexes
	var err error
	if cols.id, err = find("id"); err != nil {
		return cols, err
	}
	if cols.lon, err = find("lon"); err != nil {
		return cols, err
	}
	if cols.lat, err = find("lat"); err != nil {
		return cols, err
	}
	if cols.altitude, err = find("altitude"); err != nil {
		return cols, err
	}
	if cols.bearing, err = find("bearing"); err != nil {
		return cols, err
	}
	return cols, nil
}

func recordFromRow(row []string, cols columnIndexes) (GeoRecord, error) {
	var rec GeoRecord

	max := cols.id
	for _, i := range []int{cols.lon, cols.lat, cols.altitude, cols.bearing} {
		if i > max {
			max = i
		}
	}
	if len(row) <= max {
		return rec, fmt.Errorf("row has %d fields, need at least %d", len(row), max+1)
	}

	rec.ID = row[cols.id]
	if rec.ID == "" {
		return rec, fmt.Errorf("empty record id")
	}

	parse := func(name, s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s %q: %w", name, s, err)
		}
		return v, nil
	}

	var err error
	if rec.Longitude, err = parse("lon", row[cols.lon]); err != nil {
		return rec, err
	}
	if rec.Latitude, err = parse("lat", row[cols.lat]); err != nil {
		return rec, err
	}
	if rec.Altitude, err = parse("altitude", row[cols.altitude]); err != nil {
		return rec, err
	}
	if rec.CompassBearing, err = parse("bearing", row[cols.bearing]); err != nil {
		return rec, err
	}
	return rec, nil
}
