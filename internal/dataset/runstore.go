package dataset

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is the manifest entry for one pipeline run: the fixed configuration
// plus outcome bookkeeping. Paired real/simulated datasets are audited
// against this table.
type Run struct {
	RunID        string   `json:"run_id"`
	OriginLat    float64  `json:"origin_lat"`
	OriginLon    float64  `json:"origin_lon"`
	OriginScale  float64  `json:"origin_scale"`
	Layers       []string `json:"layers"`
	StagingRoot  string   `json:"staging_root"`
	OutputDir    string   `json:"output_dir"`
	Status       string   `json:"status"`
	RecordCount  int      `json:"record_count"`
	Failure      string   `json:"failure,omitempty"`
	StartedAtNs  int64    `json:"started_at_ns"`
	FinishedAtNs *int64   `json:"finished_at_ns,omitempty"`
}

// RunRecord is the manifest entry for one reconciled record within a run:
// the derived camera placement and the canonical output paths per layer.
type RunRecord struct {
	RunID         string   `json:"run_id"`
	RecordID      string   `json:"record_id"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Z             float64  `json:"z"`
	Bearing       float64  `json:"bearing"`
	Outputs       []string `json:"outputs"`
	CompletedAtNs int64    `json:"completed_at_ns"`
}

// RunStore provides persistence for pipeline run manifests.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a RunStore over an open dataset database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db.DB}
}

// InsertRun creates a new run in status "running". If run.RunID is empty, a
// new UUID is generated.
func (s *RunStore) InsertRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.StartedAtNs == 0 {
		run.StartedAtNs = time.Now().UnixNano()
	}
	if run.Status == "" {
		run.Status = RunStatusRunning
	}

	layersJSON, err := json.Marshal(run.Layers)
	if err != nil {
		return fmt.Errorf("marshal layers: %w", err)
	}

	query := `
		INSERT INTO render_runs (
			run_id, origin_lat, origin_lon, origin_scale, layers_json,
			staging_root, output_dir, status, record_count, failure,
			started_at_ns, finished_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		run.RunID,
		run.OriginLat,
		run.OriginLon,
		run.OriginScale,
		string(layersJSON),
		run.StagingRoot,
		run.OutputDir,
		run.Status,
		run.RecordCount,
		nullString(run.Failure),
		run.StartedAtNs,
		nullInt64(run.FinishedAtNs),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// FinishRun marks a run completed or failed and records the final count.
func (s *RunStore) FinishRun(runID, status string, recordCount int, failure string) error {
	query := `
		UPDATE render_runs
		SET status = ?, record_count = ?, failure = ?, finished_at_ns = ?
		WHERE run_id = ?
	`

	res, err := s.db.Exec(query, status, recordCount, nullString(failure), time.Now().UnixNano(), runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("finish run %s: run not found", runID)
	}
	return nil
}

// InsertRunRecord stores the manifest row for one reconciled record.
func (s *RunStore) InsertRunRecord(rec *RunRecord) error {
	if rec.CompletedAtNs == 0 {
		rec.CompletedAtNs = time.Now().UnixNano()
	}

	outputsJSON, err := json.Marshal(rec.Outputs)
	if err != nil {
		return fmt.Errorf("marshal outputs: %w", err)
	}

	query := `
		INSERT INTO render_run_records (
			run_id, record_id, x, y, z, bearing, outputs_json, completed_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		rec.RunID,
		rec.RecordID,
		rec.X,
		rec.Y,
		rec.Z,
		rec.Bearing,
		string(outputsJSON),
		rec.CompletedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert run record %s/%s: %w", rec.RunID, rec.RecordID, err)
	}

	return nil
}

// GetRun retrieves one run by ID.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	query := `
		SELECT run_id, origin_lat, origin_lon, origin_scale, layers_json,
		       staging_root, output_dir, status, record_count, failure,
		       started_at_ns, finished_at_ns
		FROM render_runs
		WHERE run_id = ?
	`

	var run Run
	var layersJSON string
	var failure sql.NullString
	var finishedAtNs sql.NullInt64

	err := s.db.QueryRow(query, runID).Scan(
		&run.RunID,
		&run.OriginLat,
		&run.OriginLon,
		&run.OriginScale,
		&layersJSON,
		&run.StagingRoot,
		&run.OutputDir,
		&run.Status,
		&run.RecordCount,
		&failure,
		&run.StartedAtNs,
		&finishedAtNs,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}

	if err := json.Unmarshal([]byte(layersJSON), &run.Layers); err != nil {
		return nil, fmt.Errorf("unmarshal layers for run %s: %w", runID, err)
	}
	if failure.Valid {
		run.Failure = failure.String
	}
	if finishedAtNs.Valid {
		v := finishedAtNs.Int64
		run.FinishedAtNs = &v
	}

	return &run, nil
}

// ListRuns returns all runs, most recent first.
func (s *RunStore) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id FROM render_runs ORDER BY started_at_ns DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.GetRun(id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

// ListRunRecords returns the per-record manifest rows of a run, ordered
// by record ID.
func (s *RunStore) ListRunRecords(runID string) ([]RunRecord, error) {
	query := `
		SELECT run_id, record_id, x, y, z, bearing, outputs_json, completed_at_ns
		FROM render_run_records
		WHERE run_id = ?
		ORDER BY record_id
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("list run records for %s: %w", runID, err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var outputsJSON string
		if err := rows.Scan(&rec.RunID, &rec.RecordID, &rec.X, &rec.Y, &rec.Z, &rec.Bearing, &outputsJSON, &rec.CompletedAtNs); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		if err := json.Unmarshal([]byte(outputsJSON), &rec.Outputs); err != nil {
			return nil, fmt.Errorf("unmarshal outputs for %s/%s: %w", rec.RunID, rec.RecordID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
