package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	version_id   TEXT PRIMARY KEY,
	parent_id    TEXT,
	vector_json  TEXT NOT NULL,
	readiness    INTEGER NOT NULL,
	created_at   TEXT NOT NULL,
	metrics_json TEXT,
	FOREIGN KEY (parent_id) REFERENCES snapshots(version_id)
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id  TEXT NOT NULL,
	trigger_type TEXT NOT NULL,
	inputs_json TEXT,
	decision    TEXT NOT NULL,
	reason      TEXT,
	readiness   INTEGER NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES snapshots(version_id)
);

CREATE TABLE IF NOT EXISTS score_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	metric      TEXT NOT NULL,
	score       REAL NOT NULL,
	recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journal_entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	sentiment  TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS active_snapshot (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	version_id TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES snapshots(version_id)
);
`

// #endregion schema

// #region store-struct
// Store manages versioned snapshots and score history in SQLite. The engine
// packages never import it; persistence of the "current" vector between
// evaluations is the caller's responsibility.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region create-initial
// CreateInitialSnapshot creates a neutral initial snapshot: mid-scale inputs,
// zero derived fields, stable resilience.
func (s *Store) CreateInitialSnapshot() (SnapshotRecord, error) {
	rec := SnapshotRecord{
		VersionID: uuid.New().String(),
		Vector: StateVector{
			Stress:        5,
			Mood:          5,
			CognitiveLoad: 5,
			Resilience:    ResilienceStable,
		},
		Readiness: 80,
		CreatedAt: time.Now().UTC(),
	}

	vecJSON, err := json.Marshal(rec.Vector)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("marshal vector: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshots (version_id, parent_id, vector_json, readiness, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.VersionID, nil, string(vecJSON), rec.Readiness, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("insert snapshot: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO active_snapshot (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		rec.VersionID,
	)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SnapshotRecord{}, fmt.Errorf("commit: %w", err)
	}

	return rec, nil
}

// #endregion create-initial

// #region get-current
// GetCurrent reads the active snapshot.
func (s *Store) GetCurrent() (SnapshotRecord, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_snapshot WHERE id = 1`).Scan(&versionID)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("get active: %w", err)
	}
	return s.GetVersion(versionID)
}

// #endregion get-current

// #region get-version
// GetVersion retrieves a specific snapshot by ID.
func (s *Store) GetVersion(id string) (SnapshotRecord, error) {
	var rec SnapshotRecord
	var parentID sql.NullString
	var vecJSON string
	var createdStr string
	var metricsJSON sql.NullString

	err := s.db.QueryRow(
		`SELECT version_id, parent_id, vector_json, readiness, created_at, metrics_json
		 FROM snapshots WHERE version_id = ?`, id,
	).Scan(&rec.VersionID, &parentID, &vecJSON, &rec.Readiness, &createdStr, &metricsJSON)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}

	if parentID.Valid {
		rec.ParentID = parentID.String
	}
	if err := json.Unmarshal([]byte(vecJSON), &rec.Vector); err != nil {
		return SnapshotRecord{}, fmt.Errorf("unmarshal vector: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if metricsJSON.Valid {
		rec.MetricsJSON = metricsJSON.String
	}

	return rec, nil
}

// #endregion get-version

// #region commit-snapshot
// CommitSnapshot inserts a new snapshot and updates the active pointer
// atomically.
func (s *Store) CommitSnapshot(rec SnapshotRecord) error {
	vecJSON, err := json.Marshal(rec.Vector)
	if err != nil {
		return fmt.Errorf("marshal vector: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var parentPtr interface{}
	if rec.ParentID != "" {
		parentPtr = rec.ParentID
	}

	var metricsPtr interface{}
	if rec.MetricsJSON != "" {
		metricsPtr = rec.MetricsJSON
	}

	_, err = tx.Exec(
		`INSERT INTO snapshots (version_id, parent_id, vector_json, readiness, created_at, metrics_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.VersionID, parentPtr, string(vecJSON), rec.Readiness,
		rec.CreatedAt.Format(time.RFC3339Nano), metricsPtr,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE active_snapshot SET version_id = ? WHERE id = 1`, rec.VersionID,
	)
	if err != nil {
		return fmt.Errorf("update active: %w", err)
	}

	return tx.Commit()
}

// #endregion commit-snapshot

// #region rollback
// Rollback sets the active pointer to a previous snapshot.
func (s *Store) Rollback(targetVersionID string) error {
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM snapshots WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check snapshot: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("snapshot %s not found", targetVersionID)
	}

	_, err = s.db.Exec(`UPDATE active_snapshot SET version_id = ? WHERE id = 1`, targetVersionID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// #endregion rollback

// #region list-snapshots
// ListSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListSnapshots(limit int) ([]SnapshotRecord, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, vector_json, readiness, created_at, metrics_json
		 FROM snapshots ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		var parentID sql.NullString
		var vecJSON string
		var createdStr string
		var metricsJSON sql.NullString

		if err := rows.Scan(&rec.VersionID, &parentID, &vecJSON, &rec.Readiness, &createdStr, &metricsJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parentID.Valid {
			rec.ParentID = parentID.String
		}
		if err := json.Unmarshal([]byte(vecJSON), &rec.Vector); err != nil {
			return nil, fmt.Errorf("unmarshal vector: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		if metricsJSON.Valid {
			rec.MetricsJSON = metricsJSON.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-snapshots

// #region list-with-provenance
// ListSnapshotsWithProvenance joins snapshots to their most recent provenance
// row, newest first.
func (s *Store) ListSnapshotsWithProvenance(limit int) ([]SnapshotWithProvenance, error) {
	rows, err := s.db.Query(
		`SELECT s.version_id, s.parent_id, s.vector_json, s.readiness, s.created_at,
		        COALESCE(p.decision, ''), COALESCE(p.reason, ''), COALESCE(p.inputs_json, '')
		 FROM snapshots s
		 LEFT JOIN provenance_log p ON p.version_id = s.version_id
		 ORDER BY s.created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list with provenance: %w", err)
	}
	defer rows.Close()

	var records []SnapshotWithProvenance
	for rows.Next() {
		var rec SnapshotWithProvenance
		var parentID sql.NullString
		var vecJSON string
		var createdStr string

		if err := rows.Scan(&rec.VersionID, &parentID, &vecJSON, &rec.Readiness, &createdStr,
			&rec.Decision, &rec.Reason, &rec.InputsJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parentID.Valid {
			rec.ParentID = parentID.String
		}
		if err := json.Unmarshal([]byte(vecJSON), &rec.Vector); err != nil {
			return nil, fmt.Errorf("unmarshal vector: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-with-provenance

// #region score-history
// AppendScore adds one sample to the rolling score history for a metric.
func (s *Store) AppendScore(metric string, score float64, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO score_history (metric, score, recorded_at) VALUES (?, ?, ?)`,
		metric, score, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append score: %w", err)
	}
	return nil
}

// RecentScores returns up to limit samples for a metric, oldest first, ready
// to feed the trajectory analyzer.
func (s *Store) RecentScores(metric string, limit int) ([]float64, error) {
	rows, err := s.db.Query(
		`SELECT score FROM (
			SELECT score, recorded_at FROM score_history
			WHERE metric = ? ORDER BY recorded_at DESC LIMIT ?
		 ) ORDER BY recorded_at ASC`, metric, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent scores: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, v)
	}
	return scores, rows.Err()
}

// #endregion score-history

// #region journal-log
// AppendJournalEntry records the classified outcome of a journal analysis.
// Raw text is deliberately not persisted.
func (s *Store) AppendJournalEntry(sentiment Sentiment, confidence float64, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO journal_entries (sentiment, confidence, created_at) VALUES (?, ?, ?)`,
		string(sentiment), confidence, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// #endregion journal-log
