package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region types
// ProvenanceEntry links a snapshot version to the inputs and decision that
// produced it.
type ProvenanceEntry struct {
	VersionID  string
	Trigger    string // "observation" | "replay"
	InputsJSON string
	Decision   string // "commit" | "eval_rollback"
	Reason     string
	Readiness  int
	CreatedAt  time.Time
}

// #endregion types

// #region log-decision
// LogDecision writes a provenance entry to the provenance_log table.
func LogDecision(db *sql.DB, entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (version_id, trigger_type, inputs_json, decision, reason, readiness, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.VersionID,
		entry.Trigger,
		nullIfEmpty(entry.InputsJSON),
		entry.Decision,
		nullIfEmpty(entry.Reason),
		entry.Readiness,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
