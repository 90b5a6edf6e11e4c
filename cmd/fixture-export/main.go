package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dtremaine/readypoint/internal/replay"
	"github.com/dtremaine/readypoint/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

// fixture-export turns a recorded database into a replay fixture JSON so a
// captured week of observations can become a regression artifact.
func main() {
	dbPath := flag.String("db", "", "path to readypoint.db")
	out := flag.String("out", "", "output fixture path (default stdout)")
	description := flag.String("description", "exported from recorded history", "fixture description")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/readypoint.db [--out fixture.json]")
		os.Exit(2)
	}

	store, err := state.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fixture, err := export(store, *description)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal fixture: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d observations)\n", *out, len(fixture.Observations))
}

// #endregion main

// #region export

func export(store *state.Store, description string) (*replay.Fixture, error) {
	var initVersionID string
	err := store.DB().QueryRow(
		`SELECT version_id FROM snapshots WHERE parent_id IS NULL ORDER BY created_at ASC LIMIT 1`,
	).Scan(&initVersionID)
	if err != nil {
		return nil, fmt.Errorf("find initial snapshot: %w", err)
	}

	startState, err := store.GetVersion(initVersionID)
	if err != nil {
		return nil, fmt.Errorf("get initial snapshot: %w", err)
	}

	rows, err := store.DB().Query(
		`SELECT version_id, inputs_json, decision, readiness FROM provenance_log
		 WHERE trigger_type = 'observation' AND inputs_json IS NOT NULL
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query provenance: %w", err)
	}
	defer rows.Close()

	fixture := &replay.Fixture{
		Description: description,
		StartState: replay.FixtureStartState{
			VersionID: startState.VersionID,
			Vector:    startState.Vector,
			Readiness: startState.Readiness,
		},
	}

	for rows.Next() {
		var versionID, inputsJSON, decision string
		var readiness int
		if err := rows.Scan(&versionID, &inputsJSON, &decision, &readiness); err != nil {
			return nil, fmt.Errorf("scan provenance: %w", err)
		}
		var fo replay.FixtureObservation
		if err := json.Unmarshal([]byte(inputsJSON), &fo); err != nil {
			return nil, fmt.Errorf("parse inputs for %s: %w", versionID, err)
		}
		if fo.DayID == "" {
			fo.DayID = versionID
		}
		r := readiness
		fixture.Observations = append(fixture.Observations, fo)
		fixture.ExpectedResults = append(fixture.ExpectedResults, replay.FixtureExpectedResult{
			DayID:     fo.DayID,
			Action:    decision,
			Readiness: &r,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provenance: %w", err)
	}

	return fixture, nil
}

// #endregion export
