package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dtremaine/readypoint/internal/profile"
	"github.com/dtremaine/readypoint/internal/replay"
	"github.com/dtremaine/readypoint/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to readypoint.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/readypoint.db")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	now := time.Now().UTC()
	observations := make([]replay.Observation, len(f.Observations))
	for i := range f.Observations {
		observations[i] = f.Observations[i].ToObservation(now)
	}

	results, finalState := replay.Replay(
		f.StartState.ToSnapshot(), f.Baseline, f.Profile, observations, replay.DefaultConfig())

	if f.Description != "" {
		fmt.Printf("fixture: %s\n", f.Description)
	}

	mismatches := reportResults(results, f.ExpectedResults)
	printSummary(replay.Summarize(results, finalState))

	if mismatches > 0 {
		fmt.Fprintf(os.Stderr, "%d expectation mismatches\n", mismatches)
		return 1
	}
	return 0
}

// #endregion fixture-mode

// #region db-mode

// runDBMode rebuilds observations from the provenance log and replays them
// against the first recorded snapshot.
func runDBMode(dbPath string) int {
	store, err := state.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	var initVersionID string
	err = store.DB().QueryRow(
		`SELECT version_id FROM snapshots WHERE parent_id IS NULL ORDER BY created_at ASC LIMIT 1`,
	).Scan(&initVersionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "find initial snapshot: %v\n", err)
		return 2
	}

	startState, err := store.GetVersion(initVersionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get initial snapshot: %v\n", err)
		return 2
	}

	rows, err := store.DB().Query(
		`SELECT version_id, inputs_json FROM provenance_log
		 WHERE trigger_type = 'observation' AND inputs_json IS NOT NULL
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query provenance: %v\n", err)
		return 2
	}
	defer rows.Close()

	now := time.Now().UTC()
	var observations []replay.Observation
	for rows.Next() {
		var versionID, inputsJSON string
		if err := rows.Scan(&versionID, &inputsJSON); err != nil {
			fmt.Fprintf(os.Stderr, "scan provenance: %v\n", err)
			return 2
		}
		var fo replay.FixtureObservation
		if err := json.Unmarshal([]byte(inputsJSON), &fo); err != nil {
			fmt.Fprintf(os.Stderr, "parse inputs for %s: %v\n", versionID, err)
			continue
		}
		if fo.DayID == "" {
			fo.DayID = versionID
		}
		observations = append(observations, fo.ToObservation(now))
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "iterate provenance: %v\n", err)
		return 2
	}
	if len(observations) == 0 {
		fmt.Fprintln(os.Stderr, "no recorded observations to replay")
		return 2
	}

	results, finalState := replay.Replay(
		startState, state.Baseline{}, profile.Profile{}, observations, replay.DefaultConfig())

	reportResults(results, nil)
	printSummary(replay.Summarize(results, finalState))
	return 0
}

// #endregion db-mode

// #region output

func reportResults(results []replay.Result, expectedResults []replay.FixtureExpectedResult) int {
	expected := map[string]replay.FixtureExpectedResult{}
	for _, e := range expectedResults {
		expected[e.DayID] = e
	}

	mismatches := 0
	for _, r := range results {
		fmt.Printf("[%s] action=%s readiness=%d mind=%d sleep=%.0f\n",
			r.DayID, r.Action, r.Readiness, r.MindResult.Score, r.SleepResult.SleepFactor)

		e, ok := expected[r.DayID]
		if !ok {
			continue
		}
		if e.Action != "" && e.Action != r.Action {
			fmt.Printf("  MISMATCH: expected action %s\n", e.Action)
			mismatches++
		}
		if e.Readiness != nil && *e.Readiness != r.Readiness {
			fmt.Printf("  MISMATCH: expected readiness %d\n", *e.Readiness)
			mismatches++
		}
	}
	return mismatches
}

func printSummary(s replay.Summary) {
	fmt.Printf("\ndays=%d commits=%d rollbacks=%d final_readiness=%d\n",
		s.TotalDays, s.Commits, s.EvalRollbacks, s.FinalState.Readiness)
}

// #endregion output
