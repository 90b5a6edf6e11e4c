package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dtremaine/readypoint/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to readypoint.db")
	last := flag.Int("last", 20, "show N most recent snapshots")
	version := flag.String("version", "", "show single snapshot detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/readypoint.db [--last N] [--version id] [--json]")
		os.Exit(2)
	}

	store, err := state.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *version != "" {
		if err := runDetailMode(store, *version, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	VersionID  string  `json:"version_id"`
	Readiness  int     `json:"readiness"`
	Stress     float64 `json:"stress"`
	Mood       float64 `json:"mood"`
	Balance    float64 `json:"autonomic_balance"`
	Resilience string  `json:"resilience"`
	Decision   string  `json:"decision,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func runListMode(store *state.Store, last int, jsonOut bool) error {
	versions, err := store.ListSnapshotsWithProvenance(last)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Fprintln(os.Stderr, "no snapshots found")
		return nil
	}

	// Store returns DESC, reverse for chronological display.
	rows := make([]listRow, len(versions))
	for i, vp := range versions {
		rows[len(versions)-1-i] = listRow{
			VersionID:  vp.VersionID,
			Readiness:  vp.Readiness,
			Stress:     vp.Vector.Stress,
			Mood:       vp.Vector.Mood,
			Balance:    vp.Vector.AutonomicBalance,
			Resilience: string(vp.Vector.Resilience),
			Decision:   vp.Decision,
			Reason:     vp.Reason,
			CreatedAt:  vp.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-36s %5s %6s %5s %7s %-10s %-8s %s\n",
		"VERSION", "READY", "STRESS", "MOOD", "BALANCE", "RESILIENCE", "DECISION", "CREATED")
	for _, r := range rows {
		fmt.Printf("%-36s %5d %6.1f %5.1f %+7.1f %-10s %-8s %s\n",
			r.VersionID, r.Readiness, r.Stress, r.Mood, r.Balance, r.Resilience, r.Decision, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(store *state.Store, versionID string, jsonOut bool) error {
	rec, err := store.GetVersion(versionID)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Printf("version:    %s\n", rec.VersionID)
	fmt.Printf("parent:     %s\n", rec.ParentID)
	fmt.Printf("readiness:  %d\n", rec.Readiness)
	fmt.Printf("created:    %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("stress:     %.1f\n", rec.Vector.Stress)
	fmt.Printf("mood:       %.1f\n", rec.Vector.Mood)
	fmt.Printf("cog load:   %.1f\n", rec.Vector.CognitiveLoad)
	fmt.Printf("balance:    %+.2f\n", rec.Vector.AutonomicBalance)
	fmt.Printf("valence:    %+.2f\n", rec.Vector.EmotionalValence)
	fmt.Printf("resilience: %s\n", rec.Vector.Resilience)
	if rec.Vector.LastTestType != "" {
		fmt.Printf("last test:  %s grade=%s delta=%.0f\n",
			rec.Vector.LastTestType, rec.Vector.LastTestGrade, rec.Vector.LastTestDelta)
	}
	if rec.Vector.LastJournalSentiment != "" {
		fmt.Printf("journal:    %s (confidence %.2f)\n",
			rec.Vector.LastJournalSentiment, rec.Vector.JournalConfidence)
	}
	return nil
}

// #endregion detail-mode
