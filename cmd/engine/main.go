package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dtremaine/readypoint/internal/fusion"
	"github.com/dtremaine/readypoint/internal/gate"
	"github.com/dtremaine/readypoint/internal/journal"
	"github.com/dtremaine/readypoint/internal/logging"
	"github.com/dtremaine/readypoint/internal/mind"
	"github.com/dtremaine/readypoint/internal/protocol"
	"github.com/dtremaine/readypoint/internal/replay"
	"github.com/dtremaine/readypoint/internal/report"
	"github.com/dtremaine/readypoint/internal/sleep"
	"github.com/dtremaine/readypoint/internal/state"
	"github.com/dtremaine/readypoint/internal/trend"
)

// #region config
type processConfig struct {
	DBPath      string  `env:"READYPOINT_DB" envDefault:"readypoint.db"`
	LexiconPath string  `env:"READYPOINT_LEXICON"`
	RestingHR   float64 `env:"READYPOINT_RESTING_HR" envDefault:"60"`
	HRVBaseline float64 `env:"READYPOINT_HRV_BASELINE" envDefault:"65"`
	ReactionMs  float64 `env:"READYPOINT_REACTION_MS" envDefault:"250"`
	SleepNeed   float64 `env:"READYPOINT_SLEEP_NEED" envDefault:"8"`
}

// #endregion config

// #region main
func main() {
	var pc processConfig
	if err := env.Parse(&pc); err != nil {
		log.Fatalf("parse env config: %v", err)
	}

	store, err := state.NewStore(pc.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	// Ensure an initial snapshot exists.
	_, err = store.GetCurrent()
	if err != nil {
		log.Println("No active snapshot found, creating initial snapshot...")
		if _, err = store.CreateInitialSnapshot(); err != nil {
			log.Fatalf("failed to create initial snapshot: %v", err)
		}
	}

	cfg := replay.DefaultConfig()
	if pc.LexiconPath != "" {
		lex, err := journal.LoadLexicon(pc.LexiconPath)
		if err != nil {
			log.Fatalf("failed to load lexicon: %v", err)
		}
		cfg.Lexicon = lex
		log.Printf("lexicon %s loaded from %s", lex.Version, pc.LexiconPath)
	}

	base := state.Baseline{
		RestingHR:      pc.RestingHR,
		HRVBaseline:    pc.HRVBaseline,
		ReactionTimeMs: pc.ReactionMs,
		SleepNeedHours: pc.SleepNeed,
	}

	gateInst := gate.NewGate(gate.DefaultRules(cfg.Gate))
	trendCfg := trend.DefaultConfig()

	fmt.Println("Readypoint engine ready.")
	fmt.Printf("  DB: %s\n", pc.DBPath)
	fmt.Println("Paste an observation as one JSON line (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		var fo replay.FixtureObservation
		if err := json.Unmarshal([]byte(line), &fo); err != nil {
			log.Printf("bad observation: %v", err)
			continue
		}
		obs := fo.ToObservation(time.Now().UTC())

		current, err := store.GetCurrent()
		if err != nil {
			log.Printf("error getting current snapshot: %v", err)
			continue
		}

		mindRes := mind.Evaluate(mind.Input{
			Stress:         obs.Stress,
			Mood:           obs.Mood,
			Focus:          obs.Focus,
			ReactionTimeMs: obs.ReactionTimeMs,
			ImpulseControl: obs.ImpulseControl,
			MemorySpan:     obs.MemorySpan,
		}, base, cfg.Mind)
		sleepRes := sleep.Evaluate(obs.Sleep, base, cfg.Sleep)

		inputs := fusion.Inputs{
			Stress:        obs.Stress,
			Mood:          obs.Mood,
			CognitiveLoad: obs.CognitiveLoad,
		}
		if obs.Sleep.HRV > 0 {
			inputs.HRV = obs.Sleep.HRV
			inputs.HasHRV = true
		}
		if obs.JournalText != "" {
			a := journal.Analyze(obs.JournalText, cfg.Lexicon, cfg.Journal)
			inputs.Journal = &a
			if err := store.AppendJournalEntry(a.Sentiment, a.Confidence, time.Now()); err != nil {
				log.Printf("journal log error: %v", err)
			}
		}

		result := fusion.Evaluate(current, inputs, base, cfg.Fusion)

		if err := store.CommitSnapshot(result.NewSnapshot); err != nil {
			log.Printf("commit error: %v", err)
			continue
		}

		inputsJSON, _ := json.Marshal(fo)
		err = logging.LogDecision(store.DB(), logging.ProvenanceEntry{
			VersionID:  result.NewSnapshot.VersionID,
			Trigger:    "observation",
			InputsJSON: string(inputsJSON),
			Decision:   result.Decision.Action,
			Reason:     result.Decision.Reason,
			Readiness:  result.NewSnapshot.Readiness,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			log.Printf("logging error: %v", err)
		}

		if err := store.AppendScore("readiness", float64(result.NewSnapshot.Readiness), time.Now()); err != nil {
			log.Printf("score history error: %v", err)
		}

		decision := gateInst.AvailableProtocols(result.NewSnapshot.Vector, obs.Context, protocol.CatalogIDs(), time.Now().UTC())

		reasons := append([]string{}, mindRes.Reasons...)
		reasons = append(reasons, sleepRes.Reasons...)
		fmt.Printf("\n%s", report.Render(result.NewSnapshot, reasons, mindRes.Protocol, decision.Available))

		if history, err := store.RecentScores("readiness", trendCfg.WindowSize); err == nil && len(history) >= 2 {
			traj := trend.Analyze(history, "readiness", time.Now().UTC(), trendCfg)
			for _, alert := range traj.Alerts {
				fmt.Printf("alert: %s\n", alert)
			}
		}
		fmt.Println()
	}
}

// #endregion main
