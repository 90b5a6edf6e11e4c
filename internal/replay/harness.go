package replay

import (
	"time"

	"github.com/dtremaine/readypoint/internal/eval"
	"github.com/dtremaine/readypoint/internal/fusion"
	"github.com/dtremaine/readypoint/internal/gate"
	"github.com/dtremaine/readypoint/internal/journal"
	"github.com/dtremaine/readypoint/internal/mind"
	"github.com/dtremaine/readypoint/internal/profile"
	"github.com/dtremaine/readypoint/internal/protocol"
	"github.com/dtremaine/readypoint/internal/sleep"
	"github.com/dtremaine/readypoint/internal/state"
)

// #region types
// Observation is one recorded day of raw inputs for replay.
type Observation struct {
	DayID string

	Stress        float64
	Mood          float64
	CognitiveLoad float64
	Focus         mind.FocusQuality

	ReactionTimeMs float64
	ImpulseControl float64
	MemorySpan     float64

	Sleep       sleep.Input
	JournalText string
	Context     state.Context
}

// Config bundles every stage config for a replay run.
type Config struct {
	Mind    mind.Config
	Sleep   sleep.Config
	Journal journal.Config
	Lexicon journal.Lexicon
	Fusion  fusion.Config
	Gate    gate.Config
	Eval    eval.Config
	Profile profile.Config
}

// DefaultConfig returns defaults for every pipeline stage.
func DefaultConfig() Config {
	return Config{
		Mind:    mind.DefaultConfig(),
		Sleep:   sleep.DefaultConfig(),
		Journal: journal.DefaultConfig(),
		Lexicon: journal.DefaultLexicon(),
		Fusion:  fusion.DefaultConfig(),
		Gate:    gate.DefaultConfig(),
		Eval:    eval.DefaultConfig(),
		Profile: profile.DefaultConfig(),
	}
}

// Result captures the outcome of replaying one observation through the full
// pipeline.
type Result struct {
	DayID  string
	Action string // "commit" | "eval_rollback"
	Reason string

	MindResult  mind.ScoreResult
	SleepResult sleep.Result
	Readiness   int
	Available   []protocol.ID

	EvalResult eval.Result

	// Final snapshot after this day (equals the previous one on rollback).
	FinalVersionID string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalDays     int
	Commits       int
	EvalRollbacks int
	FinalState    state.SnapshotRecord
}

// #endregion types

// #region replay
// Replay iterates through recorded observations, applying the full pipeline
// per day: scorers → fusion → eval → gate. Operates entirely in memory; the
// pipeline stages are pure, so a replay of the same fixture is always
// byte-identical apart from minted version ids and timestamps.
func Replay(start state.SnapshotRecord, base state.Baseline, prof profile.Profile, observations []Observation, cfg Config) ([]Result, state.SnapshotRecord) {
	current := start
	results := make([]Result, 0, len(observations))

	weights := profile.CalculateWeights(prof, cfg.Profile)
	gateInst := gate.NewGate(gate.DefaultRules(cfg.Gate))
	harness := eval.NewHarness(cfg.Eval)
	now := time.Now().UTC()

	for _, obs := range observations {
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
		}

		fusionRes := fusion.Evaluate(current, inputs, base, cfg.Fusion)

		evalRes := harness.Run(fusionRes.NewSnapshot, weights)
		if !evalRes.Passed {
			results = append(results, Result{
				DayID:          obs.DayID,
				Action:         "eval_rollback",
				Reason:         evalRes.Reason,
				MindResult:     mindRes,
				SleepResult:    sleepRes,
				Readiness:      current.Readiness,
				EvalResult:     evalRes,
				FinalVersionID: current.VersionID,
			})
			continue
		}

		current = fusionRes.NewSnapshot
		decision := gateInst.AvailableProtocols(current.Vector, obs.Context, protocol.CatalogIDs(), now)

		results = append(results, Result{
			DayID:          obs.DayID,
			Action:         "commit",
			Reason:         fusionRes.Decision.Reason,
			MindResult:     mindRes,
			SleepResult:    sleepRes,
			Readiness:      current.Readiness,
			Available:      decision.Available,
			EvalResult:     evalRes,
			FinalVersionID: current.VersionID,
		})
	}

	return results, current
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result, finalState state.SnapshotRecord) Summary {
	s := Summary{
		TotalDays:  len(results),
		FinalState: finalState,
	}
	for _, r := range results {
		switch r.Action {
		case "commit":
			s.Commits++
		case "eval_rollback":
			s.EvalRollbacks++
		}
	}
	return s
}

// #endregion replay
