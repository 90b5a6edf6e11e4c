package fusion

import (
	"fmt"
	"math"
	"time"

	"github.com/dtremaine/readypoint/internal/journal"
	"github.com/dtremaine/readypoint/internal/profile"
	"github.com/dtremaine/readypoint/internal/state"
	"github.com/google/uuid"
)

// #region inputs
// Inputs bundles the raw observations for one fusion pass. HRV and Journal
// are optional; documented fallback formulas apply when absent.
type Inputs struct {
	Stress        float64
	Mood          float64
	CognitiveLoad float64

	HRV    float64
	HasHRV bool

	Journal *journal.Analysis

	TestType  string
	TestGrade string
	TestDelta float64
}

// #endregion inputs

// #region config
// Config holds every named constant of the fusion pass.
type Config struct {
	HRVZDivisor     float64 // z = (hrv - baseline) / this
	HRVZGain        float64
	HRVBlendWeight  float64 // share of the HRV-derived signal
	StressBlendWeight float64
	StressProxyGain float64 // stress-derived signal gain when HRV is present
	StressOnlyGain  float64 // fallback gain when HRV is absent

	CogLoadGate     float64 // cognitive load above this pushes sympathetic
	CogLoadPush     float64
	MoodBufferGate  float64 // mood above this buffers
	MoodBuffer      float64

	ValencePivot    float64
	ValenceGain     float64
	DefusionGain    float64
	CatastropheGain float64

	RisingMoodGate   float64
	RisingStressGate float64
	DecliningStressGate float64

	ReadinessBase     float64
	BalanceGain       float64
	MoodHighGate      float64
	MoodHighBonus     float64
	MoodLowGate       float64
	MoodLowPenalty    float64
	StressHighGate    float64
	StressHighPenalty float64
	StressLowGate     float64
	StressLowBonus    float64
	CogLoadPenalty    float64
	ReadinessMin      int
	ReadinessMax      int
}

// DefaultConfig returns the standard fusion constants.
func DefaultConfig() Config {
	return Config{
		HRVZDivisor:       10,
		HRVZGain:          3,
		HRVBlendWeight:    0.7,
		StressBlendWeight: 0.3,
		StressProxyGain:   5,
		StressOnlyGain:    8,

		CogLoadGate:    8,
		CogLoadPush:    2,
		MoodBufferGate: 8,
		MoodBuffer:     1,

		ValencePivot:    5,
		ValenceGain:     2,
		DefusionGain:    0.5,
		CatastropheGain: 0.5,

		RisingMoodGate:      7,
		RisingStressGate:    4,
		DecliningStressGate: 8,

		ReadinessBase:     80,
		BalanceGain:       1.5,
		MoodHighGate:      7,
		MoodHighBonus:     5,
		MoodLowGate:       4,
		MoodLowPenalty:    10,
		StressHighGate:    7,
		StressHighPenalty: 15,
		StressLowGate:     3,
		StressLowBonus:    5,
		CogLoadPenalty:    10,
		ReadinessMin:      10,
		ReadinessMax:      100,
	}
}

// #endregion config

// #region evaluate-vector
// EvaluateStateVector is the pure fusion transform: it derives autonomic
// balance, emotional valence, and the resilience category from the inputs and
// returns a fresh vector. The input vector is never mutated; state age resets
// to 0.
func EvaluateStateVector(current state.StateVector, in Inputs, base state.Baseline, cfg Config) state.StateVector {
	v := current
	v.Stress = in.Stress
	v.Mood = in.Mood
	v.CognitiveLoad = in.CognitiveLoad

	// Autonomic balance: blend an HRV z-score signal with the subjective
	// stress proxy; stress-only fallback when no reading exists.
	var balance float64
	stressSignal := (cfg.ValencePivot - in.Stress) / cfg.ValencePivot
	if in.HasHRV && base.HRVBaseline > 0 {
		z := (in.HRV - base.HRVBaseline) / cfg.HRVZDivisor
		balance = cfg.HRVBlendWeight*(z*cfg.HRVZGain) + cfg.StressBlendWeight*(stressSignal*cfg.StressProxyGain)
	} else {
		balance = stressSignal * cfg.StressOnlyGain
	}
	if in.CognitiveLoad > cfg.CogLoadGate {
		balance -= cfg.CogLoadPush
	}
	if in.Mood > cfg.MoodBufferGate {
		balance += cfg.MoodBuffer
	}
	v.AutonomicBalance = clamp(balance, -10, 10)

	// Emotional valence from mood, adjusted by journal signals when present.
	valence := (in.Mood - cfg.ValencePivot) * cfg.ValenceGain
	if in.Journal != nil {
		valence += in.Journal.Flexibility.Defusion * cfg.DefusionGain
		valence -= in.Journal.Risk.Catastrophizing * cfg.CatastropheGain
		v.JournalConfidence = in.Journal.Confidence
		v.LastJournalSentiment = in.Journal.Sentiment
	}
	v.EmotionalValence = clamp(valence, -10, 10)

	switch {
	case in.Mood > cfg.RisingMoodGate && in.Stress < cfg.RisingStressGate:
		v.Resilience = state.ResilienceRising
	case in.Stress > cfg.DecliningStressGate:
		v.Resilience = state.ResilienceDeclining
	default:
		v.Resilience = state.ResilienceStable
	}

	if in.TestType != "" {
		v.LastTestType = in.TestType
		v.LastTestGrade = in.TestGrade
		v.LastTestDelta = in.TestDelta
	}

	v.StateAgeMinutes = 0
	return v
}

// #endregion evaluate-vector

// #region readiness
// CalculateReadiness collapses a vector into the 10-100 composite readiness
// score.
func CalculateReadiness(v state.StateVector, cfg Config) int {
	r := cfg.ReadinessBase + v.AutonomicBalance*cfg.BalanceGain
	if v.Mood > cfg.MoodHighGate {
		r += cfg.MoodHighBonus
	} else if v.Mood < cfg.MoodLowGate {
		r -= cfg.MoodLowPenalty
	}
	if v.Stress > cfg.StressHighGate {
		r -= cfg.StressHighPenalty
	} else if v.Stress < cfg.StressLowGate {
		r += cfg.StressLowBonus
	}
	if v.CognitiveLoad > cfg.CogLoadGate {
		r -= cfg.CogLoadPenalty
	}
	return clampInt(int(math.Round(r)), cfg.ReadinessMin, cfg.ReadinessMax)
}

// #endregion readiness

// #region composite
// CompositeScore blends the per-domain scores with profile-adaptive weights.
// Each score is on a 0-100 scale; callers pass a neutral value for domains
// without a fresh observation.
func CompositeScore(w profile.Weights, sleepScore, hrvScore, recoveryScore, mindScore, fuelScore float64) float64 {
	return w.Sleep*sleepScore + w.HRV*hrvScore + w.Recovery*recoveryScore +
		w.Mind*mindScore + w.Fuel*fuelScore
}

// #endregion composite

// #region evaluate
// Decision records what the fusion pass decided.
type Decision struct {
	Action string // "commit"
	Reason string
}

// Result bundles the minted snapshot with the decision metadata.
type Result struct {
	NewSnapshot state.SnapshotRecord
	Decision    Decision
}

// Evaluate runs the fusion transform against the current snapshot and mints a
// new versioned snapshot.
func Evaluate(current state.SnapshotRecord, in Inputs, base state.Baseline, cfg Config) Result {
	vec := EvaluateStateVector(current.Vector, in, base, cfg)
	readiness := CalculateReadiness(vec, cfg)

	rec := state.SnapshotRecord{
		VersionID: uuid.New().String(),
		ParentID:  current.VersionID,
		Vector:    vec,
		Readiness: readiness,
		CreatedAt: time.Now().UTC(),
	}

	return Result{
		NewSnapshot: rec,
		Decision: Decision{
			Action: "commit",
			Reason: fmt.Sprintf("readiness %d (was %d), balance %.1f, %s",
				readiness, current.Readiness, vec.AutonomicBalance, vec.Resilience),
		},
	}
}

// #endregion evaluate

// #region helpers
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
