package mind

import "github.com/dtremaine/readypoint/internal/protocol"

// #region focus-quality
// FocusQuality is the self-reported attention pattern.
type FocusQuality string

const (
	FocusScattered FocusQuality = "scattered"
	FocusTunnel    FocusQuality = "tunnel"
	FocusFlow      FocusQuality = "flow"
	FocusNeutral   FocusQuality = "neutral"
)

// #endregion focus-quality

// #region input
// Input bundles the raw mind-state observations for one evaluation.
type Input struct {
	Stress         float64      // 0-10 slider
	Mood           float64      // 0-10 slider
	Focus          FocusQuality
	ReactionTimeMs float64 // latest measured reaction time, 0 = no test
	ImpulseControl float64 // 0-100, 0 = no test
	MemorySpan     float64 // digit span, 0 = no test
}

// #endregion input

// #region config
// Config holds every named threshold of the mind scorer.
type Config struct {
	StressQuadThreshold float64 // stress above this uses the quadratic penalty
	StressQuadOffset    float64 // subtracted before squaring
	StressQuadFactor    float64
	StressLinearFactor  float64

	MoodPivot  float64 // below: penalty, above: offset
	MoodFactor float64

	ScatteredStressGate    float64 // stress above this makes scattered worse
	ScatteredHighPenalty   float64
	ScatteredLowPenalty    float64
	TunnelStressGate       float64
	TunnelPenalty          float64
	FlowBonus              float64

	RTSevereDeltaMs   float64
	RTModerateDeltaMs float64
	RTPrimedDeltaMs   float64 // negative: faster than baseline
	RTSeverePenalty   float64
	RTModeratePenalty float64
	RTPrimedBonus     float64

	ImpulseFloor   float64
	ImpulsePenalty float64

	RegulationStressGate float64 // stress above this forces the regulation protocol
	MemorySpanFloor      float64 // below: buffer-clearing protocol
	LowScoreFloor        float64 // below: general preparation protocol
}

// DefaultConfig returns the standard mind-scorer thresholds.
func DefaultConfig() Config {
	return Config{
		StressQuadThreshold: 6,
		StressQuadOffset:    4,
		StressQuadFactor:    1.5,
		StressLinearFactor:  3,

		MoodPivot:  5,
		MoodFactor: 3,

		ScatteredStressGate:  5,
		ScatteredHighPenalty: 15,
		ScatteredLowPenalty:  8,
		TunnelStressGate:     6,
		TunnelPenalty:        10,
		FlowBonus:            5,

		RTSevereDeltaMs:   100,
		RTModerateDeltaMs: 50,
		RTPrimedDeltaMs:   -20,
		RTSeverePenalty:   25,
		RTModeratePenalty: 10,
		RTPrimedBonus:     5,

		ImpulseFloor:   50,
		ImpulsePenalty: 10,

		RegulationStressGate: 7,
		MemorySpanFloor:      5,
		LowScoreFloor:        60,
	}
}

// #endregion config

// #region penalty
// Penalty is one named component of the total penalty.
type Penalty struct {
	Name  string
	Value float64 // negative values are offsets
}

// #endregion penalty

// #region result
// ScoreResult is the mind-state domain score output.
type ScoreResult struct {
	Score     int // 1-100
	Penalties []Penalty
	Reasons   []string
	Protocol  protocol.ID // "" when nothing is recommended
}

// #endregion result
