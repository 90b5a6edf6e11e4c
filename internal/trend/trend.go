package trend

import (
	"fmt"
	"math"
	"time"
)

// #region config
// Config holds the analyzer's named thresholds.
type Config struct {
	WindowSize int // samples kept in the reported series

	SlopeRising    float64 // velocity above this is rising
	SlopeDeclining float64 // velocity below this is declining

	// Breakdown risk is an ad-hoc additive heuristic kept for behavioral
	// parity: 0.4 for a steep decline plus 0.3 for high volatility. The sum
	// is its own cap; no upper clamp is applied.
	DeclineRiskVelocity float64
	DeclineRiskWeight   float64
	VolatilityRiskFloor float64
	VolatilityRiskWeight float64
	BreakdownRiskGate   float64 // risk above this predicts a breakdown date
	BreakdownHorizon    time.Duration
	PredictionConfidence float64 // fixed constant, not a computed value
}

// DefaultConfig returns the standard trajectory thresholds.
func DefaultConfig() Config {
	return Config{
		WindowSize: 7,

		SlopeRising:    0.5,
		SlopeDeclining: -0.5,

		DeclineRiskVelocity:  2,
		DeclineRiskWeight:    0.4,
		VolatilityRiskFloor:  10,
		VolatilityRiskWeight: 0.3,
		BreakdownRiskGate:    0.7,
		BreakdownHorizon:     4 * 24 * time.Hour,
		PredictionConfidence: 0.6,
	}
}

// #endregion config

// #region result-types
// Direction is the coarse trend class.
type Direction string

const (
	DirectionRising    Direction = "rising"
	DirectionStable    Direction = "stable"
	DirectionDeclining Direction = "declining"
)

// Trend holds regression and volatility statistics over a score series.
type Trend struct {
	Direction    Direction `json:"direction"`
	Velocity     float64   `json:"velocity"`     // OLS slope per sample
	Acceleration float64   `json:"acceleration"` // reserved, always 0
	Volatility   float64   `json:"volatility"`   // coefficient of variation, percent
}

// Predictions carries the breakdown-risk heuristic output.
type Predictions struct {
	BreakdownRisk float64    `json:"breakdown_risk"`
	BreakdownDate *time.Time `json:"breakdown_date,omitempty"`
	Confidence    float64    `json:"confidence"`
}

// Sample is one graded score in the reported series.
type Sample struct {
	Score float64 `json:"score"`
	Grade string  `json:"grade"`
}

// Result is the full trajectory analysis output.
type Result struct {
	Samples     []Sample    `json:"samples"`
	Trend       Trend       `json:"trend"`
	Predictions Predictions `json:"predictions"`
	Alerts      []string    `json:"alerts"`
}

// #endregion result-types

// #region calculate-trend
// CalculateTrend fits ordinary least squares of score against sample index
// (not elapsed time) and computes the coefficient of variation. Fewer than
// two samples is stable with zero velocity and volatility.
func CalculateTrend(scores []float64, cfg Config) Trend {
	if len(scores) < 2 {
		return Trend{Direction: DirectionStable}
	}

	n := float64(len(scores))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	var slope float64
	denom := n*sumXX - sumX*sumX
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}

	direction := DirectionStable
	if slope > cfg.SlopeRising {
		direction = DirectionRising
	} else if slope < cfg.SlopeDeclining {
		direction = DirectionDeclining
	}

	mean := sumY / n
	volatility := 0.0
	if mean != 0 {
		var variance float64
		for _, y := range scores {
			d := y - mean
			variance += d * d
		}
		variance /= n
		volatility = math.Sqrt(variance) / mean * 100
	}

	return Trend{
		Direction:  direction,
		Velocity:   slope,
		Volatility: volatility,
	}
}

// #endregion calculate-trend

// #region analyze
// Analyze produces the full trajectory result: the graded sample window,
// trend statistics, breakdown prediction, and alerts.
func Analyze(scores []float64, metric string, now time.Time, cfg Config) Result {
	t := CalculateTrend(scores, cfg)

	window := scores
	if len(window) > cfg.WindowSize {
		window = window[len(window)-cfg.WindowSize:]
	}
	samples := make([]Sample, len(window))
	for i, s := range window {
		samples[i] = Sample{Score: s, Grade: GradeSample(metric, s)}
	}

	var risk float64
	var alerts []string
	if t.Direction == DirectionDeclining && math.Abs(t.Velocity) > cfg.DeclineRiskVelocity {
		risk += cfg.DeclineRiskWeight
		alerts = append(alerts, fmt.Sprintf("declining sharply: %.1f per sample", t.Velocity))
	}
	if t.Volatility > cfg.VolatilityRiskFloor {
		risk += cfg.VolatilityRiskWeight
		alerts = append(alerts, fmt.Sprintf("high volatility: cv %.1f%%", t.Volatility))
	}

	pred := Predictions{
		BreakdownRisk: risk,
		Confidence:    cfg.PredictionConfidence,
	}
	if risk > cfg.BreakdownRiskGate {
		d := now.Add(cfg.BreakdownHorizon)
		pred.BreakdownDate = &d
		alerts = append(alerts, "breakdown risk elevated")
	}

	return Result{
		Samples:     samples,
		Trend:       t,
		Predictions: pred,
		Alerts:      alerts,
	}
}

// #endregion analyze
