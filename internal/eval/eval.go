package eval

import (
	"fmt"
	"math"

	"github.com/dtremaine/readypoint/internal/profile"
	"github.com/dtremaine/readypoint/internal/state"
)

// #region config
// Config holds the invariant bounds checked after every fusion pass.
type Config struct {
	BalanceBound   float64 // |autonomic balance| must not exceed this
	ValenceBound   float64
	ReadinessMin   int
	ReadinessMax   int
	WeightSumEps   float64 // tolerance on the weight-sum invariant
}

// DefaultConfig returns the standard invariant bounds.
func DefaultConfig() Config {
	return Config{
		BalanceBound: 10,
		ValenceBound: 10,
		ReadinessMin: 10,
		ReadinessMax: 100,
		WeightSumEps: 1e-9,
	}
}

// #endregion config

// #region types
// Metric captures a single validation check result.
type Metric struct {
	Name  string
	Value float64
	Pass  bool
}

// Result is the output of post-fusion validation.
type Result struct {
	Passed  bool
	Metrics []Metric
	Reason  string
}

// #endregion types

// #region harness
// Harness runs lightweight post-fusion validation on a minted snapshot. A
// failure means a scorer or the fusion pass broke a clamping contract.
type Harness struct {
	config Config
}

// NewHarness creates an eval harness with the given configuration.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// Run checks the derived-range invariants on the snapshot and the weight-sum
// invariant on the weight map.
func (h *Harness) Run(snap state.SnapshotRecord, weights profile.Weights) Result {
	var metrics []Metric
	passed := true
	var failReasons []string

	check := func(name string, value float64, ok bool, msg string) {
		metrics = append(metrics, Metric{Name: name, Value: value, Pass: ok})
		if !ok {
			passed = false
			failReasons = append(failReasons, msg)
		}
	}

	b := snap.Vector.AutonomicBalance
	check("autonomic_balance", b, math.Abs(b) <= h.config.BalanceBound,
		fmt.Sprintf("autonomic balance %.4f outside ±%.0f", b, h.config.BalanceBound))

	ev := snap.Vector.EmotionalValence
	check("emotional_valence", ev, math.Abs(ev) <= h.config.ValenceBound,
		fmt.Sprintf("emotional valence %.4f outside ±%.0f", ev, h.config.ValenceBound))

	r := float64(snap.Readiness)
	check("readiness", r,
		snap.Readiness >= h.config.ReadinessMin && snap.Readiness <= h.config.ReadinessMax,
		fmt.Sprintf("readiness %d outside [%d, %d]", snap.Readiness, h.config.ReadinessMin, h.config.ReadinessMax))

	sum := weights.Sum()
	check("weight_sum", sum, math.Abs(sum-1.0) <= h.config.WeightSumEps,
		fmt.Sprintf("weight sum %.9f != 1.0", sum))

	age := snap.Vector.StateAgeMinutes
	check("state_age", age, age == 0,
		fmt.Sprintf("state age %.1f not reset on recompute", age))

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return Result{Passed: passed, Metrics: metrics, Reason: reason}
}

// #endregion harness
