package sleep

import (
	"math"
	"testing"

	"github.com/dtremaine/readypoint/internal/state"
)

func testBaseline() state.Baseline {
	return state.Baseline{
		RestingHR:      60,
		HRVBaseline:    65,
		ReactionTimeMs: 250,
		SleepNeedHours: 8,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestEvaluateRoughNight(t *testing.T) {
	// 4h of 8h needed → ratio 0.5, sleepFactor 50*0.8 = 40, +25.
	// Efficiency 60 → +15 and a hygiene action.
	// HRV 45.5 vs 65 → ratio 0.70 → factor 70-(0.15)*200 = 40, +20.
	// Overnight drop 30% ≥ 20% → +40, acute overload.
	res := Evaluate(Input{
		DurationHours: 4,
		Efficiency:    60,
		HRV:           45.5,
		WakeHour:      6,
	}, testBaseline(), DefaultConfig())

	if !approx(res.SleepFactor, 40) {
		t.Errorf("expected sleep factor 40, got %.2f", res.SleepFactor)
	}
	if !approx(res.HRVFactor, 40) {
		t.Errorf("expected HRV factor 40, got %.2f", res.HRVFactor)
	}
	if !approx(res.Penalty, 100) {
		t.Errorf("expected penalty 100, got %.2f", res.Penalty)
	}
	if !res.IsAcuteOverload {
		t.Error("expected acute overload flag")
	}
	if res.HygieneAction == "" {
		t.Error("expected a hygiene action for low efficiency")
	}
	if len(res.Reasons) != 4 {
		t.Errorf("expected 4 reasons, got %v", res.Reasons)
	}
}

func TestEvaluateGoodNight(t *testing.T) {
	res := Evaluate(Input{
		DurationHours: 8,
		Efficiency:    94,
		HRV:           68,
		RestingHR:     58,
		WakeHour:      6,
	}, testBaseline(), DefaultConfig())

	if res.Penalty != 0 {
		t.Errorf("expected zero penalty, got %.2f (%v)", res.Penalty, res.Reasons)
	}
	if res.IsAcuteOverload {
		t.Error("did not expect acute overload")
	}
	if !approx(res.SleepFactor, 100) {
		t.Errorf("expected sleep factor 100, got %.2f", res.SleepFactor)
	}
}

func TestHRVFactorContinuousAtLowBoundary(t *testing.T) {
	base := state.Baseline{HRVBaseline: 100, SleepNeedHours: 8}
	cfg := DefaultConfig()

	// Exactly at the boundary the mid branch yields 70; a hair below, the low
	// branch yields 70 - 0.2 = 69.8. No jump.
	at := Evaluate(Input{DurationHours: 8, HRV: 85}, base, cfg)
	below := Evaluate(Input{DurationHours: 8, HRV: 84.9}, base, cfg)

	if !approx(at.HRVFactor, 70) {
		t.Errorf("expected 70 at the boundary, got %.3f", at.HRVFactor)
	}
	if !approx(below.HRVFactor, 69.8) {
		t.Errorf("expected 69.8 just below, got %.3f", below.HRVFactor)
	}
}

func TestHRVFactorContinuousAtHighBoundary(t *testing.T) {
	base := state.Baseline{HRVBaseline: 100, SleepNeedHours: 8}
	cfg := DefaultConfig()

	// Mid branch tops out at 70 + 0.2*75 = 85; the high branch starts there.
	at := Evaluate(Input{DurationHours: 8, HRV: 105}, base, cfg)
	above := Evaluate(Input{DurationHours: 8, HRV: 106}, base, cfg)

	if !approx(at.HRVFactor, 85) {
		t.Errorf("expected 85 at the boundary, got %.3f", at.HRVFactor)
	}
	if !approx(above.HRVFactor, 85.5) {
		t.Errorf("expected 85.5 just above, got %.3f", above.HRVFactor)
	}
}

func TestAcuteOverloadRequiresTwentyPercentDrop(t *testing.T) {
	base := state.Baseline{HRVBaseline: 100, SleepNeedHours: 8}
	cfg := DefaultConfig()

	// 16% drop: suppressed HRV penalty but no acute flag.
	mild := Evaluate(Input{DurationHours: 8, HRV: 84}, base, cfg)
	if mild.IsAcuteOverload {
		t.Error("16%% drop should not be acute")
	}
	if !approx(mild.Penalty, 20) {
		t.Errorf("expected only the suppressed-HRV penalty, got %.2f", mild.Penalty)
	}

	// 21% drop: both penalties stack.
	crash := Evaluate(Input{DurationHours: 8, HRV: 79}, base, cfg)
	if !crash.IsAcuteOverload {
		t.Error("21%% drop should be acute")
	}
	if !approx(crash.Penalty, 60) {
		t.Errorf("expected 20+40 penalty, got %.2f", crash.Penalty)
	}
}

func TestRestingHRMajorTierReplacesMinor(t *testing.T) {
	cfg := DefaultConfig()
	base := testBaseline()

	minor := Evaluate(Input{DurationHours: 8, RestingHR: 66}, base, cfg)
	major := Evaluate(Input{DurationHours: 8, RestingHR: 72}, base, cfg)
	normal := Evaluate(Input{DurationHours: 8, RestingHR: 64}, base, cfg)

	if !approx(minor.Penalty, 5) {
		t.Errorf("expected minor penalty 5, got %.2f", minor.Penalty)
	}
	// +12bpm crosses the major tier: 15, not 5+15.
	if !approx(major.Penalty, 15) {
		t.Errorf("expected major penalty 15, got %.2f", major.Penalty)
	}
	if !approx(normal.Penalty, 0) {
		t.Errorf("expected no penalty at +4bpm, got %.2f", normal.Penalty)
	}
}

func TestSleepFactorCapsAtHundred(t *testing.T) {
	// Oversleeping is not extra credit.
	res := Evaluate(Input{DurationHours: 9.5}, testBaseline(), DefaultConfig())
	if !approx(res.SleepFactor, 100) {
		t.Fatalf("expected 100, got %.2f", res.SleepFactor)
	}
}

func TestEvaluateZeroBaselinesAreNeutral(t *testing.T) {
	// Missing need and HRV baseline must not divide by zero or penalize.
	res := Evaluate(Input{DurationHours: 6, HRV: 50}, state.Baseline{}, DefaultConfig())
	if res.Penalty != 0 {
		t.Errorf("expected no penalty without baselines, got %.2f (%v)", res.Penalty, res.Reasons)
	}
	if !approx(res.HRVFactor, 70) {
		t.Errorf("expected neutral HRV factor 70, got %.2f", res.HRVFactor)
	}
}

func TestRecommendedBedtimeWrapsMidnight(t *testing.T) {
	cfg := DefaultConfig()
	base := testBaseline()

	early := Evaluate(Input{DurationHours: 8, WakeHour: 6}, base, cfg)
	if !approx(early.RecommendedBedtime, 22) {
		t.Errorf("expected bedtime 22, got %.1f", early.RecommendedBedtime)
	}

	late := Evaluate(Input{DurationHours: 8, WakeHour: 23}, base, cfg)
	if !approx(late.RecommendedBedtime, 15) {
		t.Errorf("expected bedtime 15, got %.1f", late.RecommendedBedtime)
	}
}
