package eval

import (
	"strings"
	"testing"

	"github.com/dtremaine/readypoint/internal/profile"
	"github.com/dtremaine/readypoint/internal/state"
)

func validSnapshot() state.SnapshotRecord {
	return state.SnapshotRecord{
		VersionID: "v1",
		Vector: state.StateVector{
			Stress: 5, Mood: 5, CognitiveLoad: 5,
			AutonomicBalance: 2.1,
			EmotionalValence: -1.5,
			Resilience:       state.ResilienceStable,
		},
		Readiness: 83,
	}
}

func validWeights() profile.Weights {
	return profile.Weights{Sleep: 0.30, HRV: 0.30, Recovery: 0.20, Mind: 0.10, Fuel: 0.10}
}

func TestRunPassesOnValidSnapshot(t *testing.T) {
	res := NewHarness(DefaultConfig()).Run(validSnapshot(), validWeights())

	if !res.Passed {
		t.Fatalf("expected a pass, got: %s", res.Reason)
	}
	if res.Reason != "all checks passed" {
		t.Errorf("unexpected reason: %q", res.Reason)
	}
	if len(res.Metrics) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(res.Metrics))
	}
	for _, m := range res.Metrics {
		if !m.Pass {
			t.Errorf("metric %s failed on a valid snapshot", m.Name)
		}
	}
}

func TestRunFailsOnBalanceOutOfBounds(t *testing.T) {
	snap := validSnapshot()
	snap.Vector.AutonomicBalance = 12.5

	res := NewHarness(DefaultConfig()).Run(snap, validWeights())
	if res.Passed {
		t.Fatal("expected a failure")
	}
	if !strings.Contains(res.Reason, "autonomic balance") {
		t.Errorf("expected a balance reason, got %q", res.Reason)
	}
}

func TestRunFailsOnValenceOutOfBounds(t *testing.T) {
	snap := validSnapshot()
	snap.Vector.EmotionalValence = -11

	res := NewHarness(DefaultConfig()).Run(snap, validWeights())
	if res.Passed {
		t.Fatal("expected a failure")
	}
	if !strings.Contains(res.Reason, "emotional valence") {
		t.Errorf("expected a valence reason, got %q", res.Reason)
	}
}

func TestRunFailsOnReadinessOutOfRange(t *testing.T) {
	for _, readiness := range []int{5, 105} {
		snap := validSnapshot()
		snap.Readiness = readiness

		res := NewHarness(DefaultConfig()).Run(snap, validWeights())
		if res.Passed {
			t.Errorf("expected a failure at readiness %d", readiness)
		}
	}
}

func TestRunFailsOnWeightSumDrift(t *testing.T) {
	w := validWeights()
	w.Fuel = 0.20 // sum 1.1

	res := NewHarness(DefaultConfig()).Run(validSnapshot(), w)
	if res.Passed {
		t.Fatal("expected a failure")
	}
	if !strings.Contains(res.Reason, "weight sum") {
		t.Errorf("expected a weight-sum reason, got %q", res.Reason)
	}
}

func TestRunFailsOnStaleStateAge(t *testing.T) {
	snap := validSnapshot()
	snap.Vector.StateAgeMinutes = 30

	res := NewHarness(DefaultConfig()).Run(snap, validWeights())
	if res.Passed {
		t.Fatal("expected a failure")
	}
	if !strings.Contains(res.Reason, "state age") {
		t.Errorf("expected a state-age reason, got %q", res.Reason)
	}
}

func TestRunReportsMultipleFailures(t *testing.T) {
	snap := validSnapshot()
	snap.Vector.AutonomicBalance = 15
	snap.Readiness = 0

	res := NewHarness(DefaultConfig()).Run(snap, validWeights())
	if res.Passed {
		t.Fatal("expected a failure")
	}
	if !strings.Contains(res.Reason, "2 checks") {
		t.Errorf("expected the failure count in the reason, got %q", res.Reason)
	}
}
