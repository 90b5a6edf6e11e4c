package report

import (
	"strings"
	"testing"

	"github.com/dtremaine/readypoint/internal/protocol"
	"github.com/dtremaine/readypoint/internal/state"
)

func TestRenderFullBlock(t *testing.T) {
	snap := state.SnapshotRecord{
		Vector: state.StateVector{
			AutonomicBalance: -3.2,
			EmotionalValence: 1.5,
			Resilience:       state.ResilienceDeclining,
		},
		Readiness: 49,
	}

	out := Render(snap,
		[]string{"critical sleep debt: 4.0h of 8.0h needed"},
		protocol.BoxBreathing,
		[]protocol.ID{protocol.BoxBreathing, protocol.NSDRLite})

	for _, want := range []string{
		"[READINESS] 49/100",
		"balance -3.2",
		"valence +1.5",
		"resilience declining",
		"- critical sleep debt",
		"recommended: box_breathing",
		"available: box_breathing, nsdr_lite",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	snap := state.SnapshotRecord{
		Vector:    state.StateVector{Resilience: state.ResilienceStable},
		Readiness: 80,
	}

	out := Render(snap, nil, "", nil)

	for _, absent := range []string{"flags:", "recommended:", "available:"} {
		if strings.Contains(out, absent) {
			t.Errorf("did not expect %q in output:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, "[READINESS] 80/100") {
		t.Errorf("expected the readiness header:\n%s", out)
	}
}
