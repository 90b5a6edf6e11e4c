package report

import (
	"fmt"
	"strings"

	"github.com/dtremaine/readypoint/internal/protocol"
	"github.com/dtremaine/readypoint/internal/state"
)

// #region render
// Render builds the dashboard text block for one evaluation: readiness,
// derived state, reasons, and the protocols the gate left available. Empty
// sections are omitted.
func Render(snap state.SnapshotRecord, reasons []string, recommended protocol.ID, available []protocol.ID) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[READINESS] %d/100\n", snap.Readiness))
	b.WriteString(fmt.Sprintf("balance %+.1f | valence %+.1f | resilience %s\n",
		snap.Vector.AutonomicBalance, snap.Vector.EmotionalValence, snap.Vector.Resilience))

	if len(reasons) > 0 {
		b.WriteString("flags:\n")
		for _, r := range reasons {
			b.WriteString(fmt.Sprintf("- %s\n", r))
		}
	}

	if recommended != "" {
		b.WriteString(fmt.Sprintf("recommended: %s\n", recommended))
	}

	if len(available) > 0 {
		ids := make([]string, len(available))
		for i, id := range available {
			ids[i] = string(id)
		}
		b.WriteString(fmt.Sprintf("available: %s\n", strings.Join(ids, ", ")))
	}

	return b.String()
}

// #endregion render
