package mind

import (
	"fmt"
	"math"

	"github.com/dtremaine/readypoint/internal/protocol"
	"github.com/dtremaine/readypoint/internal/state"
)

// #region evaluate
// Evaluate converts raw mind-state observations plus the user baseline into a
// 0-100 domain score, a penalty breakdown, and a recommended protocol. Pure:
// no input is mutated.
func Evaluate(in Input, base state.Baseline, cfg Config) ScoreResult {
	var penalty float64
	var penalties []Penalty
	var reasons []string

	// Stress: quadratic above the threshold, linear below. Stress 8 with the
	// defaults contributes (8-4)^2 * 1.5 = 24.
	var stressPenalty float64
	if in.Stress > cfg.StressQuadThreshold {
		d := in.Stress - cfg.StressQuadOffset
		stressPenalty = d * d * cfg.StressQuadFactor
		reasons = append(reasons, fmt.Sprintf("stress elevated (%.0f/10)", in.Stress))
	} else {
		stressPenalty = (in.Stress - 1) * cfg.StressLinearFactor
	}
	penalty += stressPenalty
	penalties = append(penalties, Penalty{Name: "stress", Value: stressPenalty})

	// Mood can only offset accumulated penalty, never invert its sign.
	if in.Mood < cfg.MoodPivot {
		moodPenalty := (cfg.MoodPivot - in.Mood) * cfg.MoodFactor
		penalty += moodPenalty
		penalties = append(penalties, Penalty{Name: "mood", Value: moodPenalty})
		reasons = append(reasons, fmt.Sprintf("low mood (%.0f/10)", in.Mood))
	} else {
		offset := (in.Mood - cfg.MoodPivot) * cfg.MoodFactor
		before := penalty
		penalty = math.Max(0, penalty-offset)
		penalties = append(penalties, Penalty{Name: "mood", Value: penalty - before})
	}

	// Focus modifier, applied after stress/mood. Scattered focus interacts
	// with stress.
	switch in.Focus {
	case FocusScattered:
		p := cfg.ScatteredLowPenalty
		if in.Stress > cfg.ScatteredStressGate {
			p = cfg.ScatteredHighPenalty
		}
		penalty += p
		penalties = append(penalties, Penalty{Name: "focus_scattered", Value: p})
		reasons = append(reasons, "attention scattered")
	case FocusTunnel:
		if in.Stress > cfg.TunnelStressGate {
			penalty += cfg.TunnelPenalty
			penalties = append(penalties, Penalty{Name: "focus_tunnel", Value: cfg.TunnelPenalty})
			reasons = append(reasons, "tunnel vision under stress")
		}
	case FocusFlow:
		before := penalty
		penalty = math.Max(0, penalty-cfg.FlowBonus)
		penalties = append(penalties, Penalty{Name: "focus_flow", Value: penalty - before})
	}

	// Reaction-time banding versus baseline delta.
	if in.ReactionTimeMs > 0 && base.ReactionTimeMs > 0 {
		delta := in.ReactionTimeMs - base.ReactionTimeMs
		switch {
		case delta > cfg.RTSevereDeltaMs:
			penalty += cfg.RTSeverePenalty
			penalties = append(penalties, Penalty{Name: "reaction_severe", Value: cfg.RTSeverePenalty})
			reasons = append(reasons, fmt.Sprintf("reaction time severely degraded: +%.0fms vs baseline", delta))
		case delta > cfg.RTModerateDeltaMs:
			penalty += cfg.RTModeratePenalty
			penalties = append(penalties, Penalty{Name: "reaction_moderate", Value: cfg.RTModeratePenalty})
			reasons = append(reasons, fmt.Sprintf("reaction time moderately degraded: +%.0fms vs baseline", delta))
		case delta < cfg.RTPrimedDeltaMs:
			penalty -= cfg.RTPrimedBonus
			penalties = append(penalties, Penalty{Name: "reaction_primed", Value: -cfg.RTPrimedBonus})
			reasons = append(reasons, fmt.Sprintf("reaction time primed: %.0fms vs baseline", delta))
		}
	}

	// Impulse control.
	if in.ImpulseControl > 0 && in.ImpulseControl < cfg.ImpulseFloor {
		penalty += cfg.ImpulsePenalty
		penalties = append(penalties, Penalty{Name: "impulse_control", Value: cfg.ImpulsePenalty})
		reasons = append(reasons, fmt.Sprintf("impulse control below %.0f", cfg.ImpulseFloor))
	}

	score := clampInt(int(math.Round(100-penalty)), 1, 100)

	return ScoreResult{
		Score:     score,
		Penalties: penalties,
		Reasons:   reasons,
		Protocol:  selectProtocol(in, base, score, cfg),
	}
}

// #endregion evaluate

// #region protocol-selection
// selectProtocol is an ordered first-match decision list; later rules are not
// evaluated once one fires.
func selectProtocol(in Input, base state.Baseline, score int, cfg Config) protocol.ID {
	if in.Stress > cfg.RegulationStressGate || (in.Focus == FocusScattered && in.Stress > cfg.ScatteredStressGate) {
		return protocol.BoxBreathing
	}
	if in.ReactionTimeMs > 0 && base.ReactionTimeMs > 0 &&
		in.ReactionTimeMs-base.ReactionTimeMs > cfg.RTModerateDeltaMs {
		return protocol.ActivationPrimer
	}
	if in.MemorySpan > 0 && in.MemorySpan < cfg.MemorySpanFloor {
		return protocol.BufferClear
	}
	if float64(score) < cfg.LowScoreFloor {
		return protocol.GeneralPrep
	}
	return ""
}

// #endregion protocol-selection

// #region helpers
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
