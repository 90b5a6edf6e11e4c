package gate

import (
	"time"

	"github.com/dtremaine/readypoint/internal/protocol"
	"github.com/dtremaine/readypoint/internal/state"
)

// #region rule
// Rule pairs a safety predicate with the protocol ids it withholds. Rules are
// cumulative and independent: the gate removes the union of all fired rules'
// sets, so rule order never changes the output, only the audit trail.
type Rule struct {
	Name    string
	When    func(v state.StateVector, ctx state.Context, now time.Time) bool
	Removes []protocol.ID
}

// #endregion rule

// #region config
// Config holds the gate's named thresholds.
type Config struct {
	EventImminentMin   float64       // under this many minutes to event: no tests, no NSDR
	EventSoonMin       float64       // under this: no memory test
	FailWindow         time.Duration // anti-spiral window after a failed test
	ShortSleepHours    float64
	StressCeiling      float64
}

// DefaultConfig returns the standard gate thresholds.
func DefaultConfig() Config {
	return Config{
		EventImminentMin: 20,
		EventSoonMin:     60,
		FailWindow:       5 * time.Minute,
		ShortSleepHours:  5,
		StressCeiling:    9,
	}
}

// #endregion config

// #region rules
// DefaultRules returns the ordered safety rule table.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		{
			Name: "event_imminent",
			When: func(v state.StateVector, ctx state.Context, now time.Time) bool {
				return ctx.TimeUntilEventMin >= 0 && ctx.TimeUntilEventMin < cfg.EventImminentMin
			},
			Removes: []protocol.ID{protocol.ReactionTest, protocol.MemoryTest, protocol.FocusTest, protocol.NSDRLite},
		},
		{
			Name: "event_soon",
			When: func(v state.StateVector, ctx state.Context, now time.Time) bool {
				return ctx.TimeUntilEventMin >= cfg.EventImminentMin && ctx.TimeUntilEventMin < cfg.EventSoonMin
			},
			Removes: []protocol.ID{protocol.MemoryTest},
		},
		{
			// Anti-spiral: a fresh failing grade must not be chased with
			// another test.
			Name: "post_failure",
			When: func(v state.StateVector, ctx state.Context, now time.Time) bool {
				return ctx.RecentTest != nil && ctx.RecentTest.Grade == "F" &&
					now.Sub(ctx.RecentTest.Timestamp) <= cfg.FailWindow
			},
			Removes: []protocol.ID{protocol.ReactionTest, protocol.MemoryTest, protocol.FocusTest},
		},
		{
			Name: "short_sleep",
			When: func(v state.StateVector, ctx state.Context, now time.Time) bool {
				return ctx.SleepHours > 0 && ctx.SleepHours < cfg.ShortSleepHours
			},
			Removes: []protocol.ID{protocol.MemoryTest, protocol.FocusTest},
		},
		{
			Name: "high_stress",
			When: func(v state.StateVector, ctx state.Context, now time.Time) bool {
				return v.Stress > cfg.StressCeiling
			},
			Removes: []protocol.ID{protocol.ReactionTest, protocol.MemoryTest, protocol.FocusTest, protocol.SuperVentilation},
		},
	}
}

// #endregion rules

// #region decision
// Decision is the gate output: the surviving catalog ids plus which rules
// fired, for auditability.
type Decision struct {
	Available []protocol.ID
	Fired     []string
}

// #endregion decision

// #region gate
// Gate filters the protocol catalog given state and context.
type Gate struct {
	rules []Rule
}

// NewGate creates a gate with the given rule table.
func NewGate(rules []Rule) *Gate {
	return &Gate{rules: rules}
}

// AvailableProtocols applies every rule and returns the catalog minus the
// union of triggered removal sets, preserving catalog order. Monotone:
// tightening context can only shrink the result.
func (g *Gate) AvailableProtocols(v state.StateVector, ctx state.Context, catalog []protocol.ID, now time.Time) Decision {
	removed := map[protocol.ID]bool{}
	var fired []string

	for _, r := range g.rules {
		if r.When(v, ctx, now) {
			fired = append(fired, r.Name)
			for _, id := range r.Removes {
				removed[id] = true
			}
		}
	}

	available := make([]protocol.ID, 0, len(catalog))
	for _, id := range catalog {
		if !removed[id] {
			available = append(available, id)
		}
	}

	return Decision{Available: available, Fired: fired}
}

// #endregion gate
