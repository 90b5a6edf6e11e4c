package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dtremaine/readypoint/internal/mind"
	"github.com/dtremaine/readypoint/internal/profile"
	"github.com/dtremaine/readypoint/internal/sleep"
	"github.com/dtremaine/readypoint/internal/state"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	StartState      FixtureStartState       `json:"start_state"`
	Baseline        state.Baseline          `json:"baseline"`
	Profile         profile.Profile         `json:"profile"`
	Observations    []FixtureObservation    `json:"observations"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureStartState is the JSON-serializable initial snapshot.
type FixtureStartState struct {
	VersionID string            `json:"version_id"`
	Vector    state.StateVector `json:"vector"`
	Readiness int               `json:"readiness"`
}

// FixtureSleep mirrors sleep.Input with JSON tags.
type FixtureSleep struct {
	DurationHours float64 `json:"duration_hours"`
	Efficiency    float64 `json:"efficiency"`
	HRV           float64 `json:"hrv"`
	RestingHR     float64 `json:"resting_hr"`
	WakeHour      float64 `json:"wake_hour"`
}

// FixtureContext mirrors state.Context with flattened test fields.
type FixtureContext struct {
	TimeUntilEventMin float64 `json:"time_until_event"`
	RecentTestGrade   string  `json:"recent_test_grade,omitempty"`
	RecentTestType    string  `json:"recent_test_type,omitempty"`
	RecentTestAgeSec  float64 `json:"recent_test_age_sec,omitempty"`
	SleepHours        float64 `json:"sleep_hours"`
	FatigueLevel      float64 `json:"fatigue_level"`
}

// FixtureObservation mirrors replay.Observation with JSON tags.
type FixtureObservation struct {
	DayID          string         `json:"day_id"`
	Stress         float64        `json:"stress"`
	Mood           float64        `json:"mood"`
	CognitiveLoad  float64        `json:"cognitive_load"`
	Focus          string         `json:"focus"`
	ReactionTimeMs float64        `json:"reaction_time_ms"`
	ImpulseControl float64        `json:"impulse_control"`
	MemorySpan     float64        `json:"memory_span"`
	Sleep          FixtureSleep   `json:"sleep"`
	Journal        string         `json:"journal"`
	Context        FixtureContext `json:"context"`
}

// FixtureExpectedResult captures the expected outcome per day.
type FixtureExpectedResult struct {
	DayID     string `json:"day_id"`
	Action    string `json:"action"`
	Readiness *int   `json:"readiness,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToSnapshot converts a FixtureStartState to a domain SnapshotRecord.
func (s *FixtureStartState) ToSnapshot() state.SnapshotRecord {
	return state.SnapshotRecord{
		VersionID: s.VersionID,
		Vector:    s.Vector,
		Readiness: s.Readiness,
	}
}

// ToObservation converts a FixtureObservation to a domain Observation. Test
// ages are relative to now so the anti-spiral window behaves the same on
// every run.
func (fo *FixtureObservation) ToObservation(now time.Time) Observation {
	obs := Observation{
		DayID:          fo.DayID,
		Stress:         fo.Stress,
		Mood:           fo.Mood,
		CognitiveLoad:  fo.CognitiveLoad,
		Focus:          mind.FocusQuality(fo.Focus),
		ReactionTimeMs: fo.ReactionTimeMs,
		ImpulseControl: fo.ImpulseControl,
		MemorySpan:     fo.MemorySpan,
		Sleep: sleep.Input{
			DurationHours: fo.Sleep.DurationHours,
			Efficiency:    fo.Sleep.Efficiency,
			HRV:           fo.Sleep.HRV,
			RestingHR:     fo.Sleep.RestingHR,
			WakeHour:      fo.Sleep.WakeHour,
		},
		JournalText: fo.Journal,
		Context: state.Context{
			TimeUntilEventMin: fo.Context.TimeUntilEventMin,
			SleepHours:        fo.Context.SleepHours,
			FatigueLevel:      fo.Context.FatigueLevel,
		},
	}
	if fo.Context.RecentTestGrade != "" {
		obs.Context.RecentTest = &state.TestResult{
			Grade:     fo.Context.RecentTestGrade,
			Type:      fo.Context.RecentTestType,
			Timestamp: now.Add(-time.Duration(fo.Context.RecentTestAgeSec) * time.Second),
		}
	}
	return obs
}

// #endregion fixture-loader
