package state

import "time"

// #region resilience
// ResilienceState is the coarse categorical trajectory of a user's capacity
// to absorb load.
type ResilienceState string

const (
	ResilienceRising    ResilienceState = "rising"
	ResilienceStable    ResilienceState = "stable"
	ResilienceDeclining ResilienceState = "declining"
)

// #endregion resilience

// #region sentiment
// Sentiment is the three-way journal sentiment class.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// #endregion sentiment

// #region state-vector
// StateVector is the current snapshot of a user's psychophysiological
// signals. Inputs (stress, mood, cognitive load) are 0-10 sliders; derived
// fields are clamped to [-10, 10]. A vector is immutable per evaluation:
// fusion returns a fresh copy and resets StateAgeMinutes to 0.
type StateVector struct {
	Stress        float64 `json:"stress"`
	Mood          float64 `json:"mood"`
	CognitiveLoad float64 `json:"cognitive_load"`

	AutonomicBalance float64         `json:"autonomic_balance"` // sympathetic -10 .. +10 parasympathetic
	EmotionalValence float64         `json:"emotional_valence"` // [-10, 10]
	Resilience       ResilienceState `json:"resilience_state"`

	LastTestType  string  `json:"last_test_type,omitempty"`
	LastTestGrade string  `json:"last_test_grade,omitempty"`
	LastTestDelta float64 `json:"last_test_delta,omitempty"`

	JournalConfidence    float64   `json:"journal_confidence"` // 0-1
	LastJournalSentiment Sentiment `json:"last_journal_sentiment,omitempty"`

	StateAgeMinutes float64 `json:"state_age_minutes"`
}

// #endregion state-vector

// #region baseline
// Baseline holds per-user reference constants used to normalize raw
// readings into relative deltas and ratios. Immutable within a single
// evaluation call.
type Baseline struct {
	RestingHR      float64 `json:"resting_hr"`
	HRVBaseline    float64 `json:"hrv_baseline"`
	ReactionTimeMs float64 `json:"reaction_time"`
	SleepNeedHours float64 `json:"sleep_need"`
}

// #endregion baseline

// #region context
// TestResult is a discrete cognitive test outcome.
type TestResult struct {
	Grade     string    `json:"grade"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Context carries the temporal/safety context consumed only by the protocol
// gate. TimeUntilEventMin is negative when no event is scheduled.
type Context struct {
	TimeUntilEventMin float64     `json:"time_until_event"`
	RecentTest        *TestResult `json:"recent_test_result,omitempty"`
	SleepHours        float64     `json:"sleep_hours"`
	FatigueLevel      float64     `json:"fatigue_level"`
}

// #endregion context

// #region snapshot-record
// SnapshotRecord is a versioned, persisted state vector snapshot.
type SnapshotRecord struct {
	VersionID   string
	ParentID    string
	Vector      StateVector
	Readiness   int
	CreatedAt   time.Time
	MetricsJSON string
}

// #endregion snapshot-record

// #region score-sample
// ScoreSample is one entry in the rolling score history for a metric.
type ScoreSample struct {
	Metric     string
	Score      float64
	RecordedAt time.Time
}

// #endregion score-sample

// #region snapshot-with-provenance
// SnapshotWithProvenance pairs a snapshot with its provenance row fields.
type SnapshotWithProvenance struct {
	SnapshotRecord
	Decision   string
	Reason     string
	InputsJSON string
}

// #endregion snapshot-with-provenance
