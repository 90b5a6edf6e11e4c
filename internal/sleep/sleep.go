package sleep

import (
	"fmt"
	"math"

	"github.com/dtremaine/readypoint/internal/state"
)

// #region input
// Input bundles one night's sleep and morning readings.
type Input struct {
	DurationHours float64
	Efficiency    float64 // percent of time in bed asleep
	HRV           float64 // morning reading, 0 = none
	RestingHR     float64 // morning reading, 0 = none
	WakeHour      float64 // habitual wake time as hour-of-day, e.g. 6.5
}

// #endregion input

// #region config
// Config holds every named threshold of the sleep scorer.
type Config struct {
	CriticalDebtRatio   float64 // duration/need below this is critical debt
	CriticalDebtScale   float64 // sleepFactor multiplier in the debt branch
	CriticalDebtPenalty float64

	EfficiencyFloor   float64
	EfficiencyPenalty float64

	HRVHighRatio   float64 // bonus curve above this
	HRVLowRatio    float64 // steep drop below this
	HRVHighBase    float64
	HRVHighSlope   float64
	HRVMidBase     float64
	HRVMidSlope    float64
	HRVLowBase     float64
	HRVLowSlope    float64
	HRVLowPenalty  float64

	AcuteDropRatio   float64 // instantaneous drop triggering acute overload
	AcuteDropPenalty float64

	RestingHRMinorDelta   float64
	RestingHRMinorPenalty float64
	RestingHRMajorDelta   float64
	RestingHRMajorPenalty float64
}

// DefaultConfig returns the standard sleep-scorer thresholds.
func DefaultConfig() Config {
	return Config{
		CriticalDebtRatio:   0.75,
		CriticalDebtScale:   0.8,
		CriticalDebtPenalty: 25,

		EfficiencyFloor:   80,
		EfficiencyPenalty: 15,

		HRVHighRatio:  1.05,
		HRVLowRatio:   0.85,
		HRVHighBase:   85,
		HRVHighSlope:  50,
		HRVMidBase:    70,
		HRVMidSlope:   75,
		HRVLowBase:    70,
		HRVLowSlope:   200,
		HRVLowPenalty: 20,

		AcuteDropRatio:   0.20,
		AcuteDropPenalty: 40,

		RestingHRMinorDelta:   5,
		RestingHRMinorPenalty: 5,
		RestingHRMajorDelta:   10,
		RestingHRMajorPenalty: 15,
	}
}

// #endregion config

// #region result
// Result is the sleep domain score output.
type Result struct {
	SleepFactor        float64 // 0-100
	HRVFactor          float64 // 0-100
	Penalty            float64
	Reasons            []string
	HygieneAction      string
	RecommendedBedtime float64 // hour-of-day, 24h wraparound applied
	IsAcuteOverload    bool
}

// #endregion result

// #region evaluate
// Evaluate converts sleep and HRV readings plus the user baseline into sleep
// and recovery factors with a penalty breakdown. Pure: no input is mutated.
func Evaluate(in Input, base state.Baseline, cfg Config) Result {
	var res Result

	// Sleep duration versus need.
	ratio := 1.0
	if base.SleepNeedHours > 0 {
		ratio = in.DurationHours / base.SleepNeedHours
	}
	res.SleepFactor = math.Min(100, ratio*100)
	if ratio < cfg.CriticalDebtRatio {
		res.SleepFactor *= cfg.CriticalDebtScale
		res.Penalty += cfg.CriticalDebtPenalty
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("critical sleep debt: %.1fh of %.1fh needed", in.DurationHours, base.SleepNeedHours))
	}

	if in.Efficiency > 0 && in.Efficiency < cfg.EfficiencyFloor {
		res.Penalty += cfg.EfficiencyPenalty
		res.Reasons = append(res.Reasons, fmt.Sprintf("sleep efficiency low (%.0f%%)", in.Efficiency))
		res.HygieneAction = "review sleep hygiene: consistent schedule, dark room, no screens before bed"
	}

	// Smoothed HRV factor: piecewise on current/baseline ratio. The branches
	// are continuous at both boundaries: 70 at the low boundary, 85 at the
	// high boundary.
	res.HRVFactor = cfg.HRVMidBase
	if in.HRV > 0 && base.HRVBaseline > 0 {
		hr := in.HRV / base.HRVBaseline
		switch {
		case hr > cfg.HRVHighRatio:
			res.HRVFactor = cfg.HRVHighBase + (hr-cfg.HRVHighRatio)*cfg.HRVHighSlope
		case hr < cfg.HRVLowRatio:
			res.HRVFactor = math.Max(0, cfg.HRVLowBase-(cfg.HRVLowRatio-hr)*cfg.HRVLowSlope)
			res.Penalty += cfg.HRVLowPenalty
			res.Reasons = append(res.Reasons, fmt.Sprintf("HRV suppressed: %.0f%% of baseline", hr*100))
		default:
			res.HRVFactor = cfg.HRVMidBase + (hr-cfg.HRVLowRatio)*cfg.HRVMidSlope
		}

		// Acute crash: instantaneous drop, independent of the smoothed factor.
		drop := (base.HRVBaseline - in.HRV) / base.HRVBaseline
		if drop >= cfg.AcuteDropRatio {
			res.Penalty += cfg.AcuteDropPenalty
			res.IsAcuteOverload = true
			res.Reasons = append(res.Reasons, fmt.Sprintf("acute HRV crash: %.0f%% overnight drop", drop*100))
		}
	}

	// Resting HR tiering: the major tier replaces the minor one.
	if in.RestingHR > 0 && base.RestingHR > 0 {
		over := in.RestingHR - base.RestingHR
		switch {
		case over >= cfg.RestingHRMajorDelta:
			res.Penalty += cfg.RestingHRMajorPenalty
			res.Reasons = append(res.Reasons, fmt.Sprintf("resting HR +%.0fbpm over baseline", over))
		case over >= cfg.RestingHRMinorDelta:
			res.Penalty += cfg.RestingHRMinorPenalty
			res.Reasons = append(res.Reasons, fmt.Sprintf("resting HR +%.0fbpm over baseline", over))
		}
	}

	res.RecommendedBedtime = bedtime(in.WakeHour, base.SleepNeedHours)

	return res
}

// #endregion evaluate

// #region helpers
// bedtime is wake time minus sleep need on a 24h clock.
func bedtime(wakeHour, needHours float64) float64 {
	bt := wakeHour - needHours
	if bt < 0 {
		bt += 24
	}
	return bt
}

// #endregion helpers
