package profile

// #region profile-types
// TrainingLevel is the user's self-reported training background.
type TrainingLevel string

const (
	TrainingBeginner     TrainingLevel = "beginner"
	TrainingIntermediate TrainingLevel = "intermediate"
	TrainingAdvanced     TrainingLevel = "advanced"
	TrainingElite        TrainingLevel = "elite"
)

// SportType groups sports by their dominant physiological demand.
type SportType string

const (
	SportStrength  SportType = "strength"
	SportEndurance SportType = "endurance"
	SportHybrid    SportType = "hybrid"
	SportTeam      SportType = "team"
	SportSkill     SportType = "skill"
)

// ClinicalFlags carries condition tags relevant to weighting.
type ClinicalFlags struct {
	Conditions []string `json:"conditions"`
}

// Profile is the user profile the weighter derives fusion weights from.
type Profile struct {
	Clinical ClinicalFlags `json:"clinical"`
	Training TrainingLevel `json:"training_level"`
	Sport    SportType     `json:"sport"`
}

// #endregion profile-types

// #region weights
// Weights are the per-domain fusion weights. CalculateWeights guarantees
// they sum to 1.0.
type Weights struct {
	Sleep    float64 `json:"sleep"`
	HRV      float64 `json:"hrv"`
	Recovery float64 `json:"recovery"`
	Mind     float64 `json:"mind"`
	Fuel     float64 `json:"fuel"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Sleep + w.HRV + w.Recovery + w.Mind + w.Fuel
}

// #endregion weights

// #region config
// Config holds the weighting presets and nudge floors.
type Config struct {
	Default  Weights
	Clinical Weights // metabolic-fragility override, fuel-dominant
	Elite    Weights // advanced/elite override, hrv/recovery-dominant

	// FragilityConditions are the clinical tags that trigger the fuel-first
	// override.
	FragilityConditions []string

	StrengthRecoveryFloor float64
	EnduranceFuelFloor    float64
	SportMindDecrement    float64
}

// DefaultConfig returns the standard weighting presets.
func DefaultConfig() Config {
	return Config{
		Default:  Weights{Sleep: 0.30, HRV: 0.30, Recovery: 0.20, Mind: 0.10, Fuel: 0.10},
		Clinical: Weights{Sleep: 0.20, HRV: 0.20, Recovery: 0.15, Mind: 0.15, Fuel: 0.30},
		Elite:    Weights{Sleep: 0.20, HRV: 0.35, Recovery: 0.25, Mind: 0.05, Fuel: 0.15},

		FragilityConditions: []string{"insulin_dependent", "pcos", "red_s"},

		StrengthRecoveryFloor: 0.25,
		EnduranceFuelFloor:    0.20,
		SportMindDecrement:    0.05,
	}
}

// #endregion config

// #region calculate-weights
// CalculateWeights derives per-domain fusion weights from a profile. The
// overrides apply in sequence, not exclusively: clinical fragility first,
// then training level, then sport-type floor nudges. The result is always
// renormalized, so the sum-to-1 invariant holds no matter how many branches
// fired.
func CalculateWeights(p Profile, cfg Config) Weights {
	w := cfg.Default

	if hasFragility(p.Clinical, cfg.FragilityConditions) {
		w = cfg.Clinical
	}

	if p.Training == TrainingElite || p.Training == TrainingAdvanced {
		w = cfg.Elite
	}

	switch p.Sport {
	case SportStrength:
		if w.Recovery < cfg.StrengthRecoveryFloor {
			w.Recovery = cfg.StrengthRecoveryFloor
			w.Mind = maxf(0, w.Mind-cfg.SportMindDecrement)
		}
	case SportEndurance, SportHybrid:
		if w.Fuel < cfg.EnduranceFuelFloor {
			w.Fuel = cfg.EnduranceFuelFloor
			w.Mind = maxf(0, w.Mind-cfg.SportMindDecrement)
		}
	}

	return normalize(w)
}

// #endregion calculate-weights

// #region helpers
func hasFragility(c ClinicalFlags, fragile []string) bool {
	for _, cond := range c.Conditions {
		for _, f := range fragile {
			if cond == f {
				return true
			}
		}
	}
	return false
}

// normalize divides each weight by the running sum.
func normalize(w Weights) Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return Weights{
		Sleep:    w.Sleep / sum,
		HRV:      w.HRV / sum,
		Recovery: w.Recovery / sum,
		Mind:     w.Mind / sum,
		Fuel:     w.Fuel / sum,
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// #endregion helpers
