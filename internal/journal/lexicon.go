package journal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region axis-lexicon
// AxisLexicon is the positive/negative phrase pair for one flexibility axis.
// Phrases are matched as substrings of the lowercased raw text, not tokens.
type AxisLexicon struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// #endregion axis-lexicon

// #region lexicon
// Lexicon is the versioned phrase configuration for journal analysis. The
// built-in default can be replaced wholesale from a YAML file so tuning never
// touches logic.
type Lexicon struct {
	Version string `yaml:"version"`

	Acceptance      AxisLexicon `yaml:"acceptance"`
	Defusion        AxisLexicon `yaml:"defusion"`
	ValuesAlignment AxisLexicon `yaml:"values_alignment"`
	PresentMoment   AxisLexicon `yaml:"present_moment"`
	CommittedAction AxisLexicon `yaml:"committed_action"`

	Catastrophizing []string `yaml:"catastrophizing"`
	Avoidance       []string `yaml:"avoidance"`
	Isolation       []string `yaml:"isolation"`
	Perfectionism   []string `yaml:"perfectionism"`

	GrowthWords   []string `yaml:"growth_words"`   // token matches
	AgencyPhrases []string `yaml:"agency_phrases"` // substring matches

	PositiveWords []string `yaml:"positive_words"` // token matches
	NegativeWords []string `yaml:"negative_words"` // token matches

	// PlaceholderMarkerScore backs the resilience markers that have no lexical
	// computation yet (reframing, support seeking, self-efficacy).
	PlaceholderMarkerScore float64 `yaml:"placeholder_marker_score"`
}

// #endregion lexicon

// #region default-lexicon
// DefaultLexicon returns the built-in phrase lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Version: "2026.08",

		Acceptance: AxisLexicon{
			Positive: []string{
				"it's okay", "i accept", "let it be", "making peace",
				"allow myself", "it is what it is", "i can live with",
			},
			Negative: []string{
				"can't stand", "can't", "shouldn't feel", "unbearable",
				"won't accept", "hate that",
			},
		},
		Defusion: AxisLexicon{
			Positive: []string{
				"i notice", "just a thought", "my mind says", "stepping back",
				"from a distance", "observing",
			},
			Negative: []string{
				"i am a failure", "i'm a failure", "always like this",
				"no other way", "i know for sure",
			},
		},
		ValuesAlignment: AxisLexicon{
			Positive: []string{
				"matters to me", "what i value", "meaningful", "true to myself",
				"aligned with", "worth it",
			},
			Negative: []string{
				"pointless", "no point", "doesn't matter", "waste of time",
			},
		},
		PresentMoment: AxisLexicon{
			Positive: []string{
				"right now", "in the moment", "noticing", "this breath",
				"here and now", "present",
			},
			Negative: []string{
				"what if", "should have", "back then", "keep replaying",
			},
		},
		CommittedAction: AxisLexicon{
			Positive: []string{
				"i will", "my plan", "small step", "i committed",
				"follow through", "showed up",
			},
			Negative: []string{
				"give up", "gave up", "why bother", "can't start",
			},
		},

		Catastrophizing: []string{
			"always", "never", "everyone", "no one", "ruined", "disaster",
			"worst", "can't", "fails", "falling apart",
		},
		Avoidance: []string{
			"avoid", "put off", "procrastinat", "stay away", "cancel",
			"didn't show", "skip",
		},
		Isolation: []string{
			"alone", "lonely", "no one understands", "by myself",
			"withdrawn", "isolated",
		},
		Perfectionism: []string{
			"perfect", "must be", "have to be", "not good enough",
			"flawless", "no mistakes",
		},

		GrowthWords: []string{
			"learn", "learning", "grow", "growth", "improve", "improving",
			"progress", "practice", "develop", "better",
		},
		AgencyPhrases: []string{
			"i can ", "i chose", "i decided", "in my control", "up to me",
			"i made", "my choice",
		},

		PositiveWords: []string{
			"good", "great", "calm", "happy", "grateful", "strong",
			"rested", "energized", "confident", "proud", "peaceful", "hopeful",
		},
		NegativeWords: []string{
			"bad", "tired", "stressed", "anxious", "sad", "angry",
			"exhausted", "worried", "overwhelmed", "hopeless", "frustrated", "drained",
		},

		PlaceholderMarkerScore: 5,
	}
}

// #endregion default-lexicon

// #region loader
// LoadLexicon reads a lexicon from a YAML file. The file must carry a
// version string so tuned dictionaries stay traceable.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if lex.Version == "" {
		return Lexicon{}, fmt.Errorf("lexicon %s: missing version", path)
	}
	return lex, nil
}

// #endregion loader
