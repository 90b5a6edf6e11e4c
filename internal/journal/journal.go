package journal

import (
	"math"
	"strings"
	"unicode"

	"github.com/dtremaine/readypoint/internal/state"
)

// #region config
// Config holds the journal analyzer's scoring constants.
type Config struct {
	AxisBase        float64 // neutral midpoint for flexibility axes
	AxisPosWeight   float64
	AxisNegWeight   float64
	ValuesNegWeight float64 // values axis discounts negative phrases

	RiskWeight         float64
	DiversityThreshold float64 // lexical diversity below this signals rumination
	RuminationScale    float64

	MarkerWeight float64 // growth/agency marker multiplier

	SentimentMargin float64 // net word score beyond this leaves neutral

	// Evolution maps sentiment classes to a 2-8 scale for start/end sentences.
	EvolutionPositive float64
	EvolutionNeutral  float64
	EvolutionNegative float64

	// ConfidenceDivisor is an ad-hoc length heuristic (len/200), kept for
	// behavioral parity; tune with care.
	ConfidenceDivisor float64
}

// DefaultConfig returns the standard analyzer constants.
func DefaultConfig() Config {
	return Config{
		AxisBase:        5,
		AxisPosWeight:   2,
		AxisNegWeight:   2,
		ValuesNegWeight: 1.5,

		RiskWeight:         2,
		DiversityThreshold: 0.6,
		RuminationScale:    10,

		MarkerWeight: 2,

		SentimentMargin: 1,

		EvolutionPositive: 8,
		EvolutionNeutral:  5,
		EvolutionNegative: 2,

		ConfidenceDivisor: 200,
	}
}

// #endregion config

// #region result-types
// Flexibility is the five-axis psychological-flexibility profile, 0-10 each.
type Flexibility struct {
	Acceptance      float64 `json:"acceptance"`
	Defusion        float64 `json:"defusion"`
	ValuesAlignment float64 `json:"values_alignment"`
	PresentMoment   float64 `json:"present_moment"`
	CommittedAction float64 `json:"committed_action"`
}

// RiskSignals is the five-axis risk profile, 0-10 each.
type RiskSignals struct {
	Catastrophizing float64 `json:"catastrophizing"`
	Avoidance       float64 `json:"avoidance"`
	Isolation       float64 `json:"isolation"`
	Perfectionism   float64 `json:"perfectionism"`
	Rumination      float64 `json:"rumination"`
}

// ResilienceMarkers are protective-factor scores, 0-10 each. Reframing,
// SupportSeeking and SelfEfficacy are fixed placeholders pending deeper
// analysis.
type ResilienceMarkers struct {
	GrowthMindset  float64 `json:"growth_mindset"`
	Agency         float64 `json:"agency"`
	Reframing      float64 `json:"reframing"`
	SupportSeeking float64 `json:"support_seeking"`
	SelfEfficacy   float64 `json:"self_efficacy"`
}

// SentimentEvolution compares first-sentence and last-sentence sentiment.
type SentimentEvolution struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Trajectory string  `json:"trajectory"` // "improving" | "declining" | "flat"
}

// Analysis is the full journal analysis output.
type Analysis struct {
	Sentiment   state.Sentiment    `json:"sentiment"`
	Flexibility Flexibility        `json:"flexibility"`
	Risk        RiskSignals        `json:"risk"`
	Resilience  ResilienceMarkers  `json:"resilience"`
	Evolution   SentimentEvolution `json:"sentiment_evolution"`
	Confidence  float64            `json:"analysis_confidence"` // 0-1
}

// #endregion result-types

// #region analyze
// Analyze extracts psychological signals from free journal text using purely
// lexical heuristics. Empty or degenerate text yields neutral defaults:
// confidence 0, sentiment neutral, flexibility axes at midpoint, risk axes
// at 0. Pure: no input is mutated.
func Analyze(text string, lex Lexicon, cfg Config) Analysis {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	a := Analysis{
		Sentiment: classifySentiment(tokens, lex, cfg),
		Flexibility: Flexibility{
			Acceptance:      axisScore(lower, lex.Acceptance, cfg.AxisNegWeight, cfg),
			Defusion:        axisScore(lower, lex.Defusion, cfg.AxisNegWeight, cfg),
			ValuesAlignment: axisScore(lower, lex.ValuesAlignment, cfg.ValuesNegWeight, cfg),
			PresentMoment:   axisScore(lower, lex.PresentMoment, cfg.AxisNegWeight, cfg),
			CommittedAction: axisScore(lower, lex.CommittedAction, cfg.AxisNegWeight, cfg),
		},
		Risk: RiskSignals{
			Catastrophizing: riskScore(lower, lex.Catastrophizing, cfg),
			Avoidance:       riskScore(lower, lex.Avoidance, cfg),
			Isolation:       riskScore(lower, lex.Isolation, cfg),
			Perfectionism:   riskScore(lower, lex.Perfectionism, cfg),
			Rumination:      ruminationScore(tokens, cfg),
		},
		Resilience: ResilienceMarkers{
			GrowthMindset:  math.Min(10, float64(tokenMatches(tokens, lex.GrowthWords))*cfg.MarkerWeight),
			Agency:         math.Min(10, float64(phraseMatches(lower, lex.AgencyPhrases))*cfg.MarkerWeight),
			Reframing:      lex.PlaceholderMarkerScore,
			SupportSeeking: lex.PlaceholderMarkerScore,
			SelfEfficacy:   lex.PlaceholderMarkerScore,
		},
		Evolution:  evolution(text, lex, cfg),
		Confidence: math.Min(1, float64(len(text))/cfg.ConfidenceDivisor),
	}

	return a
}

// #endregion analyze

// #region axis-scoring
// axisScore is clamp(base + pos*posW - neg*negW, 0, 10). Phrase counts are
// membership tests against the lowercased raw text.
func axisScore(lower string, axis AxisLexicon, negWeight float64, cfg Config) float64 {
	pos := float64(phraseMatches(lower, axis.Positive))
	neg := float64(phraseMatches(lower, axis.Negative))
	return clamp(cfg.AxisBase+pos*cfg.AxisPosWeight-neg*negWeight, 0, 10)
}

// riskScore is min(10, matches * weight).
func riskScore(lower string, phrases []string, cfg Config) float64 {
	return math.Min(10, float64(phraseMatches(lower, phrases))*cfg.RiskWeight)
}

// ruminationScore keys off lexical diversity rather than phrase lists:
// repetitive wording reads as looping thought.
func ruminationScore(tokens []string, cfg Config) float64 {
	if len(tokens) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	diversity := float64(len(unique)) / float64(len(tokens))
	if diversity < cfg.DiversityThreshold {
		return (1 - diversity) * cfg.RuminationScale
	}
	return 0
}

// #endregion axis-scoring

// #region sentiment
// classifySentiment counts positive versus negative single-word matches.
func classifySentiment(tokens []string, lex Lexicon, cfg Config) state.Sentiment {
	net := float64(tokenMatches(tokens, lex.PositiveWords)) -
		float64(tokenMatches(tokens, lex.NegativeWords))
	switch {
	case net > cfg.SentimentMargin:
		return state.SentimentPositive
	case net < -cfg.SentimentMargin:
		return state.SentimentNegative
	default:
		return state.SentimentNeutral
	}
}

// evolution classifies the first and last sentence separately. Fewer than two
// sentences reads as flat at the neutral level.
func evolution(text string, lex Lexicon, cfg Config) SentimentEvolution {
	sentences := splitSentences(text)
	if len(sentences) < 2 {
		return SentimentEvolution{Start: cfg.EvolutionNeutral, End: cfg.EvolutionNeutral, Trajectory: "flat"}
	}

	start := sentimentLevel(sentences[0], lex, cfg)
	end := sentimentLevel(sentences[len(sentences)-1], lex, cfg)

	trajectory := "flat"
	if end > start {
		trajectory = "improving"
	} else if end < start {
		trajectory = "declining"
	}
	return SentimentEvolution{Start: start, End: end, Trajectory: trajectory}
}

func sentimentLevel(sentence string, lex Lexicon, cfg Config) float64 {
	tokens := tokenize(strings.ToLower(sentence))
	switch classifySentiment(tokens, lex, cfg) {
	case state.SentimentPositive:
		return cfg.EvolutionPositive
	case state.SentimentNegative:
		return cfg.EvolutionNegative
	default:
		return cfg.EvolutionNeutral
	}
}

// #endregion sentiment

// #region helpers
// tokenize splits lowercased text into words, stripping punctuation but
// keeping in-word apostrophes so contractions survive.
func tokenize(lower string) []string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// splitSentences splits on sentence-ending punctuation, dropping empties.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// phraseMatches counts list phrases present in the text (each at most once).
func phraseMatches(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, p) {
			n++
		}
	}
	return n
}

// tokenMatches counts token occurrences that appear in the word list.
func tokenMatches(tokens []string, words []string) int {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	n := 0
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
