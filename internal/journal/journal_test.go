package journal

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtremaine/readypoint/internal/state"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestAnalyzeEmptyTextYieldsNeutralDefaults(t *testing.T) {
	a := Analyze("", DefaultLexicon(), DefaultConfig())

	if a.Sentiment != state.SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %s", a.Sentiment)
	}
	if a.Confidence != 0 {
		t.Errorf("expected zero confidence, got %.2f", a.Confidence)
	}
	for name, v := range map[string]float64{
		"acceptance":       a.Flexibility.Acceptance,
		"defusion":         a.Flexibility.Defusion,
		"values_alignment": a.Flexibility.ValuesAlignment,
		"present_moment":   a.Flexibility.PresentMoment,
		"committed_action": a.Flexibility.CommittedAction,
	} {
		if !approx(v, 5) {
			t.Errorf("expected %s at midpoint 5, got %.2f", name, v)
		}
	}
	for name, v := range map[string]float64{
		"catastrophizing": a.Risk.Catastrophizing,
		"avoidance":       a.Risk.Avoidance,
		"isolation":       a.Risk.Isolation,
		"perfectionism":   a.Risk.Perfectionism,
		"rumination":      a.Risk.Rumination,
	} {
		if v != 0 {
			t.Errorf("expected zero %s risk, got %.2f", name, v)
		}
	}
	if a.Evolution.Trajectory != "flat" || !approx(a.Evolution.Start, 5) || !approx(a.Evolution.End, 5) {
		t.Errorf("expected flat 5→5 evolution, got %+v", a.Evolution)
	}
}

func TestAnalyzeCatastrophizingEntry(t *testing.T) {
	// Matches "can't", "everyone", "always" and "fails": 4 phrases * 2 = 8.
	// The "can't" also drags acceptance below the midpoint: 5 - 2 = 3.
	a := Analyze("I can't when everyone always fails", DefaultLexicon(), DefaultConfig())

	if !approx(a.Risk.Catastrophizing, 8) {
		t.Errorf("expected catastrophizing 8, got %.2f", a.Risk.Catastrophizing)
	}
	if a.Flexibility.Acceptance >= 5 {
		t.Errorf("expected acceptance below midpoint, got %.2f", a.Flexibility.Acceptance)
	}
	if !approx(a.Flexibility.Acceptance, 3) {
		t.Errorf("expected acceptance 3, got %.2f", a.Flexibility.Acceptance)
	}
	// "i can't" must not read as the agency phrase "i can ".
	if a.Resilience.Agency != 0 {
		t.Errorf("expected zero agency, got %.2f", a.Resilience.Agency)
	}
}

func TestAnalyzeSentimentClassification(t *testing.T) {
	lex := DefaultLexicon()
	cfg := DefaultConfig()

	if got := Analyze("calm happy grateful", lex, cfg).Sentiment; got != state.SentimentPositive {
		t.Errorf("expected positive, got %s", got)
	}
	if got := Analyze("so tired stressed and anxious", lex, cfg).Sentiment; got != state.SentimentNegative {
		t.Errorf("expected negative, got %s", got)
	}
	// A single positive word does not clear the margin.
	if got := Analyze("a good day I suppose", lex, cfg).Sentiment; got != state.SentimentNeutral {
		t.Errorf("expected neutral, got %s", got)
	}
}

func TestAnalyzeRuminationFromLowDiversity(t *testing.T) {
	// 5 tokens, 2 unique → diversity 0.4 → (1-0.4)*10 = 6.
	a := Analyze("worry worry worry worry sleep", DefaultLexicon(), DefaultConfig())
	if !approx(a.Risk.Rumination, 6) {
		t.Errorf("expected rumination 6, got %.2f", a.Risk.Rumination)
	}

	// Fully diverse text scores zero.
	b := Analyze("today went differently than planned", DefaultLexicon(), DefaultConfig())
	if b.Risk.Rumination != 0 {
		t.Errorf("expected zero rumination, got %.2f", b.Risk.Rumination)
	}
}

func TestAnalyzeSentimentEvolutionImproving(t *testing.T) {
	// First sentence net -3 → level 2, last net +3 → level 8.
	text := "Tired and stressed and anxious. Calm and happy and grateful now."
	a := Analyze(text, DefaultLexicon(), DefaultConfig())

	if a.Evolution.Trajectory != "improving" {
		t.Errorf("expected improving, got %s", a.Evolution.Trajectory)
	}
	if !approx(a.Evolution.Start, 2) || !approx(a.Evolution.End, 8) {
		t.Errorf("expected 2→8, got %+v", a.Evolution)
	}
}

func TestAnalyzeFlexibilityAxisScoring(t *testing.T) {
	// Two positives per axis: 5 + 2*2 = 9 each.
	text := "I accept it, it's okay. Just a thought, stepping back. " +
		"This matters to me and is meaningful. Right now, in the moment. " +
		"I will take a small step."
	a := Analyze(text, DefaultLexicon(), DefaultConfig())

	for name, v := range map[string]float64{
		"acceptance":       a.Flexibility.Acceptance,
		"defusion":         a.Flexibility.Defusion,
		"values_alignment": a.Flexibility.ValuesAlignment,
		"present_moment":   a.Flexibility.PresentMoment,
		"committed_action": a.Flexibility.CommittedAction,
	} {
		if !approx(v, 9) {
			t.Errorf("expected %s at 9, got %.2f", name, v)
		}
	}
}

func TestAnalyzeResilienceMarkers(t *testing.T) {
	// Growth tokens: learning, improve, grow → 3*2 = 6.
	// Agency phrases: "up to me", "i can " → 2*2 = 4.
	a := Analyze("It is up to me and i can keep learning to improve and grow",
		DefaultLexicon(), DefaultConfig())

	if !approx(a.Resilience.GrowthMindset, 6) {
		t.Errorf("expected growth 6, got %.2f", a.Resilience.GrowthMindset)
	}
	if !approx(a.Resilience.Agency, 4) {
		t.Errorf("expected agency 4, got %.2f", a.Resilience.Agency)
	}
	// Placeholder markers stay at the configured constant.
	if !approx(a.Resilience.Reframing, 5) || !approx(a.Resilience.SupportSeeking, 5) || !approx(a.Resilience.SelfEfficacy, 5) {
		t.Errorf("expected placeholder markers at 5, got %+v", a.Resilience)
	}
}

func TestAnalyzeConfidenceScalesWithLength(t *testing.T) {
	cfg := DefaultConfig()
	lex := DefaultLexicon()

	// 100 chars / 200 = 0.5.
	half := Analyze(strings.Repeat("calm ", 20), lex, cfg)
	if !approx(half.Confidence, 0.5) {
		t.Errorf("expected confidence 0.5, got %.3f", half.Confidence)
	}

	// Long entries clamp at 1.
	full := Analyze(strings.Repeat("calm ", 100), lex, cfg)
	if !approx(full.Confidence, 1) {
		t.Errorf("expected confidence 1, got %.3f", full.Confidence)
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `version: "test-1"
catastrophizing: [doom]
positive_words: [stellar]
placeholder_marker_score: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lex.Version != "test-1" {
		t.Errorf("expected version test-1, got %s", lex.Version)
	}
	if len(lex.Catastrophizing) != 1 || lex.Catastrophizing[0] != "doom" {
		t.Errorf("unexpected catastrophizing list: %v", lex.Catastrophizing)
	}
	if lex.PlaceholderMarkerScore != 4 {
		t.Errorf("expected marker score 4, got %.1f", lex.PlaceholderMarkerScore)
	}
}

func TestLoadLexiconRejectsMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	if err := os.WriteFile(path, []byte("catastrophizing: [doom]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLexicon(path); err == nil {
		t.Fatal("expected an error for a versionless lexicon")
	}
}

func TestLoadLexiconMissingFile(t *testing.T) {
	if _, err := LoadLexicon(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
