package analyzer

import (
	"strings"
	"testing"
)

func TestOptimizeForVoiceSearch(t *testing.T) {
	a := New()

	t.Run("SubScoresInRange", func(t *testing.T) {
		docs := []Document{
			{},
			{Text: "you we can will should would could your our us"},
			{Text: strings.Repeat("near me local nearby in my area closest your area ", 50)},
			{Text: strings.Repeat("word ", 2000)},
		}
		for i, doc := range docs {
			p := a.OptimizeForVoiceSearch(doc)
			for name, v := range map[string]float64{
				"conversationalTone": p.ConversationalTone,
				"questionAnswer":     p.QuestionAnswer,
				"naturalLanguage":    p.NaturalLanguage,
				"featuredSnippet":    p.FeaturedSnippet,
				"localSearch":        p.LocalSearch,
				"mobileOptimized":    p.MobileOptimized,
				"speedOptimized":     p.SpeedOptimized,
			} {
				if v < 0 || v > 100 {
					t.Errorf("doc %d: %s out of range: %v", i, name, v)
				}
			}
		}
	})

	t.Run("QuestionAndAnswerScoresFull", func(t *testing.T) {
		p := a.OptimizeForVoiceSearch(Document{Text: "What is this? Simply put, it works."})
		if p.QuestionAnswer != 100 {
			t.Errorf("Expected question/answer 100, got %v", p.QuestionAnswer)
		}
	})

	t.Run("NoQuestionHalvesScore", func(t *testing.T) {
		p := a.OptimizeForVoiceSearch(Document{Text: "Simply put, it works."})
		if p.QuestionAnswer != 50 {
			t.Errorf("Expected question/answer 50 without a question mark, got %v", p.QuestionAnswer)
		}
	})

	t.Run("ConversationalToneCounted", func(t *testing.T) {
		p := a.OptimizeForVoiceSearch(Document{Text: "You can ask and we will answer."})
		// Distinct markers: you, can, we, will.
		if p.ConversationalTone != 40 {
			t.Errorf("Expected conversational tone 40, got %v", p.ConversationalTone)
		}
	})

	t.Run("FeaturedSnippetComponents", func(t *testing.T) {
		text := "Voice search is a growth channel.\n\n- first point\n- second point\n\n1. step one\n2. step two"
		p := a.OptimizeForVoiceSearch(Document{Text: text})
		if p.FeaturedSnippet != 100 {
			t.Errorf("Expected featured snippet 100 with bullets, numbers and a definition, got %v", p.FeaturedSnippet)
		}
	})

	t.Run("SuggestionsEmittedUnderThresholds", func(t *testing.T) {
		p := a.OptimizeForVoiceSearch(Document{Text: "Plain statement text."})
		if len(p.Suggestions) == 0 {
			t.Fatal("Expected suggestions for a flat document")
		}

		hasQuestionSuggestion := false
		for _, s := range p.Suggestions {
			if strings.Contains(s, "question-based headings") {
				hasQuestionSuggestion = true
			}
		}
		if !hasQuestionSuggestion {
			t.Error("Missing question-heading suggestion for text without a question mark")
		}
	})

	t.Run("NoSuggestionDuplication", func(t *testing.T) {
		p := a.OptimizeForVoiceSearch(Document{Text: ""})
		seen := make(map[string]bool)
		for _, s := range p.Suggestions {
			if seen[s] {
				t.Errorf("Duplicate suggestion: %q", s)
			}
			seen[s] = true
		}
	})
}
