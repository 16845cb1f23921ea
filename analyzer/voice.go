package analyzer

import (
	"math"
	"strings"
)

// Marker lists for voice-search scoring. Matching is case-insensitive;
// single-word markers match whole words only.
var (
	conversationalMarkers = []string{
		"you", "your", "we", "our", "us",
		"can", "will", "should", "would", "could",
	}
	answerMarkers = []string{
		"answer", "here's how", "to answer", "simply put", "in short",
	}
	contractionMarkers = []string{
		"n't", "'re", "'ll", "'ve", "'m", "it's", "that's",
	}
	informalMarkers = []string{
		"easy", "simple", "quick", "great", "handy",
	}
	definitionMarkers = []string{
		" is a ", "refers to", " means ",
	}
	localMarkers = []string{
		"near me", "nearby", "local", "in my area", "closest", "your area",
	}
)

// voiceRule pairs a threshold predicate with the suggestion emitted when the
// profile falls under it. The table is ordered so suggestion output is
// stable and each rule is independently testable.
type voiceRule struct {
	applies    func(p VoiceSearchProfile, doc Document) bool
	suggestion string
}

var voiceRules = []voiceRule{
	{
		applies:    func(p VoiceSearchProfile, doc Document) bool { return !strings.Contains(doc.Text, "?") },
		suggestion: "Add question-based headings that mirror how people phrase spoken queries",
	},
	{
		applies:    func(p VoiceSearchProfile, doc Document) bool { return p.ConversationalTone < 50 },
		suggestion: "Use a more conversational tone with direct address (you, we) and everyday phrasing",
	},
	{
		applies:    func(p VoiceSearchProfile, doc Document) bool { return p.NaturalLanguage < 50 },
		suggestion: "Loosen the register: contractions and plain adjectives read closer to spoken language",
	},
	{
		applies:    func(p VoiceSearchProfile, doc Document) bool { return p.FeaturedSnippet < 50 },
		suggestion: "Add bullet points, numbered steps or a one-sentence definition to target featured snippets",
	},
	{
		applies:    func(p VoiceSearchProfile, doc Document) bool { return p.LocalSearch == 0 },
		suggestion: "Mention location-based phrases if the content serves local search intent",
	},
	{
		applies:    func(p VoiceSearchProfile, doc Document) bool { return p.MobileOptimized < 100 },
		suggestion: "Keep answers short and break text into more paragraphs for small screens",
	},
}

// OptimizeForVoiceSearch scores a document for spoken-query discovery and
// emits fixed-text suggestions for every threshold it misses.
func (a *Analyzer) OptimizeForVoiceSearch(doc Document) VoiceSearchProfile {
	profile := VoiceSearchProfile{
		ConversationalTone: a.scoreConversationalTone(doc.Text),
		QuestionAnswer:     a.scoreQuestionAnswer(doc.Text),
		NaturalLanguage:    a.scoreNaturalLanguage(doc.Text),
		FeaturedSnippet:    a.scoreFeaturedSnippet(doc.Text),
		LocalSearch:        a.scoreLocalSearch(doc.Text),
		MobileOptimized:    a.scoreMobile(doc.Text),
		SpeedOptimized:     a.scoreSpeed(doc.Text),
	}

	for _, rule := range voiceRules {
		if rule.applies(profile, doc) {
			profile.Suggestions = append(profile.Suggestions, rule.suggestion)
		}
	}
	return profile
}

// wordSet lowercases the text and returns the set of distinct words.
func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[strings.Trim(w, ".,!?;:\"'()")] = true
	}
	return set
}

func (a *Analyzer) scoreConversationalTone(text string) float64 {
	words := wordSet(text)
	score := 0.0
	for _, marker := range conversationalMarkers {
		if words[marker] {
			score += 10
		}
	}
	return math.Min(score, 100)
}

func (a *Analyzer) scoreQuestionAnswer(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	if strings.Contains(text, "?") {
		score += 50
	}
	for _, marker := range answerMarkers {
		if strings.Contains(lower, marker) {
			score += 50
			break
		}
	}
	return score
}

func (a *Analyzer) scoreNaturalLanguage(text string) float64 {
	lower := strings.ToLower(text)
	words := wordSet(text)

	score := 0.0
	for _, marker := range contractionMarkers {
		if strings.Contains(lower, marker) {
			score += 10
		}
	}
	for _, marker := range informalMarkers {
		if words[marker] {
			score += 10
		}
	}
	return math.Min(score, 100)
}

// scoreFeaturedSnippet splits 100 points across bullet lists, numbered
// lists and definition phrasing.
func (a *Analyzer) scoreFeaturedSnippet(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	if bulletRe.MatchString(text) {
		score += 35
	}
	if numberedListRe.MatchString(text) {
		score += 35
	}
	for _, marker := range definitionMarkers {
		if strings.Contains(lower, marker) {
			score += 30
			break
		}
	}
	return score
}

func (a *Analyzer) scoreLocalSearch(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	for _, marker := range localMarkers {
		if strings.Contains(lower, marker) {
			score += 20
		}
	}
	return math.Min(score, 100)
}

func (a *Analyzer) scoreMobile(text string) float64 {
	score := 0.0
	if len(strings.Fields(text)) <= 300 {
		score += 50
	}
	if countParagraphs(text) >= 3 {
		score += 50
	}
	return score
}

func (a *Analyzer) scoreSpeed(text string) float64 {
	wordCount := len(strings.Fields(text))
	switch {
	case wordCount <= 300:
		return 100
	case wordCount <= 600:
		return 80
	case wordCount <= 1000:
		return 60
	case wordCount <= 1500:
		return 40
	default:
		return 20
	}
}
