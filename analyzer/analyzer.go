package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Compiled once; the analyzer is called on every CMS save.
var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
	silentSuffixRe   = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingYRe       = regexp.MustCompile(`^y`)
	vowelClusterRe   = regexp.MustCompile(`[aeiouy]{1,2}`)
	headingRe        = regexp.MustCompile(`(?m)^#{1,6}\s`)
	h1Re             = regexp.MustCompile(`(?m)^#\s`)
	h2Re             = regexp.MustCompile(`(?m)^##\s`)
	h3Re             = regexp.MustCompile(`(?m)^###\s`)
	bulletRe         = regexp.MustCompile(`(?m)^\s*[-*•]\s`)
	numberedListRe   = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
)

// Analyzer computes readability, AI-search compatibility and voice-search
// scores from raw text. It holds no state and is safe for concurrent use.
type Analyzer struct{}

// New creates a new Analyzer instance
func New() *Analyzer {
	return &Analyzer{}
}

// AnalyzeReadability computes the classic readability indices for a text.
// Empty text yields zero-valued metrics rather than an error.
func (a *Analyzer) AnalyzeReadability(text string) ReadabilityReport {
	report := ReadabilityReport{}

	words := strings.Fields(text)
	report.WordCount = len(words)
	report.SentenceCount = countSentences(text)
	report.ParagraphCount = countParagraphs(text)

	var letters, chars, complexWords int
	for _, word := range words {
		syllables := countSyllables(word)
		report.SyllableCount += syllables
		if syllables >= 3 {
			complexWords++
		}
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters++
			}
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				chars++
			}
		}
	}

	wc := float64(report.WordCount)
	sc := float64(report.SentenceCount)
	syl := float64(report.SyllableCount)

	if wc > 0 {
		report.ComplexWordPercent = float64(complexWords) / wc * 100
	}

	// Each formula guards its own denominators: no sentences or no words
	// means 0, never a division panic.
	if wc > 0 && sc > 0 {
		report.FleschReadingEase = 206.835 - 1.015*(wc/sc) - 84.6*(syl/wc)
		report.FleschKincaidGrade = 0.39*(wc/sc) + 11.8*(syl/wc) - 15.59
		report.GunningFog = 0.4 * ((wc / sc) + 100*(float64(complexWords)/wc))
		report.ColemanLiau = 0.0588*(float64(letters)/wc*100) - 0.296*(sc/wc*100) - 15.8
		report.SMOG = 1.0430*math.Sqrt(float64(complexWords)*(30/sc)) + 3.1291
		report.ARI = 4.71*(float64(chars)/wc) + 0.5*(wc/sc) - 21.43
	}

	report.Level = readabilityLevel(report.FleschReadingEase)
	return report
}

// readabilityLevel buckets a Flesch Reading Ease score into the seven
// standard bands, lower bound inclusive.
func readabilityLevel(flesch float64) string {
	switch {
	case flesch >= 90:
		return "Very Easy"
	case flesch >= 80:
		return "Easy"
	case flesch >= 70:
		return "Fairly Easy"
	case flesch >= 60:
		return "Standard"
	case flesch >= 50:
		return "Fairly Difficult"
	case flesch >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}

// countSyllables estimates syllables for a single word: lowercase, drop a
// trailing silent e/ed/es, drop a leading y, then count vowel clusters.
// Every word counts as at least one syllable.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 1
	}
	word = silentSuffixRe.ReplaceAllString(word, "")
	word = leadingYRe.ReplaceAllString(word, "")

	matches := vowelClusterRe.FindAllString(word, -1)
	if len(matches) == 0 {
		return 1
	}
	return len(matches)
}

func countSentences(text string) int {
	count := 0
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func countParagraphs(text string) int {
	count := 0
	for _, part := range paragraphSplitRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// CheckGPTCompatibility scores how well a document's structure suits
// AI-driven search summarization. Each sub-score is an independent rule;
// the overall score is their unweighted mean.
func (a *Analyzer) CheckGPTCompatibility(doc Document) CompatibilityScore {
	score := CompatibilityScore{
		SemanticStructure: a.scoreSemanticStructure(doc.Text),
		HeadingHierarchy:  a.scoreHeadingHierarchy(doc.Text),
		KeywordDensity:    a.scoreKeywordDensity(doc.Text, doc.Keywords),
		ContentLength:     a.scoreContentLength(doc.Text),
		InternalLinking:   a.scoreInternalLinking(doc.Text, doc.InternalLinks),
		StructuredData:    a.scoreStructuredData(doc.StructuredData),
	}
	score.Overall = (score.SemanticStructure + score.HeadingHierarchy +
		score.KeywordDensity + score.ContentLength +
		score.InternalLinking + score.StructuredData) / 6
	return score
}

func (a *Analyzer) scoreSemanticStructure(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	if strings.Contains(lower, "introduction") || strings.Contains(lower, "overview") {
		score += 25
	}
	if strings.Contains(lower, "conclusion") || strings.Contains(lower, "summary") {
		score += 25
	}
	if headingRe.MatchString(text) {
		score += 25
	}
	if countParagraphs(text) >= 3 {
		score += 25
	}
	return math.Min(score, 100)
}

func (a *Analyzer) scoreHeadingHierarchy(text string) float64 {
	h1 := len(h1Re.FindAllString(text, -1))
	h2 := len(h2Re.FindAllString(text, -1))
	h3 := len(h3Re.FindAllString(text, -1))

	score := 0.0
	if h1 == 1 {
		score += 30
	}
	if h2 > 0 {
		score += 25
	}
	if h3 > 0 {
		score += 25
	}
	if h1+h2+h3 >= 3 {
		score += 20
	}
	return score
}

// scoreKeywordDensity averages the per-keyword density (occurrences per
// word, scaled x1000 and capped). No declared keywords scores the neutral
// 50 so an untagged draft is not penalized.
func (a *Analyzer) scoreKeywordDensity(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 50
	}

	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	total := 0.0
	for _, kw := range keywords {
		if wordCount == 0 {
			continue
		}
		occurrences := strings.Count(lower, strings.ToLower(kw))
		density := float64(occurrences) / float64(wordCount) * 1000
		total += math.Min(density, 100)
	}
	return total / float64(len(keywords))
}

func (a *Analyzer) scoreContentLength(text string) float64 {
	wordCount := len(strings.Fields(text))
	switch {
	case wordCount >= 1500:
		return 100
	case wordCount >= 1000:
		return 80
	case wordCount >= 600:
		return 60
	case wordCount >= 300:
		return 40
	default:
		return 20
	}
}

func (a *Analyzer) scoreInternalLinking(text string, internalLinks int) float64 {
	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return 20
	}

	linksPerThousand := float64(internalLinks) / float64(wordCount) * 1000
	switch {
	case linksPerThousand >= 2:
		return 100
	case linksPerThousand >= 1:
		return 80
	case linksPerThousand >= 0.5:
		return 60
	case linksPerThousand >= 0.2:
		return 40
	default:
		return 20
	}
}

func (a *Analyzer) scoreStructuredData(sd StructuredData) float64 {
	score := 0.0
	if sd.Article {
		score += 25
	}
	if sd.FAQ {
		score += 25
	}
	if sd.HowTo {
		score += 25
	}
	if sd.Review {
		score += 25
	}
	return score
}
