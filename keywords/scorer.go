package keywords

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	defaultCategory      = "General Software Development"
	opportunityThreshold = 50
)

var (
	technicalClassRe  = regexp.MustCompile(`(?i)(development|software|platform|system|api|database)`)
	commercialClassRe = regexp.MustCompile(`(?i)(custom|enterprise|full-stack|cloud|saas)`)
)

// Scorer ranks keyword candidates by composite opportunity. The trend
// source is injected so scoring under test is deterministic; when the
// primary source fails the scorer degrades to synthetic samples per keyword
// rather than failing the batch.
type Scorer struct {
	source     TrendSource
	fallback   TrendSource
	industries []Industry
}

// NewScorer builds a scorer over an ordered industry list. A nil source
// means the synthetic fallback serves every request.
func NewScorer(source TrendSource, industries []Industry) *Scorer {
	fallback := NewSyntheticTrendSource(1)
	if source == nil {
		source = fallback
	}
	return &Scorer{
		source:     source,
		fallback:   fallback,
		industries: industries,
	}
}

// Difficulty estimates how competitive a keyword is to rank for, 0-100.
// Bonuses are additive: a keyword can accumulate the class match and the
// specific-term bonuses on top of it.
func (s *Scorer) Difficulty(keyword string) float64 {
	lower := strings.ToLower(keyword)
	difficulty := 30.0

	if len(strings.Fields(keyword)) > 2 {
		difficulty += 15 // long-tail
	}
	if technicalClassRe.MatchString(keyword) {
		difficulty += 25
	}
	if commercialClassRe.MatchString(keyword) {
		difficulty += 20
	}
	if strings.Contains(lower, "custom") {
		difficulty += 15
	}
	if strings.Contains(lower, "full-stack") {
		difficulty += 20
	}
	if strings.Contains(lower, "enterprise") {
		difficulty += 25
	}

	return math.Min(difficulty, 100)
}

// Opportunity combines trend, volume and inverted difficulty into a single
// 0-100 score. Pure: identical inputs always yield the identical score.
func (s *Scorer) Opportunity(trend float64, searchVolume int, keyword string) float64 {
	trendScore := math.Min(trend/10, 10)
	volumeScore := math.Min(float64(searchVolume)/1000, 10)
	difficultyScore := math.Max(10-s.Difficulty(keyword)/10, 0)

	score := (trendScore + volumeScore + difficultyScore) / 3 * 10
	return math.Max(0, math.Min(score, 100))
}

// FindOpportunities scores the union of competitor, industry and technology
// keywords and keeps candidates above the opportunity threshold, sorted
// descending (stable on ties). The second return reports whether any trend
// lookup fell back to synthetic data.
func (s *Scorer) FindOpportunities(ctx context.Context, competitorSets map[string][]string, technology []string) ([]Candidate, bool) {
	universe := s.keywordUniverse(competitorSets, technology)

	degraded := false
	candidates := make([]Candidate, 0, len(universe))
	for _, kw := range universe {
		data, fellBack := s.trendFor(ctx, kw)
		degraded = degraded || fellBack

		difficulty := s.Difficulty(kw)
		opportunity := s.Opportunity(data.Trend, data.SearchVolume, kw)
		if opportunity <= opportunityThreshold {
			continue
		}

		candidates = append(candidates, Candidate{
			Keyword:      kw,
			Trend:        data.Trend,
			SearchVolume: data.SearchVolume,
			Difficulty:   difficulty,
			Opportunity:  opportunity,
			Category:     s.categorize(kw),
			ContentTypes: recommendContentTypes(kw),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Opportunity > candidates[j].Opportunity
	})
	return candidates, degraded
}

// keywordUniverse unions all keyword sources into a deduplicated slice with
// stable order: competitor sets by name, then industries in configured
// order, then technology keywords.
func (s *Scorer) keywordUniverse(competitorSets map[string][]string, technology []string) []string {
	competitors := make([]string, 0, len(competitorSets))
	for name := range competitorSets {
		competitors = append(competitors, name)
	}
	sort.Strings(competitors)

	seen := make(map[string]bool)
	var universe []string
	add := func(kw string) {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			return
		}
		seen[key] = true
		universe = append(universe, kw)
	}

	for _, name := range competitors {
		for _, kw := range competitorSets[name] {
			add(kw)
		}
	}
	for _, industry := range s.industries {
		for _, kw := range industry.Keywords {
			add(kw)
		}
	}
	for _, kw := range technology {
		add(kw)
	}
	return universe
}

// trendFor fetches trend data, substituting a synthetic sample on failure
// so scoring never raises for missing upstream data.
func (s *Scorer) trendFor(ctx context.Context, keyword string) (TrendData, bool) {
	data, err := s.source.Fetch(ctx, keyword, "today 12-m")
	if err == nil {
		return data, false
	}
	data, _ = s.fallback.Fetch(ctx, keyword, "today 12-m")
	return data, true
}

// categorize assigns the first configured industry whose keyword list
// matches the candidate case-insensitively.
func (s *Scorer) categorize(keyword string) string {
	lower := strings.ToLower(keyword)
	for _, industry := range s.industries {
		for _, ik := range industry.Keywords {
			ikLower := strings.ToLower(ik)
			if strings.Contains(ikLower, lower) || strings.Contains(lower, ikLower) {
				return industry.Name
			}
		}
	}
	return defaultCategory
}

func recommendContentTypes(keyword string) []string {
	lower := strings.ToLower(keyword)
	switch {
	case strings.Contains(lower, "how") || strings.Contains(lower, "guide"):
		return []string{"how-to guide", "tutorial", "faq"}
	case strings.Contains(lower, "best") || strings.Contains(lower, "top"):
		return []string{"listicle", "comparison roundup", "premium guide"}
	case strings.Contains(lower, "vs") || strings.Contains(lower, "comparison"):
		return []string{"comparison article", "feature matrix"}
	case strings.Contains(lower, "cost") || strings.Contains(lower, "price"):
		return []string{"pricing page", "short-form post"}
	default:
		return []string{"blog post"}
	}
}

// GapAnalysis lists target-industry keywords absent from the union of all
// competitor keyword sets, matched case-insensitively.
func (s *Scorer) GapAnalysis(competitorSets map[string][]string) []Gap {
	var competitorKeywords []string
	for _, set := range competitorSets {
		for _, kw := range set {
			competitorKeywords = append(competitorKeywords, strings.ToLower(kw))
		}
	}

	covered := func(target string) bool {
		target = strings.ToLower(target)
		for _, ck := range competitorKeywords {
			if strings.Contains(ck, target) || strings.Contains(target, ck) {
				return true
			}
		}
		return false
	}

	var gaps []Gap
	for _, industry := range s.industries {
		for _, kw := range industry.Keywords {
			if covered(kw) {
				continue
			}
			gaps = append(gaps, Gap{
				Keyword:     kw,
				Industry:    industry.Name,
				Opportunity: "high",
				Reason:      fmt.Sprintf("no tracked competitor targets %q", kw),
			})
		}
	}
	return gaps
}

// GenerateAlerts partitions opportunities into trending, low-competition
// and high-volume buckets and emits one alert per non-empty bucket.
func (s *Scorer) GenerateAlerts(opportunities []Candidate) []Alert {
	buckets := []struct {
		alertType string
		message   string
		match     func(Candidate) bool
	}{
		{"trending", "keywords trending upward", func(c Candidate) bool { return c.Trend > 80 }},
		{"low_competition", "low-competition keywords available", func(c Candidate) bool { return c.Difficulty < 30 }},
		{"high_volume", "high-volume keywords in reach", func(c Candidate) bool { return c.SearchVolume > 5000 }},
	}

	var alerts []Alert
	for _, bucket := range buckets {
		var members []string
		for _, c := range opportunities {
			if bucket.match(c) {
				members = append(members, c.Keyword)
			}
		}
		if len(members) == 0 {
			continue
		}
		top := members
		if len(top) > 5 {
			top = top[:5]
		}
		alerts = append(alerts, Alert{
			Type:     bucket.alertType,
			Message:  fmt.Sprintf("%d %s", len(members), bucket.message),
			Count:    len(members),
			Keywords: top,
		})
	}
	return alerts
}
