package workflow

import "sort"

// suggestionRule pairs a metric predicate with the suggestion it emits.
// Rules are ordered so output is stable and each one testable on its own.
type suggestionRule struct {
	applies    func(metrics map[string]interface{}) bool
	suggestion Suggestion
}

var suggestionRules = []suggestionRule{
	{
		applies: func(m map[string]interface{}) bool {
			v, ok := floatMetric(m, "seoScore")
			return ok && v < 80
		},
		suggestion: Suggestion{
			Type:       "seo",
			Priority:   "high",
			Suggestion: "Improve on-page SEO: tighten title, meta description and keyword coverage",
			Impact:     "high",
		},
	},
	{
		applies: func(m map[string]interface{}) bool {
			v, ok := floatMetric(m, "engagement")
			return ok && v < 0.6
		},
		suggestion: Suggestion{
			Type:       "engagement",
			Priority:   "medium",
			Suggestion: "Rework the opening and add visuals or examples to hold readers longer",
			Impact:     "medium",
		},
	},
	{
		applies: func(m map[string]interface{}) bool {
			v, ok := floatMetric(m, "conversionRate")
			return ok && v < 0.02
		},
		suggestion: Suggestion{
			Type:       "conversion",
			Priority:   "high",
			Suggestion: "Strengthen calls to action and reduce friction on the conversion path",
			Impact:     "high",
		},
	},
	{
		applies: func(m map[string]interface{}) bool {
			views, ok := floatMetric(m, "views")
			tested, _ := boolMetric(m, "abTested")
			return ok && views > 1000 && !tested
		},
		suggestion: Suggestion{
			Type:       "ab_testing",
			Priority:   "medium",
			Suggestion: "Traffic is high enough to A/B test headlines and layout variants",
			Impact:     "medium",
		},
	},
}

// TrackContentPerformance upserts a performance record for a content id.
// Existing records are merged field-by-field, never replaced wholesale.
func (e *Engine) TrackContentPerformance(contentID string, metrics map[string]interface{}) *PerformanceRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	rec, ok := e.performance[contentID]
	if !ok {
		rec = &PerformanceRecord{
			ContentID: contentID,
			Metrics:   make(map[string]interface{}),
			TrackedAt: now,
		}
		e.performance[contentID] = rec
	}
	for k, v := range metrics {
		rec.Metrics[k] = v
	}
	rec.LastUpdated = now

	copied := *rec
	return &copied
}

// UpdatePerformanceMetrics is the merge alias callers use after the first
// tracking call.
func (e *Engine) UpdatePerformanceMetrics(contentID string, metrics map[string]interface{}) *PerformanceRecord {
	return e.TrackContentPerformance(contentID, metrics)
}

// GetTopPerformingContent returns up to limit records sorted descending by
// engagement; records without an engagement metric sort as zero.
func (e *Engine) GetTopPerformingContent(limit int) []*PerformanceRecord {
	e.mu.RLock()
	records := make([]*PerformanceRecord, 0, len(e.performance))
	for _, rec := range e.performance {
		copied := *rec
		records = append(records, &copied)
	}
	e.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return engagementOf(records[i]) > engagementOf(records[j])
	})

	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// GenerateOptimizationSuggestions runs the rule table against a content
// id's metrics. No performance record means no suggestions.
func (e *Engine) GenerateOptimizationSuggestions(contentID string) []Suggestion {
	e.mu.RLock()
	rec, ok := e.performance[contentID]
	e.mu.RUnlock()
	if !ok {
		return []Suggestion{}
	}

	suggestions := []Suggestion{}
	for _, rule := range suggestionRules {
		if rule.applies(rec.Metrics) {
			suggestions = append(suggestions, rule.suggestion)
		}
	}
	return suggestions
}

// GetDashboard aggregates workflow counts, average engagement and the
// number of high-priority suggestions across all tracked content.
func (e *Engine) GetDashboard() Dashboard {
	e.mu.RLock()
	dash := Dashboard{
		Approved: len(e.approved),
		Rejected: len(e.rejected),
	}
	for _, sub := range e.pending {
		if sub.Status == StatusRevisionRequested {
			dash.RevisionRequested++
		} else {
			dash.Pending++
		}
	}

	var totalEngagement float64
	var contentIDs []string
	for id, rec := range e.performance {
		totalEngagement += engagementOf(rec)
		contentIDs = append(contentIDs, id)
	}
	if n := len(e.performance); n > 0 {
		dash.AverageEngagement = totalEngagement / float64(n)
	}
	e.mu.RUnlock()

	for _, id := range contentIDs {
		for _, s := range e.GenerateOptimizationSuggestions(id) {
			if s.Priority == "high" {
				dash.HighPrioritySuggestions++
			}
		}
	}
	return dash
}

func engagementOf(rec *PerformanceRecord) float64 {
	v, _ := floatMetric(rec.Metrics, "engagement")
	return v
}

// floatMetric reads a numeric metric regardless of how JSON decoding or a
// snapshot restore typed it.
func floatMetric(metrics map[string]interface{}, key string) (float64, bool) {
	raw, ok := metrics[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func boolMetric(metrics map[string]interface{}, key string) (bool, bool) {
	raw, ok := metrics[key]
	if !ok {
		return false, false
	}
	v, ok := raw.(bool)
	return v, ok
}
