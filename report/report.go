// Package report composes the analyzer, keyword scorer and workflow engine
// into a single snapshot for the presentation layer.
package report

import (
	"context"
	"time"

	"github.com/contentiq/backend/analyzer"
	"github.com/contentiq/backend/keywords"
	"github.com/contentiq/backend/workflow"
)

// Report is the aggregate the UI layer renders. TrendDegraded is set when
// any keyword score was computed from synthetic fallback data, so the
// dashboard can show "fetch failed" instead of presenting degraded numbers
// as real ones.
type Report struct {
	GeneratedAt   time.Time                   `json:"generatedAt"`
	Readability   analyzer.ReadabilityReport  `json:"readability"`
	Compatibility analyzer.CompatibilityScore `json:"compatibility"`
	VoiceSearch   analyzer.VoiceSearchProfile `json:"voiceSearch"`
	Opportunities []keywords.Candidate        `json:"opportunities"`
	Gaps          []keywords.Gap              `json:"competitorGaps"`
	Alerts        []keywords.Alert            `json:"alerts"`
	TrendDegraded bool                        `json:"trendDegraded"`
	Workflow      workflow.Dashboard          `json:"workflow"`
}

// Service wires the three scoring components together.
type Service struct {
	analyzer *analyzer.Analyzer
	scorer   *keywords.Scorer
	engine   *workflow.Engine
}

// NewService builds the facade over already-constructed components.
func NewService(a *analyzer.Analyzer, s *keywords.Scorer, e *workflow.Engine) *Service {
	return &Service{analyzer: a, scorer: s, engine: e}
}

// Generate runs every scoring component against the inputs and attaches a
// current workflow dashboard snapshot.
func (s *Service) Generate(ctx context.Context, doc analyzer.Document, competitorSets map[string][]string, technology []string) Report {
	opportunities, degraded := s.scorer.FindOpportunities(ctx, competitorSets, technology)

	return Report{
		GeneratedAt:   time.Now(),
		Readability:   s.analyzer.AnalyzeReadability(doc.Text),
		Compatibility: s.analyzer.CheckGPTCompatibility(doc),
		VoiceSearch:   s.analyzer.OptimizeForVoiceSearch(doc),
		Opportunities: opportunities,
		Gaps:          s.scorer.GapAnalysis(competitorSets),
		Alerts:        s.scorer.GenerateAlerts(opportunities),
		TrendDegraded: degraded,
		Workflow:      s.engine.GetDashboard(),
	}
}
