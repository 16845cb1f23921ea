package workflow

import (
	"testing"
)

func TestTrackContentPerformance(t *testing.T) {
	e := NewEngine()

	t.Run("CreatesRecord", func(t *testing.T) {
		rec := e.TrackContentPerformance("content-1", map[string]interface{}{
			"engagement": 0.8,
			"views":      500,
		})
		if rec.ContentID != "content-1" {
			t.Errorf("Wrong content id: %q", rec.ContentID)
		}
		if rec.TrackedAt.IsZero() || rec.LastUpdated.IsZero() {
			t.Error("Timestamps not set on first tracking call")
		}
	})

	t.Run("MergesInsteadOfReplacing", func(t *testing.T) {
		e.UpdatePerformanceMetrics("content-1", map[string]interface{}{
			"seoScore": 85.0,
		})
		top := e.GetTopPerformingContent(1)
		if len(top) != 1 {
			t.Fatalf("Expected one record, got %d", len(top))
		}
		metrics := top[0].Metrics
		if _, ok := metrics["engagement"]; !ok {
			t.Error("Merge dropped the original engagement metric")
		}
		if _, ok := metrics["seoScore"]; !ok {
			t.Error("Merge did not add the new metric")
		}
	})
}

func TestGetTopPerformingContent(t *testing.T) {
	e := NewEngine()
	e.TrackContentPerformance("low", map[string]interface{}{"engagement": 0.2})
	e.TrackContentPerformance("high", map[string]interface{}{"engagement": 0.9})
	e.TrackContentPerformance("untracked-engagement", map[string]interface{}{"views": 10})

	top := e.GetTopPerformingContent(2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(top))
	}
	if top[0].ContentID != "high" || top[1].ContentID != "low" {
		t.Errorf("Wrong ordering: %q, %q", top[0].ContentID, top[1].ContentID)
	}
}

func TestGenerateOptimizationSuggestions(t *testing.T) {
	e := NewEngine()

	t.Run("NoRecordMeansNoSuggestions", func(t *testing.T) {
		if got := e.GenerateOptimizationSuggestions("missing"); len(got) != 0 {
			t.Errorf("Expected empty list, got %+v", got)
		}
	})

	t.Run("AllFourRulesFire", func(t *testing.T) {
		e.TrackContentPerformance("content-1", map[string]interface{}{
			"seoScore":       70.0,
			"engagement":     0.5,
			"conversionRate": 0.01,
			"views":          1500.0,
			"abTested":       false,
		})

		suggestions := e.GenerateOptimizationSuggestions("content-1")
		if len(suggestions) != 4 {
			t.Fatalf("Expected exactly four suggestions, got %d: %+v", len(suggestions), suggestions)
		}

		expected := []struct {
			typ      string
			priority string
		}{
			{"seo", "high"},
			{"engagement", "medium"},
			{"conversion", "high"},
			{"ab_testing", "medium"},
		}
		for i, want := range expected {
			if suggestions[i].Type != want.typ {
				t.Errorf("Suggestion %d type = %q, expected %q", i, suggestions[i].Type, want.typ)
			}
			if suggestions[i].Priority != want.priority {
				t.Errorf("Suggestion %d priority = %q, expected %q", i, suggestions[i].Priority, want.priority)
			}
		}
	})

	t.Run("HealthyMetricsNoSuggestions", func(t *testing.T) {
		e.TrackContentPerformance("content-2", map[string]interface{}{
			"seoScore":       95.0,
			"engagement":     0.8,
			"conversionRate": 0.05,
			"views":          500.0,
		})
		if got := e.GenerateOptimizationSuggestions("content-2"); len(got) != 0 {
			t.Errorf("Expected no suggestions for healthy metrics, got %+v", got)
		}
	})

	t.Run("ABTestedSuppressesTestingSuggestion", func(t *testing.T) {
		e.TrackContentPerformance("content-3", map[string]interface{}{
			"views":    2000.0,
			"abTested": true,
		})
		for _, s := range e.GenerateOptimizationSuggestions("content-3") {
			if s.Type == "ab_testing" {
				t.Error("ab_testing suggestion emitted for already-tested content")
			}
		}
	})
}

func TestGetDashboard(t *testing.T) {
	e := NewEngine()

	a := e.SubmitForApproval(blogPost())
	b := e.SubmitForApproval(blogPost())
	c := e.SubmitForApproval(blogPost())
	d := e.SubmitForApproval(blogPost())

	if _, err := e.ApproveContent(a, "r", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := e.RejectContent(b, "r", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := e.RequestRevision(c, "r", "redo"); err != nil {
		t.Fatal(err)
	}
	_ = d

	e.TrackContentPerformance(a, map[string]interface{}{"engagement": 0.4, "seoScore": 60.0})
	e.TrackContentPerformance(b, map[string]interface{}{"engagement": 0.8})

	dash := e.GetDashboard()
	if dash.Pending != 1 {
		t.Errorf("Expected 1 pending, got %d", dash.Pending)
	}
	if dash.Approved != 1 || dash.Rejected != 1 || dash.RevisionRequested != 1 {
		t.Errorf("Wrong terminal counts: %+v", dash)
	}
	if diff := dash.AverageEngagement - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected average engagement 0.6, got %v", dash.AverageEngagement)
	}
	// seoScore 60 fires the high-priority SEO rule; engagement 0.4 fires a
	// medium one only.
	if dash.HighPrioritySuggestions != 1 {
		t.Errorf("Expected 1 high-priority suggestion, got %d", dash.HighPrioritySuggestions)
	}
}
