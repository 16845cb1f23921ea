package workflow

import (
	"errors"
	"strings"
	"testing"
)

func blogPost() ContentInput {
	return ContentInput{
		Type:      "blog_post",
		Title:     "Shipping faster",
		Keywords:  []string{"x"},
		WordCount: 1200,
	}
}

func TestSubmitForApproval(t *testing.T) {
	e := NewEngine()

	t.Run("IDFormat", func(t *testing.T) {
		id := e.SubmitForApproval(blogPost())
		if !strings.HasPrefix(id, "cms_") {
			t.Errorf("Unexpected id format: %q", id)
		}
		if parts := strings.Split(id, "_"); len(parts) != 3 {
			t.Errorf("Expected cms_<timestamp>_<random>, got %q", id)
		}
	})

	t.Run("BlogPostWithKeywordsIsHighPriority", func(t *testing.T) {
		id := e.SubmitForApproval(blogPost())
		sub := findPending(t, e, id)
		if sub.Priority != PriorityHigh {
			t.Errorf("Expected high priority, got %q", sub.Priority)
		}
		// 30 * 1.5 (blog) * 1.3 (>1000 words) = 58.5, rounds to 59.
		if sub.EstimatedReviewMinutes != 59 {
			t.Errorf("Expected 59 minutes, got %d", sub.EstimatedReviewMinutes)
		}
		if sub.Status != StatusPending {
			t.Errorf("New submission should be pending, got %q", sub.Status)
		}
	})

	t.Run("ImmediateUrgencyOverrides", func(t *testing.T) {
		content := blogPost()
		content.Urgency = "immediate"
		id := e.SubmitForApproval(content)
		if sub := findPending(t, e, id); sub.Priority != PriorityUrgent {
			t.Errorf("Expected urgent priority, got %q", sub.Priority)
		}
	})

	t.Run("PlainContentIsMedium", func(t *testing.T) {
		id := e.SubmitForApproval(ContentInput{Type: "landing_page", WordCount: 200})
		sub := findPending(t, e, id)
		if sub.Priority != PriorityMedium {
			t.Errorf("Expected medium priority, got %q", sub.Priority)
		}
		if sub.EstimatedReviewMinutes != 30 {
			t.Errorf("Expected base 30 minutes, got %d", sub.EstimatedReviewMinutes)
		}
	})

	t.Run("HighComplexityDoubles", func(t *testing.T) {
		content := blogPost()
		content.Complexity = "high"
		id := e.SubmitForApproval(content)
		// 30 * 1.5 * 1.3 * 2 = 117.
		if sub := findPending(t, e, id); sub.EstimatedReviewMinutes != 117 {
			t.Errorf("Expected 117 minutes, got %d", sub.EstimatedReviewMinutes)
		}
	})
}

func TestApproveContent(t *testing.T) {
	e := NewEngine()
	id := e.SubmitForApproval(blogPost())

	sub, err := e.ApproveContent(id, "reviewer-1", "looks good")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if sub.Status != StatusApproved {
		t.Errorf("Expected approved status, got %q", sub.Status)
	}
	if sub.Reviewer != "reviewer-1" || sub.Notes != "looks good" {
		t.Errorf("Reviewer/notes not stamped: %+v", sub)
	}
	if sub.ReviewedAt.IsZero() {
		t.Error("ReviewedAt not stamped")
	}

	state := e.Snapshot()
	if _, still := state.Pending[id]; still {
		t.Error("Approved submission still in pending queue")
	}
	if approved, ok := state.Approved[id]; !ok {
		t.Error("Approved submission missing from approved collection")
	} else if approved.Status != StatusApproved {
		t.Errorf("Stored status wrong: %q", approved.Status)
	}
	if len(state.Approved) != 1 {
		t.Errorf("Expected exactly one approved submission, got %d", len(state.Approved))
	}
}

func TestRejectContent(t *testing.T) {
	e := NewEngine()
	id := e.SubmitForApproval(blogPost())

	sub, err := e.RejectContent(id, "reviewer-2", "off brand")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if sub.Status != StatusRejected || sub.Reason != "off brand" {
		t.Errorf("Reject not stamped: %+v", sub)
	}

	state := e.Snapshot()
	if _, still := state.Pending[id]; still {
		t.Error("Rejected submission still in pending queue")
	}
	if _, ok := state.Rejected[id]; !ok {
		t.Error("Rejected submission missing from rejected collection")
	}
}

func TestRequestRevision(t *testing.T) {
	e := NewEngine()
	id := e.SubmitForApproval(blogPost())

	sub, err := e.RequestRevision(id, "reviewer-3", "tighten the intro")
	if err != nil {
		t.Fatalf("RequestRevision failed: %v", err)
	}
	if sub.Status != StatusRevisionRequested || sub.Feedback != "tighten the intro" {
		t.Errorf("Revision not stamped: %+v", sub)
	}
	if sub.RevisionBy != "reviewer-3" || sub.RevisionAt.IsZero() {
		t.Errorf("Revision reviewer/timestamp not stamped: %+v", sub)
	}

	// Revision is non-terminal: the submission stays in the pending queue
	// and a later approve on the same id completes the cycle.
	if _, still := e.Snapshot().Pending[id]; !still {
		t.Fatal("Revision-requested submission left the pending queue")
	}

	approved, err := e.ApproveContent(id, "reviewer-4", "revision accepted")
	if err != nil {
		t.Fatalf("Approve after revision failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("Expected approved after revision, got %q", approved.Status)
	}
	// The terminal transition keeps its own stamps and leaves the revision
	// stamps untouched.
	if approved.RevisionBy != "reviewer-3" || approved.Reviewer != "reviewer-4" {
		t.Errorf("Transition stamps overwrote each other: %+v", approved)
	}
}

func TestUnknownIDFailsWithNotFound(t *testing.T) {
	e := NewEngine()
	e.SubmitForApproval(blogPost())
	before := e.Snapshot()

	ops := map[string]func() error{
		"approve": func() error { _, err := e.ApproveContent("cms_0_missing", "r", "n"); return err },
		"reject":  func() error { _, err := e.RejectContent("cms_0_missing", "r", "n"); return err },
		"revise":  func() error { _, err := e.RequestRevision("cms_0_missing", "r", "n"); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}

	after := e.Snapshot()
	if len(after.Pending) != len(before.Pending) ||
		len(after.Approved) != len(before.Approved) ||
		len(after.Rejected) != len(before.Rejected) {
		t.Error("Failed operations must leave all collections unchanged")
	}
}

func TestSnapshotRestore(t *testing.T) {
	e := NewEngine()
	id := e.SubmitForApproval(blogPost())
	e.TrackContentPerformance(id, map[string]interface{}{"engagement": 0.7})

	restored := NewEngine()
	restored.Restore(e.Snapshot())

	if _, ok := restored.Snapshot().Pending[id]; !ok {
		t.Error("Pending submission lost in snapshot round trip")
	}
	if got := restored.GetTopPerformingContent(1); len(got) != 1 || got[0].ContentID != id {
		t.Errorf("Performance record lost in snapshot round trip: %+v", got)
	}

	// The snapshot is a copy: mutating the restored engine must not leak
	// back into the original.
	if _, err := restored.ApproveContent(id, "r", ""); err != nil {
		t.Fatalf("Approve on restored engine failed: %v", err)
	}
	if _, still := e.Snapshot().Pending[id]; !still {
		t.Error("Restore aliased state with the source engine")
	}
}

func findPending(t *testing.T, e *Engine, id string) *Submission {
	t.Helper()
	sub, ok := e.Snapshot().Pending[id]
	if !ok {
		t.Fatalf("Submission %s not in pending queue", id)
	}
	return sub
}
