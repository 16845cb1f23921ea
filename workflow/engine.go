package workflow

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation names a submission id that is
// not in the pending queue.
var ErrNotFound = errors.New("submission not found")

const baseReviewMinutes = 30.0

// Engine owns the in-memory approval queue, terminal collections and
// performance records. All public operations are safe for concurrent use;
// a multi-instance deployment must externalize State instead.
type Engine struct {
	mu          sync.RWMutex
	pending     map[string]*Submission
	approved    map[string]*Submission
	rejected    map[string]*Submission
	performance map[string]*PerformanceRecord
	now         func() time.Time
}

// NewEngine creates an empty workflow engine.
func NewEngine() *Engine {
	return &Engine{
		pending:     make(map[string]*Submission),
		approved:    make(map[string]*Submission),
		rejected:    make(map[string]*Submission),
		performance: make(map[string]*PerformanceRecord),
		now:         time.Now,
	}
}

// SubmitForApproval enqueues content as pending and returns its id.
func (e *Engine) SubmitForApproval(content ContentInput) string {
	now := e.now()
	id := fmt.Sprintf("cms_%d_%s", now.UnixMilli(), uuid.NewString()[:8])

	sub := &Submission{
		ID:                     id,
		Content:                content,
		Status:                 StatusPending,
		Priority:               derivePriority(content),
		EstimatedReviewMinutes: estimateReviewMinutes(content),
		SubmittedAt:            now,
	}

	e.mu.Lock()
	e.pending[id] = sub
	e.mu.Unlock()
	return id
}

func derivePriority(content ContentInput) string {
	if content.Urgency == "immediate" {
		return PriorityUrgent
	}
	if content.Type == "blog_post" && len(content.Keywords) >= 1 {
		return PriorityHigh
	}
	return PriorityMedium
}

// estimateReviewMinutes composes multipliers on the 30-minute base and
// rounds half away from zero: a 1200-word blog post is 30*1.5*1.3 = 59.
func estimateReviewMinutes(content ContentInput) int {
	factor := 1.0
	if content.Type == "blog_post" {
		factor *= 1.5
	}
	if content.WordCount > 1000 {
		factor *= 1.3
	}
	if strings.EqualFold(content.Complexity, "high") {
		factor *= 2
	}
	return int(math.Round(baseReviewMinutes * factor))
}

// ApproveContent moves a pending submission to the approved collection.
func (e *Engine) ApproveContent(id, reviewer, notes string) (*Submission, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub, ok := e.pending[id]
	if !ok {
		return nil, fmt.Errorf("approve %s: %w", id, ErrNotFound)
	}

	sub.Status = StatusApproved
	sub.Reviewer = reviewer
	sub.ReviewedAt = e.now()
	sub.Notes = notes
	delete(e.pending, id)
	e.approved[id] = sub
	return sub, nil
}

// RejectContent moves a pending submission to the rejected collection.
func (e *Engine) RejectContent(id, reviewer, reason string) (*Submission, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub, ok := e.pending[id]
	if !ok {
		return nil, fmt.Errorf("reject %s: %w", id, ErrNotFound)
	}

	sub.Status = StatusRejected
	sub.Reviewer = reviewer
	sub.ReviewedAt = e.now()
	sub.Reason = reason
	delete(e.pending, id)
	e.rejected[id] = sub
	return sub, nil
}

// RequestRevision stamps a pending submission in place. The submission
// stays in the pending queue so a later approve or reject on the same id
// completes the review cycle. Revision carries its own reviewer and
// timestamp fields: a terminal transition afterwards must not overwrite
// the revision stamps.
func (e *Engine) RequestRevision(id, reviewer, feedback string) (*Submission, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub, ok := e.pending[id]
	if !ok {
		return nil, fmt.Errorf("request revision %s: %w", id, ErrNotFound)
	}

	sub.Status = StatusRevisionRequested
	sub.RevisionBy = reviewer
	sub.RevisionAt = e.now()
	sub.Feedback = feedback
	return sub, nil
}

// PendingSubmissions returns a copy of the current pending queue.
func (e *Engine) PendingSubmissions() []*Submission {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*Submission, 0, len(e.pending))
	for _, sub := range e.pending {
		copied := *sub
		out = append(out, &copied)
	}
	return out
}

// Snapshot returns a deep copy of the engine state for persistence.
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return State{
		Pending:     copySubmissions(e.pending),
		Approved:    copySubmissions(e.approved),
		Rejected:    copySubmissions(e.rejected),
		Performance: copyRecords(e.performance),
	}
}

// Restore replaces the engine state with a previously persisted snapshot.
func (e *Engine) Restore(state State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = copySubmissions(state.Pending)
	e.approved = copySubmissions(state.Approved)
	e.rejected = copySubmissions(state.Rejected)
	e.performance = copyRecords(state.Performance)
	if e.pending == nil {
		e.pending = make(map[string]*Submission)
	}
	if e.approved == nil {
		e.approved = make(map[string]*Submission)
	}
	if e.rejected == nil {
		e.rejected = make(map[string]*Submission)
	}
	if e.performance == nil {
		e.performance = make(map[string]*PerformanceRecord)
	}
}

func copySubmissions(in map[string]*Submission) map[string]*Submission {
	if in == nil {
		return nil
	}
	out := make(map[string]*Submission, len(in))
	for id, sub := range in {
		copied := *sub
		out[id] = &copied
	}
	return out
}

func copyRecords(in map[string]*PerformanceRecord) map[string]*PerformanceRecord {
	if in == nil {
		return nil
	}
	out := make(map[string]*PerformanceRecord, len(in))
	for id, rec := range in {
		copied := *rec
		copied.Metrics = make(map[string]interface{}, len(rec.Metrics))
		for k, v := range rec.Metrics {
			copied.Metrics[k] = v
		}
		out[id] = &copied
	}
	return out
}
