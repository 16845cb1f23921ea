package workflow

import "time"

// Submission statuses. Approved and rejected are terminal;
// revision_requested stays in the pending queue until a reviewer approves
// or rejects the revised content under the same id.
const (
	StatusPending           = "pending"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusRevisionRequested = "revision_requested"
)

// Priorities derived at submission time.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ContentInput is the payload a CMS hands to the approval queue.
type ContentInput struct {
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Body       string   `json:"body,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	WordCount  int      `json:"wordCount"`
	Complexity string   `json:"complexity,omitempty"`
	Urgency    string   `json:"urgency,omitempty"`
}

// Submission tracks one content item through the approval workflow.
type Submission struct {
	ID                     string       `json:"id"`
	Content                ContentInput `json:"content"`
	Status                 string       `json:"status"`
	Priority               string       `json:"priority"`
	EstimatedReviewMinutes int          `json:"estimatedReviewTime"`
	SubmittedAt            time.Time    `json:"submittedAt"`
	Reviewer               string       `json:"reviewer,omitempty"`
	ReviewedAt             time.Time    `json:"reviewedAt,omitempty"`
	Notes                  string       `json:"notes,omitempty"`
	Reason                 string       `json:"reason,omitempty"`
	RevisionBy             string       `json:"revisionBy,omitempty"`
	RevisionAt             time.Time    `json:"revisionAt,omitempty"`
	Feedback               string       `json:"feedback,omitempty"`
}

// PerformanceRecord holds arbitrary named metrics for one content id.
// Updates merge field-by-field rather than replacing the record.
type PerformanceRecord struct {
	ContentID   string                 `json:"contentId"`
	Metrics     map[string]interface{} `json:"metrics"`
	TrackedAt   time.Time              `json:"trackedAt"`
	LastUpdated time.Time              `json:"lastUpdated"`
}

// Suggestion is a rule-derived optimization recommendation.
type Suggestion struct {
	Type       string `json:"type"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"`
}

// Dashboard aggregates workflow and performance state for display.
type Dashboard struct {
	Pending                 int     `json:"pending"`
	Approved                int     `json:"approved"`
	Rejected                int     `json:"rejected"`
	RevisionRequested       int     `json:"revisionRequested"`
	AverageEngagement       float64 `json:"averageEngagement"`
	HighPrioritySuggestions int     `json:"highPrioritySuggestions"`
}

// State is a serializable snapshot of the engine, used by the store layer
// to persist workflow data across restarts.
type State struct {
	Pending     map[string]*Submission        `json:"pending"`
	Approved    map[string]*Submission        `json:"approved"`
	Rejected    map[string]*Submission        `json:"rejected"`
	Performance map[string]*PerformanceRecord `json:"performance"`
}
