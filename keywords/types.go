package keywords

// Candidate is an immutable scoring snapshot for one keyword. Re-scoring
// produces new candidates rather than mutating existing ones.
type Candidate struct {
	Keyword      string   `json:"keyword"`
	Trend        float64  `json:"trend"`
	SearchVolume int      `json:"searchVolume"`
	Difficulty   float64  `json:"difficulty"`
	Opportunity  float64  `json:"opportunity"`
	Category     string   `json:"category"`
	ContentTypes []string `json:"recommendedContentTypes"`
}

// Gap is a target-industry keyword no tracked competitor appears to target.
type Gap struct {
	Keyword     string `json:"keyword"`
	Industry    string `json:"industry"`
	Opportunity string `json:"opportunity"`
	Reason      string `json:"reason"`
}

// Alert flags a bucket of notable opportunities.
type Alert struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Count    int      `json:"count"`
	Keywords []string `json:"keywords"`
}

// Industry is a named, ordered keyword list. Order matters: category
// assignment is first-match-wins over the configured industry slice.
type Industry struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// TrendData is the shape returned by a trend/volume source.
type TrendData struct {
	Trend          float64  `json:"trend"`
	SearchVolume   int      `json:"searchVolume"`
	RelatedQueries []string `json:"relatedQueries,omitempty"`
	RelatedTopics  []string `json:"relatedTopics,omitempty"`
}
