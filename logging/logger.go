package logging

import (
	"os"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics aggregates service usage. It distinguishes degraded results
// (synthetic trend data served) from plain errors so operators can tell
// "scored from fallback data" apart from "request failed".
type Statistics struct {
	AnalysisRequests int                  `json:"analysisRequests"`
	KeywordScans     int                  `json:"keywordScans"`
	ReportRequests   int                  `json:"reportRequests"`
	GenerationCalls  int                  `json:"generationCalls"`
	DegradedResults  int                  `json:"degradedResults"`
	ErrorCount       int                  `json:"errorCount"`
	RecentClients    map[string]time.Time `json:"recentClients"`
	AverageLatencyMs float64              `json:"averageLatencyMs"`
	totalLatencyMs   float64
	requestCount     int
	mutex            sync.RWMutex
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates the process-wide statistics aggregate.
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			RecentClients: make(map[string]time.Time),
		}
	})
	return stats
}

// TrackClient records a calling IP.
func (s *Statistics) TrackClient(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.RecentClients[ip] = time.Now()
}

// TrackRequest records one API call by kind ("analysis", "keywords",
// "report" or "generation") together with its latency and outcome.
func (s *Statistics) TrackRequest(kind string, latencyMs float64, hasError, degraded bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch kind {
	case "analysis":
		s.AnalysisRequests++
	case "keywords":
		s.KeywordScans++
	case "report":
		s.ReportRequests++
	case "generation":
		s.GenerationCalls++
	}

	if hasError {
		s.ErrorCount++
	}
	if degraded {
		s.DegradedResults++
	}

	s.totalLatencyMs += latencyMs
	s.requestCount++
	s.AverageLatencyMs = s.totalLatencyMs / float64(s.requestCount)
}

// ActiveClientCount returns the number of distinct clients in the last 24
// hours.
func (s *Statistics) ActiveClientCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, lastSeen := range s.RecentClients {
		if lastSeen.After(cutoff) {
			count++
		}
	}
	return count
}

// ErrorRate returns the error rate as a percentage of all tracked calls.
func (s *Statistics) ErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.requestCount == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.requestCount) * 100
}

// GetStatistics returns the current aggregates. Full detail only in
// development mode; production callers get the summary view.
func (s *Statistics) GetStatistics() map[string]interface{} {
	summary := map[string]interface{}{
		"activeClients24h": s.ActiveClientCount(),
		"errorRate":        s.ErrorRate(),
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary["totalRequests"] = s.requestCount
	summary["averageLatencyMs"] = s.AverageLatencyMs
	summary["degradedResults"] = s.DegradedResults

	if os.Getenv(ENV_DEV_MODE) != "true" {
		return summary
	}

	summary["analysisRequests"] = s.AnalysisRequests
	summary["keywordScans"] = s.KeywordScans
	summary["reportRequests"] = s.ReportRequests
	summary["generationCalls"] = s.GenerationCalls
	return summary
}
