package keywords

import (
	"context"
	"hash/fnv"
	"math/rand"
)

// TrendSource supplies trend and search-volume samples for a keyword. The
// real implementation talks to an analytics provider; the synthetic one
// stands in when no provider is configured or the provider is down.
type TrendSource interface {
	Fetch(ctx context.Context, keyword, timeframe string) (TrendData, error)
}

// SyntheticTrendSource generates plausible trend data from a seeded
// generator. The same seed and keyword always produce the same sample, so
// scoring under test is fully deterministic.
type SyntheticTrendSource struct {
	seed int64
}

// NewSyntheticTrendSource creates a synthetic source with the given seed.
func NewSyntheticTrendSource(seed int64) *SyntheticTrendSource {
	return &SyntheticTrendSource{seed: seed}
}

// Fetch returns a deterministic pseudo-random sample for the keyword.
func (s *SyntheticTrendSource) Fetch(_ context.Context, keyword, _ string) (TrendData, error) {
	h := fnv.New64a()
	h.Write([]byte(keyword))
	rng := rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))

	return TrendData{
		Trend:        float64(rng.Intn(101)),
		SearchVolume: rng.Intn(10000),
	}, nil
}
