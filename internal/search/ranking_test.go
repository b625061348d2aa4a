package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePullsTowardPrior(t *testing.T) {
	cfg := DefaultRankingConfig()

	// no reviews scores exactly the prior mean
	assert.InDelta(t, 4.0, cfg.Score(0, 0), 1e-9)

	// (150*4.8 + 10*4.0) / 160
	assert.InDelta(t, 4.75, cfg.Score(4.8, 150), 1e-9)

	// many reviews converge toward the raw rating
	assert.InDelta(t, 4.8, cfg.Score(4.8, 100000), 1e-3)
}

func TestScorePrefersProvenOverSparse(t *testing.T) {
	cfg := DefaultRankingConfig()

	proven := cfg.Score(4.8, 150) // high rating, many reviews
	sparse := cfg.Score(4.9, 3)   // higher rating, almost no reviews

	assert.Greater(t, proven, sparse)
}
