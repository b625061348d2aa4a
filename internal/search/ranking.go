package search

// RankingConfig holds the Bayesian prior used for the default ordering.
// Passed in explicitly at construction; nothing reads it from globals.
type RankingConfig struct {
	// PriorWeight is the number of phantom reviews at PriorMean mixed into
	// every listing's average.
	PriorWeight float64
	// PriorMean is the population prior on a 5-point scale.
	PriorMean float64
}

// DefaultRankingConfig matches the production constants: ten phantom reviews
// at 4.0 stars.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{PriorWeight: 10, PriorMean: 4.0}
}

// Score computes the Bayesian-adjusted rating
//
//	(reviewCount*rating + PriorWeight*PriorMean) / (reviewCount + PriorWeight)
//
// shrinking low-review listings toward the prior so a single 5-star review
// cannot outrank a heavily reviewed 4.8.
func (c RankingConfig) Score(rating float64, reviewCount int) float64 {
	n := float64(reviewCount)
	return (n*rating + c.PriorWeight*c.PriorMean) / (n + c.PriorWeight)
}
