package domain

// RecommendationScore is computed per request and never persisted.
// Reasons are human-readable justifications in the order the scoring
// factors were evaluated.
type RecommendationScore struct {
	Spot    Spot     `json:"spot"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
