package domain

// MatchRank orders candidate quality classes. Exact key equality always
// beats substring containment, which always beats plain token overlap.
type MatchRank int

const (
	RankTokenOverlap MatchRank = iota
	RankSubstring
	RankExact
)

// MatchCandidate is one ranked reference-table candidate for a query.
type MatchCandidate struct {
	Key           string           `json:"key"`
	Rank          MatchRank        `json:"rank"`
	SharedTokens  int              `json:"sharedTokens"`
	MatchedTokens []string         `json:"matchedTokens,omitempty"`
	Profile       NutritionProfile `json:"profile"`
}
