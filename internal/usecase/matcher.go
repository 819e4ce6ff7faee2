package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/eatwise/backend/internal/domain"
	"github.com/eatwise/backend/internal/reference"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// matcherStopWords are tokens that carry no food identity: basic English
// stop words plus preparation and marketing noise the model tends to emit.
var matcherStopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "with": true, "for": true,
	// Preparation noise
	"grilled": true, "roasted": true, "fried": true, "baked": true,
	"steamed": true, "boiled": true, "cooked": true, "raw": true,
	"fresh": true, "frozen": true, "sliced": true, "diced": true,
	"chopped": true, "organic": true,
	// Quantity noise
	"some": true, "small": true, "medium": true, "large": true,
	"piece": true, "pieces": true, "serving": true,
}

// MatcherConfig holds configuration for the food matcher
type MatcherConfig struct {
	MinSharedTokens    int
	EnableDebugLogging bool
}

// Matcher ranks reference-table entries against free-text food names.
// It is pure and deterministic for a given table and query.
type Matcher struct {
	minSharedTokens    int
	enableDebugLogging bool
	keys               []string
}

// NewMatcher creates a matcher over the reference nutrition table
func NewMatcher(config MatcherConfig) *Matcher {
	minTokens := config.MinSharedTokens
	if minTokens <= 0 {
		minTokens = 1 // At least one shared meaningful token
	}

	// Sorted key snapshot so candidate iteration order is deterministic.
	keys := reference.Keys()
	sort.Strings(keys)

	return &Matcher{
		minSharedTokens:    minTokens,
		enableDebugLogging: config.EnableDebugLogging,
		keys:               keys,
	}
}

// Match returns reference-table candidates for a food name, best first.
// Ranking: exact key equality beats substring containment beats shared-token
// overlap; within a rank, more shared tokens win, then the shorter key, then
// alphabetical order. An empty result is the miss signal that routes the
// ingredient to the category estimator.
func (m *Matcher) Match(name string) []domain.MatchCandidate {
	query := normalizeFoodName(name)
	if query == "" {
		return nil
	}
	queryTokens := foodTokens(query)

	var candidates []domain.MatchCandidate
	for _, key := range m.keys {
		cand, ok := m.evaluate(query, queryTokens, key)
		if ok {
			candidates = append(candidates, cand)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rank != candidates[j].Rank {
			return candidates[i].Rank > candidates[j].Rank
		}
		if candidates[i].SharedTokens != candidates[j].SharedTokens {
			return candidates[i].SharedTokens > candidates[j].SharedTokens
		}
		if len(candidates[i].Key) != len(candidates[j].Key) {
			return len(candidates[i].Key) < len(candidates[j].Key)
		}
		return candidates[i].Key < candidates[j].Key
	})

	if m.enableDebugLogging {
		if len(candidates) == 0 {
			log.Printf("[MATCH] no candidates for %q", name)
		} else {
			log.Printf("[MATCH] %q -> %q (rank %d, %d shared)",
				name, candidates[0].Key, candidates[0].Rank, candidates[0].SharedTokens)
		}
	}

	return candidates
}

// evaluate scores one reference key against the query
func (m *Matcher) evaluate(query string, queryTokens []string, key string) (domain.MatchCandidate, bool) {
	profile, _ := reference.Lookup(key)
	keyTokens := foodTokens(key)

	shared, matched := sharedTokens(queryTokens, keyTokens)

	if query == key {
		return domain.MatchCandidate{
			Key:           key,
			Rank:          domain.RankExact,
			SharedTokens:  shared,
			MatchedTokens: matched,
			Profile:       profile,
		}, true
	}

	// Substring containment in either direction still requires token
	// overlap, so "rice" inside "price list" cannot match via raw strings.
	if shared >= m.minSharedTokens &&
		(strings.Contains(key, query) || strings.Contains(query, key)) {
		return domain.MatchCandidate{
			Key:           key,
			Rank:          domain.RankSubstring,
			SharedTokens:  shared,
			MatchedTokens: matched,
			Profile:       profile,
		}, true
	}

	if shared >= m.minSharedTokens {
		return domain.MatchCandidate{
			Key:           key,
			Rank:          domain.RankTokenOverlap,
			SharedTokens:  shared,
			MatchedTokens: matched,
			Profile:       profile,
		}, true
	}

	return domain.MatchCandidate{}, false
}

// normalizeFoodName lowercases a food name and strips punctuation and
// redundant whitespace.
func normalizeFoodName(name string) string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(name), " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// foodTokens splits a normalized name into meaningful tokens: stop words
// and one-character fragments are dropped.
func foodTokens(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(s) {
		if len(word) <= 1 {
			continue
		}
		if matcherStopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// sharedTokens returns the count and list of tokens common to both slices
func sharedTokens(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool, len(tokens1))
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}
