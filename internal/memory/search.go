package memory

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/ariahq/aria/internal/domain"
)

// Relevance weights. The user's own words matter most, the assistant reply a
// bit less, and tag hits carry a strong boost because tags are already
// distilled key terms.
const (
	userInputWeight = 1.0
	replyWeight     = 0.7
	tagWeight       = 1.5
)

// tokenize lowercases and splits on non-letter/digit runes, keeping words
// longer than two characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// similarity is a simplified BM25-style term-frequency score: sum of
// log(1+tf) over query tokens present in the source, normalized by query
// token count. Not a cosine similarity.
func similarity(queryTokens []string, source string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	freq := make(map[string]int)
	for _, tok := range tokenize(source) {
		freq[tok]++
	}
	var sum float64
	for _, tok := range queryTokens {
		if n := freq[tok]; n > 0 {
			sum += math.Log(1 + float64(n))
		}
	}
	return sum / float64(len(queryTokens))
}

// tagOverlap is the fraction of query key-terms that appear among the
// entry's tags.
func tagOverlap(queryTokens []string, tags []string) float64 {
	if len(queryTokens) == 0 || len(tags) == 0 {
		return 0
	}
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}
	matched := 0
	for _, tok := range queryTokens {
		if _, ok := tagSet[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// recencyBoost decays linearly from the cap to zero over the recency window.
func recencyBoost(entryTime, now time.Time) float64 {
	age := now.Sub(entryTime)
	if age < 0 {
		age = 0
	}
	if age >= domain.RecencyWindow {
		return 0
	}
	return domain.RecencyBoostCap * (1 - float64(age)/float64(domain.RecencyWindow))
}

// relevance scores one entry against a query, clamped to 1.0.
func relevance(query string, entry domain.MemoryEntry, now time.Time) float64 {
	queryTokens := tokenize(query)
	score := userInputWeight*similarity(queryTokens, entry.UserInput) +
		replyWeight*similarity(queryTokens, entry.AssistantReply) +
		tagWeight*tagOverlap(queryTokens, entry.Tags) +
		recencyBoost(entry.Time(), now)
	if score > 1.0 {
		score = 1.0
	}
	return score
}
