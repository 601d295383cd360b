// Package match resolves a free-text query against the knowledge base using
// a tiered strategy: exact match, containment, then similarity scoring.
// Earlier tiers are cheaper and more precise, so the first tier to produce
// an answer wins.
package match

import (
	"strings"
	"unicode"

	"github.com/dodey917/Iknowall1bot/internal/kb"
)

// DefaultThreshold is the similarity ratio a fuzzy match must reach.
const DefaultThreshold = 0.6

// Resolve finds the best answer for query among records. The query must
// already be normalized (trimmed, lowercased) by the caller; an empty query
// never matches. The second return is false when nothing matched.
//
// Records are scanned in document order in every tier and ties go to the
// first record seen.
func Resolve(query string, records []kb.Record, threshold float64) (string, bool) {
	if query == "" {
		return "", false
	}

	// Tier 1: exact match short-circuits everything else.
	for _, r := range records {
		if r.Question == query {
			return r.Answer, true
		}
	}

	// Tier 2: containment in either direction.
	for _, r := range records {
		if strings.Contains(r.Question, query) || strings.Contains(query, r.Question) {
			return r.Answer, true
		}
	}

	// Tier 3: similarity ratio against the threshold. Strictly-greater
	// comparison keeps the first of any tied records.
	var (
		best      kb.Record
		bestScore float64
		found     bool
	)
	for _, r := range records {
		score := Ratio(query, r.Question)
		if score > bestScore {
			bestScore = score
			best = r
			found = true
		}
	}
	if found && bestScore >= threshold {
		return best.Answer, true
	}

	// Tier 3 fallback: word overlap. Accept a record sharing at least half
	// the query's words, most shared words first.
	if answer, ok := overlapMatch(query, records); ok {
		return answer, true
	}

	return "", false
}

// Ratio computes a similarity score in [0,1] between two strings, based on
// the longest common subsequence of their runes: 2*LCS / (len(a)+len(b)).
// Identical strings score 1, strings with nothing in common score 0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	lcs := lcsLength(ra, rb)
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// lcsLength computes the longest common subsequence length with a rolling
// single-row table, O(len(b)) space.
func lcsLength(a, b []rune) int {
	row := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0 // row[j-1] from the previous iteration of i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			if a[i-1] == b[j-1] {
				row[j] = prev + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			prev = cur
		}
	}
	return row[len(b)]
}

func overlapMatch(query string, records []kb.Record) (string, bool) {
	queryWords := tokenSet(query)
	if len(queryWords) == 0 {
		return "", false
	}

	var (
		bestAnswer string
		bestShared int
		found      bool
	)
	for _, r := range records {
		shared := 0
		for w := range tokenSet(r.Question) {
			if queryWords[w] {
				shared++
			}
		}
		if shared > bestShared && float64(shared) >= float64(len(queryWords))/2 {
			bestShared = shared
			bestAnswer = r.Answer
			found = true
		}
	}
	return bestAnswer, found
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range tokens(s) {
		set[w] = true
	}
	return set
}

func tokens(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
