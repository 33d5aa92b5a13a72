// Package fuzzy ranks knowledge-base entries against an unrecognized token
// and surfaces the best candidate when it clears the acceptance floor. The
// matcher holds no mutable state and is safe for concurrent use.
package fuzzy

import (
	"github.com/agnivade/levenshtein"
)

const (
	// DefaultFloor is the minimum similarity before a suggestion is
	// surfaced. Chosen so single-character typos on typical command
	// lengths match while unrelated short names do not.
	DefaultFloor = 0.90

	// DefaultMinTokenLength suppresses suggestions for trivial
	// identifiers, which would otherwise be noisy.
	DefaultMinTokenLength = 5
)

// Match is an accepted suggestion.
type Match struct {
	Name  string
	Score float64
}

// Matcher scores candidates with normalized edit distance.
type Matcher struct {
	floor       float64
	minTokenLen int
}

// New creates a matcher. Non-positive arguments fall back to the defaults.
func New(floor float64, minTokenLen int) *Matcher {
	if floor <= 0 {
		floor = DefaultFloor
	}
	if minTokenLen <= 0 {
		minTokenLen = DefaultMinTokenLength
	}
	return &Matcher{floor: floor, minTokenLen: minTokenLen}
}

// Default returns a matcher with the standard floor and token length.
func Default() *Matcher {
	return New(DefaultFloor, DefaultMinTokenLength)
}

// Similarity returns a normalized edit-distance similarity in [0, 1].
// Identical strings score 1; strings with nothing in common score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// Suggest returns the best candidate for token. It reports false when the
// token is too short or no candidate clears the floor.
//
// Ties are broken deterministically: higher score first, then the smaller
// absolute length difference from the token, then lexicographic order.
func (m *Matcher) Suggest(token string, candidates []string) (Match, bool) {
	if len([]rune(token)) < m.minTokenLen {
		return Match{}, false
	}
	var best Match
	found := false
	for _, cand := range candidates {
		score := Similarity(token, cand)
		if score < m.floor {
			continue
		}
		if !found || better(token, cand, score, best) {
			best = Match{Name: cand, Score: score}
			found = true
		}
	}
	return best, found
}

// better reports whether (cand, score) should replace the current best.
func better(token, cand string, score float64, best Match) bool {
	if score != best.Score {
		return score > best.Score
	}
	dc := absDiff(len(cand), len(token))
	db := absDiff(len(best.Name), len(token))
	if dc != db {
		return dc < db
	}
	return cand < best.Name
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
