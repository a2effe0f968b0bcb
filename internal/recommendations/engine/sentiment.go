package engine

import "strings"

// Keyword lexicon for the comment sentiment heuristic. This is a lexical
// estimate, not semantic analysis; sarcasm and negation are not handled.
var positiveWords = map[string]struct{}{
	"good":      {},
	"great":     {},
	"excellent": {},
	"love":      {},
	"support":   {},
	"agree":     {},
}

var negativeWords = map[string]struct{}{
	"bad":      {},
	"terrible": {},
	"awful":    {},
	"hate":     {},
	"oppose":   {},
	"disagree": {},
}

// ScoreComment estimates the positivity of a free-text comment in [0,1].
// It starts from a neutral 0.5 and shifts by 1/wordCount per keyword match,
// clamping the result. Empty or whitespace-only comments score exactly 0.5.
func ScoreComment(comment string) float64 {
	words := strings.Fields(strings.ToLower(comment))
	if len(words) == 0 {
		return 0.5
	}

	score := 0.5
	step := 1.0 / float64(len(words))
	for _, word := range words {
		if _, ok := positiveWords[word]; ok {
			score += step
		}
		if _, ok := negativeWords[word]; ok {
			score -= step
		}
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
