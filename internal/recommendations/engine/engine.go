package engine

import (
	"fmt"
	"math"
)

// historicalPlaceholder stands in until historical-outcome tracking exists.
const historicalPlaceholder = 0.5

// SupportScore returns the fraction of all inputs that selected the option.
// Abstentions count toward the denominator. Zero inputs yields 0.
func SupportScore(inputs []Input, optionID string) float64 {
	if len(inputs) == 0 {
		return 0
	}
	votes := 0
	for _, in := range inputs {
		if in.SelectedOptionID == optionID {
			votes++
		}
	}
	return float64(votes) / float64(len(inputs))
}

// CriteriaScore returns the weight-normalized mean of per-criterion rating
// averages, scaled to [0,1]. Ratings are decision-wide: every input's rating
// for a criterion is pooled regardless of which option that input selected,
// so the result is identical for every option of the decision. Criteria with
// no ratings are excluded from both numerator and denominator; if nothing was
// rated the score is 0.
func CriteriaScore(inputs []Input, criteria []Criterion) float64 {
	if len(criteria) == 0 {
		return 0
	}

	var weightedSum, totalWeight float64
	for _, criterion := range criteria {
		weight := criterion.Weight
		if weight == 0 {
			weight = 1
		}

		sum := 0
		count := 0
		for _, in := range inputs {
			if rating, ok := in.Ratings[criterion.ID]; ok {
				sum += rating
				count++
			}
		}
		if count == 0 {
			continue
		}

		avg := float64(sum) / float64(count)
		weightedSum += (avg / 5) * float64(weight)
		totalWeight += float64(weight)
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// sentimentScore averages the comment sentiment over inputs that selected the
// option and left a non-empty comment, defaulting to neutral.
func sentimentScore(inputs []Input, optionID string) float64 {
	total := 0.0
	count := 0
	for _, in := range inputs {
		if in.SelectedOptionID != optionID || in.Comment == "" {
			continue
		}
		total += ScoreComment(in.Comment)
		count++
	}
	if count == 0 {
		return 0.5
	}
	return total / float64(count)
}

// ScoreOptions computes the per-factor and blended scores for every option,
// preserving the order of the options slice. The final score is the weighted
// blend as given; it is not clamped, so weights summing above 1 produce
// finals above 1.
func ScoreOptions(options []Option, criteria []Criterion, inputs []Input, weights Weights) []OptionScore {
	criteriaScore := CriteriaScore(inputs, criteria)

	scores := make([]OptionScore, 0, len(options))
	for _, opt := range options {
		support := SupportScore(inputs, opt.ID)
		sentiment := sentimentScore(inputs, opt.ID)

		final := support*weights.Support +
			criteriaScore*weights.Criteria +
			sentiment*weights.Sentiment +
			historicalPlaceholder*weights.Historical

		scores = append(scores, OptionScore{
			OptionID:   opt.ID,
			OptionText: opt.Text,
			Support:    support,
			Criteria:   criteriaScore,
			Sentiment:  sentiment,
			Historical: historicalPlaceholder,
			Final:      final,
		})
	}
	return scores
}

// Select picks the winning option by strictly-greater comparison on the final
// score, so the earliest option in slice order wins ties. The slice order is
// the decision's option list order. Returns false for an empty slice.
func Select(scores []OptionScore) (OptionScore, bool) {
	if len(scores) == 0 {
		return OptionScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Final > best.Final {
			best = s
		}
	}
	return best, true
}

// Explanation renders the fixed explanation template for a final score.
func Explanation(final float64) string {
	return fmt.Sprintf("Recommended based on a final score of %d%%.", int(math.Round(final*100)))
}
