package qchat

import "fmt"

// ComputeScore sums the weights of answered questions that belong to the group.
// Ids outside the group are ignored and missing answers count as zero.
func ComputeScore(g *AgeGroup, answers AnswerSet) int {
	total := 0
	for id, w := range answers {
		if _, ok := g.Question(id); ok {
			total += w
		}
	}
	return total
}

// ClassifyRisk maps a total to a risk level using inclusive bounds.
// Totals past the high range still classify as high.
func ClassifyRisk(g *AgeGroup, total int) RiskLevel {
	t := g.Thresholds
	switch {
	case total <= t.Low.Max:
		return RiskLow
	case total <= t.Moderate.Max:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// BreakdownByCategory sums answered weights per category.
// Every category used by the group is present, with zero when nothing in it was answered.
func BreakdownByCategory(g *AgeGroup, answers AnswerSet) CategoryBreakdown {
	out := make(CategoryBreakdown)
	for _, c := range g.CategoriesPresent() {
		out[c] = 0
	}
	for id, w := range answers {
		if q, ok := g.Question(id); ok {
			out[q.Category] += w
		}
	}
	return out
}

// GenerateRecommendations returns a fresh copy of the guidance list for level
func (v *Variant) GenerateRecommendations(level RiskLevel) []string {
	var src []string
	switch level {
	case RiskHigh:
		src = v.Recommendations.High
	case RiskModerate:
		src = v.Recommendations.Moderate
	default:
		src = v.Recommendations.Low
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CheckNonNegative rejects negative weights. Totals are never below zero,
// whether or not the weight matches an option.
func CheckNonNegative(answers AnswerSet) error {
	for id, w := range answers {
		if w < 0 {
			return fmt.Errorf("%w: question %d weight %d is negative", ErrInvalidAnswerWeight, id, w)
		}
	}
	return nil
}

// ValidateAnswers rejects ids outside the group and weights that no option carries
func ValidateAnswers(g *AgeGroup, answers AnswerSet) error {
	for id, w := range answers {
		q, ok := g.Question(id)
		if !ok {
			return fmt.Errorf("%w: %d in %s", ErrUnknownQuestion, id, g.ID)
		}
		if !q.HasWeight(w) {
			return fmt.Errorf("%w: question %d weight %d", ErrInvalidAnswerWeight, id, w)
		}
	}
	return nil
}
