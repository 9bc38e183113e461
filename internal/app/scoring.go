package app

import "awareness-training-service/internal/domain"

// Score counts answers that match the correct option. Missing indices never
// count and indices outside the quiz are ignored.
func Score(quiz domain.Quiz, answers map[int]int) int {
	score := 0
	for i, question := range quiz.Questions {
		if chosen, ok := answers[i]; ok && chosen == question.CorrectOptionIndex {
			score++
		}
	}
	return score
}

// Percentage returns round-half-up(100 * score / total) using integer math.
func Percentage(score, total int) int {
	if total <= 0 || score <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}

// ClassifyTier maps a percentage onto the result band shown to the user.
func ClassifyTier(percentage int) domain.Tier {
	switch {
	case percentage >= 80:
		return domain.TierExcellent
	case percentage >= 60:
		return domain.TierGood
	default:
		return domain.TierNeedsImprovement
	}
}
