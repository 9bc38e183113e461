package app_test

import (
	"testing"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/domain"
)

func TestScoreCountsOnlyMatchingAnswers(t *testing.T) {
	quiz := threeQuestionQuiz()

	cases := []struct {
		name    string
		answers map[int]int
		want    int
	}{
		{"none", map[int]int{}, 0},
		{"nil map", nil, 0},
		{"all correct", map[int]int{0: 1, 1: 0, 2: 2}, 3},
		{"mixed", map[int]int{0: 1, 1: 1}, 1},
		{"extra keys ignored", map[int]int{0: 1, 5: 0, -1: 1}, 1},
	}
	for _, tc := range cases {
		got := app.Score(quiz, tc.answers)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
		if got < 0 || got > len(quiz.Questions) {
			t.Fatalf("%s: score %d out of bounds", tc.name, got)
		}
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct{ score, total, want int }{
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{1, 200, 1},
		{3, 0, 0},
	}
	for _, tc := range cases {
		if got := app.Percentage(tc.score, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestClassifyTierBoundaries(t *testing.T) {
	cases := map[int]domain.Tier{
		100: domain.TierExcellent,
		80:  domain.TierExcellent,
		79:  domain.TierGood,
		60:  domain.TierGood,
		59:  domain.TierNeedsImprovement,
		0:   domain.TierNeedsImprovement,
	}
	for percentage, want := range cases {
		if got := app.ClassifyTier(percentage); got != want {
			t.Fatalf("ClassifyTier(%d) = %q, want %q", percentage, got, want)
		}
	}
}

func threeQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-3",
		Title: "Three",
		Questions: []domain.Question{
			{Prompt: "First", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 1},
			{Prompt: "Second", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
			{Prompt: "Third", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 2},
		},
	}
}
