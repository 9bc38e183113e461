package domain

import "time"

// Question is a multiple-choice question with exactly one correct option.
type Question struct {
	Prompt             string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctAnswerIndex"`
}

// Quiz is an ordered, immutable set of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// ScoreEntry is one persisted quiz completion. Entries are append-only.
type ScoreEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	QuizID         string    `json:"quizId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completedAt"`
	UserName       string    `json:"userName,omitempty"`
	Department     string    `json:"department,omitempty"`
}

// LeaderboardRow is a display-ready view of a ScoreEntry.
type LeaderboardRow struct {
	Rank        int       `json:"rank"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// ProgramTypeQuiz marks catalog entries that launch a quiz session.
const ProgramTypeQuiz = "quiz"

// TrainingProgram is a catalog entry: either a quiz or an external resource.
type TrainingProgram struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Progress    int    `json:"progress"`
	ButtonText  string `json:"buttonText"`
	Link        string `json:"link,omitempty"`
	QuizID      string `json:"quizId,omitempty"`
	Order       int    `json:"order"`
}

// IsQuiz reports whether the program is served by the quiz engine.
func (p TrainingProgram) IsQuiz() bool {
	return p.Type == ProgramTypeQuiz
}

// Tier is the result band shown after a submission.
type Tier string

const (
	TierExcellent        Tier = "Excellent"
	TierGood             Tier = "Good"
	TierNeedsImprovement Tier = "Needs Improvement"
)

// QuestionResult is the per-question outcome of a submitted session.
type QuestionResult struct {
	Question           Question `json:"question"`
	ChosenOptionIndex  *int     `json:"chosenOptionIndex"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	IsCorrect          bool     `json:"isCorrect"`
}

// SubmissionResult summarizes a completed session.
type SubmissionResult struct {
	QuizID     string           `json:"quizId"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage int              `json:"percentage"`
	Tier       Tier             `json:"tier"`
	Questions  []QuestionResult `json:"questions"`
}
