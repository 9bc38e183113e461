package app

import (
	"fmt"
	"sync"

	"awareness-training-service/internal/domain"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText lets snapshots carry the state as a readable string.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is what clients render for an in-flight session.
type Snapshot struct {
	QuizID       string        `json:"quizId"`
	Title        string        `json:"title"`
	CurrentIndex int           `json:"currentIndex"`
	Total        int           `json:"total"`
	Answers      map[int]int   `json:"answers"`
	State        State         `json:"state"`
	Question     *QuestionView `json:"question,omitempty"`
}

// QuestionView is a question as shown before submission, without the answer.
type QuestionView struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Session walks one user through one quiz. The quiz is shared and never
// mutated; the answers map is owned by the session.
type Session struct {
	mu      sync.RWMutex
	quiz    domain.Quiz
	current int
	answers map[int]int
	state   State
}

// NewSession returns a session in the NotStarted state.
func NewSession() *Session {
	return &Session{answers: make(map[int]int)}
}

// StartSession is NewSession followed by Start.
func StartSession(quiz domain.Quiz) (*Session, error) {
	s := NewSession()
	if err := s.Start(quiz); err != nil {
		return nil, err
	}
	return s, nil
}

// Start loads the quiz and moves the session to InProgress.
func (s *Session) Start(quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCompleted:
		return domain.ErrSessionClosed
	case StateInProgress:
		return fmt.Errorf("%w: quiz %q", domain.ErrSessionInProgress, s.quiz.ID)
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	s.quiz = quiz
	s.current = 0
	s.answers = make(map[int]int)
	s.state = StateInProgress
	return nil
}

// SelectAnswer records the chosen option for a question, replacing any
// earlier choice.
func (s *Session) SelectAnswer(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateNotStarted:
		return domain.ErrSessionNotStarted
	case StateCompleted:
		return domain.ErrSessionClosed
	}
	if questionIndex < 0 || questionIndex >= len(s.quiz.Questions) {
		return fmt.Errorf("%w: question %d of %d", domain.ErrInvalidIndex, questionIndex, len(s.quiz.Questions))
	}
	options := s.quiz.Questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(options) {
		return fmt.Errorf("%w: option %d of %d", domain.ErrInvalidIndex, optionIndex, len(options))
	}
	s.answers[questionIndex] = optionIndex
	return nil
}

// Next advances one question; it is a no-op on the last question.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateNotStarted {
		return
	}
	if s.current < len(s.quiz.Questions)-1 {
		s.current++
	}
}

// Previous steps back one question; it is a no-op on the first question.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current > 0 {
		s.current--
	}
}

// Submit scores the session and closes it. Unanswered questions count as
// incorrect. A second call fails with ErrSessionClosed.
func (s *Session) Submit() (domain.SubmissionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateNotStarted:
		return domain.SubmissionResult{}, domain.ErrSessionNotStarted
	case StateCompleted:
		return domain.SubmissionResult{}, domain.ErrSessionClosed
	}

	score := Score(s.quiz, s.answers)
	total := len(s.quiz.Questions)
	percentage := Percentage(score, total)

	results := make([]domain.QuestionResult, 0, total)
	for i, question := range s.quiz.Questions {
		result := domain.QuestionResult{
			Question:           question,
			CorrectOptionIndex: question.CorrectOptionIndex,
		}
		if chosen, ok := s.answers[i]; ok {
			result.ChosenOptionIndex = &chosen
			result.IsCorrect = chosen == question.CorrectOptionIndex
		}
		results = append(results, result)
	}

	s.state = StateCompleted
	return domain.SubmissionResult{
		QuizID:     s.quiz.ID,
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Tier:       ClassifyTier(percentage),
		Questions:  results,
	}, nil
}

// QuizID returns the id of the loaded quiz, or "" before Start.
func (s *Session) QuizID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiz.ID
}

// State reports the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot copies the session's render state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answers := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	snap := Snapshot{
		QuizID:       s.quiz.ID,
		Title:        s.quiz.Title,
		CurrentIndex: s.current,
		Total:        len(s.quiz.Questions),
		Answers:      answers,
		State:        s.state,
	}
	if s.state == StateInProgress {
		question := s.quiz.Questions[s.current]
		snap.Question = &QuestionView{Prompt: question.Prompt, Options: question.Options}
	}
	return snap
}
