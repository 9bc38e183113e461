package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"awareness-training-service/internal/domain"
	"github.com/google/uuid"
)

// SessionRepository abstracts where a user's active session lives (in-memory, Redis, etc).
type SessionRepository interface {
	Replace(userID string, session *Session)
	Get(userID string) (*Session, bool)
	Delete(userID string)
}

// Participant identifies who is taking a quiz.
type Participant struct {
	UserID     string
	Name       string
	Department string
}

// ProgramAction tells the client what opening a catalog entry does.
type ProgramAction struct {
	Program domain.TrainingProgram `json:"program"`
	QuizID  string                 `json:"quizId,omitempty"`
	Link    string                 `json:"link,omitempty"`
}

// TrainingService contains the training page use cases.
type TrainingService struct {
	sessions SessionRepository
	gateway  *Gateway
}

func NewTrainingService(sessions SessionRepository, gateway *Gateway) *TrainingService {
	return &TrainingService{sessions: sessions, gateway: gateway}
}

// AnonymousUserID returns an id for visitors without an account.
func AnonymousUserID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "anonymous_" + raw[:9]
}

// StartQuiz starts a fresh session for the user, replacing any earlier one.
// An empty quizID picks the first available quiz.
func (s *TrainingService) StartQuiz(ctx context.Context, userID, quizID string) (*Session, error) {
	if quizID == "" {
		quizzes, _ := s.gateway.FetchQuizzes(ctx)
		if len(quizzes) == 0 {
			return nil, domain.ErrQuizNotFound
		}
		quizID = quizzes[0].ID
	}

	quiz, source, err := s.gateway.FetchQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	session, err := StartSession(quiz)
	if err != nil {
		return nil, err
	}
	s.sessions.Replace(userID, session)
	log.Printf("user %s started quiz %s (%s)", userID, quiz.ID, source)
	return session, nil
}

// ActiveSession returns the user's current session.
func (s *TrainingService) ActiveSession(userID string) (*Session, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SelectAnswer records an answer in the user's active session.
func (s *TrainingService) SelectAnswer(userID string, questionIndex, optionIndex int) (Snapshot, error) {
	session, err := s.ActiveSession(userID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := session.SelectAnswer(questionIndex, optionIndex); err != nil {
		return Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Next moves the user's session forward one question.
func (s *TrainingService) Next(userID string) (Snapshot, error) {
	session, err := s.ActiveSession(userID)
	if err != nil {
		return Snapshot{}, err
	}
	session.Next()
	return session.Snapshot(), nil
}

// Previous moves the user's session back one question.
func (s *TrainingService) Previous(userID string) (Snapshot, error) {
	session, err := s.ActiveSession(userID)
	if err != nil {
		return Snapshot{}, err
	}
	session.Previous()
	return session.Snapshot(), nil
}

// SubmitQuiz closes the participant's session and persists the score.
// The result is always returned once scoring succeeds; a persistence failure
// is reported through an error wrapping domain.ErrPersistence.
func (s *TrainingService) SubmitQuiz(ctx context.Context, participant Participant) (domain.SubmissionResult, SaveReceipt, error) {
	session, err := s.ActiveSession(participant.UserID)
	if err != nil {
		return domain.SubmissionResult{}, SaveReceipt{}, err
	}
	result, err := session.Submit()
	if err != nil {
		return domain.SubmissionResult{}, SaveReceipt{}, err
	}

	userID := participant.UserID
	if userID == "" {
		userID = AnonymousUserID()
	}
	receipt, err := s.gateway.SaveScore(ctx, domain.ScoreEntry{
		UserID:         userID,
		QuizID:         result.QuizID,
		Score:          result.Score,
		TotalQuestions: result.Total,
		Percentage:     result.Percentage,
		UserName:       participant.Name,
		Department:     participant.Department,
	})
	if err != nil {
		return result, SaveReceipt{}, err
	}
	return result, receipt, nil
}

// EndSession drops the user's session.
func (s *TrainingService) EndSession(userID string) {
	s.sessions.Delete(userID)
}

// Leaderboard returns the current ranked rows.
func (s *TrainingService) Leaderboard(ctx context.Context, limit int) []domain.LeaderboardRow {
	rows, _ := s.gateway.FetchLeaderboard(ctx, limit)
	return rows
}

// Catalog returns the training programs.
func (s *TrainingService) Catalog(ctx context.Context) []domain.TrainingProgram {
	programs, _ := s.gateway.FetchCatalog(ctx)
	return programs
}

// Quizzes returns the quizzes available to start.
func (s *TrainingService) Quizzes(ctx context.Context) []domain.Quiz {
	quizzes, _ := s.gateway.FetchQuizzes(ctx)
	return quizzes
}

// OpenProgram resolves a catalog entry to either a quiz or an external link.
func (s *TrainingService) OpenProgram(ctx context.Context, programID string) (ProgramAction, error) {
	for _, program := range s.Catalog(ctx) {
		if program.ID != programID {
			continue
		}
		action := ProgramAction{Program: program}
		if !program.IsQuiz() {
			action.Link = program.Link
			return action, nil
		}
		action.QuizID = program.QuizID
		if action.QuizID == "" {
			quizzes := s.Quizzes(ctx)
			if len(quizzes) == 0 {
				return ProgramAction{}, domain.ErrQuizNotFound
			}
			action.QuizID = quizzes[0].ID
		}
		return action, nil
	}
	return ProgramAction{}, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, programID)
}

// IsPersistenceFailure reports whether err only affected saving, not scoring.
func IsPersistenceFailure(err error) bool {
	return errors.Is(err, domain.ErrPersistence)
}
