package domain

import "errors"

var (
	// ErrInvalidQuiz is returned when a quiz has no questions or a malformed question.
	ErrInvalidQuiz = errors.New("invalid quiz")
	// ErrInvalidIndex indicates an out-of-range question or option index.
	ErrInvalidIndex = errors.New("index out of range")
	// ErrSessionClosed is returned when a completed session is mutated or resubmitted.
	ErrSessionClosed = errors.New("quiz session closed")
	// ErrSessionNotStarted is returned when answering before a quiz was started.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrSessionInProgress is returned when Start is called on a running session.
	ErrSessionInProgress = errors.New("quiz session already in progress")
	// ErrSessionNotFound is returned when a user has no active session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrPersistence means every save tier failed.
	ErrPersistence = errors.New("score could not be persisted")
	// ErrQuizNotFound indicates the quiz content could not be loaded from any tier.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrProgramNotFound indicates an unknown training catalog entry.
	ErrProgramNotFound = errors.New("training program not found")
)
