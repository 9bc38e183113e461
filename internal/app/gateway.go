package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"awareness-training-service/internal/domain"
	"awareness-training-service/internal/static"
	"github.com/google/uuid"
)

// LocalScoresKey is the local-store list that receives scores the remote
// store rejected.
const LocalScoresKey = "quizScores"

// DefaultLeaderboardLimit matches the four podium slots on the training page.
const DefaultLeaderboardLimit = 4

var errTierUnavailable = errors.New("tier not configured")

// ScoreStore is the remote score collection. InsertScore returns the entry as
// stored, with the server-assigned completion time.
type ScoreStore interface {
	InsertScore(ctx context.Context, entry domain.ScoreEntry) (domain.ScoreEntry, error)
	TopScores(ctx context.Context, limit int) ([]domain.ScoreEntry, error)
}

// QuizLoader fetches quiz content from a backing store.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// CatalogLoader lists read-only reference data from the remote store.
type CatalogLoader interface {
	LoadQuizzes(ctx context.Context) ([]domain.Quiz, error)
	LoadCatalog(ctx context.Context) ([]domain.TrainingProgram, error)
}

// LocalStore is a durable append-only list keyed by name.
type LocalStore interface {
	ReadAll(ctx context.Context, key string) ([]domain.ScoreEntry, error)
	Append(ctx context.Context, key string, entry domain.ScoreEntry) error
}

// Source names the tier that produced a gateway result.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
	SourceStatic Source = "static"
)

// outcome is the result of one tier attempt.
type outcome[T any] struct {
	value  T
	source Source
	err    error
}

func (o outcome[T]) ok() bool { return o.err == nil }

func attempt[T any](source Source, fn func() (T, error)) outcome[T] {
	value, err := fn()
	return outcome[T]{value: value, source: source, err: err}
}

// GatewayOptions wires the tiers. Nil stores are treated as unavailable.
type GatewayOptions struct {
	Scores           ScoreStore
	Quizzes          QuizLoader
	Catalog          CatalogLoader
	Local            LocalStore
	Clock            func() time.Time
	NewID            func() string
	LeaderboardLimit int
}

// Gateway resolves reads and writes across remote, local and static tiers in
// that order, falling through on failure.
type Gateway struct {
	scores  ScoreStore
	quizzes QuizLoader
	catalog CatalogLoader
	local   LocalStore
	clock   func() time.Time
	newID   func() string
	limit   int
}

func NewGateway(opts GatewayOptions) *Gateway {
	g := &Gateway{
		scores:  opts.Scores,
		quizzes: opts.Quizzes,
		catalog: opts.Catalog,
		local:   opts.Local,
		clock:   opts.Clock,
		newID:   opts.NewID,
		limit:   opts.LeaderboardLimit,
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.newID == nil {
		g.newID = func() string { return uuid.NewString() }
	}
	if g.limit <= 0 {
		g.limit = DefaultLeaderboardLimit
	}
	return g
}

// SaveReceipt reports where a score landed.
type SaveReceipt struct {
	Entry  domain.ScoreEntry `json:"entry"`
	Source Source            `json:"source"`
}

// SaveScore writes the entry remotely, falling back to the local store once.
// ErrPersistence is returned only when both tiers fail.
func (g *Gateway) SaveScore(ctx context.Context, entry domain.ScoreEntry) (SaveReceipt, error) {
	if entry.ID == "" {
		entry.ID = g.newID()
	}

	remote := attempt(SourceRemote, func() (domain.ScoreEntry, error) {
		if g.scores == nil {
			return domain.ScoreEntry{}, errTierUnavailable
		}
		return g.scores.InsertScore(ctx, entry)
	})
	if remote.ok() {
		return SaveReceipt{Entry: remote.value, Source: remote.source}, nil
	}
	if !errors.Is(remote.err, errTierUnavailable) {
		log.Printf("remote score save failed, using local store: %v", remote.err)
	}

	local := attempt(SourceLocal, func() (domain.ScoreEntry, error) {
		if g.local == nil {
			return domain.ScoreEntry{}, errTierUnavailable
		}
		stored := entry
		stored.CompletedAt = g.clock()
		return stored, g.local.Append(ctx, LocalScoresKey, stored)
	})
	if local.ok() {
		return SaveReceipt{Entry: local.value, Source: local.source}, nil
	}

	log.Printf("local score save failed: %v", local.err)
	return SaveReceipt{}, fmt.Errorf("%w: remote: %w; local: %w", domain.ErrPersistence, remote.err, local.err)
}

// FetchLeaderboard returns ranked rows from the first tier that has any.
// The static tier guarantees a non-empty result.
func (g *Gateway) FetchLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, Source) {
	if limit <= 0 {
		limit = g.limit
	}

	remote := attempt(SourceRemote, func() ([]domain.ScoreEntry, error) {
		if g.scores == nil {
			return nil, errTierUnavailable
		}
		return g.scores.TopScores(ctx, limit)
	})
	if remote.ok() && len(remote.value) > 0 {
		return truncateRows(Rank(remote.value), limit), remote.source
	}
	if remote.err != nil && !errors.Is(remote.err, errTierUnavailable) {
		log.Printf("remote leaderboard query failed: %v", remote.err)
	}

	local := attempt(SourceLocal, func() ([]domain.ScoreEntry, error) {
		if g.local == nil {
			return nil, errTierUnavailable
		}
		return g.local.ReadAll(ctx, LocalScoresKey)
	})
	if local.ok() && len(local.value) > 0 {
		return truncateRows(Rank(local.value), limit), local.source
	}
	if local.err != nil && !errors.Is(local.err, errTierUnavailable) {
		log.Printf("local leaderboard read failed: %v", local.err)
	}

	return truncateRows(static.Leaderboard(), limit), SourceStatic
}

// FetchQuiz loads a quiz remotely, falling back to the built-in set.
func (g *Gateway) FetchQuiz(ctx context.Context, quizID string) (domain.Quiz, Source, error) {
	remote := attempt(SourceRemote, func() (domain.Quiz, error) {
		if g.quizzes == nil {
			return domain.Quiz{}, errTierUnavailable
		}
		quiz, err := g.quizzes.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		return quiz, quiz.Validate()
	})
	if remote.ok() {
		return remote.value, remote.source, nil
	}
	if !errors.Is(remote.err, errTierUnavailable) {
		log.Printf("remote quiz %s unavailable: %v", quizID, remote.err)
	}

	if quiz, ok := static.Quiz(quizID); ok {
		return quiz, SourceStatic, nil
	}
	return domain.Quiz{}, "", fmt.Errorf("%w: %s", domain.ErrQuizNotFound, quizID)
}

// FetchQuizzes lists available quizzes, falling back to the built-in set.
func (g *Gateway) FetchQuizzes(ctx context.Context) ([]domain.Quiz, Source) {
	remote := attempt(SourceRemote, func() ([]domain.Quiz, error) {
		if g.catalog == nil {
			return nil, errTierUnavailable
		}
		return g.catalog.LoadQuizzes(ctx)
	})
	if remote.ok() {
		valid := make([]domain.Quiz, 0, len(remote.value))
		for _, quiz := range remote.value {
			if err := quiz.Validate(); err != nil {
				log.Printf("skipping remote quiz %s: %v", quiz.ID, err)
				continue
			}
			valid = append(valid, quiz)
		}
		if len(valid) > 0 {
			return valid, remote.source
		}
	} else if !errors.Is(remote.err, errTierUnavailable) {
		log.Printf("remote quiz list failed: %v", remote.err)
	}
	return static.Quizzes(), SourceStatic
}

// FetchCatalog lists training programs ordered for display.
func (g *Gateway) FetchCatalog(ctx context.Context) ([]domain.TrainingProgram, Source) {
	remote := attempt(SourceRemote, func() ([]domain.TrainingProgram, error) {
		if g.catalog == nil {
			return nil, errTierUnavailable
		}
		return g.catalog.LoadCatalog(ctx)
	})
	if remote.ok() && len(remote.value) > 0 {
		programs := remote.value
		sort.SliceStable(programs, func(i, j int) bool { return programs[i].Order < programs[j].Order })
		return programs, remote.source
	}
	if remote.err != nil && !errors.Is(remote.err, errTierUnavailable) {
		log.Printf("remote catalog failed: %v", remote.err)
	}
	return static.Catalog(), SourceStatic
}

func truncateRows(rows []domain.LeaderboardRow, limit int) []domain.LeaderboardRow {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
