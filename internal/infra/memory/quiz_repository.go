package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuizCache caches quizzes with TTL to avoid repeated remote hits.
type QuizCache struct {
	loader app.QuizLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizCache(loader app.QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuiz),
	}
}

func (r *QuizCache) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[quizID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.quiz, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[quizID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.quiz, nil
		}
		r.mu.RUnlock()

		quiz, err := r.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		r.mu.Lock()
		r.cache[quizID] = cachedQuiz{
			quiz:      quiz,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (r *QuizCache) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// ContentStore is a map-backed quiz and catalog source (useful for tests/demos).
type ContentStore struct {
	quizzes  map[string]domain.Quiz
	order    []string
	programs []domain.TrainingProgram
}

func NewContentStore(quizzes []domain.Quiz, programs []domain.TrainingProgram) *ContentStore {
	c := &ContentStore{quizzes: make(map[string]domain.Quiz), programs: programs}
	for _, quiz := range quizzes {
		c.quizzes[quiz.ID] = quiz
		c.order = append(c.order, quiz.ID)
	}
	return c
}

func (c *ContentStore) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := c.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (c *ContentStore) LoadQuizzes(_ context.Context) ([]domain.Quiz, error) {
	out := make([]domain.Quiz, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.quizzes[id])
	}
	return out, nil
}

func (c *ContentStore) LoadCatalog(_ context.Context) ([]domain.TrainingProgram, error) {
	out := make([]domain.TrainingProgram, len(c.programs))
	copy(out, c.programs)
	return out, nil
}
