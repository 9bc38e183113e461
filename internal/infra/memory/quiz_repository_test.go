package memory

import (
	"context"
	"testing"
	"time"

	"awareness-training-service/internal/domain"
)

func TestQuizCacheCaches(t *testing.T) {
	loader := &countingLoader{ContentStore: NewContentStore([]domain.Quiz{sampleQuiz()}, nil)}
	repo := NewQuizCache(loader, time.Minute)

	if _, err := repo.LoadQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.LoadQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuizCacheExpires(t *testing.T) {
	loader := &countingLoader{ContentStore: NewContentStore([]domain.Quiz{sampleQuiz()}, nil)}
	repo := NewQuizCache(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.LoadQuiz(context.Background(), "quiz-1")
	now = now.Add(2 * time.Minute)
	_, _ = repo.LoadQuiz(context.Background(), "quiz-1")
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuizCacheDoesNotCacheMisses(t *testing.T) {
	loader := &countingLoader{ContentStore: NewContentStore(nil, nil)}
	repo := NewQuizCache(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.LoadQuiz(context.Background(), "missing"); err != domain.ErrQuizNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected misses to reach loader, calls %d", loader.calls)
	}
}

type countingLoader struct {
	*ContentStore
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.calls++
	return l.ContentStore.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-1",
		Title: "Basics",
		Questions: []domain.Question{
			{
				Prompt:             "What is 2 + 2?",
				Options:            []string{"3", "4"},
				CorrectOptionIndex: 1,
			},
		},
	}
}
