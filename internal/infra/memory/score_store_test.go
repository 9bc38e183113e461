package memory

import (
	"context"
	"testing"
	"time"

	"awareness-training-service/internal/domain"
)

func TestScoreStoreStampsAndOrders(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	store := NewScoreStore(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	ctx := context.Background()

	for _, score := range []int{7, 9, 9} {
		if _, err := store.InsertScore(ctx, domain.ScoreEntry{Score: score, TotalQuestions: 10}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	top, err := store.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected limit 2, got %d", len(top))
	}
	if top[0].Score != 9 || !top[0].CompletedAt.Equal(base.Add(3*time.Minute)) {
		t.Fatalf("expected most recent 9 first, got %+v", top[0])
	}
}

func TestLocalStoreQuota(t *testing.T) {
	store := NewLocalStore(1)
	ctx := context.Background()

	if err := store.Append(ctx, "k", domain.ScoreEntry{ID: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, "k", domain.ScoreEntry{ID: "b"}); err != ErrQuotaExceeded {
		t.Fatalf("expected quota error, got %v", err)
	}
	entries, _ := store.ReadAll(ctx, "k")
	if len(entries) != 1 || entries[0].ID != "a" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
