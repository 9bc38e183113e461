package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"awareness-training-service/internal/domain"
)

// ErrQuotaExceeded is returned when a LocalStore is full.
var ErrQuotaExceeded = errors.New("local store quota exceeded")

// ScoreStore is an in-memory stand-in for the remote score collection. It
// stamps entries with its own clock the way a server timestamp would.
type ScoreStore struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries []domain.ScoreEntry
}

func NewScoreStore(now func() time.Time) *ScoreStore {
	if now == nil {
		now = time.Now
	}
	return &ScoreStore{now: now}
}

func (s *ScoreStore) InsertScore(_ context.Context, entry domain.ScoreEntry) (domain.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.CompletedAt = s.now()
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *ScoreStore) TopScores(_ context.Context, limit int) ([]domain.ScoreEntry, error) {
	s.mu.RLock()
	out := make([]domain.ScoreEntry, len(s.entries))
	copy(out, s.entries)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LocalStore keeps append-only lists in memory. A positive quota caps the
// number of records per key.
type LocalStore struct {
	mu    sync.RWMutex
	quota int
	lists map[string][]domain.ScoreEntry
}

func NewLocalStore(quota int) *LocalStore {
	return &LocalStore{quota: quota, lists: make(map[string][]domain.ScoreEntry)}
}

func (l *LocalStore) ReadAll(_ context.Context, key string) ([]domain.ScoreEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.ScoreEntry, len(l.lists[key]))
	copy(out, l.lists[key])
	return out, nil
}

func (l *LocalStore) Append(_ context.Context, key string, entry domain.ScoreEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.quota > 0 && len(l.lists[key]) >= l.quota {
		return ErrQuotaExceeded
	}
	l.lists[key] = append(l.lists[key], entry)
	return nil
}
