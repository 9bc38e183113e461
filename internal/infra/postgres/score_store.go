package postgres

import (
	"context"
	"fmt"

	"awareness-training-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreStore is the remote quiz_scores collection. completed_at is assigned
// by the database.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

func (s *ScoreStore) InsertScore(ctx context.Context, entry domain.ScoreEntry) (domain.ScoreEntry, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO quiz_scores (id, user_id, quiz_id, score, total_questions, percentage, user_name, department)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
		RETURNING completed_at`,
		entry.ID, entry.UserID, entry.QuizID, entry.Score, entry.TotalQuestions, entry.Percentage,
		entry.UserName, entry.Department,
	).Scan(&entry.CompletedAt)
	if err != nil {
		return domain.ScoreEntry{}, fmt.Errorf("insert score: %w", err)
	}
	return entry, nil
}

func (s *ScoreStore) TopScores(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, quiz_id, score, total_questions, percentage, completed_at,
		       COALESCE(user_name, ''), COALESCE(department, '')
		FROM quiz_scores
		ORDER BY score DESC, completed_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var entries []domain.ScoreEntry
	for rows.Next() {
		var e domain.ScoreEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.QuizID, &e.Score, &e.TotalQuestions, &e.Percentage,
			&e.CompletedAt, &e.UserName, &e.Department); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
