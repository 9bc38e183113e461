package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"awareness-training-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ContentStore loads quiz and training catalog JSONB documents from Postgres.
type ContentStore struct {
	pool *pgxpool.Pool
}

func NewContentStore(pool *pgxpool.Pool) *ContentStore {
	return &ContentStore{pool: pool}
}

func (l *ContentStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, fmt.Errorf("load quiz %s: %w", quizID, domain.ErrQuizNotFound)
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return decodeQuiz(quizID, raw)
}

func (l *ContentStore) LoadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, data FROM quizzes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quiz, err := decodeQuiz(id, raw)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

func (l *ContentStore) LoadCatalog(ctx context.Context) ([]domain.TrainingProgram, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, data, sort_order FROM training_programs ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list training programs: %w", err)
	}
	defer rows.Close()

	var programs []domain.TrainingProgram
	for rows.Next() {
		var (
			id    string
			raw   []byte
			order int
		)
		if err := rows.Scan(&id, &raw, &order); err != nil {
			return nil, fmt.Errorf("scan training program: %w", err)
		}
		var program domain.TrainingProgram
		if err := json.Unmarshal(raw, &program); err != nil {
			return nil, fmt.Errorf("unmarshal training program %s: %w", id, err)
		}
		program.ID = id
		program.Order = order
		programs = append(programs, program)
	}
	return programs, rows.Err()
}

func decodeQuiz(id string, raw []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz %s: %w", id, err)
	}
	quiz.ID = id
	return quiz, nil
}
