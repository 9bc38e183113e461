package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"awareness-training-service/internal/domain"
	"github.com/uptrace/bun"
)

// Seed upserts quizzes and training programs so the remote tier serves the
// same content as the built-in datasets.
func Seed(ctx context.Context, db *bun.DB, quizzes []domain.Quiz, programs []domain.TrainingProgram) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, quiz := range quizzes {
			if err := quiz.Validate(); err != nil {
				return err
			}
			data, err := json.Marshal(quiz)
			if err != nil {
				return fmt.Errorf("marshal quiz %s: %w", quiz.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quizzes (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`,
				quiz.ID, string(data)); err != nil {
				return fmt.Errorf("insert quiz %s: %w", quiz.ID, err)
			}
		}
		for _, program := range programs {
			data, err := json.Marshal(program)
			if err != nil {
				return fmt.Errorf("marshal program %s: %w", program.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO training_programs (id, data, sort_order) VALUES (?, ?::jsonb, ?)
				 ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, sort_order=EXCLUDED.sort_order`,
				program.ID, string(data), program.Order); err != nil {
				return fmt.Errorf("insert program %s: %w", program.ID, err)
			}
		}
		return nil
	})
}
