package cli

import (
	"context"
	"log"

	"awareness-training-service/internal/config"
	pgstore "awareness-training-service/internal/infra/postgres"
	"awareness-training-service/internal/static"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the built-in quizzes and training catalog into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed Postgres with the built-in quiz and training catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg)
		},
	}
}

func runSeed(ctx context.Context, cfg config.Config) error {
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	quizzes := static.Quizzes()
	programs := static.Catalog()
	if err := pgstore.Seed(ctx, db, quizzes, programs); err != nil {
		return err
	}
	log.Printf("seeded %d quizzes and %d training programs", len(quizzes), len(programs))
	return nil
}
