package cli

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/config"
	"awareness-training-service/internal/infra/memory"
	pgstore "awareness-training-service/internal/infra/postgres"
	redisstore "awareness-training-service/internal/infra/redis"
	"awareness-training-service/internal/infra/sqlite"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// deps is the wired object graph shared by the server and CLI commands.
type deps struct {
	gateway *app.Gateway
	service *app.TrainingService
	closers []func()
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildDeps selects tiers from configuration: Postgres is the remote tier,
// SQLite (or memory) the local tier, Redis an optional quiz cache and session
// marker.
func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	d := &deps{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, func() { _ = redisClient.Close() })
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)

	opts := app.GatewayOptions{LeaderboardLimit: cfg.Leaderboard.Limit}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			// The remote tier is optional; the gateway serves local and static data without it.
			log.Printf("postgres unavailable, continuing without remote store: %v", err)
		} else {
			d.closers = append(d.closers, pool.Close)
			content := pgstore.NewContentStore(pool)
			opts.Scores = pgstore.NewScoreStore(pool)
			opts.Catalog = content
			if redisClient != nil {
				opts.Quizzes = redisstore.NewQuizCache(redisClient, content, quizTTL)
			} else {
				opts.Quizzes = memory.NewQuizCache(content, quizTTL)
			}
		}
	}

	if cfg.Local.Path != "" {
		if dir := filepath.Dir(cfg.Local.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				d.Close()
				return nil, err
			}
		}
		local, err := sqlite.Open(cfg.Local.Path)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = local.Close() })
		opts.Local = local
	} else {
		opts.Local = memory.NewLocalStore(0)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	d.gateway = app.NewGateway(opts)
	d.service = app.NewTrainingService(sessions, d.gateway)
	return d, nil
}
