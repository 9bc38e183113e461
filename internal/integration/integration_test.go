package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/infra/memory"
	pgstore "awareness-training-service/internal/infra/postgres"
	pgmigrations "awareness-training-service/internal/infra/postgres/migrations"
	infraredis "awareness-training-service/internal/infra/redis"
	"awareness-training-service/internal/static"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestSubmitAndRankEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateAndSeed(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	content := pgstore.NewContentStore(pool)
	gateway := app.NewGateway(app.GatewayOptions{
		Scores:  pgstore.NewScoreStore(pool),
		Quizzes: infraredis.NewQuizCache(redisClient, content, 5*time.Minute),
		Catalog: content,
		Local:   memory.NewLocalStore(0),
	})
	service := app.NewTrainingService(infraredis.NewSessionStore(redisClient, 5*time.Minute), gateway)

	catalog, source := gateway.FetchCatalog(ctx)
	if source != app.SourceRemote || len(catalog) != len(static.Catalog()) {
		t.Fatalf("expected seeded catalog from postgres, got %s with %d programs", source, len(catalog))
	}

	play := func(userID, name string, correct int) {
		t.Helper()
		session, err := service.StartQuiz(ctx, userID, static.DefaultQuizID)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		quiz, _ := static.Quiz(static.DefaultQuizID)
		for i := 0; i < correct; i++ {
			if err := session.SelectAnswer(i, quiz.Questions[i].CorrectOptionIndex); err != nil {
				t.Fatalf("select: %v", err)
			}
		}
		_, receipt, err := service.SubmitQuiz(ctx, app.Participant{UserID: userID, Name: name})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if receipt.Source != app.SourceRemote || receipt.Entry.CompletedAt.IsZero() {
			t.Fatalf("expected server-stamped remote save, got %+v", receipt)
		}
	}
	play("u1", "Alice", 3)
	play("u2", "Bob", 5)
	play("u3", "Carol", 3)

	rows, source := gateway.FetchLeaderboard(ctx, 4)
	if source != app.SourceRemote {
		t.Fatalf("expected remote leaderboard, got %s", source)
	}
	if len(rows) != 3 || rows[0].Name != "Bob" || rows[1].Name != "Carol" || rows[2].Name != "Alice" {
		t.Fatalf("unexpected ranking %+v", rows)
	}
	if rows[0].Percentage != 100 || rows[1].Percentage != 60 {
		t.Fatalf("unexpected percentages %+v", rows)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateAndSeed(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := pgstore.Seed(ctx, db, static.Quizzes(), static.Catalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
