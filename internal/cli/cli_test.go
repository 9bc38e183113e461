package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/config"
	"awareness-training-service/internal/static"
)

func TestBuildDepsWithoutRemote(t *testing.T) {
	cfg := config.Config{}
	cfg.Local.Path = filepath.Join(t.TempDir(), "nested", "local.db")

	d, err := buildDeps(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build deps: %v", err)
	}
	defer d.Close()

	if _, err := os.Stat(cfg.Local.Path); err != nil {
		t.Fatalf("expected local database file: %v", err)
	}

	ctx := context.Background()
	if _, err := d.service.StartQuiz(ctx, "u1", static.DefaultQuizID); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	_, receipt, err := d.service.SubmitQuiz(ctx, app.Participant{UserID: "u1"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Source != app.SourceLocal {
		t.Fatalf("expected local save without postgres, got %s", receipt.Source)
	}

	rows, source := d.gateway.FetchLeaderboard(ctx, 0)
	if source != app.SourceLocal || len(rows) != 1 {
		t.Fatalf("expected local leaderboard with 1 row, got %s %+v", source, rows)
	}
}

func TestLeaderboardCommandFallsBackToStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("leaderboard:\n  limit: 4\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := NewLeaderboardCmd(&path)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "source: static") || !strings.Contains(text, "Treasure Mashabane") {
		t.Fatalf("unexpected output:\n%s", text)
	}
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"start", "migrate", "seed", "leaderboard"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Fatalf("missing %s command: %v", name, err)
		}
	}
}
