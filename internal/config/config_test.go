package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir switches to an empty directory so no .env or config file is picked up.
func chdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TelegramAPIToken != "token" {
		t.Fatalf("token = %q", cfg.TelegramAPIToken)
	}
	if cfg.Env != "local" {
		t.Fatalf("env = %q, want local", cfg.Env)
	}
	if cfg.QuestionSource != SourceFile || cfg.DataDir != "assets/data" {
		t.Fatalf("source = %q dir = %q", cfg.QuestionSource, cfg.DataDir)
	}
	if cfg.Session.IdleTTL != 2*time.Hour || cfg.Session.CleanupSpec != "@every 10m" {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.DB.MaxConnections != 20 || cfg.DB.MaxConnLifetime != 30*time.Second {
		t.Fatalf("db = %+v", cfg.DB)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Fatalf("metrics addr = %q", cfg.Metrics.Addr)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	chdir(t)
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	chdir(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("QUESTION_SOURCE", SourcePostgres)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}

	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dsn, _ := cfg.DB.DSN(); dsn != "postgres://quiz@localhost/quiz" {
		t.Fatalf("dsn = %q", dsn)
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	chdir(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("QUESTION_SOURCE", "redis")

	if _, err := Load(); !errors.Is(err, ErrInvalidQuestionSource) {
		t.Fatalf("err = %v, want ErrInvalidQuestionSource", err)
	}
}

func TestLoadReadsConfigFileAndEnvOverrides(t *testing.T) {
	dir := chdir(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("SESSION_IDLE_TTL", "45m")

	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "env: production\ndata_dir: /srv/quiz\nsession:\n  idle_ttl: 1h\n  cleanup_spec: \"@every 1m\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/srv/quiz" || cfg.Session.CleanupSpec != "@every 1m" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Session.IdleTTL != 45*time.Minute {
		t.Fatalf("idle ttl = %v, want env override 45m", cfg.Session.IdleTTL)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := chdir(t)
	// godotenv never overrides variables that are already set.
	t.Setenv("TELEGRAM_API_TOKEN", "")
	if err := os.Unsetenv("TELEGRAM_API_TOKEN"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TELEGRAM_API_TOKEN=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramAPIToken != "from-dotenv" {
		t.Fatalf("token = %q, want from-dotenv", cfg.TelegramAPIToken)
	}
}

func TestLoadDatabaseSkipsToken(t *testing.T) {
	chdir(t)
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadDatabase(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}

	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")
	if _, err := LoadDatabase(); err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
}
