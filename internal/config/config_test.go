package config

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_ENV", "SERVICE_NAME", "SERVICE_VERSION", "LOG_LEVEL",
		"HTTP_ADDR", "READ_TIMEOUT", "WRITE_TIMEOUT", "CORS_ALLOWED_ORIGINS", "INTERNAL_JOB_TOKEN",
		"DB_URL", "DB_DISABLE_PREPARED_BINARY",
		"UPTRACE_ENABLED", "UPTRACE_DSN",
		"PPROF_ENABLED", "PPROF_ADDR",
		"PYROSCOPE_ENABLED", "PYROSCOPE_SERVER_ADDRESS", "PYROSCOPE_UPLOAD_RATE",
		"STANDINGS_BEST_RESULTS", "SCORING_PARTICIPATION_POINTS", "SCORING_WIN_BONUS_POINTS",
		"SCORING_TIEBREAK_COUNTS_GAMES", "RANKING_COLLATION_LOCALE", "RECALC_MAX_WORKERS",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("app env: got %q, want %q", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr: got %q", cfg.HTTPAddr)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("timeouts: got %v / %v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.BestResultsCount != 6 {
		t.Fatalf("best results: got %d, want 6", cfg.BestResultsCount)
	}
	if cfg.ParticipationPoints != 1 || cfg.WinBonusPoints != 2 {
		t.Fatalf("scoring points: got %d / %d, want 1 / 2", cfg.ParticipationPoints, cfg.WinBonusPoints)
	}
	if cfg.TiebreakCountsGames {
		t.Fatalf("tiebreak default should count raw points")
	}
	if cfg.RankingCollationLocale != language.English {
		t.Fatalf("collation locale: got %v", cfg.RankingCollationLocale)
	}
	if cfg.RecalculationMaxWorkers != 4 {
		t.Fatalf("recalc workers: got %d, want 4", cfg.RecalculationMaxWorkers)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STANDINGS_BEST_RESULTS", "8")
	t.Setenv("SCORING_TIEBREAK_COUNTS_GAMES", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example ,")
	t.Setenv("RANKING_COLLATION_LOCALE", "ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("app env: got %q", cfg.AppEnv)
	}
	if cfg.BestResultsCount != 8 {
		t.Fatalf("best results: got %d, want 8", cfg.BestResultsCount)
	}
	if !cfg.TiebreakCountsGames {
		t.Fatalf("expected tiebreak games mode")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Fatalf("cors origins: got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RankingCollationLocale != language.Malay {
		t.Fatalf("collation locale: got %v", cfg.RankingCollationLocale)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":                  "production-ish",
		"READ_TIMEOUT":             "-1s",
		"WRITE_TIMEOUT":            "soon",
		"STANDINGS_BEST_RESULTS":   "0",
		"RECALC_MAX_WORKERS":       "zero",
		"RANKING_COLLATION_LOCALE": "not-a-locale!",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadEnableFlagsRequireTargets(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when uptrace is enabled without a dsn")
	}

	clearEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when pyroscope is enabled without a server address")
	}
}
