package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NxTech4021/dl-backend-sub007/internal/platform/logging"
	"golang.org/x/text/language"
)

const (
	EnvDev   = "dev"
	EnvStage = "staging"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	InternalJobToken   string

	DBURL                   string
	DBDisablePreparedBinary bool

	UptraceEnabled bool
	UptraceDSN     string

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	// Standings engine tuning. These feed the pure calculator, selector
	// and ranker explicitly; nothing reads them from package state.
	BestResultsCount        int
	ParticipationPoints     int
	WinBonusPoints          int
	TiebreakCountsGames     bool
	RankingCollationLocale  language.Tag
	RecalculationMaxWorkers int
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("READ_TIMEOUT must be > 0")
	}

	writeTimeout, err := time.ParseDuration(getEnv("WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("WRITE_TIMEOUT must be > 0")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	bestResults, err := getEnvAsInt("STANDINGS_BEST_RESULTS", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_BEST_RESULTS: %w", err)
	}
	if bestResults < 1 {
		return Config{}, fmt.Errorf("STANDINGS_BEST_RESULTS must be >= 1")
	}

	participationPoints, err := getEnvAsInt("SCORING_PARTICIPATION_POINTS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_PARTICIPATION_POINTS: %w", err)
	}
	if participationPoints < 0 {
		return Config{}, fmt.Errorf("SCORING_PARTICIPATION_POINTS must be >= 0")
	}

	winBonusPoints, err := getEnvAsInt("SCORING_WIN_BONUS_POINTS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WIN_BONUS_POINTS: %w", err)
	}
	if winBonusPoints < 0 {
		return Config{}, fmt.Errorf("SCORING_WIN_BONUS_POINTS must be >= 0")
	}

	tiebreakCountsGames, err := strconv.ParseBool(getEnv("SCORING_TIEBREAK_COUNTS_GAMES", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_TIEBREAK_COUNTS_GAMES: %w", err)
	}

	collationLocale, err := language.Parse(getEnv("RANKING_COLLATION_LOCALE", "en"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RANKING_COLLATION_LOCALE: %w", err)
	}

	recalcWorkers, err := getEnvAsInt("RECALC_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECALC_MAX_WORKERS: %w", err)
	}
	if recalcWorkers < 1 {
		return Config{}, fmt.Errorf("RECALC_MAX_WORKERS must be >= 1")
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "dl-standings"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		LogLevel:       logging.ParseLevel(getEnv("LOG_LEVEL", "info")),

		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", "dl-standings"),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,

		BestResultsCount:        bestResults,
		ParticipationPoints:     participationPoints,
		WinBonusPoints:          winBonusPoints,
		TiebreakCountsGames:     tiebreakCountsGames,
		RankingCollationLocale:  collationLocale,
		RecalculationMaxWorkers: recalcWorkers,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return strconv.Atoi(strings.TrimSpace(value))
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
