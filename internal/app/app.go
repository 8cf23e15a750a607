package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/NxTech4021/dl-backend-sub007/internal/config"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/player"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/scoring"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
	"github.com/NxTech4021/dl-backend-sub007/internal/infrastructure/repository/memory"
	"github.com/NxTech4021/dl-backend-sub007/internal/infrastructure/repository/postgres"
	"github.com/NxTech4021/dl-backend-sub007/internal/interfaces/httpapi"
	"github.com/NxTech4021/dl-backend-sub007/internal/platform/logging"
	"github.com/NxTech4021/dl-backend-sub007/internal/usecase"
)

// NewHTTPServer wires the standings engine end to end. With DB_URL set
// it runs against Postgres; without it the service falls back to
// in-memory stores seeded with a demo division, which is enough for
// local development of the read and ingestion surfaces.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		resultRepo   standings.ResultRepository
		standingRepo standings.StandingRepository
		playerRepo   player.Repository
	)

	if cfg.DBURL != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		resultRepo = postgres.NewMatchResultRepository(db)
		standingRepo = postgres.NewDivisionStandingRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		logger.Info("storage configured", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))
	} else {
		memResults := memory.NewMatchResultRepository(nil)
		resultRepo = memResults
		standingRepo = memory.NewDivisionStandingRepository(memResults)
		playerRepo = memory.SeedPlayerRepository()
		logger.Info("storage configured", "driver", "memory")
	}

	scoringCfg := scoring.Config{
		ParticipationPoints:         cfg.ParticipationPoints,
		WinBonusPoints:              cfg.WinBonusPoints,
		DecidingTiebreakCountsGames: cfg.TiebreakCountsGames,
	}
	selectionCfg := standings.SelectionConfig{MaxCounted: cfg.BestResultsCount}
	ranker := standings.NewRanker(cfg.RankingCollationLocale)

	standingsSvc := usecase.NewStandingsService(
		resultRepo,
		standingRepo,
		playerRepo,
		scoringCfg,
		selectionCfg,
		ranker,
		cfg.RecalculationMaxWorkers,
		logger,
	)

	handler := httpapi.NewHandler(standingsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dsn)),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
