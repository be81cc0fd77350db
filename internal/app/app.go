package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/toto-league/internal/config"
	"github.com/riskibarqy/toto-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/toto-league/internal/domain/prediction"
	"github.com/riskibarqy/toto-league/internal/domain/question"
	"github.com/riskibarqy/toto-league/internal/domain/ranking"
	"github.com/riskibarqy/toto-league/internal/domain/scoring"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/remote"
	"github.com/riskibarqy/toto-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/toto-league/internal/platform/batch"
	basecache "github.com/riskibarqy/toto-league/internal/platform/cache"
	idgen "github.com/riskibarqy/toto-league/internal/platform/id"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"github.com/riskibarqy/toto-league/internal/platform/resilience"
	"github.com/riskibarqy/toto-league/internal/platform/tracing"
	"github.com/riskibarqy/toto-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	seedTimeout          = 30 * time.Second
	maxTracedQueryLength = 512
)

type repositories struct {
	questions   question.Repository
	predictions prediction.Repository
	rankings    ranking.Repository
	close       func() error
}

// NewHTTPServer builds the API server on top of the configured data source.
// The returned cleanup releases the data source and must be called after the
// server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rules := scoring.DefaultRules()
	normalizer := scoring.DefaultNormalizer()
	engine := scoring.NewEngine(rules, normalizer)
	builder := leaguestanding.NewBuilder(normalizer, rules.GroupStageTables)

	loadOpts := usecase.LoadOptions{
		Batch: batch.Options{
			PageSize: cfg.BatchPageSize,
			Delay:    cfg.BatchDelay,
		},
		Concurrency: cfg.LoadConcurrency,
	}

	rankingSvc := usecase.NewRankingService(repos.questions, repos.predictions, repos.rankings, engine, usecase.RankingConfig{
		Load:                 loadOpts,
		WriteWorkers:         cfg.RankingWriteWorkers,
		IncludeLocationBonus: cfg.RankingIncludeLocationBonus,
	}, logger.Named("ranking"))
	scoringSvc := usecase.NewScoringService(repos.questions, repos.predictions, engine, usecase.ScoringConfig{
		Load:                 loadOpts,
		IncludeLocationBonus: cfg.RankingIncludeLocationBonus,
	})
	standingSvc := usecase.NewLeagueStandingService(repos.questions, repos.predictions, builder, rules.GroupStageTables, loadOpts)
	predictionSvc := usecase.NewPredictionService(repos.questions, repos.predictions, loadOpts, logger.Named("prediction"))

	handler := httpapi.NewHandler(rankingSvc, scoringSvc, standingSvc, predictionSvc, logger.Named("http"))
	router := httpapi.NewRouter(handler, logger.Named("http"), httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
	})
	if cfg.AdminToken == "" {
		logger.Warn("admin endpoints are unprotected", "reason", "ADMIN_TOKEN empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	var (
		repos repositories
		err   error
	)
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		repos, err = postgresRepositories(cfg, logger)
	case config.DataSourceRemote:
		repos, err = remoteRepositories(cfg, logger)
	default:
		repos, err = memoryRepositories(cfg)
	}
	if err != nil {
		return repositories{}, err
	}

	logger.Info("data source ready", "data_source", cfg.DataSource, "cache_enabled", cfg.CacheEnabled)
	if !cfg.CacheEnabled || cfg.DataSource == config.DataSourceMemory {
		return repos, nil
	}

	store := basecache.NewStore(cfg.CacheTTL)
	repos.questions = cache.NewQuestionRepository(repos.questions, store)
	repos.predictions = cache.NewRepository[prediction.Prediction]("prediction", repos.predictions, store)
	repos.rankings = cache.NewRepository[ranking.Ranking]("ranking", repos.rankings, store)
	return repos, nil
}

func memoryRepositories(cfg config.Config) (repositories, error) {
	ids := idgen.NewRandomGenerator()
	questions := memory.NewQuestionRepository(ids)
	predictions := memory.NewPredictionRepository(ids)
	rankings := memory.NewRankingRepository(ids)

	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()
		if err := memory.Seed(ctx, questions, predictions); err != nil {
			return repositories{}, fmt.Errorf("seed memory repositories: %w", err)
		}
	}

	return repositories{
		questions:   questions,
		predictions: predictions,
		rankings:    rankings,
		close:       func() error { return nil },
	}, nil
}

func postgresRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}
	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("demo data seeded", "data_source", cfg.DataSource)
	}

	ids := idgen.NewRandomGenerator()
	return repositories{
		questions:   postgres.NewQuestionRepository(db, ids),
		predictions: postgres.NewPredictionRepository(db, ids),
		rankings:    postgres.NewRankingRepository(db, ids),
		close:       db.Close,
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(func(query string) string {
			return tracing.FormatQuery(query, maxTracedQueryLength)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	return db, nil
}

func remoteRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	client, err := remote.NewClient(remote.Config{
		BaseURL: cfg.RemoteBaseURL,
		AppID:   cfg.RemoteAppID,
		Token:   cfg.RemoteToken,
		Timeout: cfg.RemoteTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RemoteCircuitEnabled,
			FailureThreshold: cfg.RemoteCircuitFailureCount,
			OpenTimeout:      cfg.RemoteCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RemoteCircuitHalfOpenMaxReq,
		},
	}, logger.Named("remote"))
	if err != nil {
		return repositories{}, fmt.Errorf("build remote client: %w", err)
	}
	if cfg.SeedDemoData {
		logger.Warn("demo seed ignored", "data_source", cfg.DataSource)
	}

	return repositories{
		questions:   remote.NewQuestionRepository(client),
		predictions: remote.NewPredictionRepository(client),
		rankings:    remote.NewRankingRepository(client),
		close:       func() error { return nil },
	}, nil
}
