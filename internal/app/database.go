// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/circuitbreaker"
	"github.com/thcfit/shipping-gateway/internal/metrics"
	"github.com/thcfit/shipping-gateway/internal/repository"
	"github.com/thcfit/shipping-gateway/internal/service"
	"github.com/thcfit/shipping-gateway/internal/storage"
)

const connectTimeout = 10 * time.Second

// DatabaseComponents holds the stores the gateway writes to. Every field is
// nil when its store is disabled or unreachable at startup.
type DatabaseComponents struct {
	Postgres            *repository.Postgres
	Mongo               *repository.MongoDB
	AuditRepo           repository.AuditRepositoryInterface
	AdminRepo           repository.AdminRepositoryInterface
	LoggingService      service.LoggingService
	Archive             service.DocumentStore
	AuditCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker  *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects the audit store, the request-log store and the
// document archive. A store that fails to connect is logged and left out.
func InitializeDatabase(ctx context.Context, cfg config.Config) *DatabaseComponents {
	db := &DatabaseComponents{}
	initPostgres(ctx, cfg, db)
	initMongo(ctx, cfg, db)
	initArchive(ctx, cfg.Storage, db)
	return db
}

func initPostgres(ctx context.Context, cfg config.Config, db *DatabaseComponents) {
	if !cfg.Database.Enabled {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pg, err := repository.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to PostgreSQL - continuing without audit log")
		return
	}
	if err := pg.Migrate(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to migrate PostgreSQL schema - continuing without audit log")
		_ = pg.Close()
		return
	}
	log.Info().Msg("Connected to PostgreSQL")

	db.Postgres = pg
	db.AuditCircuitBreaker = newBreaker(cfg.CircuitBreaker, "postgres-audit")
	db.AuditRepo = repository.NewAuditRepositoryWithCircuitBreaker(repository.NewAuditRepository(pg), db.AuditCircuitBreaker)
	db.AdminRepo = repository.NewAdminRepository(pg)
}

func initMongo(ctx context.Context, cfg config.Config, db *DatabaseComponents) {
	if !cfg.Mongo.Enabled {
		return
	}

	mongo, err := repository.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without request logs")
		return
	}
	log.Info().Msg("Connected to MongoDB")

	if cfg.Mongo.LogsTTL > 0 {
		ttlCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		if err := mongo.SetLogsTTL(ttlCtx, cfg.Mongo.LogsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
		}
		cancel()
	}

	db.Mongo = mongo
	db.LogsCircuitBreaker = newBreaker(cfg.CircuitBreaker, "mongodb-logs")
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(mongo), db.LogsCircuitBreaker)
	db.LoggingService = service.NewLoggingService(logsRepo)
}

func initArchive(ctx context.Context, cfg config.StorageConfig, db *DatabaseComponents) {
	if !cfg.Enabled {
		return
	}

	archive, err := storage.NewDocumentArchive(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to configure S3 archive - label content stays inline")
		return
	}
	log.Info().Str("bucket", cfg.Bucket).Msg("Shipment documents archived to S3")
	db.Archive = archive
}

// Close releases every connected store.
func (db *DatabaseComponents) Close(ctx context.Context) error {
	var firstErr error
	if db.Postgres != nil {
		if err := db.Postgres.Close(); err != nil {
			firstErr = err
		}
	}
	if db.Mongo != nil {
		if err := db.Mongo.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newBreaker builds a breaker that publishes its state transitions as metrics.
func newBreaker(cfg config.CircuitBreakerConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(breakerConfig(cfg, name))
}

func breakerConfig(cfg config.CircuitBreakerConfig, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.FailureThreshold,
		SuccessThreshold: cfg.SuccessThreshold,
		Timeout:          cfg.Timeout,
		Name:             name,
		OnStateChange:    publishBreakerState,
	}
}

func publishBreakerState(name string, from, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, int(to))
	log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
}
