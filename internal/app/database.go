package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/repository"
	"github.com/guttosm/pricing-service/internal/service"
)

const setupTimeout = 5 * time.Second

// DatabaseComponents holds the MongoDB audit sink.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
	AuditSink          *middleware.AsyncLogger
}

// InitializeDatabase connects to MongoDB and builds the audit sink.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without audit log")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}

	logsCB := circuitbreaker.New(newBreakerConfig("mongodb-logs", cfg))
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo)

	return &DatabaseComponents{
		DB:                 db,
		LoggingService:     loggingService,
		LogsCircuitBreaker: logsCB,
		AuditSink:          middleware.NewAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig()),
	}
}

// Close drains the audit sink and disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	d.AuditSink.Stop()
	if d.DB == nil {
		return nil
	}
	if err := d.DB.Close(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newBreakerConfig(name string, cfg config.DatabaseConfig) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange:    recordBreakerState,
	}
}

func recordBreakerState(name string, _, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, int(to))
}
