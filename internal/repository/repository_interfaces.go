package repository

import (
	"context"
	"time"
)

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

// IdempotencyRepositoryInterface stores replayable responses by key.
type IdempotencyRepositoryInterface interface {
	// Get returns the stored record and whether it was found.
	Get(ctx context.Context, key string) (*IdempotencyRecord, bool, error)
	// Set stores the record for ttl.
	Set(ctx context.Context, key string, record *IdempotencyRecord, ttl time.Duration) error
	// Ping checks the backing store.
	Ping(ctx context.Context) error
}
