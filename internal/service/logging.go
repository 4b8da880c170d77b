package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/repository"
)

// ErrInvalidTimeRange is returned when a query's start is after its end.
var ErrInvalidTimeRange = errors.New("start time is after end time")

// LoggingService persists request and audit entries and answers the
// audit-log queries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	// CreateLogs is used by the async sink to flush a batch.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl maps log entries onto a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

// CreateLog assigns an id and timestamp when missing and stores the entry.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, toDocument(entry))
}

func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, toDocument(entry))
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	query, err := repositoryQuery(opts)
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fromDocument(doc))
	}
	return entries, nil
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	query, err := repositoryQuery(opts)
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, query)
}

func repositoryQuery(opts model.LogQueryOptions) (repository.LogQueryOptions, error) {
	if opts.StartTime != nil && opts.EndTime != nil && opts.StartTime.After(*opts.EndTime) {
		return repository.LogQueryOptions{}, ErrInvalidTimeRange
	}
	return repository.LogQueryOptions(opts), nil
}

// toDocument fills in ID and Timestamp on entry itself so callers can
// refer to the stored record afterwards.
func toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	doc := repository.LogEntryDocument(*entry)
	return &doc
}

func fromDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry(*doc)
}
