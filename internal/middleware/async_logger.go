package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/logger"
	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/service"
)

// LogSink accepts log entries for persistence without blocking the request.
type LogSink interface {
	Log(entry *model.LogEntry) bool
}

// AsyncLoggerConfig sizes the queue and the write batches.
type AsyncLoggerConfig struct {
	BufferSize int
	NumWorkers int
	// BatchSize is the most entries a worker sends in one CreateLogs call.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	WriteTimeout  time.Duration
}

// DefaultAsyncLoggerConfig returns the sizing used by the service.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: 500 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLogger queues entries and has a few workers write them to the audit
// store in batches. Log never blocks: when the queue is full the entry is
// dropped and counted.
type AsyncLogger struct {
	store    service.LoggingService
	queue    chan *model.LogEntry
	cfg      AsyncLoggerConfig
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil when store is nil; a
// nil *AsyncLogger discards entries.
func NewAsyncLogger(store service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if store == nil {
		return nil
	}
	defaults := DefaultAsyncLoggerConfig()
	cfg.BufferSize = max(cfg.BufferSize, 0)
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	al := &AsyncLogger{
		store:  store,
		queue:  make(chan *model.LogEntry, cfg.BufferSize),
		cfg:    cfg,
		stopCh: make(chan struct{}),
	}
	al.wg.Add(cfg.NumWorkers)
	for range cfg.NumWorkers {
		go al.run()
	}
	return al
}

func (al *AsyncLogger) run() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := al.newBatch()
	add := func(entry *model.LogEntry) {
		batch = append(batch, entry)
		if len(batch) >= al.cfg.BatchSize {
			batch = al.flush(batch)
		}
	}

	for {
		select {
		case entry := <-al.queue:
			add(entry)
		case <-ticker.C:
			batch = al.flush(batch)
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.queue:
					add(entry)
				default:
					al.flush(batch)
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) newBatch() []*model.LogEntry {
	return make([]*model.LogEntry, 0, al.cfg.BatchSize)
}

// flush writes batch and returns an empty one.
func (al *AsyncLogger) flush(batch []*model.LogEntry) []*model.LogEntry {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	if err := al.store.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(int64(len(batch)))
		metrics.RecordAuditEntries("failed", len(batch))
		log := logger.Logger()
		log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to write audit log batch")
	} else {
		al.written.Add(int64(len(batch)))
		metrics.RecordAuditEntries("written", len(batch))
	}
	return al.newBatch()
}

// Log queues entry and reports whether it was accepted.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}

	select {
	case <-al.stopCh:
		al.drop()
		return false
	default:
	}

	select {
	case al.queue <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.drop()
		return false
	}
}

func (al *AsyncLogger) drop() {
	al.dropped.Add(1)
	metrics.RecordAuditEntries("dropped", 1)
}

// Stop flushes what is queued and waits for the workers. It is safe to call
// twice.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

// Stats returns entry counters since start.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	if al == nil {
		return 0, 0, 0, 0
	}
	return al.enqueued.Load(), al.dropped.Load(), al.written.Load(), al.failed.Load()
}

// StatsMap is Stats keyed by counter name.
func (al *AsyncLogger) StatsMap() map[string]int64 {
	enqueued, dropped, written, failed := al.Stats()
	return map[string]int64{
		"enqueued": enqueued,
		"dropped":  dropped,
		"written":  written,
		"failed":   failed,
	}
}
