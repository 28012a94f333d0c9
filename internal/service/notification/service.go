package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
)

// Config holds emitter configuration
type Config struct {
	WorkerCount  int           // default: 2
	QueueSize    int           // default: 1000
	WriteTimeout time.Duration // default: 5 seconds
}

type emitter struct {
	repo   notification.Repository
	config Config

	queue  chan notification.Event
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewEmitter creates an event emitter with background workers. Emission is
// fire-and-forget: a full queue drops the event with a log line rather than
// blocking the originating operation.
func NewEmitter(repo notification.Repository, cfg Config) notification.Emitter {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	e := &emitter{
		repo:   repo,
		config: cfg,
		queue:  make(chan notification.Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		e.wg.Add(1)
		go e.worker()
	}

	return e
}

// Emit implements notification.Emitter.
func (e *emitter) Emit(event notification.Event) {
	select {
	case e.queue <- event:
	default:
		slog.Warn("event queue full, dropping event",
			"type", event.Type,
			"subject_id", event.SubjectID,
		)
	}
}

// ListByEmployee implements notification.Emitter.
func (e *emitter) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]notification.Event, error) {
	if limit < 1 {
		limit = 50
	}
	return e.repo.ListByEmployee(ctx, employeeID, limit)
}

// Shutdown implements notification.Emitter.
func (e *emitter) Shutdown() {
	close(e.stopCh)
	e.wg.Wait()
}

func (e *emitter) worker() {
	defer e.wg.Done()

	for {
		select {
		case event := <-e.queue:
			e.persist(event)
		case <-e.stopCh:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case event := <-e.queue:
					e.persist(event)
				default:
					return
				}
			}
		}
	}
}

func (e *emitter) persist(event notification.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), e.config.WriteTimeout)
	defer cancel()

	if _, err := e.repo.Create(ctx, event); err != nil {
		slog.Error("failed to persist event",
			"type", event.Type,
			"subject_id", event.SubjectID,
			"error", err,
		)
	}
}
