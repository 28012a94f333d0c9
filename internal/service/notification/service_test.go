package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	events []notification.Event
}

func (f *fakeRepo) Create(_ context.Context, event notification.Event) (notification.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeRepo) ListByEmployee(_ context.Context, employeeID string, _ int) ([]notification.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notification.Event
	for _, event := range f.events {
		if event.EmployeeID == employeeID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestEmitter_PersistsEvents(t *testing.T) {
	repo := &fakeRepo{}
	emitter := NewEmitter(repo, Config{WorkerCount: 1})

	emitter.Emit(notification.Event{
		Type:       notification.EventLeaveDecided,
		EmployeeID: "emp-1",
		SubjectID:  "lr-1",
	})
	emitter.Emit(notification.Event{
		Type:       notification.EventPayStubGenerated,
		EmployeeID: "emp-1",
		SubjectID:  "stub-1",
	})

	emitter.Shutdown()

	assert.Equal(t, 2, repo.count())

	events, err := repo.ListByEmployee(context.Background(), "emp-1", 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEmitter_EmitDoesNotBlockCaller(t *testing.T) {
	repo := &fakeRepo{}
	emitter := NewEmitter(repo, Config{WorkerCount: 1, QueueSize: 1})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			emitter.Emit(notification.Event{
				Type:       notification.EventLeaveDecided,
				EmployeeID: "emp-1",
			})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked the caller")
	}

	emitter.Shutdown()
}
