package notification

import "context"

// Emitter publishes domain events fire-and-forget. Emit never blocks the
// caller and never returns an error; failures are logged and dropped.
type Emitter interface {
	Emit(event Event)

	// ListByEmployee retrieves recent events for an employee
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Event, error)

	// Shutdown drains the queue and stops the background worker
	Shutdown()
}
