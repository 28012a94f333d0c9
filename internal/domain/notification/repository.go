package notification

import "context"

type Repository interface {
	// Create persists one event
	Create(ctx context.Context, event Event) (Event, error)

	// ListByEmployee retrieves recent events for an employee
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Event, error)
}
