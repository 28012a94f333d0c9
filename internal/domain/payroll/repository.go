package payroll

import (
	"context"
)

type PayStubRepository interface {
	// Create persists a computed pay stub
	Create(ctx context.Context, stub PayStub) (PayStub, error)

	// GetByID retrieves a pay stub by ID
	GetByID(ctx context.Context, id string) (PayStub, error)

	// GetByTimesheetID retrieves the stub generated for a timesheet, if any
	GetByTimesheetID(ctx context.Context, timesheetID string) (*PayStub, error)

	// UpdateStatus transitions status guarded by the expected current status.
	// Returns false when the row no longer carries the expected status.
	UpdateStatus(ctx context.Context, id string, from, to PayStubStatus) (bool, error)

	// List retrieves pay stubs with filters and pagination
	List(ctx context.Context, filter PayStubFilter) ([]PayStub, int64, error)
}
