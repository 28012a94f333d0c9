package timesheet

import (
	"context"
	"time"
)

type TimesheetRepository interface {
	// Create persists a freshly aggregated timesheet
	Create(ctx context.Context, timesheet Timesheet) (Timesheet, error)

	// GetByID retrieves a timesheet by ID
	GetByID(ctx context.Context, id string) (Timesheet, error)

	// GetByEmployeeAndPeriod retrieves the timesheet for an exact period, if any
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (*Timesheet, error)

	// ReplaceDraft overwrites a non-final timesheet's figures in place.
	// Re-aggregation of a finalized timesheet is rejected by the service layer.
	ReplaceDraft(ctx context.Context, timesheet Timesheet) error

	// Finalize transitions status guarded by the current non-final status.
	// Returns false when the row was already approved or rejected.
	Finalize(ctx context.Context, id string, status Status, approverID string, rejectionNote *string, decidedAt time.Time) (bool, error)

	// List retrieves timesheets with filters and pagination
	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)
}
