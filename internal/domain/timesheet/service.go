package timesheet

import (
	"context"
)

type TimesheetService interface {
	// Aggregate rolls the employee's ledger records for the period into a
	// timesheet and persists it. Re-running over the same inputs is idempotent.
	Aggregate(ctx context.Context, req AggregateRequest) (TimesheetResponse, error)

	// Approve finalizes a timesheet. approverID must differ from the
	// timesheet's employee.
	Approve(ctx context.Context, id string, approverID string) (TimesheetResponse, error)

	// Reject finalizes a timesheet with a reason.
	Reject(ctx context.Context, id string, approverID string, reason string) (TimesheetResponse, error)

	// Get retrieves a single timesheet
	Get(ctx context.Context, id string) (TimesheetResponse, error)

	// List retrieves timesheets (manager view)
	List(ctx context.Context, filter TimesheetFilter) (ListTimesheetResponse, error)
}
