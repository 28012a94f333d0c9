package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	// Create persists a new pending request
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a leave request by ID
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Decide transitions pending → approved/denied guarded by the pending
	// status. Returns false when the row was no longer pending, so two
	// concurrent decisions cannot both succeed.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, deciderID string, comments *string, decidedAt time.Time) (bool, error)

	// HasApprovedLeave reports whether an approved request covers the date.
	HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (*LeaveRequest, error)

	// List retrieves leave requests with filters and pagination
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
}
