package leave

import (
	"context"
)

type LeaveService interface {
	// Submit creates a pending request for the employee.
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// Decide approves or denies a pending request. On approval the attendance
	// ledger is updated for every covered date in the same transaction.
	Decide(ctx context.Context, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)

	// Get retrieves a single leave request
	Get(ctx context.Context, id string) (LeaveRequestResponse, error)

	// GetMyRequests lists the calling employee's requests.
	GetMyRequests(ctx context.Context, employeeID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// List retrieves leave requests (manager view)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
}
