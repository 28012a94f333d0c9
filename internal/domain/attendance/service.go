package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// ClockIn opens today's shift for the employee.
	ClockIn(ctx context.Context, req ClockEventRequest) (AttendanceResponse, error)

	// ClockOut closes the open shift and computes worked hours.
	ClockOut(ctx context.Context, req ClockEventRequest) (AttendanceResponse, error)

	// GetMyAttendance lists the calling employee's records.
	GetMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance lists records across employees (manager view).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// CloseDay backfills absent/on_leave records for a finished day. Invoked by
	// an external scheduler after end of day.
	CloseDay(ctx context.Context, date time.Time) (int, error)
}
