package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the attendance ledger.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one date.
	// Used to enforce one record per employee per day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// ListByPeriod retrieves all records for an employee in an inclusive date range,
	// ordered by date ascending.
	ListByPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// UpsertLeaveDay forces a date to on_leave, creating the record if needed.
	// Leave takes precedence over any clock data already present.
	UpsertLeaveDay(ctx context.Context, employeeID string, date time.Time, leaveRequestID string) error

	// ListEmployeesWithRecord returns the employee IDs that have a record on date.
	ListEmployeesWithRecord(ctx context.Context, date time.Time) ([]string, error)
}
