package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusAbsent    Status = "absent"
	StatusPresent   Status = "present"
	StatusLate      Status = "late"
	StatusCompleted Status = "completed"
	StatusOnLeave   Status = "on_leave"
)

// WorkedStatuses are the statuses whose hours count toward a timesheet.
func WorkedStatuses() []Status {
	return []Status{StatusPresent, StatusLate, StatusCompleted}
}

type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time // work day, truncated to date
	ClockIn        *time.Time
	ClockOut       *time.Time
	TotalHours     float64
	Status         Status
	LeaveRequestID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOpen reports whether the record is a shift that was started but not ended.
func (a Attendance) IsOpen() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}

// WorkedHours returns the hours between two timestamps rounded to 2 decimals.
func WorkedHours(clockIn, clockOut time.Time) float64 {
	hours := clockOut.Sub(clockIn).Seconds() / 3600
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}

// DeriveStatus computes the per-day status from clock data. shiftStart carries
// only the wall-clock time of day; graceMinutes is the on-time tolerance after
// it. An approved leave day is forced to on_leave before this is consulted.
func DeriveStatus(rec Attendance, shiftStart time.Time, graceMinutes int) Status {
	if rec.Status == StatusOnLeave {
		return StatusOnLeave
	}

	if rec.ClockIn == nil {
		return StatusAbsent
	}

	if rec.ClockOut != nil {
		return StatusCompleted
	}

	in := *rec.ClockIn
	deadline := time.Date(
		rec.Date.Year(), rec.Date.Month(), rec.Date.Day(),
		shiftStart.Hour(), shiftStart.Minute(), 0, 0,
		in.Location(),
	).Add(time.Duration(graceMinutes) * time.Minute)

	if in.After(deadline) {
		return StatusLate
	}
	return StatusPresent
}
