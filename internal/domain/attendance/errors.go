package attendance

import "errors"

// Attendance domain errors
var (
	// Clock event errors
	ErrDuplicateClockIn = errors.New("an open shift already exists for this date")
	ErrNoOpenShift      = errors.New("no open shift to clock out of")
	ErrInvalidTimeOrder = errors.New("clock-out must not precede clock-in")
	ErrOnApprovedLeave  = errors.New("date is covered by an approved leave request")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDayNotFinished     = errors.New("day is not finished yet")
)
