package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusDenied   LeaveRequestStatus = "denied"
)

type LeaveType string

const (
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeEmergency LeaveType = "emergency"
	LeaveTypeOther     LeaveType = "other"
)

// AllLeaveTypes returns the accepted leave types
func AllLeaveTypes() []LeaveType {
	return []LeaveType{
		LeaveTypeVacation,
		LeaveTypeSick,
		LeaveTypePersonal,
		LeaveTypeEmergency,
		LeaveTypeOther,
	}
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// LeaveRequest entity. Terminal once approved or denied; never deleted.
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	LeaveType     LeaveType
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int
	Reason        string
	Status        LeaveRequestStatus
	ApprovedBy    *string
	Comments      *string
	DecidedAt     *time.Time
	SubmittedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DaysInclusive counts calendar days between two dates, both ends included.
func DaysInclusive(startDate, endDate time.Time) int {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// DatesCovered lists every calendar date in the request's range.
func (r LeaveRequest) DatesCovered() []time.Time {
	dates := make([]time.Time, 0, r.DaysRequested)
	current := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	for !current.After(end) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 1)
	}
	return dates
}
