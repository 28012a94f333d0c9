package timesheet

import (
	"time"
)

type Status string

const (
	StatusSubmitted     Status = "submitted"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

// IsFinal reports whether the status admits no further transition.
func (s Status) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Timesheet struct {
	ID            string
	EmployeeID    string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	RegularHours  float64
	OvertimeHours float64
	TotalHours    float64
	Status        Status
	ApprovedBy    *string
	ApprovedAt    *time.Time
	RejectionNote *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SplitHours divides a worked-hours total at the overtime threshold.
// regular + overtime always equals total.
func SplitHours(totalHours, overtimeThreshold float64) (regular, overtime float64) {
	if totalHours <= overtimeThreshold {
		return totalHours, 0
	}
	return overtimeThreshold, totalHours - overtimeThreshold
}
