package timesheet

import "errors"

var (
	ErrTimesheetNotFound     = errors.New("timesheet not found")
	ErrAlreadyFinalized      = errors.New("timesheet has already been approved or rejected")
	ErrSelfApprovalForbidden = errors.New("employees cannot approve their own timesheet")
	ErrInvalidPeriod         = errors.New("period end must not precede period start")
)
