package payroll

import "errors"

var (
	ErrTimesheetNotApproved = errors.New("timesheet is not approved")
	ErrNegativeNetPay       = errors.New("deductions exceed gross pay")
	ErrPayStubNotFound      = errors.New("pay stub not found")
	ErrPayStubAlreadyExists = errors.New("pay stub already exists for this timesheet")
	ErrStatusRegression     = errors.New("pay stub status cannot move backwards")
)
