package response

import (
	"errors"
	"net/http"

	"github.com/staffhub/workforce-backend-go/internal/domain/attendance"
	"github.com/staffhub/workforce-backend-go/internal/domain/employee"
	"github.com/staffhub/workforce-backend-go/internal/domain/leave"
	"github.com/staffhub/workforce-backend-go/internal/domain/payroll"
	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
	"github.com/staffhub/workforce-backend-go/internal/domain/timesheet"
	"github.com/staffhub/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoHourlyRate):
		UnprocessableEntity(w, "NO_HOURLY_RATE", "Employee has no hourly rate configured")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateClockIn):
		Conflict(w, "Already clocked in for this day")
	case errors.Is(err, attendance.ErrNoOpenShift):
		Conflict(w, "No open shift to clock out of")
	case errors.Is(err, attendance.ErrInvalidTimeOrder):
		BadRequest(w, "Clock-out must not precede clock-in", nil)
	case errors.Is(err, attendance.ErrOnApprovedLeave):
		Conflict(w, "Employee is on approved leave for this day")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDayNotFinished):
		Conflict(w, "Day is not finished yet")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrAlreadyFinalized):
		Conflict(w, "Timesheet has already been finalized")
	case errors.Is(err, timesheet.ErrSelfApprovalForbidden):
		Forbidden(w, "Cannot review your own timesheet")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayStubNotFound):
		NotFound(w, "Pay stub not found")
	case errors.Is(err, payroll.ErrPayStubAlreadyExists):
		Conflict(w, "Pay stub already exists for this timesheet")
	case errors.Is(err, payroll.ErrTimesheetNotApproved):
		Conflict(w, "Timesheet is not approved")
	case errors.Is(err, payroll.ErrNegativeNetPay):
		UnprocessableEntity(w, "NEGATIVE_NET_PAY", "Deductions exceed gross pay")
	case errors.Is(err, payroll.ErrStatusRegression):
		Conflict(w, "Pay stub status cannot move backwards")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request has already been decided")
	case errors.Is(err, leave.ErrSelfDecisionForbidden):
		Forbidden(w, "Cannot decide your own leave request")
	case errors.Is(err, leave.ErrLedgerUpdateFailed):
		InternalServerError(w, "Failed to update attendance ledger")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Organization settings not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
