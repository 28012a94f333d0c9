package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/staffhub/workforce-backend-go/internal/pkg/validator"
)

type GeneratePayStubRequest struct {
	TimesheetID string `json:"timesheet_id"`
}

func (r *GeneratePayStubRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimesheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timesheet_id",
			Message: "timesheet_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePayStubStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdatePayStubStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	valid := []string{
		string(PayStubStatusPending),
		string(PayStubStatusProcessed),
		string(PayStubStatusPaid),
	}
	if !validator.IsInSlice(r.Status, valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, processed, paid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayStubResponse struct {
	ID              string                     `json:"id"`
	EmployeeID      string                     `json:"employee_id"`
	EmployeeName    string                     `json:"employee_name,omitempty"`
	TimesheetID     string                     `json:"timesheet_id"`
	PayPeriodStart  string                     `json:"pay_period_start"`
	PayPeriodEnd    string                     `json:"pay_period_end"`
	GrossPay        decimal.Decimal            `json:"gross_pay"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	NetPay          decimal.Decimal            `json:"net_pay"`
	Earnings        map[string]decimal.Decimal `json:"earnings"`
	Deductions      map[string]decimal.Decimal `json:"deductions"`
	Status          string                     `json:"status"`
}

type PayStubFilter struct {
	EmployeeID string
	Status     *PayStubStatus
	Page       int
	Limit      int
}

type ListPayStubResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	PayStubs   []PayStubResponse `json:"pay_stubs"`
}
