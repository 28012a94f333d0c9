package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/staffhub/workforce-backend-go/internal/domain/employee"
	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/staffhub/workforce-backend-go/internal/domain/payroll"
	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
	"github.com/staffhub/workforce-backend-go/internal/domain/timesheet"
)

type PayrollServiceImpl struct {
	payroll.PayStubRepository
	timesheet.TimesheetRepository
	employee.EmployeeRepository
	settings.SettingsRepository
	emitter  notification.Emitter
	defaults settings.OrgSettings
}

func NewPayrollService(
	payStubRepo payroll.PayStubRepository,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	emitter notification.Emitter,
	defaults settings.OrgSettings,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayStubRepository:   payStubRepo,
		TimesheetRepository: timesheetRepo,
		EmployeeRepository:  employeeRepo,
		SettingsRepository:  settingsRepo,
		emitter:             emitter,
		defaults:            defaults,
	}
}

// Calculate derives the pay figures for one approved timesheet. Pure: every
// input is a parameter and all arithmetic is decimal, so re-running with the
// same inputs reproduces the same cents. Percentage rule values are fractions
// of gross (0.2 means 20%).
func Calculate(ts timesheet.Timesheet, hourlyRate, overtimeMultiplier decimal.Decimal, rules payroll.DeductionRules) (payroll.PayStub, error) {
	if ts.Status != timesheet.StatusApproved {
		return payroll.PayStub{}, payroll.ErrTimesheetNotApproved
	}

	base := decimal.NewFromFloat(ts.RegularHours).Mul(hourlyRate).Round(2)
	overtime := decimal.NewFromFloat(ts.OvertimeHours).Mul(hourlyRate).Mul(overtimeMultiplier).Round(2)

	earnings := payroll.MoneyMap{
		"base":     base,
		"overtime": overtime,
	}
	grossPay := earnings.Sum()

	deductions := payroll.MoneyMap{}
	for _, rule := range rules {
		amount := rule.Value
		if rule.IsPercentage {
			amount = grossPay.Mul(rule.Value).Round(2)
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		deductions[rule.Name] = amount
	}
	totalDeductions := deductions.Sum()

	netPay := grossPay.Sub(totalDeductions)
	if netPay.IsNegative() {
		// A misconfigured rule set must surface, never be clamped away.
		return payroll.PayStub{}, payroll.ErrNegativeNetPay
	}

	return payroll.PayStub{
		EmployeeID:      ts.EmployeeID,
		TimesheetID:     ts.ID,
		PayPeriodStart:  ts.PeriodStart,
		PayPeriodEnd:    ts.PeriodEnd,
		GrossPay:        grossPay,
		TotalDeductions: totalDeductions,
		NetPay:          netPay,
		Earnings:        earnings,
		Deductions:      deductions,
		Status:          payroll.PayStubStatusPending,
	}, nil
}

// GeneratePayStub implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayStub(ctx context.Context, req payroll.GeneratePayStubRequest) (payroll.PayStubResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayStubResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, req.TimesheetID)
	if err != nil {
		return payroll.PayStubResponse{}, err
	}

	existing, err := s.PayStubRepository.GetByTimesheetID(ctx, ts.ID)
	if err != nil {
		return payroll.PayStubResponse{}, fmt.Errorf("failed to check existing pay stub: %w", err)
	}
	if existing != nil {
		return payroll.PayStubResponse{}, payroll.ErrPayStubAlreadyExists
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, ts.EmployeeID)
	if err != nil {
		return payroll.PayStubResponse{}, err
	}
	if emp.HourlyRate == nil {
		return payroll.PayStubResponse{}, employee.ErrNoHourlyRate
	}

	orgSettings, err := s.orgSettings(ctx)
	if err != nil {
		return payroll.PayStubResponse{}, err
	}

	stub, err := Calculate(ts, *emp.HourlyRate, orgSettings.OvertimeMultiplier, orgSettings.DeductionRules)
	if err != nil {
		return payroll.PayStubResponse{}, err
	}

	stub, err = s.PayStubRepository.Create(ctx, stub)
	if err != nil {
		return payroll.PayStubResponse{}, fmt.Errorf("failed to create pay stub: %w", err)
	}

	s.emitter.Emit(notification.Event{
		Type:       notification.EventPayStubGenerated,
		EmployeeID: stub.EmployeeID,
		SubjectID:  stub.ID,
		Payload: map[string]interface{}{
			"gross_pay": stub.GrossPay.String(),
			"net_pay":   stub.NetPay.String(),
		},
	})

	return s.toResponse(ctx, stub), nil
}

// UpdateStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, id string, req payroll.UpdatePayStubStatusRequest) (payroll.PayStubResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayStubResponse{}, err
	}

	stub, err := s.PayStubRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayStubResponse{}, err
	}

	next := payroll.PayStubStatus(req.Status)
	if !stub.Status.CanTransition(next) {
		return payroll.PayStubResponse{}, payroll.ErrStatusRegression
	}

	ok, err := s.PayStubRepository.UpdateStatus(ctx, id, stub.Status, next)
	if err != nil {
		return payroll.PayStubResponse{}, fmt.Errorf("failed to update pay stub status: %w", err)
	}
	if !ok {
		// Lost a race with another transition; the guard kept us monotonic.
		return payroll.PayStubResponse{}, payroll.ErrStatusRegression
	}

	stub.Status = next
	return s.toResponse(ctx, stub), nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayStubResponse, error) {
	stub, err := s.PayStubRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayStubResponse{}, err
	}
	return s.toResponse(ctx, stub), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayStubFilter) (payroll.ListPayStubResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	stubs, total, err := s.PayStubRepository.List(ctx, filter)
	if err != nil {
		return payroll.ListPayStubResponse{}, fmt.Errorf("failed to list pay stubs: %w", err)
	}

	responses := make([]payroll.PayStubResponse, 0, len(stubs))
	for _, stub := range stubs {
		responses = append(responses, s.toResponse(ctx, stub))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return payroll.ListPayStubResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		PayStubs:   responses,
	}, nil
}

func (s *PayrollServiceImpl) orgSettings(ctx context.Context) (settings.OrgSettings, error) {
	orgSettings, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		return settings.OrgSettings{}, fmt.Errorf("failed to get org settings: %w", err)
	}
	return orgSettings, nil
}

func (s *PayrollServiceImpl) toResponse(ctx context.Context, stub payroll.PayStub) payroll.PayStubResponse {
	name := ""
	if emp, err := s.EmployeeRepository.GetByID(ctx, stub.EmployeeID); err == nil {
		name = employee.DisplayName(emp)
	} else {
		name = employee.DisplayName(employee.Employee{ID: stub.EmployeeID})
	}

	return payroll.PayStubResponse{
		ID:              stub.ID,
		EmployeeID:      stub.EmployeeID,
		EmployeeName:    name,
		TimesheetID:     stub.TimesheetID,
		PayPeriodStart:  stub.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:    stub.PayPeriodEnd.Format("2006-01-02"),
		GrossPay:        stub.GrossPay,
		TotalDeductions: stub.TotalDeductions,
		NetPay:          stub.NetPay,
		Earnings:        stub.Earnings,
		Deductions:      stub.Deductions,
		Status:          string(stub.Status),
	}
}
