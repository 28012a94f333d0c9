package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/attendance"
	"github.com/staffhub/workforce-backend-go/internal/domain/employee"
	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
	"github.com/staffhub/workforce-backend-go/internal/domain/timesheet"
)

type TimesheetServiceImpl struct {
	timesheet.TimesheetRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	settings.SettingsRepository
	emitter  notification.Emitter
	defaults settings.OrgSettings
}

func NewTimesheetService(
	timesheetRepo timesheet.TimesheetRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	emitter notification.Emitter,
	defaults settings.OrgSettings,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		TimesheetRepository:  timesheetRepo,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		SettingsRepository:   settingsRepo,
		emitter:              emitter,
		defaults:             defaults,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregate implements timesheet.TimesheetService. Deterministic over its
// inputs: the only clock read is for persistence timestamps, never figures.
func (s *TimesheetServiceImpl) Aggregate(ctx context.Context, req timesheet.AggregateRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	records, err := s.AttendanceRepository.ListByPeriod(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to list ledger records: %w", err)
	}

	var totalHours float64
	hasOpenShift := false
	for _, rec := range records {
		if rec.IsOpen() {
			// A still-open shift contributes zero hours but flags the sheet
			// for review instead of failing or guessing.
			hasOpenShift = true
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusCompleted:
			totalHours += rec.TotalHours
		}
	}
	totalHours = round2(totalHours)

	orgSettings, err := s.orgSettings(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	regular, overtime := timesheet.SplitHours(totalHours, orgSettings.OvertimeThresholdHrs)

	status := timesheet.StatusSubmitted
	if hasOpenShift {
		status = timesheet.StatusPendingReview
	}

	ts := timesheet.Timesheet{
		EmployeeID:    req.EmployeeID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		RegularHours:  round2(regular),
		OvertimeHours: round2(overtime),
		TotalHours:    totalHours,
		Status:        status,
	}

	existing, err := s.TimesheetRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get existing timesheet: %w", err)
	}

	if existing != nil {
		if existing.Status.IsFinal() {
			return timesheet.TimesheetResponse{}, timesheet.ErrAlreadyFinalized
		}
		ts.ID = existing.ID
		if err := s.TimesheetRepository.ReplaceDraft(ctx, ts); err != nil {
			return timesheet.TimesheetResponse{}, fmt.Errorf("failed to replace timesheet draft: %w", err)
		}
		ts.CreatedAt = existing.CreatedAt
	} else {
		ts, err = s.TimesheetRepository.Create(ctx, ts)
		if err != nil {
			return timesheet.TimesheetResponse{}, fmt.Errorf("failed to create timesheet: %w", err)
		}
	}

	return s.toResponse(ctx, ts), nil
}

// Approve implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Approve(ctx context.Context, id string, approverID string) (timesheet.TimesheetResponse, error) {
	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if ts.EmployeeID == approverID {
		return timesheet.TimesheetResponse{}, timesheet.ErrSelfApprovalForbidden
	}

	decidedAt := time.Now().UTC()
	ok, err := s.TimesheetRepository.Finalize(ctx, id, timesheet.StatusApproved, approverID, nil, decidedAt)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to approve timesheet: %w", err)
	}
	if !ok {
		return timesheet.TimesheetResponse{}, timesheet.ErrAlreadyFinalized
	}

	ts.Status = timesheet.StatusApproved
	ts.ApprovedBy = &approverID
	ts.ApprovedAt = &decidedAt

	s.emitter.Emit(notification.Event{
		Type:       notification.EventTimesheetApproved,
		EmployeeID: ts.EmployeeID,
		ActorID:    &approverID,
		SubjectID:  ts.ID,
		Payload: map[string]interface{}{
			"period_start":   ts.PeriodStart.Format("2006-01-02"),
			"period_end":     ts.PeriodEnd.Format("2006-01-02"),
			"regular_hours":  ts.RegularHours,
			"overtime_hours": ts.OvertimeHours,
		},
	})

	return s.toResponse(ctx, ts), nil
}

// Reject implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Reject(ctx context.Context, id string, approverID string, reason string) (timesheet.TimesheetResponse, error) {
	rejectReq := timesheet.RejectRequest{Reason: reason}
	if err := rejectReq.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if ts.EmployeeID == approverID {
		return timesheet.TimesheetResponse{}, timesheet.ErrSelfApprovalForbidden
	}

	decidedAt := time.Now().UTC()
	ok, err := s.TimesheetRepository.Finalize(ctx, id, timesheet.StatusRejected, approverID, &reason, decidedAt)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to reject timesheet: %w", err)
	}
	if !ok {
		return timesheet.TimesheetResponse{}, timesheet.ErrAlreadyFinalized
	}

	ts.Status = timesheet.StatusRejected
	ts.ApprovedBy = &approverID
	ts.ApprovedAt = &decidedAt
	ts.RejectionNote = &reason

	return s.toResponse(ctx, ts), nil
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return s.toResponse(ctx, ts), nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	timesheets, total, err := s.TimesheetRepository.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		responses = append(responses, s.toResponse(ctx, ts))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return timesheet.ListTimesheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Timesheets: responses,
	}, nil
}

func (s *TimesheetServiceImpl) orgSettings(ctx context.Context) (settings.OrgSettings, error) {
	orgSettings, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		return settings.OrgSettings{}, fmt.Errorf("failed to get org settings: %w", err)
	}
	return orgSettings, nil
}

func (s *TimesheetServiceImpl) toResponse(ctx context.Context, ts timesheet.Timesheet) timesheet.TimesheetResponse {
	name := ""
	if emp, err := s.EmployeeRepository.GetByID(ctx, ts.EmployeeID); err == nil {
		name = employee.DisplayName(emp)
	} else {
		name = employee.DisplayName(employee.Employee{ID: ts.EmployeeID})
	}

	return timesheet.TimesheetResponse{
		ID:            ts.ID,
		EmployeeID:    ts.EmployeeID,
		EmployeeName:  name,
		PeriodStart:   ts.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     ts.PeriodEnd.Format("2006-01-02"),
		RegularHours:  ts.RegularHours,
		OvertimeHours: ts.OvertimeHours,
		TotalHours:    ts.TotalHours,
		Status:        string(ts.Status),
		ApprovedBy:    ts.ApprovedBy,
		RejectionNote: ts.RejectionNote,
	}
}
