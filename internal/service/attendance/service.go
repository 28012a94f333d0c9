package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/attendance"
	"github.com/staffhub/workforce-backend-go/internal/domain/employee"
	"github.com/staffhub/workforce-backend-go/internal/domain/leave"
	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	settings.SettingsRepository
	defaults settings.OrgSettings
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	defaults settings.OrgSettings,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		SettingsRepository:     settingsRepo,
		defaults:               defaults,
	}
}

// workDay truncates a timestamp to its calendar date in UTC.
func workDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (a *AttendanceServiceImpl) orgSettings(ctx context.Context) (settings.OrgSettings, error) {
	s, err := a.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return a.defaults, nil
		}
		return settings.OrgSettings{}, fmt.Errorf("failed to get org settings: %w", err)
	}
	return s, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockEventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := req.Timestamp.UTC()
	date := workDay(at)

	onLeave, err := a.LeaveRequestRepository.HasApprovedLeave(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check approved leave: %w", err)
	}
	if onLeave != nil {
		return attendance.AttendanceResponse{}, attendance.ErrOnApprovedLeave
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		if existing.Status == attendance.StatusOnLeave {
			return attendance.AttendanceResponse{}, attendance.ErrOnApprovedLeave
		}
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateClockIn
	}

	orgSettings, err := a.orgSettings(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	shiftStart, err := time.Parse("15:04", orgSettings.ShiftStart)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("invalid shift start in settings: %w", err)
	}

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		ClockIn:    &at,
	}
	record.Status = attendance.DeriveStatus(record, shiftStart, orgSettings.GracePeriodMinutes)

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.toResponse(ctx, created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockEventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := req.Timestamp.UTC()
	date := workDay(at)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record == nil || !record.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenShift
	}
	// Leave approved after a clock-in keeps the open clock_in on the row;
	// the day stays on_leave and must not close as worked hours.
	if record.Status == attendance.StatusOnLeave {
		return attendance.AttendanceResponse{}, attendance.ErrOnApprovedLeave
	}

	if at.Before(*record.ClockIn) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeOrder
	}

	record.ClockOut = &at
	record.TotalHours = attendance.WorkedHours(*record.ClockIn, at)
	record.Status = attendance.StatusCompleted

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return a.toResponse(ctx, *record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = employeeID
	return a.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	names := map[string]string{}
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		resp := mapAttendanceToResponse(att)
		name, ok := names[att.EmployeeID]
		if !ok {
			name = a.displayName(ctx, att.EmployeeID)
			names[att.EmployeeID] = name
		}
		resp.EmployeeName = name
		responses = append(responses, resp)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// CloseDay implements attendance.AttendanceService. Backfills records for
// every active employee who never clocked in on the given date: approved
// leave becomes on_leave, everything else absent.
func (a *AttendanceServiceImpl) CloseDay(ctx context.Context, date time.Time) (int, error) {
	date = workDay(date)
	if !date.Before(workDay(time.Now())) {
		return 0, attendance.ErrDayNotFinished
	}

	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	withRecord, err := a.AttendanceRepository.ListEmployeesWithRecord(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees with record: %w", err)
	}
	seen := make(map[string]bool, len(withRecord))
	for _, id := range withRecord {
		seen[id] = true
	}

	created := 0
	for _, emp := range employees {
		if seen[emp.ID] {
			continue
		}

		onLeave, err := a.LeaveRequestRepository.HasApprovedLeave(ctx, emp.ID, date)
		if err != nil {
			return created, fmt.Errorf("failed to check approved leave: %w", err)
		}

		if onLeave != nil {
			if err := a.AttendanceRepository.UpsertLeaveDay(ctx, emp.ID, date, onLeave.ID); err != nil {
				return created, fmt.Errorf("failed to record leave day: %w", err)
			}
		} else {
			record := attendance.Attendance{
				EmployeeID: emp.ID,
				Date:       date,
				Status:     attendance.StatusAbsent,
			}
			if _, err := a.AttendanceRepository.Create(ctx, record); err != nil {
				return created, fmt.Errorf("failed to record absent day: %w", err)
			}
		}
		created++
	}

	return created, nil
}

func (a *AttendanceServiceImpl) displayName(ctx context.Context, employeeID string) string {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.DisplayName(employee.Employee{ID: employeeID})
	}
	return employee.DisplayName(emp)
}

func (a *AttendanceServiceImpl) toResponse(ctx context.Context, att attendance.Attendance) attendance.AttendanceResponse {
	resp := mapAttendanceToResponse(att)
	resp.EmployeeName = a.displayName(ctx, att.EmployeeID)
	return resp
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		Date:         att.Date.Format("2006-01-02"),
		ClockInTime:  timePtrToString(att.ClockIn),
		ClockOutTime: timePtrToString(att.ClockOut),
		TotalHours:   att.TotalHours,
		Status:       string(att.Status),
		LeaveID:      att.LeaveRequestID,
		CreatedAt:    att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
