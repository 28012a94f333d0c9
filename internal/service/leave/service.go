package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/attendance"
	"github.com/staffhub/workforce-backend-go/internal/domain/employee"
	"github.com/staffhub/workforce-backend-go/internal/domain/leave"
	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
	"github.com/staffhub/workforce-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	emitter notification.Emitter

	// runInTx wraps the decide + ledger write into one atomic unit.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	leaveRequestRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	emitter notification.Emitter,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepo,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		emitter:                emitter,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	request := leave.LeaveRequest{
		EmployeeID:    req.EmployeeID,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     startDate,
		EndDate:       endDate,
		DaysRequested: leave.DaysInclusive(startDate, endDate),
		Reason:        req.Reason,
		Status:        leave.LeaveRequestStatusPending,
		SubmittedAt:   time.Now().UTC(),
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return s.toResponse(ctx, created), nil
}

// Decide implements leave.LeaveService. The status transition and the ledger
// writes commit or roll back together; two concurrent decisions on the same
// request are serialized by the pending-status guard, so exactly one wins.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.EmployeeID == req.DeciderID {
		return leave.LeaveRequestResponse{}, leave.ErrSelfDecisionForbidden
	}

	status := leave.LeaveRequestStatusDenied
	if leave.Decision(req.Decision) == leave.DecisionApprove {
		status = leave.LeaveRequestStatusApproved
	}
	decidedAt := time.Now().UTC()

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		decided, err := s.LeaveRequestRepository.Decide(txCtx, request.ID, status, req.DeciderID, req.Comments, decidedAt)
		if err != nil {
			return fmt.Errorf("failed to decide leave request: %w", err)
		}
		if !decided {
			return leave.ErrAlreadyDecided
		}

		if status == leave.LeaveRequestStatusApproved {
			for _, date := range request.DatesCovered() {
				if err := s.AttendanceRepository.UpsertLeaveDay(txCtx, request.EmployeeID, date, request.ID); err != nil {
					return fmt.Errorf("%w: %v", leave.ErrLedgerUpdateFailed, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = status
	if status == leave.LeaveRequestStatusApproved {
		request.ApprovedBy = &req.DeciderID
	}
	request.Comments = req.Comments
	request.DecidedAt = &decidedAt

	s.emitter.Emit(notification.Event{
		Type:       notification.EventLeaveDecided,
		EmployeeID: request.EmployeeID,
		ActorID:    &req.DeciderID,
		SubjectID:  request.ID,
		Payload: map[string]interface{}{
			"decision":   string(status),
			"leave_type": string(request.LeaveType),
			"start_date": request.StartDate.Format("2006-01-02"),
			"end_date":   request.EndDate.Format("2006-01-02"),
		},
	})

	return s.toResponse(ctx, request), nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return s.toResponse(ctx, request), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.EmployeeID = employeeID
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, s.toResponse(ctx, request))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    totalPages,
		LeaveRequests: responses,
	}, nil
}

func (s *LeaveServiceImpl) toResponse(ctx context.Context, request leave.LeaveRequest) leave.LeaveRequestResponse {
	name := ""
	if emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID); err == nil {
		name = employee.DisplayName(emp)
	} else {
		name = employee.DisplayName(employee.Employee{ID: request.EmployeeID})
	}

	return leave.LeaveRequestResponse{
		ID:            request.ID,
		EmployeeID:    request.EmployeeID,
		EmployeeName:  name,
		LeaveType:     string(request.LeaveType),
		StartDate:     request.StartDate.Format("2006-01-02"),
		EndDate:       request.EndDate.Format("2006-01-02"),
		DaysRequested: request.DaysRequested,
		Reason:        request.Reason,
		Status:        string(request.Status),
		ApprovedBy:    request.ApprovedBy,
		Comments:      request.Comments,
	}
}
