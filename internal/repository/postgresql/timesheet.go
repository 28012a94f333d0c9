package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhub/workforce-backend-go/internal/domain/timesheet"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	t.id, t.employee_id, t.period_start, t.period_end, t.regular_hours,
	t.overtime_hours, t.total_hours, t.status, t.approved_by, t.approved_at,
	t.rejection_note, t.created_at, t.updated_at
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.PeriodStart, &ts.PeriodEnd, &ts.RegularHours,
		&ts.OvertimeHours, &ts.TotalHours, &ts.Status, &ts.ApprovedBy, &ts.ApprovedAt,
		&ts.RejectionNote, &ts.CreatedAt, &ts.UpdatedAt,
	)
	return ts, err
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			id, employee_id, period_start, period_end, regular_hours,
			overtime_hours, total_hours, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	ts.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		ts.ID, ts.EmployeeID, ts.PeriodStart, ts.PeriodEnd, ts.RegularHours,
		ts.OvertimeHours, ts.TotalHours, ts.Status,
	).Scan(&ts.CreatedAt, &ts.UpdatedAt)

	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return ts, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheets t WHERE t.id = $1`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return ts, nil
}

// GetByEmployeeAndPeriod implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets t
		WHERE t.employee_id = $1 AND t.period_start = $2 AND t.period_end = $3
		LIMIT 1
	`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, employeeID, periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet by period: %w", err)
	}

	return &ts, nil
}

// ReplaceDraft implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ReplaceDraft(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET regular_hours = $2, overtime_hours = $3, total_hours = $4,
		    status = $5, updated_at = now()
		WHERE id = $1 AND status IN ($6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		ts.ID, ts.RegularHours, ts.OvertimeHours, ts.TotalHours, ts.Status,
		timesheet.StatusSubmitted, timesheet.StatusPendingReview,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrAlreadyFinalized
		}
		return fmt.Errorf("failed to replace timesheet draft: %w", err)
	}

	return nil
}

// Finalize implements timesheet.TimesheetRepository. The WHERE clause on the
// non-final statuses is what serializes two concurrent approvals.
func (r *timesheetRepository) Finalize(ctx context.Context, id string, status timesheet.Status, approverID string, rejectionNote *string, decidedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $2, approved_by = $3, approved_at = $4, rejection_note = $5,
		    updated_at = now()
		WHERE id = $1 AND status IN ($6, $7)
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query,
		id, status, approverID, decidedAt, rejectionNote,
		timesheet.StatusSubmitted, timesheet.StatusPendingReview,
	).Scan(&updated)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to finalize timesheet: %w", err)
	}

	return true, nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM timesheets t " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	query := `SELECT ` + timesheetColumns + ` FROM timesheets t ` + where +
		fmt.Sprintf(" ORDER BY t.period_start DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return timesheets, total, nil
}
