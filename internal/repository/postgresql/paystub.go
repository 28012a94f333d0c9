package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhub/workforce-backend-go/internal/domain/payroll"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
)

type payStubRepository struct {
	db *database.DB
}

func NewPayStubRepository(db *database.DB) payroll.PayStubRepository {
	return &payStubRepository{db: db}
}

const payStubColumns = `
	p.id, p.employee_id, p.timesheet_id, p.pay_period_start, p.pay_period_end,
	p.gross_pay, p.total_deductions, p.net_pay, p.earnings, p.deductions,
	p.status, p.paid_at, p.created_at, p.updated_at
`

func scanPayStub(row pgx.Row) (payroll.PayStub, error) {
	var stub payroll.PayStub
	err := row.Scan(
		&stub.ID, &stub.EmployeeID, &stub.TimesheetID, &stub.PayPeriodStart, &stub.PayPeriodEnd,
		&stub.GrossPay, &stub.TotalDeductions, &stub.NetPay, &stub.Earnings, &stub.Deductions,
		&stub.Status, &stub.PaidAt, &stub.CreatedAt, &stub.UpdatedAt,
	)
	return stub, err
}

// Create implements payroll.PayStubRepository.
func (r *payStubRepository) Create(ctx context.Context, stub payroll.PayStub) (payroll.PayStub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_stubs (
			id, employee_id, timesheet_id, pay_period_start, pay_period_end,
			gross_pay, total_deductions, net_pay, earnings, deductions, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	stub.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		stub.ID, stub.EmployeeID, stub.TimesheetID, stub.PayPeriodStart, stub.PayPeriodEnd,
		stub.GrossPay, stub.TotalDeductions, stub.NetPay, stub.Earnings, stub.Deductions,
		stub.Status,
	).Scan(&stub.CreatedAt, &stub.UpdatedAt)

	if err != nil {
		return payroll.PayStub{}, fmt.Errorf("failed to create pay stub: %w", err)
	}

	return stub, nil
}

// GetByID implements payroll.PayStubRepository.
func (r *payStubRepository) GetByID(ctx context.Context, id string) (payroll.PayStub, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payStubColumns + ` FROM pay_stubs p WHERE p.id = $1`

	stub, err := scanPayStub(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayStub{}, payroll.ErrPayStubNotFound
		}
		return payroll.PayStub{}, fmt.Errorf("failed to get pay stub: %w", err)
	}

	return stub, nil
}

// GetByTimesheetID implements payroll.PayStubRepository.
func (r *payStubRepository) GetByTimesheetID(ctx context.Context, timesheetID string) (*payroll.PayStub, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payStubColumns + ` FROM pay_stubs p WHERE p.timesheet_id = $1 LIMIT 1`

	stub, err := scanPayStub(q.QueryRow(ctx, query, timesheetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pay stub by timesheet: %w", err)
	}

	return &stub, nil
}

// UpdateStatus implements payroll.PayStubRepository. Guarding on the expected
// current status keeps the pending → processed → paid progression monotonic
// under concurrent updates.
func (r *payStubRepository) UpdateStatus(ctx context.Context, id string, from, to payroll.PayStubStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_stubs
		SET status = $3,
		    paid_at = CASE WHEN $3 = 'paid' THEN now() ELSE paid_at END,
		    updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, id, from, to).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update pay stub status: %w", err)
	}

	return true, nil
}

// List implements payroll.PayStubRepository.
func (r *payStubRepository) List(ctx context.Context, filter payroll.PayStubFilter) ([]payroll.PayStub, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM pay_stubs p " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pay stubs: %w", err)
	}

	query := `SELECT ` + payStubColumns + ` FROM pay_stubs p ` + where +
		fmt.Sprintf(" ORDER BY p.pay_period_start DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pay stubs: %w", err)
	}
	defer rows.Close()

	var stubs []payroll.PayStub
	for rows.Next() {
		stub, err := scanPayStub(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pay stub: %w", err)
		}
		stubs = append(stubs, stub)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate pay stubs: %w", err)
	}

	return stubs, total, nil
}
