package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/leave"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
	"github.com/staffhub/workforce-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a real database because the decide guard lives in SQL.
// Set TEST_DATABASE_URL to run them.
func testDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func setupLeaveTable(t *testing.T, db *database.DB) {
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leave_requests (
			id UUID PRIMARY KEY,
			employee_id TEXT NOT NULL,
			leave_type TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			days_requested INT NOT NULL,
			reason TEXT NOT NULL,
			status TEXT NOT NULL,
			approved_by TEXT,
			comments TEXT,
			decided_at TIMESTAMPTZ,
			submitted_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE leave_requests")
	require.NoError(t, err)
}

func createPendingRequest(t *testing.T, repo leave.LeaveRequestRepository) leave.LeaveRequest {
	t.Helper()
	request, err := repo.Create(context.Background(), leave.LeaveRequest{
		EmployeeID:    "emp-1",
		LeaveType:     leave.LeaveTypeVacation,
		StartDate:     time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC),
		DaysRequested: 3,
		Reason:        "family trip",
		Status:        leave.LeaveRequestStatusPending,
		SubmittedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	return request
}

func TestLeaveRequestDecide_SecondDecisionLoses(t *testing.T) {
	db := testDB(t)
	setupLeaveTable(t, db)
	repo := postgresql.NewLeaveRequestRepository(db)

	request := createPendingRequest(t, repo)

	ctx := context.Background()
	ok, err := repo.Decide(ctx, request.ID, leave.LeaveRequestStatusApproved, "mgr-1", nil, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Decide(ctx, request.ID, leave.LeaveRequestStatusDenied, "mgr-2", nil, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)

	final, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, final.Status)
}

func TestLeaveRequestDecide_ConcurrentDecisionsExactlyOneWins(t *testing.T) {
	db := testDB(t)
	setupLeaveTable(t, db)
	repo := postgresql.NewLeaveRequestRepository(db)

	request := createPendingRequest(t, repo)

	const deciders = 10
	var wg sync.WaitGroup
	wins := make([]bool, deciders)

	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := leave.LeaveRequestStatusApproved
			if i%2 == 1 {
				status = leave.LeaveRequestStatusDenied
			}
			ok, err := repo.Decide(context.Background(), request.ID, status, "mgr", nil, time.Now().UTC())
			assert.NoError(t, err)
			wins[i] = ok
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}
