package leave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/attendance"
	"github.com/staffhub/workforce-backend-go/internal/domain/employee"
	"github.com/staffhub/workforce-backend-go/internal/domain/leave"
	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	mu       sync.Mutex
	requests map[string]*leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: map[string]*leave.LeaveRequest{}}
}

func (f *fakeLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	request.ID = fmt.Sprintf("lr-%d", f.nextID)
	f.requests[request.ID] = &request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *request, nil
}

// Decide mirrors the compare-and-set the SQL layer does: the transition only
// happens when the row is still pending.
func (f *fakeLeaveRepo) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, deciderID string, comments *string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return false, leave.ErrLeaveRequestNotFound
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return false, nil
	}
	if j := journalFrom(ctx); j != nil {
		prev := *request
		j.record(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			restored := prev
			f.requests[id] = &restored
		})
	}
	request.Status = status
	if status == leave.LeaveRequestStatusApproved {
		request.ApprovedBy = &deciderID
	}
	request.Comments = comments
	request.DecidedAt = &decidedAt
	return true, nil
}

func (f *fakeLeaveRepo) HasApprovedLeave(_ context.Context, _ string, _ time.Time) (*leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	return nil, 0, nil
}

// txJournal stands in for a database transaction in the fakes: every write
// made inside the unit registers an undo, and a failed unit replays them in
// reverse. Only this unit's writes are undone, so concurrent deciders never
// clobber each other's committed state.
type txJournal struct {
	mu    sync.Mutex
	undos []func()
}

func (j *txJournal) record(undo func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undos = append(j.undos, undo)
}

func (j *txJournal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.undos) - 1; i >= 0; i-- {
		j.undos[i]()
	}
}

type txJournalKey struct{}

func journalFrom(ctx context.Context) *txJournal {
	j, _ := ctx.Value(txJournalKey{}).(*txJournal)
	return j
}

type fakeLedgerRepo struct {
	mu        sync.Mutex
	leaveDays map[string]string // employeeID|date -> leaveRequestID
	upsertErr error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{leaveDays: map[string]string{}}
}

func (f *fakeLedgerRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeLedgerRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeLedgerRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) Update(_ context.Context, _ attendance.Attendance) error {
	return nil
}

func (f *fakeLedgerRepo) ListByPeriod(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeLedgerRepo) UpsertLeaveDay(ctx context.Context, employeeID string, date time.Time, leaveRequestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := employeeID + "|" + date.Format("2006-01-02")
	if j := journalFrom(ctx); j != nil {
		prev, existed := f.leaveDays[key]
		j.record(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if existed {
				f.leaveDays[key] = prev
			} else {
				delete(f.leaveDays, key)
			}
		})
	}
	f.leaveDays[key] = leaveRequestID
	return nil
}

func (f *fakeLedgerRepo) ListEmployeesWithRecord(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	name := "Worker"
	return employee.Employee{ID: id, FirstName: &name, IsActive: true}, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []notification.Event
}

func (f *fakeEmitter) Emit(event notification.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeEmitter) ListByEmployee(_ context.Context, _ string, _ int) ([]notification.Event, error) {
	return nil, nil
}

func (f *fakeEmitter) Shutdown() {}

// newTestService wires a service whose transaction boundary journals the
// fakes' writes and undoes them when the unit fails, mimicking a rollback.
func newTestService(leaveRepo *fakeLeaveRepo, ledger *fakeLedgerRepo, emitter *fakeEmitter) leave.LeaveService {
	svc := NewLeaveService(nil, leaveRepo, ledger, &fakeEmployeeRepo{}, emitter).(*LeaveServiceImpl)
	svc.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		journal := &txJournal{}
		if err := fn(context.WithValue(ctx, txJournalKey{}, journal)); err != nil {
			journal.rollback()
			return err
		}
		return nil
	}
	return svc
}

func submitRequest(t *testing.T, svc leave.LeaveService, employeeID string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: employeeID,
		LeaveType:  "vacation",
		StartDate:  "2024-02-15",
		EndDate:    "2024-02-17",
		Reason:     "family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmit_CountsDaysInclusive(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), newFakeLedgerRepo(), &fakeEmitter{})

	resp := submitRequest(t, svc, "emp-1")

	assert.Equal(t, 3, resp.DaysRequested)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), resp.Status)
}

func TestSubmit_EndBeforeStartFails(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), newFakeLedgerRepo(), &fakeEmitter{})

	_, err := svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1",
		LeaveType:  "vacation",
		StartDate:  "2024-02-17",
		EndDate:    "2024-02-15",
		Reason:     "time travel",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestDecide_ApprovalWritesLedgerDays(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	ledger := newFakeLedgerRepo()
	emitter := &fakeEmitter{}
	svc := newTestService(leaveRepo, ledger, emitter)

	resp := submitRequest(t, svc, "emp-1")

	decided, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
		DeciderID: "mgr-1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusApproved), decided.Status)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, "mgr-1", *decided.ApprovedBy)
	assert.Len(t, ledger.leaveDays, 3)
	assert.Equal(t, resp.ID, ledger.leaveDays["emp-1|2024-02-15"])
	assert.Equal(t, resp.ID, ledger.leaveDays["emp-1|2024-02-17"])

	require.Len(t, emitter.events, 1)
	assert.Equal(t, notification.EventLeaveDecided, emitter.events[0].Type)
}

func TestDecide_DenialLeavesLedgerUntouched(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	ledger := newFakeLedgerRepo()
	svc := newTestService(leaveRepo, ledger, &fakeEmitter{})

	resp := submitRequest(t, svc, "emp-1")

	decided, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "deny",
		DeciderID: "mgr-1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusDenied), decided.Status)
	assert.Empty(t, ledger.leaveDays)

	// Only approvals record an approver.
	assert.Nil(t, decided.ApprovedBy)
	stored, err := leaveRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ApprovedBy)
}

func TestDecide_SecondDecisionFails(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	svc := newTestService(leaveRepo, newFakeLedgerRepo(), &fakeEmitter{})

	resp := submitRequest(t, svc, "emp-1")

	ctx := context.Background()
	_, err := svc.Decide(ctx, leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
		DeciderID: "mgr-1",
	})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "deny",
		DeciderID: "mgr-2",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
}

func TestDecide_SelfDecisionForbidden(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), newFakeLedgerRepo(), &fakeEmitter{})

	resp := submitRequest(t, svc, "emp-1")

	_, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
		DeciderID: "emp-1",
	})
	assert.ErrorIs(t, err, leave.ErrSelfDecisionForbidden)
}

func TestDecide_ConcurrentDecisionsExactlyOneWins(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	svc := newTestService(leaveRepo, newFakeLedgerRepo(), &fakeEmitter{})

	resp := submitRequest(t, svc, "emp-1")

	const deciders = 16
	var wg sync.WaitGroup
	errs := make([]error, deciders)

	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision := "approve"
			if i%2 == 1 {
				decision = "deny"
			}
			_, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
				RequestID: resp.ID,
				Decision:  decision,
				DeciderID: fmt.Sprintf("mgr-%d", i),
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, winners)

	final, err := leaveRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, leave.LeaveRequestStatusPending, final.Status)
}

func TestDecide_LedgerFailureRollsBackDecision(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	ledger := newFakeLedgerRepo()
	ledger.upsertErr = errors.New("disk on fire")
	svc := newTestService(leaveRepo, ledger, &fakeEmitter{})

	resp := submitRequest(t, svc, "emp-1")

	_, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
		DeciderID: "mgr-1",
	})
	require.ErrorIs(t, err, leave.ErrLedgerUpdateFailed)

	// The transaction failed, so the request must still be decidable.
	request, err := leaveRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, request.Status)
}

func TestDecide_LateLoserDoesNotResurrectPending(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	ledger := newFakeLedgerRepo()
	svc := NewLeaveService(nil, leaveRepo, ledger, &fakeEmployeeRepo{}, &fakeEmitter{}).(*LeaveServiceImpl)

	// The first unit to start is held open until the other decider has
	// committed, so the loser entered its unit while the row was still
	// pending but runs its compare-and-set after the winner's.
	entered := make(chan struct{})
	release := make(chan struct{})
	var gate sync.Once
	svc.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		gated := false
		gate.Do(func() { gated = true })
		if gated {
			close(entered)
			<-release
		}
		journal := &txJournal{}
		if err := fn(context.WithValue(ctx, txJournalKey{}, journal)); err != nil {
			journal.rollback()
			return err
		}
		return nil
	}

	resp := submitRequest(t, svc, "emp-1")

	loserErr := make(chan error, 1)
	go func() {
		_, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
			RequestID: resp.ID,
			Decision:  "deny",
			DeciderID: "mgr-slow",
		})
		loserErr <- err
	}()

	<-entered
	_, err := svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
		DeciderID: "mgr-fast",
	})
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-loserErr, leave.ErrAlreadyDecided)

	// The loser's failed unit must not undo the committed approval, and a
	// third decider must still observe a decided row.
	_, err = svc.Decide(context.Background(), leave.DecideLeaveRequestRequest{
		RequestID: resp.ID,
		Decision:  "deny",
		DeciderID: "mgr-late",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)

	final, err := leaveRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, final.Status)
	assert.Len(t, ledger.leaveDays, 3)
}
