package payroll

import (
	"context"
)

type PayrollService interface {
	// GeneratePayStub computes and persists the stub for an approved timesheet.
	GeneratePayStub(ctx context.Context, req GeneratePayStubRequest) (PayStubResponse, error)

	// UpdateStatus moves a stub forward through pending → processed → paid.
	UpdateStatus(ctx context.Context, id string, req UpdatePayStubStatusRequest) (PayStubResponse, error)

	// Get retrieves a single pay stub
	Get(ctx context.Context, id string) (PayStubResponse, error)

	// List retrieves pay stubs (manager view)
	List(ctx context.Context, filter PayStubFilter) (ListPayStubResponse, error)
}
