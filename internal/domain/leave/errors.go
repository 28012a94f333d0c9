package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrInvalidDateRange      = errors.New("end date must not precede start date")
	ErrAlreadyDecided        = errors.New("leave request has already been decided")
	ErrSelfDecisionForbidden = errors.New("employees cannot decide their own leave request")
	ErrLedgerUpdateFailed    = errors.New("attendance ledger update failed")
)
