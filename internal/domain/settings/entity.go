package settings

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffhub/workforce-backend-go/internal/domain/payroll"
)

// OrgSettings - organization-level attendance and payroll configuration.
// Services read these at call time; none of the figures are hardcoded.
type OrgSettings struct {
	ID                   string
	ShiftStart           string // wall clock, "15:04"
	GracePeriodMinutes   int
	OvertimeThresholdHrs float64
	OvertimeMultiplier   decimal.Decimal
	DeductionRules       payroll.DeductionRules
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
