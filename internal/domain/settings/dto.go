package settings

import (
	"github.com/shopspring/decimal"
	"github.com/staffhub/workforce-backend-go/internal/domain/payroll"
	"github.com/staffhub/workforce-backend-go/internal/pkg/validator"
)

type UpdateOrgSettingsRequest struct {
	ShiftStart           string                 `json:"shift_start"`
	GracePeriodMinutes   int                    `json:"grace_period_minutes"`
	OvertimeThresholdHrs float64                `json:"overtime_threshold_hours"`
	OvertimeMultiplier   decimal.Decimal        `json:"overtime_multiplier"`
	DeductionRules       payroll.DeductionRules `json:"deduction_rules"`
}

func (r *UpdateOrgSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidClock(r.ShiftStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be a valid wall clock time (HH:MM)",
		})
	}

	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}

	if r.OvertimeThresholdHrs <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_threshold_hours",
			Message: "overtime_threshold_hours must be positive",
		})
	}

	if r.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_multiplier",
			Message: "overtime_multiplier must be at least 1",
		})
	}

	for _, rule := range r.DeductionRules {
		if validator.IsEmpty(rule.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "deduction_rules",
				Message: "every deduction rule needs a name",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OrgSettingsResponse struct {
	ShiftStart           string                 `json:"shift_start"`
	GracePeriodMinutes   int                    `json:"grace_period_minutes"`
	OvertimeThresholdHrs float64                `json:"overtime_threshold_hours"`
	OvertimeMultiplier   decimal.Decimal        `json:"overtime_multiplier"`
	DeductionRules       payroll.DeductionRules `json:"deduction_rules"`
	UpdatedAt            string                 `json:"updated_at"`
}
