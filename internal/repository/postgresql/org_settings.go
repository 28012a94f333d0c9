package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.OrgSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_start, grace_period_minutes, overtime_threshold_hours,
		       overtime_multiplier, deduction_rules, created_at, updated_at
		FROM org_settings
		LIMIT 1
	`

	var s settings.OrgSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.ShiftStart, &s.GracePeriodMinutes, &s.OvertimeThresholdHrs,
		&s.OvertimeMultiplier, &s.DeductionRules, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.OrgSettings{}, settings.ErrSettingsNotFound
		}
		return settings.OrgSettings{}, fmt.Errorf("failed to get org settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository. A single settings row per
// deployment; the unique index on the singleton flag enforces that.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.OrgSettings) (settings.OrgSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO org_settings (
			id, singleton, shift_start, grace_period_minutes, overtime_threshold_hours,
			overtime_multiplier, deduction_rules
		) VALUES (
			$1, true, $2, $3, $4, $5, $6
		)
		ON CONFLICT (singleton) DO UPDATE SET
			shift_start = $2, grace_period_minutes = $3, overtime_threshold_hours = $4,
			overtime_multiplier = $5, deduction_rules = $6, updated_at = now()
		RETURNING id, created_at, updated_at
	`

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, query,
		s.ID, s.ShiftStart, s.GracePeriodMinutes, s.OvertimeThresholdHrs,
		s.OvertimeMultiplier, s.DeductionRules,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return settings.OrgSettings{}, fmt.Errorf("failed to upsert org settings: %w", err)
	}

	return s, nil
}
