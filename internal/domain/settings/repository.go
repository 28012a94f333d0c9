package settings

import "context"

type SettingsRepository interface {
	// Get retrieves the organization settings row
	Get(ctx context.Context) (OrgSettings, error)

	// Upsert creates or replaces the organization settings row
	Upsert(ctx context.Context, s OrgSettings) (OrgSettings, error)
}
