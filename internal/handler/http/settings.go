package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
	"github.com/staffhub/workforce-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsHandler(settingsRepo settings.SettingsRepository) SettingsHandler {
	return &settingsHandlerImpl{
		settingsRepo: settingsRepo,
	}
}

// Get implements SettingsHandler.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsRepo.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toOrgSettingsResponse(s))
}

// Update implements SettingsHandler.
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateOrgSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode settings request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.settingsRepo.Upsert(r.Context(), settings.OrgSettings{
		ShiftStart:           req.ShiftStart,
		GracePeriodMinutes:   req.GracePeriodMinutes,
		OvertimeThresholdHrs: req.OvertimeThresholdHrs,
		OvertimeMultiplier:   req.OvertimeMultiplier,
		DeductionRules:       req.DeductionRules,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization settings updated", toOrgSettingsResponse(updated))
}

func toOrgSettingsResponse(s settings.OrgSettings) settings.OrgSettingsResponse {
	return settings.OrgSettingsResponse{
		ShiftStart:           s.ShiftStart,
		GracePeriodMinutes:   s.GracePeriodMinutes,
		OvertimeThresholdHrs: s.OvertimeThresholdHrs,
		OvertimeMultiplier:   s.OvertimeMultiplier,
		DeductionRules:       s.DeductionRules,
		UpdatedAt:            s.UpdatedAt.Format(time.RFC3339),
	}
}
