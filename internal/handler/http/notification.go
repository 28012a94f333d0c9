package http

import (
	"net/http"
	"strconv"

	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/staffhub/workforce-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	GetMyEvents(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	emitter notification.Emitter
}

func NewNotificationHandler(emitter notification.Emitter) NotificationHandler {
	return &notificationHandlerImpl{
		emitter: emitter,
	}
}

// GetMyEvents implements NotificationHandler.
func (h *notificationHandlerImpl) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	employeeID, _, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	events, err := h.emitter.ListByEmployee(r.Context(), employeeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
