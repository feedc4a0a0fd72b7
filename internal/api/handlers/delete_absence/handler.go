package delete_absence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidAbsenceID = "некорректный ID отсутствия"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgAbsenceNotFound  = "отсутствие не найдено"
	msgAccessDenied     = "доступ к отсутствию запрещён"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/absences/{absenceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /absences/{absenceId} - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /absences/{absenceId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.DeleteAbsenceRequest{
		UserID:    userID,
		AbsenceID: absenceID,
	}

	if err := h.service.DeleteAbsence(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAbsenceNotFound):
			h.logger.Warn("DELETE /absences/{absenceId} - Absence not found: id=%d", absenceID)
			handlers.RespondNotFound(w, msgAbsenceNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /absences/{absenceId} - Access denied: id=%d, user_id=%d", absenceID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /absences/{absenceId} - Failed to delete absence: id=%d, error=%v", absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /absences/{absenceId} - Absence deleted successfully: id=%d, user_id=%d", absenceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
