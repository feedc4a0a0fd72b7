package get_policy

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/policy/models"
)

const (
	msgInvalidStaffID = "некорректный параметр staffId"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/policy?staffId={id}
// Публичный эндпоинт - возвращает действующую политику бронирования
// Без staffId возвращается общесалонная политика
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetPolicyRequest{}

	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil || staffID <= 0 {
			h.logger.Warn("GET /policy - Invalid staffId parameter: %s", staffIDStr)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	result, err := h.service.GetEffective(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /policy - Failed to get policy: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /policy - Policy fetched successfully: level=%s", result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
