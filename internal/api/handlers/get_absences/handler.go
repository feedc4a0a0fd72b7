package get_absences

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgMissingFrom    = "отсутствует обязательный параметр from"
	msgMissingTo      = "отсутствует обязательный параметр to"
	msgInvalidFrom    = "некорректный формат параметра from, ожидается YYYY-MM-DD"
	msgInvalidTo      = "некорректный формат параметра to, ожидается YYYY-MM-DD"
)

type Handler struct {
	service  ScheduleService
	location *time.Location
	logger   Logger
}

func NewHandler(service ScheduleService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/absences?from={date}&to={date}
// Публичный эндпоинт - возвращает отсутствия мастера, пересекающиеся с периодом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/absences - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /staff/{staffId}/absences - Missing from parameter: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/absences - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	toStr := query.Get("to")
	if toStr == "" {
		h.logger.Warn("GET /staff/{staffId}/absences - Missing to parameter: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingTo)
		return
	}
	to, err := time.ParseInLocation(domain.DateFormat, toStr, h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/absences - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}
	// Верхняя граница - конец указанного дня (полуоткрытый интервал)
	to = to.AddDate(0, 0, 1)

	result, err := h.service.GetAbsences(r.Context(), staffID, from, to)
	if err != nil {
		h.logger.Error("GET /staff/{staffId}/absences - Failed to get absences: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{staffId}/absences - Absences fetched successfully: staff_id=%d, count=%d",
		staffID, len(result.Absences))
	handlers.RespondJSON(w, http.StatusOK, result)
}
