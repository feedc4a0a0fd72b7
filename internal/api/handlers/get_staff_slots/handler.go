package get_staff_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getStaffSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_staff_slots"
)

const (
	msgInvalidStaffID  = "некорректный ID мастера"
	msgMissingDate     = "отсутствует обязательный параметр date"
	msgInvalidDate     = "некорректный формат параметра date, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректный параметр durationMinutes"
	msgInvalidStep     = "некорректный параметр stepMinutes"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase  GetStaffSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetStaffSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/slots?date={date}&durationMinutes={int}&stepMinutes={int}
// Возвращает квантованные слоты для записи на указанную дату
// Дата интерпретируется в таймзоне салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{staffId}/slots - Missing date parameter: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getStaffSlots.Request{
		StaffID: staffID,
		Date:    date,
	}

	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /staff/{staffId}/slots - Invalid durationMinutes: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = &duration
	}

	if stepStr := query.Get("stepMinutes"); stepStr != "" {
		step, err := strconv.Atoi(stepStr)
		if err != nil {
			h.logger.Warn("GET /staff/{staffId}/slots - Invalid stepMinutes: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
		req.StepMinutes = &step
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getStaffSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /staff/{staffId}/slots - Date too far in future: staff_id=%d, date=%s", staffID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getStaffSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/{staffId}/slots - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/{staffId}/slots - Failed to calculate slots: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{staffId}/slots - Slots calculated successfully: staff_id=%d, date=%s, slots=%d",
		staffID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
