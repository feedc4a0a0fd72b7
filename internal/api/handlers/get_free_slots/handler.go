package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_free_slots"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgMissingFrom    = "отсутствует обязательный параметр from"
	msgMissingTo      = "отсутствует обязательный параметр to"
	msgInvalidFrom    = "некорректный формат параметра from, ожидается YYYY-MM-DD"
	msgInvalidTo      = "некорректный формат параметра to, ожидается YYYY-MM-DD"
	msgRangeTooLarge  = "запрошенный период слишком большой"
	msgInvalidInput   = "некорректные параметры запроса"
)

type Handler struct {
	useCase  GetFreeSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/free-slots?from={date}&to={date}
// Возвращает свободные интервалы мастера за период [from, to]
// Даты интерпретируются в таймзоне салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/free-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /staff/{staffId}/free-slots - Missing from parameter: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/free-slots - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	toStr := query.Get("to")
	if toStr == "" {
		h.logger.Warn("GET /staff/{staffId}/free-slots - Missing to parameter: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingTo)
		return
	}
	to, err := time.ParseInLocation(domain.DateFormat, toStr, h.location)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/free-slots - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}
	// Верхняя граница - конец указанного дня (полуоткрытый интервал)
	to = to.AddDate(0, 0, 1)

	result, err := h.useCase.Execute(r.Context(), &getFreeSlots.Request{
		StaffID: staffID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /staff/{staffId}/free-slots - Range too large: staff_id=%d, from=%s, to=%s",
				staffID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/{staffId}/free-slots - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/{staffId}/free-slots - Failed to calculate free slots: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{staffId}/free-slots - Free slots calculated successfully: staff_id=%d, gaps=%d",
		staffID, len(result.Gaps))
	handlers.RespondJSON(w, http.StatusOK, result)
}
