package get_free_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case расчёта свободных интервалов мастера за период
// Отдаёт "дыры" календаря: рабочие часы минус записи и отсутствия
type UseCase struct {
	apptRepo     AppointmentRepository
	scheduleRepo ScheduleRepository
	absenceRepo  AbsenceRepository
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	absenceRepo AbsenceRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		absenceRepo:  absenceRepo,
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет расчёт свободных интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: staff=%d, from=%s, to=%s",
		req.StaffID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем правила рабочих часов мастера
	rules, err := uc.scheduleRepo.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get working hours for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// Без правил мастер не принимает - весь диапазон занят
	if len(rules) == 0 {
		uc.logger.Info("GetFreeSlots: staff=%d has no working hours rules", req.StaffID)
		return &Response{
			StaffID: req.StaffID,
			From:    req.From,
			To:      req.To,
			Gaps:    []Gap{},
		}, nil
	}

	// 3. Собираем занятые интервалы: активные записи и отсутствия
	busy, err := uc.collectBusyIntervals(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Считаем свободные интервалы по дням диапазона
	gaps := domain.FreeSlots(rules, busy, req.From, req.To, uc.location)

	uc.logger.Info("GetFreeSlots: computed %d gaps for staff=%d (%d busy intervals)",
		len(gaps), req.StaffID, len(busy))

	return &Response{
		StaffID: req.StaffID,
		From:    req.From,
		To:      req.To,
		Gaps:    toGaps(gaps),
	}, nil
}

// collectBusyIntervals собирает занятые интервалы мастера за период:
// активные записи и отсутствия, пересекающиеся с [from, to)
func (uc *UseCase) collectBusyIntervals(ctx context.Context, req *Request) ([]domain.TimeInterval, error) {
	filter := domain.StaffAppointmentsFilter{
		StaffID:         req.StaffID,
		From:            &req.From,
		To:              &req.To,
		IncludeInactive: false, // Отменённые и no-show не занимают время
	}

	appointments, err := uc.apptRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get appointments for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	absences, err := uc.absenceRepo.GetByStaffAndRange(ctx, req.StaffID, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get absences for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
	}

	busy := make([]domain.TimeInterval, 0, len(appointments)+len(absences))
	for _, appt := range appointments {
		busy = append(busy, appt.Interval())
	}
	for _, absence := range absences {
		busy = append(busy, absence.Interval())
	}

	return busy, nil
}

// toGaps конвертирует интервалы в response модель
func toGaps(intervals []domain.TimeInterval) []Gap {
	gaps := make([]Gap, len(intervals))
	for i, it := range intervals {
		gaps[i] = Gap{StartAt: it.Start, EndAt: it.End}
	}
	return gaps
}
