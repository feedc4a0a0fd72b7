package get_staff_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	policyRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/policy"
)

// UseCase use case получения слотов-кандидатов для формы записи
// Свободные интервалы одного дня квантуются сеткой из политики бронирования
type UseCase struct {
	apptRepo     AppointmentRepository
	scheduleRepo ScheduleRepository
	absenceRepo  AbsenceRepository
	policyRepo   PolicyRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	absenceRepo AbsenceRepository,
	policyRepo PolicyRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		absenceRepo:  absenceRepo,
		policyRepo:   policyRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffSlots: staff=%d, date=%s", req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStaffSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем действующую политику бронирования
	policy, err := uc.policyRepo.GetEffective(ctx, req.StaffID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetStaffSlots: failed to get policy for staff=%d: %v", req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy()
		uc.logger.Info("GetStaffSlots: using built-in default policy for staff=%d", req.StaffID)
	}

	// Параметры запроса перекрывают политику
	duration := time.Duration(policy.DefaultDurationMinutes) * time.Minute
	if req.DurationMinutes != nil {
		duration = time.Duration(*req.DurationMinutes) * time.Minute
	}
	step := time.Duration(policy.SlotStepMinutes) * time.Minute
	if req.StepMinutes != nil {
		step = time.Duration(*req.StepMinutes) * time.Minute
	}

	// 4. Проверяем ограничение на запись наперёд
	if err := validateAdvanceLimit(req.Date, now, policy.AdvanceBookingDays, uc.location); err != nil {
		uc.logger.Warn("GetStaffSlots: advance limit check failed: %v", err)
		return nil, err
	}

	// 5. Границы запрошенного дня
	dayStart := domain.StartOfDay(req.Date, uc.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Минимальный срок до записи отсекает начало сегодняшнего дня;
	// для прошедших дат rangeStart уходит за конец дня и слотов не остаётся
	rangeStart := dayStart
	if earliest := now.Add(time.Duration(policy.MinNoticeMinutes) * time.Minute); earliest.After(rangeStart) {
		rangeStart = earliest
	}

	if !rangeStart.Before(dayEnd) {
		uc.logger.Info("GetStaffSlots: no bookable time left on %s for staff=%d",
			req.Date.Format(domain.DateFormat), req.StaffID)
		return uc.emptyResponse(req, duration, step), nil
	}

	// 6. Получаем правила рабочих часов мастера
	rules, err := uc.scheduleRepo.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetStaffSlots: failed to get working hours for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if len(rules) == 0 {
		uc.logger.Info("GetStaffSlots: staff=%d has no working hours rules", req.StaffID)
		return uc.emptyResponse(req, duration, step), nil
	}

	// 7. Собираем занятые интервалы дня
	busy, err := uc.collectBusyIntervals(ctx, req.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// 8. Свободные интервалы дня, квантованные сеткой
	gaps := domain.FreeSlotsForDay(rules, busy, rangeStart, dayEnd, uc.location)
	candidates := domain.Quantize(gaps, duration, step)

	uc.logger.Info("GetStaffSlots: generated %d slots for staff=%d, date=%s",
		len(candidates), req.StaffID, req.Date.Format(domain.DateFormat))

	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = Slot{StartAt: c.Start, EndAt: c.End}
	}

	return &Response{
		StaffID:         req.StaffID,
		Date:            dayStart,
		DurationMinutes: int(duration / time.Minute),
		StepMinutes:     int(step / time.Minute),
		Slots:           slots,
	}, nil
}

// collectBusyIntervals собирает занятые интервалы мастера за день
func (uc *UseCase) collectBusyIntervals(ctx context.Context, staffID int64, from, to time.Time) ([]domain.TimeInterval, error) {
	filter := domain.StaffAppointmentsFilter{
		StaffID:         staffID,
		From:            &from,
		To:              &to,
		IncludeInactive: false,
	}

	appointments, err := uc.apptRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetStaffSlots: failed to get appointments for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	absences, err := uc.absenceRepo.GetByStaffAndRange(ctx, staffID, from, to)
	if err != nil {
		uc.logger.Error("GetStaffSlots: failed to get absences for staff=%d: %v", staffID, err)
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

// emptyResponse возвращает ответ без слотов
func (uc *UseCase) emptyResponse(req *Request, duration, step time.Duration) *Response {
	return &Response{
		StaffID:         req.StaffID,
		Date:            domain.StartOfDay(req.Date, uc.location),
		DurationMinutes: int(duration / time.Minute),
		StepMinutes:     int(step / time.Minute),
		Slots:           []Slot{},
	}
}
