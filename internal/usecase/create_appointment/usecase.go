package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	policyRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/policy"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	apptRepo     AppointmentRepository
	scheduleRepo ScheduleRepository
	absenceRepo  AbsenceRepository
	policyRepo   PolicyRepository
	staffClient  StaffServiceClient
	txManager    TransactionManager
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
	staffClient StaffServiceClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		scheduleRepo: scheduleRepo,
		absenceRepo:  absenceRepo,
		policyRepo:   policyRepo,
		staffClient:  staffClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два активных визита одного мастера никогда не пересекаются по [start, end)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, staff=%d, start=%s",
		req.ClientID, req.StaffID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем мастера через StaffService
	// При недоступности сервиса продолжаем без проверки (graceful degradation)
	calendarID := req.StaffID
	staff, err := uc.staffClient.CheckStaffActive(ctx, req.StaffID)
	switch {
	case err == nil:
		calendarID = staff.CalendarID
	case errors.Is(err, staffClient.ErrStaffNotFound):
		uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
		return nil, ErrStaffNotFound
	case errors.Is(err, staffClient.ErrStaffInactive):
		uc.logger.Warn("CreateAppointment: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffInactive
	case errors.Is(err, staffClient.ErrServiceDegraded):
		uc.logger.Warn("CreateAppointment: StaffService degraded, skipping staff check for id=%d", req.StaffID)
	default:
		uc.logger.Error("CreateAppointment: failed to check staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to check staff: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем действующую политику бронирования
		policy, err := uc.policyRepo.GetEffective(txCtx, req.StaffID)
		if err != nil {
			if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
				uc.logger.Error("CreateAppointment: failed to get policy: %v", err)
				return fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
			}
			policy = domain.DefaultBookingPolicy()
			uc.logger.Info("CreateAppointment: using built-in default policy for staff=%d", req.StaffID)
		}

		duration := time.Duration(policy.DefaultDurationMinutes) * time.Minute
		if req.DurationMinutes != nil {
			duration = time.Duration(*req.DurationMinutes) * time.Minute
		}
		endAt := req.StartAt.Add(duration)

		// 4.2. Валидация времени записи с учетом политики
		if err := validateNotice(req.StartAt, now, policy.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
			return err
		}
		if err := validateAdvanceLimit(req.StartAt, now, policy.AdvanceBookingDays, uc.location); err != nil {
			uc.logger.Warn("CreateAppointment: advance limit validation failed: %v", err)
			return err
		}

		// 4.3. Получаем правила рабочих часов мастера
		rules, err := uc.scheduleRepo.GetByStaffID(txCtx, req.StaffID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		// 4.4. Границы дня записи
		dayStart := domain.StartOfDay(req.StartAt, uc.location)
		dayEnd := dayStart.AddDate(0, 0, 1)

		// 4.5. Получаем активные записи дня с блокировкой (FOR UPDATE):
		// конкурирующая запись на тот же слот дождётся коммита и увидит пересечение
		filter := domain.StaffAppointmentsFilter{
			StaffID:         req.StaffID,
			From:            &dayStart,
			To:              &dayEnd,
			IncludeInactive: false,
		}

		appointments, err := uc.apptRepo.GetByStaffWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		absences, err := uc.absenceRepo.GetByStaffAndRange(txCtx, req.StaffID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get absences: %v", err)
			return fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
		}

		// 4.6. Запрошенный интервал должен целиком лежать в свободном интервале:
		// это покрывает и выход за рабочие часы, и пересечение с занятым временем
		busy := make([]domain.TimeInterval, 0, len(appointments)+len(absences))
		for _, appt := range appointments {
			busy = append(busy, appt.Interval())
		}
		for _, absence := range absences {
			busy = append(busy, absence.Interval())
		}

		requested := domain.TimeInterval{Start: req.StartAt, End: endAt}
		gaps := domain.FreeSlotsForDay(rules, busy, dayStart, dayEnd, uc.location)

		if !intervalFits(gaps, requested) {
			uc.logger.Warn("CreateAppointment: slot [%s, %s) not available for staff=%d",
				req.StartAt.Format(time.RFC3339), endAt.Format(time.RFC3339), req.StaffID)
			return ErrSlotNotAvailable
		}

		// 4.7. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			StaffID:      req.StaffID,
			CalendarID:   calendarID,
			ClientID:     req.ClientID,
			ServiceName:  req.ServiceName,
			ServicePrice: req.ServicePrice,
			StartAt:      req.StartAt,
			EndAt:        endAt,
			Status:       domain.StatusConfirmed,
			Notes:        req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		StaffID:      result.StaffID,
		ClientID:     result.ClientID,
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		StartAt:      result.StartAt,
		EndAt:        result.EndAt,
		Status:       string(result.Status),
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// intervalFits проверяет, что requested целиком лежит в одном из свободных интервалов
func intervalFits(gaps []domain.TimeInterval, requested domain.TimeInterval) bool {
	for _, gap := range gaps {
		if gap.Contains(requested) {
			return true
		}
	}
	return false
}
