package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/absence"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием и отсутствиями мастеров
type Service struct {
	scheduleRepo ScheduleRepository
	absenceRepo  AbsenceRepository
	staffClient  StaffServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	absenceRepo AbsenceRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		absenceRepo:  absenceRepo,
		staffClient:  staffClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает расписание мастера
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, staffID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for staff=%d", staffID)

	rules, err := s.scheduleRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched %d rules for staff=%d", len(rules), staffID)
	return models.FromDomainRules(staffID, rules), nil
}

// ReplaceSchedule полностью заменяет расписание мастера
// Старые правила удаляются, новые создаются в одной транзакции,
// чтобы читатели не увидели наполовину заменённое расписание.
// Доступно самому мастеру и менеджерам салона
func (s *Service) ReplaceSchedule(ctx context.Context, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceSchedule: replacing schedule for staff=%d with %d rules by user=%d",
		req.StaffID, len(req.Rules), req.UserID)

	// 1. Проверяем права доступа (мастер или менеджер)
	if err := s.checkStaffAccess(ctx, req.StaffID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидируем все правила до начала транзакции
	domainRules := make([]*domain.WorkingHoursRule, len(req.Rules))
	for i, input := range req.Rules {
		rule := input.ToDomainRule(req.StaffID)
		if err := rule.Validate(); err != nil {
			s.logger.Warn("ReplaceSchedule: invalid rule #%d for staff=%d: %v", i, req.StaffID, err)
			return nil, fmt.Errorf("%w: rule #%d: %v", ErrInvalidInput, i, err)
		}
		domainRules[i] = rule
	}

	// 3. Заменяем расписание в транзакции
	created := make([]*domain.WorkingHoursRule, 0, len(domainRules))
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.DeleteByStaffID(txCtx, req.StaffID); err != nil {
			return fmt.Errorf("delete old rules: %w", err)
		}

		for _, rule := range domainRules {
			createdRule, err := s.scheduleRepo.Create(txCtx, rule)
			if err != nil {
				return fmt.Errorf("create rule: %w", err)
			}
			created = append(created, createdRule)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("ReplaceSchedule: transaction failed for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSchedule: successfully replaced schedule for staff=%d, %d rules created",
		req.StaffID, len(created))
	return models.FromDomainRules(req.StaffID, created), nil
}

// CreateAbsence создает отсутствие мастера
// Доступно самому мастеру и менеджерам салона
func (s *Service) CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("CreateAbsence: creating absence for staff=%d, kind=%s by user=%d",
		req.StaffID, req.Kind, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateAbsenceData(req); err != nil {
		s.logger.Warn("CreateAbsence: validation failed for staff=%d: %v", req.StaffID, err)
		return nil, err
	}

	// 2. Проверяем права доступа (мастер или менеджер)
	if err := s.checkStaffAccess(ctx, req.StaffID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Создаем отсутствие
	created, err := s.absenceRepo.Create(ctx, req.ToDomainAbsence())
	if err != nil {
		s.logger.Error("CreateAbsence: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: CreateAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAbsence: successfully created absence id=%d for staff=%d", created.ID, req.StaffID)
	return models.FromDomainAbsence(created), nil
}

// GetAbsences получает отсутствия мастера, пересекающиеся с периодом
// Публичный метод - используется и движком расчёта доступности
func (s *Service) GetAbsences(ctx context.Context, staffID int64, from, to time.Time) (*models.AbsenceListResponse, error) {
	s.logger.Info("GetAbsences: fetching absences for staff=%d, period=%s to %s",
		staffID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	absences, err := s.absenceRepo.GetByStaffAndRange(ctx, staffID, from, to)
	if err != nil {
		s.logger.Error("GetAbsences: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetAbsences - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAbsences: successfully fetched %d absences for staff=%d", len(absences), staffID)
	return models.FromDomainAbsenceList(absences), nil
}

// DeleteAbsence удаляет отсутствие
// Доступно мастеру отсутствия и менеджерам салона
func (s *Service) DeleteAbsence(ctx context.Context, req *models.DeleteAbsenceRequest) error {
	s.logger.Info("DeleteAbsence: deleting absence id=%d by user=%d", req.AbsenceID, req.UserID)

	// 1. Получаем отсутствие для проверки прав доступа
	absence, err := s.absenceRepo.GetByID(ctx, req.AbsenceID)
	if err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("DeleteAbsence: absence id=%d not found", req.AbsenceID)
			return ErrAbsenceNotFound
		}
		s.logger.Error("DeleteAbsence: repository error for absence id=%d: %v", req.AbsenceID, err)
		return fmt.Errorf("%w: DeleteAbsence - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (мастер или менеджер)
	if err := s.checkStaffAccess(ctx, absence.StaffID, req.UserID); err != nil {
		s.logger.Warn("DeleteAbsence: access denied for user=%d to absence id=%d", req.UserID, req.AbsenceID)
		return err
	}

	// 3. Удаляем отсутствие
	if err := s.absenceRepo.Delete(ctx, req.AbsenceID); err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("DeleteAbsence: absence id=%d not found during deletion", req.AbsenceID)
			return ErrAbsenceNotFound
		}
		s.logger.Error("DeleteAbsence: repository error for absence id=%d: %v", req.AbsenceID, err)
		return fmt.Errorf("%w: DeleteAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAbsence: successfully deleted absence id=%d", req.AbsenceID)
	return nil
}

// Вспомогательные методы

// validateAbsenceData валидирует параметры отсутствия
func (s *Service) validateAbsenceData(req *models.CreateAbsenceRequest) error {
	if !domain.AbsenceKind(req.Kind).IsValid() {
		return fmt.Errorf("%w: unknown absence kind %q", ErrInvalidInput, req.Kind)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxAbsenceCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxAbsenceCommentLength)
	}

	return nil
}

// checkStaffAccess проверяет, что пользователь - сам мастер либо менеджер салона
func (s *Service) checkStaffAccess(ctx context.Context, staffID int64, userID int64) error {
	// Мастер всегда управляет своим расписанием
	if userID == staffID {
		return nil
	}

	// Получаем профиль пользователя через StaffService
	member, err := s.staffClient.GetStaffMember(ctx, userID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			s.logger.Warn("checkStaffAccess: user=%d is not a staff member", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkStaffAccess: failed to get staff member user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get staff member: %v", ErrInternal, err)
	}

	// Чужое расписание меняют только менеджеры
	if member.Role == staffRoleManager && member.IsActive {
		s.logger.Info("checkStaffAccess: user=%d is manager, access to staff=%d granted", userID, staffID)
		return nil
	}

	s.logger.Warn("checkStaffAccess: user=%d has no access to staff=%d schedule", userID, staffID)
	return ErrAccessDenied
}

// staffRoleManager роль менеджера салона в StaffService
const staffRoleManager = "manager"
