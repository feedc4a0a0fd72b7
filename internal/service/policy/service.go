package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	policyRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/policy"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/policy/models"
)

// Service сервис для работы с политиками бронирования
type Service struct {
	policyRepo  PolicyRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(
	policyRepo PolicyRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:  policyRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// GetEffective получает действующую политику с учетом иерархии приоритетов
// Публичный метод - используется при расчёте слотов и валидации брони
// Приоритет: политика мастера > общесалонная > встроенные значения
func (s *Service) GetEffective(ctx context.Context, req *models.GetPolicyRequest) (*models.PolicyResponse, error) {
	if req.StaffID == nil {
		return s.getSalonPolicy(ctx)
	}

	s.logger.Info("GetEffective: fetching policy for staff=%d", *req.StaffID)

	// Уровень мастера
	policy, err := s.policyRepo.GetByStaff(ctx, req.StaffID)
	if err == nil {
		s.logger.Info("GetEffective: staff-level policy id=%d for staff=%d", policy.ID, *req.StaffID)
		return models.FromDomainPolicy(policy, models.LevelStaff), nil
	}
	if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		s.logger.Error("GetEffective: repository error for staff=%d: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	// Уровень салона и встроенные значения
	return s.getSalonPolicy(ctx)
}

// Update создает или обновляет политику на своём уровне иерархии
// Мастер управляет своей политикой, общесалонная доступна только менеджерам
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	if req.StaffID != nil {
		s.logger.Info("Update: updating policy for staff=%d by user=%d", *req.StaffID, req.UserID)
	} else {
		s.logger.Info("Update: updating salon-wide policy by user=%d", req.UserID)
	}

	// 1. Валидируем параметры политики
	if err := s.validatePolicyData(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.checkPolicyAccess(ctx, req.StaffID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Создаем или обновляем политику
	updated, err := s.policyRepo.Upsert(ctx, req.ToDomainPolicy())
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	level := models.LevelSalon
	if updated.StaffID != nil {
		level = models.LevelStaff
	}

	s.logger.Info("Update: successfully upserted policy id=%d (level: %s)", updated.ID, level)
	return models.FromDomainPolicy(updated, level), nil
}

// Вспомогательные методы

// getSalonPolicy возвращает общесалонную политику либо встроенные значения
func (s *Service) getSalonPolicy(ctx context.Context) (*models.PolicyResponse, error) {
	s.logger.Info("getSalonPolicy: fetching salon-wide policy")

	policy, err := s.policyRepo.GetByStaff(ctx, nil)
	if err == nil {
		s.logger.Info("getSalonPolicy: salon-level policy id=%d", policy.ID)
		return models.FromDomainPolicy(policy, models.LevelSalon), nil
	}
	if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		s.logger.Error("getSalonPolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: getSalonPolicy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("getSalonPolicy: no policy rows, falling back to built-in defaults")
	return models.FromDomainPolicy(domain.DefaultBookingPolicy(), models.LevelDefault), nil
}

// validatePolicyData валидирует параметры политики
func (s *Service) validatePolicyData(req *models.UpdatePolicyRequest) error {
	// Проверяем slotStepMinutes
	if req.SlotStepMinutes < domain.MinSlotStepMinutes || req.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	// Проверяем defaultDurationMinutes
	if req.DefaultDurationMinutes < domain.MinDurationMinutes || req.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	// Проверяем minNoticeMinutes
	if req.MinNoticeMinutes < 0 || req.MinNoticeMinutes > domain.MaxMinNoticeMinutes {
		return fmt.Errorf("%w: minNoticeMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxMinNoticeMinutes)
	}

	// Проверяем advanceBookingDays
	if req.AdvanceBookingDays < 0 || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// checkPolicyAccess проверяет права на изменение политики
// Мастер меняет свою политику, общесалонную меняют только менеджеры
func (s *Service) checkPolicyAccess(ctx context.Context, staffID *int64, userID int64) error {
	if staffID != nil && *staffID == userID {
		return nil
	}

	member, err := s.staffClient.GetStaffMember(ctx, userID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			s.logger.Warn("checkPolicyAccess: user=%d is not a staff member", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkPolicyAccess: failed to get staff member user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkPolicyAccess - failed to get staff member: %v", ErrInternal, err)
	}

	if member.Role == staffRoleManager && member.IsActive {
		s.logger.Info("checkPolicyAccess: user=%d is manager, access granted", userID)
		return nil
	}

	s.logger.Warn("checkPolicyAccess: user=%d has no access to change policy", userID)
	return ErrAccessDenied
}

// staffRoleManager роль менеджера салона в StaffService
const staffRoleManager = "manager"
