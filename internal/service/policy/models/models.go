package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// GetPolicyRequest запрос на получение действующей политики
// StaffID == nil означает общесалонный уровень
type GetPolicyRequest struct {
	StaffID *int64 `json:"staffId,omitempty"`
}

// UpdatePolicyRequest запрос на создание или обновление политики
// StaffID == nil означает общесалонную политику (только для менеджеров)
type UpdatePolicyRequest struct {
	UserID                 int64  `json:"userId"`
	StaffID                *int64 `json:"staffId,omitempty"`
	SlotStepMinutes        int    `json:"slotStepMinutes"`
	DefaultDurationMinutes int    `json:"defaultDurationMinutes"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"` // 0 = без ограничений
}

// Response модели

// PolicyResponse ответ с данными политики бронирования
// Level показывает, с какого уровня иерархии взята политика:
// staff, salon или default
type PolicyResponse struct {
	ID                     int64  `json:"id,omitempty"`
	StaffID                *int64 `json:"staffId,omitempty"`
	SlotStepMinutes        int    `json:"slotStepMinutes"`
	DefaultDurationMinutes int    `json:"defaultDurationMinutes"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
	Level                  string `json:"level"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Уровни иерархии политики
const (
	LevelStaff   = "staff"
	LevelSalon   = "salon"
	LevelDefault = "default"
)

// Методы конвертации

// ToDomainPolicy конвертирует UpdatePolicyRequest в domain модель
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		StaffID:                r.StaffID,
		SlotStepMinutes:        r.SlotStepMinutes,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		MinNoticeMinutes:       r.MinNoticeMinutes,
		AdvanceBookingDays:     r.AdvanceBookingDays,
	}
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy, level string) *PolicyResponse {
	if p == nil {
		return nil
	}

	return &PolicyResponse{
		ID:                     p.ID,
		StaffID:                p.StaffID,
		SlotStepMinutes:        p.SlotStepMinutes,
		DefaultDurationMinutes: p.DefaultDurationMinutes,
		MinNoticeMinutes:       p.MinNoticeMinutes,
		AdvanceBookingDays:     p.AdvanceBookingDays,
		Level:                  level,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
