package domain

import "time"

// BookingPolicy controls slot generation and booking validation.
// Two-level hierarchy:
// 1. Staff-specific policy (staff_id set)
// 2. Salon-wide default (staff_id NULL)
// Built-in defaults apply when neither row exists.
type BookingPolicy struct {
	ID      int64
	StaffID *int64 // NULL = salon-wide default

	SlotStepMinutes        int
	DefaultDurationMinutes int
	MinNoticeMinutes       int
	AdvanceBookingDays     int // 0 = unlimited

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSalonDefault returns true if this is the salon-wide policy
func (p *BookingPolicy) IsSalonDefault() bool {
	return p.StaffID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in
// advance appointments can be booked
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultBookingPolicy возвращает политику со встроенными значениями
// Используется, когда в БД нет ни одной строки политики
func DefaultBookingPolicy() *BookingPolicy {
	return &BookingPolicy{
		SlotStepMinutes:        DefaultSlotStepMinutes,
		DefaultDurationMinutes: DefaultDurationMinutes,
		MinNoticeMinutes:       DefaultMinNoticeMinutes,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
	}
}
